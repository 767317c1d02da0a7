package solar

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/interp"

	"github.com/anssilaukkarinen/bfty/internal/constants"
)

// DefaultClearness is used for half-days that receive no potential
// insolation at all.
const DefaultClearness = 0.5

// The morning half covers clock hours 0-12, the evening half hours 13-23.
const morningHours = 13

// Offsets used for the anchor of a sunless half-day before any sunlit
// half-day of the same kind has been seen.
const (
	initialMorningOffset = 9.0
	initialEveningOffset = 3.0
)

var (
	// ErrSeriesLength is returned when an hourly series does not cover the
	// annual grid.
	ErrSeriesLength = errors.New("solar: series length does not match the annual grid")
	// ErrNoBuckets is returned when there are too few half-day buckets to
	// interpolate.
	ErrNoBuckets = errors.New("solar: at least two half-day buckets are required")
)

// HalfDay is the aggregated clearness index of one morning or evening.
type HalfDay struct {
	Anchor      float64 // hour of the year the value is placed at
	Clearness   float64 // K_t, -
	SunlitHours int     // samples with positive extraterrestrial irradiance
}

// Profile is the clearness index profile of one dataset together with the
// solar geometry it was derived from.
type Profile struct {
	*Geometry
	HalfDays  []HalfDay // two per day, morning first
	Clearness []float64 // hourly K_t, -
}

// AggregateHalfDays sums the measured global irradiance over the sunlit
// hours of every morning and evening and divides by the corresponding
// extraterrestrial irradiance. Both series must cover whole days.
func AggregateHalfDays(extraterrestrial, global []float64) ([]HalfDay, error) {
	if len(extraterrestrial) != len(global) {
		return nil, fmt.Errorf("%w: extraterrestrial %d, global %d", ErrSeriesLength, len(extraterrestrial), len(global))
	}
	if len(global) == 0 || len(global)%constants.HoursPerDay != 0 {
		return nil, fmt.Errorf("%w: %d samples is not a whole number of days", ErrSeriesLength, len(global))
	}

	days := len(global) / constants.HoursPerDay
	buckets := make([]HalfDay, 0, 2*days)

	morningOffset := initialMorningOffset
	eveningOffset := initialEveningOffset

	for day := 0; day < days; day++ {
		start := day * constants.HoursPerDay
		split := start + morningHours
		end := start + constants.HoursPerDay

		morning := aggregate(extraterrestrial[start:split], global[start:split])
		if morning.SunlitHours > 0 {
			morningOffset = morningHours - float64(morning.SunlitHours)/2
		}
		morning.Anchor = float64(start) + morningOffset
		buckets = append(buckets, morning)

		evening := aggregate(extraterrestrial[split:end], global[split:end])
		if evening.SunlitHours > 0 {
			eveningOffset = float64(evening.SunlitHours) / 2
		}
		evening.Anchor = float64(split) + eveningOffset
		buckets = append(buckets, evening)
	}

	return buckets, nil
}

func aggregate(extraterrestrial, global []float64) HalfDay {
	var sumI0, sumGlobal float64
	var sunlit int
	for i, i0 := range extraterrestrial {
		if i0 > 0 {
			sumI0 += i0
			sumGlobal += global[i]
			sunlit++
		}
	}

	if sumI0 > 0 {
		return HalfDay{Clearness: sumGlobal / sumI0, SunlitHours: sunlit}
	}
	return HalfDay{Clearness: DefaultClearness}
}

// ResampleHalfDays linearly interpolates the half-day buckets onto the
// hours 0..n-1. Hours before the first or after the last anchor take the
// nearest bucket's value.
func ResampleHalfDays(buckets []HalfDay, n int) ([]float64, error) {
	if len(buckets) < 2 {
		return nil, ErrNoBuckets
	}

	xs := make([]float64, len(buckets))
	ys := make([]float64, len(buckets))
	for i, b := range buckets {
		xs[i] = b.Anchor
		ys[i] = b.Clearness
	}

	var pl interp.PiecewiseLinear
	if err := pl.Fit(xs, ys); err != nil {
		return nil, fmt.Errorf("solar: fitting half-day clearness: %w", err)
	}

	hourly := make([]float64, n)
	for i := range hourly {
		hourly[i] = pl.Predict(float64(i))
	}
	return hourly, nil
}

// ComputeClearness derives the hourly clearness index for a full year of
// global horizontal irradiance (mean of the preceding hour, W/m²) measured
// at the given site. Latitude is in radians, longitude in degrees east.
func ComputeClearness(latitudeRad, longitudeDeg float64, global []float64) (*Profile, error) {
	if len(global) != constants.HoursPerYear {
		return nil, fmt.Errorf("%w: got %d samples, want %d", ErrSeriesLength, len(global), constants.HoursPerYear)
	}

	geometry := NewGeometry(latitudeRad, longitudeDeg)

	buckets, err := AggregateHalfDays(geometry.Extraterrestrial, global)
	if err != nil {
		return nil, err
	}

	clearness, err := ResampleHalfDays(buckets, constants.HoursPerYear)
	if err != nil {
		return nil, err
	}

	return &Profile{
		Geometry:  geometry,
		HalfDays:  buckets,
		Clearness: clearness,
	}, nil
}
