// Package indoor derives indoor air conditions from outdoor weather using
// the moisture excess method: indoor vapour concentration is the rolling
// mean of the outdoor concentration plus a temperature-dependent excess.
package indoor

import (
	"fmt"

	"github.com/anssilaukkarinen/bfty/internal/series"
	"github.com/anssilaukkarinen/bfty/pkg/psychro"
)

// MaxRH is the upper limit for indoor relative humidity, %.
const MaxRH = 95.0

// DefaultWindow is the length of the outdoor averaging window in hours.
const DefaultWindow = 24

// DefaultTemperature is the setpoint of the constant-temperature scenario.
const DefaultTemperature = 21.0

var (
	// moistureExcess is the vapour excess of moisture class 2, kg/m³
	moistureExcess = series.MustTable(
		[]float64{-30, 5, 15, 30},
		[]float64{0.005, 0.005, 0.002, 0.002},
	)

	// s2Setpoint is the indoor temperature of thermal class S2, °C
	s2Setpoint = series.MustTable(
		[]float64{-30, 0, 20, 30},
		[]float64{21.5, 21.5, 25.5, 25.5},
	)
)

// Options control the outdoor averaging.
type Options struct {
	Window   int  // hours
	Centered bool // centre the window instead of ending it at the current hour
}

func (o Options) window() int {
	if o.Window < 1 {
		return DefaultWindow
	}
	return o.Window
}

// Result is one indoor climate scenario.
type Result struct {
	Temperature        []float64 // °C
	VaporConcentration []float64 // kg/m³
	RH                 []float64 // %
}

// MoistureExcess returns the indoor vapour excess for a mean outdoor
// temperature.
func MoistureExcess(teMean float64) float64 {
	return moistureExcess.At(teMean)
}

// S2Setpoint returns the S2 indoor temperature for a mean outdoor
// temperature.
func S2Setpoint(teMean float64) float64 {
	return s2Setpoint.At(teMean)
}

// Constant computes the scenario with a fixed indoor temperature ti.
func Constant(te, rhe []float64, ti float64, opts Options) (*Result, error) {
	ve, err := series.Map2(te, rhe, psychro.VaporConcentration)
	if err != nil {
		return nil, fmt.Errorf("indoor: outdoor vapour concentration: %w", err)
	}

	teMean := series.RollingMean(te, opts.window(), opts.Centered)
	veMean := series.RollingMean(ve, opts.window(), opts.Centered)

	vi, err := series.Map2(veMean, teMean, func(v, t float64) float64 {
		return v + MoistureExcess(t)
	})
	if err != nil {
		return nil, err
	}

	return scenario(series.Constant(len(te), ti), vi)
}

// S2 computes the scenario whose indoor temperature follows the S2 setpoint
// curve. It reuses the vapour concentration vi of the constant scenario.
func S2(te, vi []float64, opts Options) (*Result, error) {
	if len(te) != len(vi) {
		return nil, fmt.Errorf("%w: Te %d, vi %d", series.ErrLengthMismatch, len(te), len(vi))
	}

	teMean := series.RollingMean(te, opts.window(), opts.Centered)
	return scenario(s2Setpoint.Apply(teMean), vi)
}

func scenario(ti, vi []float64) (*Result, error) {
	rh, err := series.Map2(vi, ti, func(v, t float64) float64 {
		return 100.0 * v / psychro.SaturationConcentration(t)
	})
	if err != nil {
		return nil, err
	}

	return &Result{
		Temperature:        ti,
		VaporConcentration: append([]float64(nil), vi...),
		RH:                 series.CapAt(rh, MaxRH),
	}, nil
}
