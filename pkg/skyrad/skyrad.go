// Package skyrad estimates the downward longwave radiation from the sky
// using an empirical emissivity fit on dew point, air temperature and the
// clearness index.
package skyrad

import (
	"errors"
	"fmt"
	"math"

	"github.com/anssilaukkarinen/bfty/internal/series"
	"github.com/anssilaukkarinen/bfty/pkg/psychro"
)

// StefanBoltzmann is the Stefan-Boltzmann constant, W/(m²·K⁴)
const StefanBoltzmann = 5.67e-8

// Emissivity fit coefficients
const (
	emissivityIntercept = 1.5357
	emissivityDewPoint  = 0.5981
	emissivityAirTemp   = 0.5687
	emissivityClearness = 0.2799
)

// ErrLengthMismatch is returned when the input series differ in length.
var ErrLengthMismatch = errors.New("skyrad: input series lengths differ")

// Result holds the sky radiation series together with the aligned inputs
// they were computed from.
type Result struct {
	AirTemperature []float64 // K, half-hour aligned
	DewPoint       []float64 // °C, half-hour aligned
	Emissivity     []float64 // -
	LongwaveDown   []float64 // W/m²
	SkyTemperature []float64 // K
	SkyDelta       []float64 // T_sky - T_air, K
}

// AlignHalfHour moves instantaneous on-the-hour temperature and relative
// humidity to the middle of the following hour. Humidity is shifted through
// the vapour concentration and converted back at the shifted temperature.
func AlignHalfHour(te, rh []float64) (teHalf, rhHalf []float64, err error) {
	if len(te) != len(rh) {
		return nil, nil, fmt.Errorf("%w: Te %d, RH %d", ErrLengthMismatch, len(te), len(rh))
	}

	ve, err := series.Map2(te, rh, psychro.VaporConcentration)
	if err != nil {
		return nil, nil, err
	}

	teHalf = series.HalfHourShift(te)
	veHalf := series.HalfHourShift(ve)

	rhHalf, err = series.Map2(veHalf, teHalf, func(v, t float64) float64 {
		return 100.0 * v / psychro.SaturationConcentration(t)
	})
	if err != nil {
		return nil, nil, err
	}
	return teHalf, rhHalf, nil
}

// Compute derives sky emissivity and longwave radiation. dewPoint is in °C,
// airTemp in K and clearness is the hourly clearness index; all three must
// share the same half-hour alignment.
func Compute(dewPoint, airTemp, clearness []float64) (*Result, error) {
	n := len(airTemp)
	if len(dewPoint) != n || len(clearness) != n {
		return nil, fmt.Errorf("%w: T_dew %d, T_air %d, K_t %d", ErrLengthMismatch, len(dewPoint), n, len(clearness))
	}

	r := &Result{
		AirTemperature: airTemp,
		DewPoint:       dewPoint,
		Emissivity:     make([]float64, n),
		LongwaveDown:   make([]float64, n),
		SkyTemperature: make([]float64, n),
		SkyDelta:       make([]float64, n),
	}

	for i := 0; i < n; i++ {
		e := emissivityIntercept +
			emissivityDewPoint*(dewPoint[i]/100.0) -
			emissivityAirTemp*(airTemp[i]/273.15) -
			emissivityClearness*clearness[i]

		lw := e * StefanBoltzmann * math.Pow(airTemp[i], 4)
		tsky := math.Pow(lw/StefanBoltzmann, 0.25)

		r.Emissivity[i] = e
		r.LongwaveDown[i] = lw
		r.SkyTemperature[i] = tsky
		r.SkyDelta[i] = tsky - airTemp[i]
	}

	return r, nil
}

// FromWeather runs the whole model from instantaneous outdoor temperature
// (°C) and relative humidity (%) and an hourly clearness profile.
func FromWeather(te, rh, clearness []float64) (*Result, error) {
	teHalf, rhHalf, err := AlignHalfHour(te, rh)
	if err != nil {
		return nil, err
	}

	dew, err := series.Map2(teHalf, rhHalf, psychro.DewPoint)
	if err != nil {
		return nil, err
	}

	return Compute(dew, series.Map(teHalf, psychro.Kelvin), clearness)
}
