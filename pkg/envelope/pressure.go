package envelope

import (
	"fmt"

	"github.com/anssilaukkarinen/bfty/internal/constants"
)

const (
	gravity          = 9.81  // m/s²
	gasConstantAir   = 287.0 // J/(kg·K)
	zeroCelsiusInAir = 273.15
)

// PressureResult is the air pressure difference over the envelope. Positive
// values push air outwards.
type PressureResult struct {
	Name      string
	Stack     []float64 // ΔP_T, Pa
	Wind      []float64 // ΔP_w, Pa
	Total     []float64 // ΔP, Pa
	Cpe       []float64
	Cpi       []float64
	LocalWind []float64 // m/s
	Indoor    []float64 // P_i = P_e + ΔP, Pa
}

// LocalWind converts airfield wind speed to the building site with the
// pressure roughness method.
func LocalWind(ws []float64, cfg Config) ([]float64, error) {
	cr, err := RoughnessCoefficient(cfg.Height, cfg.Terrain, cfg.PressureMethod)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(ws))
	for i, v := range ws {
		out[i] = v * cr * cfg.Topography
	}
	return out, nil
}

// Pressure computes the stack and wind pressure differences at mid-height
// of the building. te and ti are in °C, pe in Pa, ws is the airfield wind
// speed and wd the wind direction.
func Pressure(te, ti, pe, ws, wd []float64, cfg Config) (*PressureResult, error) {
	n := len(te)
	for _, s := range [][]float64{ti, pe, ws, wd} {
		if len(s) != n {
			return nil, fmt.Errorf("envelope: pressure inputs must have %d samples, got %d", n, len(s))
		}
	}

	local, err := LocalWind(ws, cfg)
	if err != nil {
		return nil, err
	}

	z := cfg.Height / 2
	r := &PressureResult{
		Name:      cfg.PressureName(),
		Stack:     make([]float64, n),
		Wind:      make([]float64, n),
		Total:     make([]float64, n),
		Cpe:       make([]float64, n),
		Cpi:       make([]float64, n),
		LocalWind: local,
		Indoor:    make([]float64, n),
	}

	for i := 0; i < n; i++ {
		teK := zeroCelsiusInAir + te[i]
		tiK := zeroCelsiusInAir + ti[i]
		stack := (gravity * z * pe[i] / gasConstantAir) * (1/teK - 1/tiK)

		rho := constants.AtmosphericPressure / (gasConstantAir * (zeroCelsiusInAir + (te[i]+ti[i])/2))
		cpe := ExternalCoefficient(wd[i], cfg.Orientation)
		cpi := InternalCoefficient(cpe, cfg.RecommendedCpi)
		wind := (cpi - cpe) * 0.5 * rho * local[i] * local[i]

		r.Stack[i] = stack
		r.Wind[i] = wind
		r.Total[i] = stack + wind
		r.Cpe[i] = cpe
		r.Cpi[i] = cpi
		r.Indoor[i] = pe[i] + stack + wind
	}

	return r, nil
}
