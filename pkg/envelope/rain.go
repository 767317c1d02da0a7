package envelope

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// RainResult is the wind-driven rain load on the facade.
type RainResult struct {
	Name          string
	AirfieldIndex []float64 // free-flow driving rain at the weather station, l/(m²·h)
	Flux          []float64 // rain on the wall, l/(m²·s)
	AnnualTotal   float64   // l/(m²·a)
}

// AirfieldIndex returns the airfield driving rain index of SFS-EN ISO
// 15927-3. Precipitation is ignored for hours colder than teMin.
func AirfieldIndex(ws, wd, precip, te []float64, teMin, orientation float64) ([]float64, error) {
	n := len(ws)
	if len(wd) != n || len(precip) != n || len(te) != n {
		return nil, fmt.Errorf("envelope: rain inputs differ in length (ws %d, wd %d, precip %d, Te %d)", n, len(wd), len(precip), len(te))
	}

	out := make([]float64, n)
	for i := 0; i < n; i++ {
		if te[i] < teMin {
			continue
		}
		d := SmallestAngle(orientation, wd[i]) * math.Pi / 180
		cos := math.Max(math.Cos(d), 0)
		out[i] = (2.0 / 9.0) * ws[i] * math.Pow(precip[i], 8.0/9.0) * cos
	}
	return out, nil
}

// DrivingRain computes the wind-driven rain flux on the facade.
func DrivingRain(ws, wd, precip, te []float64, cfg Config) (*RainResult, error) {
	ia, err := AirfieldIndex(ws, wd, precip, te, cfg.FreezeThreshold, cfg.Orientation)
	if err != nil {
		return nil, err
	}

	cr, err := RoughnessCoefficient(cfg.Height, cfg.Terrain, cfg.RainMethod)
	if err != nil {
		return nil, err
	}

	flux := make([]float64, len(ia))
	floats.ScaleTo(flux, cr*cfg.Topography*cfg.Obstruction*cfg.Wall/3600, ia)

	return &RainResult{
		Name:          cfg.RainName(),
		AirfieldIndex: ia,
		Flux:          flux,
		AnnualTotal:   floats.Sum(flux) * 3600,
	}, nil
}
