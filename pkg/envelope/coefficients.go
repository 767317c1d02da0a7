package envelope

import "math"

// SmallestAngle returns target - source in degrees, wrapped once into
// [-180, 180].
func SmallestAngle(source, target float64) float64 {
	a := target - source
	if a > 180 {
		a -= 360
	} else if a < -180 {
		a += 360
	}
	return a
}

// ExternalCoefficient returns cpe for wind from direction wd on a facade
// with the given orientation.
func ExternalCoefficient(wd, orientation float64) float64 {
	a := math.Abs(SmallestAngle(wd, orientation))
	switch {
	case a >= 135:
		// leeward
		return -0.5
	case a < 45:
		// windward
		return 1.0
	default:
		return -1.4
	}
}

// InternalCoefficient returns cpi for a given cpe.
func InternalCoefficient(cpe float64, recommended bool) float64 {
	if recommended || cpe > 0 {
		return -0.3
	}
	return 0.2
}
