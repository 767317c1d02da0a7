package solar

import (
	"math"

	"github.com/anssilaukkarinen/bfty/internal/constants"
)

// Constants
const (
	solarConstant = 1367.0 // Solar constant in W/m² used by the clearness correlation

	// Reference meridian of the test-year clock time (UTC+2), degrees east.
	referenceMeridian = 30.0

	// Hour of the year at which the declination sine crosses zero upwards,
	// placing the summer solstice near hour 4134.
	declinationPhase = 1944.0

	// Perihelion offset for the eccentricity correction, hours (3 days).
	perihelionOffset = 3 * constants.HoursPerDay

	maxDeclinationDeg = 23.45
)

// degToRad converts an angle from degrees to radians for trigonometric calculations
func degToRad(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}

// Geometry holds the solar position quantities for every hour of the annual
// grid. Index i describes the midpoint of hour i, t = i + 0.5, because the
// measured irradiance is the mean flux of the preceding hour.
type Geometry struct {
	Time              []float64 // hours from Jan 1 00:00
	Declination       []float64 // rad
	ClockHour         []float64 // local clock time, h
	EquationOfTime    []float64 // min
	ApparentSolarTime []float64 // h
	HourAngle         []float64 // rad
	Eccentricity      []float64 // Earth-Sun distance correction, -
	Extraterrestrial  []float64 // horizontal irradiance without atmosphere, W/m²; negative below the horizon
}

// Declination returns the solar declination in radians at hour t of a
// 8760-hour year.
func Declination(t float64) float64 {
	return degToRad(maxDeclinationDeg) * math.Sin(2*math.Pi*(t-declinationPhase)/constants.HoursPerYear)
}

// EquationOfTime returns the equation-of-time correction in minutes at hour t.
func EquationOfTime(t float64) float64 {
	gamma := 2 * math.Pi * (t / constants.HoursPerYear)
	fourier := 0.0075 +
		0.1868*math.Cos(gamma) -
		3.2077*math.Sin(gamma) -
		1.4615*math.Cos(2*gamma) -
		4.089*math.Sin(2*gamma)
	return 2.2918 * fourier
}

// EccentricityFactor returns the Earth-Sun distance correction at hour t.
func EccentricityFactor(t float64) float64 {
	return 1 + 0.033*math.Cos(2*math.Pi*(t-perihelionOffset)/constants.HoursPerYear)
}

// NewGeometry computes the hourly solar geometry for a site. Latitude is
// given in radians, longitude in degrees east.
func NewGeometry(latitudeRad, longitudeDeg float64) *Geometry {
	n := constants.HoursPerYear
	g := &Geometry{
		Time:              make([]float64, n),
		Declination:       make([]float64, n),
		ClockHour:         make([]float64, n),
		EquationOfTime:    make([]float64, n),
		ApparentSolarTime: make([]float64, n),
		HourAngle:         make([]float64, n),
		Eccentricity:      make([]float64, n),
		Extraterrestrial:  make([]float64, n),
	}

	sinLat, cosLat := math.Sincos(latitudeRad)
	longitudeCorrection := (longitudeDeg - referenceMeridian) / 15.0

	for i := 0; i < n; i++ {
		t := float64(i) + 0.5
		g.Time[i] = t
		g.Declination[i] = Declination(t)
		g.ClockHour[i] = float64(i%constants.HoursPerDay) + 0.5
		g.EquationOfTime[i] = EquationOfTime(t)
		g.ApparentSolarTime[i] = g.ClockHour[i] + g.EquationOfTime[i]/60.0 + longitudeCorrection
		g.HourAngle[i] = degToRad(15 * (g.ApparentSolarTime[i] - 12.0))
		g.Eccentricity[i] = EccentricityFactor(t)

		sinDecl, cosDecl := math.Sincos(g.Declination[i])
		cosZenith := cosLat*cosDecl*math.Cos(g.HourAngle[i]) + sinLat*sinDecl
		g.Extraterrestrial[i] = g.Eccentricity[i] * solarConstant * cosZenith
	}

	return g
}
