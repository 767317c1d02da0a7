// Package constants defines application-wide constants and version information.
package constants

import "runtime"

// Version holds the application version information
const Version = "1.0-" + runtime.GOOS + "/" + runtime.GOARCH

// Annual grid shared by every dataset: a non-leap year of hourly samples
// starting Jan 1 00:00.
const (
	HoursPerDay  = 24
	DaysPerYear  = 365
	HoursPerYear = HoursPerDay * DaysPerYear
)

// AtmosphericPressure is the constant outdoor air pressure used for all
// datasets, Pa.
const AtmosphericPressure = 101325.0
