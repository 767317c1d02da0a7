// Package timegrid maps sample indices of the annual hourly grid to
// calendar time on a fixed, non-leap reference year.
package timegrid

import (
	"errors"
	"fmt"
	"time"

	"github.com/soniakeys/meeus/v3/julian"

	"github.com/anssilaukkarinen/bfty/internal/constants"
)

// DefaultReferenceYear is used when no reference year is configured.
const DefaultReferenceYear = 2001

// ErrLeapYear is returned for a reference year with 366 days.
var ErrLeapYear = errors.New("timegrid: reference year must not be a leap year")

// Grid is the annual hourly grid anchored at Jan 1 00:00 of a reference
// year. Times are wall-clock times of the dataset, carried in UTC.
type Grid struct {
	Year    int
	startJD float64
}

// New returns the grid for year.
func New(year int) (*Grid, error) {
	if julian.LeapYearGregorian(year) {
		return nil, fmt.Errorf("%w: %d", ErrLeapYear, year)
	}
	return &Grid{
		Year:    year,
		startJD: julian.CalendarGregorianToJD(year, 1, 1),
	}, nil
}

// Time returns the timestamp of sample i, rounded to the second.
func (g *Grid) Time(i int) time.Time {
	jd := g.startJD + float64(i)/constants.HoursPerDay
	return julian.JDToTime(jd).UTC().Round(time.Second)
}

// Times returns the timestamps of the whole year.
func (g *Grid) Times() []time.Time {
	out := make([]time.Time, constants.HoursPerYear)
	for i := range out {
		out[i] = g.Time(i)
	}
	return out
}

// DayHour returns the 1-based day of the year and the hour of the day of
// sample i.
func DayHour(i int) (day, hour int) {
	return i/constants.HoursPerDay + 1, i % constants.HoursPerDay
}

// Calendar returns month and day of month for the day of the year of
// sample i.
func Calendar(i int) (month, day int) {
	doy, _ := DayHour(i)
	return julian.DayOfYearToCalendar(doy, false)
}
