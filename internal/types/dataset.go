package types

import (
	"errors"
	"fmt"
	"sort"

	"github.com/anssilaukkarinen/bfty/internal/constants"
)

// Raw input column names
const (
	ColTe       = "Te"        // outdoor air temperature, instantaneous, °C
	ColRHeWater = "RHe_water" // outdoor RH over water, instantaneous, %
	ColRHeIce   = "RHe_ice"   // outdoor RH over ice, %
	ColRglob    = "Rglob"     // global horizontal irradiance, preceding hour mean, W/m²
	ColRdif     = "Rdif"      // diffuse horizontal irradiance, W/m²
	ColRbeam    = "Rbeam"     // beam normal irradiance, W/m²
	ColWS       = "ws"        // wind speed at 10 m, m/s
	ColWD       = "wd"        // wind direction, deg
	ColPrecip   = "precip"    // precipitation, preceding hour sum, mm/h
)

// Derived column names
const (
	ColRdir     = "Rdir"
	ColLWdn     = "LWdn"
	ColPe       = "Pe"
	ColTi21     = "Ti_21"
	ColViTi21   = "vi_Ti21"
	ColRHiTi21  = "RHi_Ti21"
	ColTiS2     = "Ti_S2"
	ColViTiS2   = "vi_TiS2"
	ColRHiTiS2  = "RHi_TiS2"
	ColWSLocal  = "ws_local"
	ColPi       = "Pi"
	ColWDR      = "WDR"
	ColKt       = "Kt"
	ColI0       = "I0"
	ColEmis     = "emis_sky"
	ColTsky     = "T_sky"
	ColDTsky    = "dTsky"
	ColTairHalf = "Tair_half"
	ColTdewHalf = "Tdew_half"
)

// RequiredColumns must be present in every input table.
var RequiredColumns = []string{ColTe, ColRHeWater, ColRglob, ColRdif, ColRbeam, ColWS, ColWD, ColPrecip}

var (
	// ErrColumnExists is returned when a derived column is added twice.
	ErrColumnExists = errors.New("column already exists")
	// ErrColumnLength is returned for a column that does not cover the year.
	ErrColumnLength = errors.New("column does not cover the annual grid")
	// ErrNoColumn is returned when a column is not found.
	ErrNoColumn = errors.New("no such column")
)

// Site is a weather station location.
type Site struct {
	Name       string  `json:"name" yaml:"name"`
	Latitude   float64 `json:"latitude" yaml:"latitude"`   // deg, north positive
	Longitude  float64 `json:"longitude" yaml:"longitude"` // deg, east positive
	HeightAMSL float64 `json:"height_amsl" yaml:"height_amsl"`
	TimeZone   float64 `json:"time_zone" yaml:"time_zone"` // h from UTC, east positive
	Title      string  `json:"title" yaml:"title"`         // e.g. "Jokioinen"
}

// YearSeries is one test year. Raw columns are read once from the input and
// never changed; derivation stages only add derived columns.
type YearSeries struct {
	Name  string // scenario name, e.g. jok2004
	Title string // e.g. Jokioinen 2004
	Site  Site

	raw     map[string][]float64
	derived map[string][]float64
}

// NewYearSeries creates a year from its raw columns. Every column must hold
// exactly one value per hour of the year.
func NewYearSeries(name, title string, site Site, raw map[string][]float64) (*YearSeries, error) {
	y := &YearSeries{
		Name:    name,
		Title:   title,
		Site:    site,
		raw:     make(map[string][]float64, len(raw)),
		derived: make(map[string][]float64),
	}

	for col, values := range raw {
		if len(values) != constants.HoursPerYear {
			return nil, fmt.Errorf("%s: %q has %d values: %w", name, col, len(values), ErrColumnLength)
		}
		y.raw[col] = values
	}
	return y, nil
}

// AppendDerived adds a derived column.
func (y *YearSeries) AppendDerived(name string, values []float64) error {
	if _, ok := y.derived[name]; ok {
		return fmt.Errorf("%s: %q: %w", y.Name, name, ErrColumnExists)
	}
	if len(values) != constants.HoursPerYear {
		return fmt.Errorf("%s: %q has %d values: %w", y.Name, name, len(values), ErrColumnLength)
	}
	y.derived[name] = values
	return nil
}

// Column returns a column by name, preferring a derived column over a raw
// one of the same name.
func (y *YearSeries) Column(name string) ([]float64, error) {
	if v, ok := y.derived[name]; ok {
		return v, nil
	}
	if v, ok := y.raw[name]; ok {
		return v, nil
	}
	return nil, fmt.Errorf("%s: %q: %w", y.Name, name, ErrNoColumn)
}

// MustColumn is Column for columns a previous stage is known to have added.
func (y *YearSeries) MustColumn(name string) []float64 {
	v, err := y.Column(name)
	if err != nil {
		panic(err)
	}
	return v
}

// HasColumn reports whether a raw or derived column exists.
func (y *YearSeries) HasColumn(name string) bool {
	_, err := y.Column(name)
	return err == nil
}

// Columns returns the names of all columns in sorted order.
func (y *YearSeries) Columns() []string {
	seen := make(map[string]struct{}, len(y.raw)+len(y.derived))
	names := make([]string, 0, len(y.raw)+len(y.derived))
	for _, m := range []map[string][]float64{y.raw, y.derived} {
		for k := range m {
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				names = append(names, k)
			}
		}
	}
	sort.Strings(names)
	return names
}

// Derived returns a copy of the derived column map.
func (y *YearSeries) Derived() map[string][]float64 {
	out := make(map[string][]float64, len(y.derived))
	for k, v := range y.derived {
		out[k] = v
	}
	return out
}
