package export

import (
	"fmt"

	"github.com/anssilaukkarinen/bfty/internal/series"
	"github.com/anssilaukkarinen/bfty/internal/types"
)

// Column is one exported quantity with its names in the Delphin formats.
type Column struct {
	Key        string // logical column name
	D6Name     string // Delphin 6 quantity and unit, also used in csv headers
	D5Keyword  string // Delphin 5 keyword and unit, empty when not exported
	Cumulative bool   // preceding-hour mean or sum
	Scientific bool   // written with exponent notation
}

// Columns is the exported column set in output order.
var Columns = []Column{
	{Key: types.ColTe, D6Name: "Temperature C", D5Keyword: "TEMPER C"},
	{Key: types.ColRHeWater, D6Name: "RelativeHumidity %", D5Keyword: "RELHUM %"},
	{Key: types.ColRHeIce, D6Name: "RelativeHumidity %", D5Keyword: "RELHUM %"},
	{Key: types.ColTi21, D6Name: "Temperature C", D5Keyword: "TEMPER C"},
	{Key: types.ColRHiTi21, D6Name: "RelativeHumidity %", D5Keyword: "RELHUM %"},
	{Key: types.ColTiS2, D6Name: "Temperature C", D5Keyword: "TEMPER C"},
	{Key: types.ColRHiTiS2, D6Name: "RelativeHumidity %", D5Keyword: "RELHUM %"},
	{Key: types.ColWS, D6Name: "WindVelocity m/s", D5Keyword: "WINDVEL m/s"},
	{Key: types.ColWD, D6Name: "WindDirection Deg", D5Keyword: "WINDDIR Deg"},
	{Key: types.ColPrecip, D6Name: "RainFluxHorizontal l/m2h", D5Keyword: "HORRAIN l/m2h", Cumulative: true},
	{Key: types.ColRdif, D6Name: "SWRadiationDiffuse W/m2", D5Keyword: "DIFRAD W/m2", Cumulative: true},
	{Key: types.ColRdir, D6Name: "SWRadiationDirect W/m2", D5Keyword: "DIRRAD W/m2", Cumulative: true},
	{Key: types.ColRbeam, D6Name: "DirectRadiationNormal W/m2", Cumulative: true},
	{Key: types.ColLWdn, D6Name: "LWRadiationSkyEmission W/m2", D5Keyword: "SKYEMISS W/m2", Cumulative: true},
	{Key: types.ColPe, D6Name: "GasPressure Pa", D5Keyword: "GASPRESS Pa"},
	{Key: types.ColPi, D6Name: "GasPressure Pa", D5Keyword: "GASPRESS Pa"},
	{Key: types.ColWDR, D6Name: "RainFluxNormal l/m2s", D5Keyword: "ThisIsPlaceHolderForWDR l/m2s", Cumulative: true, Scientific: true},
}

// FileName returns the name the column's files are written under. The
// pressure and rain columns carry the building configuration in their name.
func (c Column) FileName(r *types.YearResult) string {
	switch c.Key {
	case types.ColPi:
		if r.Pressure != nil {
			return r.Pressure.Name
		}
	case types.ColWDR:
		if r.Rain != nil {
			return r.Rain.Name
		}
	}
	return c.Key
}

// Values returns the column's hourly values from the result.
func (c Column) Values(r *types.YearResult) ([]float64, error) {
	if r.Series == nil {
		return nil, fmt.Errorf("export: %s has no series", r.Dataset)
	}
	return r.Series.Column(c.FileName(r))
}

// valuesFollowing returns the values shifted to the following hour for
// cumulative columns.
func (c Column) valuesFollowing(r *types.YearResult) ([]float64, error) {
	v, err := c.Values(r)
	if err != nil {
		return nil, err
	}
	if c.Cumulative {
		return series.RotateEarlier(v), nil
	}
	return v, nil
}

func (c Column) format() string {
	if c.Scientific {
		return "%.2e"
	}
	return "%.2f"
}
