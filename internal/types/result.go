package types

import (
	"time"

	"github.com/anssilaukkarinen/bfty/pkg/envelope"
	"github.com/anssilaukkarinen/bfty/pkg/indoor"
	"github.com/anssilaukkarinen/bfty/pkg/skyrad"
	"github.com/anssilaukkarinen/bfty/pkg/solar"
)

// YearResult collects everything computed for one year in a run. It is
// read-only once the pipeline hands it to exporters.
type YearResult struct {
	RunID    string    `json:"run_id"`
	Dataset  string    `json:"dataset"`
	Computed time.Time `json:"computed"`

	Series *YearSeries `json:"-"`

	Clearness *solar.Profile           `json:"clearness"`
	Sky       *skyrad.Result           `json:"sky"`
	Ti21      *indoor.Result           `json:"ti21"`
	TiS2      *indoor.Result           `json:"tis2"`
	Pressure  *envelope.PressureResult `json:"pressure"`
	Rain      *envelope.RainResult     `json:"rain"`
}

// Bundle is the serialisable form of a YearResult with every column flattened.
type Bundle struct {
	RunID    string               `json:"run_id"`
	Dataset  string               `json:"dataset"`
	Title    string               `json:"title"`
	Site     Site                 `json:"site"`
	Computed time.Time            `json:"computed"`
	Columns  map[string][]float64 `json:"columns"`

	HalfDays        []solar.HalfDay `json:"half_days"`
	AnnualRainTotal float64         `json:"annual_rain_total"`
}

// Bundle flattens the result.
func (r *YearResult) Bundle() *Bundle {
	b := &Bundle{
		RunID:    r.RunID,
		Dataset:  r.Dataset,
		Computed: r.Computed,
		Columns:  make(map[string][]float64),
	}
	if r.Series != nil {
		b.Title = r.Series.Title
		b.Site = r.Series.Site
		for _, name := range r.Series.Columns() {
			b.Columns[name] = r.Series.MustColumn(name)
		}
	}
	if r.Clearness != nil {
		b.HalfDays = r.Clearness.HalfDays
	}
	if r.Rain != nil {
		b.AnnualRainTotal = r.Rain.AnnualTotal
	}
	return b
}
