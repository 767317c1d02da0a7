package export

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/anssilaukkarinen/bfty/internal/constants"
	"github.com/anssilaukkarinen/bfty/internal/series"
	"github.com/anssilaukkarinen/bfty/internal/types"
)

const (
	wacOutdoorDescription = "A Finnish Building physical test year"
	wacIndoorDescription  = "Indoor air conditions for a Finnish Building physical test year"
)

var (
	wacOutdoorColumns = []string{"TA", "HREL", "ISDH", "ISD", "ILAH", "RN", "WD", "WS", "PMSL"}
	wacIndoorColumns  = []string{"TA", "HREL", "PMSL"}
)

// WUFI writes WAC climate files for WUFI: outdoor air with humidity over
// water and over ice, and both indoor scenarios. WUFI reads hourly values
// as belonging to the preceding hour, so instantaneous values are moved
// one hour earlier.
type WUFI struct{}

func (WUFI) Name() string { return "wufi" }

func (WUFI) Export(dir string, r *types.YearResult) error {
	if r.Series == nil {
		return fmt.Errorf("export: %s has no series", r.Dataset)
	}
	y := r.Series
	base := filepath.Join(dir, "WUFI")

	get := func(names ...string) ([][]float64, error) {
		out := make([][]float64, len(names))
		for i, n := range names {
			v, err := y.Column(n)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	}

	cols, err := get(types.ColTe, types.ColRdir, types.ColRdif, types.ColLWdn, types.ColPrecip, types.ColWD, types.ColWS, types.ColPe)
	if err != nil {
		return err
	}
	te, rdir, rdif, lwdn, precip, wd, ws, pe := cols[0], cols[1], cols[2], cols[3], cols[4], cols[5], cols[6], cols[7]
	pmsl := series.Scaled(pe, 0.01)

	for _, o := range []struct{ rh, sub string }{
		{types.ColRHeWater, "outdoor_over_water"},
		{types.ColRHeIce, "outdoor_over_ice"},
	} {
		rh, err := y.Column(o.rh)
		if err != nil {
			return err
		}
		path := filepath.Join(base, o.sub, r.Dataset+"_"+o.rh+".wac")
		err = writeWAC(path, y, wacOutdoorDescription, wacOutdoorColumns, [][]float64{
			series.RotateEarlier(te),
			series.Scaled(series.RotateEarlier(rh), 0.01),
			rdir,
			rdif,
			lwdn,
			precip,
			series.RotateEarlier(wd),
			series.RotateEarlier(ws),
			pmsl,
		})
		if err != nil {
			return err
		}
	}

	for _, s := range []struct{ ti, rh, suffix string }{
		{types.ColTi21, types.ColRHiTi21, "Ti21"},
		{types.ColTiS2, types.ColRHiTiS2, "TiS2"},
	} {
		cols, err := get(s.ti, s.rh)
		if err != nil {
			return err
		}
		path := filepath.Join(base, "indoor", r.Dataset+"_"+s.suffix+".wac")
		err = writeWAC(path, y, wacIndoorDescription, wacIndoorColumns, [][]float64{
			series.RotateEarlier(cols[0]),
			series.Scaled(series.RotateEarlier(cols[1]), 0.01),
			pmsl,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func wacHeader(y *types.YearSeries, description string, columns []string) []string {
	return []string{
		"WUFI®_WAC_02",
		"10\tLine Offset to 'Number of Data Columns'",
		y.Title,
		description,
		fmt.Sprintf("%.2f\tLongitude [°]; East is positive", y.Site.Longitude),
		fmt.Sprintf("%.2f\tLatitude [°]; North is positive", y.Site.Latitude),
		strconv.FormatFloat(y.Site.HeightAMSL, 'f', -1, 64) + "\tHeightAMSL [m]",
		fmt.Sprintf("%.1f\tTime Zone [h from UTC]; East is positive", y.Site.TimeZone),
		"1\tTime Step [h]",
		fmt.Sprintf("%d\tNumber of DataLines", constants.HoursPerYear),
		fmt.Sprintf("%d\tNumber of DataColumns", len(columns)),
		strings.Join(columns, "\t"),
	}
}

// writeWAC writes a Windows-1252 encoded WAC file.
func writeWAC(path string, y *types.YearSeries, description string, columns []string, data [][]float64) error {
	return writeFile(path, func(w io.Writer) error {
		enc := charmap.Windows1252.NewEncoder().Writer(w)

		for _, line := range wacHeader(y, description, columns) {
			if _, err := io.WriteString(enc, line+"\n"); err != nil {
				return err
			}
		}

		fields := make([]string, len(data))
		for i := 0; i < constants.HoursPerYear; i++ {
			for j, col := range data {
				fields[j] = strconv.FormatFloat(col[i], 'f', 2, 64)
			}
			if _, err := io.WriteString(enc, strings.Join(fields, "\t")+"\n"); err != nil {
				return err
			}
		}
		if c, ok := enc.(io.Closer); ok {
			return c.Close()
		}
		return nil
	})
}
