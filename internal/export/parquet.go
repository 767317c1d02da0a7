package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/anssilaukkarinen/bfty/internal/timegrid"
	"github.com/anssilaukkarinen/bfty/internal/types"
)

// HourRecord is one row of the hourly parquet table.
type HourRecord struct {
	Hour      int32   `parquet:"name=hour, type=INT32"`
	Time      int64   `parquet:"name=time, type=INT64, convertedtype=TIMESTAMP_MILLIS"`
	Te        float64 `parquet:"name=te, type=DOUBLE"`
	RHeWater  float64 `parquet:"name=rhe_water, type=DOUBLE"`
	RHeIce    float64 `parquet:"name=rhe_ice, type=DOUBLE"`
	Ti21      float64 `parquet:"name=ti_21, type=DOUBLE"`
	RHiTi21   float64 `parquet:"name=rhi_ti21, type=DOUBLE"`
	TiS2      float64 `parquet:"name=ti_s2, type=DOUBLE"`
	RHiTiS2   float64 `parquet:"name=rhi_tis2, type=DOUBLE"`
	WS        float64 `parquet:"name=ws, type=DOUBLE"`
	WD        float64 `parquet:"name=wd, type=DOUBLE"`
	Precip    float64 `parquet:"name=precip, type=DOUBLE"`
	Rdif      float64 `parquet:"name=rdif, type=DOUBLE"`
	Rdir      float64 `parquet:"name=rdir, type=DOUBLE"`
	Rbeam     float64 `parquet:"name=rbeam, type=DOUBLE"`
	LWdn      float64 `parquet:"name=lwdn, type=DOUBLE"`
	Pe        float64 `parquet:"name=pe, type=DOUBLE"`
	Pi        float64 `parquet:"name=pi, type=DOUBLE"`
	WDR       float64 `parquet:"name=wdr, type=DOUBLE"`
	Clearness float64 `parquet:"name=kt, type=DOUBLE"`
}

// Parquet writes the exported columns of a year as one snappy compressed
// parquet table with a timestamp on the reference year grid.
type Parquet struct {
	Grid *timegrid.Grid
}

func (Parquet) Name() string { return "parquet" }

func (p Parquet) Export(dir string, r *types.YearResult) error {
	grid := p.Grid
	if grid == nil {
		var err error
		if grid, err = timegrid.New(timegrid.DefaultReferenceYear); err != nil {
			return err
		}
	}

	records, err := hourRecords(r, grid)
	if err != nil {
		return err
	}

	buf := new(bytes.Buffer)
	pw, err := writer.NewParquetWriterFromWriter(buf, new(HourRecord), 1)
	if err != nil {
		return fmt.Errorf("creating parquet writer for %s: %w", r.Dataset, err)
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for i := range records {
		if err := pw.Write(records[i]); err != nil {
			return fmt.Errorf("writing parquet record %d for %s: %w", i, r.Dataset, err)
		}
	}
	if err := stopParquet(pw); err != nil {
		return fmt.Errorf("finishing parquet file for %s: %w", r.Dataset, err)
	}

	path := filepath.Join(dir, "parquet", r.Dataset+".parquet")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// stopParquet flushes the writer. WriteStop can panic on internal errors.
func stopParquet(pw *writer.ParquetWriter) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("parquet writer panicked: %v", rec)
		}
	}()
	return pw.WriteStop()
}

func hourRecords(r *types.YearResult, grid *timegrid.Grid) ([]HourRecord, error) {
	cols := make(map[string][]float64, len(Columns))
	for _, c := range Columns {
		v, err := c.Values(r)
		if err != nil {
			return nil, err
		}
		cols[c.Key] = v
	}
	kt := make([]float64, len(cols[types.ColTe]))
	if r.Clearness != nil {
		kt = r.Clearness.Clearness
	}

	records := make([]HourRecord, len(cols[types.ColTe]))
	for i := range records {
		records[i] = HourRecord{
			Hour:      int32(i),
			Time:      grid.Time(i).UnixMilli(),
			Te:        cols[types.ColTe][i],
			RHeWater:  cols[types.ColRHeWater][i],
			RHeIce:    cols[types.ColRHeIce][i],
			Ti21:      cols[types.ColTi21][i],
			RHiTi21:   cols[types.ColRHiTi21][i],
			TiS2:      cols[types.ColTiS2][i],
			RHiTiS2:   cols[types.ColRHiTiS2][i],
			WS:        cols[types.ColWS][i],
			WD:        cols[types.ColWD][i],
			Precip:    cols[types.ColPrecip][i],
			Rdif:      cols[types.ColRdif][i],
			Rdir:      cols[types.ColRdir][i],
			Rbeam:     cols[types.ColRbeam][i],
			LWdn:      cols[types.ColLWdn][i],
			Pe:        cols[types.ColPe][i],
			Pi:        cols[types.ColPi][i],
			WDR:       cols[types.ColWDR][i],
			Clearness: kt[i],
		}
	}
	return records, nil
}
