// Package export writes computed test years in the file formats of the
// building physics simulation tools.
package export

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"

	"github.com/anssilaukkarinen/bfty/internal/log"
	"github.com/anssilaukkarinen/bfty/internal/metrics"
	"github.com/anssilaukkarinen/bfty/internal/timegrid"
	"github.com/anssilaukkarinen/bfty/internal/types"
)

// ErrUnknownFormat is returned for an output format with no exporter.
var ErrUnknownFormat = errors.New("export: unknown format")

// Exporter writes one year in one format below a base directory.
type Exporter interface {
	Name() string
	Export(dir string, r *types.YearResult) error
}

// New returns the exporter for a format name. grid places the hours of
// formats that carry timestamps; nil selects the default reference year.
func New(format string, grid *timegrid.Grid) (Exporter, error) {
	switch format {
	case "csv":
		return CSV{}, nil
	case "delphin5":
		return Delphin5{}, nil
	case "delphin6":
		return Delphin6{}, nil
	case "wufi":
		return WUFI{}, nil
	case "lwrad":
		return LWrad{}, nil
	case "parquet":
		return Parquet{Grid: grid}, nil
	case "msgpack":
		return Msgpack{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Writer runs a set of exporters over computed years.
type Writer struct {
	Dir       string
	Exporters []Exporter
	Metrics   *metrics.Metrics
}

// NewWriter builds a Writer for the named formats.
func NewWriter(dir string, formats []string, grid *timegrid.Grid, m *metrics.Metrics) (*Writer, error) {
	w := &Writer{Dir: dir, Metrics: m}
	for _, f := range formats {
		e, err := New(f, grid)
		if err != nil {
			return nil, err
		}
		w.Exporters = append(w.Exporters, e)
	}
	return w, nil
}

// WriteAll exports every year in every format. A failing export does not
// stop the others; all failures are returned together.
func (w *Writer) WriteAll(ctx context.Context, results []*types.YearResult) error {
	var result *multierror.Error

	for _, r := range results {
		for _, e := range w.Exporters {
			if err := ctx.Err(); err != nil {
				return multierror.Append(result, err).ErrorOrNil()
			}

			err := e.Export(w.Dir, r)
			outcome := "success"
			if err != nil {
				outcome = "error"
				log.Errorw("export failed", "dataset", r.Dataset, "format", e.Name(), "error", err)
				result = multierror.Append(result, fmt.Errorf("%s %s: %w", r.Dataset, e.Name(), err))
			} else {
				log.Debugw("exported", "dataset", r.Dataset, "format", e.Name())
			}
			if w.Metrics != nil {
				w.Metrics.Exports.WithLabelValues(e.Name(), outcome).Inc()
			}
		}
	}

	return result.ErrorOrNil()
}

// writeFile creates path and its parent directories and hands a buffered
// writer to fn.
func writeFile(path string, fn func(w io.Writer) error) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	bw := bufio.NewWriter(f)
	if err := fn(bw); err != nil {
		return err
	}
	return bw.Flush()
}
