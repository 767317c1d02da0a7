// Package pipeline turns configured test years into boundary conditions.
// Every year is computed completely before anything is exported, so a
// failing year leaves no partial output behind.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/anssilaukkarinen/bfty/internal/constants"
	"github.com/anssilaukkarinen/bfty/internal/export"
	"github.com/anssilaukkarinen/bfty/internal/input"
	"github.com/anssilaukkarinen/bfty/internal/log"
	"github.com/anssilaukkarinen/bfty/internal/metrics"
	"github.com/anssilaukkarinen/bfty/internal/storage/sqlite"
	"github.com/anssilaukkarinen/bfty/internal/timegrid"
	"github.com/anssilaukkarinen/bfty/internal/types"
	"github.com/anssilaukkarinen/bfty/pkg/config"
)

// ErrUnknownDataset is returned when a requested dataset is not configured.
var ErrUnknownDataset = errors.New("pipeline: unknown dataset")

// Pipeline runs the derivation stages and the exporters.
type Pipeline struct {
	cfg     *config.ConfigData
	grid    *timegrid.Grid
	clock   clockwork.Clock
	metrics *metrics.Metrics
	store   *sqlite.Store
	writer  *export.Writer
	logger  *zap.SugaredLogger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithClock sets the clock used for run timestamps and stage timing.
func WithClock(c clockwork.Clock) Option {
	return func(p *Pipeline) { p.clock = c }
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Pipeline) { p.metrics = m }
}

// WithStore saves every computed year to a results database.
func WithStore(s *sqlite.Store) Option {
	return func(p *Pipeline) { p.store = s }
}

// WithLogger sets the logger.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// New creates a pipeline for cfg.
func New(cfg *config.ConfigData, opts ...Option) (*Pipeline, error) {
	grid, err := timegrid.New(cfg.Pipeline.ReferenceYear)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		cfg:   cfg,
		grid:  grid,
		clock: clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.metrics == nil {
		p.metrics = metrics.New()
	}
	if p.logger == nil {
		p.logger = log.GetSugaredLogger()
	}

	formats := cfg.Output.Formats
	if len(formats) == 0 {
		formats = config.DefaultFormats()
	}
	p.writer, err = export.NewWriter(cfg.Output.Dir, formats, grid, p.metrics)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Grid returns the reference year grid.
func (p *Pipeline) Grid() *timegrid.Grid { return p.grid }

// Metrics returns the metrics collector.
func (p *Pipeline) Metrics() *metrics.Metrics { return p.metrics }

// Summary describes a finished run.
type Summary struct {
	RunID    string
	Started  time.Time
	Finished time.Time
	Results  []*types.YearResult
}

// Run computes the configured datasets, or only the named ones, and
// exports them.
func (p *Pipeline) Run(ctx context.Context, only []string) (*Summary, error) {
	datasets, err := p.selectDatasets(only)
	if err != nil {
		return nil, err
	}

	s := &Summary{RunID: uuid.NewString(), Started: p.clock.Now()}
	p.logger.Infow("starting run", "run_id", s.RunID, "datasets", len(datasets), "workers", p.cfg.Pipeline.Workers)

	if p.store != nil {
		run := sqlite.Run{ID: s.RunID, StartedAt: s.Started, Version: constants.Version}
		if err := p.store.StartRun(ctx, run); err != nil {
			return nil, fmt.Errorf("recording run: %w", err)
		}
	}

	s.Results, err = p.computeAll(ctx, s.RunID, datasets)
	if err != nil {
		return nil, err
	}

	if p.store != nil {
		for _, r := range s.Results {
			if err := p.store.SaveYear(ctx, r, r.Bundle().Columns); err != nil {
				return nil, fmt.Errorf("saving %s: %w", r.Dataset, err)
			}
		}
	}

	if err := p.writer.WriteAll(ctx, s.Results); err != nil {
		return nil, err
	}

	s.Finished = p.clock.Now()
	if p.store != nil {
		if err := p.store.FinishRun(ctx, s.RunID, s.Finished, len(s.Results)); err != nil {
			return nil, fmt.Errorf("recording run: %w", err)
		}
	}

	p.metrics.RunTimestamp.Set(float64(s.Finished.Unix()))
	if path := p.cfg.Output.MetricsFile; path != "" {
		if err := p.metrics.WriteTextfile(path); err != nil {
			return nil, fmt.Errorf("writing metrics: %w", err)
		}
	}

	p.logger.Infow("run complete", "run_id", s.RunID, "datasets", len(s.Results), "duration", s.Finished.Sub(s.Started))
	return s, nil
}

func (p *Pipeline) selectDatasets(only []string) ([]config.DatasetData, error) {
	if len(only) == 0 {
		return p.cfg.Datasets, nil
	}

	var out []config.DatasetData
	for _, name := range only {
		i := slices.IndexFunc(p.cfg.Datasets, func(d config.DatasetData) bool { return d.Name == name })
		if i < 0 {
			return nil, fmt.Errorf("%w: %q", ErrUnknownDataset, name)
		}
		out = append(out, p.cfg.Datasets[i])
	}
	return out, nil
}

// computeAll runs the years on up to cfg.Pipeline.Workers goroutines. The
// first failure cancels the years not yet started.
func (p *Pipeline) computeAll(ctx context.Context, runID string, datasets []config.DatasetData) ([]*types.YearResult, error) {
	results := make([]*types.YearResult, len(datasets))

	g, ctx := errgroup.WithContext(ctx)
	workers := p.cfg.Pipeline.Workers
	if workers < 1 {
		workers = 1
	}
	g.SetLimit(workers)

	for i, d := range datasets {
		i, d := i, d
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			y, err := p.LoadYear(d)
			if err == nil {
				results[i], err = p.ComputeYear(ctx, runID, y)
			}
			if err != nil {
				p.metrics.DatasetsProcessed.WithLabelValues("error").Inc()
				return fmt.Errorf("%s: %w", d.Name, err)
			}
			p.metrics.DatasetsProcessed.WithLabelValues("success").Inc()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// LoadYear reads a dataset's input table and attaches its site.
func (p *Pipeline) LoadYear(d config.DatasetData) (*types.YearSeries, error) {
	site, err := config.ResolveSite(p.cfg.Sites, d.Name)
	if err != nil {
		return nil, err
	}

	path := d.File
	if !filepath.IsAbs(path) {
		path = filepath.Join(p.cfg.InputDir, path)
	}
	table, err := input.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return types.NewYearSeries(d.Name, d.TitleFor(site), site, table)
}
