package pipeline

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"github.com/anssilaukkarinen/bfty/internal/constants"
	"github.com/anssilaukkarinen/bfty/internal/series"
	"github.com/anssilaukkarinen/bfty/internal/types"
	"github.com/anssilaukkarinen/bfty/pkg/envelope"
	"github.com/anssilaukkarinen/bfty/pkg/indoor"
	"github.com/anssilaukkarinen/bfty/pkg/psychro"
	"github.com/anssilaukkarinen/bfty/pkg/skyrad"
	"github.com/anssilaukkarinen/bfty/pkg/solar"
)

// Stage names, also used as metric labels.
const (
	StageClearness = "clearness"
	StageSky       = "sky"
	StageRadiation = "radiation"
	StageOutdoor   = "outdoor"
	StageIndoor    = "indoor"
	StagePressure  = "pressure"
	StageRain      = "rain"
)

// Suffixes of the pressure component columns.
const (
	SuffixStack = "_dPT"
	SuffixWind  = "_dPw"
	SuffixTotal = "_dP"
)

type stage struct {
	name string
	run  func(*yearState) error
}

// yearState carries one year through the stages.
type yearState struct {
	y      *types.YearSeries
	result *types.YearResult
	cfg    envelope.Config
	indoor indoor.Options
	ti     float64
	logger *zap.SugaredLogger
}

func (s *yearState) add(columns map[string][]float64) error {
	for name, v := range columns {
		if err := s.y.AppendDerived(name, v); err != nil {
			return err
		}
	}
	return nil
}

var stages = []stage{
	{StageClearness, clearnessStage},
	{StageSky, skyStage},
	{StageRadiation, radiationStage},
	{StageOutdoor, outdoorStage},
	{StageIndoor, indoorStage},
	{StagePressure, pressureStage},
	{StageRain, rainStage},
}

// ComputeYear adds every derived column to y and returns the result. The
// context is checked between stages.
func (p *Pipeline) ComputeYear(ctx context.Context, runID string, y *types.YearSeries) (*types.YearResult, error) {
	s := &yearState{
		y:      y,
		result: &types.YearResult{RunID: runID, Dataset: y.Name, Series: y},
		cfg:    p.cfg.Envelope,
		indoor: indoor.Options{Window: p.cfg.Indoor.Window, Centered: p.cfg.Indoor.Centered},
		ti:     p.cfg.Indoor.Temperature,
		logger: p.logger.With("dataset", y.Name),
	}

	for _, st := range stages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		start := p.clock.Now()
		if err := st.run(s); err != nil {
			return nil, fmt.Errorf("%s stage: %w", st.name, err)
		}
		elapsed := p.clock.Since(start)
		p.metrics.StageDuration.WithLabelValues(st.name).Observe(elapsed.Seconds())
		s.logger.Debugw("stage complete", "stage", st.name, "elapsed", elapsed)
	}

	s.result.Computed = p.clock.Now()
	p.metrics.AnnualRain.WithLabelValues(y.Name).Set(s.result.Rain.AnnualTotal)

	s.logger.Infow("year computed",
		"title", y.Title,
		"mean_Te", stat.Mean(y.MustColumn(types.ColTe), nil),
		"mean_Ti_S2", stat.Mean(s.result.TiS2.Temperature, nil),
		"mean_RHi_S2", stat.Mean(s.result.TiS2.RH, nil),
		"mean_Kt", stat.Mean(s.result.Clearness.Clearness, nil),
	)
	return s.result, nil
}

func clearnessStage(s *yearState) error {
	rglob, err := s.y.Column(types.ColRglob)
	if err != nil {
		return err
	}
	profile, err := solar.ComputeClearness(s.y.Site.Latitude*math.Pi/180, s.y.Site.Longitude, rglob)
	if err != nil {
		return err
	}
	s.result.Clearness = profile
	return s.add(map[string][]float64{
		types.ColKt: profile.Clearness,
		types.ColI0: profile.Extraterrestrial,
	})
}

func skyStage(s *yearState) error {
	sky, err := skyrad.FromWeather(s.y.MustColumn(types.ColTe), s.y.MustColumn(types.ColRHeWater), s.result.Clearness.Clearness)
	if err != nil {
		return err
	}
	s.result.Sky = sky
	return s.add(map[string][]float64{
		types.ColLWdn:     sky.LongwaveDown,
		types.ColEmis:     sky.Emissivity,
		types.ColTsky:     sky.SkyTemperature,
		types.ColDTsky:    sky.SkyDelta,
		types.ColTairHalf: sky.AirTemperature,
		types.ColTdewHalf: sky.DewPoint,
	})
}

func radiationStage(s *yearState) error {
	rdir, err := series.Difference(s.y.MustColumn(types.ColRglob), s.y.MustColumn(types.ColRdif))
	if err != nil {
		return err
	}
	return s.y.AppendDerived(types.ColRdir, rdir)
}

func outdoorStage(s *yearState) error {
	pe := series.Constant(constants.HoursPerYear, constants.AtmosphericPressure)
	rhIce, err := series.Map2(s.y.MustColumn(types.ColTe), s.y.MustColumn(types.ColRHeWater), psychro.RHOverIce)
	if err != nil {
		return err
	}
	return s.add(map[string][]float64{
		types.ColPe:     pe,
		types.ColRHeIce: rhIce,
	})
}

func indoorStage(s *yearState) error {
	te := s.y.MustColumn(types.ColTe)

	ti21, err := indoor.Constant(te, s.y.MustColumn(types.ColRHeWater), s.ti, s.indoor)
	if err != nil {
		return err
	}
	tis2, err := indoor.S2(te, ti21.VaporConcentration, s.indoor)
	if err != nil {
		return err
	}

	s.result.Ti21, s.result.TiS2 = ti21, tis2
	return s.add(map[string][]float64{
		types.ColTi21:    ti21.Temperature,
		types.ColViTi21:  ti21.VaporConcentration,
		types.ColRHiTi21: ti21.RH,
		types.ColTiS2:    tis2.Temperature,
		types.ColViTiS2:  tis2.VaporConcentration,
		types.ColRHiTiS2: tis2.RH,
	})
}

// pressureStage uses the S2 indoor temperature for the stack effect.
func pressureStage(s *yearState) error {
	pr, err := envelope.Pressure(
		s.y.MustColumn(types.ColTe),
		s.result.TiS2.Temperature,
		s.y.MustColumn(types.ColPe),
		s.y.MustColumn(types.ColWS),
		s.y.MustColumn(types.ColWD),
		s.cfg,
	)
	if err != nil {
		return err
	}
	s.result.Pressure = pr
	return s.add(map[string][]float64{
		types.ColWSLocal:      pr.LocalWind,
		pr.Name:               pr.Indoor,
		pr.Name + SuffixStack: pr.Stack,
		pr.Name + SuffixWind:  pr.Wind,
		pr.Name + SuffixTotal: pr.Total,
	})
}

func rainStage(s *yearState) error {
	rain, err := envelope.DrivingRain(
		s.y.MustColumn(types.ColWS),
		s.y.MustColumn(types.ColWD),
		s.y.MustColumn(types.ColPrecip),
		s.y.MustColumn(types.ColTe),
		s.cfg,
	)
	if err != nil {
		return err
	}
	s.result.Rain = rain
	s.logger.Infow("wind-driven rain", "column", rain.Name, "annual_total", rain.AnnualTotal)
	return s.y.AppendDerived(rain.Name, rain.Flux)
}
