// Package pipeline runs one report for one symbol and date window:
// fetch, normalize, print the grid, then the volume and chart consumers.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"go.uber.org/zap"

	"StockLens/internal/calculator"
	"StockLens/internal/chart"
	"StockLens/internal/model"
	"StockLens/internal/normalize"
	"StockLens/internal/presenter"
)

// Source fetches the daily bars of a symbol for [start, end).
type Source interface {
	Fetch(ctx context.Context, symbol string, start, end time.Time) (*model.Series, error)
}

// Request names the symbol and window of one run.
type Request struct {
	Symbol string
	Start  time.Time
	End    time.Time
}

// Options holds the presentation settings of a run.
type Options struct {
	HeadRows int // rows printed in the grid, 0 = all
	Chart    chart.Options
}

// Result is everything one run produced.
type Result struct {
	Raw        *model.Series
	Normalized *model.Series
	MeanVolume float64
	HasVolume  bool
	Chart      *charts.Kline // nil when the window had no trading days
}

// Pipeline wires a source to the report outputs.
type Pipeline struct {
	Source  Source
	Out     io.Writer
	Options Options
	Logger  *zap.Logger
}

// New creates a Pipeline.
func New(src Source, out io.Writer, o Options, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{Source: src, Out: out, Options: o, Logger: logger}
}

// Run executes one pass. A fetch failure is returned before any downstream step runs.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	log := p.Logger.With(zap.String("symbol", req.Symbol))

	raw, err := p.Source.Fetch(ctx, req.Symbol, req.Start, req.End)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	res := &Result{Raw: raw}

	res.Normalized = normalize.Normalize(raw)
	if err := presenter.Present(p.Out, presenter.Head(res.Normalized, p.Options.HeadRows)); err != nil {
		return nil, fmt.Errorf("present: %w", err)
	}

	// Only checks the Trading Date column parses; Strip drops it right after.
	if _, err := normalize.ParseTradingDates(res.Normalized); err != nil {
		return nil, fmt.Errorf("parse trading dates: %w", err)
	}
	clean := normalize.Strip(res.Normalized)

	mean, err := calculator.MeanVolume(clean)
	switch {
	case errors.Is(err, calculator.ErrNoBars):
		log.Warn("no trading days in window, skipping volume and chart")
		return res, nil
	case err != nil:
		return nil, fmt.Errorf("mean volume: %w", err)
	}
	res.MeanVolume, res.HasVolume = mean, true
	if _, err := io.WriteString(p.Out, presenter.FormatVolumeSummary(mean)); err != nil {
		return nil, fmt.Errorf("write volume summary: %w", err)
	}

	res.Chart, err = chart.Candlestick(clean, p.Options.Chart)
	if err != nil {
		return nil, fmt.Errorf("chart: %w", err)
	}

	log.Info("report complete",
		zap.Int("rows", raw.Len()),
		zap.Float64("mean_volume", mean))
	return res, nil
}
