package chart

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"StockLens/internal/calculator"
	"StockLens/internal/model"
)

var (
	ErrNilSeries   = errors.New("chart: nil series")
	ErrMissingOHLC = errors.New("chart: series lacks Date/Open/High/Low/Close")
)

// Options controls candle colors. Empty values fall back to green/red.
type Options struct {
	IncreasingColor string
	DecreasingColor string
}

// Candlestick builds an interactive K-line chart from the Date/Open/High/Low/Close columns.
func Candlestick(s *model.Series, o Options) (*charts.Kline, error) {
	if s == nil {
		return nil, ErrNilSeries
	}
	for _, c := range []model.Column{model.ColDate, model.ColOpen, model.ColHigh, model.ColLow, model.ColClose} {
		if !s.Has(c) {
			return nil, ErrMissingOHLC
		}
	}
	if o.IncreasingColor == "" {
		o.IncreasingColor = "green"
	}
	if o.DecreasingColor == "" {
		o.DecreasingColor = "red"
	}

	title := fmt.Sprintf("%s Stock", s.Symbol)
	subtitle := ""
	if s.Len() > 0 {
		first, last := s.Bars[0].Date, s.Bars[s.Len()-1].Date
		title = fmt.Sprintf("%s Stock over %s to %s", s.Symbol, first.Format(model.DateLayout), last.Format(model.DateLayout))
		if high, low, err := calculator.PeriodRange(s.Bars); err == nil {
			subtitle = fmt.Sprintf("Period high %.2f / low %.2f", high, low)
		}
	}

	dates, candles := Candles(s)

	kline := charts.NewKLine()
	kline.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Width:     "1200px",
			Height:    "600px",
		}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Date"}),
		charts.WithYAxisOpts(opts.YAxis{Name: fmt.Sprintf("%s Stock", s.Symbol), Scale: true}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "slider",
			Start:      0,
			End:        100,
			XAxisIndex: []int{0},
		}),
	)
	kline.SetXAxis(dates).AddSeries(s.Symbol, candles,
		charts.WithItemStyleOpts(opts.ItemStyle{
			Color:        o.IncreasingColor,
			Color0:       o.DecreasingColor,
			BorderColor:  o.IncreasingColor,
			BorderColor0: o.DecreasingColor,
		}),
	)
	return kline, nil
}

// Candles returns the x-axis dates and the candle values in echarts order
// (open, close, low, high).
func Candles(s *model.Series) ([]string, []opts.KlineData) {
	dates := make([]string, len(s.Bars))
	candles := make([]opts.KlineData, len(s.Bars))
	for i, b := range s.Bars {
		dates[i] = b.Date.Format(model.DateLayout)
		candles[i] = opts.KlineData{Value: [4]float64{b.Open, b.Close, b.Low, b.High}}
	}
	return dates, candles
}

// Render writes the chart as a self-contained HTML page.
func Render(w io.Writer, k *charts.Kline) error {
	return k.Render(w)
}

// Page renders the chart into memory.
func Page(k *charts.Kline) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(&buf, k); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Export writes the chart page to path.
func Export(path string, k *charts.Kline) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	if err := Render(f, k); err != nil {
		f.Close()
		return fmt.Errorf("render chart: %w", err)
	}
	return f.Close()
}
