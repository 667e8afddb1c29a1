package collector

import (
	"context"
	"time"

	"StockLens/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
// Without Bars it generates one bar per weekday in the window around Price.
type MockFetcher struct {
	Price float64
	Bars  []model.Bar
	Err   error
	Calls int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDaily(_ context.Context, symbol string, start, end time.Time) (*model.Series, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	start, end = calendarDate(start), calendarDate(end)

	if m.Bars != nil {
		series := model.NewSeries(symbol, nil)
		for _, b := range m.Bars {
			if inWindow(calendarDate(b.Date), start, end) {
				series.Bars = append(series.Bars, b)
			}
		}
		return series, nil
	}
	return model.NewSeries(symbol, generateMockBars(m.Price, start, end)), nil
}

func generateMockBars(basePrice float64, start, end time.Time) []model.Bar {
	var bars []model.Bar
	i := 0
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		p := basePrice * (1 + float64(i%20-10)*0.001)
		bars = append(bars, model.Bar{
			Date:     d,
			Open:     p * 0.999,
			High:     p * 1.005,
			Low:      p * 0.995,
			Close:    p,
			AdjClose: p * 0.98,
			Volume:   int64(1000000 + (i%7)*10000),
		})
		i++
	}
	return bars
}
