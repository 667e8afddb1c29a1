package collector

import (
	"context"
	"time"

	"StockLens/internal/model"
)

// Fetcher defines the interface for fetching daily market data.
//
// FetchDaily takes a bare symbol and the half-open calendar window [start, end), with
// start strictly before end. Implementations return the trading days in that window in
// ascending order, an empty series when the provider has none, or a *FetchError.
type Fetcher interface {
	FetchDaily(ctx context.Context, symbol string, start, end time.Time) (*model.Series, error)
	Name() string
}

// calendarDate drops the time-of-day and zone, keeping the calendar date as UTC midnight.
func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// inWindow reports whether the calendar date d lies in [start, end).
func inWindow(d, start, end time.Time) bool {
	return !d.Before(start) && d.Before(end)
}
