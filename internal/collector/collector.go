package collector

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"StockLens/internal/model"
)

// RetryPolicy controls repeated fetch attempts. Retries == 0 means a single attempt.
type RetryPolicy struct {
	Retries int
	Backoff time.Duration // delay before the first retry, doubled after each one
}

// Collector wraps a Fetcher with window checks, a per-attempt timeout and the retry policy.
type Collector struct {
	Fetcher Fetcher
	Timeout time.Duration
	Retry   RetryPolicy
	Logger  *zap.Logger
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, timeout time.Duration, retry RetryPolicy, logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collector{Fetcher: fetcher, Timeout: timeout, Retry: retry, Logger: logger}
}

// Fetch returns the daily bars of symbol in [start, end).
//
// An inverted window fails with ErrInvalidRange. An empty window (start == end) returns an
// empty series without contacting the provider.
func (c *Collector) Fetch(ctx context.Context, symbol string, start, end time.Time) (*model.Series, error) {
	start, end = calendarDate(start), calendarDate(end)
	log := c.Logger.With(
		zap.String("symbol", symbol),
		zap.String("source", c.Fetcher.Name()),
		zap.String("start", start.Format(model.DateLayout)),
		zap.String("end", end.Format(model.DateLayout)),
	)

	if start.After(end) {
		err := newFetchError(KindInvalidRange, symbol, errors.New("start is after end"))
		log.Error("fetch rejected", zap.Error(err))
		return nil, err
	}
	if start.Equal(end) {
		log.Info("empty window, nothing to fetch")
		return model.NewSeries(symbol, nil), nil
	}

	backoff := c.Retry.Backoff
	for attempt := 0; ; attempt++ {
		series, err := c.fetchOnce(ctx, symbol, start, end)
		if err == nil {
			log.Info("fetched daily bars", zap.Int("rows", series.Len()), zap.Int("attempt", attempt+1))
			return series, nil
		}

		var fe *FetchError
		retryable := errors.As(err, &fe) && fe.Retryable()
		if !retryable || attempt >= c.Retry.Retries {
			log.Error("fetch failed", zap.Error(err), zap.Int("attempt", attempt+1))
			return nil, err
		}

		log.Warn("fetch failed, retrying",
			zap.Error(err),
			zap.Int("attempt", attempt+1),
			zap.Int("max_attempts", c.Retry.Retries+1),
			zap.Duration("backoff", backoff))
		select {
		case <-ctx.Done():
			return nil, newFetchError(KindNetwork, symbol, ctx.Err())
		case <-time.After(backoff):
		}
		backoff *= 2
	}
}

func (c *Collector) fetchOnce(ctx context.Context, symbol string, start, end time.Time) (*model.Series, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}
	return c.Fetcher.FetchDaily(ctx, symbol, start, end)
}
