// Package normalize derives the string Trading Date column from the bar dates and shapes
// column sets for downstream consumers.
package normalize

import (
	"errors"
	"fmt"
	"time"

	"StockLens/internal/model"
)

var ErrNotNormalized = errors.New("series has no Trading Date column")

// Normalize returns a copy of s with the Trading Date column appended and filled with
// YYYY-MM-DD strings. Existing columns are kept in place. A nil series passes through as nil.
func Normalize(s *model.Series) *model.Series {
	if s == nil {
		return nil
	}
	out := s.Clone()
	for i := range out.Bars {
		out.Bars[i].TradingDate = out.Bars[i].Date.Format(model.DateLayout)
	}
	if !out.Has(model.ColTradingDate) {
		out.Columns = append(out.Columns, model.ColTradingDate)
	}
	return out
}

// ParseTradingDates parses the Trading Date strings back into dates.
func ParseTradingDates(s *model.Series) ([]time.Time, error) {
	if s == nil || !s.Has(model.ColTradingDate) {
		return nil, ErrNotNormalized
	}
	dates := make([]time.Time, len(s.Bars))
	for i, b := range s.Bars {
		d, err := time.Parse(model.DateLayout, b.TradingDate)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		dates[i] = d
	}
	return dates, nil
}

// Strip drops Adj Close and Trading Date, leaving the columns the volume and chart
// consumers read.
func Strip(s *model.Series) *model.Series {
	if s == nil {
		return nil
	}
	out := s.Drop(model.ColAdjClose, model.ColTradingDate)
	for i := range out.Bars {
		out.Bars[i].TradingDate = ""
	}
	return out
}
