package model

import "time"

// DateLayout is the calendar-date form used for the Trading Date column.
const DateLayout = "2006-01-02"

// Bar represents a single trading day.
type Bar struct {
	Date        time.Time // midnight in the exchange's zone
	Open        float64
	High        float64
	Low         float64
	Close       float64
	AdjClose    float64
	Volume      int64
	TradingDate string // set by the normalizer
}

// Column identifies a field of Bar that is part of a series' visible column set.
type Column int

const (
	ColDate Column = iota
	ColOpen
	ColHigh
	ColLow
	ColClose
	ColAdjClose
	ColVolume
	ColTradingDate
)

var columnNames = map[Column]string{
	ColDate:        "Date",
	ColOpen:        "Open",
	ColHigh:        "High",
	ColLow:         "Low",
	ColClose:       "Close",
	ColAdjClose:    "Adj Close",
	ColVolume:      "Volume",
	ColTradingDate: "Trading Date",
}

func (c Column) String() string {
	if name, ok := columnNames[c]; ok {
		return name
	}
	return "Unknown"
}

// Numeric reports whether the column holds a number.
func (c Column) Numeric() bool {
	switch c {
	case ColOpen, ColHigh, ColLow, ColClose, ColAdjClose, ColVolume:
		return true
	}
	return false
}

// FetchedColumns is the column set of a series as it comes back from a provider.
func FetchedColumns() []Column {
	return []Column{ColDate, ColOpen, ColHigh, ColLow, ColClose, ColAdjClose, ColVolume}
}

// Series holds the daily bars of one symbol, in ascending date order.
type Series struct {
	Symbol  string
	Columns []Column
	Bars    []Bar
}

// NewSeries creates a series with the fetched column set.
func NewSeries(symbol string, bars []Bar) *Series {
	if bars == nil {
		bars = []Bar{}
	}
	return &Series{Symbol: symbol, Columns: FetchedColumns(), Bars: bars}
}

// Len returns the number of bars.
func (s *Series) Len() int { return len(s.Bars) }

// Has reports whether col is part of the column set.
func (s *Series) Has(col Column) bool {
	for _, c := range s.Columns {
		if c == col {
			return true
		}
	}
	return false
}

// Clone returns a deep copy. Stages work on clones so the producer's copy is never touched.
func (s *Series) Clone() *Series {
	out := &Series{
		Symbol:  s.Symbol,
		Columns: make([]Column, len(s.Columns)),
		Bars:    make([]Bar, len(s.Bars)),
	}
	copy(out.Columns, s.Columns)
	copy(out.Bars, s.Bars)
	return out
}

// Drop returns a copy without the given columns. Columns not present are ignored.
func (s *Series) Drop(cols ...Column) *Series {
	out := s.Clone()
	kept := out.Columns[:0]
	for _, c := range out.Columns {
		drop := false
		for _, d := range cols {
			if c == d {
				drop = true
				break
			}
		}
		if !drop {
			kept = append(kept, c)
		}
	}
	out.Columns = kept
	return out
}

// Volumes extracts the Volume field of every bar as float64.
func (s *Series) Volumes() []float64 {
	vols := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		vols[i] = float64(b.Volume)
	}
	return vols
}
