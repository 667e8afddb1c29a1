package presenter

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"StockLens/internal/model"
)

// TimestampLayout is how the Date column is printed.
const TimestampLayout = "2006-01-02 15:04:05"

var ErrNilSeries = errors.New("presenter: nil series")

// Present writes s as a box-drawn grid, without the Adj Close column.
// Numbers are right-aligned with two decimals, text is left-aligned.
func Present(w io.Writer, s *model.Series) error {
	if s == nil {
		return ErrNilSeries
	}
	view := s.Drop(model.ColAdjClose)
	headers, rows := Tabulate(view)

	_, err := io.WriteString(w, renderGrid(view.Columns, headers, rows))
	return err
}

// Tabulate converts a series into a header row and string cells, one row per bar,
// following the series' column set.
func Tabulate(s *model.Series) ([]string, [][]string) {
	headers := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		headers[i] = c.String()
	}
	rows := make([][]string, len(s.Bars))
	for r, b := range s.Bars {
		row := make([]string, len(s.Columns))
		for i, c := range s.Columns {
			row[i] = cell(b, c)
		}
		rows[r] = row
	}
	return headers, rows
}

func cell(b model.Bar, c model.Column) string {
	switch c {
	case model.ColDate:
		return b.Date.Format(TimestampLayout)
	case model.ColOpen:
		return fixed2(b.Open)
	case model.ColHigh:
		return fixed2(b.High)
	case model.ColLow:
		return fixed2(b.Low)
	case model.ColClose:
		return fixed2(b.Close)
	case model.ColAdjClose:
		return fixed2(b.AdjClose)
	case model.ColVolume:
		return decimal.NewFromInt(b.Volume).StringFixed(2)
	case model.ColTradingDate:
		return b.TradingDate
	}
	return ""
}

func fixed2(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// Head returns a copy holding the first n bars. n <= 0 keeps all of them.
func Head(s *model.Series, n int) *model.Series {
	if s == nil {
		return nil
	}
	out := s.Clone()
	if n > 0 && n < len(out.Bars) {
		out.Bars = out.Bars[:n]
	}
	return out
}

// FormatVolumeSummary renders the average daily trading volume line.
func FormatVolumeSummary(mean float64) string {
	return fmt.Sprintf("The Average Daily Trading Volume is - %s\n", humanize.CommafWithDigits(mean, 2))
}

func renderGrid(cols []model.Column, headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range rows {
		for i, v := range row {
			if n := utf8.RuneCountInString(v); n > widths[i] {
				widths[i] = n
			}
		}
	}
	right := make([]bool, len(cols))
	for i, c := range cols {
		right[i] = c.Numeric()
	}

	var b strings.Builder
	border := func(left, fill, mid, end string) {
		b.WriteString(left)
		for i, w := range widths {
			if i > 0 {
				b.WriteString(mid)
			}
			b.WriteString(strings.Repeat(fill, w+2))
		}
		b.WriteString(end)
		b.WriteByte('\n')
	}
	line := func(vals []string) {
		b.WriteString("│")
		for i, v := range vals {
			pad := strings.Repeat(" ", widths[i]-utf8.RuneCountInString(v))
			b.WriteByte(' ')
			if right[i] {
				b.WriteString(pad + v)
			} else {
				b.WriteString(v + pad)
			}
			b.WriteString(" │")
		}
		b.WriteByte('\n')
	}

	border("╒", "═", "╤", "╕")
	line(headers)
	if len(rows) > 0 {
		border("╞", "═", "╪", "╡")
	}
	for i, row := range rows {
		if i > 0 {
			border("├", "─", "┼", "┤")
		}
		line(row)
	}
	border("╘", "═", "╧", "╛")
	return b.String()
}
