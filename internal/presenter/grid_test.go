package presenter

import (
	"bytes"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockLens/internal/model"
	"StockLens/internal/normalize"
)

func normalizedSeries(n int) *model.Series {
	d := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]model.Bar, n)
	for i := range bars {
		bars[i] = model.Bar{
			Date:     d.AddDate(0, 0, i),
			Open:     1512 + float64(i),
			High:     1525.5,
			Low:      1505,
			Close:    1514.2,
			AdjClose: 1480.123,
			Volume:   4485812,
		}
	}
	return normalize.Normalize(model.NewSeries("RELIANCE", bars))
}

func TestPresent_ExactGrid(t *testing.T) {
	s := &model.Series{
		Symbol:  "X",
		Columns: []model.Column{model.ColOpen, model.ColTradingDate},
		Bars: []model.Bar{
			{Open: 1.5, TradingDate: "2020-01-01"},
			{Open: 12.25, TradingDate: "2020-01-02"},
		},
	}
	want := strings.Join([]string{
		"╒═══════╤══════════════╕",
		"│  Open │ Trading Date │",
		"╞═══════╪══════════════╡",
		"│  1.50 │ 2020-01-01   │",
		"├───────┼──────────────┤",
		"│ 12.25 │ 2020-01-02   │",
		"╘═══════╧══════════════╛",
		"",
	}, "\n")

	var buf bytes.Buffer
	require.NoError(t, Present(&buf, s))
	assert.Equal(t, want, buf.String())
}

func TestPresent_DropsAdjCloseAndKeepsRows(t *testing.T) {
	s := normalizedSeries(3)
	var buf bytes.Buffer
	require.NoError(t, Present(&buf, s))
	out := buf.String()

	assert.NotContains(t, out, "Adj Close")
	assert.NotContains(t, out, "1480.12")
	assert.True(t, s.Has(model.ColAdjClose), "input keeps its columns")

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// top, header, header rule, 3 rows, 2 row rules, bottom
	require.Len(t, lines, 9)

	header := lines[1]
	for _, h := range []string{"Date", "Open", "High", "Low", "Close", "Volume", "Trading Date"} {
		assert.Contains(t, header, h)
	}
	assert.Equal(t, len(s.Columns)-1, strings.Count(header, "│")-1, "one fewer column than the input")
}

func TestPresent_NumericCellsHaveTwoDecimals(t *testing.T) {
	s := normalizedSeries(2)
	headers, rows := Tabulate(s.Drop(model.ColAdjClose))
	require.Len(t, rows, 2)
	require.Len(t, headers, 7)

	twoDecimals := regexp.MustCompile(`^-?\d+\.\d{2}$`)
	for _, row := range rows {
		assert.Equal(t, "2020-01-0", row[0][:9])
		for _, v := range row[1:6] {
			assert.Regexp(t, twoDecimals, v)
		}
	}
	assert.Equal(t, "2020-01-01 00:00:00", rows[0][0])
	assert.Equal(t, "1512.00", rows[0][1])
	assert.Equal(t, "1525.50", rows[0][2])
	assert.Equal(t, "4485812.00", rows[0][5])
	assert.Equal(t, "2020-01-01", rows[0][6])
}

func TestPresent_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Present(&buf, normalizedSeries(0)))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 3)
}

func TestPresent_Nil(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, Present(&buf, nil), ErrNilSeries)
	assert.Zero(t, buf.Len())
}

func TestHead(t *testing.T) {
	s := normalizedSeries(10)
	assert.Equal(t, 5, Head(s, 5).Len())
	assert.Equal(t, 10, Head(s, 0).Len())
	assert.Equal(t, 10, Head(s, 50).Len())
	assert.Equal(t, 10, s.Len())
	assert.Nil(t, Head(nil, 5))
}

func TestFormatVolumeSummary(t *testing.T) {
	assert.Equal(t, "The Average Daily Trading Volume is - 1,234,567.5\n", FormatVolumeSummary(1234567.5))
}
