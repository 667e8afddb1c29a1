package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockLens/internal/model"
)

func fetched() *model.Series {
	d := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	return model.NewSeries("RELIANCE", []model.Bar{
		{Date: d, Open: 1, Close: 2, Volume: 10},
		{Date: d.AddDate(0, 0, 1), Open: 2, Close: 3, Volume: 20},
		{Date: d.AddDate(0, 0, 6), Open: 3, Close: 4, Volume: 30},
	})
}

func TestNormalize_Nil(t *testing.T) {
	assert.Nil(t, Normalize(nil))
}

func TestNormalize_AddsTradingDateColumn(t *testing.T) {
	in := fetched()
	out := Normalize(in)

	require.Equal(t, in.Len(), out.Len())
	require.Len(t, out.Columns, len(in.Columns)+1)
	assert.Equal(t, in.Columns, out.Columns[:len(in.Columns)], "original columns keep their order")
	assert.Equal(t, model.ColTradingDate, out.Columns[len(out.Columns)-1])

	want := []string{"2020-01-01", "2020-01-02", "2020-01-07"}
	for i, b := range out.Bars {
		assert.Equal(t, want[i], b.TradingDate)
		assert.Equal(t, in.Bars[i].Date, b.Date)
		assert.Equal(t, in.Bars[i].Volume, b.Volume)
	}

	assert.False(t, in.Has(model.ColTradingDate), "input must not be modified")
	assert.Empty(t, in.Bars[0].TradingDate)
}

func TestNormalize_Idempotent(t *testing.T) {
	once := Normalize(fetched())
	twice := Normalize(once)
	assert.Equal(t, once.Columns, twice.Columns)
	assert.Equal(t, once.Bars, twice.Bars)
}

func TestNormalize_Empty(t *testing.T) {
	out := Normalize(model.NewSeries("X", nil))
	require.NotNil(t, out)
	assert.Equal(t, 0, out.Len())
	assert.True(t, out.Has(model.ColTradingDate))
}

func TestParseTradingDates(t *testing.T) {
	in := fetched()
	dates, err := ParseTradingDates(Normalize(in))
	require.NoError(t, err)
	for i, d := range dates {
		assert.True(t, d.Equal(in.Bars[i].Date))
	}

	_, err = ParseTradingDates(in)
	assert.ErrorIs(t, err, ErrNotNormalized)
	_, err = ParseTradingDates(nil)
	assert.ErrorIs(t, err, ErrNotNormalized)

	bad := Normalize(in)
	bad.Bars[1].TradingDate = "2020/01/02"
	_, err = ParseTradingDates(bad)
	assert.Error(t, err)
}

func TestStrip(t *testing.T) {
	assert.Nil(t, Strip(nil))

	norm := Normalize(fetched())
	out := Strip(norm)
	assert.Equal(t, []model.Column{
		model.ColDate, model.ColOpen, model.ColHigh, model.ColLow, model.ColClose, model.ColVolume,
	}, out.Columns)
	assert.Equal(t, norm.Len(), out.Len())
	assert.Empty(t, out.Bars[0].TradingDate)
	assert.Equal(t, "2020-01-01", norm.Bars[0].TradingDate)
}
