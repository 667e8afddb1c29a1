package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"StockLens/internal/model"
)

const defaultYahooBaseURL = "https://query1.finance.yahoo.com"

// YahooFetcher implements Fetcher using the Yahoo Finance chart API.
type YahooFetcher struct {
	BaseURL string
	Suffix  string // exchange suffix appended to every symbol, e.g. ".NS"
	Client  *http.Client
}

// NewYahooFetcher creates a new Yahoo Finance fetcher with optional proxy support.
func NewYahooFetcher(baseURL, suffix, proxyURL string, timeout time.Duration) *YahooFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if baseURL == "" {
		baseURL = defaultYahooBaseURL
	}
	return &YahooFetcher{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Suffix:  suffix,
		Client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

func (f *YahooFetcher) yahooSymbol(symbol string) string {
	if f.Suffix == "" || strings.HasSuffix(symbol, f.Suffix) {
		return symbol
	}
	return symbol + f.Suffix
}

// yahooChart is the response structure from Yahoo Finance chart API.
// Price arrays hold null for sessions without trades, hence the pointers.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol               string `json:"symbol"`
				ExchangeTimezoneName string `json:"exchangeTimezoneName"`
				GMTOffset            int    `json:"gmtoffset"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*int64   `json:"volume"`
				} `json:"quote"`
				AdjClose []struct {
					AdjClose []*float64 `json:"adjclose"`
				} `json:"adjclose"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func at[T any](vals []*T, i int) (T, bool) {
	var zero T
	if i >= len(vals) || vals[i] == nil {
		return zero, false
	}
	return *vals[i], true
}

// FetchDaily issues one chart request for [start, end) and returns the trading days in it.
func (f *YahooFetcher) FetchDaily(ctx context.Context, symbol string, start, end time.Time) (*model.Series, error) {
	start, end = calendarDate(start), calendarDate(end)
	ticker := f.yahooSymbol(symbol)

	// Pad by a day on each side: sessions east of UTC can open before UTC midnight of
	// their date. inWindow trims the result back to [start, end).
	q := url.Values{}
	q.Set("period1", fmt.Sprintf("%d", start.AddDate(0, 0, -1).Unix()))
	q.Set("period2", fmt.Sprintf("%d", end.AddDate(0, 0, 1).Unix()))
	q.Set("interval", "1d")
	q.Set("includeAdjustedClose", "true")
	q.Set("events", "history")
	u := fmt.Sprintf("%s/v8/finance/chart/%s?%s", f.BaseURL, url.PathEscape(ticker), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, newFetchError(KindProvider, ticker, err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, newFetchError(KindNetwork, ticker, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newFetchError(KindNetwork, ticker, fmt.Errorf("read body: %w", err))
	}

	var chart yahooChart
	decodeErr := json.Unmarshal(body, &chart)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, newFetchError(KindSymbolNotFound, ticker, chartErr(&chart, resp.StatusCode))
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, newFetchError(KindRateLimited, ticker, fmt.Errorf("status %d", resp.StatusCode))
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, newFetchError(KindNetwork, ticker, fmt.Errorf("status %d, body: %s", resp.StatusCode, string(body)))
	case resp.StatusCode != http.StatusOK:
		return nil, newFetchError(KindProvider, ticker, chartErr(&chart, resp.StatusCode))
	}
	if decodeErr != nil {
		return nil, newFetchError(KindProvider, ticker, fmt.Errorf("decode: %w", decodeErr))
	}
	if chart.Chart.Error != nil {
		if strings.EqualFold(chart.Chart.Error.Code, "Not Found") {
			return nil, newFetchError(KindSymbolNotFound, ticker, fmt.Errorf("%s", chart.Chart.Error.Description))
		}
		return nil, newFetchError(KindProvider, ticker, fmt.Errorf("%s: %s", chart.Chart.Error.Code, chart.Chart.Error.Description))
	}

	series := model.NewSeries(symbol, nil)
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 ||
		len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return series, nil
	}

	result := chart.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	var adj []*float64
	if len(result.Indicators.AdjClose) > 0 {
		adj = result.Indicators.AdjClose[0].AdjClose
	}
	loc := time.FixedZone(result.Meta.ExchangeTimezoneName, result.Meta.GMTOffset)

	seen := make(map[time.Time]bool, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		o, okO := at(quote.Open, i)
		h, okH := at(quote.High, i)
		l, okL := at(quote.Low, i)
		c, okC := at(quote.Close, i)
		if !okO || !okH || !okL || !okC {
			continue // no complete session that day
		}
		date := calendarDate(time.Unix(ts, 0).In(loc))
		if !inWindow(date, start, end) || seen[date] {
			continue
		}
		seen[date] = true

		vol, _ := at(quote.Volume, i)
		ac, ok := at(adj, i)
		if !ok {
			ac = c
		}
		series.Bars = append(series.Bars, model.Bar{
			Date:     date,
			Open:     o,
			High:     h,
			Low:      l,
			Close:    c,
			AdjClose: ac,
			Volume:   vol,
		})
	}

	sort.Slice(series.Bars, func(i, j int) bool { return series.Bars[i].Date.Before(series.Bars[j].Date) })
	return series, nil
}

func chartErr(chart *yahooChart, status int) error {
	if chart.Chart.Error != nil && chart.Chart.Error.Description != "" {
		return fmt.Errorf("status %d: %s", status, chart.Chart.Error.Description)
	}
	return fmt.Errorf("status %d", status)
}
