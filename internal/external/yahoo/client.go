package yahoo

import (
	"context"
	"fmt"
	"net/url"

	"github.com/jinhae8971/stock-dashboard/pkg/httputil"
	"github.com/jinhae8971/stock-dashboard/pkg/logger"
)

const defaultBaseURL = "https://query1.finance.yahoo.com"

// Client fetches quotes from the Yahoo Finance chart API
// ⭐ SSOT: Yahoo Finance 호출은 이 클라이언트에서만
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
}

// NewClient creates a new Yahoo Finance client
func NewClient(httpClient *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    defaultBaseURL,
	}
}

// WithBaseURL overrides the API base URL (테스트용)
func (c *Client) WithBaseURL(base string) *Client {
	c.baseURL = base
	return c
}

// Quote is one symbol's current price/volume state (fast-info 수준)
type Quote struct {
	Symbol        string
	ShortName     string
	LastPrice     float64
	PreviousClose float64
	DayVolume     int64
	AvgVolume3M   float64 // 차트 구간 평균 거래량, 0 = 기준 없음
}

// chart API response (v8/finance/chart)
type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *chartError   `json:"error"`
	} `json:"chart"`
}

type chartResult struct {
	Meta struct {
		Symbol              string  `json:"symbol"`
		ShortName           string  `json:"shortName"`
		LongName            string  `json:"longName"`
		RegularMarketPrice  float64 `json:"regularMarketPrice"`
		ChartPreviousClose  float64 `json:"chartPreviousClose"`
		PreviousClose       float64 `json:"previousClose"`
		RegularMarketVolume int64   `json:"regularMarketVolume"`
	} `json:"meta"`
	Indicators struct {
		Quote []struct {
			Volume []*int64 `json:"volume"`
		} `json:"quote"`
	} `json:"indicators"`
}

type chartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// FetchQuote fetches the current quote for one symbol. 3개월 일봉
// 구간을 함께 받아 평균 거래량을 계산한다.
func (c *Client) FetchQuote(ctx context.Context, symbol string) (*Quote, error) {
	fullURL := fmt.Sprintf("%s/v8/finance/chart/%s?range=3mo&interval=1d",
		c.baseURL, url.PathEscape(symbol))

	var resp chartResponse
	if err := c.httpClient.GetJSON(ctx, fullURL, &resp); err != nil {
		return nil, fmt.Errorf("chart request failed: %w", err)
	}

	quote, err := parseChart(&resp)
	if err != nil {
		return nil, fmt.Errorf("parse chart for %s: %w", symbol, err)
	}

	c.logger.WithFields(map[string]interface{}{
		"symbol": symbol,
		"price":  quote.LastPrice,
	}).Debug("Fetched quote")
	return quote, nil
}

// parseChart extracts a Quote from the chart response
func parseChart(resp *chartResponse) (*Quote, error) {
	if resp.Chart.Error != nil {
		return nil, fmt.Errorf("API error: %s (%s)",
			resp.Chart.Error.Description, resp.Chart.Error.Code)
	}

	if len(resp.Chart.Result) == 0 {
		return nil, fmt.Errorf("empty chart result")
	}

	result := resp.Chart.Result[0]
	meta := result.Meta

	prev := meta.PreviousClose
	if prev == 0 {
		prev = meta.ChartPreviousClose
	}

	name := meta.ShortName
	if name == "" {
		name = meta.LongName
	}

	quote := &Quote{
		Symbol:        meta.Symbol,
		ShortName:     name,
		LastPrice:     meta.RegularMarketPrice,
		PreviousClose: prev,
		DayVolume:     meta.RegularMarketVolume,
		AvgVolume3M:   averageVolume(result),
	}

	if quote.LastPrice == 0 {
		return nil, fmt.Errorf("no market price in chart meta")
	}

	return quote, nil
}

// averageVolume is the mean of the non-null chart volumes
func averageVolume(result chartResult) float64 {
	if len(result.Indicators.Quote) == 0 {
		return 0
	}

	var sum int64
	var n int
	for _, v := range result.Indicators.Quote[0].Volume {
		if v == nil || *v == 0 {
			continue
		}
		sum += *v
		n++
	}

	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}
