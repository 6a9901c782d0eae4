package naver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jinhae8971/stock-dashboard/pkg/httputil"
	"github.com/jinhae8971/stock-dashboard/pkg/logger"
)

const defaultBaseURL = "https://finance.naver.com"

// Client scrapes KR quotes from Naver Finance as a fallback source
// when the primary feed fails for a KOSPI ticker.
// ⭐ SSOT: Naver Finance 호출은 이 클라이언트에서만
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
}

// NewClient creates a new Naver Finance client
func NewClient(httpClient *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    defaultBaseURL,
	}
}

// WithBaseURL overrides the base URL (테스트용)
func (c *Client) WithBaseURL(base string) *Client {
	c.baseURL = base
	return c
}

// Quote is a scraped price/volume snapshot. 종목 메인 페이지에는 평균
// 거래량이 없으므로 AvgVolume은 항상 0 (스코어러가 parity 가정).
type Quote struct {
	Code          string
	LastPrice     float64
	PreviousClose float64
	DayVolume     int64
}

// FetchQuote fetches the current quote for a KR stock code (6자리,
// 거래소 접미사 없음)
func (c *Client) FetchQuote(ctx context.Context, code string) (*Quote, error) {
	fullURL := fmt.Sprintf("%s/item/main.naver?code=%s", c.baseURL, code)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36")
	req.Header.Set("Referer", "https://finance.naver.com/")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body failed: %w", err)
	}

	quote, err := parseMainPage(string(body))
	if err != nil {
		return nil, fmt.Errorf("parse quote page for %s: %w", code, err)
	}
	quote.Code = code

	c.logger.WithFields(map[string]interface{}{
		"code":  code,
		"price": quote.LastPrice,
	}).Debug("Fetched fallback quote")
	return quote, nil
}

// parseMainPage extracts the current price, previous close and day
// volume from the 종목 메인 페이지 markup.
// rate_info 블록: p.no_today가 현재가, table.no_info의 blind 순서는
// 전일 / 고가 / 거래량 / 시가 / 저가 / 거래대금.
func parseMainPage(html string) (*Quote, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse HTML failed: %w", err)
	}

	last, err := parsePriceText(doc.Find("p.no_today span.blind").First().Text())
	if err != nil {
		return nil, fmt.Errorf("current price: %w", err)
	}

	var cells []string
	doc.Find("table.no_info td span.blind").Each(func(_ int, sel *goquery.Selection) {
		cells = append(cells, strings.TrimSpace(sel.Text()))
	})
	if len(cells) < 3 {
		return nil, fmt.Errorf("price table not found (%d cells)", len(cells))
	}

	prev, err := parsePriceText(cells[0])
	if err != nil {
		return nil, fmt.Errorf("previous close: %w", err)
	}

	volume, err := strconv.ParseInt(strings.ReplaceAll(cells[2], ",", ""), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("day volume: %w", err)
	}

	return &Quote{
		LastPrice:     last,
		PreviousClose: prev,
		DayVolume:     volume,
	}, nil
}

func parsePriceText(text string) (float64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(text), ",", "")
	if cleaned == "" {
		return 0, fmt.Errorf("empty price text")
	}
	return strconv.ParseFloat(cleaned, 64)
}
