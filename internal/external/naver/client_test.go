package naver

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jinhae8971/stock-dashboard/pkg/config"
	"github.com/jinhae8971/stock-dashboard/pkg/httputil"
	"github.com/jinhae8971/stock-dashboard/pkg/logger"
)

const mainPageFixture = `
<html><body>
<div class="rate_info">
  <p class="no_today"><em><span class="blind">72,500</span></em></p>
  <table class="no_info" summary="시세 정보">
    <tr>
      <td class="first"><span class="blind">71,000</span></td>
      <td><span class="blind">73,100</span></td>
      <td><span class="blind">12,345,678</span></td>
    </tr>
    <tr>
      <td class="first"><span class="blind">71,500</span></td>
      <td><span class="blind">70,800</span></td>
      <td><span class="blind">893,120</span></td>
    </tr>
  </table>
</div>
</body></html>`

func TestParseMainPage(t *testing.T) {
	quote, err := parseMainPage(mainPageFixture)
	require.NoError(t, err)

	assert.Equal(t, 72500.0, quote.LastPrice)
	assert.Equal(t, 71000.0, quote.PreviousClose)
	assert.Equal(t, int64(12345678), quote.DayVolume)
}

func TestParseMainPage_MissingPrice(t *testing.T) {
	_, err := parseMainPage(`<html><body><p>점검 중</p></body></html>`)
	assert.Error(t, err)
}

func TestParseMainPage_MissingTable(t *testing.T) {
	html := `<html><body><p class="no_today"><span class="blind">1,000</span></p></body></html>`
	_, err := parseMainPage(html)
	assert.Error(t, err)
}

func TestClient_FetchQuote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/item/main.naver", r.URL.Path)
		assert.Equal(t, "005930", r.URL.Query().Get("code"))
		fmt.Fprint(w, mainPageFixture)
	}))
	defer srv.Close()

	cfg := &config.Config{}
	cfg.Fetch.HTTPTimeout = 5 * time.Second
	client := NewClient(httputil.New(cfg, logger.Nop()), logger.Nop()).WithBaseURL(srv.URL)

	quote, err := client.FetchQuote(context.Background(), "005930")
	require.NoError(t, err)
	assert.Equal(t, "005930", quote.Code)
	assert.Equal(t, 72500.0, quote.LastPrice)
}
