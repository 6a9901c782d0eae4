package strategy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jinhae8971/stock-dashboard/internal/contracts"
	"github.com/jinhae8971/stock-dashboard/pkg/config"
	"github.com/jinhae8971/stock-dashboard/pkg/logger"
)

func TestParseResponse_PlainJSON(t *testing.T) {
	raw := `{"overview":"혼조세","action":"관망","risk":"금리","watchlist":"삼성전자: 수급"}`

	got, err := parseResponse(raw)
	require.NoError(t, err)
	assert.Equal(t, "혼조세", got.Overview)
	assert.Equal(t, "관망", got.Action)
	assert.Equal(t, "금리", got.Risk)
	assert.Equal(t, "삼성전자: 수급", got.Watchlist)
	assert.NotEmpty(t, got.Date)
}

func TestParseResponse_CodeFenced(t *testing.T) {
	raw := "```json\n{\"overview\":\"강세\",\"action\":\"롱\",\"risk\":\"환율\",\"watchlist\":\"NVDA\"}\n```"

	got, err := parseResponse(raw)
	require.NoError(t, err)
	assert.Equal(t, "강세", got.Overview)
}

func TestParseResponse_CoercesNonStringFields(t *testing.T) {
	raw := `{
		"overview": "약세",
		"action": ["숏 진입", "반등 시 청산"],
		"risk": {"금리": "FOMC 경계", "환율": "1,400원 돌파"},
		"watchlist": ""
	}`

	got, err := parseResponse(raw)
	require.NoError(t, err)
	assert.Equal(t, "숏 진입\n반등 시 청산", got.Action)
	assert.Contains(t, got.Risk, "금리: FOMC 경계")
	assert.Contains(t, got.Risk, "환율: 1,400원 돌파")
	assert.Equal(t, "-", got.Watchlist)
}

func TestParseResponse_NotJSON(t *testing.T) {
	_, err := parseResponse("오늘은 강세장이 예상됩니다.")
	assert.Error(t, err)
}

func TestGenerator_DisabledWithoutAPIKey(t *testing.T) {
	g := NewGenerator(config.AnthropicConfig{}, logger.Nop())

	assert.False(t, g.Enabled())

	got := g.Generate(context.Background(), contracts.Indices{},
		contracts.MarketReport{}, contracts.MarketReport{})
	assert.Contains(t, got.Overview, "API 키 미설정")
	assert.Equal(t, "-", got.Action)
	assert.NotEmpty(t, got.Date)
}

func TestBuildPrompt(t *testing.T) {
	val := 2500.12
	chg := 0.85
	indices := contracts.Indices{
		Kospi: contracts.IndexQuote{Value: &val, ChangePct: &chg},
	}
	kr := contracts.MarketReport{
		Sectors: []contracts.SectorSummary{
			{Name: "반도체", AvgChangePct: 2.1},
			{Name: "금융", AvgChangePct: 0.4},
		},
		TopStocks: []contracts.ScoredStock{
			{Name: "삼성전자", Sector: "반도체", ChangePct: 2.11, Price: 72500},
		},
	}

	prompt := buildPrompt(indices, kr, contracts.MarketReport{})

	assert.Contains(t, prompt, "KOSPI: 2500.12 (+0.85%)")
	assert.Contains(t, prompt, "KOSDAQ: N/A")
	assert.Contains(t, prompt, "반도체: +2.10%")
	assert.Contains(t, prompt, "삼성전자 (반도체): +2.11%  현재가 72500원")
	assert.Contains(t, prompt, "JSON만 응답")
}
