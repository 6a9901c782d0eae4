package strategy

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/jinhae8971/stock-dashboard/internal/contracts"
	"github.com/jinhae8971/stock-dashboard/internal/report"
	"github.com/jinhae8971/stock-dashboard/pkg/config"
	"github.com/jinhae8971/stock-dashboard/pkg/logger"
)

// Generator produces the daily trading strategy narrative from the
// aggregated market data via the Claude API.
// ⭐ SSOT: 전략 생성 호출은 여기서만. 실패해도 사이클은 계속된다.
type Generator struct {
	client    *anthropic.Client
	logger    *logger.Logger
	model     string
	maxTokens int
	enabled   bool
}

// NewGenerator creates a strategy generator. API key가 없으면 비활성
// 상태로 만들어지고 Generate는 안내 문구만 채운 전략을 돌려준다.
func NewGenerator(cfg config.AnthropicConfig, log *logger.Logger) *Generator {
	g := &Generator{
		logger:    log,
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
	}

	if cfg.APIKey == "" {
		log.Warn("ANTHROPIC_API_KEY 없음: 전략 생성 스킵")
		return g
	}

	client := anthropic.NewClient(option.WithAPIKey(cfg.APIKey))
	g.client = &client
	g.enabled = true
	return g
}

// Enabled reports whether the generator can call the API
func (g *Generator) Enabled() bool {
	return g.enabled
}

// Generate builds the market summary prompt and asks Claude for the
// four-section strategy. 모든 실패는 대체 전략으로 흡수된다.
func (g *Generator) Generate(ctx context.Context, indices contracts.Indices, kr, us contracts.MarketReport) contracts.Strategy {
	if !g.enabled {
		return contracts.Strategy{
			Overview:  "API 키 미설정으로 전략 생성 불가. ANTHROPIC_API_KEY를 등록하세요.",
			Action:    "-",
			Risk:      "-",
			Watchlist: "-",
			Date:      report.NowKST(),
		}
	}

	prompt := buildPrompt(indices, kr, us)

	g.logger.Info("Claude API 호출 중...")
	startTime := time.Now()

	resp, err := g.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(g.model),
		MaxTokens: int64(g.maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		g.logger.WithError(err).Error("Claude API 오류")
		return errorStrategy(fmt.Sprintf("API 오류: %.100s", err.Error()))
	}

	var raw strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			raw.WriteString(block.Text)
		}
	}

	strategy, err := parseResponse(raw.String())
	if err != nil {
		g.logger.WithError(err).Error("전략 응답 파싱 실패")
		return errorStrategy("전략 파싱 오류: 응답 형식 불일치")
	}

	g.logger.WithFields(map[string]interface{}{
		"duration": time.Since(startTime),
	}).Info("전략 생성 완료")
	return strategy
}

func errorStrategy(overview string) contracts.Strategy {
	return contracts.Strategy{
		Overview:  overview,
		Action:    "-",
		Risk:      "-",
		Watchlist: "-",
		Date:      report.NowKST(),
	}
}
