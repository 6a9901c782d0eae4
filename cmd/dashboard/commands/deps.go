package commands

import (
	"fmt"

	"github.com/jinhae8971/stock-dashboard/internal/collector"
	"github.com/jinhae8971/stock-dashboard/internal/external/github"
	"github.com/jinhae8971/stock-dashboard/internal/external/naver"
	"github.com/jinhae8971/stock-dashboard/internal/external/yahoo"
	"github.com/jinhae8971/stock-dashboard/internal/ranking"
	"github.com/jinhae8971/stock-dashboard/internal/report"
	"github.com/jinhae8971/stock-dashboard/internal/scoring"
	"github.com/jinhae8971/stock-dashboard/internal/strategy"
	"github.com/jinhae8971/stock-dashboard/pkg/config"
	"github.com/jinhae8971/stock-dashboard/pkg/httputil"
	"github.com/jinhae8971/stock-dashboard/pkg/logger"
)

// deps holds the wired application components shared by all commands
// ⭐ SSOT: 의존성 조립은 이 파일에서만
type deps struct {
	config    *config.Config
	logger    *logger.Logger
	collector *collector.Collector
	store     *report.Store
	uploader  *github.Uploader
}

// buildDeps loads config and wires every component of the pipeline.
// skipStrategy가 true면 전략 생성기를 비활성 상태로 만든다.
func buildDeps(skipStrategy bool) (*deps, error) {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if verbose {
		cfg.LogLevel = "debug"
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	// 3. Create rate-limited HTTP client (Yahoo는 과호출에 민감, 기본 UA 차단)
	httpClient := httputil.New(cfg, log).
		WithRateLimit(cfg.Fetch.RatePerSec).
		WithHeader("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36")

	// 4. Create external clients
	yahooClient := yahoo.NewClient(httpClient, log)
	naverClient := naver.NewClient(httpClient, log)

	// 5. Create scoring pipeline
	validator := scoring.NewValidator(log)
	aggregator := ranking.NewAggregator(validator, log, cfg.Fetch.TopN)

	// 6. Create strategy generator
	anthropicCfg := cfg.Anthropic
	if skipStrategy {
		anthropicCfg.APIKey = ""
	}
	strategyGen := strategy.NewGenerator(anthropicCfg, log)

	// 7. Create collector
	col := collector.New(yahooClient, naverClient, aggregator, strategyGen, log, cfg.Fetch.FocusK)

	// 8. Create report store + uploader
	store := report.NewStore(cfg.OutputPath, log)
	uploader := github.NewUploader(httpClient, log, cfg.GitHub)

	return &deps{
		config:    cfg,
		logger:    log,
		collector: col,
		store:     store,
		uploader:  uploader,
	}, nil
}
