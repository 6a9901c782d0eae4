package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the dashboard backend
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Fetch pipeline
	Fetch FetchConfig

	// External APIs
	Anthropic AnthropicConfig
	GitHub    GitHubConfig

	// Output
	OutputPath string // local JSON store (data/market_data.json)

	// Logging
	LogLevel  string
	LogFormat string
}

// FetchConfig holds fetch-cycle tuning
type FetchConfig struct {
	Schedule    string        // cron expression for the scheduled cycle
	RatePerSec  float64       // outbound quote requests per second
	HTTPTimeout time.Duration // per-request timeout
	TopN        int           // leading stocks per market
	FocusK      int           // focus sectors for the US rotation
}

// AnthropicConfig holds Claude API configuration (매매전략 생성)
type AnthropicConfig struct {
	APIKey    string
	Model     string
	MaxTokens int
}

// GitHubConfig holds GitHub Contents API upload configuration
type GitHubConfig struct {
	Token    string
	Owner    string
	Repo     string
	FilePath string
}

// Load reads configuration from environment variables
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "8091"),
		Env:  getEnv("ENV", "development"),

		Fetch: FetchConfig{
			Schedule:    getEnv("FETCH_SCHEDULE", "0 10 16 * * 1-5"), // 평일 16:10 KST
			RatePerSec:  getEnvAsFloat("FETCH_RATE", 5.0),
			HTTPTimeout: getEnvAsDuration("HTTP_TIMEOUT", "15s"),
			TopN:        getEnvAsInt("TOP_N", 10),
			FocusK:      getEnvAsInt("FOCUS_SECTORS", 5),
		},

		Anthropic: AnthropicConfig{
			APIKey:    getEnv("ANTHROPIC_API_KEY", ""),
			Model:     getEnv("ANTHROPIC_MODEL", "claude-sonnet-4-20250514"),
			MaxTokens: getEnvAsInt("ANTHROPIC_MAX_TOKENS", 1000),
		},

		GitHub: GitHubConfig{
			Token:    getEnv("GITHUB_TOKEN", ""),
			Owner:    getEnv("GITHUB_OWNER", "jinhae8971"),
			Repo:     getEnv("GITHUB_REPO", "stock-dashboard"),
			FilePath: getEnv("GITHUB_FILE_PATH", "data/market_data.json"),
		},

		OutputPath: getEnv("OUTPUT_PATH", "data/market_data.json"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Fetch.RatePerSec <= 0 {
		return fmt.Errorf("FETCH_RATE must be positive")
	}

	if c.Fetch.TopN <= 0 {
		return fmt.Errorf("TOP_N must be positive")
	}

	// ANTHROPIC_API_KEY 없이도 동작 (전략 생성만 스킵). 여기서 강제하지 않음

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env",
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
