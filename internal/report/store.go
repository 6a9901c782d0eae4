package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jinhae8971/stock-dashboard/internal/contracts"
	"github.com/jinhae8971/stock-dashboard/pkg/logger"
)

// KST is the dashboard's display timezone
var KST = time.FixedZone("KST", 9*60*60)

// NowKST formats the current time the way the dashboard displays it
func NowKST() string {
	return FormatKST(time.Now())
}

// FormatKST formats a time as the dashboard timestamp
func FormatKST(t time.Time) string {
	return t.In(KST).Format("2006년 01월 02일 15:04 KST")
}

// Store persists the latest dashboard JSON to a local file.
// 사이클당 파일 하나를 통째로 교체한다: 이력은 보관하지 않는다.
// ⭐ SSOT: 대시보드 파일 입출력은 여기서만
type Store struct {
	path   string
	logger *logger.Logger
	mu     sync.RWMutex
}

// NewStore creates a store writing to the given path
func NewStore(path string, log *logger.Logger) *Store {
	return &Store{
		path:   path,
		logger: log,
	}
}

// Save writes the dashboard as indented JSON, creating parent
// directories as needed
func (s *Store) Save(dashboard *contracts.Dashboard) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(dashboard, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal dashboard: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write dashboard file: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"path":  s.path,
		"bytes": len(data),
	}).Info("로컬 저장 완료")
	return nil
}

// Load reads the latest saved dashboard
func (s *Store) Load() (*contracts.Dashboard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read dashboard file: %w", err)
	}

	var dashboard contracts.Dashboard
	if err := json.Unmarshal(data, &dashboard); err != nil {
		return nil, fmt.Errorf("unmarshal dashboard: %w", err)
	}

	return &dashboard, nil
}

// Marshal returns the dashboard serialized exactly as Save writes it
func Marshal(dashboard *contracts.Dashboard) ([]byte, error) {
	data, err := json.MarshalIndent(dashboard, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal dashboard: %w", err)
	}
	return data, nil
}
