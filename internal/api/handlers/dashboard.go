package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/jinhae8971/stock-dashboard/internal/contracts"
	"github.com/jinhae8971/stock-dashboard/pkg/logger"
)

// dashboardLoader reads the latest saved dashboard.
type dashboardLoader interface {
	Load() (*contracts.Dashboard, error)
}

// jobTrigger fires a scheduled job by name, outside its cron schedule.
type jobTrigger interface {
	RunJob(name string) error
}

// DashboardHandler handles dashboard API endpoints
// ⭐ SSOT: 대시보드 API 핸들러는 이 구조체에서만
type DashboardHandler struct {
	store   dashboardLoader
	trigger jobTrigger
	logger  *logger.Logger
}

// NewDashboardHandler creates a new dashboard handler.
// trigger는 스케줄러 없이 serve만 띄울 때 nil일 수 있다.
func NewDashboardHandler(store dashboardLoader, trigger jobTrigger, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		store:   store,
		trigger: trigger,
		logger:  log,
	}
}

// GetDashboard returns the latest saved dashboard
// GET /api/dashboard
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.store.Load()
	if err != nil {
		h.logger.WithError(err).Error("Failed to load dashboard")
		respondError(w, http.StatusNotFound, "No dashboard data available yet")
		return
	}

	respondJSON(w, http.StatusOK, dashboard)
}

// GetMarket returns a single market section of the dashboard
// GET /api/dashboard/{market}  (kr | us)
func (h *DashboardHandler) GetMarket(w http.ResponseWriter, r *http.Request) {
	market := strings.ToLower(mux.Vars(r)["market"])
	if market != "kr" && market != "us" {
		respondError(w, http.StatusBadRequest, "Invalid market (must be 'kr' or 'us')")
		return
	}

	dashboard, err := h.store.Load()
	if err != nil {
		h.logger.WithError(err).Error("Failed to load dashboard")
		respondError(w, http.StatusNotFound, "No dashboard data available yet")
		return
	}

	report := dashboard.KR
	if market == "us" {
		report = dashboard.US
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"updated_at": dashboard.UpdatedAt,
		"market":     market,
		"report":     report,
	})
}

// TriggerFetch runs the fetch job immediately
// POST /api/fetch
func (h *DashboardHandler) TriggerFetch(w http.ResponseWriter, r *http.Request) {
	if h.trigger == nil {
		respondError(w, http.StatusServiceUnavailable, "Scheduler not running")
		return
	}

	if err := h.trigger.RunJob("dashboard_fetch"); err != nil {
		h.logger.WithError(err).Error("Failed to trigger fetch job")
		respondError(w, http.StatusInternalServerError, "Failed to trigger fetch")
		return
	}

	respondJSON(w, http.StatusAccepted, map[string]string{
		"status": "fetch started",
	})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
