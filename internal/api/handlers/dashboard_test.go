package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jinhae8971/stock-dashboard/internal/contracts"
	"github.com/jinhae8971/stock-dashboard/pkg/logger"
)

type fakeStore struct {
	dashboard *contracts.Dashboard
	err       error
}

func (f *fakeStore) Load() (*contracts.Dashboard, error) {
	return f.dashboard, f.err
}

type fakeTrigger struct {
	ran string
	err error
}

func (f *fakeTrigger) RunJob(name string) error {
	f.ran = name
	return f.err
}

func testDashboard() *contracts.Dashboard {
	return &contracts.Dashboard{
		UpdatedAt: "2026년 08월 31일 16:10 KST",
		KR: contracts.MarketReport{
			TopStocks: []contracts.ScoredStock{
				{Ticker: "005930.KS", Name: "삼성전자", Score: 12.3456},
			},
		},
		US: contracts.MarketReport{},
	}
}

func TestGetDashboard(t *testing.T) {
	h := NewDashboardHandler(&fakeStore{dashboard: testDashboard()}, nil, logger.Nop())

	req := httptest.NewRequest("GET", "/api/dashboard", nil)
	rec := httptest.NewRecorder()
	h.GetDashboard(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got contracts.Dashboard
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "2026년 08월 31일 16:10 KST", got.UpdatedAt)
	require.Len(t, got.KR.TopStocks, 1)
	assert.Equal(t, "삼성전자", got.KR.TopStocks[0].Name)
}

func TestGetDashboardNotYetSaved(t *testing.T) {
	h := NewDashboardHandler(&fakeStore{err: errors.New("no such file")}, nil, logger.Nop())

	rec := httptest.NewRecorder()
	h.GetDashboard(rec, httptest.NewRequest("GET", "/api/dashboard", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetMarket(t *testing.T) {
	h := NewDashboardHandler(&fakeStore{dashboard: testDashboard()}, nil, logger.Nop())

	req := httptest.NewRequest("GET", "/api/dashboard/kr", nil)
	req = mux.SetURLVars(req, map[string]string{"market": "kr"})
	rec := httptest.NewRecorder()
	h.GetMarket(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		UpdatedAt string                `json:"updated_at"`
		Market    string                `json:"market"`
		Report    contracts.MarketReport `json:"report"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "kr", got.Market)
	require.Len(t, got.Report.TopStocks, 1)
}

func TestGetMarketInvalid(t *testing.T) {
	h := NewDashboardHandler(&fakeStore{dashboard: testDashboard()}, nil, logger.Nop())

	req := httptest.NewRequest("GET", "/api/dashboard/jp", nil)
	req = mux.SetURLVars(req, map[string]string{"market": "jp"})
	rec := httptest.NewRecorder()
	h.GetMarket(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTriggerFetch(t *testing.T) {
	trigger := &fakeTrigger{}
	h := NewDashboardHandler(&fakeStore{}, trigger, logger.Nop())

	rec := httptest.NewRecorder()
	h.TriggerFetch(rec, httptest.NewRequest("POST", "/api/fetch", nil))

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "dashboard_fetch", trigger.ran)
}

func TestTriggerFetchWithoutScheduler(t *testing.T) {
	h := NewDashboardHandler(&fakeStore{}, nil, logger.Nop())

	rec := httptest.NewRecorder()
	h.TriggerFetch(rec, httptest.NewRequest("POST", "/api/fetch", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
