package dashboard_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/superbiz-erp/superbiz-erp/internal/dashboard"
	"github.com/superbiz-erp/superbiz-erp/internal/shared"
	"github.com/superbiz-erp/superbiz-erp/internal/view"
	_ "github.com/superbiz-erp/superbiz-erp/testing"
)

func newDashboardHandler(t *testing.T, repo dashboard.Repository) *dashboard.Handler {
	t.Helper()
	templates, err := view.NewEngine()
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := dashboard.NewService(repo, newTestCache(t), logger)
	return dashboard.NewHandler(logger, svc, templates, shared.NewCSRFManager("csrfsecret"))
}

func TestStatsEndpoint(t *testing.T) {
	repo := &stubRepo{
		customers:   10,
		suppliers:   2,
		categories:  3,
		products:    20,
		todaySales:  100.5,
		todayExp:    40,
		weekProfit:  60.5,
		monthProfit: 250,
	}
	handler := newDashboardHandler(t, repo)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard-stats", nil)
	res := httptest.NewRecorder()
	handler.StatsForTest(res, req)

	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "application/json", res.Header().Get("Content-Type"))

	var payload map[string]float64
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &payload))
	require.Len(t, payload, 8)

	assert.Equal(t, 10.0, payload["customers"])
	assert.Equal(t, 2.0, payload["suppliers"])
	assert.Equal(t, 3.0, payload["categories"])
	assert.Equal(t, 20.0, payload["products"])
	assert.Equal(t, 100.5, payload["today_sales"])
	assert.Equal(t, 40.0, payload["today_expenses"])
	assert.Equal(t, 60.5, payload["week_profit"])
	assert.Equal(t, 250.0, payload["month_profit"])
}

func TestStatsEndpointZeroDefaults(t *testing.T) {
	repo := &stubRepo{
		customers:     1,
		products:      1,
		suppliersErr:  dashboard.ErrTableMissing,
		categoriesErr: dashboard.ErrTableMissing,
		todaySalesErr: dashboard.ErrTableMissing,
		todayExpErr:   dashboard.ErrTableMissing,
		weekProfitErr: dashboard.ErrTableMissing,
		monthErr:      dashboard.ErrTableMissing,
	}
	handler := newDashboardHandler(t, repo)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard-stats", nil)
	res := httptest.NewRecorder()
	handler.StatsForTest(res, req)

	require.Equal(t, http.StatusOK, res.Code)

	var payload map[string]*float64
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &payload))
	require.Len(t, payload, 8)
	for key, value := range payload {
		require.NotNil(t, value, "field %s must never be null", key)
	}
	assert.Zero(t, *payload["suppliers"])
	assert.Zero(t, *payload["today_sales"])
}

func TestDashboardPageRenders(t *testing.T) {
	handler := newDashboardHandler(t, &stubRepo{})

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	res := httptest.NewRecorder()
	handler.ShowDashboardForTest(res, req)

	require.Equal(t, http.StatusOK, res.Code)
	body := res.Body.String()
	for _, id := range []string{
		"totalCustomers", "totalSupplier", "totalCategories", "totalProducts",
		"todaySales", "todayExpenses", "weekProfit", "monthProfit",
	} {
		assert.True(t, strings.Contains(body, id), "dashboard page missing element %s", id)
	}
}
