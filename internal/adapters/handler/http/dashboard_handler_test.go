package http_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bpr-hq/bpr-dashboard/internal/core/domain"
)

func seedTargets(t *testing.T, s *testServer) {
	t.Helper()
	for _, v := range []struct {
		dept     string
		achieved float64
	}{
		{"sales", 80},
		{"sales", 40},
		{"marketing", 90},
	} {
		w := s.do("admin", http.MethodPost, "/victory-targets", map[string]any{
			"department": v.dept, "title": "Target", "target": 100, "achieved": v.achieved,
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}
}

func TestDashboardHandler_Department(t *testing.T) {
	s := newTestServer(t)
	seedTargets(t, s)

	w := s.do("viewer", http.MethodGet, "/dashboard/department?department=sales", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	score := decode[domain.DepartmentScore](t, w, "score")
	assert.Equal(t, 60, score.AverageScore)
	assert.Equal(t, domain.StatusAtRisk, score.Status)
	assert.Equal(t, 1, score.GreenCount)
	assert.Equal(t, 2, score.TotalTargets)
	require.Len(t, score.UpdatedTargets, 2)

	w = s.do("viewer", http.MethodGet, "/dashboard/department?department=marketing", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do("viewer", http.MethodGet, "/dashboard/department", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDashboardHandler_CompanyRespectsVisibility(t *testing.T) {
	s := newTestServer(t)
	seedTargets(t, s)

	tests := []struct {
		user    string
		average int
		status  domain.Status
	}{
		{"admin", 75, domain.StatusOnTrack},
		{"member", 75, domain.StatusOnTrack},
		{"viewer", 60, domain.StatusAtRisk},
	}
	for _, tt := range tests {
		t.Run(tt.user, func(t *testing.T) {
			w := s.do(tt.user, http.MethodGet, "/dashboard/company", nil)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			company := decode[domain.CompanyScore](t, w, "company")
			assert.Equal(t, tt.average, company.AverageScore)
			assert.Equal(t, tt.status, company.Status)
			assert.Equal(t, tt.status.Label(), company.Label)
		})
	}
}

func TestDashboardHandler_History(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	for i, day := range []time.Time{
		time.Date(2026, 1, 7, 12, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 18, 12, 0, 0, 0, time.UTC),
	} {
		score := domain.DepartmentScore{BrandID: s.brand.ID, Department: "sales", AverageScore: 50 + i*10}
		require.NoError(t, s.store.Snapshots.Upsert(ctx, domain.NewWeeklySnapshot(score, day)))
	}

	w := s.do("viewer", http.MethodGet, "/dashboard/history?department=sales&period=last-4-weeks&anchor=2026-03-18", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	history := decode[[]domain.WeeklySnapshot](t, w, "history")
	require.Len(t, history, 2)
	assert.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), history[0].WeekStart.UTC())
	assert.Equal(t, 70, history[1].AverageScore)

	w = s.do("viewer", http.MethodGet, "/dashboard/history?department=sales&period=fortnight", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do("viewer", http.MethodGet, "/dashboard/history?department=sales&anchor=yesterday", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDashboardHandler_Config(t *testing.T) {
	s := newTestServer(t)
	seedTargets(t, s)

	w := s.do("member", http.MethodGet, "/dashboard/config?department=sales", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	cfg := decode[domain.DepartmentConfig](t, w, "config")
	assert.Equal(t, "Sales", cfg.Name)
	assert.Len(t, cfg.VictoryTargets, 2)
	assert.Empty(t, cfg.PowerMoves)
}

func TestDashboardHandler_CurrentPeriod(t *testing.T) {
	s := newTestServer(t)

	w := s.do("viewer", http.MethodGet, "/periods/current?date=2026-05-17", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Equal(t, domain.Q2, decode[domain.Quarter](t, w, "quarter"))
	assert.Equal(t, time.Date(2026, 5, 11, 0, 0, 0, 0, time.UTC), decode[time.Time](t, w, "week_start"))

	periods := decode[map[string]struct {
		From time.Time `json:"from"`
		To   time.Time `json:"to"`
	}](t, w, "periods")
	require.Len(t, periods, len(domain.Periods))
	assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), periods["this-quarter"].From)
	assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), periods["last-month"].From)

	w = s.do("viewer", http.MethodGet, "/periods/current?date=17/05/2026", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDashboardHandler_Departments(t *testing.T) {
	s := newTestServer(t)

	w := s.do("viewer", http.MethodGet, "/departments", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]domain.DepartmentInfo](t, w, "departments"), len(domain.KnownDepartments))
}
