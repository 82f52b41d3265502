package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/Dan9191/cashflow-service/internal/config"
	"github.com/Dan9191/cashflow-service/internal/middleware"
	"github.com/Dan9191/cashflow-service/internal/models"
	"github.com/Dan9191/cashflow-service/internal/repository"
	"github.com/Dan9191/cashflow-service/internal/service"
	"github.com/gorilla/mux"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

const testSecret = "test-secret"

type stubService struct {
	orgID   string
	months  int
	balance float64
	err     error
	summary *models.ForecastSummary
}

func (s *stubService) GenerateForecast(_ context.Context, orgID string, months int, balance float64) (*models.ForecastSummary, error) {
	s.orgID, s.months, s.balance = orgID, months, balance
	if s.err != nil {
		return nil, s.err
	}
	if s.summary != nil {
		return s.summary, nil
	}
	return &models.ForecastSummary{OrganizationID: orgID, RiskLevel: models.RiskLow}, nil
}

func (s *stubService) GetDashboardForecast(_ context.Context, orgID string) (*models.DashboardForecast, error) {
	s.orgID = orgID
	if s.err != nil {
		return nil, s.err
	}
	return &models.DashboardForecast{RiskLevel: models.RiskMedium, Trend: models.TrendUp}, nil
}

func (s *stubService) GetScenarios(_ context.Context, orgID string, months int, balance float64) (*models.ScenarioSet, error) {
	s.orgID, s.months, s.balance = orgID, months, balance
	if s.err != nil {
		return nil, s.err
	}
	return &models.ScenarioSet{Optimistic: models.Scenario{Name: "optimistic"}}, nil
}

func (s *stubService) GetAgingAnalysis(_ context.Context, orgID string) (*models.AgingAnalysis, error) {
	s.orgID = orgID
	if s.err != nil {
		return nil, s.err
	}
	return &models.AgingAnalysis{NetPosition: 42}, nil
}

func newRouter(t *testing.T, svc ForecastService) *mux.Router {
	t.Helper()
	log, _ := logtest.NewNullLogger()
	r := mux.NewRouter()
	r.Use(middleware.LocaleMiddleware(language.Romanian))
	NewHandler(svc, log).Register(r, middleware.AuthMiddleware(&config.Config{JWTSecret: testSecret}))
	return r
}

func authorized(t *testing.T, target string) *http.Request {
	t.Helper()
	token, err := middleware.NewToken(testSecret, "user-1", []string{"org-1"}, time.Hour)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(t, &stubService{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestForecast_QueryParameters(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		wantStatus  int
		wantMonths  int
		wantBalance float64
	}{
		{name: "defaults", query: "", wantStatus: http.StatusOK, wantMonths: 3},
		{name: "explicit", query: "?months=12&startingBalance=-2500.5", wantStatus: http.StatusOK, wantMonths: 12, wantBalance: -2500.5},
		{name: "zero months", query: "?months=0", wantStatus: http.StatusBadRequest},
		{name: "negative months", query: "?months=-3", wantStatus: http.StatusBadRequest},
		{name: "fractional months", query: "?months=1.5", wantStatus: http.StatusBadRequest},
		{name: "bad balance", query: "?startingBalance=lots", wantStatus: http.StatusBadRequest},
		{name: "NaN balance", query: "?startingBalance=NaN", wantStatus: http.StatusBadRequest},
		{name: "infinite balance", query: "?startingBalance=Inf", wantStatus: http.StatusBadRequest},
		{name: "negative infinite balance", query: "?startingBalance=-Inf", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubService{}
			rec := httptest.NewRecorder()

			newRouter(t, svc).ServeHTTP(rec, authorized(t, "/organizations/org-1/cashflow/forecast"+tt.query))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus != http.StatusOK {
				assert.Empty(t, svc.orgID, "service must not be called")
				return
			}
			assert.Equal(t, "org-1", svc.orgID)
			assert.Equal(t, tt.wantMonths, svc.months)
			assert.Equal(t, tt.wantBalance, svc.balance)
		})
	}
}

func TestRoutes_ServiceErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "invalid horizon", err: fmt.Errorf("%w: got 0", service.ErrInvalidHorizon), want: http.StatusBadRequest},
		{name: "missing organization", err: service.ErrMissingOrganization, want: http.StatusBadRequest},
		{name: "invalid balance", err: service.ErrInvalidBalance, want: http.StatusBadRequest},
		{name: "store failure", err: errors.New("failed to fetch income history: boom"), want: http.StatusInternalServerError},
	}
	paths := []string{"forecast", "dashboard", "scenarios", "aging"}

	for _, tt := range tests {
		for _, path := range paths {
			t.Run(tt.name+"/"+path, func(t *testing.T) {
				rec := httptest.NewRecorder()
				newRouter(t, &stubService{err: tt.err}).ServeHTTP(rec, authorized(t, "/organizations/org-1/cashflow/"+path))

				assert.Equal(t, tt.want, rec.Code)
				var body map[string]string
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.NotEmpty(t, body["error"])
				assert.NotContains(t, body["error"], "boom")
			})
		}
	}
}

func TestRoutes_RequireAuthorization(t *testing.T) {
	svc := &stubService{}
	r := newRouter(t, svc)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/organizations/org-1/cashflow/aging", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, authorized(t, "/organizations/org-2/cashflow/aging"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, svc.orgID)
}

func TestDashboardAndAging(t *testing.T) {
	r := newRouter(t, &stubService{})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, authorized(t, "/organizations/org-1/cashflow/dashboard"))
	require.Equal(t, http.StatusOK, rec.Code)
	var dash models.DashboardForecast
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dash))
	assert.Equal(t, models.TrendUp, dash.Trend)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, authorized(t, "/organizations/org-1/cashflow/aging"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"net_position":42`)
}

func TestForecast_NonFiniteBalanceEndToEnd(t *testing.T) {
	log, _ := logtest.NewNullLogger()
	cfg := &config.Config{DefaultCurrency: "RON", DefaultLocale: language.Romanian, QueryTimeout: time.Second}
	r := newRouter(t, service.NewService(repository.NewMemoryStore(), log, cfg))

	for _, v := range []string{"NaN", "Inf", "-Inf", "+Inf"} {
		t.Run(v, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, authorized(t, "/organizations/org-1/cashflow/scenarios?startingBalance="+url.QueryEscape(v)))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, `{"error":"startingBalance must be a finite number"}`, rec.Body.String())
		})
	}
}

func TestForecast_UnencodableResult(t *testing.T) {
	svc := &stubService{summary: &models.ForecastSummary{CurrentBalance: math.NaN()}}
	rec := httptest.NewRecorder()

	newRouter(t, svc).ServeHTTP(rec, authorized(t, "/organizations/org-1/cashflow/forecast"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"failed to encode response"}`, rec.Body.String())
}

func TestForecast_EndToEnd(t *testing.T) {
	log, _ := logtest.NewNullLogger()
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	cfg := &config.Config{DefaultCurrency: "RON", DefaultLocale: language.Romanian, QueryTimeout: time.Second}
	svc := service.NewService(repository.NewMemoryStore(), log, cfg, service.WithClock(func() time.Time { return now }))
	r := newRouter(t, svc)

	req := authorized(t, "/organizations/org-1/cashflow/forecast?months=2&startingBalance=50000")
	req.Header.Set("Accept-Language", "en")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var summary models.ForecastSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	require.Len(t, summary.Forecasts, 2)
	assert.Equal(t, "October 2026", summary.Forecasts[0].Period)
	assert.Equal(t, 50000.0, summary.Forecasts[1].CumulativeBalance)
	assert.Equal(t, models.RiskLow, summary.RiskLevel)
}
