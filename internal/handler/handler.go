package handler

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/Dan9191/cashflow-service/internal/forecast"
	"github.com/Dan9191/cashflow-service/internal/middleware"
	"github.com/Dan9191/cashflow-service/internal/models"
	"github.com/Dan9191/cashflow-service/internal/service"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// ForecastService is the business layer the handlers call
type ForecastService interface {
	GenerateForecast(ctx context.Context, orgID string, horizonMonths int, startingBalance float64) (*models.ForecastSummary, error)
	GetDashboardForecast(ctx context.Context, orgID string) (*models.DashboardForecast, error)
	GetScenarios(ctx context.Context, orgID string, horizonMonths int, startingBalance float64) (*models.ScenarioSet, error)
	GetAgingAnalysis(ctx context.Context, orgID string) (*models.AgingAnalysis, error)
}

type Handler struct {
	svc ForecastService
	log *logrus.Logger
}

func NewHandler(svc ForecastService, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Register mounts the public and the authenticated routes
func (h *Handler) Register(r *mux.Router, auth mux.MiddlewareFunc) {
	r.HandleFunc("/healthz", h.Health).Methods(http.MethodGet)

	orgs := r.PathPrefix("/organizations/{orgID}/cashflow").Subrouter()
	orgs.Use(auth)
	orgs.HandleFunc("/forecast", h.Forecast).Methods(http.MethodGet)
	orgs.HandleFunc("/dashboard", h.Dashboard).Methods(http.MethodGet)
	orgs.HandleFunc("/scenarios", h.Scenarios).Methods(http.MethodGet)
	orgs.HandleFunc("/aging", h.Aging).Methods(http.MethodGet)
}

// Health reports liveness
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Forecast handles the multi-month cash-flow forecast
func (h *Handler) Forecast(w http.ResponseWriter, r *http.Request) {
	months, balance, ok := h.parseForecastQuery(w, r)
	if !ok {
		return
	}
	summary, err := h.svc.GenerateForecast(r.Context(), mux.Vars(r)["orgID"], months, balance)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// Dashboard handles the next-month summary
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dash, err := h.svc.GetDashboardForecast(r.Context(), mux.Vars(r)["orgID"])
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dash)
}

// Scenarios handles the optimistic/realistic/pessimistic comparison
func (h *Handler) Scenarios(w http.ResponseWriter, r *http.Request) {
	months, balance, ok := h.parseForecastQuery(w, r)
	if !ok {
		return
	}
	set, err := h.svc.GetScenarios(r.Context(), mux.Vars(r)["orgID"], months, balance)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, set)
}

// Aging handles the receivables/payables aging report
func (h *Handler) Aging(w http.ResponseWriter, r *http.Request) {
	aging, err := h.svc.GetAgingAnalysis(r.Context(), mux.Vars(r)["orgID"])
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, aging)
}

func (h *Handler) parseForecastQuery(w http.ResponseWriter, r *http.Request) (int, float64, bool) {
	q := r.URL.Query()

	months := forecast.DefaultHorizon
	if v := q.Get("months"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeJSON(w, http.StatusBadRequest, errorBody("months must be a positive integer"))
			return 0, 0, false
		}
		months = n
	}

	var balance float64
	if v := q.Get("startingBalance"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			writeJSON(w, http.StatusBadRequest, errorBody("startingBalance must be a finite number"))
			return 0, 0, false
		}
		balance = f
	}
	return months, balance, true
}

func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, service.ErrInvalidHorizon) || errors.Is(err, service.ErrMissingOrganization) ||
		errors.Is(err, service.ErrInvalidBalance) {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	h.log.WithFields(logrus.Fields{
		"request_id":      middleware.RequestID(r.Context()),
		"organization_id": mux.Vars(r)["orgID"],
	}).Errorf("Request failed: %v", err)
	writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
}

func errorBody(msg string) map[string]string {
	return map[string]string{"error": msg}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	body, err := json.Marshal(v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(errorBody("failed to encode response"))
		return
	}
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}
