package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/Dan9191/cashflow-service/internal/forecast"
	"github.com/Dan9191/cashflow-service/internal/models"
	"github.com/Dan9191/cashflow-service/internal/repository"
	"github.com/Dan9191/cashflow-service/internal/service"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"
)

// Forecaster produces the forecast a subscription is evaluated against
type Forecaster interface {
	GenerateForecast(ctx context.Context, orgID string, horizonMonths int, startingBalance float64) (*models.ForecastSummary, error)
}

// Notifier delivers a risk alert
type Notifier interface {
	SendRiskAlert(sub models.AlertSubscription, summary *models.ForecastSummary) error
}

// RunResult counts the outcome of one monitor run
type RunResult struct {
	Checked int
	Alerted int
	Failed  int
}

// RiskMonitor periodically forecasts every subscribed organization and alerts
// when the risk level reaches the subscription's minimum
type RiskMonitor struct {
	subs          repository.AlertStore
	forecaster    Forecaster
	notifier      Notifier
	log           *logrus.Logger
	horizon       int
	defaultLocale language.Tag
	cron          *cron.Cron
}

// NewRiskMonitor creates a monitor forecasting horizonMonths ahead
func NewRiskMonitor(subs repository.AlertStore, forecaster Forecaster, notifier Notifier, log *logrus.Logger, horizonMonths int, defaultLocale language.Tag) *RiskMonitor {
	return &RiskMonitor{
		subs:          subs,
		forecaster:    forecaster,
		notifier:      notifier,
		log:           log,
		horizon:       horizonMonths,
		defaultLocale: defaultLocale,
	}
}

// Start schedules the monitor on a standard five-field cron spec
func (m *RiskMonitor) Start(spec string) error {
	m.cron = cron.New()
	_, err := m.cron.AddFunc(spec, func() {
		if _, err := m.RunOnce(context.Background()); err != nil {
			m.log.Errorf("Risk monitor run failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule risk monitor: %w", err)
	}
	m.cron.Start()
	m.log.Infof("Risk monitor scheduled: %s", spec)
	return nil
}

// Stop halts scheduling and waits for a running job up to the context deadline
func (m *RiskMonitor) Stop(ctx context.Context) {
	if m.cron == nil {
		return
	}
	select {
	case <-m.cron.Stop().Done():
	case <-ctx.Done():
	}
}

// RunOnce evaluates every subscription. A failure for one organization is
// logged and counted without stopping the others.
func (m *RiskMonitor) RunOnce(ctx context.Context) (RunResult, error) {
	var result RunResult
	start := time.Now()

	subs, err := m.subs.ListAlertSubscriptions(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to list alert subscriptions: %w", err)
	}

	for _, sub := range subs {
		result.Checked++
		alerted, err := m.check(ctx, sub)
		if err != nil {
			m.log.WithField("organization_id", sub.OrganizationID).Errorf("Risk check failed: %v", err)
			result.Failed++
			continue
		}
		if alerted {
			result.Alerted++
		}
	}

	m.log.WithFields(logrus.Fields{
		"checked":     result.Checked,
		"alerted":     result.Alerted,
		"failed":      result.Failed,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("Risk monitor run completed")
	return result, nil
}

func (m *RiskMonitor) check(ctx context.Context, sub models.AlertSubscription) (bool, error) {
	ctx = service.WithLocale(ctx, forecast.MatchLocale(m.defaultLocale, sub.Locale))
	summary, err := m.forecaster.GenerateForecast(ctx, sub.OrganizationID, m.horizon, sub.StartingBalance)
	if err != nil {
		return false, err
	}

	minLevel := sub.MinLevel
	if minLevel.Severity() < 0 {
		minLevel = models.RiskHigh
	}
	if !summary.RiskLevel.AtLeast(minLevel) {
		return false, nil
	}
	if err := m.notifier.SendRiskAlert(sub, summary); err != nil {
		return false, err
	}
	return true, nil
}
