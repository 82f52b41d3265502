package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/Dan9191/cashflow-service/internal/cache"
	"github.com/Dan9191/cashflow-service/internal/config"
	"github.com/Dan9191/cashflow-service/internal/forecast"
	"github.com/Dan9191/cashflow-service/internal/models"
	"github.com/Dan9191/cashflow-service/internal/repository"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
)

// DashboardHorizon is the number of months the dashboard view compares
const DashboardHorizon = 2

// trendThreshold is the change in net cash flow between the two dashboard
// months that counts as a trend
const trendThreshold = 1000

var (
	// ErrInvalidHorizon is returned for a forecast horizon below one month
	ErrInvalidHorizon = errors.New("horizon must be a positive number of months")
	// ErrMissingOrganization is returned when no organization id is given
	ErrMissingOrganization = errors.New("organization id is required")
	// ErrInvalidBalance is returned for a NaN or infinite starting balance
	ErrInvalidBalance = errors.New("starting balance must be a finite number")
)

// Service handles cash-flow forecasting business logic
type Service struct {
	repo   repository.Gateway
	log    *logrus.Logger
	config *config.Config
	cache  *cache.ForecastCache
	now    func() time.Time
}

// Option customizes a Service
type Option func(*Service)

// WithClock replaces the wall clock, mainly for tests
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithCache enables result caching
func WithCache(c *cache.ForecastCache) Option {
	return func(s *Service) { s.cache = c }
}

// NewService initializes a new service
func NewService(repo repository.Gateway, log *logrus.Logger, cfg *config.Config, opts ...Option) *Service {
	s := &Service{repo: repo, log: log, config: cfg, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type localeKey struct{}

// WithLocale attaches the negotiated output locale to the context
func WithLocale(ctx context.Context, tag language.Tag) context.Context {
	return context.WithValue(ctx, localeKey{}, tag)
}

func (s *Service) locale(ctx context.Context) language.Tag {
	if tag, ok := ctx.Value(localeKey{}).(language.Tag); ok {
		return tag
	}
	return s.config.DefaultLocale
}

// forecastInputs are the repository reads one forecast needs
type forecastInputs struct {
	income       []models.Transaction
	expenses     []models.Transaction
	openIncome   []models.OpenTransaction
	openExpenses []models.OpenTransaction
	recurring    []models.RecurringBilling
}

// GenerateForecast projects the organization's cash position over the next
// horizonMonths calendar months, starting with the current one
func (s *Service) GenerateForecast(ctx context.Context, orgID string, horizonMonths int, startingBalance float64) (*models.ForecastSummary, error) {
	if orgID == "" {
		return nil, ErrMissingOrganization
	}
	if horizonMonths <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidHorizon, horizonMonths)
	}
	if math.IsNaN(startingBalance) || math.IsInf(startingBalance, 0) {
		return nil, ErrInvalidBalance
	}

	now := s.now()
	locale := s.locale(ctx)
	var key string
	if s.cache != nil {
		key = cache.Key(orgID, horizonMonths, startingBalance, now, locale.String())
		if summary, ok := s.cache.Get(key); ok {
			s.log.WithField("organization_id", orgID).Debug("Forecast served from cache")
			return summary, nil
		}
	}

	in, err := s.loadForecastInputs(ctx, orgID, now, horizonMonths)
	if err != nil {
		return nil, err
	}

	pattern := forecast.AnalyzeHistory(in.income, in.expenses, now)
	schedule := forecast.CollectScheduled(in.openIncome, in.openExpenses, in.recurring,
		forecast.HorizonWindow(now, horizonMonths))
	summary := forecast.Project(forecast.Input{
		OrganizationID:  orgID,
		Pattern:         pattern,
		Schedule:        schedule,
		StartingBalance: startingBalance,
		Horizon:         horizonMonths,
		Start:           now,
		Currency:        s.config.DefaultCurrency,
		Locale:          locale,
		GeneratedAt:     now,
	})

	s.log.WithFields(logrus.Fields{
		"organization_id": orgID,
		"horizon_months":  horizonMonths,
		"risk_level":      summary.RiskLevel,
		"lowest_balance":  summary.LowestBalance,
		"scheduled":       len(schedule.Income) + len(schedule.Expenses),
	}).Info("Forecast generated")

	if s.cache != nil {
		s.cache.Set(key, summary)
	}
	return summary, nil
}

// loadForecastInputs issues the independent repository reads concurrently
func (s *Service) loadForecastInputs(ctx context.Context, orgID string, now time.Time, horizonMonths int) (*forecastInputs, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.QueryTimeout)
	defer cancel()

	history := forecast.HistoryWindow(now)
	horizon := forecast.HorizonWindow(now, horizonMonths)
	in := &forecastInputs{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		if in.income, err = s.repo.FetchTransactions(gctx, orgID, models.KindIncome, history.Start, history.End); err != nil {
			return fmt.Errorf("failed to fetch income history: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if in.expenses, err = s.repo.FetchTransactions(gctx, orgID, models.KindExpense, history.Start, history.End); err != nil {
			return fmt.Errorf("failed to fetch expense history: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if in.openIncome, err = s.repo.FetchOpenTransactions(gctx, orgID, models.KindIncome); err != nil {
			return fmt.Errorf("failed to fetch open receivables: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if in.openExpenses, err = s.repo.FetchOpenTransactions(gctx, orgID, models.KindExpense); err != nil {
			return fmt.Errorf("failed to fetch open payables: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if in.recurring, err = s.repo.FetchActiveRecurringBillings(gctx, orgID, horizon.End); err != nil {
			return fmt.Errorf("failed to fetch recurring billings: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		s.log.WithField("organization_id", orgID).Errorf("Failed to load forecast inputs: %v", err)
		return nil, err
	}
	return in, nil
}

// GetDashboardForecast summarizes the next month and the direction of the
// month after it
func (s *Service) GetDashboardForecast(ctx context.Context, orgID string) (*models.DashboardForecast, error) {
	summary, err := s.GenerateForecast(ctx, orgID, DashboardHorizon, 0)
	if err != nil {
		return nil, err
	}

	next, following := summary.Forecasts[0], summary.Forecasts[1]
	trend := models.TrendStable
	switch delta := following.NetCashFlow - next.NetCashFlow; {
	case delta > trendThreshold:
		trend = models.TrendUp
	case delta < -trendThreshold:
		trend = models.TrendDown
	}

	return &models.DashboardForecast{
		NextMonthIncome:   next.ExpectedIncome,
		NextMonthExpenses: next.ExpectedExpenses,
		NextMonthNet:      forecast.Round2(next.ExpectedIncome - next.ExpectedExpenses),
		RiskLevel:         summary.RiskLevel,
		Trend:             trend,
	}, nil
}

// GetScenarios returns the realistic forecast next to optimistic and
// pessimistic variants
func (s *Service) GetScenarios(ctx context.Context, orgID string, horizonMonths int, startingBalance float64) (*models.ScenarioSet, error) {
	summary, err := s.GenerateForecast(ctx, orgID, horizonMonths, startingBalance)
	if err != nil {
		return nil, err
	}
	set := forecast.ProjectScenarios(summary)
	return &set, nil
}

// GetAgingAnalysis buckets the organization's open receivables and payables by age
func (s *Service) GetAgingAnalysis(ctx context.Context, orgID string) (*models.AgingAnalysis, error) {
	if orgID == "" {
		return nil, ErrMissingOrganization
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.QueryTimeout)
	defer cancel()

	var receivables, payables []models.OpenTransaction
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		if receivables, err = s.repo.FetchOpenTransactions(gctx, orgID, models.KindIncome); err != nil {
			return fmt.Errorf("failed to fetch open receivables: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if payables, err = s.repo.FetchOpenTransactions(gctx, orgID, models.KindExpense); err != nil {
			return fmt.Errorf("failed to fetch open payables: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	analysis := forecast.BucketAging(receivables, payables, s.now())
	s.log.WithFields(logrus.Fields{
		"organization_id": orgID,
		"receivables":     analysis.Receivables.Count,
		"payables":        analysis.Payables.Count,
	}).Info("Aging analysis generated")
	return &analysis, nil
}
