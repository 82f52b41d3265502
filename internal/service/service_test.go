package service

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/Dan9191/cashflow-service/internal/cache"
	"github.com/Dan9191/cashflow-service/internal/config"
	"github.com/Dan9191/cashflow-service/internal/forecast"
	"github.com/Dan9191/cashflow-service/internal/models"
	"github.com/Dan9191/cashflow-service/internal/repository"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/text/language"
)

var testNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func testConfig() *config.Config {
	return &config.Config{
		DefaultCurrency: "RON",
		DefaultLocale:   language.Romanian,
		QueryTimeout:    time.Second,
	}
}

func newTestService(t *testing.T, repo repository.Gateway, opts ...Option) (*Service, *logtest.Hook) {
	t.Helper()
	log, hook := logtest.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	opts = append([]Option{WithClock(func() time.Time { return testNow })}, opts...)
	return NewService(repo, log, testConfig(), opts...), hook
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func expectEmptyReads(gw *repository.MockGateway, orgID string) {
	gw.EXPECT().FetchTransactions(gomock.Any(), orgID, gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	gw.EXPECT().FetchOpenTransactions(gomock.Any(), orgID, gomock.Any()).Return(nil, nil).AnyTimes()
	gw.EXPECT().FetchActiveRecurringBillings(gomock.Any(), orgID, gomock.Any()).Return(nil, nil).AnyTimes()
}

func TestGenerateForecast_RejectsInvalidInput(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _ := newTestService(t, repository.NewMockGateway(ctrl))

	_, err := svc.GenerateForecast(context.Background(), "", 3, 0)
	assert.ErrorIs(t, err, ErrMissingOrganization)

	for _, horizon := range []int{0, -1} {
		_, err := svc.GenerateForecast(context.Background(), "org-123", horizon, 0)
		assert.ErrorIs(t, err, ErrInvalidHorizon)
	}

	for _, balance := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := svc.GenerateForecast(context.Background(), "org-123", 3, balance)
		assert.ErrorIs(t, err, ErrInvalidBalance)
		_, err = svc.GetScenarios(context.Background(), "org-123", 3, balance)
		assert.ErrorIs(t, err, ErrInvalidBalance)
	}
}

func TestGenerateForecast_QueriesWindows(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := repository.NewMockGateway(ctrl)
	history := forecast.HistoryWindow(testNow)
	horizon := forecast.HorizonWindow(testNow, 3)

	gw.EXPECT().FetchTransactions(gomock.Any(), "org-123", models.KindIncome, history.Start, history.End).
		Return([]models.Transaction{{Date: testNow.AddDate(0, -1, 0), GrossAmount: 12000}}, nil)
	gw.EXPECT().FetchTransactions(gomock.Any(), "org-123", models.KindExpense, history.Start, history.End).
		Return([]models.Transaction{{Date: testNow.AddDate(0, -1, 0), GrossAmount: 4000}}, nil)
	gw.EXPECT().FetchOpenTransactions(gomock.Any(), "org-123", models.KindIncome).Return(nil, nil)
	gw.EXPECT().FetchOpenTransactions(gomock.Any(), "org-123", models.KindExpense).
		Return([]models.OpenTransaction{{ID: "bill-1", DueDate: date(2026, 11, 5), GrossAmount: 90000}}, nil)
	gw.EXPECT().FetchActiveRecurringBillings(gomock.Any(), "org-123", horizon.End).Return(nil, nil)

	svc, hook := newTestService(t, gw)
	summary, err := svc.GenerateForecast(context.Background(), "org-123", 3, 1000)

	require.NoError(t, err)
	require.Len(t, summary.Forecasts, 3)
	assert.Equal(t, "org-123", summary.OrganizationID)
	assert.Equal(t, "RON", summary.Currency)
	assert.Equal(t, 12000.0, summary.Pattern.AverageMonthlyIncome)
	assert.Equal(t, 90000.0, summary.Forecasts[1].ExpectedExpenses)
	assert.Equal(t, "Forecast generated", hook.LastEntry().Message)
	assert.Equal(t, "org-123", hook.LastEntry().Data["organization_id"])
}

func TestGenerateForecast_GatewayError(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := repository.NewMockGateway(ctrl)
	dbErr := errors.New("connection refused")

	gw.EXPECT().FetchOpenTransactions(gomock.Any(), "org-123", models.KindIncome).Return(nil, dbErr)
	gw.EXPECT().FetchOpenTransactions(gomock.Any(), "org-123", models.KindExpense).Return(nil, nil).AnyTimes()
	gw.EXPECT().FetchTransactions(gomock.Any(), "org-123", gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	gw.EXPECT().FetchActiveRecurringBillings(gomock.Any(), "org-123", gomock.Any()).Return(nil, nil).AnyTimes()

	svc, _ := newTestService(t, gw)
	_, err := svc.GenerateForecast(context.Background(), "org-123", 3, 0)

	require.Error(t, err)
	assert.ErrorIs(t, err, dbErr)
	assert.Contains(t, err.Error(), "open receivables")
}

func TestGenerateForecast_UsesCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := repository.NewMockGateway(ctrl)
	gw.EXPECT().FetchTransactions(gomock.Any(), "org-123", gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)
	gw.EXPECT().FetchOpenTransactions(gomock.Any(), "org-123", gomock.Any()).Return(nil, nil).Times(2)
	gw.EXPECT().FetchActiveRecurringBillings(gomock.Any(), "org-123", gomock.Any()).Return(nil, nil).Times(1)

	c := cache.NewForecastCache(time.Minute, func() time.Time { return testNow })
	svc, _ := newTestService(t, gw, WithCache(c))

	first, err := svc.GenerateForecast(context.Background(), "org-123", 3, 500)
	require.NoError(t, err)
	second, err := svc.GenerateForecast(context.Background(), "org-123", 3, 500)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, c.Len())
}

func TestGenerateForecast_LocaleFromContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := repository.NewMockGateway(ctrl)
	expectEmptyReads(gw, "org-123")
	svc, _ := newTestService(t, gw)

	ro, err := svc.GenerateForecast(context.Background(), "org-123", 1, 0)
	require.NoError(t, err)
	en, err := svc.GenerateForecast(WithLocale(context.Background(), language.English), "org-123", 1, 0)
	require.NoError(t, err)

	assert.Equal(t, "octombrie 2026", ro.Forecasts[0].Period)
	assert.Equal(t, "October 2026", en.Forecasts[0].Period)
}

func TestGenerateForecast_ZeroHistory(t *testing.T) {
	svc, _ := newTestService(t, repository.NewMemoryStore())

	summary, err := svc.GenerateForecast(context.Background(), "org-123", 3, 50000)

	require.NoError(t, err)
	require.Len(t, summary.Forecasts, 3)
	for _, p := range summary.Forecasts {
		assert.Zero(t, p.ExpectedIncome)
		assert.Zero(t, p.ExpectedExpenses)
		assert.Zero(t, p.NetCashFlow)
		assert.Equal(t, 50000.0, p.CumulativeBalance)
	}
	assert.Equal(t, models.RiskLow, summary.RiskLevel)
}

func TestGenerateForecast_NegativeStartingBalance(t *testing.T) {
	store := repository.NewMemoryStore()
	store.AddInvoice(repository.Invoice{
		ID: "inv-1", OrganizationID: "org-123", Kind: models.KindIncome,
		InvoiceDate: testNow.AddDate(0, -2, 0), GrossAmount: 800000, PaymentStatus: "PAID",
	})
	svc, _ := newTestService(t, store)

	summary, err := svc.GenerateForecast(context.Background(), "org-123", 3, -10000)

	require.NoError(t, err)
	assert.Equal(t, models.RiskCritical, summary.RiskLevel)
}

func TestGenerateForecast_FlatHistory(t *testing.T) {
	store := repository.NewMemoryStore()
	for i := 0; i < 12; i++ {
		store.AddInvoice(repository.Invoice{
			ID: "inv", OrganizationID: "org-123", Kind: models.KindIncome,
			InvoiceDate: testNow.AddDate(0, -i, -1), GrossAmount: 100000, PaymentStatus: "PAID",
		})
	}
	svc, _ := newTestService(t, store)

	summary, err := svc.GenerateForecast(context.Background(), "org-123", 3, 0)

	require.NoError(t, err)
	for _, f := range summary.Pattern.SeasonalFactors {
		assert.InDelta(t, 1.0, f, 1e-9)
	}
	assert.InDelta(t, 0, summary.Pattern.GrowthRate, 1e-9)
	assert.InDelta(t, 100000, summary.Forecasts[0].ExpectedIncome, 0.01)
}

func TestGenerateForecast_ScheduledReceivable(t *testing.T) {
	store := repository.NewMemoryStore()
	store.AddInvoice(repository.Invoice{
		ID: "inv-1", OrganizationID: "org-123", Kind: models.KindIncome,
		InvoiceDate: testNow.AddDate(0, 0, 1), DueDate: date(2026, 10, 28),
		GrossAmount: 50000, PaymentStatus: "UNPAID",
	})
	svc, _ := newTestService(t, store)

	summary, err := svc.GenerateForecast(context.Background(), "org-123", 1, 0)

	require.NoError(t, err)
	require.Len(t, summary.Forecasts, 1)
	assert.Equal(t, 50000.00, summary.Forecasts[0].ExpectedIncome)
	assert.Equal(t, 50000.00, summary.Forecasts[0].CumulativeBalance)
}

func TestGenerateForecast_ReceivableDueNextMonth(t *testing.T) {
	store := repository.NewMemoryStore()
	store.AddInvoice(repository.Invoice{
		ID: "inv-1", OrganizationID: "org-123", Kind: models.KindIncome,
		InvoiceDate: testNow.AddDate(0, 0, 1), DueDate: date(2026, 11, 15),
		GrossAmount: 50000, PaymentStatus: "UNPAID",
	})
	svc, _ := newTestService(t, store)

	summary, err := svc.GenerateForecast(context.Background(), "org-123", 2, 0)

	require.NoError(t, err)
	require.Len(t, summary.Forecasts, 2)
	assert.Zero(t, summary.Forecasts[0].ExpectedIncome)
	assert.Zero(t, summary.Forecasts[0].CumulativeBalance)
	assert.Equal(t, time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC), summary.Forecasts[1].Date)
	assert.Equal(t, 50000.00, summary.Forecasts[1].ExpectedIncome)
	assert.Equal(t, 50000.00, summary.Forecasts[1].CumulativeBalance)

	current, err := svc.GenerateForecast(context.Background(), "org-123", 1, 0)
	require.NoError(t, err)
	require.Len(t, current.Forecasts, 1)
	assert.Zero(t, current.Forecasts[0].ExpectedIncome, "a one-month horizon covers the current month only")
}

func TestGetDashboardForecast_Trend(t *testing.T) {
	tests := []struct {
		name string
		due  *time.Time
		want models.Trend
	}{
		{name: "receivable next month", due: date(2026, 11, 15), want: models.TrendUp},
		{name: "receivable this month", due: date(2026, 10, 25), want: models.TrendDown},
		{name: "nothing scheduled", want: models.TrendStable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := repository.NewMemoryStore()
			if tt.due != nil {
				store.AddInvoice(repository.Invoice{
					ID: "inv-1", OrganizationID: "org-123", Kind: models.KindIncome,
					InvoiceDate: testNow.AddDate(0, 0, 1), DueDate: tt.due,
					GrossAmount: 50000, PaymentStatus: "UNPAID",
				})
			}
			svc, _ := newTestService(t, store)

			dash, err := svc.GetDashboardForecast(context.Background(), "org-123")

			require.NoError(t, err)
			assert.Equal(t, tt.want, dash.Trend)
			assert.Equal(t, dash.NextMonthIncome-dash.NextMonthExpenses, dash.NextMonthNet)
		})
	}
}

func TestGetDashboardForecast_MissingOrganization(t *testing.T) {
	svc, _ := newTestService(t, repository.NewMemoryStore())

	_, err := svc.GetDashboardForecast(context.Background(), "")

	assert.ErrorIs(t, err, ErrMissingOrganization)
}

func TestGetScenarios_Ordering(t *testing.T) {
	store := repository.NewMemoryStore()
	for i := 0; i < 6; i++ {
		store.AddInvoice(repository.Invoice{
			ID: "in", OrganizationID: "org-123", Kind: models.KindIncome,
			InvoiceDate: testNow.AddDate(0, -i, -1), GrossAmount: 60000, PaymentStatus: "PAID",
		})
		store.AddInvoice(repository.Invoice{
			ID: "out", OrganizationID: "org-123", Kind: models.KindExpense,
			InvoiceDate: testNow.AddDate(0, -i, -1), GrossAmount: 40000, PaymentStatus: "PAID",
		})
	}
	svc, _ := newTestService(t, store)

	set, err := svc.GetScenarios(context.Background(), "org-123", 6, 10000)

	require.NoError(t, err)
	assert.Less(t, set.Pessimistic.TotalIncome, set.Realistic.TotalIncome)
	assert.Less(t, set.Realistic.TotalIncome, set.Optimistic.TotalIncome)
	assert.Less(t, set.Optimistic.TotalExpenses, set.Realistic.TotalExpenses)
	assert.Less(t, set.Realistic.TotalExpenses, set.Pessimistic.TotalExpenses)
	assert.Len(t, set.Optimistic.Forecasts, 6)
}

func TestGetAgingAnalysis(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := repository.NewMockGateway(ctrl)
	paid := 2000.0
	gw.EXPECT().FetchOpenTransactions(gomock.Any(), "org-123", models.KindIncome).Return([]models.OpenTransaction{
		{ID: "r1", DueDate: date(2026, 10, 25), GrossAmount: 5000},
		{ID: "r2", DueDate: date(2026, 9, 1), GrossAmount: 7000, PaidAmount: &paid},
	}, nil)
	gw.EXPECT().FetchOpenTransactions(gomock.Any(), "org-123", models.KindExpense).Return([]models.OpenTransaction{
		{ID: "p1", DueDate: date(2026, 6, 1), GrossAmount: 3000},
	}, nil)
	svc, _ := newTestService(t, gw)

	aging, err := svc.GetAgingAnalysis(context.Background(), "org-123")

	require.NoError(t, err)
	assert.Equal(t, 10000.0, aging.Receivables.Total)
	assert.Equal(t, 2, aging.Receivables.Count)
	assert.Equal(t, 3000.0, aging.Payables.Total)
	assert.Equal(t, 7000.0, aging.NetPosition)
	assert.Equal(t, 5000.0, aging.Receivables.Buckets[0].Amount)
	assert.Equal(t, 5000.0, aging.Receivables.Buckets[2].Amount)
	assert.Equal(t, 3000.0, aging.Payables.Buckets[4].Amount)
}

func TestGetAgingAnalysis_GatewayError(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := repository.NewMockGateway(ctrl)
	gw.EXPECT().FetchOpenTransactions(gomock.Any(), "org-123", models.KindIncome).Return(nil, nil).AnyTimes()
	gw.EXPECT().FetchOpenTransactions(gomock.Any(), "org-123", models.KindExpense).Return(nil, errors.New("timeout"))
	svc, _ := newTestService(t, gw)

	_, err := svc.GetAgingAnalysis(context.Background(), "org-123")

	assert.ErrorContains(t, err, "open payables")
}
