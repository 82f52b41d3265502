package models

import "time"

// RiskLevel is the ordinal cash-flow risk classification
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// Severity orders risk levels from best (0) to worst (3); unknown levels are -1
func (r RiskLevel) Severity() int {
	switch r {
	case RiskLow:
		return 0
	case RiskMedium:
		return 1
	case RiskHigh:
		return 2
	case RiskCritical:
		return 3
	}
	return -1
}

// AtLeast reports whether r is as bad as or worse than other
func (r RiskLevel) AtLeast(other RiskLevel) bool {
	return r.Severity() >= other.Severity()
}

// HistoricalPattern is the statistical baseline derived from trailing history
type HistoricalPattern struct {
	AverageMonthlyIncome   float64     `json:"average_monthly_income"`
	AverageMonthlyExpenses float64     `json:"average_monthly_expenses"`
	SeasonalFactors        [12]float64 `json:"seasonal_factors"` // Jan..Dec, mean 1.0
	GrowthRate             float64     `json:"growth_rate"`
	Volatility             float64     `json:"volatility"`
}

// ForecastPeriod is one projected calendar month
type ForecastPeriod struct {
	Period            string    `json:"period"`
	Date              time.Time `json:"date"` // first day of the month
	ExpectedIncome    float64   `json:"expected_income"`
	ExpectedExpenses  float64   `json:"expected_expenses"`
	NetCashFlow       float64   `json:"net_cash_flow"`
	CumulativeBalance float64   `json:"cumulative_balance"`
	Confidence        int       `json:"confidence"` // percent, 30..95
}

// ForecastSummary is the full result of a forecast request
type ForecastSummary struct {
	OrganizationID        string            `json:"organization_id"`
	GeneratedAt           time.Time         `json:"generated_at"`
	StartDate             time.Time         `json:"start_date"`
	EndDate               time.Time         `json:"end_date"`
	Currency              string            `json:"currency"`
	CurrentBalance        float64           `json:"current_balance"`
	TotalExpectedIncome   float64           `json:"total_expected_income"`
	TotalExpectedExpenses float64           `json:"total_expected_expenses"`
	NetForecast           float64           `json:"net_forecast"`
	LowestBalance         float64           `json:"lowest_balance"`
	LowestBalanceDate     time.Time         `json:"lowest_balance_date"`
	RiskLevel             RiskLevel         `json:"risk_level"`
	Forecasts             []ForecastPeriod  `json:"forecasts"`
	Insights              []string          `json:"insights"`
	Pattern               HistoricalPattern `json:"pattern"`
	// Unrounded holds each period's exact income and expenses for rescaling
	Unrounded []PeriodAmounts `json:"-"`
}

// PeriodAmounts are a forecast period's income and expenses before rounding
type PeriodAmounts struct {
	Income   float64
	Expenses float64
}

// Trend is the direction of the dashboard net cash flow
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// DashboardForecast is the compact next-month view
type DashboardForecast struct {
	NextMonthIncome   float64   `json:"next_month_income"`
	NextMonthExpenses float64   `json:"next_month_expenses"`
	NextMonthNet      float64   `json:"next_month_net"`
	RiskLevel         RiskLevel `json:"risk_level"`
	Trend             Trend     `json:"trend"`
}

// Scenario is a rescaled variant of a base forecast
type Scenario struct {
	Name              string           `json:"name"`
	IncomeMultiplier  float64          `json:"income_multiplier"`
	ExpenseMultiplier float64          `json:"expense_multiplier"`
	Forecasts         []ForecastPeriod `json:"forecasts"`
	TotalIncome       float64          `json:"total_income"`
	TotalExpenses     float64          `json:"total_expenses"`
	NetCashFlow       float64          `json:"net_cash_flow"`
	EndingBalance     float64          `json:"ending_balance"`
	LowestBalance     float64          `json:"lowest_balance"`
}

// ScenarioSet groups the three comparison scenarios
type ScenarioSet struct {
	Optimistic  Scenario `json:"optimistic"`
	Realistic   Scenario `json:"realistic"`
	Pessimistic Scenario `json:"pessimistic"`
}

// AgingBucket is one age band of outstanding invoices. MaxDays is nil for the
// open-ended last band.
type AgingBucket struct {
	Label   string  `json:"label"`
	MinDays int     `json:"min_days"`
	MaxDays *int    `json:"max_days"`
	Count   int     `json:"count"`
	Amount  float64 `json:"amount"`
}

// AgingSide holds the buckets for receivables or payables
type AgingSide struct {
	Total   float64       `json:"total"`
	Count   int           `json:"count"`
	Buckets []AgingBucket `json:"buckets"`
}

// AgingAnalysis is the current aging of receivables and payables
type AgingAnalysis struct {
	AsOf        time.Time `json:"as_of"`
	Receivables AgingSide `json:"receivables"`
	Payables    AgingSide `json:"payables"`
	NetPosition float64   `json:"net_position"`
}
