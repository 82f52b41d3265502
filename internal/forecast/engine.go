package forecast

import (
	"math"
	"time"

	"github.com/Dan9191/cashflow-service/internal/models"
	"golang.org/x/text/language"
)

// DefaultHorizon is the number of months projected when the caller gives none
const DefaultHorizon = 3

const (
	minConfidence      = 0.30
	maxConfidence      = 0.95
	volatilityPenalty  = 0.3
	monthlyDecay       = 0.05
	scheduledCertainty = 0.1
)

// Input is everything one projection needs. Start may be any instant in the
// first forecast month; Horizon must be positive.
type Input struct {
	OrganizationID  string
	Pattern         models.HistoricalPattern
	Schedule        Schedule
	StartingBalance float64
	Horizon         int
	Start           time.Time
	Currency        string
	Locale          language.Tag
	GeneratedAt     time.Time
}

// Project merges the statistical baseline with the scheduled obligations month
// by month, carrying a running balance seeded by the starting balance. Each
// month's expected amount is the larger of the seasonal estimate and the
// scheduled total. The lowest balance considers the starting balance too.
func Project(in Input) *models.ForecastSummary {
	start := MonthStart(in.Start)
	loc := start.Location()
	scheduledIncome := sumByMonth(in.Schedule.Income, loc)
	scheduledExpenses := sumByMonth(in.Schedule.Expenses, loc)

	balance := in.StartingBalance
	lowest, lowestDate := in.StartingBalance, start
	var totalIncome, totalExpenses float64

	periods := make([]models.ForecastPeriod, 0, in.Horizon)
	exact := make([]models.PeriodAmounts, 0, in.Horizon)
	for i := 0; i < in.Horizon; i++ {
		date := start.AddDate(0, i, 0)
		factor := in.Pattern.SeasonalFactors[date.Month()-1]
		knownIncome := scheduledIncome[monthKey(date)]
		knownExpenses := scheduledExpenses[monthKey(date)]

		income := math.Max(in.Pattern.AverageMonthlyIncome*factor, knownIncome)
		expenses := math.Max(in.Pattern.AverageMonthlyExpenses*factor, knownExpenses)
		net := income - expenses
		balance += net
		totalIncome += income
		totalExpenses += expenses

		if balance < lowest {
			lowest, lowestDate = balance, date
		}

		exact = append(exact, models.PeriodAmounts{Income: income, Expenses: expenses})
		periods = append(periods, models.ForecastPeriod{
			Period:            MonthLabel(date, in.Locale),
			Date:              date,
			ExpectedIncome:    Round2(income),
			ExpectedExpenses:  Round2(expenses),
			NetCashFlow:       Round2(net),
			CumulativeBalance: Round2(balance),
			Confidence:        confidence(in.Pattern.Volatility, i, knownIncome+knownExpenses > 0),
		})
	}

	risk := ClassifyRisk(lowest, in.Pattern.AverageMonthlyExpenses)
	return &models.ForecastSummary{
		OrganizationID:        in.OrganizationID,
		GeneratedAt:           in.GeneratedAt,
		StartDate:             start,
		EndDate:               start.AddDate(0, in.Horizon, -1),
		Currency:              in.Currency,
		CurrentBalance:        in.StartingBalance,
		TotalExpectedIncome:   Round2(totalIncome),
		TotalExpectedExpenses: Round2(totalExpenses),
		NetForecast:           Round2(totalIncome - totalExpenses),
		LowestBalance:         Round2(lowest),
		LowestBalanceDate:     lowestDate,
		RiskLevel:             risk,
		Forecasts:             periods,
		Insights: GenerateInsights(InsightInput{
			Pattern:           in.Pattern,
			LowestBalance:     lowest,
			LowestBalanceDate: lowestDate,
			RiskLevel:         risk,
			RecurringCount:    in.Schedule.RecurringCount,
			Currency:          in.Currency,
		}, in.Locale),
		Pattern:   in.Pattern,
		Unrounded: exact,
	}
}

// confidence falls 5 points per month into the future and with volatility,
// gains 10 points when the month has scheduled obligations, and is clamped to
// [30, 95]
func confidence(volatility float64, monthOffset int, hasScheduled bool) int {
	c := 1.0 - volatility*volatilityPenalty - float64(monthOffset)*monthlyDecay
	if hasScheduled {
		c += scheduledCertainty
	}
	c = math.Min(maxConfidence, math.Max(minConfidence, c))
	return int(math.Round(c * 100))
}

func sumByMonth(amounts []models.ScheduledAmount, loc *time.Location) map[int]float64 {
	totals := make(map[int]float64)
	for _, a := range amounts {
		totals[monthKey(a.DueDate.In(loc))] += a.Amount
	}
	return totals
}
