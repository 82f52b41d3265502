package forecast

import (
	"math"
	"time"

	"github.com/Dan9191/cashflow-service/internal/models"
)

// HistoryMonths is the length of the trailing window the baseline is calibrated on
const HistoryMonths = 12

// HistoryWindow is the trailing window ending at asOf
func HistoryWindow(asOf time.Time) Window {
	return Window{Start: asOf.AddDate(0, -HistoryMonths, 0), End: asOf}
}

// AnalyzeHistory derives the statistical baseline from the trailing history.
// Gross amounts are used whatever the payment status. Transactions dated after
// asOf minus six months form the recent window of the growth rate.
func AnalyzeHistory(income, expenses []models.Transaction, asOf time.Time) models.HistoricalPattern {
	monthlyIncome, incomeMonths := bucketByMonth(income)
	monthlyExpenses, expenseMonths := bucketByMonth(expenses)

	pattern := models.HistoricalPattern{
		AverageMonthlyIncome:   sum(monthlyIncome[:]) / float64(max(1, incomeMonths)),
		AverageMonthlyExpenses: sum(monthlyExpenses[:]) / float64(max(1, expenseMonths)),
	}
	pattern.SeasonalFactors = seasonalFactors(monthlyIncome, pattern.AverageMonthlyIncome)
	pattern.GrowthRate = growthRate(income, asOf.AddDate(0, -6, 0))
	pattern.Volatility = volatility(monthlyIncome[:])
	return pattern
}

// bucketByMonth sums amounts per calendar month across years and counts the
// months that saw at least one transaction
func bucketByMonth(txs []models.Transaction) ([12]float64, int) {
	var totals [12]float64
	var seen [12]bool
	for _, tx := range txs {
		m := tx.Date.Month() - 1
		totals[m] += tx.GrossAmount
		seen[m] = true
	}
	months := 0
	for _, ok := range seen {
		if ok {
			months++
		}
	}
	return totals, months
}

func seasonalFactors(monthly [12]float64, average float64) [12]float64 {
	var factors [12]float64
	if average == 0 {
		for m := range factors {
			factors[m] = 1
		}
		return factors
	}

	for m := range factors {
		factors[m] = monthly[m] / average
	}
	mean := sum(factors[:]) / 12
	for m := range factors {
		if mean == 0 {
			factors[m] = 1
			continue
		}
		factors[m] /= mean
	}
	return factors
}

func growthRate(income []models.Transaction, cutoff time.Time) float64 {
	var recent, prior float64
	for _, tx := range income {
		if tx.Date.After(cutoff) {
			recent += tx.GrossAmount
		} else {
			prior += tx.GrossAmount
		}
	}
	if prior == 0 {
		return 0
	}
	return (recent - prior) / prior
}

// volatility is the coefficient of variation (population) of the non-zero values
func volatility(values []float64) float64 {
	var nonZero []float64
	for _, v := range values {
		if v != 0 {
			nonZero = append(nonZero, v)
		}
	}
	if len(nonZero) == 0 {
		return 0
	}

	mean := sum(nonZero) / float64(len(nonZero))
	if mean == 0 {
		return 0
	}
	var variance float64
	for _, v := range nonZero {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(nonZero))
	return math.Abs(math.Sqrt(variance) / mean)
}

func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}
