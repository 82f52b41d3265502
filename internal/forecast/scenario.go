package forecast

import "github.com/Dan9191/cashflow-service/internal/models"

// Scenario multipliers applied to every period of the base forecast
const (
	optimisticIncome   = 1.2
	optimisticExpense  = 0.9
	pessimisticIncome  = 0.7
	pessimisticExpense = 1.1
)

// ProjectScenarios rescales the base forecast into optimistic and pessimistic
// variants. Each variant reruns the balance from the base starting balance;
// base is left untouched.
func ProjectScenarios(base *models.ForecastSummary) models.ScenarioSet {
	return models.ScenarioSet{
		Optimistic:  Rescale(base, "optimistic", optimisticIncome, optimisticExpense),
		Realistic:   Rescale(base, "realistic", 1, 1),
		Pessimistic: Rescale(base, "pessimistic", pessimisticIncome, pessimisticExpense),
	}
}

// Rescale multiplies each period's income and expenses and recomputes the
// derived figures into a fresh slice. The unrounded amounts of the base are
// used when it carries them, so a unit rescale reproduces the base exactly.
func Rescale(base *models.ForecastSummary, name string, incomeMul, expenseMul float64) models.Scenario {
	scenario := models.Scenario{
		Name:              name,
		IncomeMultiplier:  incomeMul,
		ExpenseMultiplier: expenseMul,
		Forecasts:         make([]models.ForecastPeriod, len(base.Forecasts)),
	}

	balance := base.CurrentBalance
	lowest := base.CurrentBalance
	var totalIncome, totalExpenses float64
	exact := len(base.Unrounded) == len(base.Forecasts)
	for i, period := range base.Forecasts {
		income, expenses := period.ExpectedIncome, period.ExpectedExpenses
		if exact {
			income, expenses = base.Unrounded[i].Income, base.Unrounded[i].Expenses
		}
		income *= incomeMul
		expenses *= expenseMul
		net := income - expenses
		balance += net
		lowest = min(lowest, balance)
		totalIncome += income
		totalExpenses += expenses

		period.ExpectedIncome = Round2(income)
		period.ExpectedExpenses = Round2(expenses)
		period.NetCashFlow = Round2(net)
		period.CumulativeBalance = Round2(balance)
		scenario.Forecasts[i] = period
	}

	scenario.TotalIncome = Round2(totalIncome)
	scenario.TotalExpenses = Round2(totalExpenses)
	scenario.NetCashFlow = Round2(totalIncome - totalExpenses)
	scenario.EndingBalance = Round2(balance)
	scenario.LowestBalance = Round2(lowest)
	return scenario
}
