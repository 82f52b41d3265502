package forecast

import "github.com/Dan9191/cashflow-service/internal/models"

// ClassifyRisk reduces the lowest projected balance to a risk level. The
// cushion is the lowest balance measured in months of average expenses.
func ClassifyRisk(lowestBalance, averageMonthlyExpenses float64) models.RiskLevel {
	if lowestBalance < 0 {
		return models.RiskCritical
	}

	cushion := lowestBalance / max(1, averageMonthlyExpenses)
	switch {
	case cushion < 0.5:
		return models.RiskHigh
	case cushion < 1.5:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}
