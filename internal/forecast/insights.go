package forecast

import (
	"time"

	"github.com/Dan9191/cashflow-service/internal/models"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Insight message keys double as the English text
const (
	msgRiskCritical = "Critical risk: the forecast shows a negative balance. Secure financing or speed up collections now."
	msgRiskHigh     = "High risk: the projected balance covers less than half a month of expenses."
	msgRiskMedium   = "Medium risk: the projected balance covers up to a month and a half of expenses."
	msgRiskLow      = "Low risk: the financial position stays stable over the forecast period."
	msgGrowth       = "Income has grown by %.1f%% in the last 6 months compared with the previous 6."
	msgDecline      = "Income has dropped by %.1f%% in the last 6 months compared with the previous 6."
	msgVolatile     = "Income is volatile (coefficient of variation %.0f%%). Keep a larger cash reserve."
	msgRecurring    = "%d recurring income sources provide predictable cash inflows."
	msgLowestMonth  = "The balance falls to %.2f %s in %s, below one month of average expenses."
	msgThinMargin   = "Expenses take more than 90%% of income. Margins are thin."
	msgHealthy      = "Expenses stay below 60%% of income, a healthy margin."
)

var romanianInsights = map[string]string{
	msgRiskCritical: "Risc critic: prognoza indică un sold negativ. Asigurați finanțare sau accelerați încasările imediat.",
	msgRiskHigh:     "Risc ridicat: soldul prognozat acoperă mai puțin de jumătate de lună de cheltuieli.",
	msgRiskMedium:   "Risc moderat: soldul prognozat acoperă cel mult o lună și jumătate de cheltuieli.",
	msgRiskLow:      "Risc scăzut: situația financiară rămâne stabilă pe perioada prognozată.",
	msgGrowth:       "Veniturile au crescut cu %.1f%% în ultimele 6 luni față de cele 6 anterioare.",
	msgDecline:      "Veniturile au scăzut cu %.1f%% în ultimele 6 luni față de cele 6 anterioare.",
	msgVolatile:     "Veniturile sunt volatile (coeficient de variație %.0f%%). Păstrați o rezervă de numerar mai mare.",
	msgRecurring:    "Aveți %d surse de venituri recurente care asigură încasări previzibile.",
	msgLowestMonth:  "Soldul scade la %.2f %s în %s, sub nivelul cheltuielilor medii lunare.",
	msgThinMargin:   "Cheltuielile depășesc 90%% din venituri. Marjele sunt reduse.",
	msgHealthy:      "Cheltuielile sunt sub 60%% din venituri, o marjă sănătoasă.",
}

func init() {
	for key, text := range romanianInsights {
		if err := message.SetString(language.Romanian, key, text); err != nil {
			panic(err)
		}
	}
}

// InsightInput is the statistics the insight rules look at
type InsightInput struct {
	Pattern           models.HistoricalPattern
	LowestBalance     float64
	LowestBalanceDate time.Time
	RiskLevel         models.RiskLevel
	RecurringCount    int
	Currency          string
}

// GenerateInsights evaluates each rule independently; the risk-level insight
// always comes first
func GenerateInsights(in InsightInput, tag language.Tag) []string {
	p := message.NewPrinter(tag)

	insights := []string{riskInsight(p, in.RiskLevel)}

	switch growth := in.Pattern.GrowthRate; {
	case growth > 0.1:
		insights = append(insights, p.Sprintf(msgGrowth, growth*100))
	case growth < -0.1:
		insights = append(insights, p.Sprintf(msgDecline, -growth*100))
	}

	if in.Pattern.Volatility > 0.3 {
		insights = append(insights, p.Sprintf(msgVolatile, in.Pattern.Volatility*100))
	}

	if in.RecurringCount > 0 {
		insights = append(insights, p.Sprintf(msgRecurring, in.RecurringCount))
	}

	if in.LowestBalance < in.Pattern.AverageMonthlyExpenses {
		insights = append(insights, p.Sprintf(msgLowestMonth,
			Round2(in.LowestBalance), in.Currency, MonthLabel(in.LowestBalanceDate, tag)))
	}

	ratio := in.Pattern.AverageMonthlyExpenses / max(1, in.Pattern.AverageMonthlyIncome)
	switch {
	case ratio > 0.9:
		insights = append(insights, p.Sprintf(msgThinMargin))
	case ratio < 0.6:
		insights = append(insights, p.Sprintf(msgHealthy))
	}
	return insights
}

func riskInsight(p *message.Printer, level models.RiskLevel) string {
	switch level {
	case models.RiskCritical:
		return p.Sprintf(msgRiskCritical)
	case models.RiskHigh:
		return p.Sprintf(msgRiskHigh)
	case models.RiskLow:
		return p.Sprintf(msgRiskLow)
	default:
		return p.Sprintf(msgRiskMedium)
	}
}
