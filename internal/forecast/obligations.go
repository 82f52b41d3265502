package forecast

import (
	"github.com/Dan9191/cashflow-service/internal/models"
)

// Schedule holds the known future income and expenses inside a forecast window
type Schedule struct {
	Income   []models.ScheduledAmount
	Expenses []models.ScheduledAmount
	// RecurringCount is the number of recurring billings scheduled in the window
	RecurringCount int
}

// CollectScheduled places open invoices and the next occurrence of each
// recurring billing on the calendar. Obligations without a date, outside the
// window, or with nothing left to pay are dropped; undated ones stay covered by
// the historical baseline. Recurring billings are income.
func CollectScheduled(openIncome, openExpenses []models.OpenTransaction, recurring []models.RecurringBilling, w Window) Schedule {
	schedule := Schedule{
		Income:   scheduleOpen(openIncome, w),
		Expenses: scheduleOpen(openExpenses, w),
	}

	for _, b := range recurring {
		if b.NextOccurrence == nil || !w.Contains(*b.NextOccurrence) {
			continue
		}
		if amount := BillingAmount(b); amount > 0 {
			schedule.Income = append(schedule.Income, models.ScheduledAmount{
				DueDate: *b.NextOccurrence,
				Amount:  amount,
			})
			schedule.RecurringCount++
		}
	}
	return schedule
}

func scheduleOpen(txs []models.OpenTransaction, w Window) []models.ScheduledAmount {
	var out []models.ScheduledAmount
	for _, tx := range txs {
		if tx.DueDate == nil || !w.Contains(*tx.DueDate) {
			continue
		}
		if amount := tx.Outstanding(); amount > 0 {
			out = append(out, models.ScheduledAmount{DueDate: *tx.DueDate, Amount: amount})
		}
	}
	return out
}
