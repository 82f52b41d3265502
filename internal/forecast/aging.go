package forecast

import (
	"time"

	"github.com/Dan9191/cashflow-service/internal/models"
)

type agingBand struct {
	label   string
	minDays int
	maxDays int // -1 means open ended
}

var agingBands = []agingBand{
	{label: "current", minDays: 0, maxDays: 0},
	{label: "1-30", minDays: 1, maxDays: 30},
	{label: "31-60", minDays: 31, maxDays: 60},
	{label: "61-90", minDays: 61, maxDays: 90},
	{label: "90+", minDays: 91, maxDays: -1},
}

// DaysOverdue counts whole calendar days between the due date and today,
// never below zero
func DaysOverdue(due, today time.Time) int {
	due = due.In(today.Location())
	dueDay := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, time.UTC)
	todayDay := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	days := int(todayDay.Sub(dueDay).Hours() / 24)
	return max(0, days)
}

// BucketAging classifies the outstanding part of open receivables and payables
// into age bands. Invoices with nothing outstanding are left out; an invoice
// without a due date counts as current.
func BucketAging(receivables, payables []models.OpenTransaction, today time.Time) models.AgingAnalysis {
	rec := bucketSide(receivables, today)
	pay := bucketSide(payables, today)
	return models.AgingAnalysis{
		AsOf:        time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location()),
		Receivables: rec,
		Payables:    pay,
		NetPosition: Round2(rec.Total - pay.Total),
	}
}

func bucketSide(txs []models.OpenTransaction, today time.Time) models.AgingSide {
	amounts := make([]float64, len(agingBands))
	counts := make([]int, len(agingBands))
	var total float64

	for _, tx := range txs {
		outstanding := tx.Outstanding()
		if outstanding <= 0 {
			continue
		}
		days := 0
		if tx.DueDate != nil {
			days = DaysOverdue(*tx.DueDate, today)
		}
		idx := bandIndex(days)
		amounts[idx] += outstanding
		counts[idx]++
		total += outstanding
	}

	side := models.AgingSide{
		Total:   Round2(total),
		Buckets: make([]models.AgingBucket, len(agingBands)),
	}
	for i, band := range agingBands {
		bucket := models.AgingBucket{
			Label:   band.label,
			MinDays: band.minDays,
			Count:   counts[i],
			Amount:  Round2(amounts[i]),
		}
		if band.maxDays >= 0 {
			maxDays := band.maxDays
			bucket.MaxDays = &maxDays
		}
		side.Count += counts[i]
		side.Buckets[i] = bucket
	}
	return side
}

func bandIndex(days int) int {
	for i, band := range agingBands {
		if band.maxDays < 0 || days <= band.maxDays {
			return i
		}
	}
	return len(agingBands) - 1
}
