package forecast

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Window is the half-open date range [Start, End)
type Window struct {
	Start time.Time
	End   time.Time
}

// HorizonWindow covers months whole calendar months starting with the month of from
func HorizonWindow(from time.Time, months int) Window {
	start := MonthStart(from)
	return Window{Start: start, End: start.AddDate(0, months, 0)}
}

// Contains reports whether t falls inside the window
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// MonthStart returns midnight on the first day of t's month, in t's location
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func monthKey(t time.Time) int {
	return t.Year()*12 + int(t.Month()) - 1
}

// Round2 rounds a monetary amount to two decimals, half away from zero
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
