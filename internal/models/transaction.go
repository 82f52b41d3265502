package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind distinguishes the income side (issued invoices) from the
// expense side (received invoices)
type TransactionKind string

const (
	KindIncome  TransactionKind = "income"
	KindExpense TransactionKind = "expense"
)

// Transaction is a historical invoice used to derive the statistical baseline
type Transaction struct {
	Date          time.Time `json:"date"`
	GrossAmount   float64   `json:"gross_amount"`
	PaidAmount    *float64  `json:"paid_amount,omitempty"`
	PaymentStatus string    `json:"payment_status"`
}

// OpenTransaction is an unpaid or partially paid invoice
type OpenTransaction struct {
	ID          string     `json:"id"`
	Number      string     `json:"number,omitempty"`
	Partner     string     `json:"partner,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	GrossAmount float64    `json:"gross_amount"`
	PaidAmount  *float64   `json:"paid_amount,omitempty"`
}

// Outstanding returns the unpaid part of the invoice, never negative.
// A missing paid amount counts as nothing paid.
func (t OpenTransaction) Outstanding() float64 {
	paid := 0.0
	if t.PaidAmount != nil {
		paid = *t.PaidAmount
	}
	if out := t.GrossAmount - paid; out > 0 {
		return out
	}
	return 0
}

// RecurringBilling is an active recurring invoice definition. Items holds the
// raw stored line items: a JSON array, a JSON string wrapping an array, or a
// UBL InvoiceLine fragment.
type RecurringBilling struct {
	ID             string     `json:"id"`
	Name           string     `json:"name,omitempty"`
	NextOccurrence *time.Time `json:"next_occurrence,omitempty"`
	Items          []byte     `json:"-"`
	TaxRatePercent float64    `json:"tax_rate_percent"`
}

// LineItem is one normalized recurring billing line
type LineItem struct {
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Total is quantity times unit price
func (li LineItem) Total() decimal.Decimal {
	return li.Quantity.Mul(li.UnitPrice)
}

// ScheduledAmount is a known future cash movement placed on the calendar
type ScheduledAmount struct {
	DueDate time.Time `json:"due_date"`
	Amount  float64   `json:"amount"`
}

// AlertSubscription asks for an e-mail when an organization's forecast risk
// reaches MinLevel
type AlertSubscription struct {
	OrganizationID   string    `json:"organization_id"`
	OrganizationName string    `json:"organization_name"`
	Email            string    `json:"email"`
	StartingBalance  float64   `json:"starting_balance"`
	MinLevel         RiskLevel `json:"min_level"`
	Locale           string    `json:"locale,omitempty"`
}
