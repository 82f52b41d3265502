package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Dan9191/cashflow-service/internal/models"
	"github.com/lib/pq"
)

// invoice types as stored in erp.invoices
const (
	invoiceIssued   = "ISSUED"
	invoiceReceived = "RECEIVED"
)

var openStatuses = []string{"UNPAID", "PARTIAL", "OVERDUE"}

// Repository provides PostgreSQL backed read access to invoices
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func invoiceType(kind models.TransactionKind) (string, error) {
	switch kind {
	case models.KindIncome:
		return invoiceIssued, nil
	case models.KindExpense:
		return invoiceReceived, nil
	}
	return "", fmt.Errorf("unknown transaction kind %q", kind)
}

// FetchTransactions retrieves historical invoices of one kind in a date range
func (r *Repository) FetchTransactions(ctx context.Context, orgID string, kind models.TransactionKind, from, to time.Time) ([]models.Transaction, error) {
	typ, err := invoiceType(kind)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT invoice_date, gross_amount, paid_amount, payment_status
		FROM erp.invoices
		WHERE organization_id = $1 AND type = $2
		  AND invoice_date >= $3 AND invoice_date <= $4`
	rows, err := r.db.QueryContext(ctx, query, orgID, typ, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s invoices: %w", kind, err)
	}
	defer rows.Close()

	var txs []models.Transaction
	for rows.Next() {
		var tx models.Transaction
		var paid sql.NullFloat64
		if err := rows.Scan(&tx.Date, &tx.GrossAmount, &paid, &tx.PaymentStatus); err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		tx.PaidAmount = nullFloat(paid)
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read invoices: %w", err)
	}
	return txs, nil
}

// FetchOpenTransactions retrieves unpaid and partially paid invoices with a due date
func (r *Repository) FetchOpenTransactions(ctx context.Context, orgID string, kind models.TransactionKind) ([]models.OpenTransaction, error) {
	typ, err := invoiceType(kind)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, invoice_number, COALESCE(partner_name, ''), due_date, gross_amount, paid_amount
		FROM erp.invoices
		WHERE organization_id = $1 AND type = $2
		  AND payment_status = ANY($3)
		  AND due_date IS NOT NULL`
	rows, err := r.db.QueryContext(ctx, query, orgID, typ, pq.Array(openStatuses))
	if err != nil {
		return nil, fmt.Errorf("failed to query open %s invoices: %w", kind, err)
	}
	defer rows.Close()

	var txs []models.OpenTransaction
	for rows.Next() {
		var tx models.OpenTransaction
		var due sql.NullTime
		var paid sql.NullFloat64
		if err := rows.Scan(&tx.ID, &tx.Number, &tx.Partner, &due, &tx.GrossAmount, &paid); err != nil {
			return nil, fmt.Errorf("failed to scan open invoice: %w", err)
		}
		if due.Valid {
			tx.DueDate = &due.Time
		}
		tx.PaidAmount = nullFloat(paid)
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read open invoices: %w", err)
	}
	return txs, nil
}

// FetchActiveRecurringBillings retrieves active recurring invoices due to run before the given time
func (r *Repository) FetchActiveRecurringBillings(ctx context.Context, orgID string, before time.Time) ([]models.RecurringBilling, error) {
	query := `
		SELECT id, name, next_run_date, COALESCE(items::text, ''), COALESCE(vat_rate, 0)
		FROM erp.recurring_invoices
		WHERE organization_id = $1 AND is_active = true
		  AND next_run_date < $2`
	rows, err := r.db.QueryContext(ctx, query, orgID, before)
	if err != nil {
		return nil, fmt.Errorf("failed to query recurring invoices: %w", err)
	}
	defer rows.Close()

	var billings []models.RecurringBilling
	for rows.Next() {
		var b models.RecurringBilling
		var next sql.NullTime
		var items string
		if err := rows.Scan(&b.ID, &b.Name, &next, &items, &b.TaxRatePercent); err != nil {
			return nil, fmt.Errorf("failed to scan recurring invoice: %w", err)
		}
		if next.Valid {
			b.NextOccurrence = &next.Time
		}
		b.Items = []byte(items)
		billings = append(billings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read recurring invoices: %w", err)
	}
	return billings, nil
}

// ListAlertSubscriptions retrieves the enabled cash-flow risk alert subscriptions
func (r *Repository) ListAlertSubscriptions(ctx context.Context) ([]models.AlertSubscription, error) {
	query := `
		SELECT s.organization_id, o.name, s.email, s.starting_balance, s.min_level, COALESCE(s.locale, '')
		FROM erp.cashflow_alert_subscriptions s
		JOIN erp.organizations o ON o.id = s.organization_id
		WHERE s.enabled = true`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query alert subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []models.AlertSubscription
	for rows.Next() {
		var s models.AlertSubscription
		if err := rows.Scan(&s.OrganizationID, &s.OrganizationName, &s.Email, &s.StartingBalance, &s.MinLevel, &s.Locale); err != nil {
			return nil, fmt.Errorf("failed to scan alert subscription: %w", err)
		}
		subs = append(subs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read alert subscriptions: %w", err)
	}
	return subs, nil
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
