package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"sync"
	"time"

	"github.com/Dan9191/cashflow-service/internal/models"
)

// Invoice is a stored invoice in the in-memory store
type Invoice struct {
	ID             string                 `json:"id"`
	OrganizationID string                 `json:"organization_id"`
	Number         string                 `json:"number"`
	Partner        string                 `json:"partner"`
	Kind           models.TransactionKind `json:"kind"`
	InvoiceDate    time.Time              `json:"invoice_date"`
	DueDate        *time.Time             `json:"due_date,omitempty"`
	GrossAmount    float64                `json:"gross_amount"`
	PaidAmount     *float64               `json:"paid_amount,omitempty"`
	PaymentStatus  string                 `json:"payment_status"`
}

// RecurringInvoice is a stored recurring billing definition. Items is kept raw
// so every stored shape can be seeded.
type RecurringInvoice struct {
	ID             string          `json:"id"`
	OrganizationID string          `json:"organization_id"`
	Name           string          `json:"name"`
	Active         bool            `json:"active"`
	NextRunDate    *time.Time      `json:"next_run_date,omitempty"`
	Items          json.RawMessage `json:"items"`
	VATRate        float64         `json:"vat_rate"`
}

// Seed is the JSON document accepted by LoadSeed
type Seed struct {
	Invoices      []Invoice                  `json:"invoices"`
	Recurring     []RecurringInvoice         `json:"recurring_invoices"`
	Subscriptions []models.AlertSubscription `json:"alert_subscriptions"`
}

// MemoryStore is an in-memory Store for local development and tests
type MemoryStore struct {
	mu            sync.RWMutex
	invoices      []Invoice
	recurring     []RecurringInvoice
	subscriptions []models.AlertSubscription
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// LoadSeed appends the records of a JSON seed document
func (m *MemoryStore) LoadSeed(r io.Reader) error {
	var seed Seed
	if err := json.NewDecoder(r).Decode(&seed); err != nil {
		return fmt.Errorf("failed to decode seed: %w", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invoices = append(m.invoices, seed.Invoices...)
	m.recurring = append(m.recurring, seed.Recurring...)
	m.subscriptions = append(m.subscriptions, seed.Subscriptions...)
	return nil
}

// AddInvoice stores an invoice
func (m *MemoryStore) AddInvoice(inv Invoice) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invoices = append(m.invoices, inv)
}

// AddRecurringInvoice stores a recurring billing definition
func (m *MemoryStore) AddRecurringInvoice(rec RecurringInvoice) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recurring = append(m.recurring, rec)
}

// AddAlertSubscription stores a risk alert subscription
func (m *MemoryStore) AddAlertSubscription(sub models.AlertSubscription) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscriptions = append(m.subscriptions, sub)
}

func (m *MemoryStore) FetchTransactions(ctx context.Context, orgID string, kind models.TransactionKind, from, to time.Time) ([]models.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	var txs []models.Transaction
	for _, inv := range m.invoices {
		if inv.OrganizationID != orgID || inv.Kind != kind {
			continue
		}
		if inv.InvoiceDate.Before(from) || inv.InvoiceDate.After(to) {
			continue
		}
		txs = append(txs, models.Transaction{
			Date:          inv.InvoiceDate,
			GrossAmount:   inv.GrossAmount,
			PaidAmount:    inv.PaidAmount,
			PaymentStatus: inv.PaymentStatus,
		})
	}
	return txs, nil
}

func (m *MemoryStore) FetchOpenTransactions(ctx context.Context, orgID string, kind models.TransactionKind) ([]models.OpenTransaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	var txs []models.OpenTransaction
	for _, inv := range m.invoices {
		if inv.OrganizationID != orgID || inv.Kind != kind || inv.DueDate == nil || !slices.Contains(openStatuses, inv.PaymentStatus) {
			continue
		}
		txs = append(txs, models.OpenTransaction{
			ID:          inv.ID,
			Number:      inv.Number,
			Partner:     inv.Partner,
			DueDate:     inv.DueDate,
			GrossAmount: inv.GrossAmount,
			PaidAmount:  inv.PaidAmount,
		})
	}
	return txs, nil
}

func (m *MemoryStore) FetchActiveRecurringBillings(ctx context.Context, orgID string, before time.Time) ([]models.RecurringBilling, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	var billings []models.RecurringBilling
	for _, rec := range m.recurring {
		if rec.OrganizationID != orgID || !rec.Active || rec.NextRunDate == nil || !rec.NextRunDate.Before(before) {
			continue
		}
		billings = append(billings, models.RecurringBilling{
			ID:             rec.ID,
			Name:           rec.Name,
			NextOccurrence: rec.NextRunDate,
			Items:          []byte(rec.Items),
			TaxRatePercent: rec.VATRate,
		})
	}
	return billings, nil
}

func (m *MemoryStore) ListAlertSubscriptions(ctx context.Context) ([]models.AlertSubscription, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.AlertSubscription(nil), m.subscriptions...), nil
}
