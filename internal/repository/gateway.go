package repository

import (
	"context"
	"time"

	"github.com/Dan9191/cashflow-service/internal/models"
)

//go:generate mockgen -source=gateway.go -destination=gateway_mock.go -package=repository

// Gateway is the read-only view of invoice and recurring billing records the
// forecasting engine depends on
type Gateway interface {
	// FetchTransactions returns invoices of the given kind dated in [from, to]
	FetchTransactions(ctx context.Context, orgID string, kind models.TransactionKind, from, to time.Time) ([]models.Transaction, error)
	// FetchOpenTransactions returns unpaid or partially paid invoices that have a due date
	FetchOpenTransactions(ctx context.Context, orgID string, kind models.TransactionKind) ([]models.OpenTransaction, error)
	// FetchActiveRecurringBillings returns active recurring billings whose next
	// occurrence is before the given instant
	FetchActiveRecurringBillings(ctx context.Context, orgID string, before time.Time) ([]models.RecurringBilling, error)
}

// AlertStore lists the risk alert subscriptions
type AlertStore interface {
	ListAlertSubscriptions(ctx context.Context) ([]models.AlertSubscription, error)
}

// Store is everything the service binaries need from persistence
type Store interface {
	Gateway
	AlertStore
}
