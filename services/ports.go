package services

import (
	"context"

	"github.com/yeremiapane/tab-pos/models"
)

// Catalog is the read-only product lookup.
type Catalog interface {
	Product(id string) (models.Product, bool)
}

// PaymentMethodRegistry is the ordered list of methods the cashier can pick from.
type PaymentMethodRegistry interface {
	Method(id string) (models.PaymentMethod, bool)
	List() []models.PaymentMethod
}

// LedgerSink receives derived events after a settlement has been applied.
// Appends are fire-and-forget; a failing sink never undoes a settlement.
type LedgerSink interface {
	AppendFinancial(tx models.FinancialTransaction)
	AppendStock(m models.StockMovement)
}

// Notifier is told about state that changed, for board displays and caches.
type Notifier interface {
	TabsChanged(tabs []models.Tab)
	Settled(s Settlement)
}

// Store rewrites whole collections. Implementations must apply a snapshot atomically.
type Store interface {
	Save(ctx context.Context, snap Snapshot) error
}

// Snapshot is a deep copy of the mutable collections, flagged by what changed.
type Snapshot struct {
	Seq       uint64
	Settings  models.RegistrySettings
	Tabs      []models.Tab
	Financial []models.FinancialTransaction
	Stock     []models.StockMovement

	TabsDirty   bool
	LedgerDirty bool
}

// State is what a Store hands back at start-up.
type State struct {
	Settings  *models.RegistrySettings
	Tabs      []models.Tab
	Financial []models.FinancialTransaction
	Stock     []models.StockMovement
}
