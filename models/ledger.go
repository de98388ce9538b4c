package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TransactionRevenue = "revenue"
	TransactionExpense = "expense"

	TransactionPending = "pending"
	TransactionPaid    = "paid"

	OriginSale = "sale"
	OriginFee  = "fee"
)

// FinancialTransaction is a row of the financial ledger. A sale produces the net
// revenue row and, when the method charges a fee, an already paid fee expense.
type FinancialTransaction struct {
	ID                string          `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Type              string          `gorm:"type:varchar(10);not null" json:"type"`
	Amount            decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Gross             decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"gross"`
	Description       string          `gorm:"type:varchar(255)" json:"description"`
	Date              time.Time       `gorm:"not null;index" json:"date"`
	DueDate           time.Time       `gorm:"not null" json:"due_date"`
	Status            string          `gorm:"type:varchar(10);not null" json:"status"`
	Origin            string          `gorm:"type:varchar(10);not null" json:"origin"`
	RelatedID         string          `gorm:"type:varchar(64)" json:"related_id,omitempty"`
	PaymentMethodName string          `gorm:"type:varchar(100)" json:"payment_method_name,omitempty"`
	TabID             string          `gorm:"type:varchar(64)" json:"tab_id,omitempty"`
	// append position, kept so the ledger reloads in order
	Seq int `gorm:"not null;default:0;index" json:"-"`
}

const (
	StockOut = "out"
	StockIn  = "in"
)

// StockMovement is a depletion (out) emitted per settled line, or a replenishment (in)
// appended by purchasing.
type StockMovement struct {
	ID        string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	ProductID string    `gorm:"type:varchar(64);not null;index" json:"product_id"`
	Direction string    `gorm:"type:varchar(3);not null" json:"direction"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Date      time.Time `gorm:"not null" json:"date"`
	OriginID  string    `gorm:"type:varchar(64)" json:"origin_id,omitempty"`
	Seq       int       `gorm:"not null;default:0;index" json:"-"`
}
