package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentKind string

const (
	KindCash            PaymentKind = "cash"
	KindCredit          PaymentKind = "credit"
	KindDebit           PaymentKind = "debit"
	KindInstantTransfer PaymentKind = "instant_transfer"
	KindVoucher         PaymentKind = "voucher"
)

// PaymentMethod carries the processor fee (percent) and the days until funds land.
type PaymentMethod struct {
	ID             string          `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Position       int             `gorm:"not null;default:0" json:"-"`
	Name           string          `gorm:"type:varchar(100);not null" json:"name"`
	Kind           PaymentKind     `gorm:"type:varchar(20);not null" json:"kind"`
	FeeRate        decimal.Decimal `gorm:"type:decimal(6,3);not null" json:"fee_rate"`
	SettlementDays int             `gorm:"not null;default:0" json:"settlement_days"`
	Active         bool            `gorm:"not null;default:true" json:"active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func DefaultPaymentMethods() []PaymentMethod {
	return []PaymentMethod{
		{ID: "1", Position: 0, Name: "Dinheiro", Kind: KindCash, FeeRate: decimal.Zero, SettlementDays: 0, Active: true},
		{ID: "2", Position: 1, Name: "Pix", Kind: KindInstantTransfer, FeeRate: decimal.Zero, SettlementDays: 0, Active: true},
		{ID: "3", Position: 2, Name: "Crédito Master", Kind: KindCredit, FeeRate: decimal.RequireFromString("3.5"), SettlementDays: 30, Active: true},
	}
}
