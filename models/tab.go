package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type TabStatus string

const (
	TabFree     TabStatus = "free"
	TabOccupied TabStatus = "occupied"
	TabReserved TabStatus = "reserved"
)

// occupied -> occupied is a partial settlement or an item change.
var validNext = map[TabStatus]map[TabStatus]bool{
	TabFree:     {TabOccupied: true, TabReserved: true},
	TabOccupied: {TabOccupied: true, TabFree: true},
	TabReserved: {TabOccupied: true},
}

func CanTransition(from, to TabStatus) bool {
	return validNext[from][to]
}

// RegistryMode decides how tabs are labelled and whether a per-person split applies.
type RegistryMode string

const (
	ModeTable  RegistryMode = "table"
	ModeTicket RegistryMode = "ticket"
)

func (m RegistryMode) Valid() bool {
	return m == ModeTable || m == ModeTicket
}

// Label returns "Mesa 01" for tables and "Comanda 01" for tickets.
func (m RegistryMode) Label(number int) string {
	prefix := "Mesa"
	if m == ModeTicket {
		prefix = "Comanda"
	}
	return fmt.Sprintf("%s %02d", prefix, number)
}

type Tab struct {
	ID          string          `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Number      int             `gorm:"not null;uniqueIndex" json:"number"`
	Label       string          `gorm:"type:varchar(50);not null" json:"label"`
	Status      TabStatus       `gorm:"type:varchar(20);not null;default:'free'" json:"status"`
	Items       []CartLine      `gorm:"serializer:json;type:text" json:"items"`
	Total       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	PeopleCount int             `gorm:"not null;default:0" json:"people_count"`
	Location    string          `gorm:"type:varchar(100)" json:"location,omitempty"`
	OpenedAt    *time.Time      `json:"opened_at,omitempty"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func TabID(number int) string {
	return fmt.Sprintf("tab-%d", number)
}

// NewFreeTab builds the initial state of an ordinal.
func NewFreeTab(mode RegistryMode, number int) Tab {
	return Tab{
		ID:     TabID(number),
		Number: number,
		Label:  mode.Label(number),
		Status: TabFree,
		Items:  []CartLine{},
		Total:  decimal.Zero,
	}
}

// Recompute keeps Total equal to the sum of the line subtotals.
func (t *Tab) Recompute() {
	t.Total = SumLines(t.Items)
}

// Release returns the tab to free, dropping everything tied to the occupation.
func (t *Tab) Release() {
	t.Status = TabFree
	t.Items = []CartLine{}
	t.Total = decimal.Zero
	t.PeopleCount = 0
	t.Location = ""
	t.OpenedAt = nil
}

// Clone deep-copies the tab so snapshots never share line slices with the registry.
func (t Tab) Clone() Tab {
	out := t
	out.Items = CloneLines(t.Items)
	if t.OpenedAt != nil {
		opened := *t.OpenedAt
		out.OpenedAt = &opened
	}
	return out
}

func (t Tab) Elapsed(now time.Time) time.Duration {
	if t.Status != TabOccupied || t.OpenedAt == nil {
		return 0
	}
	return now.Sub(*t.OpenedAt)
}

// RegistrySettings is the single persisted row describing the registry shape.
type RegistrySettings struct {
	ID        uint         `gorm:"primaryKey" json:"-"`
	Mode      RegistryMode `gorm:"type:varchar(10);not null" json:"mode"`
	Count     int          `gorm:"not null" json:"count"`
	UpdatedAt time.Time    `json:"updated_at"`
}
