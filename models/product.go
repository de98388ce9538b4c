package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type StepKind string

const (
	StepSingle   StepKind = "single"
	StepMultiple StepKind = "multiple"
)

type StepOption struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	PriceDelta decimal.Decimal `json:"price_delta"`
}

// CustomizationStep is a decision point on a product. A single step takes exactly one
// option, a multiple step takes a set.
type CustomizationStep struct {
	ID       string       `json:"id"`
	Title    string       `json:"title"`
	Kind     StepKind     `json:"kind"`
	Required bool         `json:"required"`
	Options  []StepOption `json:"options"`
}

func (s CustomizationStep) Option(id string) (StepOption, bool) {
	for _, o := range s.Options {
		if o.ID == id {
			return o, true
		}
	}
	return StepOption{}, false
}

// ProductClass replaces the loose type/production toggles of the catalog.
type ProductClass string

const (
	ClassResale      ProductClass = "resale"
	ClassProduced    ProductClass = "produced"
	ClassRawMaterial ProductClass = "raw_material"
)

type Product struct {
	ID          string              `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Code        string              `gorm:"type:varchar(64)" json:"code"`
	Name        string              `gorm:"type:varchar(255);not null" json:"name"`
	Unit        string              `gorm:"type:varchar(10);not null;default:'un'" json:"unit"`
	Category    string              `gorm:"type:varchar(50)" json:"category"`
	Class       ProductClass        `gorm:"type:varchar(20);not null" json:"class"`
	Sellable    bool                `gorm:"not null" json:"sellable"`
	TracksStock bool                `gorm:"not null" json:"tracks_stock"`
	Price       decimal.Decimal     `gorm:"type:decimal(12,2);not null" json:"price"`
	Steps       []CustomizationStep `gorm:"serializer:json;type:text" json:"steps"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// NewProduct maps the class onto the dependent flags:
// resale is sold and stocked, produced is sold on demand, raw material is stocked only.
func NewProduct(id, name string, class ProductClass, price decimal.Decimal, steps ...CustomizationStep) Product {
	p := Product{
		ID:    id,
		Name:  name,
		Unit:  "un",
		Class: class,
		Price: price,
		Steps: steps,
	}
	switch class {
	case ClassResale:
		p.Sellable, p.TracksStock = true, true
	case ClassProduced:
		p.Sellable, p.TracksStock = true, false
	case ClassRawMaterial:
		p.Sellable, p.TracksStock = false, true
	}
	return p
}
