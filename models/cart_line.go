package models

import "github.com/shopspring/decimal"

// Selection is one chosen option of a customization step, frozen at the time it was picked.
type Selection struct {
	StepTitle  string          `json:"step_title"`
	OptionName string          `json:"option_name"`
	PriceDelta decimal.Decimal `json:"price_delta"`
}

type CartLine struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Selections  []Selection     `json:"selections"`
	FinalPrice  decimal.Decimal `json:"final_price"`
	Note        string          `json:"note,omitempty"`
}

func (l CartLine) Subtotal() decimal.Decimal {
	return l.FinalPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

func SumLines(lines []CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

func CloneLines(lines []CartLine) []CartLine {
	out := make([]CartLine, len(lines))
	for i, l := range lines {
		out[i] = l
		out[i].Selections = append([]Selection(nil), l.Selections...)
	}
	return out
}
