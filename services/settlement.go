package services

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/tab-pos/models"
	"github.com/yeremiapane/tab-pos/utils"
)

const walkUpLabel = "Balcão"

var hundred = decimal.NewFromInt(100)

// CheckoutRequest names a payable set. With a tab and no line ids it is the whole tab plus
// the optional cart; with line ids it is that subset of the tab; without a tab it is the
// walk-up cart.
type CheckoutRequest struct {
	TabID    string           `json:"tab_id"`
	CartID   string           `json:"cart_id"`
	LineIDs  []string         `json:"line_ids"`
	MethodID string           `json:"method_id"`
	Tendered *decimal.Decimal `json:"tendered"`
}

// Quote is the checkout view. Computing it never changes anything.
type Quote struct {
	Lines     []models.CartLine     `json:"lines"`
	Total     decimal.Decimal       `json:"total"`
	PartySize int                   `json:"party_size"`
	PerPerson decimal.Decimal       `json:"per_person"`
	Change    decimal.Decimal       `json:"change"`
	Fee       decimal.Decimal       `json:"fee"`
	Net       decimal.Decimal       `json:"net"`
	Method    *models.PaymentMethod `json:"method,omitempty"`
	Partial   bool                  `json:"partial"`
}

// Settlement is everything a finalize produced.
type Settlement struct {
	Quote
	TabID      string                       `json:"tab_id,omitempty"`
	Revenue    models.FinancialTransaction  `json:"revenue"`
	FeeExpense *models.FinancialTransaction `json:"fee_expense,omitempty"`
	Movements  []models.StockMovement       `json:"movements"`
	Tab        *models.Tab                  `json:"tab,omitempty"`
}

// SplitFee returns the processor fee and the net amount for gross at rate percent.
// Both are rounded to cents, the net from the unrounded fee.
func SplitFee(gross, rate decimal.Decimal) (fee, net decimal.Decimal) {
	exact := gross.Mul(rate).Div(hundred)
	return exact.Round(2), gross.Sub(exact).Round(2)
}

type payable struct {
	tab   *models.Tab
	cart  *Cart
	lines []models.CartLine
	ids   map[string]bool
}

func (e *Engine) payableLocked(req CheckoutRequest) (payable, error) {
	var p payable
	if req.TabID == "" {
		if req.CartID == "" {
			return p, errEmptyCart
		}
		c, err := e.cartLocked(req.CartID)
		if err != nil {
			return p, err
		}
		p.cart = c
		p.lines = models.CloneLines(c.Lines)
		return p, nil
	}

	t, err := e.tabLocked(req.TabID)
	if err != nil {
		return p, err
	}
	if t.Status != models.TabOccupied {
		return p, preconditionf("%s is %s, only an occupied tab can be settled", t.Label, t.Status)
	}
	p.tab = t
	if len(req.LineIDs) > 0 {
		if req.CartID != "" {
			return p, validationf("a partial settlement cannot include uncommitted lines")
		}
		lines, ids, err := pickLines(t, req.LineIDs)
		if err != nil {
			return p, err
		}
		p.lines, p.ids = lines, ids
		return p, nil
	}

	p.lines = models.CloneLines(t.Items)
	if req.CartID != "" {
		c, err := e.cartLocked(req.CartID)
		if err != nil {
			return p, err
		}
		p.cart = c
		p.lines = append(p.lines, models.CloneLines(c.Lines)...)
	}
	p.ids = make(map[string]bool, len(t.Items))
	for _, l := range t.Items {
		p.ids[l.ID] = true
	}
	return p, nil
}

func (e *Engine) methodFor(id string) (*models.PaymentMethod, error) {
	m, ok := e.methods.Method(id)
	if !ok {
		return nil, validationf("unknown payment method %q", id)
	}
	if !m.Active {
		return nil, validationf("payment method %s is inactive", m.Name)
	}
	return &m, nil
}

func (e *Engine) quoteLocked(p payable, method *models.PaymentMethod, tendered *decimal.Decimal) Quote {
	total := models.SumLines(p.lines)
	q := Quote{
		Lines:     p.lines,
		Total:     total,
		PerPerson: total,
		Change:    decimal.Zero,
		Fee:       decimal.Zero,
		Net:       total,
		Method:    method,
	}
	if p.tab != nil {
		q.PartySize = p.tab.PeopleCount
		q.Partial = len(p.ids) < len(p.tab.Items)
		if e.mode == models.ModeTable && q.PartySize > 1 {
			q.PerPerson = total.Div(decimal.NewFromInt(int64(q.PartySize))).Round(2)
		}
	}
	if method != nil {
		if method.Kind == models.KindCash && tendered != nil {
			q.Change = decimal.Max(decimal.Zero, tendered.Sub(total))
		}
		q.Fee, q.Net = SplitFee(total, method.FeeRate)
	}
	return q
}

// Quote computes the checkout view for a payable set. The method is optional here.
func (e *Engine) Quote(req CheckoutRequest) (Quote, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	var method *models.PaymentMethod
	if req.MethodID != "" {
		m, err := e.methodFor(req.MethodID)
		if err != nil {
			return Quote{}, err
		}
		method = m
	}
	p, err := e.payableLocked(req)
	if err != nil {
		return Quote{}, err
	}
	return e.quoteLocked(p, method, req.Tendered), nil
}

// Finalize settles the payable set. Ledger entries and the tab post-state are all built
// before anything is written, so a failure leaves every tab untouched.
func (e *Engine) Finalize(req CheckoutRequest) (Settlement, error) {
	if req.MethodID == "" {
		return Settlement{}, errNoMethod
	}

	e.mu.Lock()
	method, err := e.methodFor(req.MethodID)
	if err != nil {
		e.mu.Unlock()
		return Settlement{}, err
	}
	p, err := e.payableLocked(req)
	if err != nil {
		e.mu.Unlock()
		return Settlement{}, err
	}
	if len(p.lines) == 0 {
		e.mu.Unlock()
		return Settlement{}, errEmptyCart
	}

	q := e.quoteLocked(p, method, req.Tendered)
	now := e.now()
	label := walkUpLabel
	s := Settlement{Quote: q}
	if p.tab != nil {
		label = p.tab.Label
		s.TabID = p.tab.ID
	}

	status := models.TransactionPaid
	if method.SettlementDays > 0 {
		status = models.TransactionPending
	}
	s.Revenue = models.FinancialTransaction{
		ID:                e.newID(),
		Type:              models.TransactionRevenue,
		Amount:            q.Net,
		Gross:             q.Total,
		Description:       fmt.Sprintf("Venda %s (%s)", label, method.Name),
		Date:              now,
		DueDate:           now.AddDate(0, 0, method.SettlementDays),
		Status:            status,
		Origin:            models.OriginSale,
		PaymentMethodName: method.Name,
		TabID:             s.TabID,
	}
	if method.FeeRate.IsPositive() {
		s.FeeExpense = &models.FinancialTransaction{
			ID:                e.newID(),
			Type:              models.TransactionExpense,
			Amount:            q.Fee,
			Gross:             q.Total,
			Description:       fmt.Sprintf("Taxa Adm %s (%s%%)", method.Name, method.FeeRate.String()),
			Date:              now,
			DueDate:           now,
			Status:            models.TransactionPaid,
			Origin:            models.OriginFee,
			RelatedID:         s.Revenue.ID,
			PaymentMethodName: method.Name,
			TabID:             s.TabID,
		}
	}
	s.Movements = make([]models.StockMovement, 0, len(p.lines))
	for _, l := range p.lines {
		s.Movements = append(s.Movements, models.StockMovement{
			ID:        e.newID(),
			ProductID: l.ProductID,
			Direction: models.StockOut,
			Quantity:  l.Quantity,
			Date:      now,
			OriginID:  s.Revenue.ID,
		})
	}

	if t := p.tab; t != nil {
		e.dropLines(t, p.ids)
		if len(t.Items) == 0 && models.CanTransition(t.Status, models.TabFree) {
			t.Release()
		}
		out := t.Clone()
		s.Tab = &out
	}
	if p.cart != nil {
		delete(e.carts, p.cart.ID)
	}
	e.financial = append(e.financial, s.Revenue)
	if s.FeeExpense != nil {
		e.financial = append(e.financial, *s.FeeExpense)
	}
	e.stock = append(e.stock, s.Movements...)

	fx := e.capture(p.tab != nil, true)
	fx.settlement = &s
	e.mu.Unlock()

	e.dispatch(fx)
	utils.InfoLogger.WithFields(logrus.Fields{
		"tab":    label,
		"method": method.Name,
		"gross":  q.Total.StringFixed(2),
		"net":    q.Net.StringFixed(2),
	}).Info("settlement finalized")
	return s, nil
}
