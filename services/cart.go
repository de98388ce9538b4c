package services

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/gowebpki/jcs"
	"github.com/shopspring/decimal"
	"github.com/yeremiapane/tab-pos/models"
)

// Picks maps a customization step id to the option ids chosen for it.
type Picks map[string][]string

// Cart is a working list of lines not yet committed to any tab.
type Cart struct {
	ID        string            `json:"id"`
	Lines     []models.CartLine `json:"lines"`
	CreatedAt time.Time         `json:"created_at"`
}

func (c *Cart) Total() decimal.Decimal {
	return models.SumLines(c.Lines)
}

func (c *Cart) clone() Cart {
	out := *c
	out.Lines = models.CloneLines(c.Lines)
	return out
}

func (c *Cart) lineIndex(lineID string) int {
	for i, l := range c.Lines {
		if l.ID == lineID {
			return i
		}
	}
	return -1
}

// add merges into an existing line when product and selection set match.
func (c *Cart) add(p models.Product, sels []models.Selection, newID func() string) (models.CartLine, error) {
	key, err := selectionKey(sels)
	if err != nil {
		return models.CartLine{}, err
	}
	for i, l := range c.Lines {
		if l.ProductID != p.ID {
			continue
		}
		other, err := selectionKey(l.Selections)
		if err != nil {
			return models.CartLine{}, err
		}
		if other == key {
			c.Lines[i].Quantity++
			return c.Lines[i], nil
		}
	}

	price := p.Price
	for _, s := range sels {
		price = price.Add(s.PriceDelta)
	}
	line := models.CartLine{
		ID:          newID(),
		ProductID:   p.ID,
		ProductName: p.Name,
		Quantity:    1,
		Selections:  sels,
		FinalPrice:  price,
	}
	c.Lines = append(c.Lines, line)
	return line, nil
}

func (c *Cart) adjust(lineID string, delta int) error {
	i := c.lineIndex(lineID)
	if i < 0 {
		return notFound("line", lineID)
	}
	q := c.Lines[i].Quantity + delta
	if q < 1 {
		c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
		return nil
	}
	c.Lines[i].Quantity = q
	return nil
}

func (c *Cart) remove(lineID string) error {
	i := c.lineIndex(lineID)
	if i < 0 {
		return notFound("line", lineID)
	}
	c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
	return nil
}

func (c *Cart) setNote(lineID, text string) error {
	i := c.lineIndex(lineID)
	if i < 0 {
		return notFound("line", lineID)
	}
	c.Lines[i].Note = text
	return nil
}

// resolveSelections checks picks against the product steps and freezes the chosen options
// in step order.
func resolveSelections(p models.Product, picks Picks) ([]models.Selection, error) {
	known := make(map[string]bool, len(p.Steps))
	for _, s := range p.Steps {
		known[s.ID] = true
	}
	for stepID := range picks {
		if !known[stepID] {
			return nil, validationf("product %s has no step %q", p.Name, stepID)
		}
	}
	for _, s := range p.Steps {
		if s.Required && len(dedupe(picks[s.ID])) == 0 {
			return nil, validationf("step %q requires a selection", s.Title)
		}
	}

	var sels []models.Selection
	for _, s := range p.Steps {
		ids := dedupe(picks[s.ID])
		if s.Kind == models.StepSingle && len(ids) > 1 {
			return nil, validationf("step %q accepts exactly one option", s.Title)
		}
		for _, id := range ids {
			o, ok := s.Option(id)
			if !ok {
				return nil, validationf("step %q has no option %q", s.Title, id)
			}
			sels = append(sels, models.Selection{StepTitle: s.Title, OptionName: o.Name, PriceDelta: o.PriceDelta})
		}
	}
	return sels, nil
}

// selectionKey is the canonical form of a selection set, independent of pick order.
func selectionKey(sels []models.Selection) (string, error) {
	sorted := append([]models.Selection{}, sels...)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.StepTitle != b.StepTitle {
			return a.StepTitle < b.StepTitle
		}
		if a.OptionName != b.OptionName {
			return a.OptionName < b.OptionName
		}
		return a.PriceDelta.LessThan(b.PriceDelta)
	})
	raw, err := json.Marshal(sorted)
	if err != nil {
		return "", err
	}
	canon, err := jcs.Transform(raw)
	if err != nil {
		return "", err
	}
	return string(canon), nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// NewCart opens an empty working list.
func (e *Engine) NewCart() Cart {
	e.mu.Lock()
	defer e.mu.Unlock()
	c := &Cart{ID: e.newID(), Lines: []models.CartLine{}, CreatedAt: e.now()}
	e.carts[c.ID] = c
	return c.clone()
}

func (e *Engine) Cart(id string) (Cart, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	c, err := e.cartLocked(id)
	if err != nil {
		return Cart{}, err
	}
	return c.clone(), nil
}

// AddProduct validates the picks against the product and adds or merges a line.
func (e *Engine) AddProduct(cartID, productID string, picks Picks) (Cart, error) {
	p, ok := e.catalog.Product(productID)
	if !ok {
		return Cart{}, notFound("product", productID)
	}
	if !p.Sellable {
		return Cart{}, validationf("product %s is not for sale", p.Name)
	}
	sels, err := resolveSelections(p, picks)
	if err != nil {
		return Cart{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	c, err := e.cartLocked(cartID)
	if err != nil {
		return Cart{}, err
	}
	if _, err := c.add(p, sels, e.newID); err != nil {
		return Cart{}, err
	}
	return c.clone(), nil
}

func (e *Engine) AdjustQuantity(cartID, lineID string, delta int) (Cart, error) {
	return e.editCart(cartID, func(c *Cart) error { return c.adjust(lineID, delta) })
}

func (e *Engine) RemoveLine(cartID, lineID string) (Cart, error) {
	return e.editCart(cartID, func(c *Cart) error { return c.remove(lineID) })
}

func (e *Engine) SetNote(cartID, lineID, text string) (Cart, error) {
	return e.editCart(cartID, func(c *Cart) error { return c.setNote(lineID, text) })
}

// UpdateLine sets the note and applies the quantity delta as one edit. Either may be nil.
// A delta that takes the quantity below one removes the line, note included.
func (e *Engine) UpdateLine(cartID, lineID string, delta *int, note *string) (Cart, error) {
	if delta == nil && note == nil {
		return Cart{}, validationf("delta or note is required")
	}
	return e.editCart(cartID, func(c *Cart) error {
		if note != nil {
			if err := c.setNote(lineID, *note); err != nil {
				return err
			}
		}
		if delta != nil {
			return c.adjust(lineID, *delta)
		}
		return nil
	})
}

// editCart runs fn on a copy and keeps it only when fn succeeds.
func (e *Engine) editCart(cartID string, fn func(c *Cart) error) (Cart, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	c, err := e.cartLocked(cartID)
	if err != nil {
		return Cart{}, err
	}
	work := c.clone()
	if err := fn(&work); err != nil {
		return Cart{}, err
	}
	*c = work
	return c.clone(), nil
}

// ExpireCarts drops carts created more than maxAge ago and reports how many went.
func (e *Engine) ExpireCarts(maxAge time.Duration) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	cutoff := e.now().Add(-maxAge)
	n := 0
	for id, c := range e.carts {
		if c.CreatedAt.Before(cutoff) {
			delete(e.carts, id)
			n++
		}
	}
	return n
}

// OpenCarts is the number of carts still held.
func (e *Engine) OpenCarts() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.carts)
}

// DiscardCart drops a working list without touching any tab.
func (e *Engine) DiscardCart(cartID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, err := e.cartLocked(cartID); err != nil {
		return err
	}
	delete(e.carts, cartID)
	return nil
}

// CommitResult is the outcome of a commit: the updated tab, or the walk-up payable set.
type CommitResult struct {
	Tab     *models.Tab       `json:"tab,omitempty"`
	Payable []models.CartLine `json:"payable,omitempty"`
	Total   decimal.Decimal   `json:"total"`
}

// Commit appends the working lines to an occupied tab and closes the cart. Without a
// target the cart is left as is and becomes the payable set of a walk-up sale.
func (e *Engine) Commit(cartID, tabID string) (CommitResult, error) {
	e.mu.Lock()
	c, err := e.cartLocked(cartID)
	if err != nil {
		e.mu.Unlock()
		return CommitResult{}, err
	}
	if len(c.Lines) == 0 {
		e.mu.Unlock()
		return CommitResult{}, errEmptyCart
	}
	if tabID == "" {
		res := CommitResult{Payable: models.CloneLines(c.Lines), Total: c.Total()}
		e.mu.Unlock()
		return res, nil
	}

	t, err := e.tabLocked(tabID)
	if err != nil {
		e.mu.Unlock()
		return CommitResult{}, err
	}
	if t.Status != models.TabOccupied {
		e.mu.Unlock()
		return CommitResult{}, preconditionf("tab %s is %s, lines can only be added to an occupied tab", t.Label, t.Status)
	}
	e.appendLines(t, c.Lines)
	delete(e.carts, c.ID)

	out := t.Clone()
	fx := e.capture(true, false)
	e.mu.Unlock()
	e.dispatch(fx)
	return CommitResult{Tab: &out, Total: out.Total}, nil
}
