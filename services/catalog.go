package services

import (
	"sort"
	"sync"

	"github.com/yeremiapane/tab-pos/models"
)

// MemoryCatalog serves products loaded at start-up.
type MemoryCatalog struct {
	mu       sync.RWMutex
	products map[string]models.Product
}

func NewMemoryCatalog(products []models.Product) *MemoryCatalog {
	c := &MemoryCatalog{products: make(map[string]models.Product, len(products))}
	for _, p := range products {
		c.products[p.ID] = p
	}
	return c
}

func (c *MemoryCatalog) Product(id string) (models.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.products[id]
	return p, ok
}

// Put adds or replaces a product.
func (c *MemoryCatalog) Put(p models.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products[p.ID] = p
}

// List returns the sellable products by name.
func (c *MemoryCatalog) List() []models.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Product, 0, len(c.products))
	for _, p := range c.products {
		if p.Sellable {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// MethodList is a fixed, ordered payment method registry.
type MethodList struct {
	methods []models.PaymentMethod
}

func NewMethodList(methods []models.PaymentMethod) *MethodList {
	ms := append([]models.PaymentMethod(nil), methods...)
	sort.SliceStable(ms, func(i, j int) bool { return ms[i].Position < ms[j].Position })
	return &MethodList{methods: ms}
}

func (l *MethodList) Method(id string) (models.PaymentMethod, bool) {
	for _, m := range l.methods {
		if m.ID == id {
			return m, true
		}
	}
	return models.PaymentMethod{}, false
}

func (l *MethodList) List() []models.PaymentMethod {
	return append([]models.PaymentMethod(nil), l.methods...)
}
