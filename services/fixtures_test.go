package services

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/tab-pos/models"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertMoney(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.Equal(t, want, got.StringFixed(2), msgAndArgs...)
}

// recorder captures everything the engine hands to its collaborators.
type recorder struct {
	mu        sync.Mutex
	financial []models.FinancialTransaction
	stock     []models.StockMovement
	boards    [][]models.Tab
	settled   []Settlement
	snaps     []Snapshot
}

func (r *recorder) AppendFinancial(tx models.FinancialTransaction) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.financial = append(r.financial, tx)
}

func (r *recorder) AppendStock(m models.StockMovement) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stock = append(r.stock, m)
}

func (r *recorder) TabsChanged(tabs []models.Tab) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.boards = append(r.boards, tabs)
}

func (r *recorder) Settled(s Settlement) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.settled = append(r.settled, s)
}

func (r *recorder) Enqueue(s Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snaps = append(r.snaps, s)
}

func testCatalog() *MemoryCatalog {
	burger := models.NewProduct("p-burger", "Burger", models.ClassProduced, money("20.00"),
		models.CustomizationStep{
			ID: "point", Title: "Ponto", Kind: models.StepSingle, Required: true,
			Options: []models.StepOption{
				{ID: "rare", Name: "Mal passado", PriceDelta: decimal.Zero},
				{ID: "well", Name: "Bem passado", PriceDelta: decimal.Zero},
			},
		},
		models.CustomizationStep{
			ID: "extras", Title: "Adicionais", Kind: models.StepMultiple,
			Options: []models.StepOption{
				{ID: "bacon", Name: "Bacon", PriceDelta: money("3.50")},
				{ID: "cheese", Name: "Queijo", PriceDelta: money("2.00")},
			},
		},
	)
	return NewMemoryCatalog([]models.Product{
		burger,
		models.NewProduct("p-ten", "Prato", models.ClassProduced, money("10.00")),
		models.NewProduct("p-five", "Suco", models.ClassResale, money("5.00")),
		models.NewProduct("p-twenty", "Vinho", models.ClassResale, money("20.00")),
		models.NewProduct("p-flour", "Farinha", models.ClassRawMaterial, money("4.00")),
	})
}

type engineOpts func(*Options)

func newTestEngine(t *testing.T, mode models.RegistryMode, count int, opts ...engineOpts) (*Engine, *recorder) {
	t.Helper()
	rec := &recorder{}
	n := 0
	o := Options{
		Mode:      mode,
		Count:     count,
		Catalog:   testCatalog(),
		Methods:   NewMethodList(models.DefaultPaymentMethods()),
		Sinks:     []LedgerSink{rec},
		Notifiers: []Notifier{rec},
		Persist:   rec,
		Now:       func() time.Time { return testNow },
		NewID: func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		},
	}
	for _, fn := range opts {
		fn(&o)
	}
	e, err := NewEngine(o, nil)
	require.NoError(t, err)
	return e, rec
}

// seat opens a tab and commits one add per product id, so repeats merge into quantity.
func seat(t *testing.T, e *Engine, tabID string, party int, productIDs ...string) models.Tab {
	t.Helper()
	_, err := e.Open(tabID, party, "")
	require.NoError(t, err)
	if len(productIDs) == 0 {
		tab, err := e.Tab(tabID)
		require.NoError(t, err)
		return tab
	}
	return addToTab(t, e, tabID, productIDs...)
}

func addToTab(t *testing.T, e *Engine, tabID string, productIDs ...string) models.Tab {
	t.Helper()
	cart := e.NewCart()
	for _, id := range productIDs {
		_, err := e.AddProduct(cart.ID, id, nil)
		require.NoError(t, err)
	}
	res, err := e.Commit(cart.ID, tabID)
	require.NoError(t, err)
	require.NotNil(t, res.Tab)
	return *res.Tab
}

func lineIDs(lines []models.CartLine) []string {
	ids := make([]string, len(lines))
	for i, l := range lines {
		ids[i] = l.ID
	}
	return ids
}

// assertRegistryInvariants checks totals and line id uniqueness across every tab.
func assertRegistryInvariants(t *testing.T, e *Engine) {
	t.Helper()
	seen := map[string]string{}
	for _, v := range e.List() {
		assert.True(t, v.Total.Equal(models.SumLines(v.Items)), "%s total out of sync", v.Label)
		for _, l := range v.Items {
			if other, dup := seen[l.ID]; dup {
				t.Errorf("line %s on both %s and %s", l.ID, other, v.Label)
			}
			seen[l.ID] = v.Label
		}
		if v.Status != models.TabOccupied {
			assert.Zero(t, v.PeopleCount, "%s keeps a party size while %s", v.Label, v.Status)
			assert.Nil(t, v.OpenedAt, "%s keeps opened_at while %s", v.Label, v.Status)
		}
	}
}
