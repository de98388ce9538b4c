package services

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yeremiapane/tab-pos/models"
)

// SnapshotQueue accepts snapshots for asynchronous persistence.
type SnapshotQueue interface {
	Enqueue(s Snapshot)
}

type Options struct {
	Mode  models.RegistryMode
	Count int

	Catalog Catalog
	Methods PaymentMethodRegistry

	Sinks     []LedgerSink
	Notifiers []Notifier
	Persist   SnapshotQueue

	// bcrypt hash of the manager PIN; empty disables manager-only operations
	ManagerPINHash []byte

	Now   func() time.Time
	NewID func() string
}

// Engine is the single owner of the tab registry, the open carts and the ledgers.
// Every operation takes the one mutex, reads the old state of all tabs it touches,
// writes the new state, and only then releases the lock and fires side effects.
type Engine struct {
	mu sync.Mutex

	mode  models.RegistryMode
	tabs  []*models.Tab
	byID  map[string]*models.Tab
	carts map[string]*Cart

	financial []models.FinancialTransaction
	stock     []models.StockMovement
	seq       uint64

	// side effects leave in capture order: dispatch of seq n waits for n-1
	turnMu     sync.Mutex
	turn       *sync.Cond
	dispatched uint64

	catalog   Catalog
	methods   PaymentMethodRegistry
	sinks     []LedgerSink
	notifiers []Notifier
	persist   SnapshotQueue
	pinHash   []byte

	now   func() time.Time
	newID func() string
}

// NewEngine builds the registry from persisted state (may be nil) and reconciles it with
// the configured shape. Persisted settings win over the configured ones.
func NewEngine(opts Options, state *State) (*Engine, error) {
	e := &Engine{
		mode:      opts.Mode,
		byID:      map[string]*models.Tab{},
		carts:     map[string]*Cart{},
		catalog:   opts.Catalog,
		methods:   opts.Methods,
		sinks:     opts.Sinks,
		notifiers: opts.Notifiers,
		persist:   opts.Persist,
		pinHash:   opts.ManagerPINHash,
		now:       opts.Now,
		newID:     opts.NewID,
	}
	e.turn = sync.NewCond(&e.turnMu)
	if e.now == nil {
		e.now = time.Now
	}
	if e.newID == nil {
		e.newID = uuid.NewString
	}
	if e.catalog == nil {
		e.catalog = NewMemoryCatalog(nil)
	}
	if e.methods == nil {
		e.methods = NewMethodList(models.DefaultPaymentMethods())
	}

	mode, count := opts.Mode, opts.Count
	if state != nil {
		for i := range state.Tabs {
			t := state.Tabs[i].Clone()
			if t.Items == nil {
				t.Items = []models.CartLine{}
			}
			e.tabs = append(e.tabs, &t)
		}
		sort.Slice(e.tabs, func(i, j int) bool { return e.tabs[i].Number < e.tabs[j].Number })
		e.reindex()
		e.financial = append(e.financial, state.Financial...)
		e.stock = append(e.stock, state.Stock...)
		if state.Settings != nil {
			mode, count = state.Settings.Mode, state.Settings.Count
		}
	}
	if !mode.Valid() {
		return nil, validationf("unknown registry mode %q", mode)
	}
	if count < 1 {
		return nil, validationf("tab count must be at least 1")
	}
	if err := e.resizeLocked(mode, count); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Engine) Mode() models.RegistryMode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mode
}

func (e *Engine) PaymentMethods() []models.PaymentMethod {
	return e.methods.List()
}

// FinancialLedger returns a copy of the financial ledger in append order.
func (e *Engine) FinancialLedger() []models.FinancialTransaction {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]models.FinancialTransaction(nil), e.financial...)
}

// StockLedger returns a copy of the stock ledger in append order.
func (e *Engine) StockLedger() []models.StockMovement {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]models.StockMovement(nil), e.stock...)
}

func (e *Engine) reindex() {
	e.byID = make(map[string]*models.Tab, len(e.tabs))
	for _, t := range e.tabs {
		e.byID[t.ID] = t
	}
}

func (e *Engine) tabLocked(id string) (*models.Tab, error) {
	t, ok := e.byID[id]
	if !ok {
		return nil, notFound("tab", id)
	}
	return t, nil
}

func (e *Engine) cartLocked(id string) (*Cart, error) {
	c, ok := e.carts[id]
	if !ok {
		return nil, notFound("cart", id)
	}
	return c, nil
}

func (e *Engine) touch(t *models.Tab) {
	t.UpdatedAt = e.now()
}

func (e *Engine) tabsLocked() []models.Tab {
	out := make([]models.Tab, len(e.tabs))
	for i, t := range e.tabs {
		out[i] = t.Clone()
	}
	return out
}

// effects are captured under the lock and dispatched after it is released.
type effects struct {
	snap       *Snapshot
	tabs       []models.Tab
	settlement *Settlement
}

func (e *Engine) capture(tabsDirty, ledgerDirty bool) effects {
	e.seq++
	snap := Snapshot{
		Seq:         e.seq,
		Settings:    models.RegistrySettings{ID: 1, Mode: e.mode, Count: len(e.tabs), UpdatedAt: e.now()},
		TabsDirty:   tabsDirty,
		LedgerDirty: ledgerDirty,
	}
	var fx effects
	if tabsDirty {
		snap.Tabs = e.tabsLocked()
		fx.tabs = e.tabsLocked()
	}
	if ledgerDirty {
		snap.Financial = append([]models.FinancialTransaction(nil), e.financial...)
		snap.Stock = append([]models.StockMovement(nil), e.stock...)
	}
	fx.snap = &snap
	return fx
}

// dispatch runs after the engine lock is released. Every captured seq must be dispatched
// exactly once, in any goroutine; delivery to sinks and notifiers follows seq order.
func (e *Engine) dispatch(fx effects) {
	seq := fx.snap.Seq
	e.turnMu.Lock()
	for e.dispatched+1 != seq {
		e.turn.Wait()
	}
	e.turnMu.Unlock()
	defer func() {
		e.turnMu.Lock()
		e.dispatched = seq
		e.turnMu.Unlock()
		e.turn.Broadcast()
	}()

	if e.persist != nil && fx.snap != nil {
		e.persist.Enqueue(*fx.snap)
	}
	if s := fx.settlement; s != nil {
		for _, sink := range e.sinks {
			sink.AppendFinancial(s.Revenue)
			if s.FeeExpense != nil {
				sink.AppendFinancial(*s.FeeExpense)
			}
			for _, m := range s.Movements {
				sink.AppendStock(m)
			}
		}
	}
	for _, n := range e.notifiers {
		if fx.tabs != nil {
			n.TabsChanged(fx.tabs)
		}
		if fx.settlement != nil {
			n.Settled(*fx.settlement)
		}
	}
}
