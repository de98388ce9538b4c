package services

import (
	"time"

	"github.com/yeremiapane/tab-pos/models"
	"github.com/yeremiapane/tab-pos/utils"
)

// Route tells the front end which screen a selected tab leads to.
type Route string

const (
	RouteOpen  Route = "open"
	RouteClaim Route = "claim"
	RouteOrder Route = "order"
)

type TabSelection struct {
	Tab   models.Tab `json:"tab"`
	Route Route      `json:"route"`
}

// TabView is a tab as shown on the board, with time since it was opened.
type TabView struct {
	models.Tab
	ElapsedSeconds int64 `json:"elapsed_seconds"`
}

// Resize rebuilds the registry with count ordinals. Tabs whose number survives keep their
// state and get a fresh label; a tab that would disappear must be free.
func (e *Engine) Resize(mode models.RegistryMode, count int) ([]models.Tab, error) {
	if !mode.Valid() {
		return nil, validationf("unknown registry mode %q", mode)
	}
	if count < 1 {
		return nil, validationf("tab count must be at least 1")
	}

	e.mu.Lock()
	if err := e.resizeLocked(mode, count); err != nil {
		e.mu.Unlock()
		return nil, err
	}
	fx := e.capture(true, false)
	out := e.tabsLocked()
	e.mu.Unlock()

	e.dispatch(fx)
	utils.InfoLogger.WithField("mode", mode).WithField("count", count).Info("registry resized")
	return out, nil
}

func (e *Engine) resizeLocked(mode models.RegistryMode, count int) error {
	for _, t := range e.tabs {
		if t.Number > count && t.Status != models.TabFree {
			return preconditionf("%s is %s and cannot be removed", t.Label, t.Status)
		}
	}
	byNumber := make(map[int]*models.Tab, len(e.tabs))
	for _, t := range e.tabs {
		byNumber[t.Number] = t
	}
	next := make([]*models.Tab, 0, count)
	for n := 1; n <= count; n++ {
		t, ok := byNumber[n]
		if !ok {
			nt := models.NewFreeTab(mode, n)
			nt.UpdatedAt = e.now()
			next = append(next, &nt)
			continue
		}
		if label := mode.Label(n); t.Label != label {
			t.Label = label
			e.touch(t)
		}
		next = append(next, t)
	}
	e.tabs = next
	e.mode = mode
	e.reindex()
	return nil
}

// List returns every tab in ordinal order.
func (e *Engine) List() []TabView {
	e.mu.Lock()
	defer e.mu.Unlock()
	now := e.now()
	out := make([]TabView, len(e.tabs))
	for i, t := range e.tabs {
		out[i] = TabView{Tab: t.Clone(), ElapsedSeconds: int64(t.Elapsed(now) / time.Second)}
	}
	return out
}

func (e *Engine) Tab(id string) (models.Tab, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	t, err := e.tabLocked(id)
	if err != nil {
		return models.Tab{}, err
	}
	return t.Clone(), nil
}

// Select is read-only and only reports where the tab leads.
func (e *Engine) Select(id string) (TabSelection, error) {
	t, err := e.Tab(id)
	if err != nil {
		return TabSelection{}, err
	}
	route := RouteOrder
	switch t.Status {
	case models.TabFree:
		route = RouteOpen
	case models.TabReserved:
		route = RouteClaim
	}
	return TabSelection{Tab: t, Route: route}, nil
}

func (e *Engine) Open(id string, partySize int, location string) (models.Tab, error) {
	return e.occupy(id, models.TabFree, partySize, location)
}

// ClaimReservation seats the party of a reserved tab.
func (e *Engine) ClaimReservation(id string, partySize int, location string) (models.Tab, error) {
	return e.occupy(id, models.TabReserved, partySize, location)
}

func (e *Engine) occupy(id string, from models.TabStatus, partySize int, location string) (models.Tab, error) {
	if partySize < 1 {
		return models.Tab{}, validationf("party size must be at least 1")
	}
	e.mu.Lock()
	t, err := e.tabLocked(id)
	if err != nil {
		e.mu.Unlock()
		return models.Tab{}, err
	}
	if t.Status != from || !models.CanTransition(t.Status, models.TabOccupied) {
		e.mu.Unlock()
		return models.Tab{}, preconditionf("%s is %s, expected %s", t.Label, t.Status, from)
	}
	now := e.now()
	t.Status = models.TabOccupied
	t.PeopleCount = partySize
	t.Location = location
	t.OpenedAt = &now
	e.touch(t)

	out := t.Clone()
	fx := e.capture(true, false)
	e.mu.Unlock()
	e.dispatch(fx)
	return out, nil
}

func (e *Engine) Reserve(id string) (models.Tab, error) {
	e.mu.Lock()
	t, err := e.tabLocked(id)
	if err != nil {
		e.mu.Unlock()
		return models.Tab{}, err
	}
	if t.Status != models.TabFree {
		e.mu.Unlock()
		return models.Tab{}, preconditionf("%s is %s, only a free tab can be reserved", t.Label, t.Status)
	}
	t.Status = models.TabReserved
	e.touch(t)

	out := t.Clone()
	fx := e.capture(true, false)
	e.mu.Unlock()
	e.dispatch(fx)
	return out, nil
}
