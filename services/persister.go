package services

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/tab-pos/utils"
)

// Persister writes snapshots in the background. Pending snapshots coalesce: only the
// newest tabs and the newest ledgers are written, and an older snapshot that arrives late
// is ignored. Failures are logged and not retried; the next mutation rewrites everything.
type Persister struct {
	Store    Store
	Timeout  time.Duration
	StopChan chan struct{}

	flushMu   sync.Mutex
	mu        sync.Mutex
	pending   Snapshot
	tabsSeq   uint64
	ledgerSeq uint64
	wake      chan struct{}
	done      chan struct{}
	stopOnce  sync.Once
}

func NewPersister(store Store) *Persister {
	return &Persister{
		Store:    store,
		Timeout:  5 * time.Second,
		StopChan: make(chan struct{}),
		wake:     make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
}

func (p *Persister) Start() {
	go func() {
		defer close(p.done)
		for {
			select {
			case <-p.wake:
				p.Flush()
			case <-p.StopChan:
				p.Flush()
				return
			}
		}
	}()
}

// Stop writes whatever is still pending and waits for the worker to exit.
func (p *Persister) Stop() {
	p.stopOnce.Do(func() {
		close(p.StopChan)
		<-p.done
	})
}

func (p *Persister) Enqueue(s Snapshot) {
	p.mu.Lock()
	if s.TabsDirty && s.Seq > p.tabsSeq {
		p.tabsSeq = s.Seq
		p.pending.Settings = s.Settings
		p.pending.Tabs = s.Tabs
		p.pending.TabsDirty = true
	}
	if s.LedgerDirty && s.Seq > p.ledgerSeq {
		p.ledgerSeq = s.Seq
		p.pending.Financial = s.Financial
		p.pending.Stock = s.Stock
		p.pending.LedgerDirty = true
	}
	if s.Seq > p.pending.Seq {
		p.pending.Seq = s.Seq
	}
	p.mu.Unlock()

	select {
	case p.wake <- struct{}{}:
	default:
	}
}

// Flush writes the pending snapshot now, if there is one.
func (p *Persister) Flush() error {
	p.flushMu.Lock()
	defer p.flushMu.Unlock()

	p.mu.Lock()
	snap := p.pending
	p.pending = Snapshot{}
	p.mu.Unlock()
	if !snap.TabsDirty && !snap.LedgerDirty {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.Timeout)
	defer cancel()
	if err := p.Store.Save(ctx, snap); err != nil {
		utils.ErrorLogger.WithFields(logrus.Fields{
			"seq":    snap.Seq,
			"tabs":   snap.TabsDirty,
			"ledger": snap.LedgerDirty,
		}).WithError(err).Error("error persisting snapshot")
		return err
	}
	return nil
}
