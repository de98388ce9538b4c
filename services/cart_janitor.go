package services

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/tab-pos/utils"
)

// CartJanitor drops carts nobody committed or paid. A cart older than TTL goes on the
// next sweep whatever its contents.
type CartJanitor struct {
	Engine   *Engine
	Interval time.Duration
	TTL      time.Duration
	StopChan chan struct{}

	done     chan struct{}
	stopOnce sync.Once
}

func NewCartJanitor(e *Engine, interval, ttl time.Duration) *CartJanitor {
	return &CartJanitor{
		Engine:   e,
		Interval: interval,
		TTL:      ttl,
		StopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (j *CartJanitor) Start() {
	go func() {
		defer close(j.done)
		ticker := time.NewTicker(j.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				j.Sweep()
			case <-j.StopChan:
				return
			}
		}
	}()
}

func (j *CartJanitor) Stop() {
	j.stopOnce.Do(func() {
		close(j.StopChan)
		<-j.done
	})
}

// Sweep expires stale carts once and returns how many were dropped.
func (j *CartJanitor) Sweep() int {
	n := j.Engine.ExpireCarts(j.TTL)
	if n > 0 {
		utils.InfoLogger.WithFields(logrus.Fields{
			"expired": n,
			"open":    j.Engine.OpenCarts(),
		}).Info("expired idle carts")
	}
	return n
}
