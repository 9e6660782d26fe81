package service

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/salesdesk/salesdesk-api/internal/domain/entity"
	"github.com/salesdesk/salesdesk-api/internal/domain/repository"
)

// SalesFeed owns the live in-memory view of the transaction log. Every
// refresh replaces the entire snapshot with a fresh full load; the
// snapshot is never patched incrementally, so dependent aggregates
// always recompute over a consistent list (latest wins).
//
// The feed has an explicit lifecycle: Start performs the initial load
// and launches the refresh loop, Stop tears the loop down. Refreshes
// are triggered by Poke after each sale write, with a periodic timer
// as backstop.
type SalesFeed struct {
	saleRepo repository.SaleRepository
	interval time.Duration

	mu       sync.RWMutex
	snapshot []entity.Sale

	notify  chan struct{}
	stop    chan struct{}
	done    chan struct{}
	started bool
}

// NewSalesFeed creates a sales feed refreshing at the given interval
func NewSalesFeed(saleRepo repository.SaleRepository, interval time.Duration) *SalesFeed {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &SalesFeed{
		saleRepo: saleRepo,
		interval: interval,
		notify:   make(chan struct{}, 1),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start loads the initial snapshot and launches the refresh loop
func (f *SalesFeed) Start(ctx context.Context) error {
	if f.started {
		return errors.New("sales feed already started")
	}
	if err := f.Refresh(ctx); err != nil {
		return err
	}
	f.started = true
	go f.loop()
	return nil
}

// Stop tears down the refresh loop and waits for it to exit
func (f *SalesFeed) Stop() {
	if !f.started {
		return
	}
	close(f.stop)
	<-f.done
	f.started = false
}

// Poke requests a refresh without blocking; a refresh already pending
// absorbs the request
func (f *SalesFeed) Poke() {
	select {
	case f.notify <- struct{}{}:
	default:
	}
}

// Refresh replaces the whole snapshot with a full load of the sales table
func (f *SalesFeed) Refresh(ctx context.Context) error {
	sales, err := f.saleRepo.ListAll(ctx)
	if err != nil {
		return err
	}

	f.mu.Lock()
	f.snapshot = sales
	f.mu.Unlock()
	return nil
}

// Snapshot returns the current list. Callers must treat it as
// read-only; the feed replaces the slice wholesale on refresh and
// never mutates it in place.
func (f *SalesFeed) Snapshot() []entity.Sale {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.snapshot
}

func (f *SalesFeed) loop() {
	defer close(f.done)

	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		select {
		case <-f.stop:
			return
		case <-f.notify:
		case <-ticker.C:
		}

		if err := f.Refresh(context.Background()); err != nil {
			log.Printf("Warning: sales feed refresh failed: %v", err)
		}
	}
}
