package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/mmynk/splitsmart/internal/ledger"
	"github.com/mmynk/splitsmart/internal/storage"
)

// Ledgers caches one ledger per group and serializes access to each.
// A ledger is restored from the store the first time its group is used.
type Ledgers struct {
	store storage.Store

	mu      sync.Mutex
	entries map[string]*ledgerEntry
}

type ledgerEntry struct {
	mu     sync.Mutex
	ledger *ledger.Ledger
}

// NewLedgers creates an empty registry backed by store.
func NewLedgers(store storage.Store) *Ledgers {
	return &Ledgers{
		store:   store,
		entries: make(map[string]*ledgerEntry),
	}
}

// entry returns the group's cache slot. Unknown groups never get one, so
// lookups of made-up IDs leave the registry as it was.
func (r *Ledgers) entry(ctx context.Context, groupID string) (*ledgerEntry, error) {
	r.mu.Lock()
	e, ok := r.entries[groupID]
	r.mu.Unlock()
	if ok {
		return e, nil
	}

	if _, err := r.store.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[groupID]; ok {
		return e, nil
	}
	e = &ledgerEntry{}
	r.entries[groupID] = e
	return e, nil
}

// load restores the group's ledger if it is not cached yet.
// The caller must hold e.mu.
func (r *Ledgers) load(ctx context.Context, groupID string, e *ledgerEntry) (*ledger.Ledger, error) {
	if e.ledger != nil {
		return e.ledger, nil
	}

	group, err := r.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	balances, err := r.store.ListBalances(ctx, groupID)
	if err != nil {
		return nil, err
	}
	expenses, err := r.store.ListExpenses(ctx, groupID)
	if err != nil {
		return nil, err
	}

	l, err := ledger.Restore(group.Members, balances, expenses)
	if err != nil {
		return nil, fmt.Errorf("failed to restore ledger for group %s: %w", groupID, err)
	}
	e.ledger = l
	return l, nil
}

// View runs fn with exclusive access to the group's ledger. fn must not
// modify the ledger.
func (r *Ledgers) View(ctx context.Context, groupID string, fn func(*ledger.Ledger) error) error {
	e, err := r.entry(ctx, groupID)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	l, err := r.load(ctx, groupID, e)
	if err != nil {
		return err
	}
	return fn(l)
}

// Update runs fn on a copy of the group's ledger and keeps the copy only if
// fn succeeds. fn is expected to persist the new state before returning, so
// a failed write leaves both the cache and the store unchanged.
func (r *Ledgers) Update(ctx context.Context, groupID string, fn func(*ledger.Ledger) error) (*ledger.Ledger, error) {
	e, err := r.entry(ctx, groupID)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	current, err := r.load(ctx, groupID, e)
	if err != nil {
		return nil, err
	}

	next := current.Clone()
	if err := fn(next); err != nil {
		return nil, err
	}
	e.ledger = next
	return next.Clone(), nil
}
