package record

import (
	"context"
	"fmt"
	"sync"

	"github.com/kailas-cloud/strdex/internal/domain"
	domrec "github.com/kailas-cloud/strdex/internal/domain/record"
)

// Repo is the process-memory record store. It implements usecase/record.Repository.
// Reads share the lock, writes hold it exclusively, so List never observes a
// half-applied Insert or Delete.
type Repo struct {
	mu    sync.RWMutex
	byID  map[string]domrec.Record
	order []string
}

// New creates an empty record store.
func New() *Repo {
	return &Repo{byID: make(map[string]domrec.Record)}
}

// Insert stores rec. Returns domain.ErrAlreadyExists if its ID is taken.
func (r *Repo) Insert(_ context.Context, rec domrec.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[rec.ID()]; ok {
		return fmt.Errorf("insert %s: %w", rec.ID(), domain.ErrAlreadyExists)
	}
	r.byID[rec.ID()] = rec
	r.order = append(r.order, rec.ID())
	return nil
}

// Get returns the record with the given ID.
func (r *Repo) Get(_ context.Context, id string) (domrec.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byID[id]
	if !ok {
		return domrec.Record{}, fmt.Errorf("get %s: %w", id, domain.ErrNotFound)
	}
	return rec, nil
}

// List returns a snapshot of all records in insertion order.
func (r *Repo) List(_ context.Context) ([]domrec.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domrec.Record, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out, nil
}

// Delete removes the record with the given ID.
func (r *Repo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return fmt.Errorf("delete %s: %w", id, domain.ErrNotFound)
	}
	delete(r.byID, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// Count returns the number of stored records.
func (r *Repo) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID), nil
}

// Ping always succeeds; the store lives in process memory.
func (r *Repo) Ping(_ context.Context) error { return nil }
