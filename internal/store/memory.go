// Package store provides the core.Store backends: an in-memory store seeded
// with demo suppliers, PostgreSQL via pgx, and MongoDB.
package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/JonMunkholm/suppliers/internal/core"
)

// MemoryStore keeps suppliers and leads in process memory.
// Values are copied on the way in and out.
type MemoryStore struct {
	mu        sync.RWMutex
	suppliers []core.Supplier
	leads     []core.Lead
	now       func() time.Time
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

// NewSeededMemoryStore returns a store holding the demo suppliers.
func NewSeededMemoryStore() *MemoryStore {
	m := NewMemoryStore()
	for _, s := range SeedSuppliers() {
		m.suppliers = append(m.suppliers, cloneSupplier(s))
	}
	return m
}

func (m *MemoryStore) List(ctx context.Context, filter core.SupplierFilter) ([]core.Supplier, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]core.Supplier, 0, len(m.suppliers))
	for _, s := range m.suppliers {
		if core.MatchesFilter(s, filter) {
			out = append(out, cloneSupplier(s))
		}
	}
	return out, nil
}

func (m *MemoryStore) Get(ctx context.Context, id string) (core.Supplier, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if i := m.indexOf(id); i >= 0 {
		return cloneSupplier(m.suppliers[i]), nil
	}
	return core.Supplier{}, core.ErrNotFound
}

func (m *MemoryStore) GetBySlug(ctx context.Context, slug string) (core.Supplier, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, s := range m.suppliers {
		if s.Slug == slug {
			return cloneSupplier(s), nil
		}
	}
	return core.Supplier{}, core.ErrNotFound
}

func (m *MemoryStore) Create(ctx context.Context, s core.Supplier) (core.Supplier, error) {
	if err := ctx.Err(); err != nil {
		return core.Supplier{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.indexOf(s.ID) >= 0 {
		return core.Supplier{}, fmt.Errorf("create supplier %s: duplicate key", s.ID)
	}
	m.suppliers = append(m.suppliers, cloneSupplier(s))
	return cloneSupplier(s), nil
}

func (m *MemoryStore) Update(ctx context.Context, id string, u core.SupplierUpdate) (core.Supplier, error) {
	if err := ctx.Err(); err != nil {
		return core.Supplier{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return core.Supplier{}, core.ErrNotFound
	}
	u.Apply(&m.suppliers[i], m.now().UTC())
	return cloneSupplier(m.suppliers[i]), nil
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return core.ErrNotFound
	}
	m.suppliers = append(m.suppliers[:i], m.suppliers[i+1:]...)
	return nil
}

// BulkInsert appends every supplier or none of them.
func (m *MemoryStore) BulkInsert(ctx context.Context, suppliers []core.Supplier) ([]core.Supplier, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	seen := make(map[string]bool, len(suppliers))
	for _, s := range suppliers {
		if seen[s.ID] || m.indexOf(s.ID) >= 0 {
			return nil, fmt.Errorf("bulk insert %s: duplicate key", s.ID)
		}
		seen[s.ID] = true
	}

	out := make([]core.Supplier, len(suppliers))
	for i, s := range suppliers {
		m.suppliers = append(m.suppliers, cloneSupplier(s))
		out[i] = cloneSupplier(s)
	}
	return out, nil
}

func (m *MemoryStore) SaveLead(ctx context.Context, lead core.Lead) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.leads = append(m.leads, lead)
	return nil
}

// Leads returns every stored lead, oldest first.
func (m *MemoryStore) Leads() []core.Lead {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]core.Lead(nil), m.leads...)
}

func (m *MemoryStore) Ping(ctx context.Context) error { return ctx.Err() }

func (m *MemoryStore) Close(ctx context.Context) error { return nil }

// indexOf must be called with mu held.
func (m *MemoryStore) indexOf(id string) int {
	for i, s := range m.suppliers {
		if s.ID == id {
			return i
		}
	}
	return -1
}

func cloneSupplier(s core.Supplier) core.Supplier {
	if s.Categories != nil {
		s.Categories = append([]string{}, s.Categories...)
	} else {
		s.Categories = []string{}
	}
	return s
}
