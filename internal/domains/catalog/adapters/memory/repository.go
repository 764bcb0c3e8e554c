package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/Apurer/go-gin-backoffice/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-backoffice/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory product store used for development and tests.
type Repository struct {
	mu       sync.RWMutex
	products map[int64]*domain.Product
	nextID   int64
	now      func() time.Time
}

// Snapshot is an opaque copy of the repository state.
type Snapshot struct {
	products map[int64]domain.Product
	nextID   int64
}

func NewRepository() *Repository {
	return &Repository{products: map[int64]*domain.Product{}, now: time.Now}
}

// WithClock overrides the time source for deterministic testing.
func (r *Repository) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

func (r *Repository) Save(_ context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	clone := *product
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	timestamp := r.now()
	if clone.ID == 0 {
		r.nextID++
		clone.ID = r.nextID
		clone.CreatedAt = timestamp
	} else {
		existing, ok := r.products[clone.ID]
		if !ok {
			return nil, ports.ErrNotFound
		}
		clone.CreatedAt = existing.CreatedAt
		clone.InStock = existing.InStock
	}
	clone.UpdatedAt = timestamp
	r.products[clone.ID] = &clone
	out := clone
	return &out, nil
}

// Update applies the set fields to the stored product under the write lock.
func (r *Repository) Update(_ context.Context, id int64, changes ports.ProductChanges) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.products[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	next := *stored
	if changes.Name != nil {
		next.Name = *changes.Name
	}
	if changes.Price != nil {
		next.Price = *changes.Price
	}
	if changes.Cost != nil {
		next.Cost = *changes.Cost
	}
	if changes.Description != nil {
		next.Description = *changes.Description
	}
	if changes.InStock != nil {
		next.InStock = *changes.InStock
	}
	if changes.ImageURL != nil {
		next.ImageURL = *changes.ImageURL
	}
	if err := next.Validate(); err != nil {
		return nil, err
	}
	next.UpdatedAt = r.now()
	r.products[id] = &next
	out := next
	return &out, nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	product, ok := r.products[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *product
	return &clone, nil
}

func (r *Repository) Exists(_ context.Context, id int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.products[id]
	return ok, nil
}

func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

// List returns products ordered by identifier.
func (r *Repository) List(_ context.Context) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Product, 0, len(r.products))
	for _, product := range r.products {
		clone := *product
		list = append(list, &clone)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *Repository) AdjustStock(_ context.Context, id int64, delta int64) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	if product.InStock+delta < 0 {
		return nil, ports.ErrInsufficientStock
	}
	product.InStock += delta
	product.UpdatedAt = r.now()
	clone := *product
	return &clone, nil
}

// Snapshot copies the current state so a failed unit of work can roll it back.
func (r *Repository) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	snap := Snapshot{products: make(map[int64]domain.Product, len(r.products)), nextID: r.nextID}
	for id, product := range r.products {
		snap.products[id] = *product
	}
	return snap
}

// Restore replaces the current state with a snapshot.
func (r *Repository) Restore(snap Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = make(map[int64]*domain.Product, len(snap.products))
	for id, product := range snap.products {
		clone := product
		r.products[id] = &clone
	}
	r.nextID = snap.nextID
}
