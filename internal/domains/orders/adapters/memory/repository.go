package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/Apurer/go-gin-backoffice/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-backoffice/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository keeps orders and their lines in memory.
type Repository struct {
	mu         sync.RWMutex
	orders     map[int64]*domain.Order
	nextID     int64
	nextLineID int64
	now        func() time.Time
}

// Snapshot is an opaque copy of the repository state.
type Snapshot struct {
	orders     map[int64]*domain.Order
	nextID     int64
	nextLineID int64
}

func NewRepository() *Repository {
	return &Repository{orders: map[int64]*domain.Order{}, now: time.Now}
}

// WithClock overrides the time source for deterministic testing.
func (r *Repository) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

func (r *Repository) Create(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	clone := cloneOrder(order)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	clone.ID = r.nextID
	timestamp := r.now()
	if clone.OrderDate.IsZero() {
		clone.OrderDate = timestamp
	}
	clone.UpdatedAt = timestamp
	for i := range clone.Lines {
		r.nextLineID++
		clone.Lines[i].ID = r.nextLineID
	}
	r.orders[clone.ID] = clone
	return cloneOrder(clone), nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return cloneOrder(order), nil
}

func (r *Repository) UpdateStatus(_ context.Context, id int64, status domain.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return ports.ErrNotFound
	}
	order.Status = status
	order.UpdatedAt = r.now()
	return nil
}

func (r *Repository) List(_ context.Context, filter ports.ListFilter) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Order, 0, len(r.orders))
	for _, order := range r.orders {
		if matches(order, filter) {
			list = append(list, cloneOrder(order))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

// Snapshot copies the current state so a failed unit of work can roll it back.
func (r *Repository) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	snap := Snapshot{orders: make(map[int64]*domain.Order, len(r.orders)), nextID: r.nextID, nextLineID: r.nextLineID}
	for id, order := range r.orders {
		snap.orders[id] = cloneOrder(order)
	}
	return snap
}

// Restore replaces the current state with a snapshot.
func (r *Repository) Restore(snap Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = make(map[int64]*domain.Order, len(snap.orders))
	for id, order := range snap.orders {
		r.orders[id] = cloneOrder(order)
	}
	r.nextID = snap.nextID
	r.nextLineID = snap.nextLineID
}

func matches(order *domain.Order, filter ports.ListFilter) bool {
	if len(filter.Statuses) > 0 {
		found := false
		for _, status := range filter.Statuses {
			if order.Status == status {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if filter.DueFrom != nil || filter.DueTo != nil {
		if order.DueDate == nil {
			return false
		}
		if filter.DueFrom != nil && order.DueDate.Before(*filter.DueFrom) {
			return false
		}
		if filter.DueTo != nil && order.DueDate.After(*filter.DueTo) {
			return false
		}
	}
	return true
}

func cloneOrder(order *domain.Order) *domain.Order {
	clone := *order
	if order.CustomerID != nil {
		id := *order.CustomerID
		clone.CustomerID = &id
	}
	if order.DueDate != nil {
		due := *order.DueDate
		clone.DueDate = &due
	}
	clone.Lines = make([]domain.Line, len(order.Lines))
	for i, line := range order.Lines {
		clone.Lines[i] = line
		if line.ProductID != nil {
			pid := *line.ProductID
			clone.Lines[i].ProductID = &pid
		}
	}
	return &clone
}
