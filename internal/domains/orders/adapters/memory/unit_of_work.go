package memory

import (
	"context"
	"sync"

	catalogmemory "github.com/Apurer/go-gin-backoffice/internal/domains/catalog/adapters/memory"
	customerports "github.com/Apurer/go-gin-backoffice/internal/domains/customers/ports"
	"github.com/Apurer/go-gin-backoffice/internal/domains/orders/ports"
)

var _ ports.UnitOfWork = (*UnitOfWork)(nil)

// UnitOfWork serializes order workflows over the in-memory stores and rolls back
// product, order and idempotency state when the work fails.
type UnitOfWork struct {
	mu          sync.Mutex
	orders      *Repository
	products    *catalogmemory.Repository
	customers   customerports.Repository
	idempotency *IdempotencyStore
}

func NewUnitOfWork(orders *Repository, products *catalogmemory.Repository, customers customerports.Repository, idempotency *IdempotencyStore) *UnitOfWork {
	return &UnitOfWork{orders: orders, products: products, customers: customers, idempotency: idempotency}
}

// Stores returns the non-transactional view of the same repositories.
func (u *UnitOfWork) Stores() ports.Stores {
	return ports.Stores{Orders: u.orders, Products: u.products, Customers: u.customers, Idempotency: u.idempotency}
}

func (u *UnitOfWork) Do(ctx context.Context, fn func(ctx context.Context, stores ports.Stores) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	products := u.products.Snapshot()
	orders := u.orders.Snapshot()
	keys := u.idempotency.Snapshot()
	committed := false
	defer func() {
		if !committed {
			u.products.Restore(products)
			u.orders.Restore(orders)
			u.idempotency.Restore(keys)
		}
	}()

	if err := fn(ctx, u.Stores()); err != nil {
		return err
	}
	committed = true
	return nil
}
