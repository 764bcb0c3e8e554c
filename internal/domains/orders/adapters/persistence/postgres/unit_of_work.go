package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	catalogpostgres "github.com/Apurer/go-gin-backoffice/internal/domains/catalog/adapters/persistence/postgres"
	customerpostgres "github.com/Apurer/go-gin-backoffice/internal/domains/customers/adapters/persistence/postgres"
	"github.com/Apurer/go-gin-backoffice/internal/domains/orders/ports"
)

var _ ports.UnitOfWork = (*UnitOfWork)(nil)

// UnitOfWork runs order workflows inside one PostgreSQL transaction with row locks on
// the orders and products it reads.
type UnitOfWork struct {
	db *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

// Stores returns repositories bound to the connection pool rather than a transaction.
func (u *UnitOfWork) Stores() ports.Stores {
	return ports.Stores{
		Orders:      NewRepository(u.db),
		Products:    catalogpostgres.NewRepository(u.db),
		Customers:   customerpostgres.NewRepository(u.db),
		Idempotency: NewIdempotencyStore(u.db),
	}
}

func (u *UnitOfWork) Do(ctx context.Context, fn func(ctx context.Context, stores ports.Stores) error) error {
	if u == nil || u.db == nil {
		return errors.New("postgres unit of work not configured")
	}
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, ports.Stores{
			Orders:      NewRepository(tx).WithRowLocks(),
			Products:    catalogpostgres.NewRepository(tx).WithRowLocks(),
			Customers:   customerpostgres.NewRepository(tx),
			Idempotency: NewIdempotencyStore(tx),
		})
	})
}
