package ports

import (
	"context"

	catalogports "github.com/Apurer/go-gin-backoffice/internal/domains/catalog/ports"
	customerports "github.com/Apurer/go-gin-backoffice/internal/domains/customers/ports"
)

// Stores groups the repositories bound to one unit of work.
type Stores struct {
	Orders      Repository
	Products    catalogports.Repository
	Customers   customerports.Repository
	Idempotency IdempotencyStore
}

// UnitOfWork runs fn atomically: every write made through the provided stores is committed
// when fn returns nil and discarded otherwise.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context, stores Stores) error) error
}
