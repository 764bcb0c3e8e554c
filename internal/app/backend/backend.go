// Package backend selects and wires the persistence adapters shared by the API and the worker.
package backend

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	authmemory "github.com/Apurer/go-gin-backoffice/internal/domains/auth/adapters/memory"
	authpostgres "github.com/Apurer/go-gin-backoffice/internal/domains/auth/adapters/persistence/postgres"
	authports "github.com/Apurer/go-gin-backoffice/internal/domains/auth/ports"
	catalogmemory "github.com/Apurer/go-gin-backoffice/internal/domains/catalog/adapters/memory"
	catalogpostgres "github.com/Apurer/go-gin-backoffice/internal/domains/catalog/adapters/persistence/postgres"
	catalogports "github.com/Apurer/go-gin-backoffice/internal/domains/catalog/ports"
	customermemory "github.com/Apurer/go-gin-backoffice/internal/domains/customers/adapters/memory"
	customerpostgres "github.com/Apurer/go-gin-backoffice/internal/domains/customers/adapters/persistence/postgres"
	customerports "github.com/Apurer/go-gin-backoffice/internal/domains/customers/ports"
	ordermemory "github.com/Apurer/go-gin-backoffice/internal/domains/orders/adapters/memory"
	orderpostgres "github.com/Apurer/go-gin-backoffice/internal/domains/orders/adapters/persistence/postgres"
	orderports "github.com/Apurer/go-gin-backoffice/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-backoffice/internal/platform/migrations"
	platformpostgres "github.com/Apurer/go-gin-backoffice/internal/platform/postgres"
)

// Options selects the storage backend.
type Options struct {
	// PostgresDSN chooses PostgreSQL when set, in-memory adapters otherwise.
	PostgresDSN string
	// RunMigrations applies the embedded schema before returning.
	RunMigrations bool
}

// Repositories bundles every store the application services depend on.
type Repositories struct {
	Products   catalogports.Repository
	Customers  customerports.Repository
	Orders     orderports.Repository
	Users      authports.Repository
	UnitOfWork orderports.UnitOfWork
	// Reader serves reads outside a unit of work.
	Reader orderports.Stores
	// Durable reports whether the repositories survive a restart.
	Durable bool
}

// Build returns the repositories for opts and a cleanup function releasing them.
func Build(ctx context.Context, opts Options, logger *slog.Logger) (*Repositories, func(), error) {
	db, cleanup, err := platformpostgres.Open(ctx, opts.PostgresDSN, logger)
	if err != nil {
		return nil, func() {}, fmt.Errorf("connect postgres: %w", err)
	}
	if db == nil {
		return Memory(), cleanup, nil
	}
	if opts.RunMigrations {
		if err := migrations.Run(db); err != nil {
			cleanup()
			return nil, func() {}, fmt.Errorf("apply migrations: %w", err)
		}
		if logger != nil {
			logger.Info("database migrations applied")
		}
	}
	return Postgres(db), cleanup, nil
}

// Memory wires in-process repositories sharing one unit of work.
func Memory() *Repositories {
	products := catalogmemory.NewRepository()
	customers := customermemory.NewRepository()
	orders := ordermemory.NewRepository()
	uow := ordermemory.NewUnitOfWork(orders, products, customers, ordermemory.NewIdempotencyStore())
	return &Repositories{
		Products:   products,
		Customers:  customers,
		Orders:     orders,
		Users:      authmemory.NewRepository(),
		UnitOfWork: uow,
		Reader:     uow.Stores(),
	}
}

// Postgres wires gorm repositories over db. Caller manages the DB lifecycle.
func Postgres(db *gorm.DB) *Repositories {
	uow := orderpostgres.NewUnitOfWork(db)
	return &Repositories{
		Products:   catalogpostgres.NewRepository(db),
		Customers:  customerpostgres.NewRepository(db),
		Orders:     orderpostgres.NewRepository(db),
		Users:      authpostgres.NewRepository(db),
		UnitOfWork: uow,
		Reader:     uow.Stores(),
		Durable:    true,
	}
}
