package application

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	catalogdomain "github.com/Apurer/go-gin-backoffice/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/go-gin-backoffice/internal/domains/catalog/ports"
	customerdomain "github.com/Apurer/go-gin-backoffice/internal/domains/customers/domain"
	customerports "github.com/Apurer/go-gin-backoffice/internal/domains/customers/ports"
	orderdomain "github.com/Apurer/go-gin-backoffice/internal/domains/orders/domain"
	orderports "github.com/Apurer/go-gin-backoffice/internal/domains/orders/ports"
)

const window = 30 * 24 * time.Hour

var hundred = decimal.NewFromInt(100)

// Stats is the main dashboard payload.
type Stats struct {
	CurrentMonthProfits    decimal.Decimal
	PercentageChange       decimal.Decimal
	ProductsCount          int
	NewProductsCount       int
	NewProductsPercentage  decimal.Decimal
	InStockProductsCount   int64
	CustomersCount         int
	NewCustomersCount      int
	NewCustomersPercentage decimal.Decimal
}

// Service aggregates statistics across orders, catalog and customers.
type Service struct {
	orders    orderports.Repository
	products  catalogports.Repository
	customers customerports.Repository
	now       func() time.Time
	group     singleflight.Group
}

func NewService(orders orderports.Repository, products catalogports.Repository, customers customerports.Repository) *Service {
	return &Service{orders: orders, products: products, customers: customers, now: time.Now}
}

// WithClock overrides the time source for deterministic testing.
func (s *Service) WithClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// MainDashboard computes the dashboard. Concurrent callers share one computation,
// which runs detached from the cancellation of whichever caller started it. A
// caller that gives up gets its own context error.
func (s *Service) MainDashboard(ctx context.Context) (*Stats, error) {
	ch := s.group.DoChan("main", func() (any, error) {
		return s.compute(context.WithoutCancel(ctx))
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		stats := *res.Val.(*Stats)
		return &stats, nil
	}
}

func (s *Service) compute(ctx context.Context) (*Stats, error) {
	today := s.now()
	currentStart := today.Add(-window)
	previousStart := today.Add(-2 * window)
	previousEnd := today.Add(-window - 24*time.Hour)

	var (
		completed []*orderdomain.Order
		products  []*catalogdomain.Product
		customers []*customerdomain.Customer
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		completed, err = s.orders.List(gctx, orderports.ListFilter{
			Statuses: []orderdomain.Status{orderdomain.StatusCompleted},
			DueFrom:  &previousStart,
			DueTo:    &today,
		})
		return err
	})
	g.Go(func() error {
		var err error
		products, err = s.products.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		customers, err = s.customers.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	current, previous := decimal.Zero, decimal.Zero
	for _, order := range completed {
		due := *order.DueDate
		if within(due, currentStart, today) {
			current = current.Add(order.Profit())
		}
		if within(due, previousStart, previousEnd) {
			previous = previous.Add(order.Profit())
		}
	}

	stats := &Stats{
		CurrentMonthProfits: current,
		PercentageChange:    percentageChange(current, previous),
		ProductsCount:       len(products),
		CustomersCount:      len(customers),
	}
	for _, product := range products {
		if within(product.CreatedAt, currentStart, today) {
			stats.NewProductsCount++
		}
		if product.InStock > 0 {
			stats.InStockProductsCount += product.InStock
		}
	}
	for _, customer := range customers {
		if within(customer.CreatedAt, currentStart, today) {
			stats.NewCustomersCount++
		}
	}
	stats.NewProductsPercentage = share(stats.NewProductsCount, stats.ProductsCount)
	stats.NewCustomersPercentage = share(stats.NewCustomersCount, stats.CustomersCount)
	return stats, nil
}

func within(t, from, to time.Time) bool {
	return !t.Before(from) && !t.After(to)
}

func percentageChange(current, previous decimal.Decimal) decimal.Decimal {
	if previous.IsPositive() {
		return current.Sub(previous).Div(previous).Mul(hundred).Round(2)
	}
	if current.IsPositive() {
		return hundred
	}
	return decimal.Zero
}

func share(part, total int) decimal.Decimal {
	if total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(part)).Div(decimal.NewFromInt(int64(total))).Mul(hundred).Round(2)
}
