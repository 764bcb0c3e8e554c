package application

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	catalogdomain "github.com/Apurer/go-gin-backoffice/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/go-gin-backoffice/internal/domains/catalog/ports"
	customerports "github.com/Apurer/go-gin-backoffice/internal/domains/customers/ports"
	"github.com/Apurer/go-gin-backoffice/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-backoffice/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-backoffice/internal/domains/orders/ports"
)

// errReplayed aborts a unit of work whose idempotency key was committed concurrently by an identical request.
var errReplayed = errors.New("idempotent request already committed")

// Service runs the order workflow: checkout, status transitions, cancellation and queries.
type Service struct {
	uow    ports.UnitOfWork
	reader ports.Stores
}

// NewService wires the order workflow. Mutations go through uow; reads use the plain stores.
func NewService(uow ports.UnitOfWork, reader ports.Stores) *Service {
	return &Service{uow: uow, reader: reader}
}

// PlaceOrder validates the cart, snapshots prices, decrements stock and persists the order atomically.
func (s *Service) PlaceOrder(ctx context.Context, input types.PlaceOrderInput) (int64, error) {
	key := strings.TrimSpace(input.IdempotencyKey)
	fingerprint := ""
	if key != "" {
		var err error
		if fingerprint, err = FingerprintPlaceOrder(input); err != nil {
			return 0, err
		}
	}

	var orderID int64
	err := s.uow.Do(ctx, func(ctx context.Context, stores ports.Stores) error {
		if key != "" {
			existing, err := stores.Idempotency.Get(ctx, key)
			if err != nil {
				return err
			}
			if existing != nil {
				if existing.RequestHash != fingerprint {
					return ports.ErrIdempotencyConflict
				}
				orderID = existing.OrderID
				return nil
			}
		}

		id, err := checkout(ctx, stores, input)
		if err != nil {
			return err
		}

		if key != "" {
			saved, err := stores.Idempotency.Save(ctx, ports.IdempotencyRecord{Key: key, RequestHash: fingerprint, OrderID: id})
			if err != nil {
				if errors.Is(err, ports.ErrIdempotencyConflict) && saved != nil && saved.RequestHash == fingerprint {
					orderID = saved.OrderID
					return errReplayed
				}
				return err
			}
		}
		orderID = id
		return nil
	})
	if errors.Is(err, errReplayed) {
		return orderID, nil
	}
	if err != nil {
		return 0, mapError(err)
	}
	return orderID, nil
}

// UpdateStatus moves an order between in_progress, packed and completed.
func (s *Service) UpdateStatus(ctx context.Context, input types.UpdateStatusInput) (*domain.Order, error) {
	var updated *domain.Order
	err := s.uow.Do(ctx, func(ctx context.Context, stores ports.Stores) error {
		order, err := stores.Orders.GetByID(ctx, input.OrderID)
		if err != nil {
			return err
		}
		if order.Status == domain.StatusCancelled {
			return domain.ErrOrderCancelled
		}
		status, err := domain.ParseStatus(input.Status)
		if err != nil {
			return err
		}
		if err := order.ChangeStatus(status); err != nil {
			return err
		}
		if err := stores.Orders.UpdateStatus(ctx, order.ID, order.Status); err != nil {
			return err
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, mapError(err)
	}
	return updated, nil
}

// CancelOrder cancels an in-progress or packed order and returns its quantities to stock.
func (s *Service) CancelOrder(ctx context.Context, id int64) (*domain.Order, error) {
	var cancelled *domain.Order
	err := s.uow.Do(ctx, func(ctx context.Context, stores ports.Stores) error {
		order, err := stores.Orders.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := order.Cancel(); err != nil {
			return err
		}
		for _, line := range order.Lines {
			if line.ProductID == nil {
				continue
			}
			if _, err := stores.Products.AdjustStock(ctx, *line.ProductID, line.Quantity); err != nil {
				if errors.Is(err, catalogports.ErrNotFound) {
					continue
				}
				return err
			}
		}
		if err := stores.Orders.UpdateStatus(ctx, order.ID, order.Status); err != nil {
			return err
		}
		cancelled = order
		return nil
	})
	if err != nil {
		return nil, mapError(err)
	}
	return cancelled, nil
}

// ListOrders returns orders matching the list type in creation order.
func (s *Service) ListOrders(ctx context.Context, listType string) ([]*domain.Order, error) {
	t, err := domain.ParseListType(listType)
	if err != nil {
		return nil, mapError(err)
	}
	return s.reader.Orders.List(ctx, ports.ListFilter{Statuses: t.Statuses()})
}

// GetOrder loads an order with its customer and line products resolved.
func (s *Service) GetOrder(ctx context.Context, id int64) (*types.OrderDetail, error) {
	order, err := s.reader.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := &types.OrderDetail{Order: order, Lines: make([]types.LineDetail, 0, len(order.Lines))}
	if order.CustomerID != nil {
		customer, err := s.reader.Customers.GetByID(ctx, *order.CustomerID)
		switch {
		case err == nil:
			detail.Customer = customer
		case errors.Is(err, customerports.ErrNotFound):
			order.CustomerID = nil
		default:
			return nil, err
		}
	}
	for _, line := range order.Lines {
		entry := types.LineDetail{Line: line}
		if line.ProductID != nil {
			product, err := s.reader.Products.GetByID(ctx, *line.ProductID)
			switch {
			case err == nil:
				entry.Product = product
			case errors.Is(err, catalogports.ErrNotFound):
				entry.ProductID = nil
			default:
				return nil, err
			}
		}
		detail.Lines = append(detail.Lines, entry)
	}
	return detail, nil
}

type cartEntry struct {
	productID int64
	key       string
	quantity  int64
}

func checkout(ctx context.Context, stores ports.Stores, input types.PlaceOrderInput) (int64, error) {
	if _, err := stores.Customers.GetByID(ctx, input.CustomerID); err != nil {
		return 0, err
	}
	entries, err := normalizeCart(input.Cart)
	if err != nil {
		return 0, err
	}
	order := domain.NewOrder(input.CustomerID, input.DueDate)
	for _, entry := range entries {
		product, err := stores.Products.GetByID(ctx, entry.productID)
		if err != nil {
			if errors.Is(err, catalogports.ErrNotFound) {
				return 0, fmt.Errorf("%w: %s", catalogports.ErrNotFound, entry.key)
			}
			return 0, err
		}
		if err := order.AddLine(product.ID, entry.quantity, product.Price, product.Cost); err != nil {
			return 0, err
		}
		if _, err := stores.Products.AdjustStock(ctx, product.ID, -entry.quantity); err != nil {
			if errors.Is(err, catalogports.ErrInsufficientStock) {
				return 0, insufficientStock(product, entry.quantity)
			}
			return 0, err
		}
	}
	saved, err := stores.Orders.Create(ctx, order)
	if err != nil {
		return 0, err
	}
	return saved.ID, nil
}

// normalizeCart parses product keys, merges duplicates and sorts entries by product id so
// concurrent checkouts lock rows in the same order.
func normalizeCart(items []types.CartItem) ([]cartEntry, error) {
	if len(items) == 0 {
		return nil, domain.ErrEmptyCart
	}
	merged := make(map[int64]*cartEntry, len(items))
	for _, item := range items {
		key := strings.TrimSpace(item.ProductKey)
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("%w: %s", catalogports.ErrNotFound, item.ProductKey)
		}
		if item.Quantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
		if existing, ok := merged[id]; ok {
			existing.quantity += item.Quantity
			continue
		}
		merged[id] = &cartEntry{productID: id, key: key, quantity: item.Quantity}
	}
	entries := make([]cartEntry, 0, len(merged))
	for _, entry := range merged {
		entries = append(entries, *entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].productID < entries[j].productID })
	return entries, nil
}

func insufficientStock(product *catalogdomain.Product, requested int64) error {
	return fmt.Errorf("%w: product %d has %d, requested %d", catalogports.ErrInsufficientStock, product.ID, product.InStock, requested)
}

var _ ports.Service = (*Service)(nil)
