package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusPacked     Status = "packed"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	ErrInvalidStatus   = errors.New("status must be one of completed, packed, in_progress")
	ErrInvalidListType = errors.New("type must be one of all, active, packed, completed, cancelled")
	ErrEmptyCart       = errors.New("cart must contain at least one product")
	ErrOrderCancelled  = errors.New("order is cancelled")
	ErrOrderCompleted  = errors.New("order is completed")
)

// Line is a single product entry of an order. Price and Cost are snapshots taken at checkout.
type Line struct {
	ID        int64
	ProductID *int64
	Quantity  int64
	Price     decimal.Decimal
	Cost      decimal.Decimal
}

// Subtotal returns quantity times the price snapshot.
func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(l.Quantity))
}

// CostTotal returns quantity times the cost snapshot.
func (l Line) CostTotal() decimal.Decimal {
	return l.Cost.Mul(decimal.NewFromInt(l.Quantity))
}

// Order aggregates the lines placed by a customer in one checkout.
type Order struct {
	ID         int64
	CustomerID *int64
	OrderDate  time.Time
	DueDate    *time.Time
	Status     Status
	Total      decimal.Decimal
	Costs      decimal.Decimal
	Lines      []Line
	UpdatedAt  time.Time
}

// NewOrder starts an order in progress with zero totals.
func NewOrder(customerID int64, dueDate *time.Time) *Order {
	id := customerID
	return &Order{
		CustomerID: &id,
		DueDate:    dueDate,
		Status:     StatusInProgress,
		Total:      decimal.Zero,
		Costs:      decimal.Zero,
	}
}

// AddLine appends a line and accumulates its subtotal and cost into the order totals.
func (o *Order) AddLine(productID, quantity int64, price, cost decimal.Decimal) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	pid := productID
	line := Line{ProductID: &pid, Quantity: quantity, Price: price, Cost: cost}
	o.Lines = append(o.Lines, line)
	o.Total = o.Total.Add(line.Subtotal())
	o.Costs = o.Costs.Add(line.CostTotal())
	return nil
}

// ChangeStatus moves an order between the non-terminal states and completed.
// Cancelled orders are frozen.
func (o *Order) ChangeStatus(status Status) error {
	if o.Status == StatusCancelled {
		return ErrOrderCancelled
	}
	switch status {
	case StatusInProgress, StatusPacked, StatusCompleted:
		o.Status = status
		return nil
	default:
		return ErrInvalidStatus
	}
}

// Cancel marks the order cancelled. Only in-progress or packed orders qualify.
func (o *Order) Cancel() error {
	switch o.Status {
	case StatusInProgress, StatusPacked:
		o.Status = StatusCancelled
		return nil
	case StatusCompleted:
		return ErrOrderCompleted
	default:
		return ErrOrderCancelled
	}
}

// Profit returns total minus costs.
func (o *Order) Profit() decimal.Decimal {
	return o.Total.Sub(o.Costs)
}

// ParseStatus accepts the tokens clients may set through a status update.
func ParseStatus(token string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(token))) {
	case StatusInProgress:
		return StatusInProgress, nil
	case StatusPacked:
		return StatusPacked, nil
	case StatusCompleted:
		return StatusCompleted, nil
	default:
		return "", ErrInvalidStatus
	}
}

// ListType selects which orders a listing returns.
type ListType string

const (
	ListAll       ListType = "all"
	ListActive    ListType = "active"
	ListPacked    ListType = "packed"
	ListCompleted ListType = "completed"
	ListCancelled ListType = "cancelled"
)

// ParseListType validates a listing token.
func ParseListType(token string) (ListType, error) {
	t := ListType(strings.ToLower(strings.TrimSpace(token)))
	switch t {
	case ListAll, ListActive, ListPacked, ListCompleted, ListCancelled:
		return t, nil
	default:
		return "", ErrInvalidListType
	}
}

// Statuses returns the order statuses covered by the list type. "all" excludes cancelled orders.
func (t ListType) Statuses() []Status {
	switch t {
	case ListAll:
		return []Status{StatusInProgress, StatusPacked, StatusCompleted}
	case ListActive:
		return []Status{StatusInProgress}
	case ListPacked:
		return []Status{StatusPacked}
	case ListCompleted:
		return []Status{StatusCompleted}
	case ListCancelled:
		return []Status{StatusCancelled}
	default:
		return nil
	}
}
