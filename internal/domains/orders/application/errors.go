package application

import (
	"errors"
	"fmt"

	catalogports "github.com/Apurer/go-gin-backoffice/internal/domains/catalog/ports"
	"github.com/Apurer/go-gin-backoffice/internal/domains/orders/domain"
)

var (
	// ErrInvalidInput signals the request violated an order invariant.
	ErrInvalidInput = errors.New("invalid order input")
	// ErrInvalidState signals the order's current status forbids the operation.
	ErrInvalidState = errors.New("invalid order state")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrInvalidState) {
		return err
	}
	if errors.Is(err, domain.ErrInvalidQuantity) ||
		errors.Is(err, domain.ErrInvalidStatus) ||
		errors.Is(err, domain.ErrInvalidListType) ||
		errors.Is(err, domain.ErrEmptyCart) ||
		errors.Is(err, catalogports.ErrInsufficientStock) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if errors.Is(err, domain.ErrOrderCancelled) || errors.Is(err, domain.ErrOrderCompleted) {
		return fmt.Errorf("%w: %w", ErrInvalidState, err)
	}
	return err
}
