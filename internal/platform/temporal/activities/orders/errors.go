package orders

import (
	"errors"

	"go.temporal.io/sdk/temporal"

	catalogports "github.com/Apurer/go-gin-backoffice/internal/domains/catalog/ports"
	customerports "github.com/Apurer/go-gin-backoffice/internal/domains/customers/ports"
	"github.com/Apurer/go-gin-backoffice/internal/domains/orders/application"
	"github.com/Apurer/go-gin-backoffice/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-backoffice/internal/domains/orders/ports"
)

// businessErrors are checkout failures that must not be retried. Type names travel through
// Temporal so the API side can restore the sentinel chain.
var businessErrors = []struct {
	typ   string
	err   error
	class error
}{
	{"orders.EmptyCart", domain.ErrEmptyCart, application.ErrInvalidInput},
	{"orders.InvalidQuantity", domain.ErrInvalidQuantity, application.ErrInvalidInput},
	{"catalog.InsufficientStock", catalogports.ErrInsufficientStock, application.ErrInvalidInput},
	{"catalog.NotFound", catalogports.ErrNotFound, nil},
	{"customers.NotFound", customerports.ErrNotFound, nil},
	{"orders.IdempotencyConflict", ports.ErrIdempotencyConflict, nil},
}

// EncodeError turns business failures into non-retryable application errors. Other errors are
// returned unchanged and retried by the activity retry policy.
func EncodeError(err error) error {
	if err == nil {
		return nil
	}
	for _, b := range businessErrors {
		if errors.Is(err, b.err) {
			return temporal.NewNonRetryableApplicationError(err.Error(), b.typ, nil)
		}
	}
	return err
}

// DecodeError restores the sentinel chain of an error produced by EncodeError.
func DecodeError(err error) error {
	if err == nil {
		return nil
	}
	var appErr *temporal.ApplicationError
	if !errors.As(err, &appErr) {
		return err
	}
	for _, b := range businessErrors {
		if appErr.Type() != b.typ {
			continue
		}
		causes := []error{b.err}
		if b.class != nil {
			causes = append(causes, b.class)
		}
		return &remoteError{msg: appErr.Message(), causes: causes}
	}
	return err
}

type remoteError struct {
	msg    string
	causes []error
}

func (e *remoteError) Error() string   { return e.msg }
func (e *remoteError) Unwrap() []error { return e.causes }
