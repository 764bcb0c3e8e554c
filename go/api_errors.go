package backofficeserver

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"

	authapp "github.com/Apurer/go-gin-backoffice/internal/domains/auth/application"
	catalogapp "github.com/Apurer/go-gin-backoffice/internal/domains/catalog/application"
	catalogdomain "github.com/Apurer/go-gin-backoffice/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/go-gin-backoffice/internal/domains/catalog/ports"
	customerapp "github.com/Apurer/go-gin-backoffice/internal/domains/customers/application"
	customerdomain "github.com/Apurer/go-gin-backoffice/internal/domains/customers/domain"
	customerports "github.com/Apurer/go-gin-backoffice/internal/domains/customers/ports"
	orderhttpmapper "github.com/Apurer/go-gin-backoffice/internal/domains/orders/adapters/http/mapper"
	ordersapp "github.com/Apurer/go-gin-backoffice/internal/domains/orders/application"
	orderdomain "github.com/Apurer/go-gin-backoffice/internal/domains/orders/domain"
	orderports "github.com/Apurer/go-gin-backoffice/internal/domains/orders/ports"
	apierrors "github.com/Apurer/go-gin-backoffice/internal/shared/errors"
)

// fieldErrors ties domain sentinels to the request field they describe.
var fieldErrors = []struct {
	err   error
	field string
}{
	{orderdomain.ErrEmptyCart, "cart_data"},
	{orderdomain.ErrInvalidQuantity, "quantity"},
	{catalogports.ErrInsufficientStock, "quantity"},
	{orderdomain.ErrInvalidStatus, "status"},
	{orderdomain.ErrInvalidListType, "type"},
	{catalogdomain.ErrEmptyName, "Name"},
	{catalogdomain.ErrNegativePrice, "Price"},
	{catalogdomain.ErrNegativeCost, "Costs"},
	{catalogdomain.ErrNegativeStock, "InStock"},
	{catalogdomain.ErrUnsupportedImage, "Image"},
	{customerdomain.ErrEmptyName, "Name"},
	{customerdomain.ErrInvalidEmail, "Email"},
}

var responder = newResponder(nil)

// SetLogger routes the logs of unhandled errors through logger.
func SetLogger(logger *slog.Logger) {
	responder = newResponder(logger)
}

func newResponder(logger *slog.Logger) *apierrors.ChainedResponder {
	return apierrors.NewChainedResponder(logger,
		mapConflictError,
		mapNotFoundError,
		mapValidationError,
		mapStateError,
		mapAuthError,
	)
}

func mapConflictError(err error) (apierrors.Problem, bool) {
	if errors.Is(err, orderports.ErrIdempotencyConflict) {
		return apierrors.ErrConflict.WithMessage(orderports.ErrIdempotencyConflict.Error()), true
	}
	return apierrors.Problem{}, false
}

func mapNotFoundError(err error) (apierrors.Problem, bool) {
	switch {
	case errors.Is(err, orderports.ErrNotFound),
		errors.Is(err, catalogports.ErrNotFound),
		errors.Is(err, customerports.ErrNotFound):
		return apierrors.ErrNotFound.WithMessage(err.Error()), true
	}
	return apierrors.Problem{}, false
}

func mapValidationError(err error) (apierrors.Problem, bool) {
	if !errors.Is(err, ordersapp.ErrInvalidInput) &&
		!errors.Is(err, catalogapp.ErrInvalidInput) &&
		!errors.Is(err, customerapp.ErrInvalidInput) {
		return apierrors.Problem{}, false
	}
	for _, fe := range fieldErrors {
		if !errors.Is(err, fe.err) {
			continue
		}
		message := fe.err.Error()
		if fe.err == catalogports.ErrInsufficientStock {
			message = err.Error()
		}
		return apierrors.ErrValidation.WithField(fe.field, message), true
	}
	return apierrors.ErrValidation, true
}

func mapStateError(err error) (apierrors.Problem, bool) {
	if errors.Is(err, ordersapp.ErrInvalidState) {
		switch {
		case errors.Is(err, orderdomain.ErrOrderCancelled):
			return apierrors.ErrInvalidState.WithMessage(orderdomain.ErrOrderCancelled.Error()), true
		case errors.Is(err, orderdomain.ErrOrderCompleted):
			return apierrors.ErrInvalidState.WithMessage(orderdomain.ErrOrderCompleted.Error()), true
		}
		return apierrors.ErrInvalidState, true
	}
	return apierrors.Problem{}, false
}

func mapAuthError(err error) (apierrors.Problem, bool) {
	switch {
	case errors.Is(err, authapp.ErrInvalidCredentials):
		return apierrors.ErrBadRequest.WithMessage("Invalid login or password"), true
	case errors.Is(err, authapp.ErrUnauthorized):
		return apierrors.ErrUnauthorized, true
	}
	return apierrors.Problem{}, false
}

func respondProblem(c *gin.Context, problem apierrors.Problem) {
	responder.Respond(c, problem)
}

func respondServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	responder.RespondError(c, err)
}

// respondBindError reports a malformed body or an unreadable request field.
func respondBindError(c *gin.Context, field string, err error) {
	if field == "" {
		respondProblem(c, apierrors.ErrBadRequest.WithMessage("Incorrect fields"))
		return
	}
	respondProblem(c, apierrors.ErrValidation.WithField(field, err.Error()))
}

func badCartError(err error) apierrors.Problem {
	if errors.Is(err, orderhttpmapper.ErrCartMissing) {
		return apierrors.ErrValidation.WithField("cart_data", err.Error())
	}
	return apierrors.ErrValidation.WithField("quantity", err.Error())
}
