package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errMissing = errors.New("thing missing")

func serve(t *testing.T, handler gin.HandlerFunc) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/", handler)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestRespondWritesEnvelope(t *testing.T) {
	rec, body := serve(t, func(c *gin.Context) {
		Respond(c, ErrValidation.WithField("quantity", "must be positive"))
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, "Incorrect fields", body["message"])
	assert.Nil(t, body["data"])
	assert.Equal(t, map[string]any{"quantity": "must be positive"}, body["errors"])
}

func TestRespondErrorHidesUnknownErrors(t *testing.T) {
	rec, body := serve(t, func(c *gin.Context) {
		RespondError(c, errors.New("pq: connection refused"))
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", body["message"])
	assert.Nil(t, body["errors"])
}

func TestRespondErrorUnwrapsProblem(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", ErrConflict.WithMessage("idempotency key reused"))
	rec, body := serve(t, func(c *gin.Context) { RespondError(c, wrapped) })

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "idempotency key reused", body["message"])
	assert.Equal(t, http.StatusConflict, HTTPStatusFromError(wrapped))
}

func TestChainedResponderUsesMappers(t *testing.T) {
	responder := NewChainedResponder(nil, func(err error) (Problem, bool) {
		if errors.Is(err, errMissing) {
			return NewNotFoundProblem("thing", 7), true
		}
		return Problem{}, false
	})

	rec, body := serve(t, func(c *gin.Context) {
		responder.RespondError(c, fmt.Errorf("lookup: %w", errMissing))
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "thing '7' not found", body["message"])

	rec, _ = serve(t, func(c *gin.Context) { responder.RespondError(c, errors.New("boom")) })
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestUnauthorizedIsForbidden(t *testing.T) {
	assert.Equal(t, http.StatusForbidden, ErrUnauthorized.Status)
	assert.Equal(t, "Unauthorized", ErrUnauthorized.Message)
}

func TestWithFieldDoesNotShareMaps(t *testing.T) {
	base := ErrValidation.WithField("a", "1")
	derived := base.WithField("b", "2")

	assert.Len(t, base.Fields, 1)
	assert.Len(t, derived.Fields, 2)
	assert.Empty(t, ErrValidation.Fields)
}
