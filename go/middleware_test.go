package backofficeserver

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	s := newTestServer(t)
	s.token = ""

	rec, env := s.do(http.MethodPost, "/api/v1/auth/login/", LoginRequest{Login: testLogin, Password: testPassword})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "success", env.Status)
	token := decodeData[TokenResponse](t, env).Token
	require.NotEmpty(t, token)

	s.token = token
	rec, _ = s.do(http.MethodGet, "/api/v1/products/get_products/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	s := newTestServer(t)
	s.token = ""

	for _, body := range []any{
		LoginRequest{Login: testLogin, Password: "wrong"},
		LoginRequest{Login: "ghost", Password: testPassword},
		LoginRequest{Login: testLogin},
	} {
		rec, env := s.do(http.MethodPost, "/api/v1/auth/login/", body)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid login or password", message(env))
		assert.Equal(t, "error", env.Status)
	}
}

func TestRequireTokenRejectsBeforeHandler(t *testing.T) {
	s := newTestServer(t)
	product := s.seedProduct("Lamp", "1.00", "0.50", 3)

	for name, header := range map[string]string{
		"missing":   "",
		"malformed": "Bearer not-a-jwt",
		"scheme":    "Token " + s.token,
	} {
		t.Run(name, func(t *testing.T) {
			s.token = ""
			rec, env := s.do(http.MethodDelete, "/api/v1/products/delete_product/", map[string]any{"product_id": product}, "Authorization", header)
			require.Equal(t, http.StatusForbidden, rec.Code)
			assert.Equal(t, "Unauthorized", message(env))
		})
	}
	assert.Equal(t, int64(3), s.stock(product))
}

func TestRequestIDIsPropagated(t *testing.T) {
	s := newTestServer(t)

	rec, _ := s.do(http.MethodGet, "/healthz", nil, RequestIDHeader, "req-123")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "req-123", rec.Header().Get(RequestIDHeader))

	rec, _ = s.do(http.MethodGet, "/healthz", nil)
	assert.Len(t, rec.Header().Get(RequestIDHeader), 36)
}
