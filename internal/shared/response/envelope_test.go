package response

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, StatusSuccess, StatusLabel(http.StatusOK))
	assert.Equal(t, StatusSuccess, StatusLabel(http.StatusNoContent))
	assert.Equal(t, StatusError, StatusLabel(http.StatusBadRequest))
	assert.Equal(t, StatusError, StatusLabel(http.StatusInternalServerError))
}

func TestEnvelopeAlwaysCarriesEveryKey(t *testing.T) {
	raw, err := json.Marshal(New(http.StatusOK, "", map[string]int{"order_id": 1}, nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"success","message":null,"data":{"order_id":1},"errors":null}`, string(raw))

	raw, err = json.Marshal(New(http.StatusNotFound, "order not found", nil, map[string]string{}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"error","message":"order not found","data":null,"errors":null}`, string(raw))
}
