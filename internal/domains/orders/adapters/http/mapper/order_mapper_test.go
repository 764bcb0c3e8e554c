package mapper

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogdomain "github.com/Apurer/go-gin-backoffice/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-backoffice/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-backoffice/internal/domains/orders/domain"
)

func TestToCartParsesQuantities(t *testing.T) {
	cart, err := ToCart(map[string]json.RawMessage{
		"2": json.RawMessage(`"3"`),
		"1": json.RawMessage(`4`),
	})
	require.NoError(t, err)
	assert.Equal(t, []types.CartItem{{ProductKey: "1", Quantity: 4}, {ProductKey: "2", Quantity: 3}}, cart)
}

func TestToCartRejectsNonIntegers(t *testing.T) {
	for _, raw := range []string{`1.5`, `"two"`, `null`, `true`, `[1]`} {
		_, err := ToCart(map[string]json.RawMessage{"1": json.RawMessage(raw)})
		assert.ErrorIs(t, err, ErrQuantityNotInteger, raw)
	}
	_, err := ToCart(nil)
	assert.ErrorIs(t, err, ErrCartMissing)
}

func TestParseDueDate(t *testing.T) {
	got, err := ParseDueDate("2024-06-12T10:00:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 12, 8, 0, 0, 0, time.UTC), *got)

	got, err = ParseDueDate("2024-06-12")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC), *got)

	got, err = ParseDueDate(" ")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = ParseDueDate("12/06/2024")
	assert.ErrorIs(t, err, ErrDueDateFormat)
}

func TestFromOrderDetailKeepsSnapshots(t *testing.T) {
	order := domain.NewOrder(5, nil)
	require.NoError(t, order.AddLine(1, 2, decimal.RequireFromString("10"), decimal.RequireFromString("4")))
	require.NoError(t, order.AddLine(2, 1, decimal.RequireFromString("3.5"), decimal.RequireFromString("1")))
	current := &catalogdomain.Product{ID: 1, Name: "Keyboard", Price: decimal.RequireFromString("99")}

	detail := FromOrderDetail(&types.OrderDetail{
		Order: order,
		Lines: []types.LineDetail{
			{Line: order.Lines[0], Product: current},
			{Line: order.Lines[1]},
		},
	})

	require.NotNil(t, detail)
	assert.Nil(t, detail.Customer)
	assert.Equal(t, "23.50", detail.OrderTotal)
	assert.Equal(t, "9.00", detail.OrderCosts)
	require.Len(t, detail.OrderItems, 2)
	assert.Equal(t, "10.00", detail.OrderItems[0].Price)
	assert.Equal(t, "99.00", detail.OrderItems[0].Product.Price)
	assert.Nil(t, detail.OrderItems[1].Product)

	summary := FromDomainOrder(order)
	require.NotNil(t, summary.Customer)
	assert.Equal(t, int64(5), *summary.Customer)
	assert.Equal(t, "in_progress", summary.OrderStatus)
}
