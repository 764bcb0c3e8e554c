package application

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/Apurer/go-gin-backoffice/internal/domains/orders/application/types"
)

type normalizedPlaceOrderInput struct {
	CustomerID int64                `json:"customerId"`
	DueDate    string               `json:"dueDate,omitempty"`
	Cart       []normalizedCartItem `json:"cart"`
}

type normalizedCartItem struct {
	ProductKey string `json:"productKey"`
	Quantity   int64  `json:"quantity"`
}

// FingerprintPlaceOrder builds a deterministic hash of the checkout payload (excluding the idempotency key).
func FingerprintPlaceOrder(input types.PlaceOrderInput) (string, error) {
	payload, err := json.Marshal(normalizePlaceOrderInput(input))
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}

func normalizePlaceOrderInput(input types.PlaceOrderInput) normalizedPlaceOrderInput {
	normalized := normalizedPlaceOrderInput{CustomerID: input.CustomerID}
	if input.DueDate != nil {
		normalized.DueDate = input.DueDate.UTC().Format(time.RFC3339Nano)
	}
	cart := make([]normalizedCartItem, 0, len(input.Cart))
	for _, item := range input.Cart {
		cart = append(cart, normalizedCartItem{ProductKey: strings.TrimSpace(item.ProductKey), Quantity: item.Quantity})
	}
	sort.Slice(cart, func(i, j int) bool {
		if cart[i].ProductKey == cart[j].ProductKey {
			return cart[i].Quantity < cart[j].Quantity
		}
		return cart[i].ProductKey < cart[j].ProductKey
	})
	normalized.Cart = cart
	return normalized
}
