//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "backoffice-api"
	ConsumerName = "backoffice-console"

	StateProductExists  = "product 1 exists with 10 units in stock"
	StateProductMissing = "no product with id 404"
	StateCheckoutReady  = "customer 1 and product 1 exist"
	StateOrdersBaseline = "no orders exist"
)

const (
	ExistingProductID  int64 = 1
	MissingProductID   int64 = 404
	ExistingCustomerID int64 = 1

	// AccessToken is the bearer token the provider accepts during verification.
	AccessToken = "pact-access-token"
)

const (
	ExampleProductName  = "Pact Mug"
	ExampleProductPrice = "12.50"
	ExampleProductCosts = "4.00"
	ExampleCustomerName = "Pact Customer"
	ExampleStock        = 10
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the console consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleProductPayload is the product the provider seeds for StateProductExists.
func ExampleProductPayload() map[string]any {
	return map[string]any{
		"id":          ExistingProductID,
		"Name":        ExampleProductName,
		"Price":       ExampleProductPrice,
		"Costs":       ExampleProductCosts,
		"Description": "",
		"ImageURL":    "",
		"InStock":     ExampleStock,
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
