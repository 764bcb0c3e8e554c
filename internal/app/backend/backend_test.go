package backend

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogdomain "github.com/Apurer/go-gin-backoffice/internal/domains/catalog/domain"
	orderports "github.com/Apurer/go-gin-backoffice/internal/domains/orders/ports"
)

func TestBuildWithoutDSNUsesMemory(t *testing.T) {
	repos, cleanup, err := Build(context.Background(), Options{}, nil)
	require.NoError(t, err)
	defer cleanup()

	assert.False(t, repos.Durable)
	require.NotNil(t, repos.UnitOfWork)
	require.NotNil(t, repos.Reader.Products)
}

func TestMemoryStoresAreShared(t *testing.T) {
	ctx := context.Background()
	repos := Memory()
	product, err := catalogdomain.NewProduct("Mug", decimal.NewFromInt(3), decimal.NewFromInt(1), 2)
	require.NoError(t, err)
	saved, err := repos.Products.Save(ctx, product)
	require.NoError(t, err)

	err = repos.UnitOfWork.Do(ctx, func(ctx context.Context, stores orderports.Stores) error {
		_, err := stores.Products.AdjustStock(ctx, saved.ID, -2)
		return err
	})
	require.NoError(t, err)

	got, err := repos.Reader.Products.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.InStock)
}
