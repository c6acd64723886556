package catalog

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/commerce-backend/internal/models"
	checkoutservice "github.com/magabrotheeeer/commerce-backend/internal/services/checkout"
	"github.com/magabrotheeeer/commerce-backend/internal/storage"
	"github.com/magabrotheeeer/commerce-backend/internal/storage/filestore"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

func testService(t *testing.T, cache Cache) (*Service, *storage.Guard) {
	t.Helper()
	guard := storage.NewGuard(filestore.New(filepath.Join(t.TempDir(), "state.json")))
	return New(guard, cache, testLogger()), guard
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func floatPtr(v float64) *float64 { return &v }

func createRequest() models.CreateProductRequest {
	return models.CreateProductRequest{
		Name:        "Widget",
		Price:       9.99,
		Category:    "tools",
		OnHand:      intPtr(5),
		Description: "test widget",
	}
}

func TestCreateAndGet(t *testing.T) {
	service, _ := testService(t, nil)

	created, err := service.Create(context.Background(), createRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, 5, created.OnHand)

	got, err := service.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestGetNotFound(t *testing.T) {
	service, _ := testService(t, nil)

	_, err := service.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestListEmptyCatalog(t *testing.T) {
	service, _ := testService(t, nil)

	products, err := service.List(context.Background())
	require.NoError(t, err)
	// Пустой каталог — это пустой список, а не null.
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestUpdatePartial(t *testing.T) {
	service, _ := testService(t, nil)
	created, err := service.Create(context.Background(), createRequest())
	require.NoError(t, err)

	updated, err := service.Update(context.Background(), created.ID, models.UpdateProductRequest{
		Price:  floatPtr(12.50),
		OnHand: intPtr(0),
	})
	require.NoError(t, err)

	assert.Equal(t, 12.50, updated.Price)
	assert.Equal(t, 0, updated.OnHand)
	// Не переданные поля не меняются.
	assert.Equal(t, "Widget", updated.Name)
	assert.Equal(t, "tools", updated.Category)
}

func TestUpdateNotFound(t *testing.T) {
	service, _ := testService(t, nil)

	_, err := service.Update(context.Background(), "missing", models.UpdateProductRequest{
		Name: strPtr("Renamed"),
	})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestDelete(t *testing.T) {
	service, guard := testService(t, nil)
	created, err := service.Create(context.Background(), createRequest())
	require.NoError(t, err)

	require.NoError(t, service.Delete(context.Background(), created.ID))

	snap, err := guard.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap.Products)

	assert.ErrorIs(t, service.Delete(context.Background(), created.ID), ErrProductNotFound)
}

// mapCache — кеш в памяти для тестов, хранит значения в JSON как Redis.
type mapCache struct {
	data        map[string][]byte
	gets        int
	hits        int
	invalidates int
}

func newMapCache() *mapCache {
	return &mapCache{data: make(map[string][]byte)}
}

func (c *mapCache) Get(key string, result any) (bool, error) {
	c.gets++
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	c.hits++
	return true, json.Unmarshal(raw, result)
}

func (c *mapCache) Set(key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = raw
	return nil
}

func (c *mapCache) Invalidate(key string) error {
	c.invalidates++
	delete(c.data, key)
	return nil
}

func TestListUsesCache(t *testing.T) {
	cache := newMapCache()
	service, _ := testService(t, cache)
	_, err := service.Create(context.Background(), createRequest())
	require.NoError(t, err)

	first, err := service.List(context.Background())
	require.NoError(t, err)
	second, err := service.List(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 2, cache.gets)
	assert.Equal(t, 1, cache.hits)
}

func TestMutationsInvalidateCache(t *testing.T) {
	cache := newMapCache()
	service, _ := testService(t, cache)

	created, err := service.Create(context.Background(), createRequest())
	require.NoError(t, err)

	_, err = service.List(context.Background())
	require.NoError(t, err)
	require.Contains(t, cache.data, productsCacheKey)

	_, err = service.Update(context.Background(), created.ID, models.UpdateProductRequest{
		Price: floatPtr(1.00),
	})
	require.NoError(t, err)
	assert.NotContains(t, cache.data, productsCacheKey)

	// Следующий List видит новую цену, а не устаревший кеш.
	products, err := service.List(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, 1.00, products[0].Price)
}

func TestCheckoutInvalidatesListCache(t *testing.T) {
	cache := newMapCache()
	service, guard := testService(t, cache)

	created, err := service.Create(context.Background(), createRequest())
	require.NoError(t, err)

	// Прогреваем кеш списком с полным остатком.
	warm, err := service.List(context.Background())
	require.NoError(t, err)
	require.Len(t, warm, 1)
	require.Equal(t, 5, warm[0].OnHand)

	checkout := checkoutservice.New(guard, nil, service, testLogger())
	_, err = checkout.Checkout(context.Background(), "alice", models.CheckoutRequest{
		Items:       []models.CartItem{{ProductID: created.ID, Quantity: 5}},
		ShipAddress: "1 Main St",
		CreditCard: models.CreditCard{
			Number: "4111111111111111",
			CVV:    "123",
			Expiry: time.Now().AddDate(1, 0, 0).Format("01/06"),
		},
	})
	require.NoError(t, err)

	// Списание остатков сбрасывает кеш: список видит нулевой склад,
	// а не прогретое значение.
	products, err := service.List(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, 0, products[0].OnHand)
}
