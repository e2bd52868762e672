package catalog_test

import (
	"context"
	"testing"

	"dsikea/core/database"
	"dsikea/feature/catalog"
	"dsikea/feature/catalog/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupCatalog(t *testing.T) (*gorm.DB, *catalog.Service) {
	t.Helper()

	db, err := database.Connect(database.Config{
		Driver: "sqlite",
		Name:   "file:" + t.Name() + "?mode=memory&cache=shared",
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Furniture{}))

	return db, catalog.NewFeature(db, zap.NewNop()).Service()
}

func createRequest(name string, material models.Material, color models.Color) catalog.CreateRequest {
	return catalog.CreateRequest{
		Name:        name,
		Description: name + " test item",
		Material:    material,
		Color:       color,
		Dimensions:  models.Dimensions{Length: 80, Width: 30, Height: 200},
		Price:       decimal.RequireFromString("49.99"),
	}
}

func TestCreateStartsAtZeroStock(t *testing.T) {
	_, svc := setupCatalog(t)

	item, err := svc.Create(context.Background(), createRequest("Billy", models.MaterialWood, models.ColorWhite))
	require.NoError(t, err)
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, 0, item.Quantity)
}

func TestCreateRejectsQuantity(t *testing.T) {
	_, svc := setupCatalog(t)

	req := createRequest("Billy", models.MaterialWood, models.ColorWhite)
	qty := 5
	req.Quantity = &qty

	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, catalog.ErrQuantityReadOnly)
}

func TestCreateRejectsDuplicateTuple(t *testing.T) {
	_, svc := setupCatalog(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, createRequest("Billy", models.MaterialWood, models.ColorWhite))
	require.NoError(t, err)

	_, err = svc.Create(ctx, createRequest("Billy", models.MaterialWood, models.ColorWhite))
	assert.ErrorIs(t, err, catalog.ErrDuplicateTuple)

	// Same name with a different color is a distinct entry.
	_, err = svc.Create(ctx, createRequest("Billy", models.MaterialWood, models.ColorBlack))
	assert.NoError(t, err)
}

func TestCreateValidatesFields(t *testing.T) {
	_, svc := setupCatalog(t)
	ctx := context.Background()

	req := createRequest("", models.MaterialWood, models.ColorWhite)
	_, err := svc.Create(ctx, req)
	assert.ErrorIs(t, err, catalog.ErrInvalidFurniture)

	req = createRequest("Billy", "stone", models.ColorWhite)
	_, err = svc.Create(ctx, req)
	assert.ErrorIs(t, err, catalog.ErrInvalidFurniture)

	req = createRequest("Billy", models.MaterialWood, models.ColorWhite)
	req.Price = decimal.Zero
	_, err = svc.Create(ctx, req)
	assert.ErrorIs(t, err, catalog.ErrInvalidFurniture)
}

func TestUpdatePatchesFields(t *testing.T) {
	_, svc := setupCatalog(t)
	ctx := context.Background()

	item, err := svc.Create(ctx, createRequest("Billy", models.MaterialWood, models.ColorWhite))
	require.NoError(t, err)

	newPrice := decimal.RequireFromString("59.99")
	newName := "Billy XL"
	updated, err := svc.Update(ctx, item.ID, catalog.UpdateRequest{
		Name:  &newName,
		Price: &newPrice,
	})
	require.NoError(t, err)
	assert.Equal(t, "Billy XL", updated.Name)
	assert.True(t, updated.Price.Equal(newPrice))
	// Untouched fields survive the patch.
	assert.Equal(t, models.MaterialWood, updated.Material)
}

func TestUpdateRejectsQuantity(t *testing.T) {
	_, svc := setupCatalog(t)
	ctx := context.Background()

	item, err := svc.Create(ctx, createRequest("Billy", models.MaterialWood, models.ColorWhite))
	require.NoError(t, err)

	qty := 3
	_, err = svc.Update(ctx, item.ID, catalog.UpdateRequest{Quantity: &qty})
	assert.ErrorIs(t, err, catalog.ErrQuantityReadOnly)
}

func TestListFiltersByMaterial(t *testing.T) {
	_, svc := setupCatalog(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, createRequest("Billy", models.MaterialWood, models.ColorWhite))
	require.NoError(t, err)
	_, err = svc.Create(ctx, createRequest("Helmer", models.MaterialMetal, models.ColorRed))
	require.NoError(t, err)

	items, err := svc.List(ctx, map[string]string{"material": "metal"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Helmer", items[0].Name)
}

func TestListRejectsUnknownFilter(t *testing.T) {
	_, svc := setupCatalog(t)

	_, err := svc.List(context.Background(), map[string]string{"price": "49.99"})
	assert.ErrorIs(t, err, catalog.ErrInvalidQuery)
}

func TestDelete(t *testing.T) {
	_, svc := setupCatalog(t)
	ctx := context.Background()

	item, err := svc.Create(ctx, createRequest("Billy", models.MaterialWood, models.ColorWhite))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, item.ID))

	_, err = svc.Get(ctx, item.ID)
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, item.ID), catalog.ErrNotFound)
}
