package catalog_test

import (
	"context"
	"sync"
	"testing"

	"dsikea/core/database"
	"dsikea/feature/catalog"
	"dsikea/feature/catalog/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupLedger(t *testing.T) (*gorm.DB, *catalog.Ledger) {
	t.Helper()

	db, err := database.Connect(database.Config{
		Driver: "sqlite",
		Name:   "file:" + t.Name() + "?mode=memory&cache=shared",
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Furniture{}))

	// SQLite serializes writers anyway, a single connection avoids
	// spurious lock errors under the concurrency test.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	return db, catalog.NewLedger(db)
}

func seedItem(t *testing.T, db *gorm.DB, quantity int) string {
	t.Helper()
	item := models.Furniture{
		Name:        "Billy",
		Description: "bookcase",
		Material:    models.MaterialWood,
		Color:       models.ColorWhite,
		Dimensions:  models.Dimensions{Length: 80, Width: 30, Height: 200},
		Price:       decimal.RequireFromString("49.99"),
		Quantity:    quantity,
	}
	require.NoError(t, db.Create(&item).Error)
	return item.ID
}

func TestAdjustIncrementAndDecrement(t *testing.T) {
	db, ledger := setupLedger(t)
	id := seedItem(t, db, 5)
	ctx := context.Background()

	item, err := ledger.Adjust(ctx, id, 3)
	require.NoError(t, err)
	assert.Equal(t, 8, item.Quantity)

	item, err = ledger.Adjust(ctx, id, -8)
	require.NoError(t, err)
	assert.Equal(t, 0, item.Quantity)
}

func TestAdjustRejectsNegativeStock(t *testing.T) {
	db, ledger := setupLedger(t)
	id := seedItem(t, db, 5)
	ctx := context.Background()

	_, err := ledger.Adjust(ctx, id, -6)
	assert.ErrorIs(t, err, catalog.ErrInsufficientStock)

	// The rejected adjustment must not have touched the row.
	var item models.Furniture
	require.NoError(t, db.First(&item, "id = ?", id).Error)
	assert.Equal(t, 5, item.Quantity)
}

func TestAdjustUnknownItem(t *testing.T) {
	_, ledger := setupLedger(t)

	_, err := ledger.Adjust(context.Background(), "nope", 1)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestAdjustConcurrentDecrements(t *testing.T) {
	db, ledger := setupLedger(t)
	id := seedItem(t, db, 10)
	ctx := context.Background()

	// 20 workers each try to take one unit of a stock of 10. Exactly 10
	// must succeed and the quantity must end at zero, never below.
	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := ledger.Adjust(ctx, id, -1); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, succeeded)

	var item models.Furniture
	require.NoError(t, db.First(&item, "id = ?", id).Error)
	assert.Equal(t, 0, item.Quantity)
}
