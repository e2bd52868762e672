package catalog

import (
	"context"
	"fmt"

	"dsikea/feature/catalog/models"

	"gorm.io/gorm"
)

// Ledger owns the stock quantity of every catalog entry. All stock movement
// goes through Adjust, nothing else writes the quantity column.
type Ledger struct {
	db *gorm.DB
}

// NewLedger creates a ledger over the given database handle.
func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// Adjust applies a signed delta to an item's on-hand quantity and returns the
// updated item. The mutation is a single conditional UPDATE guarded by
// "quantity + delta >= 0", so two concurrent sales of the same item cannot
// both pass the sufficiency check and drive the stock negative.
//
// It returns ErrNotFound when the item does not exist and
// ErrInsufficientStock when the guard rejects the decrement.
func (l *Ledger) Adjust(ctx context.Context, id string, delta int) (models.Furniture, error) {
	res := l.db.WithContext(ctx).
		Model(&models.Furniture{}).
		Where("id = ? AND quantity + ? >= 0", id, delta).
		UpdateColumn("quantity", gorm.Expr("quantity + ?", delta))
	if res.Error != nil {
		return models.Furniture{}, fmt.Errorf("failed to adjust stock: %w", res.Error)
	}

	if res.RowsAffected == 0 {
		// The guard matched nothing: either the row is missing or the
		// decrement would go negative. Disambiguate with a read.
		var count int64
		if err := l.db.WithContext(ctx).
			Model(&models.Furniture{}).
			Where("id = ?", id).
			Count(&count).Error; err != nil {
			return models.Furniture{}, fmt.Errorf("failed to check stock row: %w", err)
		}
		if count == 0 {
			return models.Furniture{}, ErrNotFound
		}
		return models.Furniture{}, ErrInsufficientStock
	}

	var item models.Furniture
	if err := l.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return models.Furniture{}, fmt.Errorf("failed to reload adjusted item: %w", err)
	}
	return item, nil
}
