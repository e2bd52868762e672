package transactions

import (
	"context"
	"errors"
	"fmt"

	"dsikea/feature/catalog"
	"dsikea/feature/transactions/models"

	"go.uber.org/zap"
)

// Reversal undoes a committed transaction's stock effects: a sale's
// decrements come back, a purchase's increments go away. Deletes run it
// before removing the record, updates run it before re-resolving a new
// furniture list.
type Reversal struct {
	ledger StockLedger
	logger *zap.Logger
}

// NewReversal creates a reversal engine over the given ledger.
func NewReversal(ledger StockLedger, logger *zap.Logger) *Reversal {
	return &Reversal{ledger: ledger, logger: logger}
}

// Reverse undoes the stock effect of every line. If a line fails midway
// (a purchase reversal can hit insufficient stock when the units were
// already sold on) the lines reversed so far are re-applied, leaving stock
// exactly as found.
func (r *Reversal) Reverse(ctx context.Context, tx *models.Transaction) error {
	return r.adjust(ctx, tx, true)
}

// Reapply re-applies the stock effect of every line. The update path uses
// it to restore the original state when re-resolving a new line set fails.
func (r *Reversal) Reapply(ctx context.Context, tx *models.Transaction) error {
	return r.adjust(ctx, tx, false)
}

func (r *Reversal) adjust(ctx context.Context, tx *models.Transaction, undo bool) error {
	// A sale committed with negative deltas, a purchase with positive ones.
	sign := 1
	if tx.Type == models.TypeSale {
		sign = -1
	}
	if undo {
		sign = -sign
	}

	for i, line := range tx.Lines {
		if _, err := r.ledger.Adjust(ctx, line.FurnitureID, sign*line.Quantity); err != nil {
			// Put back what this loop already moved, newest first.
			for j := i - 1; j >= 0; j-- {
				prev := tx.Lines[j]
				if _, undoErr := r.ledger.Adjust(ctx, prev.FurnitureID, -sign*prev.Quantity); undoErr != nil {
					r.logger.Error("Failed to restore stock after partial reversal",
						zap.String("transaction_id", tx.ID),
						zap.String("furniture_id", prev.FurnitureID),
						zap.Error(undoErr))
				}
			}
			if errors.Is(err, catalog.ErrInsufficientStock) {
				return fmt.Errorf("%w: cannot reverse purchase, units already sold", ErrInsufficientStock)
			}
			return err
		}
	}
	return nil
}
