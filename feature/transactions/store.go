package transactions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dsikea/feature/transactions/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Store persists committed transactions and their lines.
type Store struct {
	db *gorm.DB
}

// NewStore creates a transaction store over the given database handle.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Create persists a transaction together with its lines.
func (s *Store) Create(ctx context.Context, tx *models.Transaction) error {
	if err := s.db.WithContext(ctx).Create(tx).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// FindByID returns a transaction with its lines loaded.
func (s *Store) FindByID(ctx context.Context, id string) (*models.Transaction, error) {
	var tx models.Transaction
	err := s.db.WithContext(ctx).Preload("Lines").First(&tx, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTransactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}
	return &tx, nil
}

// List returns all transactions, oldest first.
func (s *Store) List(ctx context.Context) ([]models.Transaction, error) {
	return s.list(ctx, s.db.WithContext(ctx))
}

// ListByCustomer returns the transactions referencing the given customer id.
func (s *Store) ListByCustomer(ctx context.Context, customerID string) ([]models.Transaction, error) {
	return s.list(ctx, s.db.WithContext(ctx).Where("customer_id = ?", customerID))
}

// ListByProvider returns the transactions referencing the given provider id.
func (s *Store) ListByProvider(ctx context.Context, providerID string) ([]models.Transaction, error) {
	return s.list(ctx, s.db.WithContext(ctx).Where("provider_id = ?", providerID))
}

// ListByDateRange returns the transactions dated inside [start, end], both
// ends inclusive.
func (s *Store) ListByDateRange(ctx context.Context, start, end time.Time) ([]models.Transaction, error) {
	return s.list(ctx, s.db.WithContext(ctx).Where("date >= ? AND date <= ?", start, end))
}

func (s *Store) list(_ context.Context, q *gorm.DB) ([]models.Transaction, error) {
	var txs []models.Transaction
	if err := q.Preload("Lines").Order("date").Find(&txs).Error; err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txs, nil
}

// UpdateFields applies column updates to the transaction record itself
// (date, counterparty reference). Lines go through ReplaceLines.
func (s *Store) UpdateFields(ctx context.Context, id string, updates map[string]any) error {
	res := s.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("failed to update transaction: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

// ReplaceLines swaps a transaction's line set and derived total in one
// database transaction. Extra column updates from the same patch (date,
// counterparty reference) are applied alongside so a storage fault cannot
// persist half the patch.
func (s *Store) ReplaceLines(ctx context.Context, id string, lines []models.TransactionLine, total decimal.Decimal, updates map[string]any) error {
	return s.db.WithContext(ctx).Transaction(func(dbtx *gorm.DB) error {
		if err := dbtx.Delete(&models.TransactionLine{}, "transaction_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to drop old lines: %w", err)
		}
		for i := range lines {
			lines[i].ID = 0
			lines[i].TransactionID = id
		}
		if len(lines) > 0 {
			if err := dbtx.Create(&lines).Error; err != nil {
				return fmt.Errorf("failed to insert new lines: %w", err)
			}
		}
		fields := map[string]any{"total_price": total}
		for key, value := range updates {
			fields[key] = value
		}
		res := dbtx.Model(&models.Transaction{}).
			Where("id = ?", id).
			Updates(fields)
		if res.Error != nil {
			return fmt.Errorf("failed to update transaction: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrTransactionNotFound
		}
		return nil
	})
}

// Delete removes a transaction and its lines.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(dbtx *gorm.DB) error {
		if err := dbtx.Delete(&models.TransactionLine{}, "transaction_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete lines: %w", err)
		}
		res := dbtx.Delete(&models.Transaction{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete transaction: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrTransactionNotFound
		}
		return nil
	})
}
