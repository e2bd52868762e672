package audit

import (
	"context"
	"fmt"

	"dsikea/core/database"
	catalogmodels "dsikea/feature/catalog/models"
	txmodels "dsikea/feature/transactions/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Violation describes one inconsistency the audit found.
type Violation struct {
	Kind   string `json:"kind"`
	Entity string `json:"entity"`
	ID     string `json:"id"`
	Detail string `json:"detail"`
}

// Report summarizes one audit run.
type Report struct {
	Checked    int         `json:"checked"`
	Violations []Violation `json:"violations"`
}

// OK reports whether the run found no inconsistencies.
func (r Report) OK() bool {
	return len(r.Violations) == 0
}

// Service re-checks the invariants the write paths are supposed to hold:
// stock never negative, stored totals equal to what the lines imply, and
// every transaction linked to the counterparty its type requires.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new audit service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// CheckSchema verifies the audited tables carry the columns the scan reads.
// It guards against running the audit against a half-migrated database.
func (s *Service) CheckSchema(ctx context.Context) error {
	expectations := map[string][]string{
		catalogmodels.Furniture{}.TableName(): {"id", "name", "quantity"},
		txmodels.Transaction{}.TableName():    {"id", "type", "customer_id", "provider_id", "total_price"},
	}
	for table, columns := range expectations {
		missing, err := database.HasColumns(s.db.WithContext(ctx), table, columns)
		if err != nil {
			return err
		}
		if len(missing) > 0 {
			return fmt.Errorf("table %s is missing columns %v, run migrate first", table, missing)
		}
	}
	return nil
}

// Run scans the catalog and the transaction log and returns the report.
func (s *Service) Run(ctx context.Context) (*Report, error) {
	if err := s.CheckSchema(ctx); err != nil {
		return nil, err
	}

	report := &Report{}

	if err := s.scanFurniture(ctx, report); err != nil {
		return nil, err
	}
	if err := s.scanTransactions(ctx, report); err != nil {
		return nil, err
	}

	s.logger.Info("Audit completed",
		zap.Int("checked", report.Checked),
		zap.Int("violations", len(report.Violations)),
	)
	return report, nil
}

func (s *Service) scanFurniture(ctx context.Context, report *Report) error {
	var items []catalogmodels.Furniture
	if err := s.db.WithContext(ctx).Find(&items).Error; err != nil {
		return fmt.Errorf("failed to scan furniture: %w", err)
	}

	for _, item := range items {
		report.Checked++
		if item.Quantity < 0 {
			report.Violations = append(report.Violations, Violation{
				Kind:   "negative_stock",
				Entity: "furniture",
				ID:     item.ID,
				Detail: fmt.Sprintf("%s has quantity %d", item.Name, item.Quantity),
			})
		}
	}
	return nil
}

func (s *Service) scanTransactions(ctx context.Context, report *Report) error {
	var txs []txmodels.Transaction
	if err := s.db.WithContext(ctx).Preload("Lines").Find(&txs).Error; err != nil {
		return fmt.Errorf("failed to scan transactions: %w", err)
	}

	for _, tx := range txs {
		report.Checked++

		if !tx.TotalPrice.Equal(tx.LinesTotal()) {
			report.Violations = append(report.Violations, Violation{
				Kind:   "price_mismatch",
				Entity: "transaction",
				ID:     tx.ID,
				Detail: fmt.Sprintf("stored total %s, lines imply %s", tx.TotalPrice, tx.LinesTotal()),
			})
		}

		switch tx.Type {
		case txmodels.TypeSale:
			if tx.CustomerID == nil || tx.ProviderID != nil {
				report.Violations = append(report.Violations, Violation{
					Kind:   "counterparty_mismatch",
					Entity: "transaction",
					ID:     tx.ID,
					Detail: "sale must reference exactly one customer",
				})
			}
		case txmodels.TypePurchase:
			if tx.ProviderID == nil || tx.CustomerID != nil {
				report.Violations = append(report.Violations, Violation{
					Kind:   "counterparty_mismatch",
					Entity: "transaction",
					ID:     tx.ID,
					Detail: "purchase must reference exactly one provider",
				})
			}
		default:
			report.Violations = append(report.Violations, Violation{
				Kind:   "invalid_type",
				Entity: "transaction",
				ID:     tx.ID,
				Detail: fmt.Sprintf("unknown type %q", tx.Type),
			})
		}
	}
	return nil
}
