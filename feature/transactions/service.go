package transactions

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"dsikea/feature/transactions/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ListQuery selects which transactions to return. Zero values mean "no
// filter". Start and End are inclusive.
type ListQuery struct {
	DNI   string
	CIF   string
	Start *time.Time
	End   *time.Time
}

// updatableFields are the keys an update patch may carry. Type and price are
// called out separately so the caller gets the precise immutability error.
var updatableFields = map[string]bool{
	"date":      true,
	"customer":  true,
	"provider":  true,
	"furniture": true,
}

// Service handles transaction operations.
type Service struct {
	store     *Store
	builder   *Builder
	reversal  *Reversal
	customers CustomerStore
	providers ProviderStore
	archiver  *Archiver
	logger    *zap.Logger
}

// NewService creates a new transaction service.
func NewService(store *Store, builder *Builder, reversal *Reversal,
	customers CustomerStore, providers ProviderStore, archiver *Archiver, logger *zap.Logger) *Service {
	return &Service{
		store:     store,
		builder:   builder,
		reversal:  reversal,
		customers: customers,
		providers: providers,
		archiver:  archiver,
		logger:    logger,
	}
}

// List returns the transactions matching the query.
func (s *Service) List(ctx context.Context, q ListQuery) ([]models.Transaction, error) {
	switch {
	case q.DNI != "":
		customer, err := s.customers.FindByDNI(ctx, q.DNI)
		if err != nil {
			return nil, mapNotFound(err, ErrCustomerNotFound)
		}
		return s.store.ListByCustomer(ctx, customer.ID)
	case q.CIF != "":
		provider, err := s.providers.FindByCIF(ctx, q.CIF)
		if err != nil {
			return nil, mapNotFound(err, ErrProviderNotFound)
		}
		return s.store.ListByProvider(ctx, provider.ID)
	case q.Start != nil && q.End != nil:
		return s.store.ListByDateRange(ctx, *q.Start, *q.End)
	default:
		return s.store.List(ctx)
	}
}

// Get returns a single transaction by id.
func (s *Service) Get(ctx context.Context, id string) (*models.Transaction, error) {
	return s.store.FindByID(ctx, id)
}

// Create commits a new transaction and archives its snapshot.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*models.Transaction, error) {
	tx, err := s.builder.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	s.archiver.Save(ctx, tx)
	return tx, nil
}

// Update applies a partial patch to a transaction. The type is immutable
// and the price is derived, both are rejected outright. Replacing the
// furniture list reverses the old stock effect, re-resolves and re-prices
// the new lines, restoring the original state if anything fails.
func (s *Service) Update(ctx context.Context, id string, body []byte) (*models.Transaction, error) {
	var patch map[string]json.RawMessage
	if err := json.Unmarshal(body, &patch); err != nil {
		return nil, fmt.Errorf("%w: malformed patch body", ErrInvalidUpdate)
	}

	for key := range patch {
		switch {
		case key == "type":
			return nil, ErrTypeImmutable
		case key == "price" || key == "totalPrice":
			return nil, ErrPriceImmutable
		case !updatableFields[key]:
			return nil, fmt.Errorf("%w: unknown field %q", ErrInvalidUpdate, key)
		}
	}

	tx, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}

	if raw, ok := patch["date"]; ok {
		var date time.Time
		if err := json.Unmarshal(raw, &date); err != nil {
			return nil, fmt.Errorf("%w: malformed date", ErrInvalidUpdate)
		}
		updates["date"] = date
	}

	// A counterparty swap keeps the transaction's type: a sale can point at
	// a different customer, never at a provider, and vice versa.
	if raw, ok := patch["customer"]; ok {
		if tx.Type != models.TypeSale {
			return nil, fmt.Errorf("%w: a purchase references a provider, not a customer", ErrInvalidUpdate)
		}
		var dni string
		if err := json.Unmarshal(raw, &dni); err != nil {
			return nil, fmt.Errorf("%w: malformed customer dni", ErrInvalidUpdate)
		}
		customer, err := s.customers.FindByDNI(ctx, dni)
		if err != nil {
			return nil, mapNotFound(err, ErrCustomerNotFound)
		}
		updates["customer_id"] = customer.ID
	}

	if raw, ok := patch["provider"]; ok {
		if tx.Type != models.TypePurchase {
			return nil, fmt.Errorf("%w: a sale references a customer, not a provider", ErrInvalidUpdate)
		}
		var cif string
		if err := json.Unmarshal(raw, &cif); err != nil {
			return nil, fmt.Errorf("%w: malformed provider cif", ErrInvalidUpdate)
		}
		provider, err := s.providers.FindByCIF(ctx, cif)
		if err != nil {
			return nil, mapNotFound(err, ErrProviderNotFound)
		}
		updates["provider_id"] = provider.ID
	}

	// When the patch replaces the furniture list the scalar updates ride
	// along in the same database transaction, a storage fault then drops
	// the whole patch instead of half of it.
	if raw, ok := patch["furniture"]; ok {
		if err := s.replaceLines(ctx, tx, raw, updates); err != nil {
			return nil, err
		}
	} else if len(updates) > 0 {
		if err := s.store.UpdateFields(ctx, id, updates); err != nil {
			return nil, err
		}
	}

	updated, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.archiver.Save(ctx, updated)
	return updated, nil
}

// replaceLines swaps a transaction's furniture list: reverse the old stock
// effect, resolve the new lines, persist them with the re-derived price and
// any scalar updates from the same patch. Every failure path restores the
// stock state the transaction had before.
func (s *Service) replaceLines(ctx context.Context, tx *models.Transaction, raw json.RawMessage, updates map[string]any) error {
	if err := s.reversal.Reverse(ctx, tx); err != nil {
		return err
	}

	resolved, err := s.builder.ResolveLines(ctx, tx.Type, raw)
	if err != nil {
		if reapplyErr := s.reversal.Reapply(ctx, tx); reapplyErr != nil {
			s.logger.Error("Failed to restore stock after rejected line replacement",
				zap.String("transaction_id", tx.ID), zap.Error(reapplyErr))
		}
		return err
	}

	total := decimal.Zero
	for _, r := range resolved {
		total = total.Add(r.Total())
	}

	if err := s.store.ReplaceLines(ctx, tx.ID, toLines(resolved), total, updates); err != nil {
		s.builder.Rollback(ctx, tx.Type, resolved)
		if reapplyErr := s.reversal.Reapply(ctx, tx); reapplyErr != nil {
			s.logger.Error("Failed to restore stock after storage fault",
				zap.String("transaction_id", tx.ID), zap.Error(reapplyErr))
		}
		return err
	}
	return nil
}

// Delete reverses a transaction's stock effect and removes it. The record
// only disappears once the reversal succeeded.
func (s *Service) Delete(ctx context.Context, id string) error {
	tx, err := s.store.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.reversal.Reverse(ctx, tx); err != nil {
		return err
	}

	if err := s.store.Delete(ctx, id); err != nil {
		// Stock is already reversed, re-apply so the still-existing record
		// stays consistent with the catalog.
		if reapplyErr := s.reversal.Reapply(ctx, tx); reapplyErr != nil {
			s.logger.Error("Failed to restore stock after failed delete",
				zap.String("transaction_id", tx.ID), zap.Error(reapplyErr))
		}
		return err
	}

	s.archiver.Remove(ctx, id)
	s.logger.Info("Transaction deleted", zap.String("id", id))
	return nil
}

// DeleteAll reverses and removes every transaction. It refuses to run
// without the explicit confirmation flag and returns how many transactions
// it removed, stopping at the first failure.
func (s *Service) DeleteAll(ctx context.Context, confirm bool) (int, error) {
	if !confirm {
		return 0, ErrConfirmationRequired
	}

	txs, err := s.store.List(ctx)
	if err != nil {
		return 0, err
	}

	deleted := 0
	for i := range txs {
		if err := s.Delete(ctx, txs[i].ID); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}
