package transactions

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"dsikea/feature/transactions/models"

	"go.uber.org/zap"
)

// CreateRequest is the payload for committing a transaction. The furniture
// array is kept raw because its shape depends on the type: sale lines carry
// the lookup tuple, purchase lines carry the full item description.
type CreateRequest struct {
	Type      models.TransactionType `json:"type"`
	DNI       string                 `json:"dni,omitempty"`
	CIF       string                 `json:"cif,omitempty"`
	Furniture json.RawMessage        `json:"furniture"`
}

// Builder orchestrates the commit of one transaction: counterparty
// resolution, in-order line resolution, price derivation and persistence.
// Line resolution is all-or-nothing: the first failing line rolls back every
// stock delta the batch already applied, so a rejected request never leaves
// partial stock mutation behind.
type Builder struct {
	resolver  *Resolver
	furniture FurnitureStore
	ledger    StockLedger
	customers CustomerStore
	providers ProviderStore
	store     *Store
	logger    *zap.Logger
}

// NewBuilder creates a builder over the given collaborators.
func NewBuilder(resolver *Resolver, furniture FurnitureStore, ledger StockLedger,
	customers CustomerStore, providers ProviderStore, store *Store, logger *zap.Logger) *Builder {
	return &Builder{
		resolver:  resolver,
		furniture: furniture,
		ledger:    ledger,
		customers: customers,
		providers: providers,
		store:     store,
		logger:    logger,
	}
}

// Create commits a new transaction or returns the first failure without
// persisting anything.
func (b *Builder) Create(ctx context.Context, req CreateRequest) (*models.Transaction, error) {
	if !req.Type.IsValid() {
		return nil, ErrInvalidType
	}

	customerID, providerID, err := b.resolveCounterparty(ctx, req.Type, req.DNI, req.CIF)
	if err != nil {
		return nil, err
	}

	resolved, err := b.resolveLines(ctx, req.Type, req.Furniture)
	if err != nil {
		return nil, err
	}

	tx := models.Transaction{
		Type:       req.Type,
		CustomerID: customerID,
		ProviderID: providerID,
		Lines:      toLines(resolved),
		Date:       time.Now().UTC(),
	}
	tx.TotalPrice = tx.LinesTotal()

	if err := b.store.Create(ctx, &tx); err != nil {
		// The stock deltas are already applied, take them back out so a
		// storage fault does not leave phantom stock movement.
		b.rollback(ctx, req.Type, resolved)
		return nil, err
	}

	b.logger.Info("Transaction committed",
		zap.String("id", tx.ID),
		zap.String("type", string(tx.Type)),
		zap.Int("lines", len(tx.Lines)),
		zap.String("price", tx.TotalPrice.String()),
	)
	return &tx, nil
}

// ResolveLines resolves a furniture array for the given type with the same
// all-or-nothing semantics as Create. The update path uses it to re-derive
// a transaction's line set.
func (b *Builder) ResolveLines(ctx context.Context, typ models.TransactionType, raw json.RawMessage) ([]ResolvedLine, error) {
	return b.resolveLines(ctx, typ, raw)
}

// Rollback takes back the stock effects of a resolved batch.
func (b *Builder) Rollback(ctx context.Context, typ models.TransactionType, resolved []ResolvedLine) {
	b.rollback(ctx, typ, resolved)
}

func (b *Builder) resolveCounterparty(ctx context.Context, typ models.TransactionType, dni, cif string) (customerID, providerID *string, err error) {
	switch typ {
	case models.TypeSale:
		if dni == "" {
			return nil, nil, fmt.Errorf("%w: sale requires a customer dni", ErrMissingCounterparty)
		}
		customer, err := b.customers.FindByDNI(ctx, dni)
		if err != nil {
			return nil, nil, mapNotFound(err, ErrCustomerNotFound)
		}
		return &customer.ID, nil, nil
	default:
		if cif == "" {
			return nil, nil, fmt.Errorf("%w: purchase requires a provider cif", ErrMissingCounterparty)
		}
		provider, err := b.providers.FindByCIF(ctx, cif)
		if err != nil {
			return nil, nil, mapNotFound(err, ErrProviderNotFound)
		}
		return nil, &provider.ID, nil
	}
}

func (b *Builder) resolveLines(ctx context.Context, typ models.TransactionType, raw json.RawMessage) ([]ResolvedLine, error) {
	var resolved []ResolvedLine

	if typ == models.TypeSale {
		lines, err := decodeSaleLines(raw)
		if err != nil {
			return nil, err
		}
		for _, line := range lines {
			r, err := b.resolver.ResolveSale(ctx, line)
			if err != nil {
				b.rollback(ctx, typ, resolved)
				return nil, err
			}
			resolved = append(resolved, r)
		}
		return resolved, nil
	}

	lines, err := decodePurchaseLines(raw)
	if err != nil {
		return nil, err
	}
	for _, line := range lines {
		r, err := b.resolver.ResolvePurchase(ctx, line)
		if err != nil {
			b.rollback(ctx, typ, resolved)
			return nil, err
		}
		resolved = append(resolved, r)
	}
	return resolved, nil
}

// rollback undoes the stock effect of already-resolved lines, newest first.
// Catalog entries created by this batch are removed entirely. Failures here
// are logged, there is nothing better to do once compensation itself fails.
func (b *Builder) rollback(ctx context.Context, typ models.TransactionType, resolved []ResolvedLine) {
	for i := len(resolved) - 1; i >= 0; i-- {
		line := resolved[i]

		if line.Created {
			if err := b.furniture.Delete(ctx, line.FurnitureID); err != nil {
				b.logger.Error("Rollback failed to remove created catalog entry",
					zap.String("furniture_id", line.FurnitureID), zap.Error(err))
			}
			continue
		}

		delta := line.Quantity
		if typ == models.TypePurchase {
			delta = -line.Quantity
		}
		if _, err := b.ledger.Adjust(ctx, line.FurnitureID, delta); err != nil {
			b.logger.Error("Rollback failed to restore stock",
				zap.String("furniture_id", line.FurnitureID),
				zap.Int("delta", delta), zap.Error(err))
		}
	}
}

func toLines(resolved []ResolvedLine) []models.TransactionLine {
	lines := make([]models.TransactionLine, 0, len(resolved))
	for _, r := range resolved {
		lines = append(lines, models.TransactionLine{
			FurnitureID: r.FurnitureID,
			Quantity:    r.Quantity,
			UnitPrice:   r.UnitPrice,
		})
	}
	return lines
}
