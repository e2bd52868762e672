package transactions

import (
	"context"
	"errors"
	"fmt"

	"dsikea/feature/catalog"
	catalogmodels "dsikea/feature/catalog/models"
)

// Resolver maps a requested furniture line onto a concrete catalog item and
// delegates the stock movement to the ledger.
type Resolver struct {
	furniture FurnitureStore
	ledger    StockLedger
}

// NewResolver creates a resolver over the given catalog collaborators.
func NewResolver(furniture FurnitureStore, ledger StockLedger) *Resolver {
	return &Resolver{furniture: furniture, ledger: ledger}
}

// classifyMiss turns a failed tuple lookup into the most specific not-found
// kind. The reporting order is name, then material, then color: each stage
// narrows the match so the caller learns exactly which attribute missed.
func (r *Resolver) classifyMiss(ctx context.Context, name string, material catalogmodels.Material) error {
	okName, err := r.furniture.ExistsName(ctx, name)
	if err != nil {
		return err
	}
	if !okName {
		return fmt.Errorf("%w: %s", ErrFurnitureNameNotFound, name)
	}

	okMaterial, err := r.furniture.ExistsNameMaterial(ctx, name, material)
	if err != nil {
		return err
	}
	if !okMaterial {
		return fmt.Errorf("%w: %s in %s", ErrFurnitureMaterialNotFound, material, name)
	}

	return fmt.Errorf("%w for %s in %s", ErrFurnitureColorNotFound, name, material)
}

// ResolveSale resolves a sale line against the catalog and decrements stock.
// The pre-check against the on-hand quantity gives a clean error for the
// common case, the ledger's conditional update still guards against a
// concurrent sale winning the remaining units in between.
func (r *Resolver) ResolveSale(ctx context.Context, line SaleLine) (ResolvedLine, error) {
	if line.Quantity <= 0 {
		return ResolvedLine{}, ErrInvalidQuantity
	}

	item, err := r.furniture.FindByTuple(ctx, line.Name, line.Material, line.Color)
	if errors.Is(err, catalog.ErrNotFound) {
		return ResolvedLine{}, r.classifyMiss(ctx, line.Name, line.Material)
	}
	if err != nil {
		return ResolvedLine{}, err
	}

	if item.Quantity < line.Quantity {
		return ResolvedLine{}, fmt.Errorf("%w: %d of %s on hand, %d requested",
			ErrInsufficientStock, item.Quantity, item.Name, line.Quantity)
	}

	if _, err := r.ledger.Adjust(ctx, item.ID, -line.Quantity); err != nil {
		if errors.Is(err, catalog.ErrInsufficientStock) {
			return ResolvedLine{}, fmt.Errorf("%w: %s", ErrInsufficientStock, item.Name)
		}
		return ResolvedLine{}, err
	}

	return ResolvedLine{
		FurnitureID: item.ID,
		Quantity:    line.Quantity,
		UnitPrice:   item.Price,
	}, nil
}

// ResolvePurchase resolves a purchase line. A known tuple increments its
// stock at the catalog's current price, an unknown tuple creates a new
// catalog entry from the full line payload at the line's price.
func (r *Resolver) ResolvePurchase(ctx context.Context, line PurchaseLine) (ResolvedLine, error) {
	if line.Quantity <= 0 {
		return ResolvedLine{}, ErrInvalidQuantity
	}

	item, err := r.furniture.FindByTuple(ctx, line.Name, line.Material, line.Color)
	if err != nil && !errors.Is(err, catalog.ErrNotFound) {
		return ResolvedLine{}, err
	}

	if item != nil {
		if _, err := r.ledger.Adjust(ctx, item.ID, line.Quantity); err != nil {
			return ResolvedLine{}, err
		}
		return ResolvedLine{
			FurnitureID: item.ID,
			Quantity:    line.Quantity,
			UnitPrice:   item.Price,
		}, nil
	}

	created := catalogmodels.Furniture{
		Name:        line.Name,
		Description: line.Description,
		Material:    line.Material,
		Color:       line.Color,
		Dimensions:  line.Dimensions,
		Price:       line.Price,
		Quantity:    line.Quantity,
	}
	if reason := created.Validate(); reason != "" {
		return ResolvedLine{}, fmt.Errorf("%w: %s", ErrInvalidLine, reason)
	}
	if err := r.furniture.Create(ctx, &created); err != nil {
		return ResolvedLine{}, err
	}

	return ResolvedLine{
		FurnitureID: created.ID,
		Quantity:    line.Quantity,
		UnitPrice:   line.Price,
		Created:     true,
	}, nil
}
