package transactions

import (
	"context"
	"errors"

	"dsikea/feature/catalog"
	catalogmodels "dsikea/feature/catalog/models"
	"dsikea/feature/customers"
	customermodels "dsikea/feature/customers/models"
	"dsikea/feature/providers"
	providermodels "dsikea/feature/providers/models"
)

// FurnitureStore is the catalog surface the resolver consumes. Lookups
// return catalog.ErrNotFound when nothing matches, distinguishable from
// storage faults.
type FurnitureStore interface {
	FindByID(ctx context.Context, id string) (*catalogmodels.Furniture, error)
	FindByTuple(ctx context.Context, name string, material catalogmodels.Material, color catalogmodels.Color) (*catalogmodels.Furniture, error)
	ExistsName(ctx context.Context, name string) (bool, error)
	ExistsNameMaterial(ctx context.Context, name string, material catalogmodels.Material) (bool, error)
	Create(ctx context.Context, item *catalogmodels.Furniture) error
	Delete(ctx context.Context, id string) error
}

// StockLedger applies atomic signed stock deltas. It returns
// catalog.ErrInsufficientStock when a decrement would go negative.
type StockLedger interface {
	Adjust(ctx context.Context, id string, delta int) (catalogmodels.Furniture, error)
}

// CustomerStore resolves a sale's DNI to a customer record.
type CustomerStore interface {
	FindByDNI(ctx context.Context, dni string) (*customermodels.Customer, error)
}

// ProviderStore resolves a purchase's CIF to a provider record.
type ProviderStore interface {
	FindByCIF(ctx context.Context, cif string) (*providermodels.Provider, error)
}

// mapNotFound translates a collaborator's not-found sentinel into the given
// transaction-domain kind, passing storage faults through untouched.
func mapNotFound(err error, kind error) error {
	if errors.Is(err, customers.ErrNotFound) ||
		errors.Is(err, providers.ErrNotFound) ||
		errors.Is(err, catalog.ErrNotFound) {
		return kind
	}
	return err
}
