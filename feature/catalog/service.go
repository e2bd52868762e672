package catalog

import (
	"context"
	"fmt"

	"dsikea/feature/catalog/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreateRequest is the payload for adding a catalog entry. Quantity is a
// pointer so the service can tell "absent" from "zero": submitting any
// quantity is rejected because stock only moves through transactions.
type CreateRequest struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Material    models.Material   `json:"material"`
	Color       models.Color      `json:"color"`
	Dimensions  models.Dimensions `json:"dimensions"`
	Price       decimal.Decimal   `json:"price"`
	Quantity    *int              `json:"quantity,omitempty"`
}

// UpdateRequest is the patch payload for a catalog entry. Nil fields are left
// untouched. Quantity is not patchable.
type UpdateRequest struct {
	Name        *string            `json:"name,omitempty"`
	Description *string            `json:"description,omitempty"`
	Material    *models.Material   `json:"material,omitempty"`
	Color       *models.Color      `json:"color,omitempty"`
	Dimensions  *models.Dimensions `json:"dimensions,omitempty"`
	Price       *decimal.Decimal   `json:"price,omitempty"`
	Quantity    *int               `json:"quantity,omitempty"`
}

// Service handles catalog operations.
type Service struct {
	store  *Store
	ledger *Ledger
	logger *zap.Logger
}

// NewService creates a new catalog service.
func NewService(store *Store, ledger *Ledger, logger *zap.Logger) *Service {
	return &Service{store: store, ledger: ledger, logger: logger}
}

// Store exposes the underlying catalog store for collaborating features.
func (s *Service) Store() *Store {
	return s.store
}

// Ledger exposes the inventory ledger for collaborating features.
func (s *Service) Ledger() *Ledger {
	return s.ledger
}

// List returns catalog entries matching the given filters.
func (s *Service) List(ctx context.Context, filters map[string]string) ([]models.Furniture, error) {
	return s.store.Search(ctx, filters)
}

// Get returns a single catalog entry by id.
func (s *Service) Get(ctx context.Context, id string) (*models.Furniture, error) {
	return s.store.FindByID(ctx, id)
}

// Create adds a catalog entry with zero stock. A request carrying a quantity
// is rejected, stock enters the catalog through purchase transactions only.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*models.Furniture, error) {
	if req.Quantity != nil {
		return nil, ErrQuantityReadOnly
	}

	item := models.Furniture{
		Name:        req.Name,
		Description: req.Description,
		Material:    req.Material,
		Color:       req.Color,
		Dimensions:  req.Dimensions,
		Price:       req.Price,
	}
	if reason := item.Validate(); reason != "" {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFurniture, reason)
	}

	if err := s.store.Create(ctx, &item); err != nil {
		return nil, err
	}

	s.logger.Info("Catalog entry created",
		zap.String("id", item.ID),
		zap.String("name", item.Name),
		zap.String("material", string(item.Material)),
		zap.String("color", string(item.Color)),
	)
	return &item, nil
}

// Update patches a catalog entry. The quantity field is rejected outright.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*models.Furniture, error) {
	if req.Quantity != nil {
		return nil, ErrQuantityReadOnly
	}

	updates := map[string]any{}
	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("%w: missing name", ErrInvalidFurniture)
		}
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		if *req.Description == "" {
			return nil, fmt.Errorf("%w: missing description", ErrInvalidFurniture)
		}
		updates["description"] = *req.Description
	}
	if req.Material != nil {
		if !req.Material.IsValid() {
			return nil, fmt.Errorf("%w: invalid material", ErrInvalidFurniture)
		}
		updates["material"] = *req.Material
	}
	if req.Color != nil {
		if !req.Color.IsValid() {
			return nil, fmt.Errorf("%w: invalid color", ErrInvalidFurniture)
		}
		updates["color"] = *req.Color
	}
	if req.Dimensions != nil {
		if !req.Dimensions.IsPositive() {
			return nil, fmt.Errorf("%w: dimensions must be positive", ErrInvalidFurniture)
		}
		updates["dim_length"] = req.Dimensions.Length
		updates["dim_width"] = req.Dimensions.Width
		updates["dim_height"] = req.Dimensions.Height
	}
	if req.Price != nil {
		if !req.Price.IsPositive() {
			return nil, fmt.Errorf("%w: price must be positive", ErrInvalidFurniture)
		}
		updates["price"] = *req.Price
	}
	if len(updates) == 0 {
		return s.store.FindByID(ctx, id)
	}

	return s.store.Update(ctx, id, updates)
}

// Delete removes a catalog entry by id.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}
