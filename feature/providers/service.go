package providers

import (
	"context"
	"fmt"

	"dsikea/core/validate"
	"dsikea/feature/providers/models"

	"go.uber.org/zap"
)

// UpdateRequest is the patch payload for a provider. Nil fields are left
// untouched.
type UpdateRequest struct {
	Name       *string `json:"name,omitempty"`
	Contact    *string `json:"contact,omitempty"`
	Address    *string `json:"address,omitempty"`
	PostalCode *string `json:"postal_code,omitempty"`
	CIF        *string `json:"cif,omitempty"`
}

// Service handles provider registry operations.
type Service struct {
	store  *Store
	logger *zap.Logger
}

// NewService creates a new provider service.
func NewService(store *Store, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Store exposes the underlying store for collaborating features.
func (s *Service) Store() *Store {
	return s.store
}

// List returns all registered providers.
func (s *Service) List(ctx context.Context) ([]models.Provider, error) {
	return s.store.List(ctx)
}

// GetByCIF returns the provider registered under the given CIF.
func (s *Service) GetByCIF(ctx context.Context, cif string) (*models.Provider, error) {
	return s.store.FindByCIF(ctx, cif)
}

// GetByID returns the provider with the given internal id.
func (s *Service) GetByID(ctx context.Context, id string) (*models.Provider, error) {
	return s.store.FindByID(ctx, id)
}

// Create registers a new provider after validating its fields.
func (s *Service) Create(ctx context.Context, provider models.Provider) (*models.Provider, error) {
	if reason := provider.Validate(); reason != "" {
		return nil, fmt.Errorf("%w: %s", ErrInvalidProvider, reason)
	}

	if err := s.store.Create(ctx, &provider); err != nil {
		return nil, err
	}

	s.logger.Info("Provider registered",
		zap.String("id", provider.ID),
		zap.String("cif", provider.CIF),
	)
	return &provider, nil
}

// Update patches a provider. Only name, contact, address, postal code and
// CIF may change.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*models.Provider, error) {
	updates := map[string]any{}
	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("%w: missing name", ErrInvalidProvider)
		}
		updates["name"] = *req.Name
	}
	if req.Contact != nil {
		if !validate.Phone(*req.Contact) {
			return nil, fmt.Errorf("%w: invalid contact phone", ErrInvalidProvider)
		}
		updates["contact"] = *req.Contact
	}
	if req.Address != nil {
		if *req.Address == "" {
			return nil, fmt.Errorf("%w: missing address", ErrInvalidProvider)
		}
		updates["address"] = *req.Address
	}
	if req.PostalCode != nil {
		if !validate.PostalCode(*req.PostalCode) {
			return nil, fmt.Errorf("%w: invalid postal code", ErrInvalidProvider)
		}
		updates["postal_code"] = *req.PostalCode
	}
	if req.CIF != nil {
		if !validate.CIF(*req.CIF) {
			return nil, fmt.Errorf("%w: invalid CIF", ErrInvalidProvider)
		}
		updates["cif"] = *req.CIF
	}
	if len(updates) == 0 {
		return s.store.FindByID(ctx, id)
	}

	return s.store.Update(ctx, id, updates)
}

// DeleteByCIF removes a provider by CIF.
func (s *Service) DeleteByCIF(ctx context.Context, cif string) error {
	return s.store.DeleteByCIF(ctx, cif)
}

// DeleteByID removes a provider by internal id.
func (s *Service) DeleteByID(ctx context.Context, id string) error {
	return s.store.DeleteByID(ctx, id)
}
