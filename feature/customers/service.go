package customers

import (
	"context"
	"fmt"

	"dsikea/core/validate"
	"dsikea/feature/customers/models"

	"go.uber.org/zap"
)

// UpdateRequest is the patch payload for a customer. Nil fields are left
// untouched.
type UpdateRequest struct {
	Name       *string `json:"name,omitempty"`
	Contact    *string `json:"contact,omitempty"`
	Address    *string `json:"address,omitempty"`
	PostalCode *string `json:"postal_code,omitempty"`
	DNI        *string `json:"dni,omitempty"`
}

// Service handles customer registry operations.
type Service struct {
	store  *Store
	logger *zap.Logger
}

// NewService creates a new customer service.
func NewService(store *Store, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Store exposes the underlying store for collaborating features.
func (s *Service) Store() *Store {
	return s.store
}

// List returns all registered customers.
func (s *Service) List(ctx context.Context) ([]models.Customer, error) {
	return s.store.List(ctx)
}

// GetByDNI returns the customer registered under the given DNI.
func (s *Service) GetByDNI(ctx context.Context, dni string) (*models.Customer, error) {
	return s.store.FindByDNI(ctx, dni)
}

// GetByID returns the customer with the given internal id.
func (s *Service) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	return s.store.FindByID(ctx, id)
}

// Create registers a new customer after validating its fields.
func (s *Service) Create(ctx context.Context, customer models.Customer) (*models.Customer, error) {
	if reason := customer.Validate(); reason != "" {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCustomer, reason)
	}

	if err := s.store.Create(ctx, &customer); err != nil {
		return nil, err
	}

	s.logger.Info("Customer registered",
		zap.String("id", customer.ID),
		zap.String("dni", customer.DNI),
	)
	return &customer, nil
}

// Update patches a customer. Only name, contact, address, postal code and
// DNI may change.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*models.Customer, error) {
	updates := map[string]any{}
	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("%w: missing name", ErrInvalidCustomer)
		}
		updates["name"] = *req.Name
	}
	if req.Contact != nil {
		if !validate.Phone(*req.Contact) {
			return nil, fmt.Errorf("%w: invalid contact phone", ErrInvalidCustomer)
		}
		updates["contact"] = *req.Contact
	}
	if req.Address != nil {
		if *req.Address == "" {
			return nil, fmt.Errorf("%w: missing address", ErrInvalidCustomer)
		}
		updates["address"] = *req.Address
	}
	if req.PostalCode != nil {
		if !validate.PostalCode(*req.PostalCode) {
			return nil, fmt.Errorf("%w: invalid postal code", ErrInvalidCustomer)
		}
		updates["postal_code"] = *req.PostalCode
	}
	if req.DNI != nil {
		if !validate.DNI(*req.DNI) {
			return nil, fmt.Errorf("%w: invalid DNI", ErrInvalidCustomer)
		}
		updates["dni"] = *req.DNI
	}
	if len(updates) == 0 {
		return s.store.FindByID(ctx, id)
	}

	return s.store.Update(ctx, id, updates)
}

// DeleteByDNI removes a customer by DNI.
func (s *Service) DeleteByDNI(ctx context.Context, dni string) error {
	return s.store.DeleteByDNI(ctx, dni)
}

// DeleteByID removes a customer by internal id.
func (s *Service) DeleteByID(ctx context.Context, id string) error {
	return s.store.DeleteByID(ctx, id)
}
