package customers

import (
	"context"
	"errors"
	"fmt"

	"dsikea/feature/customers/models"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when no customer matches the lookup.
	ErrNotFound = errors.New("customer not found")
	// ErrDuplicateDNI is returned when a create collides with a registered DNI.
	ErrDuplicateDNI = errors.New("customer with this DNI already exists")
	// ErrInvalidCustomer is returned when the submitted customer fails field
	// validation. It is wrapped with the concrete reason.
	ErrInvalidCustomer = errors.New("invalid customer")
	// ErrInvalidUpdate is returned when a patch carries fields outside the
	// allow list.
	ErrInvalidUpdate = errors.New("update is not permitted")
)

// Store provides read and write access to the customer registry.
type Store struct {
	db *gorm.DB
}

// NewStore creates a customer store over the given database handle.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// FindByDNI returns the customer registered under the given DNI.
func (s *Store) FindByDNI(ctx context.Context, dni string) (*models.Customer, error) {
	var customer models.Customer
	err := s.db.WithContext(ctx).First(&customer, "dni = ?", dni).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find customer by DNI: %w", err)
	}
	return &customer, nil
}

// FindByID returns the customer with the given internal id.
func (s *Store) FindByID(ctx context.Context, id string) (*models.Customer, error) {
	var customer models.Customer
	err := s.db.WithContext(ctx).First(&customer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find customer by id: %w", err)
	}
	return &customer, nil
}

// List returns all registered customers.
func (s *Store) List(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	if err := s.db.WithContext(ctx).Order("name").Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}

// Create registers a new customer. The DNI must be unused.
func (s *Store) Create(ctx context.Context, customer *models.Customer) error {
	existing, err := s.FindByDNI(ctx, customer.DNI)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	if existing != nil {
		return ErrDuplicateDNI
	}

	if err := s.db.WithContext(ctx).Create(customer).Error; err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

// Update applies the given column updates and returns the new state.
func (s *Store) Update(ctx context.Context, id string, updates map[string]any) (*models.Customer, error) {
	res := s.db.WithContext(ctx).
		Model(&models.Customer{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update customer: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.FindByID(ctx, id)
}

// DeleteByDNI removes the customer registered under the given DNI.
func (s *Store) DeleteByDNI(ctx context.Context, dni string) error {
	res := s.db.WithContext(ctx).Delete(&models.Customer{}, "dni = ?", dni)
	if res.Error != nil {
		return fmt.Errorf("failed to delete customer: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByID removes the customer with the given internal id.
func (s *Store) DeleteByID(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.Customer{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete customer: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
