package providers

import (
	"context"
	"errors"
	"fmt"

	"dsikea/feature/providers/models"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when no provider matches the lookup.
	ErrNotFound = errors.New("provider not found")
	// ErrDuplicateCIF is returned when a create collides with a registered CIF.
	ErrDuplicateCIF = errors.New("provider with this CIF already exists")
	// ErrInvalidProvider is returned when the submitted provider fails field
	// validation. It is wrapped with the concrete reason.
	ErrInvalidProvider = errors.New("invalid provider")
	// ErrInvalidUpdate is returned when a patch carries fields outside the
	// allow list.
	ErrInvalidUpdate = errors.New("update is not permitted")
)

// Store provides read and write access to the provider registry.
type Store struct {
	db *gorm.DB
}

// NewStore creates a provider store over the given database handle.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// FindByCIF returns the provider registered under the given CIF.
func (s *Store) FindByCIF(ctx context.Context, cif string) (*models.Provider, error) {
	var provider models.Provider
	err := s.db.WithContext(ctx).First(&provider, "cif = ?", cif).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find provider by CIF: %w", err)
	}
	return &provider, nil
}

// FindByID returns the provider with the given internal id.
func (s *Store) FindByID(ctx context.Context, id string) (*models.Provider, error) {
	var provider models.Provider
	err := s.db.WithContext(ctx).First(&provider, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find provider by id: %w", err)
	}
	return &provider, nil
}

// List returns all registered providers.
func (s *Store) List(ctx context.Context) ([]models.Provider, error) {
	var providers []models.Provider
	if err := s.db.WithContext(ctx).Order("name").Find(&providers).Error; err != nil {
		return nil, fmt.Errorf("failed to list providers: %w", err)
	}
	return providers, nil
}

// Create registers a new provider. The CIF must be unused.
func (s *Store) Create(ctx context.Context, provider *models.Provider) error {
	existing, err := s.FindByCIF(ctx, provider.CIF)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	if existing != nil {
		return ErrDuplicateCIF
	}

	if err := s.db.WithContext(ctx).Create(provider).Error; err != nil {
		return fmt.Errorf("failed to create provider: %w", err)
	}
	return nil
}

// Update applies the given column updates and returns the new state.
func (s *Store) Update(ctx context.Context, id string, updates map[string]any) (*models.Provider, error) {
	res := s.db.WithContext(ctx).
		Model(&models.Provider{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update provider: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.FindByID(ctx, id)
}

// DeleteByCIF removes the provider registered under the given CIF.
func (s *Store) DeleteByCIF(ctx context.Context, cif string) error {
	res := s.db.WithContext(ctx).Delete(&models.Provider{}, "cif = ?", cif)
	if res.Error != nil {
		return fmt.Errorf("failed to delete provider: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByID removes the provider with the given internal id.
func (s *Store) DeleteByID(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.Provider{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete provider: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
