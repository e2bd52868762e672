package catalog

import (
	"context"
	"errors"
	"fmt"

	"dsikea/feature/catalog/models"

	"gorm.io/gorm"
)

// searchableFields are the query parameters accepted by Search. Quantity and
// price are deliberately absent, they are derived state, not lookup keys.
var searchableFields = map[string]bool{
	"name":        true,
	"description": true,
	"material":    true,
	"color":       true,
}

// Store provides read and write access to the furniture catalog.
type Store struct {
	db *gorm.DB
}

// NewStore creates a catalog store over the given database handle.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// FindByID returns the catalog entry with the given id.
func (s *Store) FindByID(ctx context.Context, id string) (*models.Furniture, error) {
	var item models.Furniture
	err := s.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find furniture by id: %w", err)
	}
	return &item, nil
}

// FindByTuple returns the catalog entry identified by the full
// (name, material, color) tuple. Lookup is never partial.
func (s *Store) FindByTuple(ctx context.Context, name string, material models.Material, color models.Color) (*models.Furniture, error) {
	var item models.Furniture
	err := s.db.WithContext(ctx).
		First(&item, "name = ? AND material = ? AND color = ?", name, material, color).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find furniture by tuple: %w", err)
	}
	return &item, nil
}

// ExistsName reports whether any catalog entry carries the given name.
func (s *Store) ExistsName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Furniture{}).
		Where("name = ?", name).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check furniture name: %w", err)
	}
	return count > 0, nil
}

// ExistsNameMaterial reports whether any catalog entry matches both name and
// material.
func (s *Store) ExistsNameMaterial(ctx context.Context, name string, material models.Material) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Furniture{}).
		Where("name = ? AND material = ?", name, material).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check furniture material: %w", err)
	}
	return count > 0, nil
}

// Create inserts a new catalog entry. The (name, material, color) tuple must
// be unique.
func (s *Store) Create(ctx context.Context, item *models.Furniture) error {
	existing, err := s.FindByTuple(ctx, item.Name, item.Material, item.Color)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	if existing != nil {
		return ErrDuplicateTuple
	}

	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("failed to create furniture: %w", err)
	}
	return nil
}

// Search returns the catalog entries matching the given field filters.
// Unknown filter keys yield ErrInvalidQuery.
func (s *Store) Search(ctx context.Context, filters map[string]string) ([]models.Furniture, error) {
	q := s.db.WithContext(ctx).Model(&models.Furniture{})
	for key, value := range filters {
		if !searchableFields[key] {
			return nil, ErrInvalidQuery
		}
		q = q.Where(fmt.Sprintf("%s = ?", key), value)
	}

	var items []models.Furniture
	if err := q.Order("name, material, color").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to search furniture: %w", err)
	}
	return items, nil
}

// Update applies the given column updates to an entry and returns the new
// state. Callers are responsible for allow-listing the fields.
func (s *Store) Update(ctx context.Context, id string, updates map[string]any) (*models.Furniture, error) {
	res := s.db.WithContext(ctx).
		Model(&models.Furniture{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update furniture: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.FindByID(ctx, id)
}

// Delete removes a catalog entry by id.
func (s *Store) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.Furniture{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete furniture: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
