package models

import (
	"dsikea/core/validate"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Provider is an organization the store purchases from, identified by CIF.
// Like customers, providers are read-only for the transaction engine.
type Provider struct {
	ID         string `gorm:"column:id;primaryKey;size:36" json:"id"`
	Name       string `gorm:"column:name;size:120" json:"name"`
	Contact    string `gorm:"column:contact;size:20" json:"contact"`
	Address    string `gorm:"column:address;size:255" json:"address"`
	PostalCode string `gorm:"column:postal_code;size:5" json:"postal_code"`
	CIF        string `gorm:"column:cif;size:9;uniqueIndex" json:"cif"`
}

// TableName overrides the default table name.
func (Provider) TableName() string {
	return "providers"
}

// BeforeCreate assigns a UUID when the caller did not set one.
func (p *Provider) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Validate checks required fields and identifier formats. It returns an
// empty string when the provider is valid, or a short reason otherwise.
func (p Provider) Validate() string {
	if p.Name == "" {
		return "missing name"
	}
	if p.Address == "" {
		return "missing address"
	}
	if !validate.Phone(p.Contact) {
		return "invalid contact phone"
	}
	if !validate.PostalCode(p.PostalCode) {
		return "invalid postal code"
	}
	if !validate.CIF(p.CIF) {
		return "invalid CIF"
	}
	return ""
}
