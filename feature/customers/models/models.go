package models

import (
	"dsikea/core/validate"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer is a person the store sells to, identified by DNI.
// The transaction engine reads customers, it never mutates them.
type Customer struct {
	ID         string `gorm:"column:id;primaryKey;size:36" json:"id"`
	Name       string `gorm:"column:name;size:120" json:"name"`
	Contact    string `gorm:"column:contact;size:20" json:"contact"`
	Address    string `gorm:"column:address;size:255" json:"address"`
	PostalCode string `gorm:"column:postal_code;size:5" json:"postal_code"`
	DNI        string `gorm:"column:dni;size:9;uniqueIndex" json:"dni"`
}

// TableName overrides the default table name.
func (Customer) TableName() string {
	return "customers"
}

// BeforeCreate assigns a UUID when the caller did not set one.
func (c *Customer) BeforeCreate(_ *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// Validate checks required fields and identifier formats. It returns an
// empty string when the customer is valid, or a short reason otherwise.
func (c Customer) Validate() string {
	if c.Name == "" {
		return "missing name"
	}
	if c.Address == "" {
		return "missing address"
	}
	if !validate.Phone(c.Contact) {
		return "invalid contact phone"
	}
	if !validate.PostalCode(c.PostalCode) {
		return "invalid postal code"
	}
	if !validate.DNI(c.DNI) {
		return "invalid DNI"
	}
	return ""
}
