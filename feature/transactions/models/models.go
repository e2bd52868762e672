package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionType discriminates sales from purchases. It decides which
// counterparty a transaction references and the sign of its stock deltas.
type TransactionType string

const (
	// TypeSale decrements stock and references a customer.
	TypeSale TransactionType = "Sale"
	// TypePurchase increments stock and references a provider.
	TypePurchase TransactionType = "Purchase"
)

// IsValid reports whether the type is one of the accepted values.
func (t TransactionType) IsValid() bool {
	return t == TypeSale || t == TypePurchase
}

// TransactionLine records one resolved (item, quantity) pair. UnitPrice is
// the catalog price at resolution time, it is what the stored total was
// derived from and stays stable even if the catalog price changes later.
type TransactionLine struct {
	ID            uint            `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	TransactionID string          `gorm:"column:transaction_id;size:36;index" json:"-"`
	FurnitureID   string          `gorm:"column:furniture_id;size:36" json:"furniture"`
	Quantity      int             `gorm:"column:quantity;not null" json:"quantity"`
	UnitPrice     decimal.Decimal `gorm:"column:unit_price;type:decimal(12,2)" json:"unit_price"`
}

// TableName overrides the default table name.
func (TransactionLine) TableName() string {
	return "transaction_lines"
}

// Total returns quantity times unit price.
func (l TransactionLine) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Transaction is a committed purchase or sale. Exactly one of CustomerID and
// ProviderID is set, matching the type. TotalPrice is derived from the lines
// at commit time and is never directly settable.
type Transaction struct {
	ID         string            `gorm:"column:id;primaryKey;size:36" json:"id"`
	Type       TransactionType   `gorm:"column:type;size:10;index" json:"type"`
	CustomerID *string           `gorm:"column:customer_id;size:36;index" json:"customer,omitempty"`
	ProviderID *string           `gorm:"column:provider_id;size:36;index" json:"provider,omitempty"`
	Lines      []TransactionLine `gorm:"foreignKey:TransactionID;references:ID;constraint:OnDelete:CASCADE" json:"furniture"`
	TotalPrice decimal.Decimal   `gorm:"column:total_price;type:decimal(14,2)" json:"price"`
	Date       time.Time         `gorm:"column:date;index" json:"date"`
}

// TableName overrides the default table name.
func (Transaction) TableName() string {
	return "transactions"
}

// BeforeCreate assigns a UUID when the caller did not set one.
func (t *Transaction) BeforeCreate(_ *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// LinesTotal recomputes the price the lines imply. The stored TotalPrice
// must always equal this sum, the audit feature checks it.
func (t Transaction) LinesTotal() decimal.Decimal {
	total := decimal.Zero
	for _, line := range t.Lines {
		total = total.Add(line.Total())
	}
	return total
}
