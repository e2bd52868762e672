package transactions

import (
	"encoding/json"
	"fmt"

	catalogmodels "dsikea/feature/catalog/models"

	"github.com/shopspring/decimal"
)

// SaleLine requests units of an existing catalog entry. The
// (name, material, color) tuple must match exactly, sales never create
// catalog entries.
type SaleLine struct {
	Name     string                 `json:"name"`
	Material catalogmodels.Material `json:"material"`
	Color    catalogmodels.Color    `json:"color"`
	Quantity int                    `json:"quantity"`
}

// PurchaseLine requests units from a provider. When the tuple is unknown it
// carries the full description needed to create the catalog entry, this is
// the one path where the catalog grows.
type PurchaseLine struct {
	Name        string                   `json:"name"`
	Description string                   `json:"description"`
	Material    catalogmodels.Material   `json:"material"`
	Color       catalogmodels.Color      `json:"color"`
	Dimensions  catalogmodels.Dimensions `json:"dimensions"`
	Price       decimal.Decimal          `json:"price"`
	Quantity    int                      `json:"quantity"`
}

// ResolvedLine is the resolver's output: a concrete catalog item, the
// quantity moved and the unit price the total derives from. Created marks
// lines whose catalog entry was created by this resolution, so a failed
// batch can take the whole entry back out.
type ResolvedLine struct {
	FurnitureID string
	Quantity    int
	UnitPrice   decimal.Decimal
	Created     bool
}

// Total returns quantity times unit price.
func (r ResolvedLine) Total() decimal.Decimal {
	return r.UnitPrice.Mul(decimal.NewFromInt(int64(r.Quantity)))
}

// decodeSaleLines parses the furniture array of a sale request.
func decodeSaleLines(raw json.RawMessage) ([]SaleLine, error) {
	var lines []SaleLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, fmt.Errorf("%w: malformed furniture list", ErrInvalidLine)
	}
	return lines, nil
}

// decodePurchaseLines parses the furniture array of a purchase request.
func decodePurchaseLines(raw json.RawMessage) ([]PurchaseLine, error) {
	var lines []PurchaseLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, fmt.Errorf("%w: malformed furniture list", ErrInvalidLine)
	}
	return lines, nil
}
