package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Material enumerates the accepted furniture materials.
type Material string

const (
	MaterialWood    Material = "wood"
	MaterialMetal   Material = "metal"
	MaterialPlastic Material = "plastic"
	MaterialGlass   Material = "glass"
	MaterialFabric  Material = "fabric"
	MaterialLeather Material = "leather"
)

// IsValid reports whether the material is one of the accepted values.
func (m Material) IsValid() bool {
	switch m {
	case MaterialWood, MaterialMetal, MaterialPlastic, MaterialGlass, MaterialFabric, MaterialLeather:
		return true
	default:
		return false
	}
}

// Color enumerates the accepted furniture colors.
type Color string

const (
	ColorRed    Color = "red"
	ColorBlue   Color = "blue"
	ColorGreen  Color = "green"
	ColorYellow Color = "yellow"
	ColorBlack  Color = "black"
	ColorWhite  Color = "white"
	ColorBrown  Color = "brown"
)

// IsValid reports whether the color is one of the accepted values.
func (c Color) IsValid() bool {
	switch c {
	case ColorRed, ColorBlue, ColorGreen, ColorYellow, ColorBlack, ColorWhite, ColorBrown:
		return true
	default:
		return false
	}
}

// Dimensions holds the physical size of a furniture item in centimeters.
type Dimensions struct {
	Length float64 `gorm:"column:length" json:"length"`
	Width  float64 `gorm:"column:width" json:"width"`
	Height float64 `gorm:"column:height" json:"height"`
}

// IsPositive reports whether every dimension is strictly positive.
func (d Dimensions) IsPositive() bool {
	return d.Length > 0 && d.Width > 0 && d.Height > 0
}

// Furniture is a catalog entry. Catalog identity is the (name, material,
// color) tuple, two rows may share a name as long as material or color
// differ. Quantity is owned by the inventory ledger and never goes negative.
type Furniture struct {
	ID          string          `gorm:"column:id;primaryKey;size:36" json:"id"`
	Name        string          `gorm:"column:name;size:120;uniqueIndex:idx_furniture_tuple" json:"name"`
	Description string          `gorm:"column:description;size:255" json:"description"`
	Material    Material        `gorm:"column:material;size:20;uniqueIndex:idx_furniture_tuple" json:"material"`
	Color       Color           `gorm:"column:color;size:20;uniqueIndex:idx_furniture_tuple" json:"color"`
	Dimensions  Dimensions      `gorm:"embedded;embeddedPrefix:dim_" json:"dimensions"`
	Price       decimal.Decimal `gorm:"column:price;type:decimal(12,2)" json:"price"`
	Quantity    int             `gorm:"column:quantity;not null;default:0" json:"quantity"`
}

// TableName overrides the default pluralized table name.
func (Furniture) TableName() string {
	return "furniture"
}

// BeforeCreate assigns a UUID when the caller did not set one.
func (f *Furniture) BeforeCreate(_ *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}

// Validate checks that the furniture has the minimum required fields and
// valid formats. It returns an empty string when the item is valid, or a
// short reason otherwise.
func (f Furniture) Validate() string {
	if f.Name == "" {
		return "missing name"
	}
	if f.Description == "" {
		return "missing description"
	}
	if !f.Material.IsValid() {
		return "invalid material"
	}
	if !f.Color.IsValid() {
		return "invalid color"
	}
	if !f.Dimensions.IsPositive() {
		return "dimensions must be positive"
	}
	if !f.Price.IsPositive() {
		return "price must be positive"
	}
	if f.Quantity < 0 {
		return "quantity must not be negative"
	}
	return ""
}
