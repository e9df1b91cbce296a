package entities

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ShopProduct is a product's per-shop sales configuration. Variation
// children reference their parent through ParentProductID and borrow the
// parent's categorization where their own is empty.
type ShopProduct struct {
	ShopProductID   string
	ShopID          string
	ProductID       string
	ParentProductID string
	ProductTypeID   string
	Name            string
	SKU             string

	SupplierIDs       []string
	CategoryIDs       []string
	PrimaryCategoryID string

	Visible          bool
	Purchasable      bool
	MinimumPrice     *decimal.Decimal
	DefaultPrice     decimal.Decimal
	MinOrderQuantity decimal.Decimal
	MaxOrderQuantity decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p ShopProduct) ValidateBasics() bool {
	return strings.TrimSpace(p.ProductID) != "" &&
		strings.TrimSpace(p.ShopID) != "" &&
		strings.TrimSpace(p.Name) != ""
}

// IsOrderable reports whether the product can be bought at the quantity,
// honoring visibility, purchasability and order quantity bounds.
func (p ShopProduct) IsOrderable(quantity decimal.Decimal) bool {
	if !p.Visible || !p.Purchasable {
		return false
	}
	if p.MinOrderQuantity.IsPositive() && quantity.LessThan(p.MinOrderQuantity) {
		return false
	}
	if p.MaxOrderQuantity.IsPositive() && quantity.GreaterThan(p.MaxOrderQuantity) {
		return false
	}
	return true
}

// EffectiveCategoryIDs returns the product's categories, falling back to the
// parent's when the child carries none of its own.
func (p ShopProduct) EffectiveCategoryIDs(parent *ShopProduct) []string {
	if len(p.CategoryIDs) > 0 || parent == nil {
		return p.CategoryIDs
	}
	return parent.CategoryIDs
}
