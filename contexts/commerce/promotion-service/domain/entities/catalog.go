package entities

import "github.com/shopspring/decimal"

// CatalogProduct is the engine's read-model of a shop product, assembled by
// the catalog collaborator. RelatedCategoryIDs carries the variation
// parent/child category union so category filters match through inheritance.
type CatalogProduct struct {
	ShopProductID   string
	ShopID          string
	ProductID       string
	ParentProductID string
	ProductTypeID   string

	CategoryIDs        []string
	RelatedCategoryIDs []string

	SupplierIDs  []string
	MinimumPrice *decimal.Decimal

	Orderable        bool
	MinOrderQuantity decimal.Decimal
	MaxOrderQuantity decimal.Decimal
}

// IsOrderable reports whether quantity units can be ordered from supplierID.
func (p CatalogProduct) IsOrderable(supplierID string, quantity decimal.Decimal) bool {
	if !p.Orderable || quantity.LessThanOrEqual(decimal.Zero) {
		return false
	}
	if supplierID != "" && !containsString(p.SupplierIDs, supplierID) {
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

// ResolveSupplier picks the requested supplier when the product carries it,
// else the product's first supplier.
func (p CatalogProduct) ResolveSupplier(preferred string) string {
	if preferred != "" && containsString(p.SupplierIDs, preferred) {
		return preferred
	}
	if len(p.SupplierIDs) > 0 {
		return p.SupplierIDs[0]
	}
	return ""
}

// EffectiveCategoryIDs is the product's own categories plus those inherited
// through its variation family.
func (p CatalogProduct) EffectiveCategoryIDs() []string {
	seen := make(map[string]bool, len(p.CategoryIDs)+len(p.RelatedCategoryIDs))
	ids := make([]string, 0, len(p.CategoryIDs)+len(p.RelatedCategoryIDs))
	for _, id := range p.CategoryIDs {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for _, id := range p.RelatedCategoryIDs {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}
