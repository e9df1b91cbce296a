package entities

import (
	"fmt"

	domainerrors "merx/contexts/commerce/promotion-service/domain/errors"
)

type FilterKind string

const (
	FilterCategory    FilterKind = "category"
	FilterProduct     FilterKind = "product"
	FilterProductType FilterKind = "product_type"
)

// Filter is a product-matching predicate for catalog campaigns.
type Filter struct {
	FilterID   string
	CampaignID string
	Kind       FilterKind
	Active     bool

	CategoryIDs    []string
	ProductIDs     []string
	ProductTypeIDs []string
}

// MatchesProduct reports whether the filter selects the given shop product.
// Product filters also match variation children of a listed parent; category
// filters match through the variation family's category union.
func (f Filter) MatchesProduct(product CatalogProduct) (bool, error) {
	switch f.Kind {
	case FilterCategory:
		if len(f.CategoryIDs) == 0 {
			return false, nil
		}
		return anyOverlap(f.CategoryIDs, product.EffectiveCategoryIDs()), nil
	case FilterProduct:
		if len(f.ProductIDs) == 0 {
			return false, nil
		}
		if containsString(f.ProductIDs, product.ProductID) {
			return true, nil
		}
		return product.ParentProductID != "" && containsString(f.ProductIDs, product.ParentProductID), nil
	case FilterProductType:
		if len(f.ProductTypeIDs) == 0 {
			return false, nil
		}
		return containsString(f.ProductTypeIDs, product.ProductTypeID), nil
	default:
		return false, fmt.Errorf("%w: %s", domainerrors.ErrUnknownFilterKind, f.Kind)
	}
}
