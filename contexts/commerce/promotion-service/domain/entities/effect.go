package entities

import (
	"fmt"

	"github.com/shopspring/decimal"

	domainerrors "merx/contexts/commerce/promotion-service/domain/errors"
)

type EffectKind string

const (
	EffectBasketDiscountAmount         EffectKind = "basket_discount_amount"
	EffectBasketDiscountPercentage     EffectKind = "basket_discount_percentage"
	EffectUndiscountedPercentage       EffectKind = "discount_percentage_from_undiscounted"
	EffectFreeProductLine              EffectKind = "free_product"
	EffectDiscountFromProducts         EffectKind = "discount_from_products"
	EffectDiscountFromCategoryProducts EffectKind = "discount_from_category_products"
	EffectProductDiscountAmount        EffectKind = "product_discount_amount"
	EffectProductDiscountPercentage    EffectKind = "product_discount_percentage"
)

// Effect computes a discount delta for its owning campaign. Effects never
// touch shared state: whole-basket kinds return an amount, line kinds mutate
// only the lines passed in, free-product kinds emit brand-new lines.
type Effect struct {
	EffectID   string
	CampaignID string
	Kind       EffectKind

	Amount     decimal.Decimal
	Percentage decimal.Decimal

	ProductIDs []string
	CategoryID string
	Quantity   decimal.Decimal

	// discount_from_products: flat amount per line instead of per unit.
	PerLineDiscount bool
}

func (e Effect) Validate() error {
	if e.Kind == EffectDiscountFromCategoryProducts && e.Amount.IsPositive() && e.Percentage.IsPositive() {
		return domainerrors.ErrEffectAmountConflict
	}
	return nil
}

func (e Effect) IsBasketKind() bool {
	switch e.Kind {
	case EffectBasketDiscountAmount, EffectBasketDiscountPercentage, EffectUndiscountedPercentage:
		return true
	default:
		return false
	}
}

func (e Effect) IsLineKind() bool {
	switch e.Kind {
	case EffectFreeProductLine, EffectDiscountFromProducts, EffectDiscountFromCategoryProducts:
		return true
	default:
		return false
	}
}

func (e Effect) IsCatalogKind() bool {
	switch e.Kind {
	case EffectProductDiscountAmount, EffectProductDiscountPercentage:
		return true
	default:
		return false
	}
}

// BasketDiscount computes the whole-basket discount for this effect.
// Clamping against the basket total happens where the amount is applied.
func (e Effect) BasketDiscount(basket BasketEnv, supplierID string) (decimal.Decimal, error) {
	switch e.Kind {
	case EffectBasketDiscountAmount:
		return e.Amount, nil
	case EffectBasketDiscountPercentage:
		return basket.TotalProductAmount(supplierID).Mul(e.Percentage), nil
	case EffectUndiscountedPercentage:
		return basket.UndiscountedProductAmount(supplierID).Mul(e.Percentage), nil
	default:
		return decimal.Zero, fmt.Errorf("%w: %s", domainerrors.ErrUnknownEffectKind, e.Kind)
	}
}

// ApplyToLines writes per-line discounts into matching original lines.
// A line's discount is only replaced when the newly computed one is larger,
// and never exceeds the line's undiscounted total.
func (e Effect) ApplyToLines(lines []BasketLine, supplierID string) error {
	switch e.Kind {
	case EffectDiscountFromProducts:
		for i := range lines {
			line := &lines[i]
			if !e.lineInScope(*line, supplierID) {
				continue
			}
			if !containsString(e.ProductIDs, line.ProductID) {
				continue
			}
			e.applyLineDiscount(line, e.flatLineDiscount(*line))
		}
		return nil
	case EffectDiscountFromCategoryProducts:
		for i := range lines {
			line := &lines[i]
			if !e.lineInScope(*line, supplierID) {
				continue
			}
			if e.CategoryID == "" || !line.InCategory(e.CategoryID) {
				continue
			}
			discount := e.flatLineDiscount(*line)
			if e.Percentage.IsPositive() {
				discount = line.BaseTotal().Mul(e.Percentage)
			}
			e.applyLineDiscount(line, discount)
		}
		return nil
	default:
		return fmt.Errorf("%w: %s", domainerrors.ErrUnknownEffectKind, e.Kind)
	}
}

func (e Effect) lineInScope(line BasketLine, supplierID string) bool {
	if line.Type != LineTypeProduct || line.Source == LineSourceDiscountModule {
		return false
	}
	return supplierID == "" || line.SupplierID == supplierID
}

func (e Effect) flatLineDiscount(line BasketLine) decimal.Decimal {
	if e.PerLineDiscount {
		return e.Amount
	}
	return e.Amount.Mul(line.Quantity)
}

func (e Effect) applyLineDiscount(line *BasketLine, discount decimal.Decimal) {
	discount = ClampDiscount(line.BaseTotal(), discount)
	if discount.GreaterThan(line.DiscountAmount) {
		line.DiscountAmount = discount
	}
}

// ProductDiscount computes the catalog-price discount for one price-info
// quantity, clamped so the result never exceeds the base price.
func (e Effect) ProductDiscount(basePrice decimal.Decimal) (decimal.Decimal, error) {
	switch e.Kind {
	case EffectProductDiscountAmount:
		return ClampDiscount(basePrice, e.Amount), nil
	case EffectProductDiscountPercentage:
		return ClampDiscount(basePrice, basePrice.Mul(e.Percentage)), nil
	default:
		return decimal.Zero, fmt.Errorf("%w: %s", domainerrors.ErrUnknownEffectKind, e.Kind)
	}
}

// NewFreeProductLine builds the zero-price order line a free_product effect
// injects for an orderable product.
func NewFreeProductLine(lineID string, product CatalogProduct, supplierID string, quantity decimal.Decimal, text string) BasketLine {
	return BasketLine{
		LineID:         lineID,
		Type:           LineTypeProduct,
		ProductID:      product.ProductID,
		SupplierID:     supplierID,
		CategoryIDs:    product.EffectiveCategoryIDs(),
		Quantity:       quantity,
		BaseUnitPrice:  decimal.Zero,
		DiscountAmount: decimal.Zero,
		Source:         LineSourceDiscountModule,
		Text:           text,
	}
}

// ClampDiscount keeps a discount within [0, base] so no price goes negative.
func ClampDiscount(base, discount decimal.Decimal) decimal.Decimal {
	if discount.IsNegative() {
		return decimal.Zero
	}
	if discount.GreaterThan(base) {
		return base
	}
	return discount
}

// ClampToMinimumPrice reduces a line's discount so its final total never
// drops below the configured minimum unit price.
func ClampToMinimumPrice(line *BasketLine, minimumUnitPrice *decimal.Decimal) {
	if minimumUnitPrice == nil {
		return
	}
	minimumTotal := minimumUnitPrice.Mul(line.Quantity)
	if line.Total().GreaterThanOrEqual(minimumTotal) {
		return
	}
	reduced := line.BaseTotal().Sub(minimumTotal)
	line.DiscountAmount = ClampDiscount(line.BaseTotal(), reduced)
}
