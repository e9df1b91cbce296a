package entities

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type LineType string

const (
	LineTypeProduct  LineType = "product"
	LineTypeShipping LineType = "shipping"
	LineTypeDiscount LineType = "discount"
	LineTypeOther    LineType = "other"
)

// LineSourceDiscountModule tags lines injected by promotion effects.
const LineSourceDiscountModule = "discount_module"

type BasketLine struct {
	LineID          string
	Type            LineType
	ProductID       string
	ParentProductID string
	SupplierID      string
	CategoryIDs     []string
	Quantity        decimal.Decimal
	BaseUnitPrice   decimal.Decimal
	DiscountAmount  decimal.Decimal
	Source          string
	Text            string
}

func (l BasketLine) BaseTotal() decimal.Decimal {
	return l.BaseUnitPrice.Mul(l.Quantity)
}

func (l BasketLine) Total() decimal.Decimal {
	return l.BaseTotal().Sub(l.DiscountAmount)
}

func (l BasketLine) InCategory(categoryID string) bool {
	for _, id := range l.CategoryIDs {
		if id == categoryID {
			return true
		}
	}
	return false
}

// ContextEnv carries the request-scoped pricing context for catalog-side
// condition evaluation: who is buying, from which shop, at what local time.
type ContextEnv struct {
	ShopID     string
	CustomerID string
	GroupIDs   []string
	Now        time.Time
	Location   *time.Location
}

// LocalNow is the shop's wall-clock time for hour conditions.
func (e ContextEnv) LocalNow() time.Time {
	if e.Location == nil {
		return e.Now.UTC()
	}
	return e.Now.In(e.Location)
}

// BasketEnv is the engine's view of an in-progress order. Lines include
// previously collected discount lines so conditions can see running state.
type BasketEnv struct {
	ShopID     string
	CustomerID string
	Codes      []string
	Lines      []BasketLine

	// Line ids already discounted by an independently matching catalog
	// campaign; consumed by undiscounted-baseline conditions and effects.
	CatalogDiscountedLineIDs map[string]bool
}

func (b BasketEnv) ProductLines() []BasketLine {
	lines := make([]BasketLine, 0, len(b.Lines))
	for _, line := range b.Lines {
		if line.Type == LineTypeProduct {
			lines = append(lines, line)
		}
	}
	return lines
}

// CountProducts sums product-line quantities, restricted to one supplier
// when supplierID is non-empty.
func (b BasketEnv) CountProducts(supplierID string) decimal.Decimal {
	total := decimal.Zero
	for _, line := range b.ProductLines() {
		if supplierID != "" && line.SupplierID != supplierID {
			continue
		}
		total = total.Add(line.Quantity)
	}
	return total
}

// TotalProductAmount is the undiscounted total of product lines, restricted
// to one supplier when supplierID is non-empty.
func (b BasketEnv) TotalProductAmount(supplierID string) decimal.Decimal {
	total := decimal.Zero
	for _, line := range b.ProductLines() {
		if supplierID != "" && line.SupplierID != supplierID {
			continue
		}
		total = total.Add(line.BaseTotal())
	}
	return total
}

// TotalAmount is the undiscounted total across every line type.
func (b BasketEnv) TotalAmount(supplierID string) decimal.Decimal {
	total := decimal.Zero
	for _, line := range b.Lines {
		if supplierID != "" && line.SupplierID != supplierID {
			continue
		}
		total = total.Add(line.BaseTotal())
	}
	return total
}

// UndiscountedProductAmount excludes product lines already matched by an
// active catalog campaign, so basket percentages never compound on top of
// catalog discounts.
func (b BasketEnv) UndiscountedProductAmount(supplierID string) decimal.Decimal {
	total := decimal.Zero
	for _, line := range b.ProductLines() {
		if supplierID != "" && line.SupplierID != supplierID {
			continue
		}
		if b.CatalogDiscountedLineIDs[line.LineID] {
			continue
		}
		total = total.Add(line.BaseTotal())
	}
	return total
}

// HasCode reports whether a coupon code was attached to the basket,
// compared case-insensitively.
func (b BasketEnv) HasCode(code string) bool {
	for _, candidate := range b.Codes {
		if strings.EqualFold(strings.TrimSpace(candidate), strings.TrimSpace(code)) {
			return true
		}
	}
	return false
}

// ProductQuantities indexes summed quantities per product id. Variation child
// quantities are also counted toward their parent product.
func (b BasketEnv) ProductQuantities() map[string]decimal.Decimal {
	quantities := make(map[string]decimal.Decimal)
	for _, line := range b.ProductLines() {
		quantities[line.ProductID] = quantities[line.ProductID].Add(line.Quantity)
		if line.ParentProductID != "" {
			quantities[line.ParentProductID] = quantities[line.ParentProductID].Add(line.Quantity)
		}
	}
	return quantities
}

func (b BasketEnv) SupplierIDs() map[string]bool {
	suppliers := make(map[string]bool)
	for _, line := range b.ProductLines() {
		if line.SupplierID != "" {
			suppliers[line.SupplierID] = true
		}
	}
	return suppliers
}
