package entities

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	domainerrors "merx/contexts/commerce/promotion-service/domain/errors"
)

type ComparisonOperator string

const (
	OperatorEquals ComparisonOperator = "equals"
	OperatorGTE    ComparisonOperator = "gte"
)

type ConditionKind string

// Context conditions evaluate against the pricing context alone; basket
// conditions additionally see the basket lines.
const (
	ConditionContact      ConditionKind = "contact"
	ConditionContactGroup ConditionKind = "contact_group"
	ConditionHour         ConditionKind = "hour"

	ConditionBasketTotalAmount                    ConditionKind = "basket_total_amount"
	ConditionBasketTotalProductAmount             ConditionKind = "basket_total_product_amount"
	ConditionBasketMaxTotalAmount                 ConditionKind = "basket_max_total_amount"
	ConditionBasketMaxTotalProductAmount          ConditionKind = "basket_max_total_product_amount"
	ConditionProductsInBasket                     ConditionKind = "products_in_basket"
	ConditionContactBasket                        ConditionKind = "contact_basket"
	ConditionContactGroupBasket                   ConditionKind = "contact_group_basket"
	ConditionCategoryProductsBasket               ConditionKind = "category_products_basket"
	ConditionHourBasket                           ConditionKind = "hour_basket"
	ConditionChildProducts                        ConditionKind = "child_products"
	ConditionBasketTotalUndiscountedProductAmount ConditionKind = "basket_total_undiscounted_product_amount"
)

// Condition is a closed variant type: Kind selects which parameter fields
// are meaningful. Evaluation is a pure predicate over the passed-in context.
type Condition struct {
	ConditionID string
	CampaignID  string
	Kind        ConditionKind
	Active      bool

	Operator ComparisonOperator
	Amount   decimal.Decimal
	Quantity decimal.Decimal

	// Minutes from local midnight.
	HourStart int
	HourEnd   int
	Weekdays  []time.Weekday

	ContactIDs          []string
	GroupIDs            []string
	ProductIDs          []string
	CategoryIDs         []string
	ExcludedCategoryIDs []string
}

func (c Condition) IsContextKind() bool {
	switch c.Kind {
	case ConditionContact, ConditionContactGroup, ConditionHour:
		return true
	default:
		return false
	}
}

// MatchesContext evaluates a context condition for catalog campaigns.
func (c Condition) MatchesContext(env ContextEnv) (bool, error) {
	switch c.Kind {
	case ConditionContact:
		return containsString(c.ContactIDs, env.CustomerID) && env.CustomerID != "", nil
	case ConditionContactGroup:
		return anyOverlap(c.GroupIDs, env.GroupIDs), nil
	case ConditionHour:
		return IsInTimeRange(env.LocalNow(), c.HourStart, c.HourEnd, c.Weekdays), nil
	default:
		return false, fmt.Errorf("%w: %s", domainerrors.ErrUnknownConditionKind, c.Kind)
	}
}

// MatchesBasket evaluates a basket condition. supplierID is the owning
// campaign's supplier scope; when set, quantity and amount scans restrict to
// lines of that supplier.
func (c Condition) MatchesBasket(env ContextEnv, basket BasketEnv, supplierID string) (bool, error) {
	switch c.Kind {
	case ConditionBasketTotalAmount:
		return c.compare(basket.TotalAmount(supplierID), c.Amount), nil
	case ConditionBasketTotalProductAmount:
		return c.compare(basket.TotalProductAmount(supplierID), c.Amount), nil
	case ConditionBasketTotalUndiscountedProductAmount:
		return c.compare(basket.UndiscountedProductAmount(supplierID), c.Amount), nil
	case ConditionBasketMaxTotalAmount:
		return basket.TotalAmount(supplierID).LessThanOrEqual(c.Amount), nil
	case ConditionBasketMaxTotalProductAmount:
		return basket.CountProducts(supplierID).LessThanOrEqual(c.Quantity), nil
	case ConditionProductsInBasket:
		return c.matchesProductsInBasket(basket, supplierID), nil
	case ConditionContactBasket:
		return containsString(c.ContactIDs, basket.CustomerID) && basket.CustomerID != "", nil
	case ConditionContactGroupBasket:
		return anyOverlap(c.GroupIDs, env.GroupIDs), nil
	case ConditionCategoryProductsBasket:
		return c.matchesCategoryProducts(basket, supplierID), nil
	case ConditionHourBasket:
		return IsInTimeRange(env.LocalNow(), c.HourStart, c.HourEnd, c.Weekdays), nil
	case ConditionChildProducts:
		return c.matchesChildProducts(basket, supplierID), nil
	default:
		return false, fmt.Errorf("%w: %s", domainerrors.ErrUnknownConditionKind, c.Kind)
	}
}

func (c Condition) matchesProductsInBasket(basket BasketEnv, supplierID string) bool {
	if len(c.ProductIDs) == 0 {
		return false
	}
	total := decimal.Zero
	for _, line := range basket.ProductLines() {
		if supplierID != "" && line.SupplierID != supplierID {
			continue
		}
		if containsString(c.ProductIDs, line.ProductID) || containsString(c.ProductIDs, line.ParentProductID) {
			total = total.Add(line.Quantity)
		}
	}
	return c.compare(total, c.Quantity)
}

func (c Condition) matchesChildProducts(basket BasketEnv, supplierID string) bool {
	if len(c.ProductIDs) == 0 {
		return false
	}
	total := decimal.Zero
	for _, line := range basket.ProductLines() {
		if supplierID != "" && line.SupplierID != supplierID {
			continue
		}
		if line.ParentProductID != "" && containsString(c.ProductIDs, line.ParentProductID) {
			total = total.Add(line.Quantity)
		}
	}
	return c.compare(total, c.Quantity)
}

func (c Condition) matchesCategoryProducts(basket BasketEnv, supplierID string) bool {
	// Exclusions short-circuit before any inclusion counting.
	for _, line := range basket.ProductLines() {
		for _, excluded := range c.ExcludedCategoryIDs {
			if line.InCategory(excluded) {
				return false
			}
		}
	}
	if len(c.CategoryIDs) == 0 {
		return false
	}
	total := decimal.Zero
	for _, line := range basket.ProductLines() {
		if supplierID != "" && line.SupplierID != supplierID {
			continue
		}
		for _, included := range c.CategoryIDs {
			if line.InCategory(included) {
				total = total.Add(line.Quantity)
				break
			}
		}
	}
	return c.compare(total, c.Quantity)
}

func (c Condition) compare(value, threshold decimal.Decimal) bool {
	if c.Operator == OperatorEquals {
		return value.Equal(threshold)
	}
	return value.GreaterThanOrEqual(threshold)
}

// IsInTimeRange reports whether now falls inside the [startMinute, endMinute]
// wall-clock window on a valid weekday. A window whose start is after its end
// wraps past midnight; when the current weekday is not valid the window is
// shifted back one day so the previous weekday's late window still applies.
func IsInTimeRange(now time.Time, startMinute, endMinute int, weekdays []time.Weekday) bool {
	if len(weekdays) == 0 {
		return false
	}
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	start := midnight.Add(time.Duration(startMinute) * time.Minute)
	end := midnight.Add(time.Duration(endMinute) * time.Minute)
	weekday := now.Weekday()

	if startMinute > endMinute {
		if !containsWeekday(weekdays, weekday) {
			start = start.AddDate(0, 0, -1)
			end = end.AddDate(0, 0, -1)
			weekday = start.Weekday()
		} else {
			end = end.AddDate(0, 0, 1)
		}
	}
	return !now.Before(start) && !now.After(end) && containsWeekday(weekdays, weekday)
}

func containsWeekday(weekdays []time.Weekday, day time.Weekday) bool {
	for _, candidate := range weekdays {
		if candidate == day {
			return true
		}
	}
	return false
}

func containsString(values []string, value string) bool {
	for _, candidate := range values {
		if candidate == value {
			return true
		}
	}
	return false
}

func anyOverlap(left, right []string) bool {
	if len(left) == 0 {
		return false
	}
	for _, candidate := range right {
		if containsString(left, candidate) {
			return true
		}
	}
	return false
}
