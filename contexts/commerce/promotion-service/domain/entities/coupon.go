package entities

import (
	"strings"
	"time"
)

// Coupon is a redeemable code owned by at most one active basket campaign
// per shop.
type Coupon struct {
	CouponID   string
	ShopID     string
	SupplierID string
	Code       string
	Active     bool

	// Zero means unlimited.
	UsageLimit         int
	UsageLimitCustomer int

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c Coupon) CodeMatches(code string) bool {
	return strings.EqualFold(strings.TrimSpace(c.Code), strings.TrimSpace(code))
}

// WithinLimits reports whether another use fits the global and per-customer
// limits given the current ledger counts.
func (c Coupon) WithinLimits(totalUses, customerUses int) bool {
	if c.UsageLimit > 0 && totalUses >= c.UsageLimit {
		return false
	}
	if c.UsageLimitCustomer > 0 && customerUses >= c.UsageLimitCustomer {
		return false
	}
	return true
}

func (c Coupon) ValidateBasics() bool {
	return strings.TrimSpace(c.Code) != "" && strings.TrimSpace(c.ShopID) != ""
}

// CouponUsage is an append-only ledger row recorded exactly once when an
// order is placed with the coupon. Rows are never mutated or deleted.
type CouponUsage struct {
	UsageID    string
	CouponID   string
	OrderID    string
	CustomerID string
	CreatedAt  time.Time
}
