package entities

import (
	"strings"
	"time"
)

type CampaignType string

const (
	// Catalog campaigns discount a product's standing price independent of
	// any basket; basket campaigns evaluate an entire in-progress order.
	CampaignTypeCatalog CampaignType = "catalog"
	CampaignTypeBasket  CampaignType = "basket"
)

type Campaign struct {
	CampaignID string
	ShopID     string
	Type       CampaignType
	Name       string
	Identifier string
	Active     bool
	StartsAt   *time.Time
	EndsAt     *time.Time
	SupplierID string

	// Basket campaigns only; at most one coupon per campaign.
	CouponID string

	Conditions []Condition
	Filters    []Filter
	Effects    []Effect

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAvailable reports whether the campaign is active and inside its optional
// start/end window at the given instant.
func (c Campaign) IsAvailable(now time.Time) bool {
	if !c.Active {
		return false
	}
	if c.StartsAt != nil && now.Before(*c.StartsAt) {
		return false
	}
	if c.EndsAt != nil && now.After(*c.EndsAt) {
		return false
	}
	return true
}

// RulesMatchBasket evaluates a basket campaign: availability, coupon code
// presence when one is attached, then every condition AND-combined.
func (c Campaign) RulesMatchBasket(env ContextEnv, basket BasketEnv, coupon *Coupon) (bool, error) {
	if !c.IsAvailable(env.Now) {
		return false, nil
	}
	if c.CouponID != "" {
		if coupon == nil || !coupon.Active || !basket.HasCode(coupon.Code) {
			return false, nil
		}
	}
	for _, condition := range c.Conditions {
		if !condition.Active {
			continue
		}
		matched, err := condition.MatchesBasket(env, basket, c.SupplierID)
		if err != nil {
			return false, err
		}
		if !matched {
			return false, nil
		}
	}
	return true, nil
}

// RulesMatchCatalog evaluates a catalog campaign against precomputed match
// sets: every attached filter and condition id must be a member. Sets are
// membership-tested, never re-evaluated here.
func (c Campaign) RulesMatchCatalog(now time.Time, matchingFilterIDs, matchingConditionIDs map[string]bool) bool {
	if !c.IsAvailable(now) {
		return false
	}
	for _, filter := range c.Filters {
		if !filter.Active {
			continue
		}
		if !matchingFilterIDs[filter.FilterID] {
			return false
		}
	}
	for _, condition := range c.Conditions {
		if !condition.Active {
			continue
		}
		if !matchingConditionIDs[condition.ConditionID] {
			return false
		}
	}
	return true
}

// Deactivate cascades the flag to owned rules so a disabled campaign leaves
// no active condition rows behind.
func (c *Campaign) Deactivate() {
	c.Active = false
	for i := range c.Conditions {
		c.Conditions[i].Active = false
	}
	for i := range c.Filters {
		c.Filters[i].Active = false
	}
}

// HasSupplierScopeConflict reports whether the campaign is scoped to a
// supplier absent from the basket's supplier set.
func (c Campaign) HasSupplierScopeConflict(basketSuppliers map[string]bool) bool {
	if c.SupplierID == "" || len(basketSuppliers) == 0 {
		return false
	}
	return !basketSuppliers[c.SupplierID]
}

func (c Campaign) ValidateBasics() bool {
	name := strings.TrimSpace(c.Name)
	identifier := strings.TrimSpace(c.Identifier)
	if name == "" || identifier == "" || strings.TrimSpace(c.ShopID) == "" {
		return false
	}
	if c.Type != CampaignTypeCatalog && c.Type != CampaignTypeBasket {
		return false
	}
	if c.StartsAt != nil && c.EndsAt != nil && c.EndsAt.Before(*c.StartsAt) {
		return false
	}
	return true
}

// RuleKindsFit checks that every attached rule belongs to the campaign's
// universe: catalog campaigns carry context conditions, filters and catalog
// effects; basket campaigns carry basket conditions and basket/line effects.
func (c Campaign) RuleKindsFit() bool {
	for _, condition := range c.Conditions {
		if c.Type == CampaignTypeCatalog && !condition.IsContextKind() {
			return false
		}
		if c.Type == CampaignTypeBasket && condition.IsContextKind() {
			return false
		}
	}
	if c.Type == CampaignTypeBasket && len(c.Filters) > 0 {
		return false
	}
	for _, effect := range c.Effects {
		if c.Type == CampaignTypeCatalog && !effect.IsCatalogKind() {
			return false
		}
		if c.Type == CampaignTypeBasket && effect.IsCatalogKind() {
			return false
		}
	}
	return true
}
