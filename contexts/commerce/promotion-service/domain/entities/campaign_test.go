package entities

import (
	"testing"
	"time"
)

func TestIsAvailableWindows(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	cases := []struct {
		name     string
		campaign Campaign
		expected bool
	}{
		{"inactive", Campaign{Active: false}, false},
		{"no window", Campaign{Active: true}, true},
		{"inside window", Campaign{Active: true, StartsAt: &past, EndsAt: &future}, true},
		{"future start", Campaign{Active: true, StartsAt: &future}, false},
		{"passed end", Campaign{Active: true, EndsAt: &past}, false},
		{"only start passed", Campaign{Active: true, StartsAt: &past}, true},
		{"only end ahead", Campaign{Active: true, EndsAt: &future}, true},
	}
	for _, tc := range cases {
		if got := tc.campaign.IsAvailable(now); got != tc.expected {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.expected, got)
		}
	}
}

func TestRulesMatchBasketRequiresCouponCode(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	campaign := Campaign{
		CampaignID: "c1",
		Type:       CampaignTypeBasket,
		Active:     true,
		CouponID:   "coupon-1",
	}
	coupon := &Coupon{CouponID: "coupon-1", Code: "SAVE10", Active: true}
	env := ContextEnv{Now: now}

	matched, err := campaign.RulesMatchBasket(env, BasketEnv{Codes: []string{"other"}}, coupon)
	if err != nil {
		t.Fatalf("rules match failed: %v", err)
	}
	if matched {
		t.Fatalf("expected missing code to fail coupon gate")
	}

	matched, err = campaign.RulesMatchBasket(env, BasketEnv{Codes: []string{"save10"}}, coupon)
	if err != nil {
		t.Fatalf("rules match failed: %v", err)
	}
	if !matched {
		t.Fatalf("expected case-insensitive code match")
	}

	coupon.Active = false
	matched, _ = campaign.RulesMatchBasket(env, BasketEnv{Codes: []string{"SAVE10"}}, coupon)
	if matched {
		t.Fatalf("expected inactive coupon to fail the gate")
	}
}

func TestRulesMatchBasketANDCombinesConditions(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	campaign := Campaign{
		CampaignID: "c1",
		Type:       CampaignTypeBasket,
		Active:     true,
		Conditions: []Condition{
			{ConditionID: "cond-1", Kind: ConditionBasketTotalProductAmount, Active: true, Operator: OperatorGTE, Amount: dec("50")},
			{ConditionID: "cond-2", Kind: ConditionProductsInBasket, Active: true, Operator: OperatorGTE, Quantity: dec("5"), ProductIDs: []string{"p1"}},
		},
	}
	basket := BasketEnv{Lines: []BasketLine{productLine("l1", "p1", "", "2", "50")}}

	matched, err := campaign.RulesMatchBasket(ContextEnv{Now: now}, basket, nil)
	if err != nil {
		t.Fatalf("rules match failed: %v", err)
	}
	if matched {
		t.Fatalf("expected one failing condition to fail the whole campaign")
	}
}

func TestRulesMatchCatalogMembershipOnly(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	campaign := Campaign{
		CampaignID: "c1",
		Type:       CampaignTypeCatalog,
		Active:     true,
		Filters:    []Filter{{FilterID: "f1", Kind: FilterCategory, Active: true, CategoryIDs: []string{"cat"}}},
		Conditions: []Condition{{ConditionID: "cond-1", Kind: ConditionContactGroup, Active: true, GroupIDs: []string{"g1"}}},
	}

	matched := campaign.RulesMatchCatalog(now, map[string]bool{"f1": true}, map[string]bool{"cond-1": true})
	if !matched {
		t.Fatalf("expected membership in both sets to match")
	}
	matched = campaign.RulesMatchCatalog(now, map[string]bool{}, map[string]bool{"cond-1": true})
	if matched {
		t.Fatalf("expected missing filter id to fail")
	}
}

func TestDeactivateCascadesToRules(t *testing.T) {
	campaign := Campaign{
		Active:     true,
		Conditions: []Condition{{ConditionID: "cond-1", Active: true, Kind: ConditionContact}},
		Filters:    []Filter{{FilterID: "f1", Active: true, Kind: FilterProduct}},
	}
	campaign.Deactivate()

	if campaign.Active {
		t.Fatalf("expected campaign inactive")
	}
	if campaign.Conditions[0].Active || campaign.Filters[0].Active {
		t.Fatalf("expected owned rules deactivated")
	}
}

func TestSupplierScopeConflict(t *testing.T) {
	campaign := Campaign{SupplierID: "supplier-a"}
	if campaign.HasSupplierScopeConflict(map[string]bool{"supplier-a": true}) {
		t.Fatalf("expected matching supplier to pass")
	}
	if !campaign.HasSupplierScopeConflict(map[string]bool{"supplier-b": true}) {
		t.Fatalf("expected foreign supplier scope to conflict")
	}
	unscoped := Campaign{}
	if unscoped.HasSupplierScopeConflict(map[string]bool{"supplier-b": true}) {
		t.Fatalf("expected unscoped campaign to never conflict")
	}
}

func TestFilterVariationRules(t *testing.T) {
	child := CatalogProduct{ProductID: "p-child", ParentProductID: "p-parent", CategoryIDs: []string{"cat-own"}, RelatedCategoryIDs: []string{"cat-parent"}}

	productFilter := Filter{Kind: FilterProduct, Active: true, ProductIDs: []string{"p-parent"}}
	matched, err := productFilter.MatchesProduct(child)
	if err != nil {
		t.Fatalf("filter match failed: %v", err)
	}
	if !matched {
		t.Fatalf("expected product filter to match variation child of listed parent")
	}

	categoryFilter := Filter{Kind: FilterCategory, Active: true, CategoryIDs: []string{"cat-parent"}}
	matched, err = categoryFilter.MatchesProduct(child)
	if err != nil {
		t.Fatalf("filter match failed: %v", err)
	}
	if !matched {
		t.Fatalf("expected category filter to match through variation family categories")
	}

	empty := Filter{Kind: FilterCategory, Active: true}
	if matched, _ = empty.MatchesProduct(child); matched {
		t.Fatalf("expected empty category set to never match")
	}
}
