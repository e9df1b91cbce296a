package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"merx/contexts/commerce/promotion-service/adapters/memory"
	"merx/contexts/commerce/promotion-service/domain/entities"
	domainerrors "merx/contexts/commerce/promotion-service/domain/errors"
	"merx/internal/platform/cache"
)

func newSaveCampaignUseCase(store *memory.Store, versioned *cache.Versioned) SaveCampaignUseCase {
	return SaveCampaignUseCase{
		Campaigns: store,
		Coupons:   store,
		Cache:     versioned,
		Clock:     fixedClock{now: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)},
		IDGen:     store,
	}
}

func TestSaveCampaignAssignsIDsAndDefaults(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore(nil)
	versioned := cache.NewVersioned()
	uc := newSaveCampaignUseCase(store, versioned)

	saved, err := uc.Execute(ctx, SaveCampaignCommand{Campaign: entities.Campaign{
		ShopID:     "s1",
		Type:       entities.CampaignTypeBasket,
		Name:       "  Summer sale  ",
		Identifier: "summer-sale",
		Active:     true,
		Conditions: []entities.Condition{
			{Kind: entities.ConditionBasketTotalAmount, Active: true, Amount: dec("100")},
		},
		Effects: []entities.Effect{
			{Kind: entities.EffectBasketDiscountAmount, Amount: dec("10")},
		},
	}})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if saved.CampaignID == "" {
		t.Fatalf("expected generated campaign id")
	}
	if saved.Name != "Summer sale" {
		t.Fatalf("expected trimmed name, got %q", saved.Name)
	}
	if saved.Conditions[0].ConditionID == "" || saved.Conditions[0].CampaignID != saved.CampaignID {
		t.Fatalf("expected condition linked to campaign, got %+v", saved.Conditions[0])
	}
	if saved.Conditions[0].Operator != entities.OperatorGTE {
		t.Fatalf("expected gte default operator, got %q", saved.Conditions[0].Operator)
	}
	if saved.Effects[0].EffectID == "" {
		t.Fatalf("expected generated effect id")
	}

	stored, err := store.GetCampaign(ctx, saved.CampaignID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !stored.Active {
		t.Fatalf("expected stored campaign to be active")
	}
}

func TestSaveCampaignBumpsShopNamespaces(t *testing.T) {
	ctx := context.Background()
	versioned := cache.NewVersioned()
	uc := newSaveCampaignUseCase(memory.NewStore(nil), versioned)

	before := versioned.Version("campaign_matches:s1")
	_, err := uc.Execute(ctx, SaveCampaignCommand{Campaign: entities.Campaign{
		ShopID:     "s1",
		Type:       entities.CampaignTypeCatalog,
		Name:       "Flash",
		Identifier: "flash",
		Active:     true,
	}})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if versioned.Version("campaign_matches:s1") != before+1 {
		t.Fatalf("expected campaign match namespace bump")
	}
	if versioned.Version("context_conditions:s1") == 0 || versioned.Version("catalog_filters:s1") == 0 {
		t.Fatalf("expected all shop namespaces bumped")
	}
}

func TestSaveCampaignRejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	uc := newSaveCampaignUseCase(memory.NewStore(nil), cache.NewVersioned())

	cases := []struct {
		name     string
		campaign entities.Campaign
	}{
		{"blank name", entities.Campaign{ShopID: "s1", Type: entities.CampaignTypeBasket, Identifier: "x"}},
		{"bad type", entities.Campaign{ShopID: "s1", Type: "weird", Name: "n", Identifier: "x"}},
		{"inverted window", entities.Campaign{
			ShopID: "s1", Type: entities.CampaignTypeBasket, Name: "n", Identifier: "x",
			StartsAt: timePtr(time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)),
			EndsAt:   timePtr(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)),
		}},
		{"filter on basket campaign", entities.Campaign{
			ShopID: "s1", Type: entities.CampaignTypeBasket, Name: "n", Identifier: "x",
			Filters: []entities.Filter{{Kind: entities.FilterProduct, Active: true, ProductIDs: []string{"p1"}}},
		}},
		{"catalog effect on basket campaign", entities.Campaign{
			ShopID: "s1", Type: entities.CampaignTypeBasket, Name: "n", Identifier: "x",
			Effects: []entities.Effect{{Kind: entities.EffectProductDiscountAmount, Amount: dec("1")}},
		}},
	}
	for _, tc := range cases {
		_, err := uc.Execute(ctx, SaveCampaignCommand{Campaign: tc.campaign})
		if !errors.Is(err, domainerrors.ErrInvalidCampaignInput) {
			t.Fatalf("%s: expected invalid input error, got %v", tc.name, err)
		}
	}
}

func TestSaveCampaignCouponUniqueness(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore(nil)
	uc := newSaveCampaignUseCase(store, cache.NewVersioned())

	if err := store.SaveCoupon(ctx, entities.Coupon{CouponID: "coupon-1", ShopID: "s1", Code: "SAVE10", Active: true}); err != nil {
		t.Fatalf("save coupon: %v", err)
	}

	first, err := uc.Execute(ctx, SaveCampaignCommand{Campaign: entities.Campaign{
		ShopID:     "s1",
		Type:       entities.CampaignTypeBasket,
		Name:       "First",
		Identifier: "first",
		Active:     true,
		CouponID:   "coupon-1",
	}})
	if err != nil {
		t.Fatalf("first save failed: %v", err)
	}

	// A second active campaign claiming the same code is rejected.
	_, err = uc.Execute(ctx, SaveCampaignCommand{Campaign: entities.Campaign{
		ShopID:     "s1",
		Type:       entities.CampaignTypeBasket,
		Name:       "Second",
		Identifier: "second",
		Active:     true,
		CouponID:   "coupon-1",
	}})
	if !errors.Is(err, domainerrors.ErrDuplicateCouponCode) {
		t.Fatalf("expected duplicate coupon code error, got %v", err)
	}

	// Re-saving the holder itself stays legal.
	first.Name = "First renamed"
	if _, err := uc.Execute(ctx, SaveCampaignCommand{Campaign: first}); err != nil {
		t.Fatalf("holder re-save failed: %v", err)
	}

	// An inactive claimant does not contend for the code.
	_, err = uc.Execute(ctx, SaveCampaignCommand{Campaign: entities.Campaign{
		ShopID:     "s1",
		Type:       entities.CampaignTypeBasket,
		Name:       "Third",
		Identifier: "third",
		Active:     false,
		CouponID:   "coupon-1",
	}})
	if err != nil {
		t.Fatalf("inactive claimant save failed: %v", err)
	}
}

func TestSaveCampaignRejectsDanglingCoupon(t *testing.T) {
	ctx := context.Background()
	uc := newSaveCampaignUseCase(memory.NewStore(nil), cache.NewVersioned())

	_, err := uc.Execute(ctx, SaveCampaignCommand{Campaign: entities.Campaign{
		ShopID:     "s1",
		Type:       entities.CampaignTypeBasket,
		Name:       "Orphan",
		Identifier: "orphan",
		Active:     true,
		CouponID:   "missing",
	}})
	if !errors.Is(err, domainerrors.ErrInvalidCampaignInput) {
		t.Fatalf("expected invalid input for dangling coupon, got %v", err)
	}
}

func TestSaveCampaignDeactivationCascades(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore(nil)
	uc := newSaveCampaignUseCase(store, cache.NewVersioned())

	saved, err := uc.Execute(ctx, SaveCampaignCommand{Campaign: entities.Campaign{
		ShopID:     "s1",
		Type:       entities.CampaignTypeCatalog,
		Name:       "Fade out",
		Identifier: "fade-out",
		Active:     false,
		Filters: []entities.Filter{
			{Kind: entities.FilterProduct, Active: true, ProductIDs: []string{"p1"}},
		},
	}})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if saved.Active || saved.Filters[0].Active {
		t.Fatalf("expected deactivation to cascade to rules, got %+v", saved.Filters[0])
	}
}

func timePtr(value time.Time) *time.Time {
	return &value
}
