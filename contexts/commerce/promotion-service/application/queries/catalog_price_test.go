package queries

import (
	"context"
	"testing"
	"time"

	"merx/contexts/commerce/promotion-service/adapters/memory"
	"merx/contexts/commerce/promotion-service/domain/entities"
	"merx/internal/platform/cache"
)

func newCatalogPriceUseCase(store *memory.Store) CatalogPriceUseCase {
	return CatalogPriceUseCase{
		Match: MatchCatalogUseCase{
			Campaigns:   store,
			FilterIndex: store,
			Cache:       cache.NewVersioned(),
			Clock:       fixedClock{now: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)},
		},
	}
}

func TestCatalogPriceBestDiscountWins(t *testing.T) {
	ctx := context.Background()
	flat := catalogCampaign("c1", "s1", nil, []entities.Filter{
		{FilterID: "f1", Kind: entities.FilterProduct, Active: true, ProductIDs: []string{"p1"}},
	})
	flat.Effects = []entities.Effect{
		{EffectID: "e1", Kind: entities.EffectProductDiscountAmount, Amount: dec("5")},
	}
	percent := catalogCampaign("c2", "s1", nil, []entities.Filter{
		{FilterID: "f2", Kind: entities.FilterProduct, Active: true, ProductIDs: []string{"p1"}},
	})
	percent.Effects = []entities.Effect{
		{EffectID: "e2", Kind: entities.EffectProductDiscountPercentage, Percentage: dec("0.20")},
	}
	store := memory.NewStore([]entities.Campaign{flat, percent})
	if err := store.ReplaceProductFilterMatches(ctx, "sp-1", []string{"f1", "f2"}); err != nil {
		t.Fatalf("seed filter index: %v", err)
	}
	uc := newCatalogPriceUseCase(store)

	// 20% of 100 beats a flat 5.
	result, err := uc.Execute(ctx, entities.ContextEnv{ShopID: "s1"}, "sp-1", dec("100"))
	if err != nil {
		t.Fatalf("price failed: %v", err)
	}
	if !result.Discount.Equal(dec("20")) || result.CampaignID != "c2" {
		t.Fatalf("expected 20 from c2, got %s from %q", result.Discount, result.CampaignID)
	}
	if !result.DiscountedPrice.Equal(dec("80")) {
		t.Fatalf("expected discounted price 80, got %s", result.DiscountedPrice)
	}

	// At a 10 base price the flat 5 wins; campaigns never stack.
	uc = newCatalogPriceUseCase(store)
	result, err = uc.Execute(ctx, entities.ContextEnv{ShopID: "s1"}, "sp-1", dec("10"))
	if err != nil {
		t.Fatalf("price failed: %v", err)
	}
	if !result.Discount.Equal(dec("5")) || result.CampaignID != "c1" {
		t.Fatalf("expected 5 from c1, got %s from %q", result.Discount, result.CampaignID)
	}
}

func TestCatalogPriceNoMatchKeepsBasePrice(t *testing.T) {
	uc := newCatalogPriceUseCase(memory.NewStore(nil))

	result, err := uc.Execute(context.Background(), entities.ContextEnv{ShopID: "s1"}, "sp-1", dec("42"))
	if err != nil {
		t.Fatalf("price failed: %v", err)
	}
	if !result.DiscountedPrice.Equal(dec("42")) || !result.Discount.IsZero() || result.CampaignID != "" {
		t.Fatalf("expected untouched price, got %+v", result)
	}
}

func TestCatalogPriceClampsToBase(t *testing.T) {
	ctx := context.Background()
	campaign := catalogCampaign("c1", "s1", nil, []entities.Filter{
		{FilterID: "f1", Kind: entities.FilterProduct, Active: true, ProductIDs: []string{"p1"}},
	})
	campaign.Effects = []entities.Effect{
		{EffectID: "e1", Kind: entities.EffectProductDiscountAmount, Amount: dec("500")},
	}
	store := memory.NewStore([]entities.Campaign{campaign})
	if err := store.ReplaceProductFilterMatches(ctx, "sp-1", []string{"f1"}); err != nil {
		t.Fatalf("seed filter index: %v", err)
	}
	uc := newCatalogPriceUseCase(store)

	result, err := uc.Execute(ctx, entities.ContextEnv{ShopID: "s1"}, "sp-1", dec("30"))
	if err != nil {
		t.Fatalf("price failed: %v", err)
	}
	if !result.Discount.Equal(dec("30")) || !result.DiscountedPrice.IsZero() {
		t.Fatalf("expected price floored at zero, got %+v", result)
	}
}
