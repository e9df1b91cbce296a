package queries

import (
	"context"
	"testing"
	"time"

	"merx/contexts/commerce/promotion-service/adapters/memory"
	"merx/contexts/commerce/promotion-service/domain/entities"
	"merx/internal/platform/cache"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

func catalogCampaign(id, shopID string, conditions []entities.Condition, filters []entities.Filter) entities.Campaign {
	return entities.Campaign{
		CampaignID: id,
		ShopID:     shopID,
		Type:       entities.CampaignTypeCatalog,
		Name:       "campaign " + id,
		Identifier: id,
		Active:     true,
		Conditions: conditions,
		Filters:    filters,
	}
}

func TestMatchCatalogMembershipMatch(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore([]entities.Campaign{
		catalogCampaign("c1", "s1",
			[]entities.Condition{{ConditionID: "cond-1", Kind: entities.ConditionContactGroup, Active: true, GroupIDs: []string{"g1"}}},
			[]entities.Filter{{FilterID: "f1", Kind: entities.FilterCategory, Active: true, CategoryIDs: []string{"cat-1"}}},
		),
	})
	if err := store.ReplaceProductFilterMatches(ctx, "sp-1", []string{"f1"}); err != nil {
		t.Fatalf("seed filter index: %v", err)
	}

	uc := MatchCatalogUseCase{
		Campaigns:   store,
		FilterIndex: store,
		Cache:       cache.NewVersioned(),
		Clock:       fixedClock{now: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)},
	}
	env := entities.ContextEnv{ShopID: "s1", CustomerID: "cust-1", GroupIDs: []string{"g1"}, Now: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)}

	ids, err := uc.MatchingCampaignIDs(ctx, env, "sp-1")
	if err != nil {
		t.Fatalf("matching failed: %v", err)
	}
	if len(ids) != 1 || ids[0] != "c1" {
		t.Fatalf("expected [c1], got %v", ids)
	}

	// A customer outside the group fails the context condition.
	stranger := entities.ContextEnv{ShopID: "s1", CustomerID: "cust-2", Now: env.Now}
	ids, err = uc.MatchingCampaignIDs(ctx, stranger, "sp-1")
	if err != nil {
		t.Fatalf("matching failed: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected no matches for non-member, got %v", ids)
	}

	// A product outside the filter index fails the filter.
	ids, err = uc.MatchingCampaignIDs(ctx, env, "sp-other")
	if err != nil {
		t.Fatalf("matching failed: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected no matches for unindexed product, got %v", ids)
	}
}

func TestMatchCatalogCachedUntilBump(t *testing.T) {
	ctx := context.Background()
	campaign := catalogCampaign("c1", "s1", nil,
		[]entities.Filter{{FilterID: "f1", Kind: entities.FilterProduct, Active: true, ProductIDs: []string{"p1"}}},
	)
	store := memory.NewStore([]entities.Campaign{campaign})
	if err := store.ReplaceProductFilterMatches(ctx, "sp-1", []string{"f1"}); err != nil {
		t.Fatalf("seed filter index: %v", err)
	}
	versioned := cache.NewVersioned()
	uc := MatchCatalogUseCase{
		Campaigns:   store,
		FilterIndex: store,
		Cache:       versioned,
		Clock:       fixedClock{now: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)},
	}
	env := entities.ContextEnv{ShopID: "s1", Now: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)}

	ids, err := uc.MatchingCampaignIDs(ctx, env, "sp-1")
	if err != nil || len(ids) != 1 {
		t.Fatalf("expected one match, got %v (%v)", ids, err)
	}

	// Deactivate behind the cache's back: the memoized positive survives.
	campaign.Active = false
	if err := store.SaveCampaign(ctx, campaign); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	ids, err = uc.MatchingCampaignIDs(ctx, env, "sp-1")
	if err != nil || len(ids) != 1 {
		t.Fatalf("expected stale cached match before bump, got %v (%v)", ids, err)
	}

	versioned.BumpVersion("campaign_matches:s1")
	versioned.BumpVersion("context_conditions:s1")
	ids, err = uc.MatchingCampaignIDs(ctx, env, "sp-1")
	if err != nil {
		t.Fatalf("matching failed: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected no matches after bump, got %v", ids)
	}
}

func TestMatchCatalogEmptySetsNotMemoized(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore([]entities.Campaign{
		catalogCampaign("c1", "s1", nil,
			[]entities.Filter{{FilterID: "f1", Kind: entities.FilterProduct, Active: true, ProductIDs: []string{"p1"}}},
		),
	})
	uc := MatchCatalogUseCase{
		Campaigns:   store,
		FilterIndex: store,
		Cache:       cache.NewVersioned(),
		Clock:       fixedClock{now: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)},
	}
	env := entities.ContextEnv{ShopID: "s1", Now: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)}

	ids, err := uc.MatchingCampaignIDs(ctx, env, "sp-1")
	if err != nil {
		t.Fatalf("matching failed: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected no matches before indexing, got %v", ids)
	}

	// Index the product afterwards with no namespace bump: because an
	// empty-sets outcome is never written to the cache, the next lookup
	// recomputes and sees the new rows.
	if err := store.ReplaceProductFilterMatches(ctx, "sp-1", []string{"f1"}); err != nil {
		t.Fatalf("seed filter index: %v", err)
	}
	ids, err = uc.MatchingCampaignIDs(ctx, env, "sp-1")
	if err != nil {
		t.Fatalf("matching failed: %v", err)
	}
	if len(ids) != 1 || ids[0] != "c1" {
		t.Fatalf("expected [c1] after indexing, got %v", ids)
	}
}

func TestMatchCatalogExecuteLoadsCampaigns(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore([]entities.Campaign{
		catalogCampaign("c1", "s1", nil,
			[]entities.Filter{{FilterID: "f1", Kind: entities.FilterProduct, Active: true, ProductIDs: []string{"p1"}}},
		),
	})
	if err := store.ReplaceProductFilterMatches(ctx, "sp-1", []string{"f1"}); err != nil {
		t.Fatalf("seed filter index: %v", err)
	}
	uc := MatchCatalogUseCase{
		Campaigns:   store,
		FilterIndex: store,
		Cache:       cache.NewVersioned(),
		Clock:       fixedClock{now: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)},
	}

	campaigns, err := uc.Execute(ctx, entities.ContextEnv{ShopID: "s1"}, "sp-1")
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if len(campaigns) != 1 || campaigns[0].CampaignID != "c1" {
		t.Fatalf("expected campaign c1, got %+v", campaigns)
	}
}
