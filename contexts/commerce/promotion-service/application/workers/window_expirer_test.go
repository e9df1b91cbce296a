package workers

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

func TestWindowExpirerDeactivatesPastCampaigns(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	store := memory.NewStore([]entities.Campaign{
		{CampaignID: "expired", ShopID: "s1", Type: entities.CampaignTypeBasket, Name: "a", Identifier: "a", Active: true, EndsAt: &past,
			Conditions: []entities.Condition{{ConditionID: "cond-1", Kind: entities.ConditionBasketTotalAmount, Active: true}}},
		{CampaignID: "running", ShopID: "s1", Type: entities.CampaignTypeBasket, Name: "b", Identifier: "b", Active: true, EndsAt: &future},
		{CampaignID: "open-ended", ShopID: "s2", Type: entities.CampaignTypeCatalog, Name: "c", Identifier: "c", Active: true},
	})
	versioned := cache.NewVersioned()
	job := WindowExpirer{Campaigns: store, Cache: versioned, Clock: fixedClock{now: now}}

	if err := job.RunOnce(ctx); err != nil {
		t.Fatalf("sweep failed: %v", err)
	}

	expired, err := store.GetCampaign(ctx, "expired")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if expired.Active {
		t.Fatalf("expected past campaign deactivated")
	}
	if expired.Conditions[0].Active {
		t.Fatalf("expected deactivation cascaded to rules")
	}

	running, err := store.GetCampaign(ctx, "running")
	if err != nil || !running.Active {
		t.Fatalf("expected running campaign untouched, got %+v (%v)", running, err)
	}
	open, err := store.GetCampaign(ctx, "open-ended")
	if err != nil || !open.Active {
		t.Fatalf("expected open-ended campaign untouched, got %+v (%v)", open, err)
	}

	if versioned.Version("campaign_matches:s1") != 1 {
		t.Fatalf("expected affected shop namespaces bumped")
	}
	if versioned.Version("campaign_matches:s2") != 0 {
		t.Fatalf("unaffected shop must keep its cache")
	}
}

func TestWindowExpirerNoWorkIsSilent(t *testing.T) {
	versioned := cache.NewVersioned()
	job := WindowExpirer{Campaigns: memory.NewStore(nil), Cache: versioned, Clock: fixedClock{now: time.Now()}}

	if err := job.RunOnce(context.Background()); err != nil {
		t.Fatalf("empty sweep failed: %v", err)
	}
	if versioned.Version("campaign_matches:s1") != 0 {
		t.Fatalf("expected no cache bumps without expiries")
	}
}
