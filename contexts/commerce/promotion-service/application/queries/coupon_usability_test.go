package queries

import (
	"context"
	"testing"

	"merx/contexts/commerce/promotion-service/adapters/memory"
	"merx/contexts/commerce/promotion-service/domain/entities"
)

func TestCouponUsabilityUnknownCodeIsNotAnError(t *testing.T) {
	store := memory.NewStore(nil)
	uc := CouponUsabilityUseCase{Campaigns: store, Coupons: store}

	usable, err := uc.Execute(context.Background(), "s1", "NOPE", "cust-1")
	if err != nil {
		t.Fatalf("unknown code must answer false, not error: %v", err)
	}
	if usable {
		t.Fatalf("expected unknown code to be unusable")
	}
}

func TestCouponUsabilityRequiresAttachedActiveCampaign(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore(nil)
	coupon := entities.Coupon{CouponID: "coupon-1", ShopID: "s1", Code: "SAVE10", Active: true}
	if err := store.SaveCoupon(ctx, coupon); err != nil {
		t.Fatalf("save coupon: %v", err)
	}
	uc := CouponUsabilityUseCase{Campaigns: store, Coupons: store}

	usable, err := uc.Execute(ctx, "s1", "SAVE10", "cust-1")
	if err != nil {
		t.Fatalf("usability failed: %v", err)
	}
	if usable {
		t.Fatalf("expected orphan coupon to be unusable")
	}

	campaign := basketCampaign("c1", "s1", nil)
	campaign.CouponID = "coupon-1"
	if err := store.SaveCampaign(ctx, campaign); err != nil {
		t.Fatalf("save campaign: %v", err)
	}
	usable, err = uc.Execute(ctx, "s1", "save10", "cust-1")
	if err != nil {
		t.Fatalf("usability failed: %v", err)
	}
	if !usable {
		t.Fatalf("expected attached coupon to be usable")
	}
}

func TestCouponUsabilityHonorsLimits(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore(nil)
	coupon := entities.Coupon{
		CouponID:           "coupon-1",
		ShopID:             "s1",
		Code:               "ONCE",
		Active:             true,
		UsageLimit:         2,
		UsageLimitCustomer: 1,
	}
	if err := store.SaveCoupon(ctx, coupon); err != nil {
		t.Fatalf("save coupon: %v", err)
	}
	campaign := basketCampaign("c1", "s1", nil)
	campaign.CouponID = "coupon-1"
	if err := store.SaveCampaign(ctx, campaign); err != nil {
		t.Fatalf("save campaign: %v", err)
	}
	uc := CouponUsabilityUseCase{Campaigns: store, Coupons: store}

	if err := store.AppendCouponUsage(ctx, entities.CouponUsage{UsageID: "u1", CouponID: "coupon-1", OrderID: "o1", CustomerID: "cust-1"}); err != nil {
		t.Fatalf("append usage: %v", err)
	}

	usable, err := uc.Execute(ctx, "s1", "ONCE", "cust-1")
	if err != nil {
		t.Fatalf("usability failed: %v", err)
	}
	if usable {
		t.Fatalf("expected per-customer limit to block cust-1")
	}

	usable, err = uc.Execute(ctx, "s1", "ONCE", "cust-2")
	if err != nil {
		t.Fatalf("usability failed: %v", err)
	}
	if !usable {
		t.Fatalf("expected another customer to remain within limits")
	}

	if err := store.AppendCouponUsage(ctx, entities.CouponUsage{UsageID: "u2", CouponID: "coupon-1", OrderID: "o2", CustomerID: "cust-2"}); err != nil {
		t.Fatalf("append usage: %v", err)
	}
	usable, err = uc.Execute(ctx, "s1", "ONCE", "cust-3")
	if err != nil {
		t.Fatalf("usability failed: %v", err)
	}
	if usable {
		t.Fatalf("expected global limit to block further use")
	}
}
