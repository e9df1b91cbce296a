package commands

import (
	"context"
	"errors"
	"testing"

	"merx/contexts/commerce/promotion-service/adapters/memory"
	"merx/contexts/commerce/promotion-service/domain/entities"
	domainerrors "merx/contexts/commerce/promotion-service/domain/errors"
)

func seedRedeemableCoupon(t *testing.T, store *memory.Store, limit int) {
	t.Helper()
	ctx := context.Background()
	if err := store.SaveCoupon(ctx, entities.Coupon{
		CouponID:   "coupon-1",
		ShopID:     "s1",
		Code:       "SAVE10",
		Active:     true,
		UsageLimit: limit,
	}); err != nil {
		t.Fatalf("save coupon: %v", err)
	}
	campaign := entities.Campaign{
		CampaignID: "c1",
		ShopID:     "s1",
		Type:       entities.CampaignTypeBasket,
		Name:       "Coupon campaign",
		Identifier: "coupon-campaign",
		Active:     true,
		CouponID:   "coupon-1",
	}
	if err := store.SaveCampaign(ctx, campaign); err != nil {
		t.Fatalf("save campaign: %v", err)
	}
}

func TestRedeemCouponRecordsUsage(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore(nil)
	seedRedeemableCoupon(t, store, 0)
	uc := RedeemCouponUseCase{Campaigns: store, Coupons: store, Clock: store, IDGen: store}

	usage, err := uc.Execute(ctx, RedeemCouponCommand{ShopID: "s1", Code: "save10", OrderID: "o1", CustomerID: "cust-1"})
	if err != nil {
		t.Fatalf("redeem failed: %v", err)
	}
	if usage.UsageID == "" || usage.CouponID != "coupon-1" || usage.OrderID != "o1" {
		t.Fatalf("unexpected usage row: %+v", usage)
	}
	count, err := store.CountCouponUsages(ctx, "coupon-1")
	if err != nil || count != 1 {
		t.Fatalf("expected one ledger row, got %d (%v)", count, err)
	}
}

func TestRedeemCouponRequiresOrderID(t *testing.T) {
	store := memory.NewStore(nil)
	seedRedeemableCoupon(t, store, 0)
	uc := RedeemCouponUseCase{Campaigns: store, Coupons: store, Clock: store, IDGen: store}

	_, err := uc.Execute(context.Background(), RedeemCouponCommand{ShopID: "s1", Code: "SAVE10"})
	if !errors.Is(err, domainerrors.ErrInvalidCouponInput) {
		t.Fatalf("expected invalid input without order id, got %v", err)
	}
}

func TestRedeemCouponEnforcesLimit(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore(nil)
	seedRedeemableCoupon(t, store, 1)
	uc := RedeemCouponUseCase{Campaigns: store, Coupons: store, Clock: store, IDGen: store}

	if _, err := uc.Execute(ctx, RedeemCouponCommand{ShopID: "s1", Code: "SAVE10", OrderID: "o1"}); err != nil {
		t.Fatalf("first redemption failed: %v", err)
	}
	_, err := uc.Execute(ctx, RedeemCouponCommand{ShopID: "s1", Code: "SAVE10", OrderID: "o2"})
	if !errors.Is(err, domainerrors.ErrCouponNotUsable) {
		t.Fatalf("expected exhausted coupon error, got %v", err)
	}
}

func TestRedeemCouponDuplicateOrderRejected(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore(nil)
	seedRedeemableCoupon(t, store, 0)
	uc := RedeemCouponUseCase{Campaigns: store, Coupons: store, Clock: store, IDGen: store}

	if _, err := uc.Execute(ctx, RedeemCouponCommand{ShopID: "s1", Code: "SAVE10", OrderID: "o1"}); err != nil {
		t.Fatalf("first redemption failed: %v", err)
	}
	_, err := uc.Execute(ctx, RedeemCouponCommand{ShopID: "s1", Code: "SAVE10", OrderID: "o1"})
	if !errors.Is(err, domainerrors.ErrCouponAlreadyUsed) {
		t.Fatalf("expected duplicate order rejection, got %v", err)
	}
	count, err := store.CountCouponUsages(ctx, "coupon-1")
	if err != nil || count != 1 {
		t.Fatalf("expected single ledger row, got %d (%v)", count, err)
	}
}

func TestRedeemCouponUnknownCode(t *testing.T) {
	store := memory.NewStore(nil)
	uc := RedeemCouponUseCase{Campaigns: store, Coupons: store, Clock: store, IDGen: store}

	_, err := uc.Execute(context.Background(), RedeemCouponCommand{ShopID: "s1", Code: "NOPE", OrderID: "o1"})
	if !errors.Is(err, domainerrors.ErrCouponNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
