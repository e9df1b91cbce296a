package commands

import (
	"context"
	"log/slog"
	"strings"

	application "merx/contexts/commerce/promotion-service/application"
	"merx/contexts/commerce/promotion-service/domain/entities"
	domainerrors "merx/contexts/commerce/promotion-service/domain/errors"
	"merx/contexts/commerce/promotion-service/ports"
	"merx/internal/platform/metrics"
)

// RedeemCouponUseCase records coupon usage at order placement. The ledger is
// append-only: one row per (coupon, order), never mutated afterwards.
type RedeemCouponUseCase struct {
	Campaigns ports.CampaignRepository
	Coupons   ports.CouponRepository
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

type RedeemCouponCommand struct {
	ShopID     string
	Code       string
	OrderID    string
	CustomerID string
}

func (uc RedeemCouponUseCase) Execute(ctx context.Context, cmd RedeemCouponCommand) (entities.CouponUsage, error) {
	logger := application.ResolveLogger(uc.Logger)

	if strings.TrimSpace(cmd.OrderID) == "" {
		return entities.CouponUsage{}, domainerrors.ErrInvalidCouponInput
	}
	coupon, err := uc.Coupons.GetCouponByCode(ctx, strings.TrimSpace(cmd.ShopID), strings.TrimSpace(cmd.Code))
	if err != nil {
		return entities.CouponUsage{}, err
	}

	usable, err := uc.usable(ctx, coupon, strings.TrimSpace(cmd.CustomerID))
	if err != nil {
		return entities.CouponUsage{}, err
	}
	if !usable {
		return entities.CouponUsage{}, domainerrors.ErrCouponNotUsable
	}

	usageID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.CouponUsage{}, err
	}
	usage := entities.CouponUsage{
		UsageID:    usageID,
		CouponID:   coupon.CouponID,
		OrderID:    strings.TrimSpace(cmd.OrderID),
		CustomerID: strings.TrimSpace(cmd.CustomerID),
		CreatedAt:  uc.Clock.Now().UTC(),
	}
	if err := uc.Coupons.AppendCouponUsage(ctx, usage); err != nil {
		return entities.CouponUsage{}, err
	}
	metrics.CouponRedemptions.Inc()

	logger.Info("coupon redeemed",
		"event", "coupon_redeemed",
		"module", "commerce/promotion-service",
		"layer", "application",
		"coupon_id", coupon.CouponID,
		"order_id", usage.OrderID,
	)
	return usage, nil
}

func (uc RedeemCouponUseCase) usable(ctx context.Context, coupon entities.Coupon, customerID string) (bool, error) {
	if !coupon.Active {
		return false, nil
	}
	attached, err := uc.Campaigns.ListActiveCampaignsByCouponCode(ctx, coupon.ShopID, coupon.Code)
	if err != nil {
		return false, err
	}
	if len(attached) == 0 {
		return false, nil
	}
	totalUses, err := uc.Coupons.CountCouponUsages(ctx, coupon.CouponID)
	if err != nil {
		return false, err
	}
	customerUses := 0
	if customerID != "" {
		customerUses, err = uc.Coupons.CountCouponUsagesByCustomer(ctx, coupon.CouponID, customerID)
		if err != nil {
			return false, err
		}
	}
	return coupon.WithinLimits(totalUses, customerUses), nil
}
