package commands

import (
	"context"
	"log/slog"
	"strings"

	application "merx/contexts/commerce/promotion-service/application"
	"merx/contexts/commerce/promotion-service/domain/entities"
	domainerrors "merx/contexts/commerce/promotion-service/domain/errors"
	"merx/contexts/commerce/promotion-service/ports"
)

type SaveCouponUseCase struct {
	Campaigns ports.CampaignRepository
	Coupons   ports.CouponRepository
	Cache     ports.MatchCache
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

type SaveCouponCommand struct {
	Coupon entities.Coupon
}

func (uc SaveCouponUseCase) Execute(ctx context.Context, cmd SaveCouponCommand) (entities.Coupon, error) {
	logger := application.ResolveLogger(uc.Logger)
	now := uc.Clock.Now().UTC()

	coupon := cmd.Coupon
	coupon.Code = strings.TrimSpace(coupon.Code)
	coupon.ShopID = strings.TrimSpace(coupon.ShopID)
	if !coupon.ValidateBasics() {
		return entities.Coupon{}, domainerrors.ErrInvalidCouponInput
	}

	if coupon.CouponID == "" {
		id, err := uc.IDGen.NewID(ctx)
		if err != nil {
			return entities.Coupon{}, err
		}
		coupon.CouponID = id
		coupon.CreatedAt = now
	}
	coupon.UpdatedAt = now

	// An active coupon may not collide with another active campaign's code
	// in the same shop.
	if coupon.Active {
		holders, err := uc.Campaigns.ListActiveCampaignsByCouponCode(ctx, coupon.ShopID, coupon.Code)
		if err != nil {
			return entities.Coupon{}, err
		}
		for _, holder := range holders {
			if holder.CouponID != coupon.CouponID {
				return entities.Coupon{}, domainerrors.ErrDuplicateCouponCode
			}
		}
	}

	if err := uc.Coupons.SaveCoupon(ctx, coupon); err != nil {
		return entities.Coupon{}, err
	}
	application.BumpShopNamespaces(uc.Cache, coupon.ShopID)

	logger.Info("coupon saved",
		"event", "coupon_saved",
		"module", "commerce/promotion-service",
		"layer", "application",
		"coupon_id", coupon.CouponID,
		"shop_id", coupon.ShopID,
		"active", coupon.Active,
	)
	return coupon, nil
}
