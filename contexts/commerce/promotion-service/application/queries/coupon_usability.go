package queries

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"merx/contexts/commerce/promotion-service/domain/entities"
	domainerrors "merx/contexts/commerce/promotion-service/domain/errors"
	"merx/contexts/commerce/promotion-service/ports"
)

// CouponUsabilityUseCase answers "can this customer use this code" without
// ever raising for an ordinary no: unusable coupons report false.
type CouponUsabilityUseCase struct {
	Campaigns ports.CampaignRepository
	Coupons   ports.CouponRepository
	Logger    *slog.Logger
}

func (uc CouponUsabilityUseCase) Execute(ctx context.Context, shopID, code, customerID string) (bool, error) {
	coupon, err := uc.Coupons.GetCouponByCode(ctx, strings.TrimSpace(shopID), strings.TrimSpace(code))
	if err != nil {
		if errors.Is(err, domainerrors.ErrCouponNotFound) {
			return false, nil
		}
		return false, err
	}
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
	if strings.TrimSpace(customerID) != "" {
		customerUses, err = uc.Coupons.CountCouponUsagesByCustomer(ctx, coupon.CouponID, strings.TrimSpace(customerID))
		if err != nil {
			return false, err
		}
	}
	return coupon.WithinLimits(totalUses, customerUses), nil
}

// GetCouponUseCase resolves a coupon by shop and code.
type GetCouponUseCase struct {
	Coupons ports.CouponRepository
	Logger  *slog.Logger
}

func (uc GetCouponUseCase) Execute(ctx context.Context, shopID, code string) (entities.Coupon, error) {
	return uc.Coupons.GetCouponByCode(ctx, strings.TrimSpace(shopID), strings.TrimSpace(code))
}
