package errors

import "errors"

var (
	ErrCampaignNotFound     = errors.New("campaign not found")
	ErrInvalidCampaignInput = errors.New("invalid campaign input")
	ErrCouponNotFound       = errors.New("coupon not found")
	ErrInvalidCouponInput   = errors.New("invalid coupon input")
	ErrDuplicateCouponCode  = errors.New("another active campaign in this shop already uses the coupon code")
	ErrCouponNotUsable      = errors.New("coupon is not usable")
	ErrCouponAlreadyUsed    = errors.New("coupon usage already recorded for this order")
	ErrEffectAmountConflict = errors.New("effect cannot define both amount and percentage")

	// Contract violations, not data conditions.
	ErrUnknownConditionKind = errors.New("unknown condition kind")
	ErrUnknownFilterKind    = errors.New("unknown filter kind")
	ErrUnknownEffectKind    = errors.New("unknown effect kind")
	ErrUnknownEntityKind    = errors.New("cache invalidation received an unknown entity kind")
)
