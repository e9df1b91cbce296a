package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	application "merx/contexts/commerce/promotion-service/application"
	"merx/contexts/commerce/promotion-service/domain/entities"
	domainerrors "merx/contexts/commerce/promotion-service/domain/errors"
	"merx/contexts/commerce/promotion-service/ports"
)

// SaveCampaignUseCase validates and persists a campaign, then synchronously
// bumps every match namespace of the shop so no reader observes a stale
// positive after the save returns.
type SaveCampaignUseCase struct {
	Campaigns ports.CampaignRepository
	Coupons   ports.CouponRepository
	Cache     ports.MatchCache
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

type SaveCampaignCommand struct {
	Campaign entities.Campaign
}

func (uc SaveCampaignUseCase) Execute(ctx context.Context, cmd SaveCampaignCommand) (entities.Campaign, error) {
	logger := application.ResolveLogger(uc.Logger)
	now := uc.Clock.Now().UTC()

	campaign := cmd.Campaign
	campaign.Name = strings.TrimSpace(campaign.Name)
	campaign.Identifier = strings.TrimSpace(campaign.Identifier)
	campaign.ShopID = strings.TrimSpace(campaign.ShopID)

	if campaign.CampaignID == "" {
		id, err := uc.IDGen.NewID(ctx)
		if err != nil {
			return entities.Campaign{}, err
		}
		campaign.CampaignID = id
		campaign.CreatedAt = now
	}
	campaign.UpdatedAt = now

	if err := uc.assignRuleIDs(ctx, &campaign); err != nil {
		return entities.Campaign{}, err
	}
	if !campaign.ValidateBasics() || !campaign.RuleKindsFit() {
		return entities.Campaign{}, domainerrors.ErrInvalidCampaignInput
	}
	for _, effect := range campaign.Effects {
		if err := effect.Validate(); err != nil {
			return entities.Campaign{}, err
		}
	}
	if err := uc.checkCouponUniqueness(ctx, campaign); err != nil {
		return entities.Campaign{}, err
	}

	if !campaign.Active {
		campaign.Deactivate()
	}
	if err := uc.Campaigns.SaveCampaign(ctx, campaign); err != nil {
		return entities.Campaign{}, err
	}

	application.BumpShopNamespaces(uc.Cache, campaign.ShopID)

	logger.Info("campaign saved",
		"event", "campaign_saved",
		"module", "commerce/promotion-service",
		"layer", "application",
		"campaign_id", campaign.CampaignID,
		"shop_id", campaign.ShopID,
		"campaign_type", string(campaign.Type),
		"active", campaign.Active,
	)
	return campaign, nil
}

func (uc SaveCampaignUseCase) assignRuleIDs(ctx context.Context, campaign *entities.Campaign) error {
	for i := range campaign.Conditions {
		campaign.Conditions[i].CampaignID = campaign.CampaignID
		if campaign.Conditions[i].ConditionID == "" {
			id, err := uc.IDGen.NewID(ctx)
			if err != nil {
				return err
			}
			campaign.Conditions[i].ConditionID = id
		}
		if campaign.Conditions[i].Operator == "" {
			campaign.Conditions[i].Operator = entities.OperatorGTE
		}
	}
	for i := range campaign.Filters {
		campaign.Filters[i].CampaignID = campaign.CampaignID
		if campaign.Filters[i].FilterID == "" {
			id, err := uc.IDGen.NewID(ctx)
			if err != nil {
				return err
			}
			campaign.Filters[i].FilterID = id
		}
	}
	for i := range campaign.Effects {
		campaign.Effects[i].CampaignID = campaign.CampaignID
		if campaign.Effects[i].EffectID == "" {
			id, err := uc.IDGen.NewID(ctx)
			if err != nil {
				return err
			}
			campaign.Effects[i].EffectID = id
		}
	}
	return nil
}

// checkCouponUniqueness enforces the one-active-campaign-per-coupon-code
// invariant inside a shop. Deactivated campaigns do not count.
func (uc SaveCampaignUseCase) checkCouponUniqueness(ctx context.Context, campaign entities.Campaign) error {
	if campaign.Type != entities.CampaignTypeBasket || campaign.CouponID == "" || !campaign.Active {
		return nil
	}
	coupon, err := uc.Coupons.GetCoupon(ctx, campaign.CouponID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrCouponNotFound) {
			return domainerrors.ErrInvalidCampaignInput
		}
		return err
	}
	holders, err := uc.Campaigns.ListActiveCampaignsByCouponCode(ctx, campaign.ShopID, coupon.Code)
	if err != nil {
		return err
	}
	for _, holder := range holders {
		if holder.CampaignID != campaign.CampaignID {
			return domainerrors.ErrDuplicateCouponCode
		}
	}
	return nil
}
