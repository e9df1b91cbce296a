package queries

import (
	"context"
	"log/slog"
	"strings"

	"merx/contexts/commerce/promotion-service/domain/entities"
	"merx/contexts/commerce/promotion-service/ports"
)

type GetCampaignUseCase struct {
	Campaigns ports.CampaignRepository
	Logger    *slog.Logger
}

func (uc GetCampaignUseCase) Execute(ctx context.Context, campaignID string) (entities.Campaign, error) {
	return uc.Campaigns.GetCampaign(ctx, strings.TrimSpace(campaignID))
}

type ListCampaignsQuery struct {
	ShopID     string
	Type       string
	ActiveOnly bool
}

type ListCampaignsUseCase struct {
	Campaigns ports.CampaignRepository
	Logger    *slog.Logger
}

func (uc ListCampaignsUseCase) Execute(ctx context.Context, query ListCampaignsQuery) ([]entities.Campaign, error) {
	return uc.Campaigns.ListCampaigns(ctx, ports.CampaignFilter{
		ShopID:     strings.TrimSpace(query.ShopID),
		Type:       entities.CampaignType(strings.TrimSpace(query.Type)),
		ActiveOnly: query.ActiveOnly,
	})
}
