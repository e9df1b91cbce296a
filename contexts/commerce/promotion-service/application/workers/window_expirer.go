package workers

import (
	"context"
	"log/slog"
	"time"

	application "merx/contexts/commerce/promotion-service/application"
	"merx/contexts/commerce/promotion-service/ports"
)

// WindowExpirer sweeps active campaigns whose end datetime has passed.
// Expiry only flips the flag and drops the affected shops' caches; matching
// would exclude the campaigns anyway, the sweep keeps listings and the
// filter index honest.
type WindowExpirer struct {
	Campaigns ports.CampaignRepository
	Cache     ports.MatchCache
	Clock     ports.Clock
	BatchSize int
	Logger    *slog.Logger
}

func (j WindowExpirer) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(j.Logger)
	now := time.Now().UTC()
	if j.Clock != nil {
		now = j.Clock.Now().UTC()
	}

	limit := j.BatchSize
	if limit <= 0 {
		limit = 100
	}

	expired, err := j.Campaigns.ExpireCampaignsPastWindow(ctx, now, limit)
	if err != nil {
		logger.Error("campaign window sweep failed",
			"event", "campaign_window_sweep_failed",
			"module", "commerce/promotion-service",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}
	if len(expired) == 0 {
		return nil
	}

	shops := make(map[string]bool, len(expired))
	for _, campaign := range expired {
		if !shops[campaign.ShopID] {
			shops[campaign.ShopID] = true
			application.BumpShopNamespaces(j.Cache, campaign.ShopID)
		}
	}
	logger.Info("campaign window sweep completed",
		"event", "campaign_window_sweep_completed",
		"module", "commerce/promotion-service",
		"layer", "worker",
		"expired_count", len(expired),
		"shop_count", len(shops),
	)
	return nil
}
