package queries

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"

	application "merx/contexts/commerce/promotion-service/application"
	"merx/contexts/commerce/promotion-service/domain/entities"
	"merx/contexts/commerce/promotion-service/ports"
	"merx/internal/platform/metrics"
)

// MatchCatalogUseCase finds the catalog campaigns applying to one shop
// product for one pricing context. The path runs on every product-listing
// render, so it is memoized at two levels: the context-condition match set
// per {customer, shop}, and the final campaign id list per
// {customer, shop, product}. Entries live until a namespace bump.
type MatchCatalogUseCase struct {
	Campaigns   ports.CampaignRepository
	FilterIndex ports.FilterIndexRepository
	Cache       ports.MatchCache
	Clock       ports.Clock
	Logger      *slog.Logger
}

func (uc MatchCatalogUseCase) Execute(ctx context.Context, env entities.ContextEnv, shopProductID string) ([]entities.Campaign, error) {
	ids, err := uc.MatchingCampaignIDs(ctx, env, shopProductID)
	if err != nil {
		return nil, err
	}
	campaigns := make([]entities.Campaign, 0, len(ids))
	for _, id := range ids {
		campaign, err := uc.Campaigns.GetCampaign(ctx, id)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, campaign)
	}
	return campaigns, nil
}

func (uc MatchCatalogUseCase) MatchingCampaignIDs(ctx context.Context, env entities.ContextEnv, shopProductID string) ([]string, error) {
	logger := application.ResolveLogger(uc.Logger)
	namespace := application.CampaignMatchNamespace(env.ShopID)
	key := matchCacheKey(env.CustomerID, env.ShopID, shopProductID)

	if cached, found := uc.Cache.Get(namespace, key); found {
		if ids, ok := cached.([]string); ok {
			metrics.RecordCatalogMatchCacheLookup(true)
			return ids, nil
		}
	}
	metrics.RecordCatalogMatchCacheLookup(false)

	conditionIDs, err := uc.matchingContextConditionIDs(ctx, env)
	if err != nil {
		return nil, err
	}
	filterIDs, err := uc.FilterIndex.MatchingFilterIDs(ctx, shopProductID)
	if err != nil {
		return nil, err
	}

	// Nothing can match: skip the outer cache on purpose so an incomplete
	// computation is never memoized as a negative.
	if len(conditionIDs) == 0 && len(filterIDs) == 0 {
		return nil, nil
	}

	conditionSet := toSet(conditionIDs)
	filterSet := toSet(filterIDs)

	candidates, err := uc.Campaigns.ListCampaigns(ctx, ports.CampaignFilter{
		ShopID:     env.ShopID,
		Type:       entities.CampaignTypeCatalog,
		ActiveOnly: true,
	})
	if err != nil {
		return nil, err
	}

	now := uc.Clock.Now().UTC()
	matching := make([]string, 0, len(candidates))
	for _, campaign := range candidates {
		if !campaignReachable(campaign, conditionSet, filterSet) {
			continue
		}
		if campaign.RulesMatchCatalog(now, filterSet, conditionSet) {
			matching = append(matching, campaign.CampaignID)
		}
	}

	uc.Cache.Set(namespace, key, matching)
	logger.Debug("catalog match computed",
		"event", "catalog_match_computed",
		"module", "commerce/promotion-service",
		"layer", "application",
		"shop_id", env.ShopID,
		"shop_product_id", shopProductID,
		"matching_count", len(matching),
	)
	return matching, nil
}

// matchingContextConditionIDs evaluates every active context condition in the
// shop's catalog campaigns, memoized per {customer, shop}.
func (uc MatchCatalogUseCase) matchingContextConditionIDs(ctx context.Context, env entities.ContextEnv) ([]string, error) {
	namespace := application.ContextConditionNamespace(env.ShopID)
	key := contextConditionCacheKey(env.CustomerID)

	if cached, found := uc.Cache.Get(namespace, key); found {
		if ids, ok := cached.([]string); ok {
			return ids, nil
		}
	}

	campaigns, err := uc.Campaigns.ListCampaigns(ctx, ports.CampaignFilter{
		ShopID:     env.ShopID,
		Type:       entities.CampaignTypeCatalog,
		ActiveOnly: true,
	})
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0)
	for _, campaign := range campaigns {
		for _, condition := range campaign.Conditions {
			if !condition.Active {
				continue
			}
			matched, err := condition.MatchesContext(env)
			if err != nil {
				return nil, err
			}
			if matched {
				ids = append(ids, condition.ConditionID)
			}
		}
	}

	uc.Cache.Set(namespace, key, ids)
	return ids, nil
}

func campaignReachable(campaign entities.Campaign, conditionSet, filterSet map[string]bool) bool {
	for _, condition := range campaign.Conditions {
		if conditionSet[condition.ConditionID] {
			return true
		}
	}
	for _, filter := range campaign.Filters {
		if filterSet[filter.FilterID] {
			return true
		}
	}
	return false
}

func matchCacheKey(customerID, shopID, shopProductID string) string {
	if customerID == "" {
		customerID = "0"
	}
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%s", customerID, shopID, shopProductID)))
	return hex.EncodeToString(sum[:])
}

func contextConditionCacheKey(customerID string) string {
	if customerID == "" {
		customerID = "0"
	}
	return "customer:" + customerID
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
