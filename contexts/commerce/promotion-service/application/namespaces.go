package application

import "merx/contexts/commerce/promotion-service/ports"

// Cache namespaces are shop-scoped so one shop's mutations never thrash
// another shop's memoized matches.
func CampaignMatchNamespace(shopID string) string {
	return "campaign_matches:" + shopID
}

func ContextConditionNamespace(shopID string) string {
	return "context_conditions:" + shopID
}

func CatalogFilterNamespace(shopID string) string {
	return "catalog_filters:" + shopID
}

// BumpShopNamespaces invalidates every match computation for the shop; it is
// called synchronously by any mutation contributing to matching decisions.
func BumpShopNamespaces(cache ports.MatchCache, shopID string) {
	cache.BumpVersion(CampaignMatchNamespace(shopID))
	cache.BumpVersion(ContextConditionNamespace(shopID))
	cache.BumpVersion(CatalogFilterNamespace(shopID))
}
