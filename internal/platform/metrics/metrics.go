package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CatalogMatchCacheLookups counts outer catalog-match cache outcomes.
	CatalogMatchCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "promotion_catalog_match_cache_lookups_total",
			Help: "Catalog campaign match cache lookups partitioned by outcome",
		},
		[]string{"outcome"}, // hit or miss
	)

	// BasketCampaignMatches counts basket campaigns that passed rule matching.
	BasketCampaignMatches = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "promotion_basket_campaign_matches_total",
			Help: "Basket campaigns whose rules matched an evaluated basket",
		},
	)

	// CouponRedemptions counts coupon usage ledger appends.
	CouponRedemptions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "promotion_coupon_redemptions_total",
			Help: "Coupon usages recorded at order placement",
		},
	)
)

func RecordCatalogMatchCacheLookup(hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	CatalogMatchCacheLookups.WithLabelValues(outcome).Inc()
}
