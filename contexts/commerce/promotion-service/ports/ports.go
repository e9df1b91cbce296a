package ports

import (
	"context"
	"time"

	"merx/contexts/commerce/promotion-service/domain/entities"
)

type CampaignFilter struct {
	ShopID     string
	Type       entities.CampaignType
	ActiveOnly bool
}

type CampaignRepository interface {
	SaveCampaign(ctx context.Context, campaign entities.Campaign) error
	GetCampaign(ctx context.Context, campaignID string) (entities.Campaign, error)
	ListCampaigns(ctx context.Context, filter CampaignFilter) ([]entities.Campaign, error)
	// ListActiveCampaignsByCouponCode backs the one-active-campaign-per-code
	// invariant: returns active basket campaigns in the shop whose coupon
	// carries the given code.
	ListActiveCampaignsByCouponCode(ctx context.Context, shopID, code string) ([]entities.Campaign, error)
	// ExpireCampaignsPastWindow deactivates active campaigns whose end
	// datetime has passed and returns their shop ids for cache bumping.
	ExpireCampaignsPastWindow(ctx context.Context, now time.Time, limit int) ([]entities.Campaign, error)
}

type CouponRepository interface {
	SaveCoupon(ctx context.Context, coupon entities.Coupon) error
	GetCoupon(ctx context.Context, couponID string) (entities.Coupon, error)
	GetCouponByCode(ctx context.Context, shopID, code string) (entities.Coupon, error)
	AppendCouponUsage(ctx context.Context, usage entities.CouponUsage) error
	CountCouponUsages(ctx context.Context, couponID string) (int, error)
	CountCouponUsagesByCustomer(ctx context.Context, couponID, customerID string) (int, error)
}

// FilterIndexRepository persists the materialized (filter, shop product)
// match pairs the catalog path reads instead of re-running filters.
type FilterIndexRepository interface {
	ReplaceProductFilterMatches(ctx context.Context, shopProductID string, filterIDs []string) error
	MatchingFilterIDs(ctx context.Context, shopProductID string) ([]string, error)
}

// MatchCache is the namespace-versioned store memoizing match computations.
// Bumping a namespace invalidates all keys scoped under it without
// enumeration.
type MatchCache interface {
	Get(namespace, key string) (any, bool)
	Set(namespace, key string, value any)
	BumpVersion(namespace string)
}

// CatalogGateway is the catalog collaborator: product read-models for filter
// evaluation and effects, customer group membership, shop timezone.
type CatalogGateway interface {
	GetCatalogProduct(ctx context.Context, shopID, productID string) (entities.CatalogProduct, bool, error)
	GetCatalogProductByShopProductID(ctx context.Context, shopProductID string) (entities.CatalogProduct, bool, error)
	ListCatalogProducts(ctx context.Context, shopID string) ([]entities.CatalogProduct, error)
	CustomerGroupIDs(ctx context.Context, customerID string) ([]string, error)
	ShopLocation(ctx context.Context, shopID string) (*time.Location, error)
}

// CatalogMatcher is the catalog-path matcher consumed by the basket path to
// find lines already discounted at catalog level.
type CatalogMatcher interface {
	MatchingCampaignIDs(ctx context.Context, env entities.ContextEnv, shopProductID string) ([]string, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
