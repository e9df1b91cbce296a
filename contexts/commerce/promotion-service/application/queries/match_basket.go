package queries

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shopspring/decimal"

	application "merx/contexts/commerce/promotion-service/application"
	"merx/contexts/commerce/promotion-service/domain/entities"
	domainerrors "merx/contexts/commerce/promotion-service/domain/errors"
	"merx/contexts/commerce/promotion-service/ports"
	"merx/internal/platform/metrics"
)

// MatchBasketUseCase walks every active basket campaign of the shop against
// the basket. No ordering or priority: all passing campaigns apply side by
// side. Basket evaluation runs once per basket mutation, so it is eager and
// uncached.
type MatchBasketUseCase struct {
	Campaigns ports.CampaignRepository
	Coupons   ports.CouponRepository
	Catalog   ports.CatalogGateway
	Matcher   ports.CatalogMatcher
	Clock     ports.Clock
	Logger    *slog.Logger
}

type MatchBasketResult struct {
	Campaigns []entities.Campaign
	// Env is the input basket annotated with catalog-discounted line ids,
	// ready for effect computation.
	Env entities.BasketEnv
}

func (uc MatchBasketUseCase) Execute(ctx context.Context, basket entities.BasketEnv) (MatchBasketResult, error) {
	logger := application.ResolveLogger(uc.Logger)

	resolver := ResolveContextUseCase{Catalog: uc.Catalog, Clock: uc.Clock, Logger: uc.Logger}
	env, err := resolver.Execute(ctx, basket.ShopID, basket.CustomerID)
	if err != nil {
		return MatchBasketResult{}, err
	}

	candidates, err := uc.Campaigns.ListCampaigns(ctx, ports.CampaignFilter{
		ShopID:     basket.ShopID,
		Type:       entities.CampaignTypeBasket,
		ActiveOnly: true,
	})
	if err != nil {
		return MatchBasketResult{}, err
	}

	quantities := basket.ProductQuantities()
	suppliers := basket.SupplierIDs()

	if needsCatalogDiscountedLines(candidates) {
		annotated, err := uc.annotateCatalogDiscountedLines(ctx, env, basket)
		if err != nil {
			return MatchBasketResult{}, err
		}
		basket = annotated
	}

	matching := make([]entities.Campaign, 0, len(candidates))
	for _, campaign := range candidates {
		if campaign.HasSupplierScopeConflict(suppliers) {
			continue
		}
		// Cheap negative pre-filter before the per-campaign rule walk.
		if !campaignOverlapsBasket(campaign, quantities, basket) {
			continue
		}
		coupon, err := uc.resolveCoupon(ctx, campaign)
		if err != nil {
			return MatchBasketResult{}, err
		}
		matched, err := campaign.RulesMatchBasket(env, basket, coupon)
		if err != nil {
			return MatchBasketResult{}, err
		}
		if matched {
			matching = append(matching, campaign)
			metrics.BasketCampaignMatches.Inc()
		}
	}

	logger.Debug("basket campaigns matched",
		"event", "basket_match_computed",
		"module", "commerce/promotion-service",
		"layer", "application",
		"shop_id", basket.ShopID,
		"candidate_count", len(candidates),
		"matching_count", len(matching),
	)
	return MatchBasketResult{Campaigns: matching, Env: basket}, nil
}

func (uc MatchBasketUseCase) resolveCoupon(ctx context.Context, campaign entities.Campaign) (*entities.Coupon, error) {
	if campaign.CouponID == "" {
		return nil, nil
	}
	coupon, err := uc.Coupons.GetCoupon(ctx, campaign.CouponID)
	if err != nil {
		// A dangling coupon reference fails the gate, not the walk.
		if errors.Is(err, domainerrors.ErrCouponNotFound) {
			return &entities.Coupon{Active: false}, nil
		}
		return nil, err
	}
	return &coupon, nil
}

// annotateCatalogDiscountedLines marks product lines independently matched by
// an active catalog campaign so undiscounted-baseline rules exclude them.
func (uc MatchBasketUseCase) annotateCatalogDiscountedLines(ctx context.Context, env entities.ContextEnv, basket entities.BasketEnv) (entities.BasketEnv, error) {
	if uc.Matcher == nil {
		return basket, nil
	}
	discounted := make(map[string]bool)
	for _, line := range basket.ProductLines() {
		product, found, err := uc.Catalog.GetCatalogProduct(ctx, basket.ShopID, line.ProductID)
		if err != nil {
			return entities.BasketEnv{}, err
		}
		if !found {
			continue
		}
		ids, err := uc.Matcher.MatchingCampaignIDs(ctx, env, product.ShopProductID)
		if err != nil {
			return entities.BasketEnv{}, err
		}
		if len(ids) > 0 {
			discounted[line.LineID] = true
		}
	}
	basket.CatalogDiscountedLineIDs = discounted
	return basket, nil
}

// needsCatalogDiscountedLines reports whether any candidate carries an
// undiscounted-baseline rule, the only consumers of the annotation.
func needsCatalogDiscountedLines(campaigns []entities.Campaign) bool {
	for _, campaign := range campaigns {
		for _, condition := range campaign.Conditions {
			if condition.Active && condition.Kind == entities.ConditionBasketTotalUndiscountedProductAmount {
				return true
			}
		}
		for _, effect := range campaign.Effects {
			if effect.Kind == entities.EffectUndiscountedPercentage {
				return true
			}
		}
	}
	return false
}

// campaignOverlapsBasket pre-excludes campaigns whose product or category
// conditions cannot possibly be satisfied by the basket contents.
func campaignOverlapsBasket(campaign entities.Campaign, quantities map[string]decimal.Decimal, basket entities.BasketEnv) bool {
	for _, condition := range campaign.Conditions {
		if !condition.Active {
			continue
		}
		switch condition.Kind {
		case entities.ConditionProductsInBasket:
			if !anyProductPresent(condition.ProductIDs, quantities) {
				return false
			}
		case entities.ConditionCategoryProductsBasket:
			if !anyCategoryPresent(condition.CategoryIDs, basket) {
				return false
			}
		}
	}
	return true
}

func anyProductPresent(productIDs []string, quantities map[string]decimal.Decimal) bool {
	for _, id := range productIDs {
		if _, present := quantities[id]; present {
			return true
		}
	}
	return false
}

func anyCategoryPresent(categoryIDs []string, basket entities.BasketEnv) bool {
	for _, line := range basket.ProductLines() {
		for _, id := range categoryIDs {
			if line.InCategory(id) {
				return true
			}
		}
	}
	return false
}
