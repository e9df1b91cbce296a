package commands

import (
	"context"
	"fmt"
	"log/slog"

	application "merx/contexts/commerce/promotion-service/application"
	"merx/contexts/commerce/promotion-service/domain/entities"
	domainerrors "merx/contexts/commerce/promotion-service/domain/errors"
	"merx/contexts/commerce/promotion-service/ports"
)

// InvalidateUseCase reacts to catalog entity changes: it drops the cache
// namespaces the change can affect and rebuilds the materialized filter
// index where product attributes feed into filter matches.
type InvalidateUseCase struct {
	Campaigns   ports.CampaignRepository
	FilterIndex ports.FilterIndexRepository
	Catalog     ports.CatalogGateway
	Cache       ports.MatchCache
	Logger      *slog.Logger
}

type EntityChangedCommand struct {
	Kind     entities.EntityKind
	ShopID   string
	EntityID string
}

func (uc InvalidateUseCase) EntityChanged(ctx context.Context, cmd EntityChangedCommand) error {
	logger := application.ResolveLogger(uc.Logger)

	switch cmd.Kind {
	case entities.EntityShopProduct:
		product, found, err := uc.Catalog.GetCatalogProductByShopProductID(ctx, cmd.EntityID)
		if err != nil {
			return err
		}
		if found {
			if err := uc.rebuildProductIndex(ctx, cmd.ShopID, product); err != nil {
				return err
			}
		} else if err := uc.FilterIndex.ReplaceProductFilterMatches(ctx, cmd.EntityID, nil); err != nil {
			return err
		}
		uc.Cache.BumpVersion(application.CatalogFilterNamespace(cmd.ShopID))
		uc.Cache.BumpVersion(application.CampaignMatchNamespace(cmd.ShopID))
	case entities.EntityCategory, entities.EntityProductType:
		if err := uc.rebuildShopIndex(ctx, cmd.ShopID); err != nil {
			return err
		}
		uc.Cache.BumpVersion(application.CatalogFilterNamespace(cmd.ShopID))
		uc.Cache.BumpVersion(application.CampaignMatchNamespace(cmd.ShopID))
	case entities.EntityContactGroup:
		uc.Cache.BumpVersion(application.ContextConditionNamespace(cmd.ShopID))
		uc.Cache.BumpVersion(application.CampaignMatchNamespace(cmd.ShopID))
	default:
		return fmt.Errorf("%w: %q", domainerrors.ErrUnknownEntityKind, cmd.Kind)
	}

	logger.Info("caches invalidated",
		"event", "promotion_caches_invalidated",
		"module", "commerce/promotion-service",
		"layer", "application",
		"entity_kind", string(cmd.Kind),
		"shop_id", cmd.ShopID,
		"entity_id", cmd.EntityID,
	)
	return nil
}

// RebuildShopFilterIndex recomputes filter matches for every product in the
// shop. Exposed for bulk import paths and operational resyncs.
func (uc InvalidateUseCase) RebuildShopFilterIndex(ctx context.Context, shopID string) error {
	if err := uc.rebuildShopIndex(ctx, shopID); err != nil {
		return err
	}
	uc.Cache.BumpVersion(application.CatalogFilterNamespace(shopID))
	uc.Cache.BumpVersion(application.CampaignMatchNamespace(shopID))
	return nil
}

func (uc InvalidateUseCase) rebuildShopIndex(ctx context.Context, shopID string) error {
	products, err := uc.Catalog.ListCatalogProducts(ctx, shopID)
	if err != nil {
		return err
	}
	filters, err := uc.shopFilters(ctx, shopID)
	if err != nil {
		return err
	}
	for _, product := range products {
		if err := uc.replaceMatches(ctx, product, filters); err != nil {
			return err
		}
	}
	return nil
}

func (uc InvalidateUseCase) rebuildProductIndex(ctx context.Context, shopID string, product entities.CatalogProduct) error {
	filters, err := uc.shopFilters(ctx, shopID)
	if err != nil {
		return err
	}
	return uc.replaceMatches(ctx, product, filters)
}

// shopFilters collects the filters of every active catalog campaign in the
// shop. Inactive campaigns keep no index rows.
func (uc InvalidateUseCase) shopFilters(ctx context.Context, shopID string) ([]entities.Filter, error) {
	campaigns, err := uc.Campaigns.ListCampaigns(ctx, ports.CampaignFilter{
		ShopID:     shopID,
		Type:       entities.CampaignTypeCatalog,
		ActiveOnly: true,
	})
	if err != nil {
		return nil, err
	}
	filters := make([]entities.Filter, 0)
	for _, campaign := range campaigns {
		filters = append(filters, campaign.Filters...)
	}
	return filters, nil
}

func (uc InvalidateUseCase) replaceMatches(ctx context.Context, product entities.CatalogProduct, filters []entities.Filter) error {
	matchIDs := make([]string, 0)
	for _, filter := range filters {
		matched, err := filter.MatchesProduct(product)
		if err != nil {
			return err
		}
		if matched {
			matchIDs = append(matchIDs, filter.FilterID)
		}
	}
	return uc.FilterIndex.ReplaceProductFilterMatches(ctx, product.ShopProductID, matchIDs)
}
