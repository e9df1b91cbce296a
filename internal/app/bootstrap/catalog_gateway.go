package bootstrap

import (
	"context"
	"time"

	catalogqueries "merx/contexts/commerce/catalog-service/application/queries"
	promotioncommands "merx/contexts/commerce/promotion-service/application/commands"
	promotionentities "merx/contexts/commerce/promotion-service/domain/entities"
)

// catalogGateway adapts the catalog module's in-process queries to the
// gateway port the promotion engine consumes.
type catalogGateway struct {
	views    catalogqueries.CatalogViewUseCase
	groups   catalogqueries.CustomerGroupsUseCase
	location catalogqueries.ShopLocationUseCase
}

func (g catalogGateway) GetCatalogProduct(ctx context.Context, shopID, productID string) (promotionentities.CatalogProduct, bool, error) {
	view, found, err := g.views.ByProduct(ctx, shopID, productID)
	if err != nil || !found {
		return promotionentities.CatalogProduct{}, false, err
	}
	return mapCatalogView(view), true, nil
}

func (g catalogGateway) GetCatalogProductByShopProductID(ctx context.Context, shopProductID string) (promotionentities.CatalogProduct, bool, error) {
	view, found, err := g.views.ByShopProduct(ctx, shopProductID)
	if err != nil || !found {
		return promotionentities.CatalogProduct{}, false, err
	}
	return mapCatalogView(view), true, nil
}

func (g catalogGateway) ListCatalogProducts(ctx context.Context, shopID string) ([]promotionentities.CatalogProduct, error) {
	views, err := g.views.ListByShop(ctx, shopID)
	if err != nil {
		return nil, err
	}
	products := make([]promotionentities.CatalogProduct, 0, len(views))
	for _, view := range views {
		products = append(products, mapCatalogView(view))
	}
	return products, nil
}

func (g catalogGateway) CustomerGroupIDs(ctx context.Context, customerID string) ([]string, error) {
	return g.groups.Execute(ctx, customerID)
}

func (g catalogGateway) ShopLocation(ctx context.Context, shopID string) (*time.Location, error) {
	return g.location.Execute(ctx, shopID)
}

func mapCatalogView(view catalogqueries.CatalogView) promotionentities.CatalogProduct {
	return promotionentities.CatalogProduct{
		ShopProductID:      view.ShopProductID,
		ShopID:             view.ShopID,
		ProductID:          view.ProductID,
		ParentProductID:    view.ParentProductID,
		ProductTypeID:      view.ProductTypeID,
		CategoryIDs:        view.CategoryIDs,
		RelatedCategoryIDs: view.RelatedCategoryIDs,
		SupplierIDs:        view.SupplierIDs,
		MinimumPrice:       view.MinimumPrice,
		Orderable:          view.Orderable,
		MinOrderQuantity:   view.MinOrderQuantity,
		MaxOrderQuantity:   view.MaxOrderQuantity,
	}
}

// promotionInvalidator adapts the promotion invalidation use case to the
// synchronous port the catalog module calls on every mutation.
type promotionInvalidator struct {
	invalidate promotioncommands.InvalidateUseCase
}

func (p promotionInvalidator) EntityChanged(ctx context.Context, kind, shopID, entityID string) error {
	return p.invalidate.EntityChanged(ctx, promotioncommands.EntityChangedCommand{
		Kind:     promotionentities.EntityKind(kind),
		ShopID:   shopID,
		EntityID: entityID,
	})
}
