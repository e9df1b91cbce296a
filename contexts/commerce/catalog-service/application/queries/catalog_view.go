package queries

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shopspring/decimal"

	"merx/contexts/commerce/catalog-service/domain/entities"
	domainerrors "merx/contexts/commerce/catalog-service/domain/errors"
	"merx/contexts/commerce/catalog-service/ports"
)

// CatalogView is the flattened product projection served to the promotion
// side: categories with variation-family inheritance folded in, suppliers
// and orderability resolved.
type CatalogView struct {
	ShopProductID   string
	ShopID          string
	ProductID       string
	ParentProductID string
	ProductTypeID   string

	CategoryIDs        []string
	RelatedCategoryIDs []string

	SupplierIDs  []string
	MinimumPrice *decimal.Decimal

	Orderable        bool
	MinOrderQuantity decimal.Decimal
	MaxOrderQuantity decimal.Decimal
}

// CatalogViewUseCase projects shop products into catalog views. Variation
// children inherit the parent's categories; parents union in their
// children's so a category filter on either side of the family matches.
type CatalogViewUseCase struct {
	Products ports.ProductRepository
	Logger   *slog.Logger
}

func (uc CatalogViewUseCase) ByProduct(ctx context.Context, shopID, productID string) (CatalogView, bool, error) {
	product, err := uc.Products.GetShopProductByProduct(ctx, shopID, productID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrProductNotFound) {
			return CatalogView{}, false, nil
		}
		return CatalogView{}, false, err
	}
	view, err := uc.project(ctx, product)
	return view, err == nil, err
}

func (uc CatalogViewUseCase) ByShopProduct(ctx context.Context, shopProductID string) (CatalogView, bool, error) {
	product, err := uc.Products.GetShopProduct(ctx, shopProductID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrProductNotFound) {
			return CatalogView{}, false, nil
		}
		return CatalogView{}, false, err
	}
	view, err := uc.project(ctx, product)
	return view, err == nil, err
}

func (uc CatalogViewUseCase) ListByShop(ctx context.Context, shopID string) ([]CatalogView, error) {
	products, err := uc.Products.ListShopProducts(ctx, shopID)
	if err != nil {
		return nil, err
	}
	views := make([]CatalogView, 0, len(products))
	for _, product := range products {
		view, err := uc.project(ctx, product)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

func (uc CatalogViewUseCase) project(ctx context.Context, product entities.ShopProduct) (CatalogView, error) {
	related, err := uc.relatedCategories(ctx, product)
	if err != nil {
		return CatalogView{}, err
	}
	return CatalogView{
		ShopProductID:      product.ShopProductID,
		ShopID:             product.ShopID,
		ProductID:          product.ProductID,
		ParentProductID:    product.ParentProductID,
		ProductTypeID:      product.ProductTypeID,
		CategoryIDs:        product.CategoryIDs,
		RelatedCategoryIDs: related,
		SupplierIDs:        product.SupplierIDs,
		MinimumPrice:       product.MinimumPrice,
		Orderable:          product.Visible && product.Purchasable,
		MinOrderQuantity:   product.MinOrderQuantity,
		MaxOrderQuantity:   product.MaxOrderQuantity,
	}, nil
}

func (uc CatalogViewUseCase) relatedCategories(ctx context.Context, product entities.ShopProduct) ([]string, error) {
	related := make([]string, 0)
	if product.ParentProductID != "" {
		parent, err := uc.Products.GetShopProductByProduct(ctx, product.ShopID, product.ParentProductID)
		if err != nil && !errors.Is(err, domainerrors.ErrProductNotFound) {
			return nil, err
		}
		if err == nil {
			related = append(related, parent.CategoryIDs...)
		}
		return related, nil
	}
	children, err := uc.Products.ListVariationChildren(ctx, product.ShopID, product.ProductID)
	if err != nil {
		return nil, err
	}
	for _, child := range children {
		related = append(related, child.CategoryIDs...)
	}
	return related, nil
}
