package commands

import (
	"context"
	"log/slog"
	"strings"

	application "merx/contexts/commerce/catalog-service/application"
	"merx/contexts/commerce/catalog-service/domain/entities"
	domainerrors "merx/contexts/commerce/catalog-service/domain/errors"
	"merx/contexts/commerce/catalog-service/ports"
)

const (
	entityKindShopProduct  = "shop_product"
	entityKindCategory     = "category"
	entityKindContactGroup = "contact_group"
	entityKindProductType  = "product_type"
)

// SaveShopProductUseCase persists a shop product and synchronously tells the
// promotion side before returning. A save whose invalidation call failed is
// reported as a failure even though the row is written, so callers retry and
// caches never stay stale silently.
type SaveShopProductUseCase struct {
	Products    ports.ProductRepository
	Invalidator ports.PromotionInvalidator
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	Logger      *slog.Logger
}

type SaveShopProductCommand struct {
	Product entities.ShopProduct
}

func (uc SaveShopProductUseCase) Execute(ctx context.Context, cmd SaveShopProductCommand) (entities.ShopProduct, error) {
	logger := application.ResolveLogger(uc.Logger)
	now := uc.Clock.Now().UTC()

	product := cmd.Product
	product.Name = strings.TrimSpace(product.Name)
	product.ShopID = strings.TrimSpace(product.ShopID)
	product.ProductID = strings.TrimSpace(product.ProductID)
	if !product.ValidateBasics() {
		return entities.ShopProduct{}, domainerrors.ErrInvalidProductInput
	}

	if product.ShopProductID == "" {
		id, err := uc.IDGen.NewID(ctx)
		if err != nil {
			return entities.ShopProduct{}, err
		}
		product.ShopProductID = id
		product.CreatedAt = now
	}
	product.UpdatedAt = now

	if err := uc.Products.SaveShopProduct(ctx, product); err != nil {
		return entities.ShopProduct{}, err
	}
	if err := uc.Invalidator.EntityChanged(ctx, entityKindShopProduct, product.ShopID, product.ShopProductID); err != nil {
		return entities.ShopProduct{}, err
	}

	logger.Info("shop product saved",
		"event", "shop_product_saved",
		"module", "commerce/catalog-service",
		"layer", "application",
		"shop_id", product.ShopID,
		"shop_product_id", product.ShopProductID,
	)
	return product, nil
}
