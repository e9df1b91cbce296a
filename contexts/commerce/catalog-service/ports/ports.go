package ports

import (
	"context"
	"time"

	"merx/contexts/commerce/catalog-service/domain/entities"
)

type ProductRepository interface {
	SaveShopProduct(ctx context.Context, product entities.ShopProduct) error
	GetShopProduct(ctx context.Context, shopProductID string) (entities.ShopProduct, error)
	GetShopProductByProduct(ctx context.Context, shopID, productID string) (entities.ShopProduct, error)
	ListShopProducts(ctx context.Context, shopID string) ([]entities.ShopProduct, error)
	ListVariationChildren(ctx context.Context, shopID, parentProductID string) ([]entities.ShopProduct, error)
}

type CategoryRepository interface {
	SaveCategory(ctx context.Context, category entities.Category) error
	GetCategory(ctx context.Context, categoryID string) (entities.Category, error)
	ListCategories(ctx context.Context, shopID string) ([]entities.Category, error)
}

type ContactRepository interface {
	SaveContactGroup(ctx context.Context, group entities.ContactGroup) error
	GetContactGroup(ctx context.Context, groupID string) (entities.ContactGroup, error)
	ReplaceContactGroups(ctx context.Context, contactID string, groupIDs []string) error
	ContactGroupIDs(ctx context.Context, contactID string) ([]string, error)
}

type ShopRepository interface {
	SaveShop(ctx context.Context, shop entities.Shop) error
	GetShop(ctx context.Context, shopID string) (entities.Shop, error)
}

// PromotionInvalidator is the promotion side's invalidation entrypoint.
// Calls are synchronous: a catalog mutation has not finished until the
// promotion caches reflect it.
type PromotionInvalidator interface {
	EntityChanged(ctx context.Context, kind, shopID, entityID string) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
