package memory

import (
	"context"
	"sync"
	"time"

	"merx/contexts/commerce/promotion-service/domain/entities"
)

// CatalogStub is a seedable in-memory catalog collaborator for tests and
// local runs without the catalog service.
type CatalogStub struct {
	mu sync.RWMutex

	// keyed by "<shop>/<product>"
	products map[string]entities.CatalogProduct
	// keyed by shop product id
	byShopProduct map[string]entities.CatalogProduct
	groups        map[string][]string
	locations     map[string]*time.Location
}

func NewCatalogStub() *CatalogStub {
	return &CatalogStub{
		products:      make(map[string]entities.CatalogProduct),
		byShopProduct: make(map[string]entities.CatalogProduct),
		groups:        make(map[string][]string),
		locations:     make(map[string]*time.Location),
	}
}

func (c *CatalogStub) SeedProduct(product entities.CatalogProduct) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.products[product.ShopID+"/"+product.ProductID] = product
	c.byShopProduct[product.ShopProductID] = product
}

func (c *CatalogStub) SeedGroups(customerID string, groupIDs []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.groups[customerID] = groupIDs
}

func (c *CatalogStub) SeedLocation(shopID string, location *time.Location) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.locations[shopID] = location
}

func (c *CatalogStub) GetCatalogProduct(_ context.Context, shopID, productID string) (entities.CatalogProduct, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	product, exists := c.products[shopID+"/"+productID]
	return product, exists, nil
}

func (c *CatalogStub) GetCatalogProductByShopProductID(_ context.Context, shopProductID string) (entities.CatalogProduct, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	product, exists := c.byShopProduct[shopProductID]
	return product, exists, nil
}

func (c *CatalogStub) ListCatalogProducts(_ context.Context, shopID string) ([]entities.CatalogProduct, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	items := make([]entities.CatalogProduct, 0)
	for _, product := range c.products {
		if product.ShopID == shopID {
			items = append(items, product)
		}
	}
	return items, nil
}

func (c *CatalogStub) CustomerGroupIDs(_ context.Context, customerID string) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.groups[customerID], nil
}

func (c *CatalogStub) ShopLocation(_ context.Context, shopID string) (*time.Location, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.locations[shopID], nil
}
