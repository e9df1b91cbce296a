package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"merx/contexts/commerce/catalog-service/domain/entities"
	domainerrors "merx/contexts/commerce/catalog-service/domain/errors"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	products   map[string]entities.ShopProduct
	categories map[string]entities.Category
	groups     map[string]entities.ContactGroup
	shops      map[string]entities.Shop

	// contact id -> group ids
	memberships map[string][]string
}

func NewStore() *Store {
	return &Store{
		products:    make(map[string]entities.ShopProduct),
		categories:  make(map[string]entities.Category),
		groups:      make(map[string]entities.ContactGroup),
		shops:       make(map[string]entities.Shop),
		memberships: make(map[string][]string),
	}
}

func (s *Store) SaveShopProduct(_ context.Context, product entities.ShopProduct) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products[product.ShopProductID] = product
	return nil
}

func (s *Store) GetShopProduct(_ context.Context, shopProductID string) (entities.ShopProduct, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.products[strings.TrimSpace(shopProductID)]
	if !exists {
		return entities.ShopProduct{}, domainerrors.ErrProductNotFound
	}
	return item, nil
}

func (s *Store) GetShopProductByProduct(_ context.Context, shopID, productID string) (entities.ShopProduct, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.products {
		if item.ShopID == shopID && item.ProductID == productID {
			return item, nil
		}
	}
	return entities.ShopProduct{}, domainerrors.ErrProductNotFound
}

func (s *Store) ListShopProducts(_ context.Context, shopID string) ([]entities.ShopProduct, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.ShopProduct, 0)
	for _, item := range s.products {
		if item.ShopID == shopID {
			items = append(items, item)
		}
	}
	return items, nil
}

func (s *Store) ListVariationChildren(_ context.Context, shopID, parentProductID string) ([]entities.ShopProduct, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.ShopProduct, 0)
	for _, item := range s.products {
		if item.ShopID == shopID && item.ParentProductID == parentProductID {
			items = append(items, item)
		}
	}
	return items, nil
}

func (s *Store) SaveCategory(_ context.Context, category entities.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.categories[category.CategoryID] = category
	return nil
}

func (s *Store) GetCategory(_ context.Context, categoryID string) (entities.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.categories[strings.TrimSpace(categoryID)]
	if !exists {
		return entities.Category{}, domainerrors.ErrCategoryNotFound
	}
	return item, nil
}

func (s *Store) ListCategories(_ context.Context, shopID string) ([]entities.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Category, 0)
	for _, item := range s.categories {
		if item.ShopID == shopID {
			items = append(items, item)
		}
	}
	return items, nil
}

func (s *Store) SaveContactGroup(_ context.Context, group entities.ContactGroup) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.groups[group.GroupID] = group
	return nil
}

func (s *Store) GetContactGroup(_ context.Context, groupID string) (entities.ContactGroup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.groups[strings.TrimSpace(groupID)]
	if !exists {
		return entities.ContactGroup{}, domainerrors.ErrContactGroupNotFound
	}
	return item, nil
}

func (s *Store) ReplaceContactGroups(_ context.Context, contactID string, groupIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(groupIDs) == 0 {
		delete(s.memberships, contactID)
		return nil
	}
	stored := make([]string, len(groupIDs))
	copy(stored, groupIDs)
	s.memberships[contactID] = stored
	return nil
}

func (s *Store) ContactGroupIDs(_ context.Context, contactID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, exists := s.memberships[contactID]
	if !exists {
		return nil, nil
	}
	out := make([]string, len(stored))
	copy(out, stored)
	return out, nil
}

func (s *Store) SaveShop(_ context.Context, shop entities.Shop) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.shops[shop.ShopID] = shop
	return nil
}

func (s *Store) GetShop(_ context.Context, shopID string) (entities.Shop, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.shops[strings.TrimSpace(shopID)]
	if !exists {
		return entities.Shop{}, domainerrors.ErrShopNotFound
	}
	return item, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
