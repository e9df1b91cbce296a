package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"merx/contexts/commerce/promotion-service/domain/entities"
	domainerrors "merx/contexts/commerce/promotion-service/domain/errors"
	"merx/contexts/commerce/promotion-service/ports"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	campaigns map[string]entities.Campaign
	coupons   map[string]entities.Coupon
	usages    []entities.CouponUsage

	// filter index: shop product id -> matching filter ids
	filterMatches map[string][]string
}

func NewStore(seed []entities.Campaign) *Store {
	campaigns := make(map[string]entities.Campaign, len(seed))
	for _, item := range seed {
		campaigns[item.CampaignID] = item
	}
	return &Store{
		campaigns:     campaigns,
		coupons:       make(map[string]entities.Coupon),
		usages:        make([]entities.CouponUsage, 0),
		filterMatches: make(map[string][]string),
	}
}

func (s *Store) SaveCampaign(_ context.Context, campaign entities.Campaign) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.campaigns[campaign.CampaignID] = campaign
	return nil
}

func (s *Store) GetCampaign(_ context.Context, campaignID string) (entities.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.campaigns[strings.TrimSpace(campaignID)]
	if !exists {
		return entities.Campaign{}, domainerrors.ErrCampaignNotFound
	}
	return item, nil
}

func (s *Store) ListCampaigns(_ context.Context, filter ports.CampaignFilter) ([]entities.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Campaign, 0, len(s.campaigns))
	for _, campaign := range s.campaigns {
		if strings.TrimSpace(filter.ShopID) != "" && campaign.ShopID != strings.TrimSpace(filter.ShopID) {
			continue
		}
		if filter.Type != "" && campaign.Type != filter.Type {
			continue
		}
		if filter.ActiveOnly && !campaign.Active {
			continue
		}
		items = append(items, campaign)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) ListActiveCampaignsByCouponCode(_ context.Context, shopID, code string) ([]entities.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Campaign, 0)
	for _, campaign := range s.campaigns {
		if !campaign.Active || campaign.ShopID != shopID || campaign.CouponID == "" {
			continue
		}
		coupon, exists := s.coupons[campaign.CouponID]
		if !exists || !coupon.CodeMatches(code) {
			continue
		}
		items = append(items, campaign)
	}
	return items, nil
}

func (s *Store) ExpireCampaignsPastWindow(_ context.Context, now time.Time, limit int) ([]entities.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expired := make([]entities.Campaign, 0)
	for id, campaign := range s.campaigns {
		if len(expired) >= limit {
			break
		}
		if !campaign.Active || campaign.EndsAt == nil || !now.After(*campaign.EndsAt) {
			continue
		}
		campaign.Deactivate()
		campaign.UpdatedAt = now
		s.campaigns[id] = campaign
		expired = append(expired, campaign)
	}
	return expired, nil
}

func (s *Store) SaveCoupon(_ context.Context, coupon entities.Coupon) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.coupons[coupon.CouponID] = coupon
	return nil
}

func (s *Store) GetCoupon(_ context.Context, couponID string) (entities.Coupon, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.coupons[strings.TrimSpace(couponID)]
	if !exists {
		return entities.Coupon{}, domainerrors.ErrCouponNotFound
	}
	return item, nil
}

func (s *Store) GetCouponByCode(_ context.Context, shopID, code string) (entities.Coupon, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, coupon := range s.coupons {
		if coupon.ShopID == shopID && coupon.CodeMatches(code) {
			return coupon, nil
		}
	}
	return entities.Coupon{}, domainerrors.ErrCouponNotFound
}

func (s *Store) AppendCouponUsage(_ context.Context, usage entities.CouponUsage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.coupons[usage.CouponID]; !exists {
		return domainerrors.ErrCouponNotFound
	}
	for _, existing := range s.usages {
		if existing.CouponID == usage.CouponID && existing.OrderID == usage.OrderID {
			return domainerrors.ErrCouponAlreadyUsed
		}
	}
	s.usages = append(s.usages, usage)
	return nil
}

func (s *Store) CountCouponUsages(_ context.Context, couponID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, usage := range s.usages {
		if usage.CouponID == couponID {
			count++
		}
	}
	return count, nil
}

func (s *Store) CountCouponUsagesByCustomer(_ context.Context, couponID, customerID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, usage := range s.usages {
		if usage.CouponID == couponID && usage.CustomerID == customerID {
			count++
		}
	}
	return count, nil
}

func (s *Store) ReplaceProductFilterMatches(_ context.Context, shopProductID string, filterIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(filterIDs) == 0 {
		delete(s.filterMatches, shopProductID)
		return nil
	}
	stored := make([]string, len(filterIDs))
	copy(stored, filterIDs)
	s.filterMatches[shopProductID] = stored
	return nil
}

func (s *Store) MatchingFilterIDs(_ context.Context, shopProductID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, exists := s.filterMatches[shopProductID]
	if !exists {
		return nil, nil
	}
	out := make([]string, len(stored))
	copy(out, stored)
	return out, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
