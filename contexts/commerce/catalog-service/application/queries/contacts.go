package queries

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	application "merx/contexts/commerce/catalog-service/application"
	domainerrors "merx/contexts/commerce/catalog-service/domain/errors"
	"merx/contexts/commerce/catalog-service/ports"
)

type CustomerGroupsUseCase struct {
	Contacts ports.ContactRepository
	Logger   *slog.Logger
}

func (uc CustomerGroupsUseCase) Execute(ctx context.Context, contactID string) ([]string, error) {
	contactID = strings.TrimSpace(contactID)
	if contactID == "" {
		return nil, nil
	}
	return uc.Contacts.ContactGroupIDs(ctx, contactID)
}

// ShopLocationUseCase resolves the shop's configured timezone. An unset or
// unparsable timezone yields a nil location; the caller falls back to UTC.
type ShopLocationUseCase struct {
	Shops  ports.ShopRepository
	Logger *slog.Logger
}

func (uc ShopLocationUseCase) Execute(ctx context.Context, shopID string) (*time.Location, error) {
	logger := application.ResolveLogger(uc.Logger)

	shop, err := uc.Shops.GetShop(ctx, strings.TrimSpace(shopID))
	if err != nil {
		if errors.Is(err, domainerrors.ErrShopNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if strings.TrimSpace(shop.Timezone) == "" {
		return nil, nil
	}
	location, err := time.LoadLocation(shop.Timezone)
	if err != nil {
		logger.Warn("shop timezone unparsable, using UTC",
			"event", "shop_timezone_unparsable",
			"module", "commerce/catalog-service",
			"layer", "application",
			"shop_id", shop.ShopID,
			"timezone", shop.Timezone,
		)
		return nil, nil
	}
	return location, nil
}
