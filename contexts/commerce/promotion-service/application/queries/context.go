package queries

import (
	"context"
	"log/slog"
	"strings"

	application "merx/contexts/commerce/promotion-service/application"
	"merx/contexts/commerce/promotion-service/domain/entities"
	"merx/contexts/commerce/promotion-service/ports"
)

// ResolveContextUseCase assembles the pricing context the matching paths
// evaluate against: customer group membership and the shop's local clock.
type ResolveContextUseCase struct {
	Catalog ports.CatalogGateway
	Clock   ports.Clock
	Logger  *slog.Logger
}

func (uc ResolveContextUseCase) Execute(ctx context.Context, shopID, customerID string) (entities.ContextEnv, error) {
	logger := application.ResolveLogger(uc.Logger)
	env := entities.ContextEnv{
		ShopID:     strings.TrimSpace(shopID),
		CustomerID: strings.TrimSpace(customerID),
		Now:        uc.Clock.Now().UTC(),
	}
	if env.CustomerID != "" {
		groups, err := uc.Catalog.CustomerGroupIDs(ctx, env.CustomerID)
		if err != nil {
			return entities.ContextEnv{}, err
		}
		env.GroupIDs = groups
	}
	location, err := uc.Catalog.ShopLocation(ctx, env.ShopID)
	if err != nil {
		logger.Warn("shop timezone lookup failed, using UTC",
			"event", "shop_timezone_fallback",
			"module", "commerce/promotion-service",
			"layer", "application",
			"shop_id", env.ShopID,
			"error", err.Error(),
		)
	} else {
		env.Location = location
	}
	return env, nil
}
