package promotionservice

import (
	"context"
	"log/slog"

	httpadapter "merx/contexts/commerce/promotion-service/adapters/http"
	"merx/contexts/commerce/promotion-service/adapters/memory"
	"merx/contexts/commerce/promotion-service/application/commands"
	"merx/contexts/commerce/promotion-service/application/queries"
	"merx/contexts/commerce/promotion-service/application/workers"
	"merx/contexts/commerce/promotion-service/domain/entities"
	"merx/contexts/commerce/promotion-service/ports"
)

type Module struct {
	Handler       httpadapter.Handler
	WindowExpirer workers.WindowExpirer
	Store         *memory.Store
	CatalogStub   *memory.CatalogStub
}

type Dependencies struct {
	Campaigns   ports.CampaignRepository
	Coupons     ports.CouponRepository
	FilterIndex ports.FilterIndexRepository
	Catalog     ports.CatalogGateway
	Cache       ports.MatchCache
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	BatchSize   int
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	matchCatalog := queries.MatchCatalogUseCase{
		Campaigns:   deps.Campaigns,
		FilterIndex: deps.FilterIndex,
		Cache:       deps.Cache,
		Clock:       deps.Clock,
		Logger:      deps.Logger,
	}
	resolveContext := queries.ResolveContextUseCase{
		Catalog: deps.Catalog,
		Clock:   deps.Clock,
		Logger:  deps.Logger,
	}
	matchBasket := queries.MatchBasketUseCase{
		Campaigns: deps.Campaigns,
		Coupons:   deps.Coupons,
		Catalog:   deps.Catalog,
		Matcher:   catalogMatcher{match: matchCatalog},
		Clock:     deps.Clock,
		Logger:    deps.Logger,
	}
	catalogPrice := queries.CatalogPriceUseCase{
		Match:  matchCatalog,
		Logger: deps.Logger,
	}
	couponUsability := queries.CouponUsabilityUseCase{
		Campaigns: deps.Campaigns,
		Coupons:   deps.Coupons,
		Logger:    deps.Logger,
	}
	getCoupon := queries.GetCouponUseCase{
		Coupons: deps.Coupons,
		Logger:  deps.Logger,
	}
	getCampaign := queries.GetCampaignUseCase{
		Campaigns: deps.Campaigns,
		Logger:    deps.Logger,
	}
	listCampaigns := queries.ListCampaignsUseCase{
		Campaigns: deps.Campaigns,
		Logger:    deps.Logger,
	}

	saveCampaign := commands.SaveCampaignUseCase{
		Campaigns: deps.Campaigns,
		Coupons:   deps.Coupons,
		Cache:     deps.Cache,
		Clock:     deps.Clock,
		IDGen:     deps.IDGenerator,
		Logger:    deps.Logger,
	}
	saveCoupon := commands.SaveCouponUseCase{
		Campaigns: deps.Campaigns,
		Coupons:   deps.Coupons,
		Cache:     deps.Cache,
		Clock:     deps.Clock,
		IDGen:     deps.IDGenerator,
		Logger:    deps.Logger,
	}
	redeemCoupon := commands.RedeemCouponUseCase{
		Campaigns: deps.Campaigns,
		Coupons:   deps.Coupons,
		Clock:     deps.Clock,
		IDGen:     deps.IDGenerator,
		Logger:    deps.Logger,
	}
	applyDiscounts := commands.ApplyBasketDiscountsUseCase{
		Match:   matchBasket,
		Catalog: deps.Catalog,
		IDGen:   deps.IDGenerator,
		Logger:  deps.Logger,
	}
	invalidate := commands.InvalidateUseCase{
		Campaigns:   deps.Campaigns,
		FilterIndex: deps.FilterIndex,
		Catalog:     deps.Catalog,
		Cache:       deps.Cache,
		Logger:      deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{
			SaveCampaign:    saveCampaign,
			SaveCoupon:      saveCoupon,
			RedeemCoupon:    redeemCoupon,
			ApplyDiscounts:  applyDiscounts,
			Invalidate:      invalidate,
			GetCampaign:     getCampaign,
			ListCampaigns:   listCampaigns,
			MatchBasket:     matchBasket,
			MatchCatalog:    matchCatalog,
			CatalogPrice:    catalogPrice,
			CouponUsability: couponUsability,
			GetCoupon:       getCoupon,
			ResolveContext:  resolveContext,
			Logger:          deps.Logger,
		},
		WindowExpirer: workers.WindowExpirer{
			Campaigns: deps.Campaigns,
			Cache:     deps.Cache,
			Clock:     deps.Clock,
			BatchSize: deps.BatchSize,
			Logger:    deps.Logger,
		},
	}
}

func NewInMemoryModule(seed []entities.Campaign, cache ports.MatchCache, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	catalog := memory.NewCatalogStub()
	module := NewModule(Dependencies{
		Campaigns:   store,
		Coupons:     store,
		FilterIndex: store,
		Catalog:     catalog,
		Cache:       cache,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	module.CatalogStub = catalog
	return module
}

// catalogMatcher adapts the catalog match query to the port consumed by the
// basket path.
type catalogMatcher struct {
	match queries.MatchCatalogUseCase
}

func (m catalogMatcher) MatchingCampaignIDs(ctx context.Context, env entities.ContextEnv, shopProductID string) ([]string, error) {
	return m.match.MatchingCampaignIDs(ctx, env, shopProductID)
}
