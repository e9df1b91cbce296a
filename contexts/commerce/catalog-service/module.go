package catalogservice

import (
	"log/slog"

	httpadapter "merx/contexts/commerce/catalog-service/adapters/http"
	"merx/contexts/commerce/catalog-service/adapters/memory"
	"merx/contexts/commerce/catalog-service/application/commands"
	"merx/contexts/commerce/catalog-service/application/queries"
	"merx/contexts/commerce/catalog-service/ports"
)

type Module struct {
	Handler httpadapter.Handler

	// Queries are exported for in-process consumers: the promotion side's
	// catalog gateway reads through them instead of HTTP.
	CatalogViews   queries.CatalogViewUseCase
	CustomerGroups queries.CustomerGroupsUseCase
	ShopLocation   queries.ShopLocationUseCase

	Store *memory.Store
}

type Dependencies struct {
	Products    ports.ProductRepository
	Categories  ports.CategoryRepository
	Contacts    ports.ContactRepository
	Shops       ports.ShopRepository
	Invalidator ports.PromotionInvalidator
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	catalogViews := queries.CatalogViewUseCase{
		Products: deps.Products,
		Logger:   deps.Logger,
	}
	customerGroups := queries.CustomerGroupsUseCase{
		Contacts: deps.Contacts,
		Logger:   deps.Logger,
	}
	shopLocation := queries.ShopLocationUseCase{
		Shops:  deps.Shops,
		Logger: deps.Logger,
	}

	saveProduct := commands.SaveShopProductUseCase{
		Products:    deps.Products,
		Invalidator: deps.Invalidator,
		Clock:       deps.Clock,
		IDGen:       deps.IDGenerator,
		Logger:      deps.Logger,
	}
	saveCategory := commands.SaveCategoryUseCase{
		Categories:  deps.Categories,
		Invalidator: deps.Invalidator,
		Clock:       deps.Clock,
		IDGen:       deps.IDGenerator,
		Logger:      deps.Logger,
	}
	saveGroup := commands.SaveContactGroupUseCase{
		Contacts:    deps.Contacts,
		Invalidator: deps.Invalidator,
		Clock:       deps.Clock,
		IDGen:       deps.IDGenerator,
		Logger:      deps.Logger,
	}
	replaceGroups := commands.ReplaceContactGroupsUseCase{
		Contacts:    deps.Contacts,
		Invalidator: deps.Invalidator,
		Logger:      deps.Logger,
	}
	saveShop := commands.SaveShopUseCase{
		Shops:  deps.Shops,
		Clock:  deps.Clock,
		IDGen:  deps.IDGenerator,
		Logger: deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{
			SaveProduct:    saveProduct,
			SaveCategory:   saveCategory,
			SaveGroup:      saveGroup,
			ReplaceGroups:  replaceGroups,
			SaveShop:       saveShop,
			CatalogViews:   catalogViews,
			CustomerGroups: customerGroups,
			ShopLocation:   shopLocation,
			Logger:         deps.Logger,
		},
		CatalogViews:   catalogViews,
		CustomerGroups: customerGroups,
		ShopLocation:   shopLocation,
	}
}

func NewInMemoryModule(invalidator ports.PromotionInvalidator, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Products:    store,
		Categories:  store,
		Contacts:    store,
		Shops:       store,
		Invalidator: invalidator,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
