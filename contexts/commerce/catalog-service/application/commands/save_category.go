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

type SaveCategoryUseCase struct {
	Categories  ports.CategoryRepository
	Invalidator ports.PromotionInvalidator
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	Logger      *slog.Logger
}

type SaveCategoryCommand struct {
	Category entities.Category
}

func (uc SaveCategoryUseCase) Execute(ctx context.Context, cmd SaveCategoryCommand) (entities.Category, error) {
	logger := application.ResolveLogger(uc.Logger)
	now := uc.Clock.Now().UTC()

	category := cmd.Category
	category.Name = strings.TrimSpace(category.Name)
	category.ShopID = strings.TrimSpace(category.ShopID)
	if !category.ValidateBasics() {
		return entities.Category{}, domainerrors.ErrInvalidCategoryInput
	}

	if category.CategoryID == "" {
		id, err := uc.IDGen.NewID(ctx)
		if err != nil {
			return entities.Category{}, err
		}
		category.CategoryID = id
		category.CreatedAt = now
	}
	category.UpdatedAt = now

	if err := uc.Categories.SaveCategory(ctx, category); err != nil {
		return entities.Category{}, err
	}
	if err := uc.Invalidator.EntityChanged(ctx, entityKindCategory, category.ShopID, category.CategoryID); err != nil {
		return entities.Category{}, err
	}

	logger.Info("category saved",
		"event", "category_saved",
		"module", "commerce/catalog-service",
		"layer", "application",
		"shop_id", category.ShopID,
		"category_id", category.CategoryID,
	)
	return category, nil
}

type SaveShopUseCase struct {
	Shops  ports.ShopRepository
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func (uc SaveShopUseCase) Execute(ctx context.Context, shop entities.Shop) (entities.Shop, error) {
	logger := application.ResolveLogger(uc.Logger)
	now := uc.Clock.Now().UTC()

	if shop.ShopID == "" {
		id, err := uc.IDGen.NewID(ctx)
		if err != nil {
			return entities.Shop{}, err
		}
		shop.ShopID = id
		shop.CreatedAt = now
	}
	shop.UpdatedAt = now

	if err := uc.Shops.SaveShop(ctx, shop); err != nil {
		return entities.Shop{}, err
	}
	logger.Info("shop saved",
		"event", "shop_saved",
		"module", "commerce/catalog-service",
		"layer", "application",
		"shop_id", shop.ShopID,
	)
	return shop, nil
}
