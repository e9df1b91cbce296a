package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	application "merx/contexts/commerce/promotion-service/application"
	"merx/contexts/commerce/promotion-service/application/queries"
	"merx/contexts/commerce/promotion-service/domain/entities"
	"merx/contexts/commerce/promotion-service/ports"
)

// ApplyBasketDiscountsUseCase computes the full discount outcome for a
// basket: every matching basket campaign's effects apply side by side,
// whole-basket amounts stack, per-line discounts follow higher-wins, and the
// result is clamped so no line or total ever goes negative or undercuts a
// configured minimum price.
type ApplyBasketDiscountsUseCase struct {
	Match   queries.MatchBasketUseCase
	Catalog ports.CatalogGateway
	IDGen   ports.IDGenerator
	Logger  *slog.Logger
}

type ApplyBasketDiscountsResult struct {
	// Lines are the caller's lines with per-line discounts written in.
	Lines []entities.BasketLine
	// NewLines are free-product lines injected by effects.
	NewLines []entities.BasketLine
	// BasketDiscount is the stacked whole-basket discount, already clamped
	// to the basket total.
	BasketDiscount decimal.Decimal
	FinalTotal     decimal.Decimal
	CampaignIDs    []string
}

func (uc ApplyBasketDiscountsUseCase) Execute(ctx context.Context, basket entities.BasketEnv) (ApplyBasketDiscountsResult, error) {
	logger := application.ResolveLogger(uc.Logger)

	matched, err := uc.Match.Execute(ctx, basket)
	if err != nil {
		return ApplyBasketDiscountsResult{}, err
	}
	env := matched.Env
	lines := make([]entities.BasketLine, len(env.Lines))
	copy(lines, env.Lines)
	env.Lines = lines

	basketDiscount := decimal.Zero
	newLines := make([]entities.BasketLine, 0)
	campaignIDs := make([]string, 0, len(matched.Campaigns))

	for _, campaign := range matched.Campaigns {
		campaignIDs = append(campaignIDs, campaign.CampaignID)
		for _, effect := range campaign.Effects {
			switch {
			case effect.IsBasketKind():
				discount, err := effect.BasketDiscount(env, campaign.SupplierID)
				if err != nil {
					return ApplyBasketDiscountsResult{}, err
				}
				basketDiscount = basketDiscount.Add(discount)
			case effect.Kind == entities.EffectFreeProductLine:
				injected, err := uc.freeProductLines(ctx, env, campaign, effect)
				if err != nil {
					return ApplyBasketDiscountsResult{}, err
				}
				newLines = append(newLines, injected...)
			case effect.IsLineKind():
				if err := effect.ApplyToLines(lines, campaign.SupplierID); err != nil {
					return ApplyBasketDiscountsResult{}, err
				}
			default:
				return ApplyBasketDiscountsResult{}, fmt.Errorf("effect %s: unhandled kind %s", effect.EffectID, effect.Kind)
			}
		}
	}

	if err := uc.clampToMinimumPrices(ctx, env.ShopID, lines); err != nil {
		return ApplyBasketDiscountsResult{}, err
	}

	lineTotal := decimal.Zero
	for _, line := range lines {
		lineTotal = lineTotal.Add(line.Total())
	}
	basketDiscount = entities.ClampDiscount(lineTotal, basketDiscount)

	result := ApplyBasketDiscountsResult{
		Lines:          lines,
		NewLines:       newLines,
		BasketDiscount: basketDiscount,
		FinalTotal:     lineTotal.Sub(basketDiscount),
		CampaignIDs:    campaignIDs,
	}
	logger.Info("basket discounts applied",
		"event", "basket_discounts_applied",
		"module", "commerce/promotion-service",
		"layer", "application",
		"shop_id", env.ShopID,
		"campaign_count", len(campaignIDs),
		"basket_discount", basketDiscount.String(),
		"final_total", result.FinalTotal.String(),
	)
	return result, nil
}

// freeProductLines emits a zero-price line per configured product. Products
// without a shop instance, or not orderable at the configured quantity for
// the resolved supplier, are skipped silently.
func (uc ApplyBasketDiscountsUseCase) freeProductLines(ctx context.Context, env entities.BasketEnv, campaign entities.Campaign, effect entities.Effect) ([]entities.BasketLine, error) {
	quantity := effect.Quantity
	if !quantity.IsPositive() {
		quantity = decimal.NewFromInt(1)
	}
	injected := make([]entities.BasketLine, 0, len(effect.ProductIDs))
	for _, productID := range effect.ProductIDs {
		product, found, err := uc.Catalog.GetCatalogProduct(ctx, env.ShopID, productID)
		if err != nil {
			return nil, err
		}
		if !found {
			continue
		}
		supplierID := product.ResolveSupplier(campaign.SupplierID)
		if !product.IsOrderable(supplierID, quantity) {
			continue
		}
		lineID, err := uc.IDGen.NewID(ctx)
		if err != nil {
			return nil, err
		}
		injected = append(injected, entities.NewFreeProductLine(lineID, product, supplierID, quantity, campaign.Name))
	}
	return injected, nil
}

// clampToMinimumPrices enforces configured minimum prices after every line
// effect has run.
func (uc ApplyBasketDiscountsUseCase) clampToMinimumPrices(ctx context.Context, shopID string, lines []entities.BasketLine) error {
	for i := range lines {
		line := &lines[i]
		if line.Type != entities.LineTypeProduct || line.Source == entities.LineSourceDiscountModule {
			continue
		}
		if !line.DiscountAmount.IsPositive() {
			continue
		}
		product, found, err := uc.Catalog.GetCatalogProduct(ctx, shopID, line.ProductID)
		if err != nil {
			return err
		}
		if !found {
			continue
		}
		entities.ClampToMinimumPrice(line, product.MinimumPrice)
	}
	return nil
}
