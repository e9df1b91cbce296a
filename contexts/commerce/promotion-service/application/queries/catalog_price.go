package queries

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"merx/contexts/commerce/promotion-service/domain/entities"
)

// CatalogPriceUseCase reduces the matching catalog campaigns to a single
// best price: each campaign's discount is computed independently and the
// largest one wins. Catalog campaigns never stack.
type CatalogPriceUseCase struct {
	Match  MatchCatalogUseCase
	Logger *slog.Logger
}

type CatalogPriceResult struct {
	BasePrice       decimal.Decimal
	DiscountedPrice decimal.Decimal
	Discount        decimal.Decimal
	CampaignID      string
}

func (uc CatalogPriceUseCase) Execute(ctx context.Context, env entities.ContextEnv, shopProductID string, basePrice decimal.Decimal) (CatalogPriceResult, error) {
	result := CatalogPriceResult{
		BasePrice:       basePrice,
		DiscountedPrice: basePrice,
		Discount:        decimal.Zero,
	}

	campaigns, err := uc.Match.Execute(ctx, env, shopProductID)
	if err != nil {
		return CatalogPriceResult{}, err
	}

	for _, campaign := range campaigns {
		for _, effect := range campaign.Effects {
			if !effect.IsCatalogKind() {
				continue
			}
			discount, err := effect.ProductDiscount(basePrice)
			if err != nil {
				return CatalogPriceResult{}, err
			}
			if discount.GreaterThan(result.Discount) {
				result.Discount = discount
				result.CampaignID = campaign.CampaignID
			}
		}
	}

	result.DiscountedPrice = basePrice.Sub(result.Discount)
	return result, nil
}
