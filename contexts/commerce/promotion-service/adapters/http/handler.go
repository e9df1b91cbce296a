package httpadapter

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"merx/contexts/commerce/promotion-service/application/commands"
	"merx/contexts/commerce/promotion-service/application/queries"
	"merx/contexts/commerce/promotion-service/domain/entities"
	domainerrors "merx/contexts/commerce/promotion-service/domain/errors"
	httptransport "merx/contexts/commerce/promotion-service/transport/http"
)

type Handler struct {
	SaveCampaign    commands.SaveCampaignUseCase
	SaveCoupon      commands.SaveCouponUseCase
	RedeemCoupon    commands.RedeemCouponUseCase
	ApplyDiscounts  commands.ApplyBasketDiscountsUseCase
	Invalidate      commands.InvalidateUseCase
	GetCampaign     queries.GetCampaignUseCase
	ListCampaigns   queries.ListCampaignsUseCase
	MatchBasket     queries.MatchBasketUseCase
	MatchCatalog    queries.MatchCatalogUseCase
	CatalogPrice    queries.CatalogPriceUseCase
	CouponUsability queries.CouponUsabilityUseCase
	GetCoupon       queries.GetCouponUseCase
	ResolveContext  queries.ResolveContextUseCase
	Logger          *slog.Logger
}

func (h Handler) SaveCampaignHandler(ctx context.Context, req httptransport.SaveCampaignRequest) (httptransport.SaveCampaignResponse, error) {
	campaign, err := campaignFromRequest(req)
	if err != nil {
		return httptransport.SaveCampaignResponse{}, domainerrors.ErrInvalidCampaignInput
	}
	saved, err := h.SaveCampaign.Execute(ctx, commands.SaveCampaignCommand{Campaign: campaign})
	if err != nil {
		return httptransport.SaveCampaignResponse{}, err
	}
	return httptransport.SaveCampaignResponse{Campaign: mapCampaign(saved)}, nil
}

func (h Handler) GetCampaignHandler(ctx context.Context, campaignID string) (httptransport.GetCampaignResponse, error) {
	item, err := h.GetCampaign.Execute(ctx, campaignID)
	if err != nil {
		return httptransport.GetCampaignResponse{}, err
	}
	return httptransport.GetCampaignResponse{Campaign: mapCampaign(item)}, nil
}

func (h Handler) ListCampaignsHandler(ctx context.Context, shopID, campaignType string, activeOnly bool) (httptransport.ListCampaignsResponse, error) {
	items, err := h.ListCampaigns.Execute(ctx, queries.ListCampaignsQuery{
		ShopID:     shopID,
		Type:       campaignType,
		ActiveOnly: activeOnly,
	})
	if err != nil {
		return httptransport.ListCampaignsResponse{}, err
	}
	result := make([]httptransport.CampaignDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapCampaign(item))
	}
	return httptransport.ListCampaignsResponse{Items: result}, nil
}

func (h Handler) SaveCouponHandler(ctx context.Context, req httptransport.SaveCouponRequest) (httptransport.SaveCouponResponse, error) {
	saved, err := h.SaveCoupon.Execute(ctx, commands.SaveCouponCommand{Coupon: entities.Coupon{
		CouponID:           req.CouponID,
		ShopID:             req.ShopID,
		SupplierID:         req.SupplierID,
		Code:               req.Code,
		Active:             req.Active,
		UsageLimit:         req.UsageLimit,
		UsageLimitCustomer: req.UsageLimitCustomer,
	}})
	if err != nil {
		return httptransport.SaveCouponResponse{}, err
	}
	return httptransport.SaveCouponResponse{Coupon: mapCoupon(saved)}, nil
}

func (h Handler) CouponUsabilityHandler(ctx context.Context, shopID, code, customerID string) (httptransport.CouponUsabilityResponse, error) {
	usable, err := h.CouponUsability.Execute(ctx, shopID, code, customerID)
	if err != nil {
		return httptransport.CouponUsabilityResponse{}, err
	}
	return httptransport.CouponUsabilityResponse{Code: strings.TrimSpace(code), Usable: usable}, nil
}

func (h Handler) RedeemCouponHandler(ctx context.Context, shopID string, req httptransport.RedeemCouponRequest) (httptransport.RedeemCouponResponse, error) {
	usage, err := h.RedeemCoupon.Execute(ctx, commands.RedeemCouponCommand{
		ShopID:     shopID,
		Code:       req.Code,
		OrderID:    req.OrderID,
		CustomerID: req.CustomerID,
	})
	if err != nil {
		return httptransport.RedeemCouponResponse{}, err
	}
	return httptransport.RedeemCouponResponse{
		UsageID:    usage.UsageID,
		CouponID:   usage.CouponID,
		OrderID:    usage.OrderID,
		RedeemedAt: usage.CreatedAt.Format(time.RFC3339),
	}, nil
}

func (h Handler) MatchBasketHandler(ctx context.Context, req httptransport.BasketRequest) (httptransport.MatchBasketResponse, error) {
	result, err := h.MatchBasket.Execute(ctx, basketFromRequest(req))
	if err != nil {
		return httptransport.MatchBasketResponse{}, err
	}
	items := make([]httptransport.CampaignDTO, 0, len(result.Campaigns))
	for _, item := range result.Campaigns {
		items = append(items, mapCampaign(item))
	}
	return httptransport.MatchBasketResponse{Items: items}, nil
}

func (h Handler) ApplyDiscountsHandler(ctx context.Context, req httptransport.BasketRequest) (httptransport.ApplyDiscountsResponse, error) {
	result, err := h.ApplyDiscounts.Execute(ctx, basketFromRequest(req))
	if err != nil {
		return httptransport.ApplyDiscountsResponse{}, err
	}
	return httptransport.ApplyDiscountsResponse{
		Lines:          mapLines(result.Lines),
		NewLines:       mapLines(result.NewLines),
		BasketDiscount: result.BasketDiscount,
		FinalTotal:     result.FinalTotal,
		CampaignIDs:    result.CampaignIDs,
	}, nil
}

func (h Handler) MatchCatalogHandler(ctx context.Context, shopID, customerID, shopProductID string) (httptransport.MatchCatalogResponse, error) {
	env, err := h.ResolveContext.Execute(ctx, shopID, customerID)
	if err != nil {
		return httptransport.MatchCatalogResponse{}, err
	}
	campaigns, err := h.MatchCatalog.Execute(ctx, env, shopProductID)
	if err != nil {
		return httptransport.MatchCatalogResponse{}, err
	}
	items := make([]httptransport.CampaignDTO, 0, len(campaigns))
	for _, item := range campaigns {
		items = append(items, mapCampaign(item))
	}
	return httptransport.MatchCatalogResponse{Items: items}, nil
}

func (h Handler) CatalogPriceHandler(ctx context.Context, req httptransport.CatalogPriceRequest) (httptransport.CatalogPriceResponse, error) {
	env, err := h.ResolveContext.Execute(ctx, req.ShopID, req.CustomerID)
	if err != nil {
		return httptransport.CatalogPriceResponse{}, err
	}
	result, err := h.CatalogPrice.Execute(ctx, env, req.ShopProductID, req.BasePrice)
	if err != nil {
		return httptransport.CatalogPriceResponse{}, err
	}
	return httptransport.CatalogPriceResponse{
		BasePrice:       result.BasePrice,
		DiscountedPrice: result.DiscountedPrice,
		Discount:        result.Discount,
		CampaignID:      result.CampaignID,
	}, nil
}

func (h Handler) EntityChangedHandler(ctx context.Context, req httptransport.EntityChangedRequest) error {
	return h.Invalidate.EntityChanged(ctx, commands.EntityChangedCommand{
		Kind:     entities.EntityKind(req.Kind),
		ShopID:   req.ShopID,
		EntityID: req.EntityID,
	})
}

func basketFromRequest(req httptransport.BasketRequest) entities.BasketEnv {
	lines := make([]entities.BasketLine, 0, len(req.Lines))
	for _, line := range req.Lines {
		lines = append(lines, entities.BasketLine{
			LineID:          line.LineID,
			Type:            entities.LineType(line.Type),
			ProductID:       line.ProductID,
			ParentProductID: line.ParentProductID,
			SupplierID:      line.SupplierID,
			CategoryIDs:     line.CategoryIDs,
			Quantity:        line.Quantity,
			BaseUnitPrice:   line.BaseUnitPrice,
			DiscountAmount:  line.DiscountAmount,
			Source:          line.Source,
			Text:            line.Text,
		})
	}
	return entities.BasketEnv{
		ShopID:     req.ShopID,
		CustomerID: req.CustomerID,
		Codes:      req.Codes,
		Lines:      lines,
	}
}

func mapLines(lines []entities.BasketLine) []httptransport.BasketLineDTO {
	result := make([]httptransport.BasketLineDTO, 0, len(lines))
	for _, line := range lines {
		result = append(result, httptransport.BasketLineDTO{
			LineID:          line.LineID,
			Type:            string(line.Type),
			ProductID:       line.ProductID,
			ParentProductID: line.ParentProductID,
			SupplierID:      line.SupplierID,
			CategoryIDs:     line.CategoryIDs,
			Quantity:        line.Quantity,
			BaseUnitPrice:   line.BaseUnitPrice,
			DiscountAmount:  line.DiscountAmount,
			Source:          line.Source,
			Text:            line.Text,
		})
	}
	return result
}

func campaignFromRequest(req httptransport.SaveCampaignRequest) (entities.Campaign, error) {
	startsAt, err := parseOptionalTime(req.StartsAt)
	if err != nil {
		return entities.Campaign{}, err
	}
	endsAt, err := parseOptionalTime(req.EndsAt)
	if err != nil {
		return entities.Campaign{}, err
	}

	conditions := make([]entities.Condition, 0, len(req.Conditions))
	for _, dto := range req.Conditions {
		weekdays := make([]time.Weekday, 0, len(dto.Weekdays))
		for _, weekday := range dto.Weekdays {
			weekdays = append(weekdays, time.Weekday(weekday))
		}
		conditions = append(conditions, entities.Condition{
			ConditionID:         dto.ConditionID,
			Kind:                entities.ConditionKind(dto.Kind),
			Active:              dto.Active,
			Operator:            entities.ComparisonOperator(dto.Operator),
			Amount:              dto.Amount,
			Quantity:            dto.Quantity,
			HourStart:           dto.HourStart,
			HourEnd:             dto.HourEnd,
			Weekdays:            weekdays,
			ContactIDs:          dto.ContactIDs,
			GroupIDs:            dto.GroupIDs,
			ProductIDs:          dto.ProductIDs,
			CategoryIDs:         dto.CategoryIDs,
			ExcludedCategoryIDs: dto.ExcludedCategoryIDs,
		})
	}
	filters := make([]entities.Filter, 0, len(req.Filters))
	for _, dto := range req.Filters {
		filters = append(filters, entities.Filter{
			FilterID:       dto.FilterID,
			Kind:           entities.FilterKind(dto.Kind),
			Active:         dto.Active,
			CategoryIDs:    dto.CategoryIDs,
			ProductIDs:     dto.ProductIDs,
			ProductTypeIDs: dto.ProductTypeIDs,
		})
	}
	effects := make([]entities.Effect, 0, len(req.Effects))
	for _, dto := range req.Effects {
		effects = append(effects, entities.Effect{
			EffectID:        dto.EffectID,
			Kind:            entities.EffectKind(dto.Kind),
			Amount:          dto.Amount,
			Percentage:      dto.Percentage,
			ProductIDs:      dto.ProductIDs,
			CategoryID:      dto.CategoryID,
			Quantity:        dto.Quantity,
			PerLineDiscount: dto.PerLineDiscount,
		})
	}

	return entities.Campaign{
		CampaignID: req.CampaignID,
		ShopID:     req.ShopID,
		Type:       entities.CampaignType(req.Type),
		Name:       req.Name,
		Identifier: req.Identifier,
		Active:     req.Active,
		StartsAt:   startsAt,
		EndsAt:     endsAt,
		SupplierID: req.SupplierID,
		CouponID:   req.CouponID,
		Conditions: conditions,
		Filters:    filters,
		Effects:    effects,
	}, nil
}

func mapCampaign(item entities.Campaign) httptransport.CampaignDTO {
	conditions := make([]httptransport.ConditionDTO, 0, len(item.Conditions))
	for _, condition := range item.Conditions {
		weekdays := make([]int, 0, len(condition.Weekdays))
		for _, weekday := range condition.Weekdays {
			weekdays = append(weekdays, int(weekday))
		}
		conditions = append(conditions, httptransport.ConditionDTO{
			ConditionID:         condition.ConditionID,
			Kind:                string(condition.Kind),
			Active:              condition.Active,
			Operator:            string(condition.Operator),
			Amount:              condition.Amount,
			Quantity:            condition.Quantity,
			HourStart:           condition.HourStart,
			HourEnd:             condition.HourEnd,
			Weekdays:            weekdays,
			ContactIDs:          condition.ContactIDs,
			GroupIDs:            condition.GroupIDs,
			ProductIDs:          condition.ProductIDs,
			CategoryIDs:         condition.CategoryIDs,
			ExcludedCategoryIDs: condition.ExcludedCategoryIDs,
		})
	}
	filters := make([]httptransport.FilterDTO, 0, len(item.Filters))
	for _, filter := range item.Filters {
		filters = append(filters, httptransport.FilterDTO{
			FilterID:       filter.FilterID,
			Kind:           string(filter.Kind),
			Active:         filter.Active,
			CategoryIDs:    filter.CategoryIDs,
			ProductIDs:     filter.ProductIDs,
			ProductTypeIDs: filter.ProductTypeIDs,
		})
	}
	effects := make([]httptransport.EffectDTO, 0, len(item.Effects))
	for _, effect := range item.Effects {
		effects = append(effects, httptransport.EffectDTO{
			EffectID:        effect.EffectID,
			Kind:            string(effect.Kind),
			Amount:          effect.Amount,
			Percentage:      effect.Percentage,
			ProductIDs:      effect.ProductIDs,
			CategoryID:      effect.CategoryID,
			Quantity:        effect.Quantity,
			PerLineDiscount: effect.PerLineDiscount,
		})
	}

	return httptransport.CampaignDTO{
		CampaignID: item.CampaignID,
		ShopID:     item.ShopID,
		Type:       string(item.Type),
		Name:       item.Name,
		Identifier: item.Identifier,
		Active:     item.Active,
		StartsAt:   formatOptionalTime(item.StartsAt),
		EndsAt:     formatOptionalTime(item.EndsAt),
		SupplierID: item.SupplierID,
		CouponID:   item.CouponID,
		Conditions: conditions,
		Filters:    filters,
		Effects:    effects,
		CreatedAt:  item.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  item.UpdatedAt.Format(time.RFC3339),
	}
}

func mapCoupon(item entities.Coupon) httptransport.CouponDTO {
	return httptransport.CouponDTO{
		CouponID:           item.CouponID,
		ShopID:             item.ShopID,
		SupplierID:         item.SupplierID,
		Code:               item.Code,
		Active:             item.Active,
		UsageLimit:         item.UsageLimit,
		UsageLimitCustomer: item.UsageLimitCustomer,
		CreatedAt:          item.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          item.UpdatedAt.Format(time.RFC3339),
	}
}

func parseOptionalTime(value string) (*time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, trimmed)
	if err != nil {
		return nil, err
	}
	utc := parsed.UTC()
	return &utc, nil
}

func formatOptionalTime(value *time.Time) string {
	if value == nil {
		return ""
	}
	return value.Format(time.RFC3339)
}
