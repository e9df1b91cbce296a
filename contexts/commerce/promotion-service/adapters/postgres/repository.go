package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"merx/contexts/commerce/promotion-service/domain/entities"
	domainerrors "merx/contexts/commerce/promotion-service/domain/errors"
	"merx/contexts/commerce/promotion-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) SaveCampaign(ctx context.Context, campaign entities.Campaign) error {
	row, err := campaignModelFromEntity(campaign)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(&row).Error
}

func (r *Repository) GetCampaign(ctx context.Context, campaignID string) (entities.Campaign, error) {
	var row campaignModel
	err := r.db.WithContext(ctx).
		Where("campaign_id = ?", strings.TrimSpace(campaignID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Campaign{}, domainerrors.ErrCampaignNotFound
		}
		return entities.Campaign{}, err
	}
	return row.toEntity()
}

func (r *Repository) ListCampaigns(ctx context.Context, filter ports.CampaignFilter) ([]entities.Campaign, error) {
	tx := r.db.WithContext(ctx).Model(&campaignModel{})
	if strings.TrimSpace(filter.ShopID) != "" {
		tx = tx.Where("shop_id = ?", strings.TrimSpace(filter.ShopID))
	}
	if filter.Type != "" {
		tx = tx.Where("campaign_type = ?", string(filter.Type))
	}
	if filter.ActiveOnly {
		tx = tx.Where("active")
	}

	var rows []campaignModel
	if err := tx.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]entities.Campaign, 0, len(rows))
	for _, row := range rows {
		item, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *Repository) ListActiveCampaignsByCouponCode(ctx context.Context, shopID, code string) ([]entities.Campaign, error) {
	var rows []campaignModel
	err := r.db.WithContext(ctx).
		Model(&campaignModel{}).
		Joins("JOIN promotion_coupons ON promotion_coupons.coupon_id = promotion_campaigns.coupon_id").
		Where("promotion_campaigns.shop_id = ?", shopID).
		Where("promotion_campaigns.active").
		Where("LOWER(promotion_coupons.code) = LOWER(?)", strings.TrimSpace(code)).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	items := make([]entities.Campaign, 0, len(rows))
	for _, row := range rows {
		item, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *Repository) ExpireCampaignsPastWindow(ctx context.Context, now time.Time, limit int) ([]entities.Campaign, error) {
	var rows []campaignModel
	err := r.db.WithContext(ctx).
		Where("active").
		Where("ends_at IS NOT NULL AND ends_at < ?", now.UTC()).
		Limit(limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	expired := make([]entities.Campaign, 0, len(rows))
	for _, row := range rows {
		item, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		item.Deactivate()
		item.UpdatedAt = now.UTC()
		updated, err := campaignModelFromEntity(item)
		if err != nil {
			return nil, err
		}
		if err := r.db.WithContext(ctx).Save(&updated).Error; err != nil {
			return nil, err
		}
		expired = append(expired, item)
	}
	return expired, nil
}

func (r *Repository) SaveCoupon(ctx context.Context, coupon entities.Coupon) error {
	row := couponModelFromEntity(coupon)
	if err := r.db.WithContext(ctx).Save(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrDuplicateCouponCode
		}
		return err
	}
	return nil
}

func (r *Repository) GetCoupon(ctx context.Context, couponID string) (entities.Coupon, error) {
	var row couponModel
	err := r.db.WithContext(ctx).
		Where("coupon_id = ?", strings.TrimSpace(couponID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Coupon{}, domainerrors.ErrCouponNotFound
		}
		return entities.Coupon{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetCouponByCode(ctx context.Context, shopID, code string) (entities.Coupon, error) {
	var row couponModel
	err := r.db.WithContext(ctx).
		Where("shop_id = ?", shopID).
		Where("LOWER(code) = LOWER(?)", strings.TrimSpace(code)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Coupon{}, domainerrors.ErrCouponNotFound
		}
		return entities.Coupon{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) AppendCouponUsage(ctx context.Context, usage entities.CouponUsage) error {
	row := couponUsageModel{
		UsageID:    usage.UsageID,
		CouponID:   usage.CouponID,
		OrderID:    usage.OrderID,
		CustomerID: usage.CustomerID,
		CreatedAt:  usage.CreatedAt.UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrCouponAlreadyUsed
		}
		return err
	}
	return nil
}

func (r *Repository) CountCouponUsages(ctx context.Context, couponID string) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&couponUsageModel{}).
		Where("coupon_id = ?", couponID).
		Count(&count).
		Error
	return int(count), err
}

func (r *Repository) CountCouponUsagesByCustomer(ctx context.Context, couponID, customerID string) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&couponUsageModel{}).
		Where("coupon_id = ?", couponID).
		Where("customer_id = ?", customerID).
		Count(&count).
		Error
	return int(count), err
}

// ReplaceProductFilterMatches swaps the product's match rows in one
// transaction so the catalog path never reads a half-rebuilt index.
func (r *Repository) ReplaceProductFilterMatches(ctx context.Context, shopProductID string, filterIDs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("shop_product_id = ?", shopProductID).
			Delete(&filterMatchModel{}).
			Error; err != nil {
			return err
		}
		if len(filterIDs) == 0 {
			return nil
		}
		rows := make([]filterMatchModel, 0, len(filterIDs))
		for _, filterID := range filterIDs {
			rows = append(rows, filterMatchModel{
				ShopProductID: shopProductID,
				FilterID:      filterID,
			})
		}
		return tx.Create(&rows).Error
	})
}

func (r *Repository) MatchingFilterIDs(ctx context.Context, shopProductID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&filterMatchModel{}).
		Where("shop_product_id = ?", shopProductID).
		Pluck("filter_id", &ids).
		Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

type campaignModel struct {
	CampaignID   string          `gorm:"column:campaign_id;primaryKey"`
	ShopID       string          `gorm:"column:shop_id"`
	CampaignType string          `gorm:"column:campaign_type"`
	Name         string          `gorm:"column:name"`
	Identifier   string          `gorm:"column:identifier"`
	Active       bool            `gorm:"column:active"`
	StartsAt     *time.Time      `gorm:"column:starts_at"`
	EndsAt       *time.Time      `gorm:"column:ends_at"`
	SupplierID   string          `gorm:"column:supplier_id"`
	CouponID     string          `gorm:"column:coupon_id"`
	Conditions   json.RawMessage `gorm:"column:conditions;type:jsonb"`
	Filters      json.RawMessage `gorm:"column:filters;type:jsonb"`
	Effects      json.RawMessage `gorm:"column:effects;type:jsonb"`
	CreatedAt    time.Time       `gorm:"column:created_at"`
	UpdatedAt    time.Time       `gorm:"column:updated_at"`
}

func (campaignModel) TableName() string {
	return "promotion_campaigns"
}

type conditionRow struct {
	ConditionID         string          `json:"condition_id"`
	Kind                string          `json:"kind"`
	Active              bool            `json:"active"`
	Operator            string          `json:"operator,omitempty"`
	Amount              decimal.Decimal `json:"amount"`
	Quantity            decimal.Decimal `json:"quantity"`
	HourStart           int             `json:"hour_start,omitempty"`
	HourEnd             int             `json:"hour_end,omitempty"`
	Weekdays            []int           `json:"weekdays,omitempty"`
	ContactIDs          []string        `json:"contact_ids,omitempty"`
	GroupIDs            []string        `json:"group_ids,omitempty"`
	ProductIDs          []string        `json:"product_ids,omitempty"`
	CategoryIDs         []string        `json:"category_ids,omitempty"`
	ExcludedCategoryIDs []string        `json:"excluded_category_ids,omitempty"`
}

type filterRow struct {
	FilterID       string   `json:"filter_id"`
	Kind           string   `json:"kind"`
	Active         bool     `json:"active"`
	CategoryIDs    []string `json:"category_ids,omitempty"`
	ProductIDs     []string `json:"product_ids,omitempty"`
	ProductTypeIDs []string `json:"product_type_ids,omitempty"`
}

type effectRow struct {
	EffectID        string          `json:"effect_id"`
	Kind            string          `json:"kind"`
	Amount          decimal.Decimal `json:"amount"`
	Percentage      decimal.Decimal `json:"percentage"`
	ProductIDs      []string        `json:"product_ids,omitempty"`
	CategoryID      string          `json:"category_id,omitempty"`
	Quantity        decimal.Decimal `json:"quantity"`
	PerLineDiscount bool            `json:"per_line_discount,omitempty"`
}

func campaignModelFromEntity(item entities.Campaign) (campaignModel, error) {
	conditionRows := make([]conditionRow, 0, len(item.Conditions))
	for _, condition := range item.Conditions {
		weekdays := make([]int, 0, len(condition.Weekdays))
		for _, weekday := range condition.Weekdays {
			weekdays = append(weekdays, int(weekday))
		}
		conditionRows = append(conditionRows, conditionRow{
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
	filterRows := make([]filterRow, 0, len(item.Filters))
	for _, filter := range item.Filters {
		filterRows = append(filterRows, filterRow{
			FilterID:       filter.FilterID,
			Kind:           string(filter.Kind),
			Active:         filter.Active,
			CategoryIDs:    filter.CategoryIDs,
			ProductIDs:     filter.ProductIDs,
			ProductTypeIDs: filter.ProductTypeIDs,
		})
	}
	effectRows := make([]effectRow, 0, len(item.Effects))
	for _, effect := range item.Effects {
		effectRows = append(effectRows, effectRow{
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

	conditions, err := json.Marshal(conditionRows)
	if err != nil {
		return campaignModel{}, err
	}
	filters, err := json.Marshal(filterRows)
	if err != nil {
		return campaignModel{}, err
	}
	effects, err := json.Marshal(effectRows)
	if err != nil {
		return campaignModel{}, err
	}

	return campaignModel{
		CampaignID:   item.CampaignID,
		ShopID:       item.ShopID,
		CampaignType: string(item.Type),
		Name:         item.Name,
		Identifier:   item.Identifier,
		Active:       item.Active,
		StartsAt:     item.StartsAt,
		EndsAt:       item.EndsAt,
		SupplierID:   item.SupplierID,
		CouponID:     item.CouponID,
		Conditions:   conditions,
		Filters:      filters,
		Effects:      effects,
		CreatedAt:    item.CreatedAt.UTC(),
		UpdatedAt:    item.UpdatedAt.UTC(),
	}, nil
}

func (m campaignModel) toEntity() (entities.Campaign, error) {
	var conditionRows []conditionRow
	if len(m.Conditions) > 0 {
		if err := json.Unmarshal(m.Conditions, &conditionRows); err != nil {
			return entities.Campaign{}, err
		}
	}
	var filterRows []filterRow
	if len(m.Filters) > 0 {
		if err := json.Unmarshal(m.Filters, &filterRows); err != nil {
			return entities.Campaign{}, err
		}
	}
	var effectRows []effectRow
	if len(m.Effects) > 0 {
		if err := json.Unmarshal(m.Effects, &effectRows); err != nil {
			return entities.Campaign{}, err
		}
	}

	conditions := make([]entities.Condition, 0, len(conditionRows))
	for _, row := range conditionRows {
		weekdays := make([]time.Weekday, 0, len(row.Weekdays))
		for _, weekday := range row.Weekdays {
			weekdays = append(weekdays, time.Weekday(weekday))
		}
		conditions = append(conditions, entities.Condition{
			ConditionID:         row.ConditionID,
			CampaignID:          m.CampaignID,
			Kind:                entities.ConditionKind(row.Kind),
			Active:              row.Active,
			Operator:            entities.ComparisonOperator(row.Operator),
			Amount:              row.Amount,
			Quantity:            row.Quantity,
			HourStart:           row.HourStart,
			HourEnd:             row.HourEnd,
			Weekdays:            weekdays,
			ContactIDs:          row.ContactIDs,
			GroupIDs:            row.GroupIDs,
			ProductIDs:          row.ProductIDs,
			CategoryIDs:         row.CategoryIDs,
			ExcludedCategoryIDs: row.ExcludedCategoryIDs,
		})
	}
	filters := make([]entities.Filter, 0, len(filterRows))
	for _, row := range filterRows {
		filters = append(filters, entities.Filter{
			FilterID:       row.FilterID,
			CampaignID:     m.CampaignID,
			Kind:           entities.FilterKind(row.Kind),
			Active:         row.Active,
			CategoryIDs:    row.CategoryIDs,
			ProductIDs:     row.ProductIDs,
			ProductTypeIDs: row.ProductTypeIDs,
		})
	}
	effects := make([]entities.Effect, 0, len(effectRows))
	for _, row := range effectRows {
		effects = append(effects, entities.Effect{
			EffectID:        row.EffectID,
			CampaignID:      m.CampaignID,
			Kind:            entities.EffectKind(row.Kind),
			Amount:          row.Amount,
			Percentage:      row.Percentage,
			ProductIDs:      row.ProductIDs,
			CategoryID:      row.CategoryID,
			Quantity:        row.Quantity,
			PerLineDiscount: row.PerLineDiscount,
		})
	}

	return entities.Campaign{
		CampaignID: m.CampaignID,
		ShopID:     m.ShopID,
		Type:       entities.CampaignType(m.CampaignType),
		Name:       m.Name,
		Identifier: m.Identifier,
		Active:     m.Active,
		StartsAt:   m.StartsAt,
		EndsAt:     m.EndsAt,
		SupplierID: m.SupplierID,
		CouponID:   m.CouponID,
		Conditions: conditions,
		Filters:    filters,
		Effects:    effects,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}, nil
}

type couponModel struct {
	CouponID           string    `gorm:"column:coupon_id;primaryKey"`
	ShopID             string    `gorm:"column:shop_id"`
	SupplierID         string    `gorm:"column:supplier_id"`
	Code               string    `gorm:"column:code"`
	Active             bool      `gorm:"column:active"`
	UsageLimit         int       `gorm:"column:usage_limit"`
	UsageLimitCustomer int       `gorm:"column:usage_limit_customer"`
	CreatedAt          time.Time `gorm:"column:created_at"`
	UpdatedAt          time.Time `gorm:"column:updated_at"`
}

func (couponModel) TableName() string {
	return "promotion_coupons"
}

func couponModelFromEntity(item entities.Coupon) couponModel {
	return couponModel{
		CouponID:           item.CouponID,
		ShopID:             item.ShopID,
		SupplierID:         item.SupplierID,
		Code:               item.Code,
		Active:             item.Active,
		UsageLimit:         item.UsageLimit,
		UsageLimitCustomer: item.UsageLimitCustomer,
		CreatedAt:          item.CreatedAt.UTC(),
		UpdatedAt:          item.UpdatedAt.UTC(),
	}
}

func (m couponModel) toEntity() entities.Coupon {
	return entities.Coupon{
		CouponID:           m.CouponID,
		ShopID:             m.ShopID,
		SupplierID:         m.SupplierID,
		Code:               m.Code,
		Active:             m.Active,
		UsageLimit:         m.UsageLimit,
		UsageLimitCustomer: m.UsageLimitCustomer,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

type couponUsageModel struct {
	UsageID    string    `gorm:"column:usage_id;primaryKey"`
	CouponID   string    `gorm:"column:coupon_id;uniqueIndex:ux_coupon_usage_order"`
	OrderID    string    `gorm:"column:order_id;uniqueIndex:ux_coupon_usage_order"`
	CustomerID string    `gorm:"column:customer_id"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (couponUsageModel) TableName() string {
	return "promotion_coupon_usages"
}

type filterMatchModel struct {
	ShopProductID string `gorm:"column:shop_product_id;primaryKey"`
	FilterID      string `gorm:"column:filter_id;primaryKey"`
}

func (filterMatchModel) TableName() string {
	return "promotion_filter_matches"
}
