package http

import "github.com/shopspring/decimal"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ConditionDTO struct {
	ConditionID         string          `json:"condition_id,omitempty"`
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

type FilterDTO struct {
	FilterID       string   `json:"filter_id,omitempty"`
	Kind           string   `json:"kind"`
	Active         bool     `json:"active"`
	CategoryIDs    []string `json:"category_ids,omitempty"`
	ProductIDs     []string `json:"product_ids,omitempty"`
	ProductTypeIDs []string `json:"product_type_ids,omitempty"`
}

type EffectDTO struct {
	EffectID        string          `json:"effect_id,omitempty"`
	Kind            string          `json:"kind"`
	Amount          decimal.Decimal `json:"amount"`
	Percentage      decimal.Decimal `json:"percentage"`
	ProductIDs      []string        `json:"product_ids,omitempty"`
	CategoryID      string          `json:"category_id,omitempty"`
	Quantity        decimal.Decimal `json:"quantity"`
	PerLineDiscount bool            `json:"per_line_discount,omitempty"`
}

type CampaignDTO struct {
	CampaignID string         `json:"campaign_id"`
	ShopID     string         `json:"shop_id"`
	Type       string         `json:"type"`
	Name       string         `json:"name"`
	Identifier string         `json:"identifier"`
	Active     bool           `json:"active"`
	StartsAt   string         `json:"starts_at,omitempty"`
	EndsAt     string         `json:"ends_at,omitempty"`
	SupplierID string         `json:"supplier_id,omitempty"`
	CouponID   string         `json:"coupon_id,omitempty"`
	Conditions []ConditionDTO `json:"conditions"`
	Filters    []FilterDTO    `json:"filters"`
	Effects    []EffectDTO    `json:"effects"`
	CreatedAt  string         `json:"created_at"`
	UpdatedAt  string         `json:"updated_at"`
}

type SaveCampaignRequest struct {
	CampaignID string         `json:"campaign_id,omitempty"`
	ShopID     string         `json:"shop_id"`
	Type       string         `json:"type"`
	Name       string         `json:"name"`
	Identifier string         `json:"identifier"`
	Active     bool           `json:"active"`
	StartsAt   string         `json:"starts_at,omitempty"`
	EndsAt     string         `json:"ends_at,omitempty"`
	SupplierID string         `json:"supplier_id,omitempty"`
	CouponID   string         `json:"coupon_id,omitempty"`
	Conditions []ConditionDTO `json:"conditions"`
	Filters    []FilterDTO    `json:"filters"`
	Effects    []EffectDTO    `json:"effects"`
}

type SaveCampaignResponse struct {
	Campaign CampaignDTO `json:"campaign"`
}

type GetCampaignResponse struct {
	Campaign CampaignDTO `json:"campaign"`
}

type ListCampaignsResponse struct {
	Items []CampaignDTO `json:"items"`
}

type CouponDTO struct {
	CouponID           string `json:"coupon_id"`
	ShopID             string `json:"shop_id"`
	SupplierID         string `json:"supplier_id,omitempty"`
	Code               string `json:"code"`
	Active             bool   `json:"active"`
	UsageLimit         int    `json:"usage_limit"`
	UsageLimitCustomer int    `json:"usage_limit_customer"`
	CreatedAt          string `json:"created_at"`
	UpdatedAt          string `json:"updated_at"`
}

type SaveCouponRequest struct {
	CouponID           string `json:"coupon_id,omitempty"`
	ShopID             string `json:"shop_id"`
	SupplierID         string `json:"supplier_id,omitempty"`
	Code               string `json:"code"`
	Active             bool   `json:"active"`
	UsageLimit         int    `json:"usage_limit"`
	UsageLimitCustomer int    `json:"usage_limit_customer"`
}

type SaveCouponResponse struct {
	Coupon CouponDTO `json:"coupon"`
}

type CouponUsabilityResponse struct {
	Code   string `json:"code"`
	Usable bool   `json:"usable"`
}

type RedeemCouponRequest struct {
	Code       string `json:"code"`
	OrderID    string `json:"order_id"`
	CustomerID string `json:"customer_id,omitempty"`
}

type RedeemCouponResponse struct {
	UsageID    string `json:"usage_id"`
	CouponID   string `json:"coupon_id"`
	OrderID    string `json:"order_id"`
	RedeemedAt string `json:"redeemed_at"`
}

type BasketLineDTO struct {
	LineID          string          `json:"line_id"`
	Type            string          `json:"type"`
	ProductID       string          `json:"product_id,omitempty"`
	ParentProductID string          `json:"parent_product_id,omitempty"`
	SupplierID      string          `json:"supplier_id,omitempty"`
	CategoryIDs     []string        `json:"category_ids,omitempty"`
	Quantity        decimal.Decimal `json:"quantity"`
	BaseUnitPrice   decimal.Decimal `json:"base_unit_price"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	Source          string          `json:"source,omitempty"`
	Text            string          `json:"text,omitempty"`
}

type BasketRequest struct {
	ShopID     string          `json:"shop_id"`
	CustomerID string          `json:"customer_id,omitempty"`
	Codes      []string        `json:"codes,omitempty"`
	Lines      []BasketLineDTO `json:"lines"`
}

type MatchBasketResponse struct {
	Items []CampaignDTO `json:"items"`
}

type ApplyDiscountsResponse struct {
	Lines          []BasketLineDTO `json:"lines"`
	NewLines       []BasketLineDTO `json:"new_lines"`
	BasketDiscount decimal.Decimal `json:"basket_discount"`
	FinalTotal     decimal.Decimal `json:"final_total"`
	CampaignIDs    []string        `json:"campaign_ids"`
}

type MatchCatalogResponse struct {
	Items []CampaignDTO `json:"items"`
}

type CatalogPriceRequest struct {
	ShopID        string          `json:"shop_id"`
	CustomerID    string          `json:"customer_id,omitempty"`
	ShopProductID string          `json:"shop_product_id"`
	BasePrice     decimal.Decimal `json:"base_price"`
}

type CatalogPriceResponse struct {
	BasePrice       decimal.Decimal `json:"base_price"`
	DiscountedPrice decimal.Decimal `json:"discounted_price"`
	Discount        decimal.Decimal `json:"discount"`
	CampaignID      string          `json:"campaign_id,omitempty"`
}

type EntityChangedRequest struct {
	Kind     string `json:"kind"`
	ShopID   string `json:"shop_id"`
	EntityID string `json:"entity_id"`
}
