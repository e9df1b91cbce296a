package http

import "github.com/shopspring/decimal"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ShopProductDTO struct {
	ShopProductID     string           `json:"shop_product_id"`
	ShopID            string           `json:"shop_id"`
	ProductID         string           `json:"product_id"`
	ParentProductID   string           `json:"parent_product_id,omitempty"`
	ProductTypeID     string           `json:"product_type_id,omitempty"`
	Name              string           `json:"name"`
	SKU               string           `json:"sku,omitempty"`
	SupplierIDs       []string         `json:"supplier_ids,omitempty"`
	CategoryIDs       []string         `json:"category_ids,omitempty"`
	PrimaryCategoryID string           `json:"primary_category_id,omitempty"`
	Visible           bool             `json:"visible"`
	Purchasable       bool             `json:"purchasable"`
	MinimumPrice      *decimal.Decimal `json:"minimum_price,omitempty"`
	DefaultPrice      decimal.Decimal  `json:"default_price"`
	MinOrderQuantity  decimal.Decimal  `json:"min_order_quantity"`
	MaxOrderQuantity  decimal.Decimal  `json:"max_order_quantity"`
	CreatedAt         string           `json:"created_at"`
	UpdatedAt         string           `json:"updated_at"`
}

type SaveShopProductRequest struct {
	ShopProductID     string           `json:"shop_product_id,omitempty"`
	ShopID            string           `json:"shop_id"`
	ProductID         string           `json:"product_id"`
	ParentProductID   string           `json:"parent_product_id,omitempty"`
	ProductTypeID     string           `json:"product_type_id,omitempty"`
	Name              string           `json:"name"`
	SKU               string           `json:"sku,omitempty"`
	SupplierIDs       []string         `json:"supplier_ids,omitempty"`
	CategoryIDs       []string         `json:"category_ids,omitempty"`
	PrimaryCategoryID string           `json:"primary_category_id,omitempty"`
	Visible           bool             `json:"visible"`
	Purchasable       bool             `json:"purchasable"`
	MinimumPrice      *decimal.Decimal `json:"minimum_price,omitempty"`
	DefaultPrice      decimal.Decimal  `json:"default_price"`
	MinOrderQuantity  decimal.Decimal  `json:"min_order_quantity"`
	MaxOrderQuantity  decimal.Decimal  `json:"max_order_quantity"`
}

type SaveShopProductResponse struct {
	Product ShopProductDTO `json:"product"`
}

type GetShopProductResponse struct {
	Product ShopProductDTO `json:"product"`
}

type ListShopProductsResponse struct {
	Items []ShopProductDTO `json:"items"`
}

type CatalogViewDTO struct {
	ShopProductID      string           `json:"shop_product_id"`
	ShopID             string           `json:"shop_id"`
	ProductID          string           `json:"product_id"`
	ParentProductID    string           `json:"parent_product_id,omitempty"`
	ProductTypeID      string           `json:"product_type_id,omitempty"`
	CategoryIDs        []string         `json:"category_ids,omitempty"`
	RelatedCategoryIDs []string         `json:"related_category_ids,omitempty"`
	SupplierIDs        []string         `json:"supplier_ids,omitempty"`
	MinimumPrice       *decimal.Decimal `json:"minimum_price,omitempty"`
	Orderable          bool             `json:"orderable"`
	MinOrderQuantity   decimal.Decimal  `json:"min_order_quantity"`
	MaxOrderQuantity   decimal.Decimal  `json:"max_order_quantity"`
}

type CatalogViewResponse struct {
	View CatalogViewDTO `json:"view"`
}

type ListCatalogViewsResponse struct {
	Items []CatalogViewDTO `json:"items"`
}

type CategoryDTO struct {
	CategoryID string `json:"category_id"`
	ShopID     string `json:"shop_id"`
	ParentID   string `json:"parent_id,omitempty"`
	Name       string `json:"name"`
	Active     bool   `json:"active"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

type SaveCategoryRequest struct {
	CategoryID string `json:"category_id,omitempty"`
	ShopID     string `json:"shop_id"`
	ParentID   string `json:"parent_id,omitempty"`
	Name       string `json:"name"`
	Active     bool   `json:"active"`
}

type SaveCategoryResponse struct {
	Category CategoryDTO `json:"category"`
}

type ListCategoriesResponse struct {
	Items []CategoryDTO `json:"items"`
}

type ContactGroupDTO struct {
	GroupID   string `json:"group_id"`
	ShopID    string `json:"shop_id,omitempty"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type SaveContactGroupRequest struct {
	GroupID string `json:"group_id,omitempty"`
	ShopID  string `json:"shop_id,omitempty"`
	Name    string `json:"name"`
}

type SaveContactGroupResponse struct {
	Group ContactGroupDTO `json:"group"`
}

type ReplaceContactGroupsRequest struct {
	ShopID   string   `json:"shop_id"`
	GroupIDs []string `json:"group_ids"`
}

type ContactGroupsResponse struct {
	ContactID string   `json:"contact_id"`
	GroupIDs  []string `json:"group_ids"`
}

type ShopDTO struct {
	ShopID    string `json:"shop_id"`
	Name      string `json:"name"`
	Timezone  string `json:"timezone,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type SaveShopRequest struct {
	ShopID   string `json:"shop_id,omitempty"`
	Name     string `json:"name"`
	Timezone string `json:"timezone,omitempty"`
}

type SaveShopResponse struct {
	Shop ShopDTO `json:"shop"`
}
