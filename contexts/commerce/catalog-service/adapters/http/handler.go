package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"merx/contexts/commerce/catalog-service/application/commands"
	"merx/contexts/commerce/catalog-service/application/queries"
	"merx/contexts/commerce/catalog-service/domain/entities"
	httptransport "merx/contexts/commerce/catalog-service/transport/http"
)

type Handler struct {
	SaveProduct    commands.SaveShopProductUseCase
	SaveCategory   commands.SaveCategoryUseCase
	SaveGroup      commands.SaveContactGroupUseCase
	ReplaceGroups  commands.ReplaceContactGroupsUseCase
	SaveShop       commands.SaveShopUseCase
	CatalogViews   queries.CatalogViewUseCase
	CustomerGroups queries.CustomerGroupsUseCase
	ShopLocation   queries.ShopLocationUseCase
	Logger         *slog.Logger
}

func (h Handler) SaveShopProductHandler(ctx context.Context, req httptransport.SaveShopProductRequest) (httptransport.SaveShopProductResponse, error) {
	saved, err := h.SaveProduct.Execute(ctx, commands.SaveShopProductCommand{Product: entities.ShopProduct{
		ShopProductID:     req.ShopProductID,
		ShopID:            req.ShopID,
		ProductID:         req.ProductID,
		ParentProductID:   req.ParentProductID,
		ProductTypeID:     req.ProductTypeID,
		Name:              req.Name,
		SKU:               req.SKU,
		SupplierIDs:       req.SupplierIDs,
		CategoryIDs:       req.CategoryIDs,
		PrimaryCategoryID: req.PrimaryCategoryID,
		Visible:           req.Visible,
		Purchasable:       req.Purchasable,
		MinimumPrice:      req.MinimumPrice,
		DefaultPrice:      req.DefaultPrice,
		MinOrderQuantity:  req.MinOrderQuantity,
		MaxOrderQuantity:  req.MaxOrderQuantity,
	}})
	if err != nil {
		return httptransport.SaveShopProductResponse{}, err
	}
	return httptransport.SaveShopProductResponse{Product: mapShopProduct(saved)}, nil
}

func (h Handler) GetCatalogViewHandler(ctx context.Context, shopProductID string) (httptransport.CatalogViewResponse, bool, error) {
	view, found, err := h.CatalogViews.ByShopProduct(ctx, shopProductID)
	if err != nil || !found {
		return httptransport.CatalogViewResponse{}, found, err
	}
	return httptransport.CatalogViewResponse{View: mapCatalogView(view)}, true, nil
}

func (h Handler) GetCatalogViewByProductHandler(ctx context.Context, shopID, productID string) (httptransport.CatalogViewResponse, bool, error) {
	view, found, err := h.CatalogViews.ByProduct(ctx, shopID, productID)
	if err != nil || !found {
		return httptransport.CatalogViewResponse{}, found, err
	}
	return httptransport.CatalogViewResponse{View: mapCatalogView(view)}, true, nil
}

func (h Handler) ListCatalogViewsHandler(ctx context.Context, shopID string) (httptransport.ListCatalogViewsResponse, error) {
	views, err := h.CatalogViews.ListByShop(ctx, shopID)
	if err != nil {
		return httptransport.ListCatalogViewsResponse{}, err
	}
	items := make([]httptransport.CatalogViewDTO, 0, len(views))
	for _, view := range views {
		items = append(items, mapCatalogView(view))
	}
	return httptransport.ListCatalogViewsResponse{Items: items}, nil
}

func (h Handler) SaveCategoryHandler(ctx context.Context, req httptransport.SaveCategoryRequest) (httptransport.SaveCategoryResponse, error) {
	saved, err := h.SaveCategory.Execute(ctx, commands.SaveCategoryCommand{Category: entities.Category{
		CategoryID: req.CategoryID,
		ShopID:     req.ShopID,
		ParentID:   req.ParentID,
		Name:       req.Name,
		Active:     req.Active,
	}})
	if err != nil {
		return httptransport.SaveCategoryResponse{}, err
	}
	return httptransport.SaveCategoryResponse{Category: httptransport.CategoryDTO{
		CategoryID: saved.CategoryID,
		ShopID:     saved.ShopID,
		ParentID:   saved.ParentID,
		Name:       saved.Name,
		Active:     saved.Active,
		CreatedAt:  saved.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  saved.UpdatedAt.Format(time.RFC3339),
	}}, nil
}

func (h Handler) SaveContactGroupHandler(ctx context.Context, req httptransport.SaveContactGroupRequest) (httptransport.SaveContactGroupResponse, error) {
	saved, err := h.SaveGroup.Execute(ctx, commands.SaveContactGroupCommand{Group: entities.ContactGroup{
		GroupID: req.GroupID,
		ShopID:  req.ShopID,
		Name:    req.Name,
	}})
	if err != nil {
		return httptransport.SaveContactGroupResponse{}, err
	}
	return httptransport.SaveContactGroupResponse{Group: httptransport.ContactGroupDTO{
		GroupID:   saved.GroupID,
		ShopID:    saved.ShopID,
		Name:      saved.Name,
		CreatedAt: saved.CreatedAt.Format(time.RFC3339),
		UpdatedAt: saved.UpdatedAt.Format(time.RFC3339),
	}}, nil
}

func (h Handler) ReplaceContactGroupsHandler(ctx context.Context, contactID string, req httptransport.ReplaceContactGroupsRequest) error {
	return h.ReplaceGroups.Execute(ctx, commands.ReplaceContactGroupsCommand{
		ShopID:    req.ShopID,
		ContactID: contactID,
		GroupIDs:  req.GroupIDs,
	})
}

func (h Handler) ContactGroupsHandler(ctx context.Context, contactID string) (httptransport.ContactGroupsResponse, error) {
	ids, err := h.CustomerGroups.Execute(ctx, contactID)
	if err != nil {
		return httptransport.ContactGroupsResponse{}, err
	}
	return httptransport.ContactGroupsResponse{ContactID: contactID, GroupIDs: ids}, nil
}

func (h Handler) SaveShopHandler(ctx context.Context, req httptransport.SaveShopRequest) (httptransport.SaveShopResponse, error) {
	saved, err := h.SaveShop.Execute(ctx, entities.Shop{
		ShopID:   req.ShopID,
		Name:     req.Name,
		Timezone: req.Timezone,
	})
	if err != nil {
		return httptransport.SaveShopResponse{}, err
	}
	return httptransport.SaveShopResponse{Shop: httptransport.ShopDTO{
		ShopID:    saved.ShopID,
		Name:      saved.Name,
		Timezone:  saved.Timezone,
		CreatedAt: saved.CreatedAt.Format(time.RFC3339),
		UpdatedAt: saved.UpdatedAt.Format(time.RFC3339),
	}}, nil
}

func mapShopProduct(item entities.ShopProduct) httptransport.ShopProductDTO {
	return httptransport.ShopProductDTO{
		ShopProductID:     item.ShopProductID,
		ShopID:            item.ShopID,
		ProductID:         item.ProductID,
		ParentProductID:   item.ParentProductID,
		ProductTypeID:     item.ProductTypeID,
		Name:              item.Name,
		SKU:               item.SKU,
		SupplierIDs:       item.SupplierIDs,
		CategoryIDs:       item.CategoryIDs,
		PrimaryCategoryID: item.PrimaryCategoryID,
		Visible:           item.Visible,
		Purchasable:       item.Purchasable,
		MinimumPrice:      item.MinimumPrice,
		DefaultPrice:      item.DefaultPrice,
		MinOrderQuantity:  item.MinOrderQuantity,
		MaxOrderQuantity:  item.MaxOrderQuantity,
		CreatedAt:         item.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         item.UpdatedAt.Format(time.RFC3339),
	}
}

func mapCatalogView(view queries.CatalogView) httptransport.CatalogViewDTO {
	return httptransport.CatalogViewDTO{
		ShopProductID:      view.ShopProductID,
		ShopID:             view.ShopID,
		ProductID:          view.ProductID,
		ParentProductID:    view.ParentProductID,
		ProductTypeID:      view.ProductTypeID,
		CategoryIDs:        view.CategoryIDs,
		RelatedCategoryIDs: view.RelatedCategoryIDs,
		SupplierIDs:        view.SupplierIDs,
		MinimumPrice:       view.MinimumPrice,
		Orderable:          view.Orderable,
		MinOrderQuantity:   view.MinOrderQuantity,
		MaxOrderQuantity:   view.MaxOrderQuantity,
	}
}
