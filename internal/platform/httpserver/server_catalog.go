package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	catalogerrors "merx/contexts/commerce/catalog-service/domain/errors"
	cataloghttp "merx/contexts/commerce/catalog-service/transport/http"
)

func (s *Server) registerCatalogRoutes() {
	s.mux.HandleFunc("POST /api/catalog/v1/products", s.handleSaveShopProduct)
	s.mux.HandleFunc("GET /api/catalog/v1/products/{shop_product_id}/view", s.handleGetCatalogView)
	s.mux.HandleFunc("GET /api/catalog/v1/shops/{shop_id}/views", s.handleListCatalogViews)
	s.mux.HandleFunc("POST /api/catalog/v1/categories", s.handleSaveCategory)
	s.mux.HandleFunc("POST /api/catalog/v1/contact-groups", s.handleSaveContactGroup)
	s.mux.HandleFunc("PUT /api/catalog/v1/contacts/{contact_id}/groups", s.handleReplaceContactGroups)
	s.mux.HandleFunc("GET /api/catalog/v1/contacts/{contact_id}/groups", s.handleContactGroups)
	s.mux.HandleFunc("POST /api/catalog/v1/shops", s.handleSaveShop)
}

func (s *Server) handleSaveShopProduct(w http.ResponseWriter, r *http.Request) {
	var req cataloghttp.SaveShopProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCatalogError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.catalog.Handler.SaveShopProductHandler(r.Context(), req)
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetCatalogView(w http.ResponseWriter, r *http.Request) {
	resp, found, err := s.catalog.Handler.GetCatalogViewHandler(r.Context(), r.PathValue("shop_product_id"))
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	if !found {
		writeCatalogError(w, http.StatusNotFound, "product_not_found", "shop product not found")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListCatalogViews(w http.ResponseWriter, r *http.Request) {
	resp, err := s.catalog.Handler.ListCatalogViewsHandler(r.Context(), r.PathValue("shop_id"))
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSaveCategory(w http.ResponseWriter, r *http.Request) {
	var req cataloghttp.SaveCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCatalogError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.catalog.Handler.SaveCategoryHandler(r.Context(), req)
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSaveContactGroup(w http.ResponseWriter, r *http.Request) {
	var req cataloghttp.SaveContactGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCatalogError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.catalog.Handler.SaveContactGroupHandler(r.Context(), req)
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleReplaceContactGroups(w http.ResponseWriter, r *http.Request) {
	var req cataloghttp.ReplaceContactGroupsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCatalogError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	if err := s.catalog.Handler.ReplaceContactGroupsHandler(r.Context(), r.PathValue("contact_id"), req); err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleContactGroups(w http.ResponseWriter, r *http.Request) {
	resp, err := s.catalog.Handler.ContactGroupsHandler(r.Context(), r.PathValue("contact_id"))
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSaveShop(w http.ResponseWriter, r *http.Request) {
	var req cataloghttp.SaveShopRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCatalogError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.catalog.Handler.SaveShopHandler(r.Context(), req)
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeCatalogDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalogerrors.ErrProductNotFound):
		writeCatalogError(w, http.StatusNotFound, "product_not_found", err.Error())
	case errors.Is(err, catalogerrors.ErrCategoryNotFound):
		writeCatalogError(w, http.StatusNotFound, "category_not_found", err.Error())
	case errors.Is(err, catalogerrors.ErrContactGroupNotFound):
		writeCatalogError(w, http.StatusNotFound, "contact_group_not_found", err.Error())
	case errors.Is(err, catalogerrors.ErrShopNotFound):
		writeCatalogError(w, http.StatusNotFound, "shop_not_found", err.Error())
	case errors.Is(err, catalogerrors.ErrInvalidProductInput):
		writeCatalogError(w, http.StatusBadRequest, "invalid_product_input", err.Error())
	case errors.Is(err, catalogerrors.ErrInvalidCategoryInput):
		writeCatalogError(w, http.StatusBadRequest, "invalid_category_input", err.Error())
	case errors.Is(err, catalogerrors.ErrInvalidGroupInput):
		writeCatalogError(w, http.StatusBadRequest, "invalid_group_input", err.Error())
	default:
		writeCatalogError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeCatalogError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, cataloghttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
