package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	catalogservice "merx/contexts/commerce/catalog-service"
	promotionservice "merx/contexts/commerce/promotion-service"
	promotionerrors "merx/contexts/commerce/promotion-service/domain/errors"
	promotionhttp "merx/contexts/commerce/promotion-service/transport/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	_ "merx/internal/platform/httpserver/docs"
)

type Server struct {
	mux       *http.ServeMux
	logger    *slog.Logger
	addr      string
	promotion promotionservice.Module
	catalog   catalogservice.Module
}

func New(
	promotion promotionservice.Module,
	catalog catalogservice.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:       http.NewServeMux(),
		logger:    logger,
		addr:      addr,
		promotion: promotion,
		catalog:   catalog,
	}
	s.registerRoutes()
	s.registerCatalogRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	s.mux.Handle("GET /metrics", promhttp.Handler())

	s.mux.HandleFunc("POST /api/promotion/v1/campaigns", s.handleSaveCampaign)
	s.mux.HandleFunc("GET /api/promotion/v1/campaigns", s.handleListCampaigns)
	s.mux.HandleFunc("GET /api/promotion/v1/campaigns/{campaign_id}", s.handleGetCampaign)
	s.mux.HandleFunc("POST /api/promotion/v1/coupons", s.handleSaveCoupon)
	s.mux.HandleFunc("GET /api/promotion/v1/shops/{shop_id}/coupons/{code}/usable", s.handleCouponUsability)
	s.mux.HandleFunc("POST /api/promotion/v1/shops/{shop_id}/redemptions", s.handleRedeemCoupon)
	s.mux.HandleFunc("POST /api/promotion/v1/basket/match", s.handleMatchBasket)
	s.mux.HandleFunc("POST /api/promotion/v1/basket/apply", s.handleApplyDiscounts)
	s.mux.HandleFunc("GET /api/promotion/v1/catalog/match", s.handleMatchCatalog)
	s.mux.HandleFunc("POST /api/promotion/v1/catalog/price", s.handleCatalogPrice)
	s.mux.HandleFunc("POST /api/promotion/v1/invalidations", s.handleEntityChanged)
}

func (s *Server) handleSaveCampaign(w http.ResponseWriter, r *http.Request) {
	var req promotionhttp.SaveCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writePromotionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.promotion.Handler.SaveCampaignHandler(r.Context(), req)
	if err != nil {
		writePromotionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	resp, err := s.promotion.Handler.ListCampaignsHandler(
		r.Context(),
		query.Get("shop_id"),
		query.Get("type"),
		query.Get("active") == "true",
	)
	if err != nil {
		writePromotionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	resp, err := s.promotion.Handler.GetCampaignHandler(r.Context(), r.PathValue("campaign_id"))
	if err != nil {
		writePromotionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSaveCoupon(w http.ResponseWriter, r *http.Request) {
	var req promotionhttp.SaveCouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writePromotionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.promotion.Handler.SaveCouponHandler(r.Context(), req)
	if err != nil {
		writePromotionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCouponUsability(w http.ResponseWriter, r *http.Request) {
	resp, err := s.promotion.Handler.CouponUsabilityHandler(
		r.Context(),
		r.PathValue("shop_id"),
		r.PathValue("code"),
		r.URL.Query().Get("customer_id"),
	)
	if err != nil {
		writePromotionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRedeemCoupon(w http.ResponseWriter, r *http.Request) {
	var req promotionhttp.RedeemCouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writePromotionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.promotion.Handler.RedeemCouponHandler(r.Context(), r.PathValue("shop_id"), req)
	if err != nil {
		writePromotionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMatchBasket(w http.ResponseWriter, r *http.Request) {
	var req promotionhttp.BasketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writePromotionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.promotion.Handler.MatchBasketHandler(r.Context(), req)
	if err != nil {
		writePromotionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleApplyDiscounts(w http.ResponseWriter, r *http.Request) {
	var req promotionhttp.BasketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writePromotionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.promotion.Handler.ApplyDiscountsHandler(r.Context(), req)
	if err != nil {
		writePromotionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMatchCatalog(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	shopProductID := strings.TrimSpace(query.Get("shop_product_id"))
	if shopProductID == "" {
		writePromotionError(w, http.StatusBadRequest, "missing_shop_product_id", "shop_product_id query parameter is required")
		return
	}
	resp, err := s.promotion.Handler.MatchCatalogHandler(
		r.Context(),
		query.Get("shop_id"),
		query.Get("customer_id"),
		shopProductID,
	)
	if err != nil {
		writePromotionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCatalogPrice(w http.ResponseWriter, r *http.Request) {
	var req promotionhttp.CatalogPriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writePromotionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.promotion.Handler.CatalogPriceHandler(r.Context(), req)
	if err != nil {
		writePromotionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleEntityChanged(w http.ResponseWriter, r *http.Request) {
	var req promotionhttp.EntityChangedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writePromotionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	if err := s.promotion.Handler.EntityChangedHandler(r.Context(), req); err != nil {
		writePromotionDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writePromotionDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, promotionerrors.ErrCampaignNotFound):
		writePromotionError(w, http.StatusNotFound, "campaign_not_found", err.Error())
	case errors.Is(err, promotionerrors.ErrCouponNotFound):
		writePromotionError(w, http.StatusNotFound, "coupon_not_found", err.Error())
	case errors.Is(err, promotionerrors.ErrInvalidCampaignInput):
		writePromotionError(w, http.StatusBadRequest, "invalid_campaign_input", err.Error())
	case errors.Is(err, promotionerrors.ErrInvalidCouponInput):
		writePromotionError(w, http.StatusBadRequest, "invalid_coupon_input", err.Error())
	case errors.Is(err, promotionerrors.ErrDuplicateCouponCode):
		writePromotionError(w, http.StatusConflict, "duplicate_coupon_code", err.Error())
	case errors.Is(err, promotionerrors.ErrCouponNotUsable):
		writePromotionError(w, http.StatusConflict, "coupon_not_usable", err.Error())
	case errors.Is(err, promotionerrors.ErrCouponAlreadyUsed):
		writePromotionError(w, http.StatusConflict, "coupon_already_used", err.Error())
	case errors.Is(err, promotionerrors.ErrEffectAmountConflict):
		writePromotionError(w, http.StatusBadRequest, "effect_amount_conflict", err.Error())
	case errors.Is(err, promotionerrors.ErrUnknownConditionKind),
		errors.Is(err, promotionerrors.ErrUnknownFilterKind),
		errors.Is(err, promotionerrors.ErrUnknownEffectKind),
		errors.Is(err, promotionerrors.ErrUnknownEntityKind):
		writePromotionError(w, http.StatusBadRequest, "unknown_rule_kind", err.Error())
	default:
		writePromotionError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writePromotionError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, promotionhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
