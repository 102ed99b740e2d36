package adaptor

import (
	"errors"
	"net/http"

	"rental-booking/internal/dto/request"
	"rental-booking/internal/usecase"
	"rental-booking/pkg/utils"

	"go.uber.org/zap"
)

// APIHandler serves the two read-only JSON listing endpoints.
type APIHandler struct {
	service usecase.PropertyService
	log     *zap.Logger
}

func NewAPIHandler(service usecase.PropertyService, log *zap.Logger) *APIHandler {
	return &APIHandler{
		service: service,
		log:     log.With(zap.String("handler", "api")),
	}
}

// Properties handles GET /api/properties
func (h *APIHandler) Properties(w http.ResponseWriter, r *http.Request) {
	properties, err := h.service.ListAvailable(r.Context())
	if err != nil {
		h.log.Error("Failed to list properties", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	utils.WriteJSON(w, http.StatusOK, properties)
}

// Search handles GET /api/search/properties?location=&type=&min_price=&max_price=
func (h *APIHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req request.APISearchRequest
	if errs := utils.DecodeForm(&req, r.URL.Query()); len(errs) > 0 {
		utils.ResponseBadRequest(w, "Invalid query parameters", errs)
		return
	}

	properties, err := h.service.SearchAPI(r.Context(), &req)
	if err != nil {
		if errors.Is(err, usecase.ErrValidation) {
			utils.ResponseBadRequest(w, err.Error(), nil)
			return
		}
		h.log.Error("Failed to search properties", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	utils.WriteJSON(w, http.StatusOK, properties)
}
