package adaptor

import (
	"fmt"
	"html/template"
	"net/http"

	"rental-booking/internal/dto/request"
	"rental-booking/internal/dto/response"
	"rental-booking/internal/usecase"
	"rental-booking/pkg/utils"

	"go.uber.org/zap"
)

type PropertyHandler struct {
	service usecase.PropertyService
	inquiry usecase.InquiryService
	pages   *Pages
	log     *zap.Logger
}

func NewPropertyHandler(service usecase.PropertyService, inquiry usecase.InquiryService, pages *Pages, log *zap.Logger) *PropertyHandler {
	return &PropertyHandler{
		service: service,
		inquiry: inquiry,
		pages:   pages,
		log:     log.With(zap.String("handler", "property")),
	}
}

type searchResultsPage struct {
	Properties []response.PropertyResponse
	MapHTML    template.HTML
	Params     *request.SearchRequest
}

// Home handles GET /
func (h *PropertyHandler) Home(w http.ResponseWriter, r *http.Request) {
	home, err := h.service.Home(r.Context())
	if err != nil {
		h.pages.handleServiceError(w, r, err, "/", "load home page")
		return
	}

	h.pages.render(w, r, http.StatusOK, "index", "", home)
}

// SearchForm handles GET /search
func (h *PropertyHandler) SearchForm(w http.ResponseWriter, r *http.Request) {
	h.pages.render(w, r, http.StatusOK, "search", "Search", (*request.SearchRequest)(nil))
}

// Search handles POST /search
func (h *PropertyHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req request.SearchRequest
	if errs := parseForm(r, &req); len(errs) > 0 {
		h.pages.renderFormError(w, r, "search", "Search", &req,
			fmt.Errorf("%s", utils.FormatValidationErrors(errs)))
		return
	}

	results, err := h.service.Search(r.Context(), &req)
	if err != nil {
		h.pages.handleServiceError(w, r, err, "/search", "search properties")
		return
	}

	h.pages.render(w, r, http.StatusOK, "search_results", "Search results", searchResultsPage{
		Properties: results.Properties,
		MapHTML:    results.MapHTML,
		Params:     &req,
	})
}

// Detail handles GET /property/{id}
func (h *PropertyHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pages.pathID(w, r)
	if !ok {
		return
	}

	var viewerID *int64
	if identity := currentUser(r); identity != nil {
		viewerID = &identity.UserID
	}

	detail, err := h.service.GetDetail(r.Context(), id, viewerID)
	if err != nil {
		h.pages.handleServiceError(w, r, err, "/", "get property")
		return
	}

	h.pages.render(w, r, http.StatusOK, "property", detail.Property.Title, detail)
}

// VirtualTour handles GET /property/{id}/virtual-tour
func (h *PropertyHandler) VirtualTour(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pages.pathID(w, r)
	if !ok {
		return
	}

	property, err := h.service.GetProperty(r.Context(), id)
	if err != nil {
		h.pages.handleServiceError(w, r, err, "/", "get virtual tour")
		return
	}

	if property.VirtualTourURL == "" {
		utils.RedirectWithFlash(w, r, fmt.Sprintf("/property/%d", id), "warning", "No virtual tour available for this property")
		return
	}

	h.pages.render(w, r, http.StatusOK, "virtual_tour", "Virtual tour", property)
}

// Inquire handles POST /property/{id}/inquire
func (h *PropertyHandler) Inquire(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pages.pathID(w, r)
	if !ok {
		return
	}
	back := fmt.Sprintf("/property/%d", id)

	var req request.InquiryRequest
	if errs := parseForm(r, &req); len(errs) > 0 {
		utils.RedirectWithFlash(w, r, back, "error", utils.FormatValidationErrors(errs))
		return
	}

	if err := h.inquiry.CreateInquiry(r.Context(), currentUser(r).UserID, id, &req); err != nil {
		h.pages.handleServiceError(w, r, err, back, "create inquiry")
		return
	}

	utils.RedirectWithFlash(w, r, back, "success", "Your inquiry has been sent. The landlord will contact you soon.")
}
