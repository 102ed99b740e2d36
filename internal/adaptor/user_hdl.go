package adaptor

import (
	"net/http"

	"rental-booking/internal/usecase"

	"go.uber.org/zap"
)

type UserHandler struct {
	service usecase.UserService
	pages   *Pages
	log     *zap.Logger
}

func NewUserHandler(service usecase.UserService, pages *Pages, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		pages:   pages,
		log:     log.With(zap.String("handler", "user")),
	}
}

// Profile handles GET /profile
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.service.GetProfile(r.Context(), currentUser(r).UserID)
	if err != nil {
		h.pages.handleServiceError(w, r, err, "/", "get profile")
		return
	}

	h.pages.render(w, r, http.StatusOK, "profile", "My profile", profile)
}
