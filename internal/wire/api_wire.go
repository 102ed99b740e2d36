package wire

import (
	"rental-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAPI(r chi.Router, apiHandler *adaptor.APIHandler) {
	r.Get("/api/properties", apiHandler.Properties)
	r.Get("/api/search/properties", apiHandler.Search)
}
