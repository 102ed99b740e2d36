package adaptor

import (
	"errors"
	"net/http"

	"rental-booking/internal/usecase"
	"rental-booking/internal/view"
	"rental-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Pages renders templates with the caller's identity and pending flash attached.
type Pages struct {
	view *view.Renderer
	log  *zap.Logger
}

func NewPages(renderer *view.Renderer, log *zap.Logger) *Pages {
	return &Pages{
		view: renderer,
		log:  log.With(zap.String("handler", "pages")),
	}
}

func (p *Pages) render(w http.ResponseWriter, r *http.Request, status int, name, title string, data any) {
	p.renderPage(w, r, status, name, view.Page{
		Title: title,
		Flash: utils.PopFlash(w, r),
		Data:  data,
	})
}

// renderFormError re-shows a form with the submitted values and the error as the notice.
func (p *Pages) renderFormError(w http.ResponseWriter, r *http.Request, name, title string, data any, err error) {
	p.renderPage(w, r, http.StatusOK, name, pageWithFlash(title, data, "error", flashMessage(err)))
}

func pageWithFlash(title string, data any, kind, message string) view.Page {
	return view.Page{
		Title: title,
		Flash: &utils.Flash{Kind: kind, Message: message},
		Data:  data,
	}
}

func (p *Pages) renderPage(w http.ResponseWriter, r *http.Request, status int, name string, page view.Page) {
	if identity, ok := utils.GetIdentity(r.Context()); ok {
		page.User = identity
	}

	if err := p.view.Render(w, status, name, page); err != nil {
		p.log.Error("Failed to render page", zap.Error(err), zap.String("page", name))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// NotFound handles unknown routes and missing records.
func (p *Pages) NotFound(w http.ResponseWriter, r *http.Request) {
	p.render(w, r, http.StatusNotFound, "404", "Not found", nil)
}

// ServerError is the generic error page, also used by the panic recoverer.
func (p *Pages) ServerError(w http.ResponseWriter, r *http.Request) {
	p.render(w, r, http.StatusInternalServerError, "500", "Error", nil)
}

// handleServiceError maps usecase errors to a flash-and-redirect back to
// the form, the 404 page, or the 500 page.
func (p *Pages) handleServiceError(w http.ResponseWriter, r *http.Request, err error, back, operation string) {
	switch {
	case errors.Is(err, usecase.ErrNotFound):
		p.log.Warn(operation+" failed - not found", zap.Error(err))
		p.NotFound(w, r)

	case errors.Is(err, usecase.ErrForbidden):
		p.log.Warn(operation+" failed - forbidden", zap.Error(err), zap.String("path", r.URL.Path))
		utils.RedirectWithFlash(w, r, "/", "error", "Unauthorized access")

	case errors.Is(err, usecase.ErrUnauthorized):
		utils.RedirectWithFlash(w, r, "/login", "info", "Please log in to access this page.")

	case errors.Is(err, usecase.ErrValidation),
		errors.Is(err, usecase.ErrAuth),
		errors.Is(err, usecase.ErrConflict),
		errors.Is(err, usecase.ErrAlreadyBooked),
		errors.Is(err, usecase.ErrPaymentInit),
		errors.Is(err, usecase.ErrPaymentNotVerified):
		p.log.Warn(operation+" rejected", zap.Error(err))
		utils.RedirectWithFlash(w, r, back, "error", flashMessage(err))

	default:
		p.log.Error("Failed to "+operation, zap.Error(err), zap.String("path", r.URL.Path))
		p.ServerError(w, r)
	}
}

// flashMessage capitalises a bare sentinel so it reads as a sentence.
func flashMessage(err error) string {
	msg := err.Error()
	if msg == "" {
		return msg
	}
	if c := msg[0]; c >= 'a' && c <= 'z' {
		return string(c-'a'+'A') + msg[1:]
	}
	return msg
}

// pathID parses the {id} URL parameter, rendering 404 when it is not a positive integer.
func (p *Pages) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		p.NotFound(w, r)
		return 0, false
	}
	return id, true
}

func parseForm(r *http.Request, dst any) map[string]string {
	if err := r.ParseForm(); err != nil {
		return map[string]string{"form": "Invalid form submission"}
	}
	return utils.DecodeForm(dst, r.PostForm)
}

func currentUser(r *http.Request) *utils.Identity {
	identity, _ := utils.GetIdentity(r.Context())
	return identity
}
