package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"rental-booking/internal/data/entity"
	"rental-booking/pkg/utils"
)

//go:embed templates
var templateFS embed.FS

const (
	baseLayout = "templates/base.html"
	partials   = "templates/partials.html"
)

// AmenityOptions are the checkboxes offered on the search and add-property forms.
var AmenityOptions = []string{
	"24/7 Security",
	"Parking",
	"WiFi",
	"Water Backup",
	"Backup Generator",
	"Gym Access",
	"Swimming Pool",
	"Gated Community",
}

//go:embed static
var staticFS embed.FS

// Page is the data every template receives.
type Page struct {
	Title string
	User  *utils.Identity
	Flash *utils.Flash
	Data  any
}

// Renderer holds one parsed template set per page, each sharing the base layout.
type Renderer struct {
	pages map[string]*template.Template
}

func New(currency string) (*Renderer, error) {
	funcs := template.FuncMap{
		"money": func(amount float64) string {
			return utils.FormatMoney(currency, amount)
		},
		"date":      formatDate,
		"typeLabel": func(t entity.PropertyType) string { return t.Label() },
		"title":     titleCase,
		"contains":  containsString,
		"amenityOptions": func() []string {
			return AmenityOptions
		},
		"bookingStatuses": func() []string {
			return []string{
				string(entity.BookingStatusPending),
				string(entity.BookingStatusConfirmed),
				string(entity.BookingStatusCancelled),
				string(entity.BookingStatusCompleted),
			}
		},
		"inquiryStatuses": func() []string {
			return []string{
				string(entity.InquiryStatusPending),
				string(entity.InquiryStatusContacted),
				string(entity.InquiryStatusClosed),
			}
		},
	}

	pages := make(map[string]*template.Template)
	err := fs.WalkDir(templateFS, "templates", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path.Ext(p) != ".html" || p == baseLayout || p == partials {
			return nil
		}

		name := strings.TrimSuffix(strings.TrimPrefix(p, "templates/"), ".html")
		tmpl, err := template.New("base").Funcs(funcs).ParseFS(templateFS, baseLayout, partials, p)
		if err != nil {
			return fmt.Errorf("parse %s: %w", p, err)
		}
		pages[name] = tmpl
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &Renderer{pages: pages}, nil
}

// Render executes the page into a buffer first so a template error never
// leaves a half-written response.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, page Page) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", page); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// Static serves the embedded /static assets.
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}

func formatDate(v any) string {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return "-"
		}
		return t.Format("Jan 02, 2006")
	case *time.Time:
		if t == nil || t.IsZero() {
			return "-"
		}
		return t.Format("Jan 02, 2006")
	}
	return "-"
}

func titleCase(v any) string {
	s := strings.ReplaceAll(fmt.Sprint(v), "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
