package view

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rental-booking/internal/dto/response"
	"rental-booking/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ParsesEveryPage(t *testing.T) {
	r, err := New("kes")
	require.NoError(t, err)

	for _, name := range []string{
		"index", "search", "search_results", "property", "virtual_tour",
		"booking_form", "payment_options", "booking_success",
		"login", "register", "profile", "404", "500",
		"admin/dashboard", "admin/properties", "admin/add_property",
		"admin/bookings", "admin/users", "admin/payments", "admin/inquiries",
	} {
		assert.Contains(t, r.pages, name)
	}
	assert.NotContains(t, r.pages, "base")
	assert.NotContains(t, r.pages, "partials")
}

func TestRender_LayoutWithFlashAndUser(t *testing.T) {
	r, err := New("kes")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	err = r.Render(rec, http.StatusNotFound, "404", Page{
		Title: "Not found",
		User:  &utils.Identity{UserID: 1, Username: "admin", IsAdmin: true},
		Flash: &utils.Flash{Kind: "warning", Message: "No virtual tour available"},
	})
	require.NoError(t, err)

	body := rec.Body.String()
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, body, "<title>Not found | HomeRent</title>")
	assert.Contains(t, body, `class="flash flash-warning"`)
	assert.Contains(t, body, `href="/admin"`)
	assert.Contains(t, body, "Page not found")
}

func TestRender_BookingSuccess(t *testing.T) {
	r, err := New("kes")
	require.NoError(t, err)

	checkIn := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)
	rec := httptest.NewRecorder()
	err = r.Render(rec, http.StatusOK, "booking_success", Page{
		Data: &response.PaymentResultResponse{
			Booking:  response.BookingResponse{ID: 5, Status: "confirmed", CheckInDate: &checkIn},
			Property: response.PropertyResponse{ID: 1, Title: "Modern Bedsitter in Kilimani"},
			Payment:  &response.PaymentResponse{Amount: 30000, TransactionRef: "pi_test_1"},
		},
	})
	require.NoError(t, err)

	body := rec.Body.String()
	assert.Contains(t, body, "Modern Bedsitter in Kilimani")
	assert.Contains(t, body, "KES 30,000")
	assert.Contains(t, body, "Nov 01, 2026")
	assert.Contains(t, body, "pi_test_1")
}

func TestRender_UnknownPage(t *testing.T) {
	r, err := New("kes")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	err = r.Render(rec, http.StatusOK, "missing", Page{})
	assert.Error(t, err)
	assert.Equal(t, 0, rec.Body.Len())
}

func TestTemplateFuncs(t *testing.T) {
	assert.Equal(t, "One bedroom", titleCase("one_bedroom"))
	assert.Equal(t, "-", formatDate((*time.Time)(nil)))
	assert.Equal(t, "Jan 02, 2026", formatDate(time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)))
	assert.True(t, containsString([]string{"WiFi", "Parking"}, "Parking"))
	assert.False(t, containsString(nil, "Parking"))
}
