package utils

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMinorUnits(t *testing.T) {
	tests := []struct {
		amount float64
		want   int64
	}{
		{30000, 3000000},
		{0.1 + 0.2, 30},
		{19.99, 1999},
		{0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ToMinorUnits(tt.amount))
	}
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "KES 15,000", FormatMoney("kes", 15000))
	assert.Equal(t, "KES 0", FormatMoney("kes", 0))
}

func TestParseID(t *testing.T) {
	id, err := ParseID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, bad := range []string{"", "0", "-3", "abc", "1.5"} {
		_, err := ParseID(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseOptionalDate(t *testing.T) {
	d, err := ParseOptionalDate("")
	require.NoError(t, err)
	assert.Nil(t, d)

	d, err = ParseOptionalDate("2026-11-01")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, 11, int(d.Month()))

	_, err = ParseOptionalDate("01/11/2026")
	assert.Error(t, err)
}

func TestIsLocalPath(t *testing.T) {
	assert.True(t, IsLocalPath("/booking/3/payment-options"))
	assert.False(t, IsLocalPath("https://evil.example.com"))
	assert.False(t, IsLocalPath("//evil.example.com"))
	assert.False(t, IsLocalPath("/\\evil.example.com"))
	assert.False(t, IsLocalPath(""))
}

func TestDecodeForm(t *testing.T) {
	type searchForm struct {
		Location  string   `schema:"location"`
		MinPrice  *float64 `schema:"min_price"`
		Amenities []string `schema:"amenities"`
	}

	var form searchForm
	errs := DecodeForm(&form, url.Values{
		"location":  {"Kilimani"},
		"min_price": {"5000"},
		"amenities": {"WiFi", "Parking"},
		"csrf":      {"ignored"},
	})
	assert.Nil(t, errs)
	assert.Equal(t, "Kilimani", form.Location)
	require.NotNil(t, form.MinPrice)
	assert.Equal(t, 5000.0, *form.MinPrice)
	assert.Equal(t, []string{"WiFi", "Parking"}, form.Amenities)

	errs = DecodeForm(&searchForm{}, url.Values{"min_price": {"cheap"}})
	assert.Equal(t, "Must be a number", errs["min_price"])
}
