package utils

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/schema"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const DateLayout = "2006-01-02"

var formDecoder = newFormDecoder()

func newFormDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}

// DecodeForm fills dst from form or query values using `schema` tags.
// Conversion failures come back as a field -> message map.
func DecodeForm(dst any, values url.Values) map[string]string {
	err := formDecoder.Decode(dst, values)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	if multi, ok := err.(schema.MultiError); ok {
		for field, fieldErr := range multi {
			if _, isConversion := fieldErr.(schema.ConversionError); isConversion {
				errors[field] = "Must be a number"
				continue
			}
			errors[field] = fieldErr.Error()
		}
		return errors
	}

	errors["form"] = err.Error()
	return errors
}

// ParseID parses a positive integer path parameter.
func ParseID(value string) (int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid id %q", value)
	}
	return id, nil
}

// ParseOptionalDate returns nil for an empty string.
func ParseOptionalDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ToMinorUnits converts a major-unit amount to cents.
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

var moneyPrinter = message.NewPrinter(language.English)

// FormatMoney renders 15000 as "KES 15,000".
func FormatMoney(currency string, amount float64) string {
	return moneyPrinter.Sprintf("%s %.0f", strings.ToUpper(currency), amount)
}

// IsLocalPath reports whether next is safe to redirect to after login.
func IsLocalPath(next string) bool {
	return strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") && !strings.Contains(next, "\\")
}
