package entity

import (
	"bytes"
	"encoding/json"
	"time"
)

type PropertyType string

const (
	PropertyTypeBedsitter  PropertyType = "bedsitter"
	PropertyTypeSingleRoom PropertyType = "single_room"
	PropertyTypeOneBedroom PropertyType = "one_bedroom"
	PropertyTypeTwoBedroom PropertyType = "two_bedroom"
)

// PropertyTypes lists the types in display order.
var PropertyTypes = []PropertyType{
	PropertyTypeBedsitter,
	PropertyTypeSingleRoom,
	PropertyTypeOneBedroom,
	PropertyTypeTwoBedroom,
}

func (t PropertyType) Label() string {
	switch t {
	case PropertyTypeBedsitter:
		return "Bedsitter"
	case PropertyTypeSingleRoom:
		return "Single Room"
	case PropertyTypeOneBedroom:
		return "One Bedroom"
	case PropertyTypeTwoBedroom:
		return "Two Bedroom"
	}
	return string(t)
}

const PlaceholderImage = "/static/images/house-placeholder.svg"

type Property struct {
	Base
	Title           string       `db:"title"`
	Description     string       `db:"description"`
	PropertyType    PropertyType `db:"property_type"`
	Price           float64      `db:"price"`
	Deposit         float64      `db:"deposit"`
	Size            string       `db:"size"`
	Location        string       `db:"location"`
	Latitude        *float64     `db:"latitude"`
	Longitude       *float64     `db:"longitude"`
	Address         string       `db:"address"`
	Bedrooms        int          `db:"bedrooms"`
	Bathrooms       int          `db:"bathrooms"`
	Amenities       string       `db:"amenities"` // JSON array of strings
	VideoURL        string       `db:"video_url"`
	Images          string       `db:"images"` // JSON array of paths
	VirtualTourURL  string       `db:"virtual_tour_url"`
	VirtualTourType string       `db:"virtual_tour_type"` // video, 360, youtube
	IsAvailable     bool         `db:"is_available"`
	IsBooked        bool         `db:"is_booked"`
	BookedUntil     *time.Time   `db:"booked_until"`
	OwnerID         *int64       `db:"owner_id"`
}

// Listed reports whether the property shows up in browsing and search.
func (p *Property) Listed() bool {
	return p.IsAvailable && !p.IsBooked
}

func (p *Property) HasCoordinates() bool {
	return p.Latitude != nil && p.Longitude != nil
}

func (p *Property) AmenityList() []string {
	return decodeStringList(p.Amenities)
}

func (p *Property) ImageList() []string {
	return decodeStringList(p.Images)
}

// CoverImage is the first image, or the placeholder.
func (p *Property) CoverImage() string {
	images := p.ImageList()
	if len(images) == 0 {
		return PlaceholderImage
	}
	return images[0]
}

// EncodeStringList serializes a list for the amenities and images columns.
// Text is stored unescaped so substring search sees "Gym & Pool" as typed.
func EncodeStringList(items []string) string {
	if items == nil {
		items = []string{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(items); err != nil {
		return "[]"
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n"))
}

func decodeStringList(raw string) []string {
	if raw == "" {
		return nil
	}
	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil
	}
	return items
}
