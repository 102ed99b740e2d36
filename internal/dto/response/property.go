package response

import (
	"html/template"
	"time"

	"rental-booking/internal/data/entity"
)

type PropertyResponse struct {
	ID              int64               `json:"id"`
	Title           string              `json:"title"`
	Description     string              `json:"description"`
	PropertyType    entity.PropertyType `json:"property_type"`
	Price           float64             `json:"price"`
	Deposit         float64             `json:"deposit"`
	Size            string              `json:"size,omitempty"`
	Location        string              `json:"location"`
	Address         string              `json:"address,omitempty"`
	Latitude        *float64            `json:"latitude"`
	Longitude       *float64            `json:"longitude"`
	Bedrooms        int                 `json:"bedrooms"`
	Bathrooms       int                 `json:"bathrooms"`
	Amenities       []string            `json:"amenities"`
	Images          []string            `json:"images"`
	CoverImage      string              `json:"cover_image"`
	VideoURL        string              `json:"video_url,omitempty"`
	VirtualTourURL  string              `json:"virtual_tour_url,omitempty"`
	VirtualTourType string              `json:"virtual_tour_type,omitempty"`
	IsAvailable     bool                `json:"is_available"`
	IsBooked        bool                `json:"is_booked"`
	BookedUntil     *time.Time          `json:"booked_until,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
}

type CategoryCount struct {
	Type  entity.PropertyType
	Label string
	Count int64
}

type HomeResponse struct {
	Categories []CategoryCount
	Featured   []PropertyResponse
	MapHTML    template.HTML
}

type PropertyDetailResponse struct {
	Property    PropertyResponse
	UserBooking *BookingResponse
}

type SearchResponse struct {
	Properties []PropertyResponse
	MapHTML    template.HTML
}

// APIPropertyResponse is one element of GET /api/properties.
type APIPropertyResponse struct {
	ID        int64               `json:"id"`
	Title     string              `json:"title"`
	Price     float64             `json:"price"`
	Location  string              `json:"location"`
	Latitude  *float64            `json:"latitude"`
	Longitude *float64            `json:"longitude"`
	Type      entity.PropertyType `json:"type"`
	Bedrooms  int                 `json:"bedrooms"`
	Image     string              `json:"image"`
}

// APISearchPropertyResponse is one element of GET /api/search/properties.
type APISearchPropertyResponse struct {
	ID       int64               `json:"id"`
	Title    string              `json:"title"`
	Price    float64             `json:"price"`
	Location string              `json:"location"`
	Type     entity.PropertyType `json:"type"`
	Bedrooms int                 `json:"bedrooms"`
	Size     string              `json:"size"`
	Deposit  float64             `json:"deposit"`
}

// Helper converters
func PropertyToResponse(p *entity.Property) PropertyResponse {
	images := p.ImageList()
	if images == nil {
		images = []string{}
	}
	amenities := p.AmenityList()
	if amenities == nil {
		amenities = []string{}
	}

	return PropertyResponse{
		ID:              p.ID,
		Title:           p.Title,
		Description:     p.Description,
		PropertyType:    p.PropertyType,
		Price:           p.Price,
		Deposit:         p.Deposit,
		Size:            p.Size,
		Location:        p.Location,
		Address:         p.Address,
		Latitude:        p.Latitude,
		Longitude:       p.Longitude,
		Bedrooms:        p.Bedrooms,
		Bathrooms:       p.Bathrooms,
		Amenities:       amenities,
		Images:          images,
		CoverImage:      p.CoverImage(),
		VideoURL:        p.VideoURL,
		VirtualTourURL:  p.VirtualTourURL,
		VirtualTourType: p.VirtualTourType,
		IsAvailable:     p.IsAvailable,
		IsBooked:        p.IsBooked,
		BookedUntil:     p.BookedUntil,
		CreatedAt:       p.CreatedAt,
	}
}

func PropertiesToResponse(properties []*entity.Property) []PropertyResponse {
	result := make([]PropertyResponse, 0, len(properties))
	for _, p := range properties {
		result = append(result, PropertyToResponse(p))
	}
	return result
}

func PropertyToAPIResponse(p *entity.Property) APIPropertyResponse {
	return APIPropertyResponse{
		ID:        p.ID,
		Title:     p.Title,
		Price:     p.Price,
		Location:  p.Location,
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
		Type:      p.PropertyType,
		Bedrooms:  p.Bedrooms,
		Image:     p.CoverImage(),
	}
}

func PropertyToAPISearchResponse(p *entity.Property) APISearchPropertyResponse {
	return APISearchPropertyResponse{
		ID:       p.ID,
		Title:    p.Title,
		Price:    p.Price,
		Location: p.Location,
		Type:     p.PropertyType,
		Bedrooms: p.Bedrooms,
		Size:     p.Size,
		Deposit:  p.Deposit,
	}
}
