package request

// SearchRequest is the /search form. "all" or an empty type means any type.
type SearchRequest struct {
	Location     string   `schema:"location" validate:"max=200"`
	PropertyType string   `schema:"property_type" validate:"omitempty,oneof=all bedsitter single_room one_bedroom two_bedroom"`
	MinPrice     *float64 `schema:"min_price" validate:"omitempty,gte=0"`
	MaxPrice     *float64 `schema:"max_price" validate:"omitempty,gte=0"`
	Bedrooms     *int     `schema:"bedrooms" validate:"omitempty,gte=0"`
	Amenities    []string `schema:"amenities" validate:"max=20,dive,max=100"`
}

// APISearchRequest is the /api/search/properties query string.
type APISearchRequest struct {
	Location     string   `schema:"location" validate:"max=200"`
	PropertyType string   `schema:"type" validate:"omitempty,oneof=all bedsitter single_room one_bedroom two_bedroom"`
	MinPrice     *float64 `schema:"min_price" validate:"omitempty,gte=0"`
	MaxPrice     *float64 `schema:"max_price" validate:"omitempty,gte=0"`
}

func (r *APISearchRequest) ToSearch() *SearchRequest {
	return &SearchRequest{
		Location:     r.Location,
		PropertyType: r.PropertyType,
		MinPrice:     r.MinPrice,
		MaxPrice:     r.MaxPrice,
	}
}

type PropertyRequest struct {
	Title           string   `schema:"title" validate:"required,max=200"`
	Description     string   `schema:"description" validate:"required"`
	PropertyType    string   `schema:"property_type" validate:"required,oneof=bedsitter single_room one_bedroom two_bedroom"`
	Price           *float64 `schema:"price" validate:"required,gt=0"`
	Deposit         *float64 `schema:"deposit" validate:"required,gte=0"`
	Size            string   `schema:"size" validate:"max=50"`
	Location        string   `schema:"location" validate:"required,max=200"`
	Address         string   `schema:"address"`
	Latitude        *float64 `schema:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude       *float64 `schema:"longitude" validate:"omitempty,gte=-180,lte=180"`
	Bedrooms        int      `schema:"bedrooms" validate:"gte=0"`
	Bathrooms       int      `schema:"bathrooms" validate:"gte=0"`
	Amenities       []string `schema:"amenities"`
	VideoURL        string   `schema:"video_url" validate:"omitempty,url,max=500"`
	VirtualTourURL  string   `schema:"virtual_tour_url" validate:"omitempty,url,max=500"`
	VirtualTourType string   `schema:"virtual_tour_type" validate:"omitempty,oneof=video 360 youtube"`
}

type InquiryRequest struct {
	Message           string `schema:"message" validate:"required,max=2000"`
	ContactPreference string `schema:"contact_preference" validate:"required,oneof=email phone whatsapp"`
}
