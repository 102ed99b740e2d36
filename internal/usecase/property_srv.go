package usecase

import (
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"

	"rental-booking/internal/data/entity"
	"rental-booking/internal/data/repository"
	"rental-booking/internal/dto/request"
	"rental-booking/internal/dto/response"
	"rental-booking/pkg/mapview"
	"rental-booking/pkg/utils"

	"go.uber.org/zap"
)

const featuredLimit = 6

type MapRenderer interface {
	Render(id string, markers []mapview.Marker) template.HTML
}

type PropertyService interface {
	Home(ctx context.Context) (*response.HomeResponse, error)
	Search(ctx context.Context, req *request.SearchRequest) (*response.SearchResponse, error)
	GetDetail(ctx context.Context, propertyID int64, viewerID *int64) (*response.PropertyDetailResponse, error)
	GetProperty(ctx context.Context, propertyID int64) (*response.PropertyResponse, error)

	// JSON API
	ListAvailable(ctx context.Context) ([]response.APIPropertyResponse, error)
	SearchAPI(ctx context.Context, req *request.APISearchRequest) ([]response.APISearchPropertyResponse, error)

	// Admin
	CreateProperty(ctx context.Context, ownerID int64, req *request.PropertyRequest) (*response.PropertyResponse, error)
}

type propertyService struct {
	repo     *repository.Repository
	maps     MapRenderer
	currency string
	log      *zap.Logger
}

func NewPropertyService(repo *repository.Repository, maps MapRenderer, config *utils.Config, log *zap.Logger) PropertyService {
	return &propertyService{
		repo:     repo,
		maps:     maps,
		currency: config.Payment.Currency,
		log:      log.With(zap.String("service", "property")),
	}
}

func (s *propertyService) Home(ctx context.Context) (*response.HomeResponse, error) {
	counts, err := s.repo.Property.CountListedByType(ctx)
	if err != nil {
		return nil, fmt.Errorf("count categories: %w", err)
	}

	listed, err := s.repo.Property.Search(ctx, repository.PropertyFilter{}, 0)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}

	categories := make([]response.CategoryCount, 0, len(entity.PropertyTypes))
	for _, t := range entity.PropertyTypes {
		categories = append(categories, response.CategoryCount{
			Type:  t,
			Label: t.Label(),
			Count: counts[t],
		})
	}

	featured := listed
	if len(featured) > featuredLimit {
		featured = featured[:featuredLimit]
	}

	return &response.HomeResponse{
		Categories: categories,
		Featured:   response.PropertiesToResponse(featured),
		MapHTML:    s.maps.Render("listing-map", s.markers(listed)),
	}, nil
}

func (s *propertyService) markers(properties []*entity.Property) []mapview.Marker {
	markers := make([]mapview.Marker, 0, len(properties))
	for _, p := range properties {
		if !p.HasCoordinates() {
			continue
		}
		markers = append(markers, mapview.Marker{
			Lat:   *p.Latitude,
			Lng:   *p.Longitude,
			Title: p.Title,
			Price: utils.FormatMoney(s.currency, p.Price) + "/month",
			Link:  fmt.Sprintf("/property/%d", p.ID),
		})
	}
	return markers
}

func (s *propertyService) Search(ctx context.Context, req *request.SearchRequest) (*response.SearchResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, withDetail(ErrValidation, "%s", utils.FormatValidationErrors(errs))
	}

	properties, err := s.repo.Property.Search(ctx, searchFilter(req), 0)
	if err != nil {
		return nil, fmt.Errorf("search properties: %w", err)
	}

	s.log.Debug("Search executed",
		zap.String("location", req.Location),
		zap.String("type", req.PropertyType),
		zap.Int("results", len(properties)))

	return &response.SearchResponse{
		Properties: response.PropertiesToResponse(properties),
		MapHTML:    s.maps.Render("results-map", s.markers(properties)),
	}, nil
}

func searchFilter(req *request.SearchRequest) repository.PropertyFilter {
	filter := repository.PropertyFilter{
		Location:  strings.TrimSpace(req.Location),
		MinPrice:  req.MinPrice,
		MaxPrice:  req.MaxPrice,
		Bedrooms:  req.Bedrooms,
		Amenities: req.Amenities,
	}
	if req.PropertyType != "all" {
		filter.PropertyType = req.PropertyType
	}
	return filter
}

// GetDetail includes the viewer's confirmed booking when viewerID is set.
func (s *propertyService) GetDetail(ctx context.Context, propertyID int64, viewerID *int64) (*response.PropertyDetailResponse, error) {
	property, err := s.findProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	detail := &response.PropertyDetailResponse{
		Property: response.PropertyToResponse(property),
	}

	if viewerID != nil {
		booking, err := s.repo.Booking.FindConfirmedByUserAndProperty(ctx, *viewerID, propertyID)
		if err != nil {
			return nil, fmt.Errorf("find viewer booking: %w", err)
		}
		if booking != nil {
			resp := response.BookingToResponse(booking)
			detail.UserBooking = &resp
		}
	}

	return detail, nil
}

func (s *propertyService) GetProperty(ctx context.Context, propertyID int64) (*response.PropertyResponse, error) {
	property, err := s.findProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	resp := response.PropertyToResponse(property)
	return &resp, nil
}

func (s *propertyService) findProperty(ctx context.Context, propertyID int64) (*entity.Property, error) {
	property, err := s.repo.Property.FindByID(ctx, propertyID)
	if err != nil {
		return nil, fmt.Errorf("find property: %w", err)
	}
	if property == nil {
		return nil, withDetail(ErrNotFound, "Property not found")
	}
	return property, nil
}

func (s *propertyService) ListAvailable(ctx context.Context) ([]response.APIPropertyResponse, error) {
	properties, err := s.repo.Property.Search(ctx, repository.PropertyFilter{}, 0)
	if err != nil {
		return nil, fmt.Errorf("list available properties: %w", err)
	}

	result := make([]response.APIPropertyResponse, 0, len(properties))
	for _, p := range properties {
		result = append(result, response.PropertyToAPIResponse(p))
	}
	return result, nil
}

func (s *propertyService) SearchAPI(ctx context.Context, req *request.APISearchRequest) ([]response.APISearchPropertyResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, withDetail(ErrValidation, "%s", utils.FormatValidationErrors(errs))
	}

	properties, err := s.repo.Property.Search(ctx, searchFilter(req.ToSearch()), 0)
	if err != nil {
		return nil, fmt.Errorf("search properties: %w", err)
	}

	result := make([]response.APISearchPropertyResponse, 0, len(properties))
	for _, p := range properties {
		result = append(result, response.PropertyToAPISearchResponse(p))
	}
	return result, nil
}

func (s *propertyService) CreateProperty(ctx context.Context, ownerID int64, req *request.PropertyRequest) (*response.PropertyResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Add property validation failed", zap.Any("errors", errs))
		return nil, withDetail(ErrValidation, "Error adding property: %s", utils.FormatValidationErrors(errs))
	}
	if (req.Latitude == nil) != (req.Longitude == nil) {
		return nil, withDetail(ErrValidation, "Error adding property: latitude and longitude must be given together")
	}

	amenities := make([]string, 0, len(req.Amenities))
	for _, a := range req.Amenities {
		if a = strings.TrimSpace(a); a != "" {
			amenities = append(amenities, a)
		}
	}

	now := time.Now()
	property := &entity.Property{
		Base: entity.Base{
			CreatedAt: now,
			UpdatedAt: now,
		},
		Title:           strings.TrimSpace(req.Title),
		Description:     req.Description,
		PropertyType:    entity.PropertyType(req.PropertyType),
		Price:           *req.Price,
		Deposit:         *req.Deposit,
		Size:            req.Size,
		Location:        strings.TrimSpace(req.Location),
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		Address:         req.Address,
		Bedrooms:        req.Bedrooms,
		Bathrooms:       req.Bathrooms,
		Amenities:       entity.EncodeStringList(amenities),
		VideoURL:        req.VideoURL,
		Images:          entity.EncodeStringList([]string{entity.PlaceholderImage}),
		VirtualTourURL:  req.VirtualTourURL,
		VirtualTourType: req.VirtualTourType,
		IsAvailable:     true,
		OwnerID:         &ownerID,
	}

	if err := s.repo.Property.Create(ctx, property); err != nil {
		return nil, fmt.Errorf("add property: %w", err)
	}

	s.log.Info("Property added",
		zap.Int64("property_id", property.ID),
		zap.Int64("owner_id", ownerID),
		zap.String("title", property.Title))

	resp := response.PropertyToResponse(property)
	return &resp, nil
}
