package cmd

import (
	"context"
	"fmt"
	"time"

	"rental-booking/internal/data/entity"
	"rental-booking/internal/data/repository"
	"rental-booking/pkg/database"
	"rental-booking/pkg/utils"

	"go.uber.org/zap"
)

type sampleProperty struct {
	title, description  string
	propertyType        entity.PropertyType
	price, deposit      float64
	size, location      string
	lat, lng            float64
	address             string
	bedrooms, bathrooms int
	amenities           []string
	videoURL            string
}

var sampleProperties = []sampleProperty{
	{
		title:        "Modern Bedsitter in Kilimani",
		description:  "Spacious bedsitter with modern finishes, fitted kitchen, and ensuite bathroom. Located in secure compound with 24/7 security.",
		propertyType: entity.PropertyTypeBedsitter,
		price:        15000, deposit: 30000,
		size: "300 sq ft", location: "Kilimani, Nairobi",
		lat: -1.286389, lng: 36.817223,
		address:  "Mukoma Road, Kilimani",
		bedrooms: 0, bathrooms: 1,
		amenities: []string{"24/7 Security", "Water Backup", "Parking", "WiFi", "Gym Access"},
		videoURL:  "https://example.com/video1.mp4",
	},
	{
		title:        "Luxury One Bedroom Apartment",
		description:  "Beautiful one bedroom apartment with balcony, fitted wardrobes, and modern kitchen. Comes with access to swimming pool and gym.",
		propertyType: entity.PropertyTypeOneBedroom,
		price:        35000, deposit: 70000,
		size: "600 sq ft", location: "Westlands, Nairobi",
		lat: -1.2689, lng: 36.8028,
		address:  "Woodvale Grove, Westlands",
		bedrooms: 1, bathrooms: 1,
		amenities: []string{"Swimming Pool", "Gym Access", "24/7 Security", "Parking", "Backup Generator", "Water Backup"},
		videoURL:  "https://example.com/video2.mp4",
	},
	{
		title:        "Affordable Single Room",
		description:  "Clean single room with shared kitchen and bathroom. Perfect for students or young professionals.",
		propertyType: entity.PropertyTypeSingleRoom,
		price:        8000, deposit: 16000,
		size: "150 sq ft", location: "Buruburu, Nairobi",
		lat: -1.2822, lng: 36.8758,
		address:  "Phase 5, Buruburu",
		bedrooms: 0, bathrooms: 0,
		amenities: []string{"Shared Kitchen", "Shared Bathroom", "24/7 Security", "Water Available"},
	},
	{
		title:        "Spacious Two Bedroom Apartment",
		description:  "Modern two bedroom apartment with master ensuite, fitted kitchen, and spacious living area. Located in gated community.",
		propertyType: entity.PropertyTypeTwoBedroom,
		price:        55000, deposit: 110000,
		size: "900 sq ft", location: "Kileleshwa, Nairobi",
		lat: -1.2800, lng: 36.7800,
		address:  "James Gichuru Road, Kileleshwa",
		bedrooms: 2, bathrooms: 2,
		amenities: []string{"Gated Community", "Parking", "24/7 Security", "Backup Generator", "Water Backup", "Children's Playground"},
		videoURL:  "https://example.com/video4.mp4",
	},
	{
		title:        "Cozy Bedsitter Near CBD",
		description:  "Well-maintained bedsitter with own kitchenette and bathroom. Close to public transport and shopping centers.",
		propertyType: entity.PropertyTypeBedsitter,
		price:        12000, deposit: 24000,
		size: "250 sq ft", location: "Ngara, Nairobi",
		lat: -1.2700, lng: 36.8200,
		address:  "Murang'a Road, Ngara",
		bedrooms: 0, bathrooms: 1,
		amenities: []string{"Near CBD", "Public Transport", "Security", "Water Available"},
	},
	{
		title:        "Executive One Bedroom",
		description:  "Executive one bedroom with premium finishes, walk-in closet, and modern appliances. Comes with dedicated parking.",
		propertyType: entity.PropertyTypeOneBedroom,
		price:        45000, deposit: 90000,
		size: "700 sq ft", location: "Lavington, Nairobi",
		lat: -1.2600, lng: 36.7900,
		address:  "Lavington Green, Lavington",
		bedrooms: 1, bathrooms: 1,
		amenities: []string{"Dedicated Parking", "24/7 Security", "Backup Generator", "Water Backup", "Gym Access", "Swimming Pool"},
		videoURL:  "https://example.com/video6.mp4",
	},
}

// Seed wipes every table and loads an admin account plus the sample listings.
func Seed(ctx context.Context, db database.PgxIface, repo *repository.Repository, adminPassword string, logger *zap.Logger) error {
	if err := database.Truncate(ctx, db); err != nil {
		return err
	}

	hash, err := utils.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	now := time.Now()
	phone := "+254700000000"
	admin := &entity.User{
		Base:         entity.Base{CreatedAt: now, UpdatedAt: now},
		Username:     "admin",
		Email:        "admin@homerent.co.ke",
		PasswordHash: hash,
		Phone:        &phone,
		IsAdmin:      true,
	}
	if err := repo.User.Create(ctx, admin); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	for _, s := range sampleProperties {
		lat, lng := s.lat, s.lng
		property := &entity.Property{
			Base:         entity.Base{CreatedAt: now, UpdatedAt: now},
			Title:        s.title,
			Description:  s.description,
			PropertyType: s.propertyType,
			Price:        s.price,
			Deposit:      s.deposit,
			Size:         s.size,
			Location:     s.location,
			Latitude:     &lat,
			Longitude:    &lng,
			Address:      s.address,
			Bedrooms:     s.bedrooms,
			Bathrooms:    s.bathrooms,
			Amenities:    entity.EncodeStringList(s.amenities),
			VideoURL:     s.videoURL,
			Images:       entity.EncodeStringList([]string{entity.PlaceholderImage}),
			IsAvailable:  true,
			OwnerID:      &admin.ID,
		}
		if err := repo.Property.Create(ctx, property); err != nil {
			return fmt.Errorf("create property %q: %w", s.title, err)
		}
	}

	logger.Info("Sample data created",
		zap.String("admin", admin.Username),
		zap.Int("properties", len(sampleProperties)))
	return nil
}
