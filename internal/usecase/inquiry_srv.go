package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"rental-booking/internal/data/entity"
	"rental-booking/internal/data/repository"
	"rental-booking/internal/dto/request"
	"rental-booking/internal/dto/response"
	"rental-booking/pkg/utils"

	"go.uber.org/zap"
)

type InquiryService interface {
	CreateInquiry(ctx context.Context, userID, propertyID int64, req *request.InquiryRequest) error
	ListInquiries(ctx context.Context) ([]response.InquiryResponse, error)
	UpdateStatus(ctx context.Context, inquiryID int64, status string) error
}

type inquiryService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewInquiryService(repo *repository.Repository, log *zap.Logger) InquiryService {
	return &inquiryService{
		repo: repo,
		log:  log.With(zap.String("service", "inquiry")),
	}
}

func (s *inquiryService) CreateInquiry(ctx context.Context, userID, propertyID int64, req *request.InquiryRequest) error {
	req.Message = strings.TrimSpace(req.Message)
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return withDetail(ErrValidation, "%s", utils.FormatValidationErrors(errs))
	}

	property, err := s.repo.Property.FindByID(ctx, propertyID)
	if err != nil {
		return fmt.Errorf("find property: %w", err)
	}
	if property == nil {
		return withDetail(ErrNotFound, "Property not found")
	}

	inquiry := &entity.Inquiry{
		BaseSimple: entity.BaseSimple{
			CreatedAt: time.Now(),
		},
		PropertyID:        propertyID,
		UserID:            userID,
		Message:           req.Message,
		ContactPreference: req.ContactPreference,
		Status:            entity.InquiryStatusPending,
	}

	if err := s.repo.Inquiry.Create(ctx, inquiry); err != nil {
		return fmt.Errorf("create inquiry: %w", err)
	}

	s.log.Info("Inquiry created",
		zap.Int64("inquiry_id", inquiry.ID),
		zap.Int64("property_id", propertyID),
		zap.Int64("user_id", userID))
	return nil
}

func (s *inquiryService) ListInquiries(ctx context.Context) ([]response.InquiryResponse, error) {
	inquiries, err := s.repo.Inquiry.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list inquiries: %w", err)
	}
	return response.InquiriesToResponse(inquiries), nil
}

func (s *inquiryService) UpdateStatus(ctx context.Context, inquiryID int64, status string) error {
	newStatus := entity.InquiryStatus(strings.TrimSpace(status))
	if !newStatus.Valid() {
		return withDetail(ErrValidation, "Invalid inquiry status %q", status)
	}

	found, err := s.repo.Inquiry.UpdateStatus(ctx, inquiryID, newStatus)
	if err != nil {
		return fmt.Errorf("update inquiry status: %w", err)
	}
	if !found {
		return withDetail(ErrNotFound, "Inquiry not found")
	}

	s.log.Info("Inquiry status updated",
		zap.Int64("inquiry_id", inquiryID),
		zap.String("status", string(newStatus)))
	return nil
}
