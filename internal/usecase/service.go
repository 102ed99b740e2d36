package usecase

import (
	"rental-booking/internal/data/repository"
	"rental-booking/pkg/notify"
	"rental-booking/pkg/payment"
	"rental-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth     AuthService
	User     UserService
	Property PropertyService
	Booking  BookingService
	Inquiry  InquiryService
	Admin    AdminService
}

func NewService(
	repo *repository.Repository,
	gateway payment.Gateway,
	notifier notify.Notifier,
	maps MapRenderer,
	config *utils.Config,
	log *zap.Logger,
) *Service {
	return &Service{
		Auth:     NewAuthService(repo, config, log),
		User:     NewUserService(repo, log),
		Property: NewPropertyService(repo, maps, config, log),
		Booking:  NewBookingService(repo, gateway, notifier, config, log),
		Inquiry:  NewInquiryService(repo, log),
		Admin:    NewAdminService(repo, log),
	}
}
