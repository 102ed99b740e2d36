package usecase

import (
	"context"
	"fmt"

	"rental-booking/internal/data/repository"
	"rental-booking/internal/dto/response"

	"go.uber.org/zap"
)

type UserService interface {
	GetProfile(ctx context.Context, userID int64) (*response.ProfileResponse, error)
}

type userService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewUserService(repo *repository.Repository, log *zap.Logger) UserService {
	return &userService{
		repo: repo,
		log:  log.With(zap.String("service", "user")),
	}
}

// GetProfile returns the user with their bookings and payments, newest first.
func (us *userService) GetProfile(ctx context.Context, userID int64) (*response.ProfileResponse, error) {
	user, err := us.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if user == nil {
		return nil, withDetail(ErrNotFound, "User not found")
	}

	bookings, err := us.repo.Booking.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile bookings: %w", err)
	}

	payments, err := us.repo.Payment.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile payments: %w", err)
	}

	return &response.ProfileResponse{
		User:     response.UserToResponse(user),
		Bookings: response.BookingDetailsToResponse(bookings),
		Payments: response.PaymentDetailsToResponse(payments),
	}, nil
}
