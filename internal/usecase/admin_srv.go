package usecase

import (
	"context"
	"fmt"

	"rental-booking/internal/data/entity"
	"rental-booking/internal/data/repository"
	"rental-booking/internal/dto/response"

	"go.uber.org/zap"
)

const dashboardRecentLimit = 10

type AdminService interface {
	Dashboard(ctx context.Context) (*response.DashboardResponse, error)
	ListProperties(ctx context.Context) ([]response.PropertyResponse, error)
	ListBookings(ctx context.Context) ([]response.BookingResponse, error)
	ListUsers(ctx context.Context) ([]response.UserResponse, error)
	ListPayments(ctx context.Context) ([]response.PaymentResponse, error)
}

type adminService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewAdminService(repo *repository.Repository, log *zap.Logger) AdminService {
	return &adminService{
		repo: repo,
		log:  log.With(zap.String("service", "admin")),
	}
}

func (s *adminService) Dashboard(ctx context.Context) (*response.DashboardResponse, error) {
	var (
		dash response.DashboardResponse
		err  error
	)

	if dash.TotalProperties, err = s.repo.Property.CountAll(ctx); err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	if dash.AvailableProperties, err = s.repo.Property.CountListed(ctx); err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	if dash.TotalBookings, err = s.repo.Booking.CountAll(ctx); err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	if dash.PendingBookings, err = s.repo.Booking.CountByStatus(ctx, entity.BookingStatusPending); err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	if dash.TotalUsers, err = s.repo.User.CountAll(ctx); err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	if dash.Revenue, err = s.repo.Payment.SumCompleted(ctx); err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}

	bookings, err := s.repo.Booking.FindRecent(ctx, dashboardRecentLimit)
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	payments, err := s.repo.Payment.FindRecent(ctx, dashboardRecentLimit)
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}

	dash.RecentBookings = response.BookingDetailsToResponse(bookings)
	dash.RecentPayments = response.PaymentDetailsToResponse(payments)
	return &dash, nil
}

func (s *adminService) ListProperties(ctx context.Context) ([]response.PropertyResponse, error) {
	properties, err := s.repo.Property.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	return response.PropertiesToResponse(properties), nil
}

func (s *adminService) ListBookings(ctx context.Context) ([]response.BookingResponse, error) {
	bookings, err := s.repo.Booking.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return response.BookingDetailsToResponse(bookings), nil
}

func (s *adminService) ListUsers(ctx context.Context) ([]response.UserResponse, error) {
	users, err := s.repo.User.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return response.UsersToResponse(users), nil
}

func (s *adminService) ListPayments(ctx context.Context) ([]response.PaymentResponse, error) {
	payments, err := s.repo.Payment.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return response.PaymentDetailsToResponse(payments), nil
}
