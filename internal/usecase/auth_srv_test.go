package usecase

import (
	"context"
	"testing"

	"rental-booking/internal/data/entity"
	"rental-booking/internal/data/repository"
	"rental-booking/internal/dto/request"
	"rental-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo, m := newTestRepos()
		svc := NewAuthService(repo, testConfig(), zap.NewNop())

		m.user.On("FindByUsername", ctx, "wanjiku").Return(nil, nil)
		m.user.On("FindByEmail", ctx, "wanjiku@example.com").Return(nil, nil)
		m.user.On("Create", ctx, mock.MatchedBy(func(u *entity.User) bool {
			return u.Username == "wanjiku" &&
				u.Email == "wanjiku@example.com" &&
				!u.IsAdmin &&
				u.Phone != nil && *u.Phone == "+254712345678" &&
				utils.CheckPasswordHash("secret123", u.PasswordHash)
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*entity.User).ID = 3
		}).Return(nil)

		resp, err := svc.Register(ctx, &request.RegisterRequest{
			Username:        " wanjiku ",
			Email:           "Wanjiku@Example.com",
			Phone:           "+254712345678",
			Password:        "secret123",
			ConfirmPassword: "secret123",
		})

		require.NoError(t, err)
		assert.Equal(t, int64(3), resp.ID)
		assert.Equal(t, "wanjiku", resp.Username)
		m.user.AssertExpectations(t)
	})

	t.Run("PasswordsDoNotMatch", func(t *testing.T) {
		repo, m := newTestRepos()
		svc := NewAuthService(repo, testConfig(), zap.NewNop())

		_, err := svc.Register(ctx, &request.RegisterRequest{
			Username:        "wanjiku",
			Email:           "wanjiku@example.com",
			Password:        "secret123",
			ConfirmPassword: "secret124",
		})

		assert.ErrorIs(t, err, ErrValidation)
		assert.Equal(t, "Passwords do not match", err.Error())
		m.user.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("UsernameTaken", func(t *testing.T) {
		repo, m := newTestRepos()
		svc := NewAuthService(repo, testConfig(), zap.NewNop())

		m.user.On("FindByUsername", ctx, "wanjiku").Return(&entity.User{Username: "wanjiku"}, nil)

		_, err := svc.Register(ctx, &request.RegisterRequest{
			Username:        "wanjiku",
			Email:           "other@example.com",
			Password:        "secret123",
			ConfirmPassword: "secret123",
		})

		assert.ErrorIs(t, err, ErrValidation)
		assert.Equal(t, "Username already exists", err.Error())
	})

	t.Run("EmailTaken", func(t *testing.T) {
		repo, m := newTestRepos()
		svc := NewAuthService(repo, testConfig(), zap.NewNop())

		m.user.On("FindByUsername", ctx, "otieno").Return(nil, nil)
		m.user.On("FindByEmail", ctx, "wanjiku@example.com").Return(&entity.User{Email: "wanjiku@example.com"}, nil)

		_, err := svc.Register(ctx, &request.RegisterRequest{
			Username:        "otieno",
			Email:           "wanjiku@example.com",
			Password:        "secret123",
			ConfirmPassword: "secret123",
		})

		assert.ErrorIs(t, err, ErrValidation)
		assert.Equal(t, "Email already registered", err.Error())
	})

	t.Run("ConcurrentDuplicateOnInsert", func(t *testing.T) {
		repo, m := newTestRepos()
		svc := NewAuthService(repo, testConfig(), zap.NewNop())

		m.user.On("FindByUsername", ctx, "otieno").Return(nil, nil)
		m.user.On("FindByEmail", ctx, "otieno@example.com").Return(nil, nil)
		m.user.On("Create", ctx, mock.Anything).Return(repository.ErrUsernameTaken)

		_, err := svc.Register(ctx, &request.RegisterRequest{
			Username:        "otieno",
			Email:           "otieno@example.com",
			Password:        "secret123",
			ConfirmPassword: "secret123",
		})

		assert.ErrorIs(t, err, ErrValidation)
		assert.Equal(t, "Username already exists", err.Error())
	})

	t.Run("InvalidEmail", func(t *testing.T) {
		repo, _ := newTestRepos()
		svc := NewAuthService(repo, testConfig(), zap.NewNop())

		_, err := svc.Register(ctx, &request.RegisterRequest{
			Username:        "otieno",
			Email:           "not-an-email",
			Password:        "secret123",
			ConfirmPassword: "secret123",
		})

		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	hash, err := utils.HashPassword("secret123")
	require.NoError(t, err)

	user := &entity.User{
		Base:         entity.Base{ID: 3},
		Username:     "wanjiku",
		Email:        "wanjiku@example.com",
		PasswordHash: hash,
	}

	t.Run("ByUsername", func(t *testing.T) {
		repo, m := newTestRepos()
		svc := NewAuthService(repo, testConfig(), zap.NewNop())

		m.user.On("FindByUsername", ctx, "wanjiku").Return(user, nil)
		m.session.On("Create", ctx, mock.MatchedBy(func(s *entity.Session) bool {
			return s.UserID == 3 && s.Token != uuid.Nil &&
				s.UserAgent != nil && *s.UserAgent == "curl/8.0" &&
				s.ExpiresAt.Sub(s.CreatedAt) == testConfig().Session.Lifetime
		})).Return(nil)

		resp, err := svc.Login(ctx, &request.LoginRequest{Username: "wanjiku", Password: "secret123"}, "curl/8.0", "")

		require.NoError(t, err)
		assert.Equal(t, int64(3), resp.UserID)
		assert.False(t, resp.IsAdmin)
		assert.NotEmpty(t, resp.Token)
		m.session.AssertExpectations(t)
	})

	t.Run("ByEmail", func(t *testing.T) {
		repo, m := newTestRepos()
		svc := NewAuthService(repo, testConfig(), zap.NewNop())

		m.user.On("FindByUsername", ctx, "Wanjiku@Example.com").Return(nil, nil)
		m.user.On("FindByEmail", ctx, "wanjiku@example.com").Return(user, nil)
		m.session.On("Create", ctx, mock.Anything).Return(nil)

		resp, err := svc.Login(ctx, &request.LoginRequest{Username: "Wanjiku@Example.com", Password: "secret123"}, "", "")

		require.NoError(t, err)
		assert.Equal(t, "wanjiku", resp.Username)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		repo, m := newTestRepos()
		svc := NewAuthService(repo, testConfig(), zap.NewNop())

		m.user.On("FindByUsername", ctx, "wanjiku").Return(user, nil)

		_, err := svc.Login(ctx, &request.LoginRequest{Username: "wanjiku", Password: "wrong"}, "", "")

		assert.ErrorIs(t, err, ErrAuth)
		m.session.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		repo, m := newTestRepos()
		svc := NewAuthService(repo, testConfig(), zap.NewNop())

		m.user.On("FindByUsername", ctx, "ghost").Return(nil, nil)

		_, err := svc.Login(ctx, &request.LoginRequest{Username: "ghost", Password: "secret123"}, "", "")

		assert.ErrorIs(t, err, ErrAuth)
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	repo, m := newTestRepos()
	svc := NewAuthService(repo, testConfig(), zap.NewNop())

	token := uuid.New()
	m.session.On("Revoke", ctx, token).Return(nil)

	require.NoError(t, svc.Logout(ctx, token))
	m.session.AssertExpectations(t)
}
