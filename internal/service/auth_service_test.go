package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"riskdesk/internal/auth"
	apperrors "riskdesk/internal/errors"
	"riskdesk/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) AssignRole(ctx context.Context, user *model.User, role *model.Role) error {
	args := m.Called(ctx, user, role)
	return args.Error(0)
}

// MockCompanyRepository is a mock implementation of CompanyRepository.
type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) Create(ctx context.Context, company *model.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

func (m *MockCompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Company, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Company), args.Error(1)
}

func (m *MockCompanyRepository) FindByName(ctx context.Context, name string) (*model.Company, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Company), args.Error(1)
}

func (m *MockCompanyRepository) ListActive(ctx context.Context) ([]model.Company, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Company), args.Error(1)
}

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID string, userID uint, email string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, userID, email, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (uint, string, error) {
	args := m.Called(ctx, tokenID)
	return args.Get(0).(uint), args.String(1), args.Error(2)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

func TestAuthService_Register(t *testing.T) {
	companyID := uuid.New()

	tests := []struct {
		name          string
		email         string
		password      string
		nameField     string
		setupMock     func(*MockUserRepository, *MockCompanyRepository)
		expectedError error
	}{
		{
			name:      "successful registration",
			email:     "test@example.com",
			password:  "password123",
			nameField: "Test User",
			setupMock: func(m *MockUserRepository, mc *MockCompanyRepository) {
				mc.On("FindByID", mock.Anything, companyID).Return(&model.Company{ID: companyID, Name: "Acme Underwriting"}, nil)
				m.On("FindByEmail", mock.Anything, "test@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:      "user already exists",
			email:     "existing@example.com",
			password:  "password123",
			nameField: "Existing User",
			setupMock: func(m *MockUserRepository, mc *MockCompanyRepository) {
				mc.On("FindByID", mock.Anything, companyID).Return(&model.Company{ID: companyID, Name: "Acme Underwriting"}, nil)
				m.On("FindByEmail", mock.Anything, "existing@example.com").Return(&model.User{Email: "existing@example.com"}, nil)
			},
			expectedError: ErrUserAlreadyExists,
		},
		{
			name:      "company does not exist",
			email:     "orphan@example.com",
			password:  "password123",
			nameField: "Orphan User",
			setupMock: func(m *MockUserRepository, mc *MockCompanyRepository) {
				mc.On("FindByID", mock.Anything, companyID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrCompanyNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockCompanyRepo := new(MockCompanyRepository)
			tt.setupMock(mockRepo, mockCompanyRepo)

			jwtService := auth.NewJWTService("test-secret")
			mockTokenStore := new(MockTokenStore)

			service := NewAuthService(mockRepo, mockCompanyRepo, jwtService, mockTokenStore)
			user, err := service.Register(context.Background(), tt.email, tt.password, tt.nameField, companyID)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.Equal(t, tt.email, user.Email)
				assert.Equal(t, tt.nameField, user.Name)
				assert.Equal(t, companyID, user.CompanyID)
				assert.Equal(t, model.UserActive, user.Status)
				assert.NotEmpty(t, user.PasswordHash)
				assert.Empty(t, user.Roles)
			}

			mockRepo.AssertExpectations(t)
			mockCompanyRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	companyID := uuid.New()
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcryptCost)

	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository, *MockTokenStore)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "test@example.com",
			password: "password123",
			setupMock: func(mRepo *MockUserRepository, mToken *MockTokenStore) {
				mRepo.On("FindByEmail", mock.Anything, "test@example.com").Return(&model.User{
					ID:           7,
					CompanyID:    companyID,
					Email:        "test@example.com",
					PasswordHash: string(hashedPassword),
					Status:       model.UserActive,
					Roles:        []model.Role{{Slug: model.RoleUnderwriter}},
				}, nil)
				mToken.On("StoreRefreshToken", mock.Anything, mock.Anything, uint(7), "test@example.com", auth.RefreshTokenExpiry).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "user not found",
			email:    "notfound@example.com",
			password: "password123",
			setupMock: func(mRepo *MockUserRepository, mToken *MockTokenStore) {
				mRepo.On("FindByEmail", mock.Anything, "notfound@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			email:    "test@example.com",
			password: "not-the-password",
			setupMock: func(mRepo *MockUserRepository, mToken *MockTokenStore) {
				mRepo.On("FindByEmail", mock.Anything, "test@example.com").Return(&model.User{
					ID:           7,
					Email:        "test@example.com",
					PasswordHash: string(hashedPassword),
					Status:       model.UserActive,
				}, nil)
			},
			expectedError: ErrInvalidCredentials,
		},
		{
			name:     "suspended user",
			email:    "suspended@example.com",
			password: "password123",
			setupMock: func(mRepo *MockUserRepository, mToken *MockTokenStore) {
				mRepo.On("FindByEmail", mock.Anything, "suspended@example.com").Return(&model.User{
					ID:           8,
					Email:        "suspended@example.com",
					PasswordHash: string(hashedPassword),
					Status:       model.UserSuspended,
				}, nil)
			},
			expectedError: ErrUserSuspended,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockTokenStore := new(MockTokenStore)
			tt.setupMock(mockRepo, mockTokenStore)

			jwtService := auth.NewJWTService("test-secret")
			service := NewAuthService(mockRepo, new(MockCompanyRepository), jwtService, mockTokenStore)

			accessToken, refreshToken, user, err := service.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Empty(t, accessToken)
				assert.Empty(t, refreshToken)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, accessToken)
				assert.NotEmpty(t, refreshToken)
				assert.NotNil(t, user)
				assert.Equal(t, tt.email, user.Email)

				// The role slugs must ride in the access token.
				claims, err := jwtService.ValidateToken(accessToken)
				assert.NoError(t, err)
				assert.Equal(t, []string{model.RoleUnderwriter}, claims.Roles)
			}

			mockRepo.AssertExpectations(t)
			mockTokenStore.AssertExpectations(t)
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	companyID := uuid.New()
	jwtService := auth.NewJWTService("test-secret")

	tokenID, refreshToken, err := jwtService.GenerateRefreshToken(7, "test@example.com", companyID)
	assert.NoError(t, err)

	t.Run("successful refresh re-reads roles", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockTokenStore := new(MockTokenStore)

		mockTokenStore.On("GetRefreshToken", mock.Anything, tokenID).Return(uint(7), "test@example.com", nil)
		mockRepo.On("FindByID", mock.Anything, uint(7)).Return(&model.User{
			ID:        7,
			CompanyID: companyID,
			Email:     "test@example.com",
			Status:    model.UserActive,
			Roles:     []model.Role{{Slug: model.RoleAdmin}},
		}, nil)

		service := NewAuthService(mockRepo, new(MockCompanyRepository), jwtService, mockTokenStore)
		accessToken, err := service.RefreshToken(context.Background(), refreshToken)

		assert.NoError(t, err)
		assert.NotEmpty(t, accessToken)

		claims, err := jwtService.ValidateToken(accessToken)
		assert.NoError(t, err)
		assert.Equal(t, []string{model.RoleAdmin}, claims.Roles)

		mockRepo.AssertExpectations(t)
		mockTokenStore.AssertExpectations(t)
	})

	t.Run("stored token does not match claims", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockTokenStore := new(MockTokenStore)

		mockTokenStore.On("GetRefreshToken", mock.Anything, tokenID).Return(uint(99), "other@example.com", nil)

		service := NewAuthService(mockRepo, new(MockCompanyRepository), jwtService, mockTokenStore)
		accessToken, err := service.RefreshToken(context.Background(), refreshToken)

		assert.Equal(t, ErrInvalidRefreshToken, err)
		assert.Empty(t, accessToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		service := NewAuthService(new(MockUserRepository), new(MockCompanyRepository), jwtService, new(MockTokenStore))
		accessToken, err := service.RefreshToken(context.Background(), "not-a-jwt")

		assert.Equal(t, ErrInvalidRefreshToken, err)
		assert.Empty(t, accessToken)
	})
}

func TestAuthService_Logout(t *testing.T) {
	companyID := uuid.New()
	jwtService := auth.NewJWTService("test-secret")

	tokenID, refreshToken, err := jwtService.GenerateRefreshToken(7, "test@example.com", companyID)
	assert.NoError(t, err)

	t.Run("deletes the refresh token", func(t *testing.T) {
		mockTokenStore := new(MockTokenStore)
		mockTokenStore.On("DeleteRefreshToken", mock.Anything, tokenID).Return(nil)

		service := NewAuthService(new(MockUserRepository), new(MockCompanyRepository), jwtService, mockTokenStore)
		assert.NoError(t, service.Logout(context.Background(), refreshToken))

		mockTokenStore.AssertExpectations(t)
	})

	t.Run("garbage token", func(t *testing.T) {
		service := NewAuthService(new(MockUserRepository), new(MockCompanyRepository), jwtService, new(MockTokenStore))
		assert.Equal(t, ErrInvalidRefreshToken, service.Logout(context.Background(), "not-a-jwt"))
	})
}
