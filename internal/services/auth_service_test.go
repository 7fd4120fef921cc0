package services_test

import (
	"testing"
	"time"

	"dealspot/internal/models"
	"dealspot/internal/repositories"
	"dealspot/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

const testJWTSecret = "test_jwt_secret"

func TestAuthService_Register(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	// Successful registration normalizes the email and hashes the password.
	mockRepo.On("GetByEmail", "test@example.com").Return(nil, repositories.ErrUserNotFound).Once()
	mockRepo.On("Create", mock.MatchedBy(func(u *models.User) bool {
		if u.Email != "test@example.com" || u.MerchantID != nil {
			return false
		}
		return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("password123")) == nil
	})).Return(nil).Once()

	user, err := authService.Register("  Test@Example.COM ", "password123")
	assert.NoError(t, err)
	assert.Equal(t, "test@example.com", user.Email)
	mockRepo.AssertExpectations(t)

	// Duplicate email is rejected before any create.
	mockRepo.On("GetByEmail", "test@example.com").Return(&models.User{ID: "u-1"}, nil).Once()
	_, err = authService.Register("test@example.com", "password123")
	assert.ErrorIs(t, err, services.ErrEmailTaken)
	mockRepo.AssertExpectations(t)

	// A unique-index collision on create maps to the same error.
	mockRepo.On("GetByEmail", "test@example.com").Return(nil, repositories.ErrUserNotFound).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(repositories.ErrEmailExists).Once()
	_, err = authService.Register("test@example.com", "password123")
	assert.ErrorIs(t, err, services.ErrEmailTaken)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Login(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:           "user-123",
		Email:        "test@example.com",
		PasswordHash: string(hashed),
	}

	// Successful login issues a token whose user_id claim round-trips.
	mockRepo.On("GetByEmail", "test@example.com").Return(user, nil).Once()
	token, err := authService.Login("test@example.com", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := authService.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", claims["user_id"])
	mockRepo.AssertExpectations(t)

	// Wrong password.
	mockRepo.On("GetByEmail", "test@example.com").Return(user, nil).Once()
	_, err = authService.Login("test@example.com", "wrongpassword")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)

	// Unknown email yields the same error as a wrong password.
	mockRepo.On("GetByEmail", "nobody@example.com").Return(nil, repositories.ErrUserNotFound).Once()
	_, err = authService.Login("nobody@example.com", "password123")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	validToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-123",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	validTokenString, _ := validToken.SignedString([]byte(testJWTSecret))

	claims, err := authService.ValidateToken(validTokenString)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", claims["user_id"])

	// Garbage token.
	_, err = authService.ValidateToken("not.a.token")
	assert.Error(t, err)

	// Wrong signing key.
	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-123",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	forgedString, _ := forged.SignedString([]byte("some_other_secret"))
	_, err = authService.ValidateToken(forgedString)
	assert.Error(t, err)

	// Expired token.
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-123",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})
	expiredString, _ := expired.SignedString([]byte(testJWTSecret))
	_, err = authService.ValidateToken(expiredString)
	assert.Error(t, err)
}

func TestAuthService_ResolveMerchant(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	merchantID := "merchant-1"
	mockRepo.On("GetByID", "user-1").Return(&models.User{ID: "user-1", MerchantID: &merchantID}, nil).Once()
	resolved, err := authService.ResolveMerchant("user-1")
	assert.NoError(t, err)
	assert.Equal(t, merchantID, resolved)
	mockRepo.AssertExpectations(t)

	// A user without a merchant has no tenant access.
	mockRepo.On("GetByID", "user-2").Return(&models.User{ID: "user-2"}, nil).Once()
	_, err = authService.ResolveMerchant("user-2")
	assert.ErrorIs(t, err, services.ErrNoMerchant)
	mockRepo.AssertExpectations(t)

	// A missing user is indistinguishable from an unassigned one.
	mockRepo.On("GetByID", "user-3").Return(nil, repositories.ErrUserNotFound).Once()
	_, err = authService.ResolveMerchant("user-3")
	assert.ErrorIs(t, err, services.ErrNoMerchant)
	mockRepo.AssertExpectations(t)
}
