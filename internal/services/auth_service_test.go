package services_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"catalogue/internal/models"
	"catalogue/internal/repositories"
	"catalogue/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test_jwt_secret"

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func notFound(v string) error {
	return fmt.Errorf("%w: %s", repositories.ErrUserNotFound, v)
}

func TestAuthService_RegisterUser(t *testing.T) {
	ctx := context.Background()

	t.Run("success hashes the password", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		authService := services.NewAuthService(mockRepo, testJWTSecret, time.Hour, nil)
		user := &models.User{Username: "testuser", Email: "test@example.com", Password: "password123"}

		mockRepo.On("GetByUsername", mock.Anything, "testuser").Return(nil, notFound("testuser")).Once()
		mockRepo.On("GetByEmail", mock.Anything, "test@example.com").Return(nil, notFound("test@example.com")).Once()
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil).Once()

		require.NoError(t, authService.RegisterUser(ctx, user))
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))
		mockRepo.AssertExpectations(t)
	})

	t.Run("username already taken", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		authService := services.NewAuthService(mockRepo, testJWTSecret, time.Hour, nil)
		user := &models.User{Username: "testuser", Email: "test@example.com", Password: "password123"}

		mockRepo.On("GetByUsername", mock.Anything, "testuser").Return(&models.User{ID: "1"}, nil).Once()

		err := authService.RegisterUser(ctx, user)
		assertKind(t, err, services.DuplicateData)
		assert.Contains(t, err.Error(), "username 'testuser' already taken")
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("email already registered", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		authService := services.NewAuthService(mockRepo, testJWTSecret, time.Hour, nil)
		user := &models.User{Username: "testuser", Email: "test@example.com", Password: "password123"}

		mockRepo.On("GetByUsername", mock.Anything, "testuser").Return(nil, notFound("testuser")).Once()
		mockRepo.On("GetByEmail", mock.Anything, "test@example.com").Return(&models.User{ID: "1"}, nil).Once()

		err := authService.RegisterUser(ctx, user)
		assertKind(t, err, services.DuplicateData)
		assert.Contains(t, err.Error(), "email 'test@example.com' already registered")
	})

	t.Run("password longer than bcrypt accepts is invalid input", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		authService := services.NewAuthService(mockRepo, testJWTSecret, time.Hour, nil)
		// 37 two-byte runes pass the rune-counted max=72 tag but exceed 72 bytes.
		user := &models.User{Username: "testuser", Email: "test@example.com", Password: strings.Repeat("é", 37)}

		mockRepo.On("GetByUsername", mock.Anything, "testuser").Return(nil, notFound("testuser")).Once()
		mockRepo.On("GetByEmail", mock.Anything, "test@example.com").Return(nil, notFound("test@example.com")).Once()

		err := authService.RegisterUser(ctx, user)
		assertKind(t, err, services.InvalidInput)
		assert.Contains(t, err.Error(), "password must not exceed 72 bytes")
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("lookup failure is not a duplicate", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		authService := services.NewAuthService(mockRepo, testJWTSecret, time.Hour, nil)
		user := &models.User{Username: "testuser", Email: "test@example.com", Password: "password123"}

		mockRepo.On("GetByUsername", mock.Anything, "testuser").Return(nil, errors.New("db down")).Once()

		err := authService.RegisterUser(ctx, user)
		require.Error(t, err)
		_, isDomain := services.KindOf(err)
		assert.False(t, isDomain)
	})
}

func TestAuthService_LoginUser(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, time.Hour, nil)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	user := &models.User{
		ID:       "user-123",
		Username: "testuser",
		Email:    "test@example.com",
		Password: string(hashedPassword),
	}

	// Successful login
	mockRepo.On("GetByUsername", mock.Anything, "testuser").Return(user, nil).Once()
	token, err := authService.LoginUser(ctx, "testuser", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, user.ID, claims["user_id"])
	assert.Equal(t, user.Username, claims["username"])

	// Wrong password
	mockRepo.On("GetByUsername", mock.Anything, "testuser").Return(user, nil).Once()
	_, err = authService.LoginUser(ctx, "testuser", "wrongpassword")
	assertKind(t, err, services.Unauthorized)
	assert.Equal(t, "invalid credentials", err.Error())

	// Unknown user gets the same message
	mockRepo.On("GetByUsername", mock.Anything, "ghost").Return(nil, notFound("ghost")).Once()
	_, err = authService.LoginUser(ctx, "ghost", "password123")
	assertKind(t, err, services.Unauthorized)
	assert.Equal(t, "invalid credentials", err.Error())
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	authService := services.NewAuthService(new(MockUserRepository), testJWTSecret, time.Hour, nil)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  "user-123",
		"username": "testuser",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	validTokenString, err := token.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)

	claims, err := authService.ValidateToken(validTokenString)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims["user_id"])
	assert.Equal(t, "testuser", claims["username"])

	_, err = authService.ValidateToken("invalid.token.string")
	assert.ErrorContains(t, err, "invalid token")

	wrongSecret, err := token.SignedString([]byte("another_secret"))
	require.NoError(t, err)
	_, err = authService.ValidateToken(wrongSecret)
	assert.ErrorContains(t, err, "invalid token")

	expiredToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  "user-123",
		"username": "testuser",
		"exp":      time.Now().Add(-time.Hour).Unix(),
	})
	expiredTokenString, err := expiredToken.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	_, err = authService.ValidateToken(expiredTokenString)
	assert.ErrorContains(t, err, "invalid token")
}
