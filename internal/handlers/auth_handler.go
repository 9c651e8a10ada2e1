package handlers

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"catalogue/internal/models"
	"catalogue/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the authentication routes.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", h.HandleLogin)
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse carries an issued JWT.
type TokenResponse struct {
	Token string `json:"token"`
}

// HandleRegister registers a new catalogue administrator.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var user models.User
	if err := c.BodyParser(&user); err != nil {
		return services.NewError(services.InvalidInput, "Invalid request body")
	}
	user.ID = ""
	if err := h.validateStruct(user); err != nil {
		return err
	}

	if err := h.authService.RegisterUser(c.UserContext(), &user); err != nil {
		return err
	}

	user.Password = ""
	return c.Status(fiber.StatusCreated).JSON(models.Response[models.User]{
		StatusCode: fiber.StatusCreated,
		Message:    "User registered successfully",
		Data:       user,
	})
}

// HandleLogin authenticates a user and issues a JWT.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return services.NewError(services.InvalidInput, "Invalid request body")
	}
	if err := h.validateStruct(req); err != nil {
		return err
	}

	token, err := h.authService.LoginUser(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(models.Response[TokenResponse]{
		StatusCode: fiber.StatusOK,
		Message:    "Login successful",
		Data:       TokenResponse{Token: token},
	})
}

func (h *AuthHandler) validateStruct(s any) error {
	err := h.validate.Struct(s)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return services.NewError(services.InvalidInput, "Invalid request body")
	}
	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag()))
	}
	sort.Strings(messages)
	return services.NewError(services.InvalidInput, "%s", strings.Join(messages, "; "))
}
