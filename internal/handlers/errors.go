package handlers

import (
	"errors"
	"log/slog"

	"catalogue/internal/models"
	"catalogue/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// ErrorHandler is installed as fiber.Config.ErrorHandler and turns every error
// returned by a handler or middleware into an ErrorResponse.
func ErrorHandler(logger *slog.Logger) fiber.ErrorHandler {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "http")

	return func(c *fiber.Ctx, err error) error {
		body := ErrorResponseFor(err)
		attrs := []any{
			"method", c.Method(),
			"path", c.Path(),
			"status", body.StatusCode,
			"request_id", c.Locals("requestid"),
			"error", err,
		}
		if body.StatusCode >= fiber.StatusInternalServerError {
			logger.ErrorContext(c.UserContext(), "Request failed", attrs...)
		} else {
			logger.WarnContext(c.UserContext(), "Request rejected", attrs...)
		}
		return c.Status(body.StatusCode).JSON(body)
	}
}

// ErrorResponseFor maps err to its HTTP status and error label.
func ErrorResponseFor(err error) models.ErrorResponse {
	var domainErr *services.Error
	if errors.As(err, &domainErr) {
		status, label := statusForKind(domainErr.Kind)
		return models.ErrorResponse{StatusCode: status, Error: label, Message: domainErr.Message}
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return models.ErrorResponse{
			StatusCode: fiberErr.Code,
			Error:      utils.StatusMessage(fiberErr.Code),
			Message:    fiberErr.Message,
		}
	}

	return models.ErrorResponse{
		StatusCode: fiber.StatusInternalServerError,
		Error:      utils.StatusMessage(fiber.StatusInternalServerError),
		Message:    "An unexpected error occurred",
	}
}

func statusForKind(kind services.ErrorKind) (int, string) {
	switch kind {
	case services.DuplicateData:
		return fiber.StatusConflict, "Duplicate Data"
	case services.NegativeValue:
		return fiber.StatusBadRequest, "Negative Value"
	case services.NoRecord:
		return fiber.StatusNotFound, "Data not found"
	case services.NullInput:
		return fiber.StatusBadRequest, "Null Values"
	case services.InvalidInput:
		return fiber.StatusBadRequest, "Invalid input"
	case services.IDNotFound:
		return fiber.StatusNotFound, "Invalid ID"
	case services.Unauthorized:
		return fiber.StatusUnauthorized, "Unauthorized"
	default:
		return fiber.StatusInternalServerError, utils.StatusMessage(fiber.StatusInternalServerError)
	}
}
