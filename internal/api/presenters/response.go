package presenters

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/internal/logging"
	"errors"

	"github.com/gofiber/fiber/v2"
)

type (
	Response struct {
		Status  bool   `json:"status"`
		Message string `json:"message"`
		Data    any    `json:"data,omitempty"`
	}

	ErrorBody struct {
		Status  bool   `json:"status"`
		Message string `json:"message"`
		Error   string `json:"error"`
	}
)

func SuccessResponse(c *fiber.Ctx, data any, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Response{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *fiber.Ctx, statusCode int, message string, err error) error {
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	if statusCode >= fiber.StatusInternalServerError {
		logging.Error().Err(err).Str("path", c.Path()).Str("method", c.Method()).Msg(message)
		detail = "internal server error"
	}
	return c.Status(statusCode).JSON(ErrorBody{
		Status:  false,
		Message: message,
		Error:   detail,
	})
}

// StatusFromError maps an error kind to its HTTP status. Unknown errors are 500.
func StatusFromError(err error) int {
	var fiberErr *fiber.Error
	switch {
	case err == nil:
		return fiber.StatusOK
	case errors.Is(err, domain.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	default:
		return fiber.StatusInternalServerError
	}
}

// HandleError replies with the status matching err's kind.
func HandleError(c *fiber.Ctx, message string, err error) error {
	return ErrorResponse(c, StatusFromError(err), message, err)
}

// ErrorHandler is the fiber-level fallback for errors returned by handlers
// and middleware.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status := StatusFromError(err)
	message := domain.MessageFailedProcessRequest
	if status < fiber.StatusInternalServerError {
		message = err.Error()
	}
	return ErrorResponse(c, status, message, err)
}
