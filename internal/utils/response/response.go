package response

import (
	domainerrors "usercenter/internal/errors"

	"github.com/gofiber/fiber/v2"
)

func Success(c *fiber.Ctx, data interface{}) error {
	return c.JSON(fiber.Map{
		"data": data,
	})
}

func Error(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, domainerrors.CodeValidation, message)
}

func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, "UNAUTHORIZED", message)
}

func Forbidden(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusForbidden, "FORBIDDEN", message)
}

// DomainError writes err with the HTTP status of its code. Errors that are
// not domain errors are reported as a storage failure.
func DomainError(c *fiber.Ctx, err error) error {
	de, ok := domainerrors.As(err)
	if !ok {
		de = domainerrors.ErrStorageFailure
	}
	return Error(c, StatusFor(de.Code), de.Code, de.Message)
}

// StatusFor maps an error code to its HTTP status.
func StatusFor(code string) int {
	switch code {
	case domainerrors.CodeValidation, domainerrors.CodeInvalidAmount:
		return fiber.StatusBadRequest
	case domainerrors.CodeNotVerified:
		return fiber.StatusForbidden
	case domainerrors.CodeAccountNotFound:
		return fiber.StatusNotFound
	case domainerrors.CodeAlreadyVerified, domainerrors.CodeDuplicatePending:
		return fiber.StatusConflict
	case domainerrors.CodeInsufficientFunds:
		return fiber.StatusUnprocessableEntity
	case domainerrors.CodeBusy:
		return fiber.StatusTooManyRequests
	default:
		return fiber.StatusInternalServerError
	}
}
