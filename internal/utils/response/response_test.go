package response

import (
	"testing"

	domainerrors "usercenter/internal/errors"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	tests := map[string]int{
		domainerrors.CodeValidation:        fiber.StatusBadRequest,
		domainerrors.CodeInvalidAmount:     fiber.StatusBadRequest,
		domainerrors.CodeNotVerified:       fiber.StatusForbidden,
		domainerrors.CodeAccountNotFound:   fiber.StatusNotFound,
		domainerrors.CodeAlreadyVerified:   fiber.StatusConflict,
		domainerrors.CodeDuplicatePending:  fiber.StatusConflict,
		domainerrors.CodeInsufficientFunds: fiber.StatusUnprocessableEntity,
		domainerrors.CodeBusy:              fiber.StatusTooManyRequests,
		domainerrors.CodeStorageFailure:    fiber.StatusInternalServerError,
		"SOMETHING_NEW":                    fiber.StatusInternalServerError,
	}

	for code, want := range tests {
		t.Run(code, func(t *testing.T) {
			assert.Equal(t, want, StatusFor(code))
		})
	}
}
