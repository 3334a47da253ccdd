package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"empower-commerce-be/pkg/session"
)

// ErrorHandlerMiddleware converts service errors into response envelopes.
// Validation failures map to 400; everything else is a 500 with the message
// kept generic.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Message))
		}
		if errors.Is(err, session.ErrValidation) {
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(err.Error()))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse("Internal server error"))
	}
}
