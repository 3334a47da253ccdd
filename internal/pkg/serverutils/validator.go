package serverutils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ValidateRequest checks struct tags and converts the first failures into a
// 400 the error middleware can pass through unchanged.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		messages := make([]string, 0, len(validationErrors))
		for _, fieldError := range validationErrors {
			messages = append(messages, fmt.Sprintf("field '%s' failed on '%s'", fieldError.Field(), fieldError.Tag()))
		}
		return fiber.NewError(fiber.StatusBadRequest, strings.Join(messages, ", "))
	}
	return nil
}
