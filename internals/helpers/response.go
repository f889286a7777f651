package helper

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Every endpoint answers with the same envelope: {code, message, data, error}.

// ✅ Success response (200)
func Success(c *fiber.Ctx, message string, data interface{}) error {
	return SuccessWithCode(c, fiber.StatusOK, message, data)
}

// ✅ Success response with custom code (201 for created, etc.)
func SuccessWithCode(c *fiber.Ctx, code int, message string, data interface{}) error {
	return c.Status(code).JSON(fiber.Map{
		"code":    code,
		"message": message,
		"data":    data,
		"error":   "",
	})
}

// ✅ Error response
func Error(c *fiber.Ctx, code int, message string) error {
	return ErrorWithDetails(c, code, message, "")
}

// ✅ Error response with detail payload (field maps, etc.)
func ErrorWithDetails(c *fiber.Ctx, code int, message string, detail interface{}) error {
	return c.Status(code).JSON(fiber.Map{
		"code":    code,
		"message": message,
		"data":    nil,
		"error":   detail,
	})
}

// ✅ validator.v10 errors → field → tag map
func ValidationError(c *fiber.Ctx, err error) error {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return Error(c, fiber.StatusBadRequest, "Invalid input")
	}

	errorsMap := make(map[string]string)
	for _, fieldErr := range ve {
		errorsMap[fieldErr.Field()] = fieldErr.Tag()
	}

	return ErrorWithDetails(c, fiber.StatusBadRequest, "Validation failed", errorsMap)
}
