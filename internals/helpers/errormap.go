package helper

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// DBError maps a database error to the response envelope. Raw driver text is
// logged but never sent to the client.
func DBError(c *fiber.Ctx, err error, notFoundMsg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if notFoundMsg == "" {
			notFoundMsg = "The information provided could not be found"
		}
		return Error(c, fiber.StatusNotFound, notFoundMsg)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return Error(c, fiber.StatusConflict, "The provided data already exists, please try another")
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch {
		case pqErr.Code == "23505":
			return Error(c, fiber.StatusConflict, "The provided data already exists, please try another")
		case strings.HasPrefix(string(pqErr.Code), "23"):
			return Error(c, fiber.StatusBadRequest, "A constraint in the database has been violated")
		case pqErr.Code == "42P01":
			log.Printf("[ERROR] missing table: %v", pqErr)
			return Error(c, fiber.StatusInternalServerError, "The database has not yet been initialized")
		}
	}

	log.Printf("[ERROR] db: %v", err)
	return Error(c, fiber.StatusInternalServerError, "Internal server error")
}
