package route

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	helper "okr_backend/internals/helpers"
)

var startedAt = time.Now()

// BaseRoutes registers the unauthenticated service endpoints.
func BaseRoutes(app *fiber.App, db *gorm.DB) {
	app.Get("/", func(c *fiber.Ctx) error {
		return helper.Success(c, "OKR backend is running", fiber.Map{
			"uptime": time.Since(startedAt).Round(time.Second).String(),
		})
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.Ping()
		}
		if err != nil {
			return helper.Error(c, fiber.StatusServiceUnavailable, "Database unreachable")
		}
		return helper.Success(c, "OK", fiber.Map{
			"uptime": time.Since(startedAt).Round(time.Second).String(),
		})
	})
}
