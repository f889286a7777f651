package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"okr_backend/internals/features/okr/periods/controller"
)

func PeriodRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewPeriodController(db)

	period := api.Group("/period")
	period.Post("/create", ctrl.CreatePeriod)
	period.Put("/update/:period_id", ctrl.UpdatePeriod)
	period.Delete("/delete/:period_id", ctrl.DeletePeriod)
	period.Get("/", ctrl.GetPeriods)
	period.Get("/:period_id", ctrl.GetPeriod)
}
