package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"okr_backend/internals/features/org/organizes/controller"
)

func OrganizeRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewOrganizeController(db)

	organize := api.Group("/organize")
	organize.Get("/", ctrl.GetOrganizes)
	organize.Get("/:organize_id", ctrl.GetOrganize)
	organize.Post("/create", ctrl.CreateOrganize)
	organize.Put("/update/:organize_id", ctrl.UpdateOrganize)
	organize.Delete("/delete/:organize_id", ctrl.DeleteOrganize)
}
