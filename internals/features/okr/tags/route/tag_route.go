package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"okr_backend/internals/features/okr/tags/controller"
)

func TagRoutes(api fiber.Router, db *gorm.DB) {
	tagCtrl := controller.NewTagController(db)

	tag := api.Group("/tag")
	tag.Post("/create", tagCtrl.CreateTag)
	tag.Post("/add_to_file", tagCtrl.AddTagToFile)
	tag.Put("/update/:tag_id", tagCtrl.UpdateTag)
	tag.Delete("/delete/:tag_id", tagCtrl.DeleteTag)
	tag.Get("/", tagCtrl.GetTags)
	tag.Get("/:tag_id", tagCtrl.GetTag)
}
