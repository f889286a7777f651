package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"okr_backend/internals/features/okr/keyresults/controller"
)

func KeyResultRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewKeyResultController(db)

	kr := api.Group("/kr")
	kr.Get("/", ctrl.GetKrs)
	kr.Post("/create", ctrl.CreateKr)
	kr.Put("/grading_kr/:kr_id", ctrl.GradingKr)
	kr.Put("/update/:kr_id", ctrl.UpdateKr)
	kr.Post("/add_file/:kr_id", ctrl.AddFile)
	kr.Delete("/delete/:kr_id", ctrl.DeleteKr)
	kr.Get("/:kr_id", ctrl.GetKr)
}
