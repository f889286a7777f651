package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"okr_backend/internals/features/okr/objectives/controller"
)

func ObjectiveRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewObjectiveController(db)

	obj := api.Group("/objective")
	obj.Get("/", ctrl.GetObjs)
	obj.Post("/create", ctrl.CreateObj)
	obj.Get("/check_state/:obj_id", ctrl.CheckStateObj)
	obj.Post("/add_to_user/:obj_id", ctrl.AddToUser)
	obj.Post("/add_to_department/:obj_id", ctrl.AddToDepartment)
	obj.Post("/add_to_org/:obj_id", ctrl.AddToOrganize)
	obj.Put("/update/:obj_id", ctrl.UpdateObj)
	obj.Delete("/delete/:obj_id", ctrl.DeleteObj)
	obj.Get("/:obj_id", ctrl.GetObj)
}
