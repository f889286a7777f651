package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"okr_backend/internals/features/org/departments/controller"
)

func DepartmentRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewDepartmentController(db)

	department := api.Group("/department")
	department.Get("/", ctrl.GetDepartments)
	department.Get("/:department_id", ctrl.GetDepartment)
	department.Post("/create", ctrl.CreateDepartment)
	department.Put("/update/:department_id", ctrl.UpdateDepartment)
	department.Delete("/delete/:department_id", ctrl.DeleteDepartment)
}
