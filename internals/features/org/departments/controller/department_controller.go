package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"okr_backend/internals/features/org/departments/model"
	helper "okr_backend/internals/helpers"
)

type DepartmentController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewDepartmentController(db *gorm.DB) *DepartmentController {
	return &DepartmentController{DB: db, Validate: validator.New()}
}

type createDepartmentRequest struct {
	Name       string     `json:"name" validate:"required"`
	OrganizeID uuid.UUID  `json:"organize_id" validate:"required"`
	ManagerID  *uuid.UUID `json:"manager_id,omitempty"`
}

type updateDepartmentRequest struct {
	Name      *string    `json:"name,omitempty"`
	ManagerID *uuid.UUID `json:"manager_id,omitempty"`
}

// GET /api/v1/department
func (ctrl *DepartmentController) GetDepartments(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 10, 50)

	q := ctrl.DB.Model(&model.DepartmentModel{})
	if name := c.Query("name"); name != "" {
		q = q.Where("name = ?", name)
	}
	if orgID := c.Query("organizeId"); orgID != "" {
		q = q.Where("organize_id = ?", orgID)
	}

	var departments []model.DepartmentModel
	if err := q.Offset(paging.Offset).Limit(paging.Limit).Find(&departments).Error; err != nil {
		return helper.DBError(c, err, "")
	}
	return helper.Success(c, "Get departments successfully", departments)
}

// GET /api/v1/department/:department_id
func (ctrl *DepartmentController) GetDepartment(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("department_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid department id")
	}

	var department model.DepartmentModel
	if err := ctrl.DB.First(&department, "id = ?", id).Error; err != nil {
		return helper.DBError(c, err, "Department not found")
	}
	return helper.Success(c, "Get department by id successfully", department)
}

// POST /api/v1/department/create
func (ctrl *DepartmentController) CreateDepartment(c *fiber.Ctx) error {
	var req createDepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	department := model.DepartmentModel{
		Name:       req.Name,
		OrganizeID: req.OrganizeID,
		ManagerID:  req.ManagerID,
	}
	if err := ctrl.DB.Create(&department).Error; err != nil {
		return helper.DBError(c, err, "")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Created department successfully", department)
}

// PUT /api/v1/department/update/:department_id
func (ctrl *DepartmentController) UpdateDepartment(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("department_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid department id")
	}

	var req updateDepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Name == nil && req.ManagerID == nil {
		return helper.Error(c, fiber.StatusNoContent, "Nothing to update")
	}

	var department model.DepartmentModel
	if err := ctrl.DB.First(&department, "id = ?", id).Error; err != nil {
		return helper.DBError(c, err, "Department not found")
	}

	changes := map[string]interface{}{}
	if req.Name != nil {
		changes["name"] = *req.Name
	}
	if req.ManagerID != nil {
		changes["manager_id"] = *req.ManagerID
	}
	if err := ctrl.DB.Model(&department).Updates(changes).Error; err != nil {
		return helper.DBError(c, err, "")
	}
	return helper.Success(c, "Updated department successfully", department)
}

// DELETE /api/v1/department/delete/:department_id
func (ctrl *DepartmentController) DeleteDepartment(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("department_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid department id")
	}

	res := ctrl.DB.Delete(&model.DepartmentModel{}, "id = ?", id)
	if res.Error != nil {
		return helper.DBError(c, res.Error, "")
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Department not found")
	}
	return helper.Success(c, "Deleted department successfully", nil)
}
