package controller

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"okr_backend/internals/features/okr/periods/model"
	helper "okr_backend/internals/helpers"
)

type PeriodController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewPeriodController(db *gorm.DB) *PeriodController {
	return &PeriodController{DB: db, Validate: validator.New()}
}

// Dates travel as unix seconds, like the rest of the API.
type createPeriodRequest struct {
	Name       string    `json:"name" validate:"required"`
	OrganizeID uuid.UUID `json:"organize_id" validate:"required"`
	StartDate  int64     `json:"start_date" validate:"required"`
	EndDate    int64     `json:"end_date" validate:"required,gtfield=StartDate"`
}

// GET /api/v1/period
func (ctrl *PeriodController) GetPeriods(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 10, 50)

	q := ctrl.DB.Model(&model.PeriodModel{})
	if name := c.Query("name"); name != "" {
		q = q.Where("name = ?", name)
	}
	if orgID := c.Query("organizeId"); orgID != "" {
		q = q.Where("organize_id = ?", orgID)
	}

	var periods []model.PeriodModel
	if err := q.Offset(paging.Offset).Limit(paging.Limit).Find(&periods).Error; err != nil {
		return helper.DBError(c, err, "")
	}
	return helper.Success(c, "Get periods successfully", periods)
}

// GET /api/v1/period/:period_id
func (ctrl *PeriodController) GetPeriod(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("period_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid period id")
	}

	var period model.PeriodModel
	if err := ctrl.DB.First(&period, "id = ?", id).Error; err != nil {
		return helper.DBError(c, err, "Period not found")
	}
	return helper.Success(c, "Get period by id successfully", period)
}

// POST /api/v1/period/create
func (ctrl *PeriodController) CreatePeriod(c *fiber.Ctx) error {
	var req createPeriodRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	period := model.PeriodModel{
		Name:       req.Name,
		OrganizeID: req.OrganizeID,
		StartDate:  time.Unix(req.StartDate, 0),
		EndDate:    time.Unix(req.EndDate, 0),
	}
	if err := ctrl.DB.Create(&period).Error; err != nil {
		return helper.DBError(c, err, "")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Created period successfully", period)
}

type updatePeriodRequest struct {
	Name      *string `json:"name,omitempty"`
	StartDate *int64  `json:"start_date,omitempty"`
	EndDate   *int64  `json:"end_date,omitempty"`
}

func (r updatePeriodRequest) IsEmpty() bool {
	return r.Name == nil && r.StartDate == nil && r.EndDate == nil
}

// PUT /api/v1/period/update/:period_id
func (ctrl *PeriodController) UpdatePeriod(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("period_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid period id")
	}

	var req updatePeriodRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.IsEmpty() {
		return c.SendStatus(fiber.StatusNoContent)
	}

	var period model.PeriodModel
	if err := ctrl.DB.First(&period, "id = ?", id).Error; err != nil {
		return helper.DBError(c, err, "Period not found")
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.StartDate != nil {
		updates["start_date"] = time.Unix(*req.StartDate, 0)
	}
	if req.EndDate != nil {
		updates["end_date"] = time.Unix(*req.EndDate, 0)
	}
	if err := ctrl.DB.Model(&period).Updates(updates).Error; err != nil {
		return helper.DBError(c, err, "")
	}
	return helper.Success(c, "Updated period successfully", period)
}

// DELETE /api/v1/period/delete/:period_id
func (ctrl *PeriodController) DeletePeriod(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("period_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid period id")
	}

	res := ctrl.DB.Delete(&model.PeriodModel{}, "id = ?", id)
	if res.Error != nil {
		return helper.DBError(c, res.Error, "")
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Period not found")
	}
	return helper.Success(c, "Deleted period successfully", nil)
}
