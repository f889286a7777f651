package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"okr_backend/internals/features/org/organizes/model"
	helper "okr_backend/internals/helpers"
)

type OrganizeController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewOrganizeController(db *gorm.DB) *OrganizeController {
	return &OrganizeController{DB: db, Validate: validator.New()}
}

type createOrganizeRequest struct {
	Name    string    `json:"name" validate:"required"`
	OwnerID uuid.UUID `json:"owner_id" validate:"required"`
	Address string    `json:"address"`
	Contact string    `json:"contact"`
}

type updateOrganizeRequest struct {
	Name    *string `json:"name,omitempty"`
	Address *string `json:"address,omitempty"`
	Contact *string `json:"contact,omitempty"`
}

// GET /api/v1/organize
func (ctrl *OrganizeController) GetOrganizes(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 10, 50)

	q := ctrl.DB.Model(&model.OrganizeModel{})
	if name := c.Query("name"); name != "" {
		q = q.Where("name = ?", name)
	}
	if ownerID := c.Query("ownerId"); ownerID != "" {
		q = q.Where("owner_id = ?", ownerID)
	}

	var organizes []model.OrganizeModel
	if err := q.Offset(paging.Offset).Limit(paging.Limit).Find(&organizes).Error; err != nil {
		return helper.DBError(c, err, "")
	}
	return helper.Success(c, "Get organizes successfully", organizes)
}

// GET /api/v1/organize/:organize_id
func (ctrl *OrganizeController) GetOrganize(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("organize_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid organize id")
	}

	var organize model.OrganizeModel
	if err := ctrl.DB.First(&organize, "id = ?", id).Error; err != nil {
		return helper.DBError(c, err, "Organize not found")
	}
	return helper.Success(c, "Get organize by id successfully", organize)
}

// POST /api/v1/organize/create
func (ctrl *OrganizeController) CreateOrganize(c *fiber.Ctx) error {
	var req createOrganizeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	organize := model.OrganizeModel{
		Name:    req.Name,
		OwnerID: req.OwnerID,
		Address: req.Address,
		Contact: req.Contact,
	}
	if err := ctrl.DB.Create(&organize).Error; err != nil {
		return helper.DBError(c, err, "")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Created organize successfully", organize)
}

// PUT /api/v1/organize/update/:organize_id
func (ctrl *OrganizeController) UpdateOrganize(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("organize_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid organize id")
	}

	var req updateOrganizeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Name == nil && req.Address == nil && req.Contact == nil {
		return helper.Error(c, fiber.StatusNoContent, "Nothing to update")
	}

	var organize model.OrganizeModel
	if err := ctrl.DB.First(&organize, "id = ?", id).Error; err != nil {
		return helper.DBError(c, err, "Organize not found")
	}

	changes := map[string]interface{}{}
	if req.Name != nil {
		changes["name"] = *req.Name
	}
	if req.Address != nil {
		changes["address"] = *req.Address
	}
	if req.Contact != nil {
		changes["contact"] = *req.Contact
	}
	if err := ctrl.DB.Model(&organize).Updates(changes).Error; err != nil {
		return helper.DBError(c, err, "")
	}
	return helper.Success(c, "Updated organize successfully", organize)
}

// DELETE /api/v1/organize/delete/:organize_id
func (ctrl *OrganizeController) DeleteOrganize(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("organize_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid organize id")
	}

	res := ctrl.DB.Delete(&model.OrganizeModel{}, "id = ?", id)
	if res.Error != nil {
		return helper.DBError(c, res.Error, "")
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Organize not found")
	}
	return helper.Success(c, "Deleted organize successfully", nil)
}
