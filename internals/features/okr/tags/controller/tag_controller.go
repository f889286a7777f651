package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"okr_backend/internals/features/okr/tags/model"
	fileModel "okr_backend/internals/features/storage/files/model"
	helper "okr_backend/internals/helpers"
)

type TagController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewTagController(db *gorm.DB) *TagController {
	return &TagController{DB: db, Validate: validator.New()}
}

type tagRequest struct {
	Name string `json:"name" validate:"required"`
}

type addTagToFileRequest struct {
	FileID uuid.UUID `json:"file_id" validate:"required"`
	TagID  uuid.UUID `json:"tag_id" validate:"required"`
}

// GET /api/v1/tag
func (ctrl *TagController) GetTags(c *fiber.Ctx) error {
	var tags []model.TagModel
	query := ctrl.DB.Model(&model.TagModel{})
	if name := c.Query("name"); name != "" {
		query = query.Where("name ILIKE ?", "%"+name+"%")
	}
	if err := query.Order("name ASC").Find(&tags).Error; err != nil {
		return helper.DBError(c, err, "")
	}
	return helper.Success(c, "Get all tags successfully", tags)
}

// GET /api/v1/tag/:tag_id
func (ctrl *TagController) GetTag(c *fiber.Ctx) error {
	tagID, err := uuid.Parse(c.Params("tag_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid tag id")
	}
	var tag model.TagModel
	if err := ctrl.DB.First(&tag, "id = ?", tagID).Error; err != nil {
		return helper.DBError(c, err, "Tag not found")
	}
	return helper.Success(c, "Get tag successfully", tag)
}

// POST /api/v1/tag/create
func (ctrl *TagController) CreateTag(c *fiber.Ctx) error {
	var req tagRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	tag := model.TagModel{Name: req.Name}
	if err := ctrl.DB.Create(&tag).Error; err != nil {
		return helper.DBError(c, err, "")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Created tag successfully", tag)
}

// PUT /api/v1/tag/update/:tag_id
func (ctrl *TagController) UpdateTag(c *fiber.Ctx) error {
	tagID, err := uuid.Parse(c.Params("tag_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid tag id")
	}
	var req tagRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var tag model.TagModel
	if err := ctrl.DB.First(&tag, "id = ?", tagID).Error; err != nil {
		return helper.DBError(c, err, "Tag not found")
	}
	if err := ctrl.DB.Model(&tag).Update("name", req.Name).Error; err != nil {
		return helper.DBError(c, err, "")
	}
	return helper.Success(c, "Updated tag successfully", tag)
}

// DELETE /api/v1/tag/delete/:tag_id
func (ctrl *TagController) DeleteTag(c *fiber.Ctx) error {
	tagID, err := uuid.Parse(c.Params("tag_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid tag id")
	}

	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", tagID).Delete(&fileModel.FileOnTag{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.TagModel{}, "id = ?", tagID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return helper.DBError(c, err, "Tag not found")
	}
	return helper.Success(c, "Deleted tag successfully", nil)
}

// POST /api/v1/tag/add_to_file
func (ctrl *TagController) AddTagToFile(c *fiber.Ctx) error {
	var req addTagToFileRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var tag model.TagModel
	if err := ctrl.DB.First(&tag, "id = ?", req.TagID).Error; err != nil {
		return helper.DBError(c, err, "Tag not found")
	}
	var file fileModel.FileModel
	if err := ctrl.DB.First(&file, "id = ?", req.FileID).Error; err != nil {
		return helper.DBError(c, err, "File not found")
	}

	link := fileModel.FileOnTag{FileID: req.FileID, TagID: req.TagID}
	if err := ctrl.DB.Create(&link).Error; err != nil {
		return helper.DBError(c, err, "")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Tag added to file successfully", link)
}
