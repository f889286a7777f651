package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	fileModel "okr_backend/internals/features/storage/files/model"
	helper "okr_backend/internals/helpers"
	"okr_backend/internals/helpers/oss"
)

type FolderController struct {
	DB       *gorm.DB
	Validate *validator.Validate
	OSS      *oss.Client
}

func NewFolderController(db *gorm.DB, ossClient *oss.Client) *FolderController {
	return &FolderController{DB: db, Validate: validator.New(), OSS: ossClient}
}

type createFolderRequest struct {
	Name           string     `json:"name" validate:"required"`
	ParentFolderID *uuid.UUID `json:"parent_folder_id,omitempty"`
}

type updateFolderRequest struct {
	Name           *string    `json:"name,omitempty"`
	ParentFolderID *uuid.UUID `json:"parent_folder_id,omitempty"`
}

func (r updateFolderRequest) IsEmpty() bool {
	return r.Name == nil && r.ParentFolderID == nil
}

// GET /api/v1/folder
func (ctrl *FolderController) GetFolders(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var folders []fileModel.FolderModel
	query := ctrl.DB.Where("owner_id = ?", userID)
	if parent := c.Query("parent_folder_id"); parent != "" {
		parentID, err := uuid.Parse(parent)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "Invalid parent folder id")
		}
		query = query.Where("parent_folder_id = ?", parentID)
	}
	if err := query.Order("name ASC").Find(&folders).Error; err != nil {
		return helper.DBError(c, err, "")
	}
	return helper.Success(c, "Get all folders successfully", folders)
}

// POST /api/v1/folder/create_folder
func (ctrl *FolderController) CreateFolder(c *fiber.Ctx) error {
	var req createFolderRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	virtualPath := oss.JoinPath(userID.String(), req.Name)
	if req.ParentFolderID != nil {
		var parent fileModel.FolderModel
		if err := ctrl.DB.
			Where("id = ? AND owner_id = ?", *req.ParentFolderID, userID).
			First(&parent).Error; err != nil {
			return helper.DBError(c, err, "Parent folder not found")
		}
		virtualPath = oss.JoinPath(parent.VirtualPath, req.Name)
	}

	folder := fileModel.FolderModel{
		Name:           req.Name,
		ParentFolderID: req.ParentFolderID,
		OwnerID:        userID,
		VirtualPath:    virtualPath,
	}
	if err := ctrl.DB.Create(&folder).Error; err != nil {
		return helper.DBError(c, err, "")
	}

	if ctrl.OSS != nil {
		if err := ctrl.OSS.CreateFolder(c.Context(), virtualPath); err != nil {
			ctrl.DB.Delete(&folder)
			return helper.Error(c, fiber.StatusBadGateway, "Failed to create folder in object storage")
		}
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Created folder successfully", folder)
}

// PUT /api/v1/folder/update/:folder_id
// Rename or re-parent. The storage prefix is immutable — objects stay where
// they are; only the display name and the tree position change.
func (ctrl *FolderController) UpdateFolder(c *fiber.Ctx) error {
	folderID, err := uuid.Parse(c.Params("folder_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid folder id")
	}

	var req updateFolderRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.IsEmpty() {
		return c.SendStatus(fiber.StatusNoContent)
	}

	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var folder fileModel.FolderModel
	if err := ctrl.DB.
		Where("id = ? AND owner_id = ?", folderID, userID).
		First(&folder).Error; err != nil {
		return helper.DBError(c, err, "Folder not found")
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.ParentFolderID != nil {
		if *req.ParentFolderID == folder.ID {
			return helper.Error(c, fiber.StatusBadRequest, "A folder cannot be its own parent")
		}
		var parent fileModel.FolderModel
		if err := ctrl.DB.
			Where("id = ? AND owner_id = ?", *req.ParentFolderID, userID).
			First(&parent).Error; err != nil {
			return helper.DBError(c, err, "Parent folder not found")
		}
		updates["parent_folder_id"] = *req.ParentFolderID
	}

	if err := ctrl.DB.Model(&folder).Updates(updates).Error; err != nil {
		return helper.DBError(c, err, "")
	}
	return helper.Success(c, "Updated folder successfully", folder)
}

// DELETE /api/v1/folder/delete_folder/:folder_id
// Removes the folder row, its file rows, and every stored object under the
// folder's prefix.
func (ctrl *FolderController) DeleteFolder(c *fiber.Ctx) error {
	folderID, err := uuid.Parse(c.Params("folder_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid folder id")
	}
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var folder fileModel.FolderModel
	if err := ctrl.DB.
		Where("id = ? AND owner_id = ?", folderID, userID).
		First(&folder).Error; err != nil {
		return helper.DBError(c, err, "Folder not found")
	}

	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("folder_id = ?", folder.ID).Delete(&fileModel.FileModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&folder).Error
	})
	if err != nil {
		return helper.DBError(c, err, "")
	}

	if ctrl.OSS != nil {
		if err := ctrl.OSS.DeleteFolder(c.Context(), folder.VirtualPath); err != nil {
			// rows are gone; report the storage leftover instead of failing
			return helper.Success(c, "Deleted folder; some stored objects could not be removed", nil)
		}
	}
	return helper.Success(c, "Deleted folder successfully", nil)
}
