package controller

import (
	"bytes"
	"fmt"
	"io"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	userModel "okr_backend/internals/features/org/users/model"
	"okr_backend/internals/features/storage/files/model"
	helper "okr_backend/internals/helpers"
	"okr_backend/internals/helpers/oss"
)

type FileController struct {
	DB       *gorm.DB
	Validate *validator.Validate
	OSS      *oss.Client
}

func NewFileController(db *gorm.DB, ossClient *oss.Client) *FileController {
	return &FileController{DB: db, Validate: validator.New(), OSS: ossClient}
}

type moveFileRequest struct {
	FolderID *uuid.UUID `json:"folder_id,omitempty"`
}

type setCollaboratorsRequest struct {
	FileID  uuid.UUID   `json:"file_id" validate:"required"`
	UserIDs []uuid.UUID `json:"user_ids" validate:"required"`
}

// GET /api/v1/file
func (ctrl *FileController) GetFiles(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var files []model.FileModel
	query := ctrl.DB.Where("owner_id = ?", userID)
	if folder := c.Query("folder_id"); folder != "" {
		folderID, err := uuid.Parse(folder)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "Invalid folder id")
		}
		query = query.Where("folder_id = ?", folderID)
	}
	if name := c.Query("name"); name != "" {
		query = query.Where("fullname ILIKE ?", "%"+name+"%")
	}

	paging := helper.ResolvePaging(c, 10, 50)
	if err := query.
		Order("created_at DESC").
		Offset(paging.Offset).
		Limit(paging.Limit).
		Find(&files).Error; err != nil {
		return helper.DBError(c, err, "")
	}
	return helper.Success(c, "Get all files successfully", files)
}

// GET /api/v1/file/:file_id
func (ctrl *FileController) GetFile(c *fiber.Ctx) error {
	fileID, err := uuid.Parse(c.Params("file_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid file id")
	}

	var file model.FileModel
	if err := ctrl.DB.First(&file, "id = ?", fileID).Error; err != nil {
		return helper.DBError(c, err, "File not found")
	}

	data := fiber.Map{"file": file}
	if ctrl.OSS != nil {
		data["url"] = ctrl.OSS.PublicURL(file.VirtualPath)
	}
	return helper.Success(c, "Get file successfully", data)
}

// POST /api/v1/file/create_file
// Multipart upload. Images are recoded to webp before they hit storage; any
// other content type passes through untouched.
func (ctrl *FileController) CreateFile(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	if ctrl.OSS == nil {
		return helper.Error(c, fiber.StatusServiceUnavailable, "Object storage is not configured")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Missing file field")
	}

	var folderID *uuid.UUID
	prefix := userID.String()
	if folder := c.FormValue("folder_id"); folder != "" {
		parsed, err := uuid.Parse(folder)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "Invalid folder id")
		}
		var folderRow model.FolderModel
		if err := ctrl.DB.
			Where("id = ? AND owner_id = ?", parsed, userID).
			First(&folderRow).Error; err != nil {
			return helper.DBError(c, err, "Folder not found")
		}
		folderID = &parsed
		prefix = folderRow.VirtualPath
	}

	src, err := fileHeader.Open()
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Unreadable upload")
	}
	defer src.Close()
	raw, err := io.ReadAll(src)
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Unreadable upload")
	}

	name := fileHeader.Filename
	contentType := fileHeader.Header.Get("Content-Type")
	if oss.IsImagePath(name) {
		converted, convErr := oss.ConvertToWebP(raw)
		if convErr != nil {
			log.Printf("[WARN] webp recode of %s failed, storing original: %v", name, convErr)
		} else {
			raw = converted
			name = oss.WebPName(name)
			contentType = "image/webp"
		}
	}

	key := oss.JoinPath(prefix, name)
	if err := ctrl.OSS.CreateFile(c.Context(), key, bytes.NewReader(raw), int64(len(raw)), contentType); err != nil {
		return helper.Error(c, fiber.StatusBadGateway, "Failed to store file")
	}

	file := model.FileModel{
		Fullname:    name,
		VirtualPath: key,
		FolderID:    folderID,
		OwnerID:     userID,
		Size:        int64(len(raw)),
	}
	if err := ctrl.DB.Create(&file).Error; err != nil {
		if delErr := ctrl.OSS.DeleteFile(c.Context(), key); delErr != nil {
			log.Printf("[WARN] orphaned object %s after failed insert: %v", key, delErr)
		}
		return helper.DBError(c, err, "")
	}

	// version backups for this file live under its id prefix
	if err := ctrl.OSS.CreateFolder(c.Context(), file.ID.String()); err != nil {
		log.Printf("[WARN] version prefix for %s not created: %v", file.ID, err)
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Created file successfully", fiber.Map{
		"file": file,
		"url":  ctrl.OSS.PublicURL(key),
	})
}

// GET /api/v1/file/shared
// Lists files other owners shared with the authenticated user.
func (ctrl *FileController) GetSharedFiles(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	query := ctrl.DB.Model(&model.FileModel{}).
		Joins("JOIN file_on_users ON file_on_users.file_id = files.id").
		Where("file_on_users.user_id = ?", userID)
	if name := c.Query("name"); name != "" {
		q := "%" + name + "%"
		query = query.Where("files.fullname LIKE ?", q)
	}

	paging := helper.ResolvePaging(c, 10, 50)

	var files []model.FileModel
	if err := query.
		Order("files.created_at DESC").
		Offset(paging.Offset).
		Limit(paging.Limit).
		Find(&files).Error; err != nil {
		return helper.DBError(c, err, "")
	}
	return helper.Success(c, "Get all shared to me files successfully", files)
}

// PUT /api/v1/file/collaborators
// Replaces the file's collaborator set. Owner only; every listed user must
// exist.
func (ctrl *FileController) SetCollaborators(c *fiber.Ctx) error {
	var req setCollaboratorsRequest
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

	var file model.FileModel
	if err := ctrl.DB.
		Where("id = ? AND owner_id = ?", req.FileID, userID).
		First(&file).Error; err != nil {
		return helper.DBError(c, err, "File not found")
	}

	for _, collaboratorID := range req.UserIDs {
		var u userModel.UserModel
		if err := ctrl.DB.First(&u, "id = ?", collaboratorID).Error; err != nil {
			return helper.DBError(c, err, "User not found")
		}
	}

	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("file_id = ?", file.ID).Delete(&model.FileOnUser{}).Error; err != nil {
			return err
		}
		for _, collaboratorID := range req.UserIDs {
			link := model.FileOnUser{FileID: file.ID, UserID: collaboratorID}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return helper.DBError(c, err, "")
	}
	return helper.Success(c, "Set collaborators to file successfully", nil)
}

// PUT /api/v1/file/restore/:file_id/:version_number
// Backs up the live object as a new version, then moves the requested
// version into the live slot.
func (ctrl *FileController) RestoreFile(c *fiber.Ctx) error {
	fileID, err := uuid.Parse(c.Params("file_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid file id")
	}
	versionNumber, err := c.ParamsInt("version_number")
	if err != nil || versionNumber < 1 {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid version number")
	}
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	if ctrl.OSS == nil {
		return helper.Error(c, fiber.StatusServiceUnavailable, "Object storage is not configured")
	}

	var file model.FileModel
	if err := ctrl.DB.
		Where("id = ? AND owner_id = ?", fileID, userID).
		First(&file).Error; err != nil {
		return helper.DBError(c, err, "File not found")
	}

	var target model.FileVersionModel
	if err := ctrl.DB.
		Where("file_id = ? AND version_number = ?", file.ID, versionNumber).
		First(&target).Error; err != nil {
		return helper.DBError(c, err, "Version not found")
	}

	var maxVersion int64
	if err := ctrl.DB.Model(&model.FileVersionModel{}).
		Where("file_id = ?", file.ID).
		Select("COALESCE(MAX(version_number), 0)").
		Scan(&maxVersion).Error; err != nil {
		return helper.DBError(c, err, "")
	}

	backup := model.FileVersionModel{FileID: file.ID, VersionNumber: maxVersion + 1}
	if err := ctrl.DB.Create(&backup).Error; err != nil {
		return helper.DBError(c, err, "")
	}

	backupKey := oss.JoinPath(file.ID.String(), fmt.Sprintf("%d", backup.VersionNumber))
	targetKey := oss.JoinPath(file.ID.String(), fmt.Sprintf("%d", target.VersionNumber))

	if err := ctrl.OSS.MoveFile(c.Context(), file.VirtualPath, backupKey); err != nil {
		return helper.Error(c, fiber.StatusBadGateway, "Failed to back up current file")
	}
	if err := ctrl.OSS.MoveFile(c.Context(), targetKey, file.VirtualPath); err != nil {
		return helper.Error(c, fiber.StatusBadGateway, "Failed to restore file")
	}
	return helper.Success(c, "Restored file successfully", nil)
}

// PUT /api/v1/file/move_file/:file_id
func (ctrl *FileController) MoveFile(c *fiber.Ctx) error {
	fileID, err := uuid.Parse(c.Params("file_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid file id")
	}
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	if ctrl.OSS == nil {
		return helper.Error(c, fiber.StatusServiceUnavailable, "Object storage is not configured")
	}

	var req moveFileRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}

	var file model.FileModel
	if err := ctrl.DB.
		Where("id = ? AND owner_id = ?", fileID, userID).
		First(&file).Error; err != nil {
		return helper.DBError(c, err, "File not found")
	}

	prefix := userID.String()
	if req.FolderID != nil {
		var folderRow model.FolderModel
		if err := ctrl.DB.
			Where("id = ? AND owner_id = ?", *req.FolderID, userID).
			First(&folderRow).Error; err != nil {
			return helper.DBError(c, err, "Folder not found")
		}
		prefix = folderRow.VirtualPath
	}

	dstKey := oss.JoinPath(prefix, file.Fullname)
	if dstKey == file.VirtualPath {
		return helper.Success(c, "File is already in that folder", file)
	}

	if err := ctrl.OSS.MoveFile(c.Context(), file.VirtualPath, dstKey); err != nil {
		return helper.Error(c, fiber.StatusBadGateway, "Failed to move file")
	}
	if err := ctrl.DB.Model(&file).Updates(map[string]interface{}{
		"folder_id":    req.FolderID,
		"virtual_path": dstKey,
	}).Error; err != nil {
		return helper.DBError(c, err, "")
	}
	return helper.Success(c, "Moved file successfully", file)
}

// DELETE /api/v1/file/delete_file/:file_id
func (ctrl *FileController) DeleteFile(c *fiber.Ctx) error {
	fileID, err := uuid.Parse(c.Params("file_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid file id")
	}
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var file model.FileModel
	if err := ctrl.DB.
		Where("id = ? AND owner_id = ?", fileID, userID).
		First(&file).Error; err != nil {
		return helper.DBError(c, err, "File not found")
	}

	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("file_id = ?", file.ID).Delete(&model.FileOnTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("file_id = ?", file.ID).Delete(&model.FileOnUser{}).Error; err != nil {
			return err
		}
		if err := tx.Where("file_id = ?", file.ID).Delete(&model.FileVersionModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&file).Error
	})
	if err != nil {
		return helper.DBError(c, err, "")
	}

	if ctrl.OSS != nil {
		if err := ctrl.OSS.DeleteFile(c.Context(), file.VirtualPath); err != nil {
			log.Printf("[WARN] object %s left behind after delete: %v", file.VirtualPath, err)
		}
	}
	return helper.Success(c, "Deleted file successfully", nil)
}
