package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"okr_backend/internals/features/storage/files/controller"
	"okr_backend/internals/helpers/oss"
)

func FileRoutes(api fiber.Router, db *gorm.DB, ossClient *oss.Client) {
	fileCtrl := controller.NewFileController(db, ossClient)

	file := api.Group("/file")
	file.Post("/create_file", fileCtrl.CreateFile)
	file.Put("/move_file/:file_id", fileCtrl.MoveFile)
	file.Put("/collaborators", fileCtrl.SetCollaborators)
	file.Put("/restore/:file_id/:version_number", fileCtrl.RestoreFile)
	file.Delete("/delete_file/:file_id", fileCtrl.DeleteFile)
	file.Get("/", fileCtrl.GetFiles)
	file.Get("/shared", fileCtrl.GetSharedFiles)
	file.Get("/:file_id", fileCtrl.GetFile)
}
