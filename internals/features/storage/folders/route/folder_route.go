package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"okr_backend/internals/features/storage/folders/controller"
	"okr_backend/internals/helpers/oss"
)

func FolderRoutes(api fiber.Router, db *gorm.DB, ossClient *oss.Client) {
	folderCtrl := controller.NewFolderController(db, ossClient)

	folder := api.Group("/folder")
	folder.Post("/create_folder", folderCtrl.CreateFolder)
	folder.Put("/update/:folder_id", folderCtrl.UpdateFolder)
	folder.Delete("/delete_folder/:folder_id", folderCtrl.DeleteFolder)
	folder.Get("/", folderCtrl.GetFolders)
}
