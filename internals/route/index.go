package route

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	chatService "okr_backend/internals/features/collab/chat/service"

	chatRoute "okr_backend/internals/features/collab/chat/route"
	commentRoute "okr_backend/internals/features/collab/comments/route"
	notificationRoute "okr_backend/internals/features/collab/notifications/route"
	keyresultRoute "okr_backend/internals/features/okr/keyresults/route"
	objectiveRoute "okr_backend/internals/features/okr/objectives/route"
	periodRoute "okr_backend/internals/features/okr/periods/route"
	tagRoute "okr_backend/internals/features/okr/tags/route"
	departmentRoute "okr_backend/internals/features/org/departments/route"
	organizeRoute "okr_backend/internals/features/org/organizes/route"
	userRoute "okr_backend/internals/features/org/users/route"
	fileRoute "okr_backend/internals/features/storage/files/route"
	folderRoute "okr_backend/internals/features/storage/folders/route"
	"okr_backend/internals/helpers/oss"
	authMw "okr_backend/internals/middlewares/auth"
)

// SetupRoutes registers every route group under /api/v1. Auth endpoints
// manage their own middleware; everything else sits behind the JWT guard.
func SetupRoutes(app *fiber.App, db *gorm.DB, ossClient *oss.Client, chatRegistry *chatService.Registry) {
	BaseRoutes(app, db)

	api := app.Group("/api/v1")

	log.Println("[INFO] registering auth & user routes")
	userRoute.UserRoutes(api, db)

	protected := api.Group("", authMw.AuthMiddleware(db))

	log.Println("[INFO] registering organization routes")
	organizeRoute.OrganizeRoutes(protected, db)
	departmentRoute.DepartmentRoutes(protected, db)

	log.Println("[INFO] registering OKR routes")
	periodRoute.PeriodRoutes(protected, db)
	objectiveRoute.ObjectiveRoutes(protected, db)
	keyresultRoute.KeyResultRoutes(protected, db)
	tagRoute.TagRoutes(protected, db)

	log.Println("[INFO] registering collaboration routes")
	commentRoute.CommentRoutes(protected, db)
	notificationRoute.NotificationRoutes(protected, db)
	chatRoute.ChatRoutes(app, protected, db, chatRegistry)

	log.Println("[INFO] registering storage routes")
	folderRoute.FolderRoutes(protected, db, ossClient)
	fileRoute.FileRoutes(protected, db, ossClient)
}
