package database

import (
	"log"

	"gorm.io/gorm"

	commentModel "okr_backend/internals/features/collab/comments/model"
	notiModel "okr_backend/internals/features/collab/notifications/model"
	krModel "okr_backend/internals/features/okr/keyresults/model"
	objModel "okr_backend/internals/features/okr/objectives/model"
	periodModel "okr_backend/internals/features/okr/periods/model"
	tagModel "okr_backend/internals/features/okr/tags/model"
	deptModel "okr_backend/internals/features/org/departments/model"
	orgModel "okr_backend/internals/features/org/organizes/model"
	userModel "okr_backend/internals/features/org/users/model"
	fileModel "okr_backend/internals/features/storage/files/model"
)

// Migrate applies the schema for every model. Called at startup when
// DB_AUTO_MIGRATE is set; tests run it against their own connection.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&orgModel.OrganizeModel{},
		&deptModel.DepartmentModel{},
		&userModel.UserModel{},
		&userModel.TokenBlacklist{},
		&periodModel.PeriodModel{},
		&objModel.ObjectiveModel{},
		&objModel.ObjectiveOnUser{},
		&objModel.ObjectiveOnDepartment{},
		&objModel.ObjectiveOnOrganize{},
		&krModel.KeyResultModel{},
		&tagModel.TagModel{},
		&commentModel.CommentModel{},
		&notiModel.NotificationModel{},
		&fileModel.FolderModel{},
		&fileModel.FileModel{},
		&fileModel.FileSharedModel{},
		&fileModel.FileOnUser{},
		&fileModel.FileVersionModel{},
		&fileModel.FileOnTag{},
	)
}

// MigrateIfRequested runs Migrate when DB_AUTO_MIGRATE=true.
func MigrateIfRequested() {
	if getenv("DB_AUTO_MIGRATE", "false") != "true" {
		return
	}
	log.Println("🔄 Running auto-migration...")
	if err := Migrate(DB); err != nil {
		log.Fatalf("❌ migration failed: %v", err)
	}
	log.Println("✅ Migration complete.")
}
