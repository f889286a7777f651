package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	userModel "okr_backend/internals/features/org/users/model"
	"okr_backend/internals/features/storage/files/model"
	helper "okr_backend/internals/helpers"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&userModel.UserModel{},
		&model.FolderModel{},
		&model.FileModel{},
		&model.FileOnUser{},
		&model.FileVersionModel{},
		&model.FileOnTag{},
	))
	return db
}

// newFileApp mounts the sharing routes behind a stub that injects the
// caller id the way the JWT middleware would.
func newFileApp(db *gorm.DB, callerID uuid.UUID) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(helper.LocUserID, callerID)
		return c.Next()
	})
	ctrl := NewFileController(db, nil)
	app.Put("/file/collaborators", ctrl.SetCollaborators)
	app.Put("/file/restore/:file_id/:version_number", ctrl.RestoreFile)
	app.Get("/file/shared", ctrl.GetSharedFiles)
	return app
}

func seedUser(t *testing.T, db *gorm.DB, name string) userModel.UserModel {
	t.Helper()

	u := userModel.UserModel{
		UserName: name,
		Email:    name + "@example.com",
		Password: "irrelevant-hash",
	}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func seedFile(t *testing.T, db *gorm.DB, ownerID uuid.UUID, name string) model.FileModel {
	t.Helper()

	f := model.FileModel{
		Fullname:    name,
		VirtualPath: ownerID.String() + "/" + name,
		OwnerID:     ownerID,
		Size:        42,
	}
	require.NoError(t, db.Create(&f).Error)
	return f
}

func setCollaborators(t *testing.T, app *fiber.App, fileID uuid.UUID, userIDs []uuid.UUID) *http.Response {
	t.Helper()

	body, _ := json.Marshal(map[string]interface{}{
		"file_id":  fileID,
		"user_ids": userIDs,
	})
	req, _ := http.NewRequest(http.MethodPut, "/file/collaborators", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func listShared(t *testing.T, app *fiber.App, query string) []model.FileModel {
	t.Helper()

	req, _ := http.NewRequest(http.MethodGet, "/file/shared?"+query, nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var envelope struct {
		Data []model.FileModel `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return envelope.Data
}

func TestSetCollaboratorsAndSharedListing(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner")
	collaborator := seedUser(t, db, "collab")
	file := seedFile(t, db, owner.ID, "roadmap.pdf")
	seedFile(t, db, owner.ID, "private.pdf") // never shared

	ownerApp := newFileApp(db, owner.ID)
	resp := setCollaborators(t, ownerApp, file.ID, []uuid.UUID{collaborator.ID})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	collabApp := newFileApp(db, collaborator.ID)
	shared := listShared(t, collabApp, "")
	require.Len(t, shared, 1)
	assert.Equal(t, file.ID, shared[0].ID)

	assert.Len(t, listShared(t, collabApp, "name=roadmap"), 1)
	assert.Empty(t, listShared(t, collabApp, "name=budget"))

	// owners do not see their own files in the shared listing
	assert.Empty(t, listShared(t, ownerApp, ""))
}

func TestSetCollaboratorsReplacesPreviousSet(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner")
	first := seedUser(t, db, "first")
	second := seedUser(t, db, "second")
	file := seedFile(t, db, owner.ID, "notes.md")

	app := newFileApp(db, owner.ID)
	require.Equal(t, fiber.StatusOK,
		setCollaborators(t, app, file.ID, []uuid.UUID{first.ID}).StatusCode)
	require.Equal(t, fiber.StatusOK,
		setCollaborators(t, app, file.ID, []uuid.UUID{second.ID}).StatusCode)

	assert.Empty(t, listShared(t, newFileApp(db, first.ID), ""))
	assert.Len(t, listShared(t, newFileApp(db, second.ID), ""), 1)
}

func TestSetCollaboratorsRejectsNonOwnerAndUnknownUser(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner")
	collaborator := seedUser(t, db, "collab")
	file := seedFile(t, db, owner.ID, "notes.md")

	// someone who does not own the file cannot share it
	resp := setCollaborators(t, newFileApp(db, collaborator.ID), file.ID, []uuid.UUID{collaborator.ID})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	// every listed collaborator must be a real user
	resp = setCollaborators(t, newFileApp(db, owner.ID), file.ID, []uuid.UUID{uuid.New()})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&model.FileOnUser{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRestoreFileWithoutStorage(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner")
	file := seedFile(t, db, owner.ID, "report.docx")

	app := newFileApp(db, owner.ID)
	req, _ := http.NewRequest(http.MethodPut,
		fmt.Sprintf("/file/restore/%s/1", file.ID), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestRestoreFileRejectsBadVersion(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner")
	file := seedFile(t, db, owner.ID, "report.docx")

	app := newFileApp(db, owner.ID)
	req, _ := http.NewRequest(http.MethodPut,
		fmt.Sprintf("/file/restore/%s/0", file.ID), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
