package controller

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"okr_backend/internals/features/org/users/model"
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

	require.NoError(t, db.AutoMigrate(&model.UserModel{}))
	return db
}

func newProfileApp(db *gorm.DB, callerID uuid.UUID) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(helper.LocUserID, callerID)
		return c.Next()
	})
	ctrl := NewUserController(db)
	app.Get("/user/check_profile", ctrl.CheckProfile)
	return app
}

func TestCheckProfileReturnsCaller(t *testing.T) {
	db := newTestDB(t)
	me := model.UserModel{
		UserName: "casey",
		Email:    "casey@example.com",
		Password: "irrelevant-hash",
	}
	require.NoError(t, db.Create(&me).Error)
	other := model.UserModel{
		UserName: "riley",
		Email:    "riley@example.com",
		Password: "irrelevant-hash",
	}
	require.NoError(t, db.Create(&other).Error)

	app := newProfileApp(db, me.ID)
	req, _ := http.NewRequest(http.MethodGet, "/user/check_profile", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var envelope struct {
		Data struct {
			ID       uuid.UUID `json:"id"`
			UserName string    `json:"user_name"`
			Email    string    `json:"email"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Equal(t, me.ID, envelope.Data.ID)
	assert.Equal(t, "casey", envelope.Data.UserName)
}

func TestCheckProfileUnknownUser(t *testing.T) {
	db := newTestDB(t)

	app := newProfileApp(db, uuid.New())
	req, _ := http.NewRequest(http.MethodGet, "/user/check_profile", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
