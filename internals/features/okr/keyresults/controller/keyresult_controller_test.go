package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	notiModel "okr_backend/internals/features/collab/notifications/model"
	"okr_backend/internals/features/okr/keyresults/model"
	objModel "okr_backend/internals/features/okr/objectives/model"
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
		&objModel.ObjectiveModel{},
		&model.KeyResultModel{},
		&notiModel.NotificationModel{},
	))
	return db
}

// newGradingApp returns a fiber app with the grading route mounted behind a
// stub that injects actorID the way the JWT middleware would.
func newGradingApp(db *gorm.DB, actorID uuid.UUID) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(helper.LocUserID, actorID)
		return c.Next()
	})
	ctrl := NewKeyResultController(db)
	app.Put("/kr/grading_kr/:kr_id", ctrl.GradingKr)
	return app
}

func seedObjectiveWithKr(t *testing.T, db *gorm.DB, supervisorID uuid.UUID) (objModel.ObjectiveModel, model.KeyResultModel) {
	t.Helper()

	obj := objModel.ObjectiveModel{
		PeriodID:     uuid.New(),
		SupervisorID: supervisorID,
		Name:         "raise signups",
		ObjType:      objModel.ObjTypePercent,
		ObjFor:       objModel.ObjForUser,
		Metric:       objModel.MetricPercent,
		Target:       1,
		Expected:     100,
		Deadline:     time.Now().Add(30 * 24 * time.Hour),
	}
	require.NoError(t, db.Create(&obj).Error)

	kr := model.KeyResultModel{
		ObjectiveID: obj.ID,
		UserID:      uuid.New(),
		Name:        "ship landing page",
		Metric:      objModel.MetricPercent,
		Target:      100,
		Expected:    100,
		Progress:    80,
		Deadline:    time.Now().Add(30 * 24 * time.Hour),
	}
	require.NoError(t, db.Create(&kr).Error)
	return obj, kr
}

func gradeRequest(krID uuid.UUID, grade float64) *http.Request {
	body, _ := json.Marshal(map[string]float64{"grade": grade})
	req, _ := http.NewRequest(http.MethodPut,
		fmt.Sprintf("/kr/grading_kr/%s", krID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestGradingKrRejectsNonSupervisor(t *testing.T) {
	db := newTestDB(t)
	supervisorID := uuid.New()
	_, kr := seedObjectiveWithKr(t, db, supervisorID)

	app := newGradingApp(db, uuid.New()) // someone else

	resp, err := app.Test(gradeRequest(kr.ID, 90))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// nothing may be mutated on a refused grade
	var got model.KeyResultModel
	require.NoError(t, db.First(&got, "id = ?", kr.ID).Error)
	assert.False(t, got.Status)
	assert.Zero(t, got.SupervisorGrade)

	var obj objModel.ObjectiveModel
	require.NoError(t, db.First(&obj, "id = ?", kr.ObjectiveID).Error)
	assert.Nil(t, obj.Progress)

	var notiCount int64
	require.NoError(t, db.Model(&notiModel.NotificationModel{}).Count(&notiCount).Error)
	assert.Zero(t, notiCount)
}

func TestGradingKrBySupervisor(t *testing.T) {
	db := newTestDB(t)
	supervisorID := uuid.New()
	_, kr := seedObjectiveWithKr(t, db, supervisorID)

	app := newGradingApp(db, supervisorID)

	resp, err := app.Test(gradeRequest(kr.ID, 90))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var got model.KeyResultModel
	require.NoError(t, db.First(&got, "id = ?", kr.ID).Error)
	assert.True(t, got.Status)
	assert.InDelta(t, 90, got.SupervisorGrade, 1e-9)

	// grading triggers the rollup for the owning objective
	var obj objModel.ObjectiveModel
	require.NoError(t, db.First(&obj, "id = ?", kr.ObjectiveID).Error)
	require.NotNil(t, obj.Progress)
	assert.InDelta(t, kr.Progress, *obj.Progress, 1e-9)

	// the key result's owner is told about the grade
	var notiCount int64
	require.NoError(t, db.Model(&notiModel.NotificationModel{}).
		Where("user_id = ?", kr.UserID).
		Count(&notiCount).Error)
	assert.EqualValues(t, 1, notiCount)
}

func TestGradingKrValidatesRange(t *testing.T) {
	db := newTestDB(t)
	supervisorID := uuid.New()
	_, kr := seedObjectiveWithKr(t, db, supervisorID)

	app := newGradingApp(db, supervisorID)

	resp, err := app.Test(gradeRequest(kr.ID, 150))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var got model.KeyResultModel
	require.NoError(t, db.First(&got, "id = ?", kr.ID).Error)
	assert.False(t, got.Status)
}

func listKrs(t *testing.T, app *fiber.App, query string) []interface{} {
	t.Helper()

	req, _ := http.NewRequest(http.MethodGet, "/kr/?"+query, nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var envelope struct {
		Data []interface{} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return envelope.Data
}

func TestGetKrsLimitAndProgressFilter(t *testing.T) {
	db := newTestDB(t)
	supervisorID := uuid.New()
	obj, _ := seedObjectiveWithKr(t, db, supervisorID) // progress 80
	kr := model.KeyResultModel{
		ObjectiveID: obj.ID,
		UserID:      uuid.New(),
		Name:        "write launch post",
		Metric:      objModel.MetricPercent,
		Target:      100,
		Expected:    100,
		Progress:    40,
		Deadline:    time.Now().Add(30 * 24 * time.Hour),
	}
	require.NoError(t, db.Create(&kr).Error)

	app := fiber.New()
	ctrl := NewKeyResultController(db)
	app.Get("/kr/", ctrl.GetKrs)

	assert.Len(t, listKrs(t, app, ""), 2)

	// limit=0 is a valid empty page, not a fallback to the default
	assert.Empty(t, listKrs(t, app, "limit=0"))

	// out-of-range limits fall back to the default
	assert.Len(t, listKrs(t, app, "limit=51"), 2)

	assert.Len(t, listKrs(t, app, "progress=40"), 1)
	assert.Empty(t, listKrs(t, app, "progress=99"))
}

func TestGradingKrUnknownID(t *testing.T) {
	db := newTestDB(t)
	app := newGradingApp(db, uuid.New())

	resp, err := app.Test(gradeRequest(uuid.New(), 50))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
