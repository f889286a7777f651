package controller

import (
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
	krModel "okr_backend/internals/features/okr/keyresults/model"
	"okr_backend/internals/features/okr/objectives/model"
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
		&model.ObjectiveModel{},
		&model.ObjectiveOnUser{},
		&model.ObjectiveOnDepartment{},
		&model.ObjectiveOnOrganize{},
		&krModel.KeyResultModel{},
		&notiModel.NotificationModel{},
	))
	return db
}

func newCheckStateApp(db *gorm.DB) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(helper.LocUserID, uuid.New())
		return c.Next()
	})
	ctrl := NewObjectiveController(db)
	app.Get("/objective/check_state/:obj_id", ctrl.CheckStateObj)
	return app
}

func seedObjective(t *testing.T, db *gorm.DB, deadline time.Time, progress *float64) model.ObjectiveModel {
	t.Helper()

	obj := model.ObjectiveModel{
		PeriodID:     uuid.New(),
		SupervisorID: uuid.New(),
		Name:         "grow revenue",
		ObjType:      model.ObjTypePercent,
		ObjFor:       model.ObjForUser,
		Metric:       model.MetricPercent,
		Target:       1,
		Expected:     100,
		Progress:     progress,
		Deadline:     deadline,
	}
	require.NoError(t, db.Create(&obj).Error)
	return obj
}

func seedKr(t *testing.T, db *gorm.DB, objectiveID uuid.UUID, graded bool) {
	t.Helper()

	kr := krModel.KeyResultModel{
		ObjectiveID: objectiveID,
		UserID:      uuid.New(),
		Name:        "kr",
		Metric:      model.MetricPercent,
		Target:      100,
		Expected:    100,
		Status:      graded,
		Deadline:    time.Now().Add(24 * time.Hour),
	}
	require.NoError(t, db.Create(&kr).Error)
}

func checkState(t *testing.T, app *fiber.App, objID uuid.UUID) *http.Response {
	t.Helper()

	req, _ := http.NewRequest(http.MethodGet,
		fmt.Sprintf("/objective/check_state/%s", objID), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func reload(t *testing.T, db *gorm.DB, id uuid.UUID) model.ObjectiveModel {
	t.Helper()

	var obj model.ObjectiveModel
	require.NoError(t, db.First(&obj, "id = ?", id).Error)
	return obj
}

func TestCheckStateStaysOpenWhileUngraded(t *testing.T) {
	db := newTestDB(t)
	app := newCheckStateApp(db)

	obj := seedObjective(t, db, time.Now().Add(24*time.Hour), nil)
	seedKr(t, db, obj.ID, false)

	resp := checkState(t, app, obj.ID)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	got := reload(t, db, obj.ID)
	assert.False(t, got.Status)
	assert.Nil(t, got.Achievement)
}

func TestCheckStateClosesWhenAllGraded(t *testing.T) {
	db := newTestDB(t)
	app := newCheckStateApp(db)

	progress := 100.0
	obj := seedObjective(t, db, time.Now().Add(24*time.Hour), &progress)
	seedKr(t, db, obj.ID, true)
	seedKr(t, db, obj.ID, true)

	checkState(t, app, obj.ID)

	got := reload(t, db, obj.ID)
	assert.True(t, got.Status)
	require.NotNil(t, got.Achievement)
	assert.Equal(t, model.AchievementAchieved, *got.Achievement)
}

func TestCheckStateClosesAfterDeadline(t *testing.T) {
	db := newTestDB(t)
	app := newCheckStateApp(db)

	progress := 40.0
	obj := seedObjective(t, db, time.Now().Add(-time.Hour), &progress)
	seedKr(t, db, obj.ID, false) // ungraded, but the deadline has passed

	checkState(t, app, obj.ID)

	got := reload(t, db, obj.ID)
	assert.True(t, got.Status)
	require.NotNil(t, got.Achievement)
	assert.Equal(t, model.AchievementNon, *got.Achievement)
}

func TestCheckStateExceedAbove100(t *testing.T) {
	db := newTestDB(t)
	app := newCheckStateApp(db)

	progress := 120.0
	obj := seedObjective(t, db, time.Now().Add(-time.Hour), &progress)

	checkState(t, app, obj.ID)

	got := reload(t, db, obj.ID)
	require.NotNil(t, got.Achievement)
	assert.Equal(t, model.AchievementExceed, *got.Achievement)
}

func TestCheckStateUnknownObjective(t *testing.T) {
	db := newTestDB(t)
	app := newCheckStateApp(db)

	resp := checkState(t, app, uuid.New())
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
