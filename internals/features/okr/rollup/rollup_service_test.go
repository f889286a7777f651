package rollup

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	notiModel "okr_backend/internals/features/collab/notifications/model"
	krModel "okr_backend/internals/features/okr/keyresults/model"
	objModel "okr_backend/internals/features/okr/objectives/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a fresh connection would be a fresh in-memory database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&objModel.ObjectiveModel{},
		&krModel.KeyResultModel{},
		&notiModel.NotificationModel{},
	))
	return db
}

func makeObjective(t *testing.T, db *gorm.DB, parentID *uuid.UUID) objModel.ObjectiveModel {
	t.Helper()

	obj := objModel.ObjectiveModel{
		PeriodID:          uuid.New(),
		SupervisorID:      uuid.New(),
		ParentObjectiveID: parentID,
		Name:              fmt.Sprintf("objective-%s", uuid.NewString()[:8]),
		ObjType:           objModel.ObjTypePercent,
		ObjFor:            objModel.ObjForUser,
		Metric:            objModel.MetricPercent,
		Target:            1,
		Expected:          100,
		Deadline:          time.Now().Add(30 * 24 * time.Hour),
	}
	require.NoError(t, db.Create(&obj).Error)
	return obj
}

func makeKeyResult(t *testing.T, db *gorm.DB, objectiveID uuid.UUID, progress float64) krModel.KeyResultModel {
	t.Helper()

	kr := krModel.KeyResultModel{
		ObjectiveID: objectiveID,
		UserID:      uuid.New(),
		Name:        fmt.Sprintf("kr-%s", uuid.NewString()[:8]),
		Metric:      objModel.MetricPercent,
		Target:      100,
		Expected:    100,
		Progress:    progress,
		Deadline:    time.Now().Add(30 * 24 * time.Hour),
	}
	require.NoError(t, db.Create(&kr).Error)
	return kr
}

func progressOf(t *testing.T, db *gorm.DB, id uuid.UUID) *float64 {
	t.Helper()

	var obj objModel.ObjectiveModel
	require.NoError(t, db.First(&obj, "id = ?", id).Error)
	return obj.Progress
}

func TestFromKeyResultChangeAveragesKeyResults(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	obj := makeObjective(t, db, nil)
	makeKeyResult(t, db, obj.ID, 40)
	makeKeyResult(t, db, obj.ID, 60)

	require.NoError(t, svc.FromKeyResultChange(obj.ID))

	got := progressOf(t, db, obj.ID)
	require.NotNil(t, got)
	assert.InDelta(t, 50, *got, 1e-9)
}

func TestFromKeyResultChangeWithoutKeyResults(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	obj := makeObjective(t, db, nil)

	require.NoError(t, svc.FromKeyResultChange(obj.ID))

	got := progressOf(t, db, obj.ID)
	require.NotNil(t, got)
	assert.Zero(t, *got)
}

func TestFromKeyResultChangeAscendsTwoLevels(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	grandparent := makeObjective(t, db, nil)
	parent := makeObjective(t, db, &grandparent.ID)
	leaf := makeObjective(t, db, &parent.ID)

	k1 := makeKeyResult(t, db, leaf.ID, 40)
	k2 := makeKeyResult(t, db, leaf.ID, 60)

	require.NoError(t, svc.FromKeyResultChange(leaf.ID))

	assert.InDelta(t, 50, *progressOf(t, db, leaf.ID), 1e-9)
	assert.InDelta(t, 50, *progressOf(t, db, parent.ID), 1e-9)
	assert.InDelta(t, 50, *progressOf(t, db, grandparent.ID), 1e-9)

	// removing a key result re-averages every level from the survivors
	require.NoError(t, db.Delete(&k2).Error)
	require.NoError(t, svc.FromKeyResultChange(leaf.ID))

	assert.InDelta(t, k1.Progress, *progressOf(t, db, leaf.ID), 1e-9)
	assert.InDelta(t, 40, *progressOf(t, db, parent.ID), 1e-9)
	assert.InDelta(t, 40, *progressOf(t, db, grandparent.ID), 1e-9)
}

func TestAscentStopsAfterTwoAncestors(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	greatGrandparent := makeObjective(t, db, nil)
	grandparent := makeObjective(t, db, &greatGrandparent.ID)
	parent := makeObjective(t, db, &grandparent.ID)
	leaf := makeObjective(t, db, &parent.ID)

	makeKeyResult(t, db, leaf.ID, 80)

	require.NoError(t, svc.FromKeyResultChange(leaf.ID))

	assert.InDelta(t, 80, *progressOf(t, db, leaf.ID), 1e-9)
	assert.InDelta(t, 80, *progressOf(t, db, parent.ID), 1e-9)
	assert.InDelta(t, 80, *progressOf(t, db, grandparent.ID), 1e-9)
	assert.Nil(t, progressOf(t, db, greatGrandparent.ID))
}

func TestFromObjectiveChangeAveragesChildren(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	parent := makeObjective(t, db, nil)
	for _, p := range []float64{20, 40, 90} {
		child := makeObjective(t, db, &parent.ID)
		require.NoError(t, db.Model(&objModel.ObjectiveModel{}).
			Where("id = ?", child.ID).
			Update("progress", p).Error)
	}

	require.NoError(t, svc.FromObjectiveChange(parent.ID))

	assert.InDelta(t, 50, *progressOf(t, db, parent.ID), 1e-9)
}

func TestChildWithoutProgressCountsAsZero(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	parent := makeObjective(t, db, nil)
	graded := makeObjective(t, db, &parent.ID)
	require.NoError(t, db.Model(&objModel.ObjectiveModel{}).
		Where("id = ?", graded.ID).
		Update("progress", 100.0).Error)
	makeObjective(t, db, &parent.ID) // progress still nil

	require.NoError(t, svc.FromObjectiveChange(parent.ID))

	assert.InDelta(t, 50, *progressOf(t, db, parent.ID), 1e-9)
}

func TestGrandparentFailureKeepsParentUpdate(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	grandparent := makeObjective(t, db, nil)
	parent := makeObjective(t, db, &grandparent.ID)
	leaf := makeObjective(t, db, &parent.ID)
	makeKeyResult(t, db, leaf.ID, 70)

	trigger := fmt.Sprintf(`CREATE TRIGGER block_grandparent
		BEFORE UPDATE ON objectives
		WHEN NEW.id = '%s'
		BEGIN SELECT RAISE(ABORT, 'blocked'); END;`, grandparent.ID)
	require.NoError(t, db.Exec(trigger).Error)

	err := svc.FromKeyResultChange(leaf.ID)
	require.Error(t, err)

	// levels written before the failure stay written
	assert.InDelta(t, 70, *progressOf(t, db, leaf.ID), 1e-9)
	assert.InDelta(t, 70, *progressOf(t, db, parent.ID), 1e-9)
	assert.Nil(t, progressOf(t, db, grandparent.ID))
}

func TestRollupNotifiesEachRecomputedLevel(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	grandparent := makeObjective(t, db, nil)
	parent := makeObjective(t, db, &grandparent.ID)
	leaf := makeObjective(t, db, &parent.ID)
	makeKeyResult(t, db, leaf.ID, 30)

	require.NoError(t, svc.FromKeyResultChange(leaf.ID))

	var count int64
	require.NoError(t, db.Model(&notiModel.NotificationModel{}).Count(&count).Error)
	assert.EqualValues(t, 3, count)

	for _, supervisorID := range []uuid.UUID{leaf.SupervisorID, parent.SupervisorID, grandparent.SupervisorID} {
		var n int64
		require.NoError(t, db.Model(&notiModel.NotificationModel{}).
			Where("user_id = ?", supervisorID).
			Count(&n).Error)
		assert.EqualValues(t, 1, n)
	}
}
