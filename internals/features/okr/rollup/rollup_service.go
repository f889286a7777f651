package rollup

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	notiService "okr_backend/internals/features/collab/notifications/service"
	krModel "okr_backend/internals/features/okr/keyresults/model"
	objModel "okr_backend/internals/features/okr/objectives/model"
)

// Siblings are re-fetched in full on every mutation; the bound mirrors the
// page cap used by the list endpoints.
const siblingFetchLimit = 500

// Service keeps every non-leaf objective's progress equal to the unweighted
// mean of its direct children. Each mutation re-reads all siblings at each
// level and walks at most two ancestor levels (objective → department
// objective → organization objective).
//
// Updates are sequential and not wrapped in a transaction: a failure at the
// grandparent level leaves the parent's already-committed value in place.
// Write concurrency per objective tree is low enough that the lost-update
// window is accepted.
type Service struct {
	DB   *gorm.DB
	Noti *notiService.NotificationService
}

func NewService(db *gorm.DB) *Service {
	return &Service{DB: db, Noti: notiService.NewNotificationService(db)}
}

// FromKeyResultChange recomputes the objective that owns the mutated key
// result from all its key results, then ascends two ancestor levels.
// Call after key-result create, progress update, grading, and delete.
func (s *Service) FromKeyResultChange(objectiveID uuid.UUID) error {
	var obj objModel.ObjectiveModel
	if err := s.DB.First(&obj, "id = ?", objectiveID).Error; err != nil {
		return err
	}

	var krs []krModel.KeyResultModel
	if err := s.DB.
		Where("objective_id = ?", obj.ID).
		Limit(siblingFetchLimit).
		Find(&krs).Error; err != nil {
		return err
	}

	sum := 0.0
	n := 0.0
	for _, kr := range krs {
		sum += kr.Progress
		n++
	}
	if n == 0 {
		n = 1
	}
	mean := sum / n

	if err := s.DB.Model(&objModel.ObjectiveModel{}).
		Where("id = ?", obj.ID).
		Update("progress", mean).Error; err != nil {
		return err
	}
	s.notifyLevel(obj, mean)

	if obj.ParentObjectiveID == nil {
		return nil
	}
	return s.ascend(*obj.ParentObjectiveID, 2)
}

// FromObjectiveChange recomputes a parent objective from its child
// objectives, then one more level above. Call after creating or deleting an
// objective that has a parent; parentID is that parent.
func (s *Service) FromObjectiveChange(parentID uuid.UUID) error {
	return s.ascend(parentID, 2)
}

// ascend averages the direct child objectives of id, writes the result back,
// and repeats on the parent while levels remain. The first error aborts the
// remaining levels; already-written levels stay written.
func (s *Service) ascend(id uuid.UUID, levels int) error {
	if levels <= 0 {
		return nil
	}

	var obj objModel.ObjectiveModel
	if err := s.DB.First(&obj, "id = ?", id).Error; err != nil {
		return err
	}

	var children []objModel.ObjectiveModel
	if err := s.DB.
		Where("parent_objective_id = ?", obj.ID).
		Limit(siblingFetchLimit).
		Find(&children).Error; err != nil {
		return err
	}

	sum := 0.0
	n := 0.0
	for _, child := range children {
		if child.Progress != nil {
			sum += *child.Progress
		}
		n++
	}
	if n == 0 {
		n = 1
	}
	mean := sum / n

	if err := s.DB.Model(&objModel.ObjectiveModel{}).
		Where("id = ?", obj.ID).
		Update("progress", mean).Error; err != nil {
		return err
	}
	s.notifyLevel(obj, mean)

	if obj.ParentObjectiveID == nil {
		return nil
	}
	return s.ascend(*obj.ParentObjectiveID, levels-1)
}

func (s *Service) notifyLevel(obj objModel.ObjectiveModel, mean float64) {
	if s.Noti == nil {
		return
	}
	s.Noti.Notify(obj.SupervisorID, fmt.Sprintf("Objective %s progress is now %.1f%%", obj.Name, mean))
}
