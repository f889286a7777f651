package dto

import (
	"time"

	"github.com/google/uuid"

	"okr_backend/internals/features/okr/objectives/model"
)

type CreateObjRequest struct {
	Name              string      `json:"name" validate:"required"`
	Description       *string     `json:"description,omitempty"`
	PeriodID          uuid.UUID   `json:"period_id" validate:"required"`
	SupervisorID      uuid.UUID   `json:"supervisor_id" validate:"required"`
	ParentObjectiveID *uuid.UUID  `json:"parent_objective_id,omitempty"`
	ObjType           string      `json:"obj_type"`
	ObjFor            string      `json:"obj_for" validate:"required,oneof=User Department Organize"`
	Metric            string      `json:"metric" validate:"required,oneof=Quantity Percent Time Money"`
	Target            float64     `json:"target" validate:"required"`
	Expected          float64     `json:"expected"`
	Progress          *float64    `json:"progress,omitempty" validate:"omitempty,gte=0,lte=100"`
	Deadline          int64       `json:"deadline" validate:"required"`
	ChildIDs          []uuid.UUID `json:"child_ids"`
}

type UpdateObjRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Target      *float64 `json:"target,omitempty"`
	Progress    *float64 `json:"progress,omitempty" validate:"omitempty,gte=0,lte=100"`
	Deadline    *int64   `json:"deadline,omitempty"`
	Status      *bool    `json:"status,omitempty"`
}

func (r UpdateObjRequest) IsEmpty() bool {
	return r.Name == nil && r.Description == nil && r.Target == nil &&
		r.Progress == nil && r.Deadline == nil && r.Status == nil
}

type AddLinkRequest struct {
	TargetID uuid.UUID `json:"target_id" validate:"required"`
}

type ObjectiveResponse struct {
	ID                uuid.UUID  `json:"id"`
	PeriodID          uuid.UUID  `json:"period_id"`
	SupervisorID      uuid.UUID  `json:"supervisor_id"`
	ParentObjectiveID *uuid.UUID `json:"parent_objective_id,omitempty"`
	Name              string     `json:"name"`
	Description       *string    `json:"description,omitempty"`
	ObjType           string     `json:"obj_type"`
	ObjFor            string     `json:"obj_for"`
	Metric            string     `json:"metric"`
	Target            float64    `json:"target"`
	Expected          float64    `json:"expected"`
	Progress          *float64   `json:"progress,omitempty"`
	Status            bool       `json:"status"`
	Achievement       *string    `json:"achievement,omitempty"`
	Deadline          int64      `json:"deadline"`
	CreatedAt         int64      `json:"created_at"`
	UpdatedAt         int64      `json:"updated_at"`
}

func ToObjectiveResponse(o model.ObjectiveModel) ObjectiveResponse {
	return ObjectiveResponse{
		ID:                o.ID,
		PeriodID:          o.PeriodID,
		SupervisorID:      o.SupervisorID,
		ParentObjectiveID: o.ParentObjectiveID,
		Name:              o.Name,
		Description:       o.Description,
		ObjType:           o.ObjType,
		ObjFor:            o.ObjFor,
		Metric:            o.Metric,
		Target:            o.Target,
		Expected:          o.Expected,
		Progress:          o.Progress,
		Status:            o.Status,
		Achievement:       o.Achievement,
		Deadline:          o.Deadline.Unix(),
		CreatedAt:         o.CreatedAt.Unix(),
		UpdatedAt:         o.UpdatedAt.Unix(),
	}
}

func ToObjectiveResponses(objs []model.ObjectiveModel) []ObjectiveResponse {
	out := make([]ObjectiveResponse, 0, len(objs))
	for _, o := range objs {
		out = append(out, ToObjectiveResponse(o))
	}
	return out
}

// NormalizeObjType maps free-form wire values onto the stored enum, matching
// the accepted spellings of the public API.
func NormalizeObjType(raw string) string {
	switch raw {
	case "Percent":
		return model.ObjTypePercent
	case "Kpi":
		return model.ObjTypeKpi
	case "As high as possible", "AsHighAsPossible":
		return model.ObjTypeAsHighAsPossible
	case "As low as possible", "AsLowAsPossible":
		return model.ObjTypeAsLowAsPossible
	default:
		return model.ObjTypeOther
	}
}

// DeadlineTime converts the wire unix-seconds deadline.
func DeadlineTime(unix int64) time.Time {
	return time.Unix(unix, 0)
}
