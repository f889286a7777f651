package dto

import (
	"time"

	"github.com/google/uuid"

	"okr_backend/internals/features/okr/keyresults/model"
)

type CreateKrRequest struct {
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description"`
	UserID      uuid.UUID `json:"user_id" validate:"required"`
	ObjectiveID uuid.UUID `json:"objective_id" validate:"required"`
	Target      float64   `json:"target" validate:"required"`
	Expected    float64   `json:"expected"`
	Metric      string    `json:"metric" validate:"required,oneof=Quantity Percent Time Money"`
	Progress    *float64  `json:"progress,omitempty" validate:"omitempty,gte=0,lte=100"`
	Deadline    int64     `json:"deadline" validate:"required"`
}

type UpdateKrRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Target      *float64 `json:"target,omitempty"`
	Progress    *float64 `json:"progress,omitempty" validate:"omitempty,gte=0,lte=100"`
	Deadline    *int64   `json:"deadline,omitempty"`
}

func (r UpdateKrRequest) IsEmpty() bool {
	return r.Name == nil && r.Description == nil && r.Target == nil &&
		r.Progress == nil && r.Deadline == nil
}

type GradingKrRequest struct {
	Grade float64 `json:"grade" validate:"gte=0,lte=100"`
}

type AddFileRequest struct {
	FilePath string `json:"file_path" validate:"required"`
}

type KeyResultResponse struct {
	ID              uuid.UUID `json:"id"`
	ObjectiveID     uuid.UUID `json:"objective_id"`
	UserID          uuid.UUID `json:"user_id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Metric          string    `json:"metric"`
	Target          float64   `json:"target"`
	Expected        float64   `json:"expected"`
	Progress        float64   `json:"progress"`
	Status          bool      `json:"status"`
	SupervisorGrade float64   `json:"supervisor_grade"`
	Deadline        int64     `json:"deadline"`
	CreatedAt       int64     `json:"created_at"`
	UpdatedAt       int64     `json:"updated_at"`
}

func ToKeyResultResponse(kr model.KeyResultModel) KeyResultResponse {
	return KeyResultResponse{
		ID:              kr.ID,
		ObjectiveID:     kr.ObjectiveID,
		UserID:          kr.UserID,
		Name:            kr.Name,
		Description:     kr.Description,
		Metric:          kr.Metric,
		Target:          kr.Target,
		Expected:        kr.Expected,
		Progress:        kr.Progress,
		Status:          kr.Status,
		SupervisorGrade: kr.SupervisorGrade,
		Deadline:        kr.Deadline.Unix(),
		CreatedAt:       kr.CreatedAt.Unix(),
		UpdatedAt:       kr.UpdatedAt.Unix(),
	}
}

func ToKeyResultResponses(krs []model.KeyResultModel) []KeyResultResponse {
	out := make([]KeyResultResponse, 0, len(krs))
	for _, kr := range krs {
		out = append(out, ToKeyResultResponse(kr))
	}
	return out
}

// DeadlineTime converts the wire unix-seconds deadline.
func DeadlineTime(unix int64) time.Time {
	return time.Unix(unix, 0)
}
