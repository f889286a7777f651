package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// KeyResultModel represents the key_results table. Status flips to true when
// a supervisor grades the key result.
type KeyResultModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ObjectiveID     uuid.UUID `gorm:"type:uuid;not null;index" json:"objective_id"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Name            string    `gorm:"size:255;not null" json:"name"`
	Description     string    `gorm:"type:text" json:"description"`
	Metric          string    `gorm:"type:varchar(20);not null" json:"metric"`
	Target          float64   `gorm:"not null" json:"target"`
	Expected        float64   `gorm:"not null" json:"expected"`
	Progress        float64   `gorm:"not null;default:0" json:"progress"`
	Status          bool      `gorm:"not null;default:false" json:"status"`
	SupervisorGrade float64   `gorm:"not null;default:0" json:"supervisor_grade"`
	Deadline        time.Time `gorm:"not null" json:"deadline"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (KeyResultModel) TableName() string {
	return "key_results"
}

func (k *KeyResultModel) BeforeCreate(tx *gorm.DB) error {
	if k.ID == uuid.Nil {
		k.ID = uuid.New()
	}
	return nil
}
