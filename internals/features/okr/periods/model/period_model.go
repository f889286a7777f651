package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PeriodModel represents the periods table; objectives are scoped to a period
// (a quarter, usually).
type PeriodModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrganizeID uuid.UUID `gorm:"type:uuid;not null;index" json:"organize_id"`
	Name       string    `gorm:"size:255;not null" json:"name" validate:"required"`
	StartDate  time.Time `gorm:"not null" json:"start_date"`
	EndDate    time.Time `gorm:"not null" json:"end_date"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (PeriodModel) TableName() string {
	return "periods"
}

func (p *PeriodModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
