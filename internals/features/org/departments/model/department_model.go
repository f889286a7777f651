package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DepartmentModel represents the departments table; middle tier of the
// organization hierarchy.
type DepartmentModel struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	OrganizeID uuid.UUID  `gorm:"type:uuid;not null;index" json:"organize_id"`
	ManagerID  *uuid.UUID `gorm:"type:uuid" json:"manager_id,omitempty"`
	Name       string     `gorm:"size:255;not null" json:"name" validate:"required"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (DepartmentModel) TableName() string {
	return "departments"
}

func (d *DepartmentModel) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
