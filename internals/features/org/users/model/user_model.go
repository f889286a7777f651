package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel represents the users table
type UserModel struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserName     string     `gorm:"size:50;not null" json:"user_name" validate:"required,min=3,max=50"`
	FirstName    *string    `gorm:"size:50" json:"first_name,omitempty"`
	LastName     *string    `gorm:"size:50" json:"last_name,omitempty"`
	Email        string     `gorm:"size:255;unique;not null" json:"email" validate:"required,email"`
	Password     string     `gorm:"not null" json:"-" validate:"required,min=8"`
	GoogleID     *string    `gorm:"size:255;unique" json:"google_id,omitempty"`
	Role         string     `gorm:"type:varchar(20);not null;default:'member'" json:"role"`
	DepartmentID *uuid.UUID `gorm:"type:uuid;index" json:"department_id,omitempty"`
	OrganizeID   *uuid.UUID `gorm:"type:uuid;index" json:"organize_id,omitempty"`
	IsActive     bool       `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = "member"
	}
	return nil
}
