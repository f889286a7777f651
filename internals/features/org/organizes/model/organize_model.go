package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrganizeModel represents the organizes table, the top tier of the
// organization → department → user hierarchy.
type OrganizeModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null" json:"owner_id"`
	Name      string    `gorm:"size:255;not null" json:"name" validate:"required"`
	Address   string    `gorm:"size:255" json:"address"`
	Contact   string    `gorm:"size:255" json:"contact"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (OrganizeModel) TableName() string {
	return "organizes"
}

func (o *OrganizeModel) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
