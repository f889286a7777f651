package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CommentModel represents the comments table. PostID is an external post
// identifier. Deletion is soft: IsDeleted/DeletedAt tombstone the row so the
// reply tree underneath it stays reachable. DeletedAt is deliberately not
// gorm.DeletedAt — tombstones must remain visible to queries.
type CommentModel struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	PostID          string     `gorm:"size:64;not null;index" json:"post_id"`
	ParentCommentID *uuid.UUID `gorm:"type:uuid;index" json:"parent_comment_id,omitempty"`
	UserID          uuid.UUID  `gorm:"type:uuid;not null" json:"user_id"`
	Content         string     `gorm:"type:text;not null" json:"content"`
	Score           int        `gorm:"not null;default:0" json:"score"`
	IsDeleted       bool       `gorm:"not null;default:false" json:"is_deleted"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       *time.Time `json:"deleted_at,omitempty"`
}

func (CommentModel) TableName() string {
	return "comments"
}

func (m *CommentModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
