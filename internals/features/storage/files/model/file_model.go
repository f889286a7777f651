package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FolderModel represents the folders table; VirtualPath is the S3 prefix.
type FolderModel struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string     `gorm:"size:255;not null" json:"name"`
	ParentFolderID *uuid.UUID `gorm:"type:uuid;index" json:"parent_folder_id,omitempty"`
	OwnerID        uuid.UUID  `gorm:"type:uuid;not null;index" json:"owner_id"`
	VirtualPath    string     `gorm:"size:1024;not null" json:"virtual_path"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (FolderModel) TableName() string {
	return "folders"
}

func (f *FolderModel) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// FileModel represents the files table; VirtualPath is the S3 object key.
type FileModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Fullname    string     `gorm:"size:255;not null" json:"fullname"`
	VirtualPath string     `gorm:"size:1024;not null" json:"virtual_path"`
	FolderID    *uuid.UUID `gorm:"type:uuid;index" json:"folder_id,omitempty"`
	OwnerID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"owner_id"`
	Size        int64      `gorm:"not null;default:0" json:"size"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (FileModel) TableName() string {
	return "files"
}

func (f *FileModel) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// FileSharedModel attaches an already-stored file path to a key result.
type FileSharedModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Fullname    string    `gorm:"size:255;not null" json:"fullname"`
	VirtualPath string    `gorm:"size:1024;not null" json:"virtual_path"`
	KeyResultID uuid.UUID `gorm:"type:uuid;not null;index" json:"key_result_id"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (FileSharedModel) TableName() string {
	return "file_shared"
}

func (f *FileSharedModel) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// FileOnUser is the file ↔ collaborator join table. A row gives user read
// access to a file they do not own.
type FileOnUser struct {
	FileID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"file_id"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (FileOnUser) TableName() string {
	return "file_on_users"
}

// FileVersionModel records one backed-up revision of a file. The object for
// version N lives under the "<file_id>/<N>" key; the live object stays at
// the file's virtual path.
type FileVersionModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FileID        uuid.UUID `gorm:"type:uuid;not null;index" json:"file_id"`
	VersionNumber int64     `gorm:"not null" json:"version_number"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (FileVersionModel) TableName() string {
	return "file_versions"
}

func (f *FileVersionModel) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// FileOnTag is the file ↔ tag join table.
type FileOnTag struct {
	FileID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"file_id"`
	TagID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"tag_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (FileOnTag) TableName() string {
	return "file_on_tags"
}
