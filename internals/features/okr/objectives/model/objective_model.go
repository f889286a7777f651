package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Which tier of the hierarchy an objective targets.
const (
	ObjForUser       = "User"
	ObjForDepartment = "Department"
	ObjForOrganize   = "Organize"
)

const (
	ObjTypePercent          = "Percent"
	ObjTypeKpi              = "Kpi"
	ObjTypeAsHighAsPossible = "AsHighAsPossible"
	ObjTypeAsLowAsPossible  = "AsLowAsPossible"
	ObjTypeOther            = "Other"
)

const (
	MetricQuantity = "Quantity"
	MetricPercent  = "Percent"
	MetricTime     = "Time"
	MetricMoney    = "Money"
)

const (
	AchievementAchieved = "Achievement"
	AchievementNon      = "NonAchievement"
	AchievementExceed   = "Exceed"
)

// ObjectiveModel represents the objectives table. ParentObjectiveID links the
// user → department → organization tree; Progress is nil until the first
// child contributes.
type ObjectiveModel struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	PeriodID          uuid.UUID  `gorm:"type:uuid;not null;index" json:"period_id"`
	SupervisorID      uuid.UUID  `gorm:"type:uuid;not null" json:"supervisor_id"`
	ParentObjectiveID *uuid.UUID `gorm:"type:uuid;index" json:"parent_objective_id,omitempty"`
	Name              string     `gorm:"size:255;not null" json:"name"`
	Description       *string    `gorm:"type:text" json:"description,omitempty"`
	ObjType           string     `gorm:"type:varchar(30);not null;default:'Other'" json:"obj_type"`
	ObjFor            string     `gorm:"type:varchar(20);not null" json:"obj_for"`
	Metric            string     `gorm:"type:varchar(20);not null" json:"metric"`
	Target            float64    `gorm:"not null" json:"target"`
	Expected          float64    `gorm:"not null" json:"expected"`
	Progress          *float64   `json:"progress,omitempty"`
	Status            bool       `gorm:"not null;default:false" json:"status"`
	Achievement       *string    `gorm:"type:varchar(20)" json:"achievement,omitempty"`
	Deadline          time.Time  `gorm:"not null" json:"deadline"`
	CreatedAt         time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ObjectiveModel) TableName() string {
	return "objectives"
}

func (o *ObjectiveModel) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// ObjectiveOnUser links an objective to the users accountable for it.
type ObjectiveOnUser struct {
	ObjectiveID uuid.UUID `gorm:"type:uuid;primaryKey" json:"objective_id"`
	UserID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (ObjectiveOnUser) TableName() string {
	return "objective_on_users"
}

// ObjectiveOnDepartment links a department-tier objective to its department.
type ObjectiveOnDepartment struct {
	ObjectiveID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"objective_id"`
	DepartmentID uuid.UUID `gorm:"type:uuid;primaryKey" json:"department_id"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (ObjectiveOnDepartment) TableName() string {
	return "objective_on_departments"
}

// ObjectiveOnOrganize links an organization-tier objective to the organize.
type ObjectiveOnOrganize struct {
	ObjectiveID uuid.UUID `gorm:"type:uuid;primaryKey" json:"objective_id"`
	OrganizeID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"organize_id"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (ObjectiveOnOrganize) TableName() string {
	return "objective_on_organizes"
}
