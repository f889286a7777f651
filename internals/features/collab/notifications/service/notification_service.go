package service

import (
	"log"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"okr_backend/internals/features/collab/notifications/model"
)

type NotificationService struct {
	DB *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{DB: db}
}

// Create inserts a notification row for the user.
func (s *NotificationService) Create(userID uuid.UUID, message string, params datatypes.JSON) (*model.NotificationModel, error) {
	noti := model.NotificationModel{
		UserID:  userID,
		Message: message,
		Params:  params,
	}
	if err := s.DB.Create(&noti).Error; err != nil {
		return nil, err
	}
	return &noti, nil
}

// Notify is the fire-and-forget variant used by mutation side effects: a
// failed insert is logged, never surfaced to the caller.
func (s *NotificationService) Notify(userID uuid.UUID, message string) {
	if _, err := s.Create(userID, message, nil); err != nil {
		log.Printf("[WARN] notification for %s dropped: %v", userID, err)
	}
}
