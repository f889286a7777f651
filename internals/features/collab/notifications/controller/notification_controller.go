package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"okr_backend/internals/features/collab/notifications/model"
	"okr_backend/internals/features/collab/notifications/service"
	helper "okr_backend/internals/helpers"
)

type NotificationController struct {
	DB       *gorm.DB
	Validate *validator.Validate
	Service  *service.NotificationService
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{
		DB:       db,
		Validate: validator.New(),
		Service:  service.NewNotificationService(db),
	}
}

type createNotificationRequest struct {
	UserID  uuid.UUID      `json:"user_id" validate:"required"`
	Message string         `json:"message" validate:"required"`
	Params  datatypes.JSON `json:"params,omitempty"`
}

// GET /api/v1/notification
// Returns the authenticated user's notifications, newest first.
func (ctrl *NotificationController) GetNotifications(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	paging := helper.ResolvePaging(c, 10, 50)

	var notis []model.NotificationModel
	query := ctrl.DB.Where("user_id = ?", userID)
	if unread := c.Query("unread"); unread == "true" {
		query = query.Where("status = ?", false)
	}
	if err := query.
		Order("created_at DESC").
		Offset(paging.Offset).
		Limit(paging.Limit).
		Find(&notis).Error; err != nil {
		return helper.DBError(c, err, "")
	}
	return helper.Success(c, "Get all notifications successfully", notis)
}

// POST /api/v1/notification/create
func (ctrl *NotificationController) CreateNotification(c *fiber.Ctx) error {
	var req createNotificationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	noti, err := ctrl.Service.Create(req.UserID, req.Message, req.Params)
	if err != nil {
		return helper.DBError(c, err, "")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Created notification successfully", noti)
}

// PUT /api/v1/notification/read/:notification_id
func (ctrl *NotificationController) MarkAsRead(c *fiber.Ctx) error {
	notiID, err := uuid.Parse(c.Params("notification_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid notification id")
	}
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	result := ctrl.DB.Model(&model.NotificationModel{}).
		Where("id = ? AND user_id = ?", notiID, userID).
		Update("status", true)
	if result.Error != nil {
		return helper.DBError(c, result.Error, "")
	}
	if result.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Notification not found")
	}
	return helper.Success(c, "Notification marked as read", nil)
}

// DELETE /api/v1/notification/delete/:notification_id
func (ctrl *NotificationController) DeleteNotification(c *fiber.Ctx) error {
	notiID, err := uuid.Parse(c.Params("notification_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid notification id")
	}
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	result := ctrl.DB.
		Where("id = ? AND user_id = ?", notiID, userID).
		Delete(&model.NotificationModel{})
	if result.Error != nil {
		return helper.DBError(c, result.Error, "")
	}
	if result.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Notification not found")
	}
	return helper.Success(c, "Deleted notification successfully", nil)
}
