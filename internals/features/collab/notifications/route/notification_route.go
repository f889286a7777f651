package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"okr_backend/internals/features/collab/notifications/controller"
)

func NotificationRoutes(api fiber.Router, db *gorm.DB) {
	notiCtrl := controller.NewNotificationController(db)

	noti := api.Group("/notification")
	noti.Get("/", notiCtrl.GetNotifications)
	noti.Post("/create", notiCtrl.CreateNotification)
	noti.Put("/read/:notification_id", notiCtrl.MarkAsRead)
	noti.Delete("/delete/:notification_id", notiCtrl.DeleteNotification)
}
