package route

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"gorm.io/gorm"

	"okr_backend/internals/features/collab/chat/controller"
	"okr_backend/internals/features/collab/chat/service"
	authMw "okr_backend/internals/middlewares/auth"
)

// ChatRoutes wires the room listing under the API group and the websocket
// endpoint on the app root. The upgrade sits behind the same JWT guard as
// the API; websocket clients pass the token as ?token=.
func ChatRoutes(app *fiber.App, api fiber.Router, db *gorm.DB, registry *service.Registry) {
	chatCtrl := controller.NewChatController(registry)

	api.Get("/chat/rooms", chatCtrl.GetRooms)

	app.Use("/ws", authMw.AuthMiddleware(db), chatCtrl.Upgrade)
	app.Get("/ws/chat", websocket.New(chatCtrl.HandleSocket))
}
