package controller

import (
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"okr_backend/internals/features/collab/chat/service"
	helper "okr_backend/internals/helpers"
)

type ChatController struct {
	Registry *service.Registry
}

func NewChatController(registry *service.Registry) *ChatController {
	return &ChatController{Registry: registry}
}

// joinFrame is the first JSON frame a client must send after the upgrade.
type joinFrame struct {
	Username string `json:"username"`
	Room     string `json:"room"`
}

// GET /api/v1/chat/rooms
func (ctrl *ChatController) GetRooms(c *fiber.Ctx) error {
	return helper.Success(c, "Get all chat rooms successfully", ctrl.Registry.Rooms())
}

// Upgrade rejects anything that is not a websocket upgrade request.
func (ctrl *ChatController) Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// HandleSocket runs a single chat connection: read the join frame, register
// with the room, then pump messages both ways until the peer goes away.
func (ctrl *ChatController) HandleSocket(conn *websocket.Conn) {
	defer conn.Close()

	var join joinFrame
	if err := conn.ReadJSON(&join); err != nil {
		return
	}
	join.Username = strings.TrimSpace(join.Username)
	join.Room = strings.TrimSpace(join.Room)
	if join.Username == "" || join.Room == "" {
		_ = conn.WriteMessage(websocket.TextMessage, []byte("username and room are required"))
		return
	}

	member, err := ctrl.Registry.Join(join.Room, join.Username)
	if err != nil {
		_ = conn.WriteMessage(websocket.TextMessage, []byte("username already taken in this room"))
		return
	}
	defer ctrl.Registry.Leave(join.Room, join.Username)

	ctrl.Registry.Broadcast(join.Room, fmt.Sprintf("%s joined.", join.Username))

	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range member.Out {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return
			}
		}
		// Out closed without Leave running means Broadcast ejected this
		// member for lagging; closing the socket unwinds the read loop so
		// they cannot keep sending into the room.
		conn.Close()
	}()

	for {
		msgType, payload, err := conn.ReadMessage()
		if err != nil {
			break
		}
		if msgType != websocket.TextMessage {
			continue
		}
		text := strings.TrimSpace(string(payload))
		if text == "" {
			continue
		}
		ctrl.Registry.Broadcast(join.Room, fmt.Sprintf("%s: %s", join.Username, text))
	}

	// an ejected member has already been removed; no farewell for them
	if ctrl.Registry.Leave(join.Room, join.Username) {
		ctrl.Registry.Broadcast(join.Room, fmt.Sprintf("%s left.", join.Username))
	}
	<-done
	log.Printf("[INFO] chat: %s disconnected from %s", join.Username, join.Room)
}
