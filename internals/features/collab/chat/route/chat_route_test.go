package route

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	chatService "okr_backend/internals/features/collab/chat/service"
	"okr_backend/internals/configs"
	userModel "okr_backend/internals/features/org/users/model"
	userService "okr_backend/internals/features/org/users/service"
)

func init() {
	configs.JWTSecret = "chat-test-secret"
}

func newChatApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&userModel.TokenBlacklist{}))

	app := fiber.New()
	ChatRoutes(app, app.Group("/api/v1"), db, chatService.NewRegistry(4))
	return app, db
}

func signedToken(t *testing.T) string {
	t.Helper()

	raw, err := userService.GenerateAccessToken(userModel.UserModel{
		ID:       uuid.New(),
		UserName: "alice",
		Role:     "member",
	})
	require.NoError(t, err)
	return raw
}

func wsRequest(t *testing.T, app *fiber.App, query string) *http.Response {
	t.Helper()

	req, _ := http.NewRequest(http.MethodGet, "/ws/chat"+query, nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestChatUpgradeRequiresToken(t *testing.T) {
	app, _ := newChatApp(t)

	resp := wsRequest(t, app, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestChatUpgradeRejectsInvalidToken(t *testing.T) {
	app, _ := newChatApp(t)

	resp := wsRequest(t, app, "?token=not.a.jwt")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestChatUpgradeRejectsBlacklistedToken(t *testing.T) {
	app, db := newChatApp(t)

	token := signedToken(t)
	require.NoError(t, db.Create(&userModel.TokenBlacklist{Token: token}).Error)

	resp := wsRequest(t, app, "?token="+token)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestChatUpgradeAcceptsQueryToken(t *testing.T) {
	app, _ := newChatApp(t)

	// a plain HTTP request with a good token clears the guard and is then
	// refused for not being a websocket handshake
	resp := wsRequest(t, app, "?token="+signedToken(t))
	assert.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode)
}
