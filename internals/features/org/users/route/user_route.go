package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"okr_backend/internals/features/org/users/controller"
	authMw "okr_backend/internals/middlewares/auth"
	"okr_backend/internals/middlewares"
)

func UserRoutes(api fiber.Router, db *gorm.DB) {
	authCtrl := controller.NewAuthController(db)
	userCtrl := controller.NewUserController(db)

	auth := api.Group("/auth")
	auth.Post("/register", middlewares.RegisterRateLimiter(), authCtrl.Register)
	auth.Post("/login", middlewares.LoginRateLimiter(), authCtrl.Login)
	auth.Post("/google", middlewares.LoginRateLimiter(), authCtrl.GoogleLogin)
	auth.Post("/refresh", authCtrl.Refresh)
	auth.Post("/logout", authMw.AuthMiddleware(db), authCtrl.Logout)

	user := api.Group("/user", authMw.AuthMiddleware(db))
	user.Post("/create", userCtrl.CreateUser)
	user.Put("/update/:user_id", userCtrl.UpdateUser)
	user.Delete("/delete/:user_id", userCtrl.DeleteUser)
	user.Get("/", userCtrl.GetUsers)
	user.Get("/check_profile", userCtrl.CheckProfile)
	user.Get("/:user_id", userCtrl.GetUser)
}
