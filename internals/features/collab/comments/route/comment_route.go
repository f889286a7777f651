package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"okr_backend/internals/features/collab/comments/controller"
)

func CommentRoutes(api fiber.Router, db *gorm.DB) {
	commentCtrl := controller.NewCommentController(db)

	comment := api.Group("/comment")
	comment.Post("/create_comment", commentCtrl.CreateComment)
	comment.Put("/update/:comment_id", commentCtrl.UpdateComment)
	comment.Delete("/delete/:comment_id", commentCtrl.DeleteComment)
	comment.Get("/:post_id", commentCtrl.GetCommentsByPost)
	comment.Get("/:post_id/:comment_id", commentCtrl.GetCommentByID)
}
