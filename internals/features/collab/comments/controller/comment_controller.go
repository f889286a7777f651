package controller

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"okr_backend/internals/features/collab/comments/model"
	"okr_backend/internals/features/collab/comments/service"
	helper "okr_backend/internals/helpers"
)

type CommentController struct {
	DB       *gorm.DB
	Validate *validator.Validate
	Service  *service.CommentService
}

func NewCommentController(db *gorm.DB) *CommentController {
	return &CommentController{
		DB:       db,
		Validate: validator.New(),
		Service:  service.NewCommentService(db),
	}
}

type createCommentRequest struct {
	PostID          string     `json:"post_id" validate:"required"`
	ParentCommentID *uuid.UUID `json:"parent_comment_id,omitempty"`
	Content         string     `json:"content" validate:"required"`
}

type updateCommentRequest struct {
	Content string `json:"content" validate:"required"`
}

// GET /api/v1/comment/:post_id
func (ctrl *CommentController) GetCommentsByPost(c *fiber.Ctx) error {
	postID := c.Params("post_id")
	if postID == "" {
		return helper.Error(c, fiber.StatusBadRequest, "Missing post id")
	}

	forest, err := ctrl.Service.GetCommentTree(postID)
	if err != nil {
		return helper.DBError(c, err, "")
	}
	return helper.Success(c, "Get all comments successfully", forest)
}

// GET /api/v1/comment/:post_id/:comment_id
func (ctrl *CommentController) GetCommentByID(c *fiber.Ctx) error {
	postID := c.Params("post_id")
	commentID, err := uuid.Parse(c.Params("comment_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid comment id")
	}

	comment, err := ctrl.Service.GetCommentByID(postID, commentID.String())
	if err != nil {
		return helper.DBError(c, err, "Comment not found")
	}
	return helper.Success(c, "Get comment successfully", comment)
}

// POST /api/v1/comment/create_comment
func (ctrl *CommentController) CreateComment(c *fiber.Ctx) error {
	var req createCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	// replies must land on a live comment in the same post
	if req.ParentCommentID != nil {
		var parent model.CommentModel
		if err := ctrl.DB.
			Where("id = ? AND post_id = ?", *req.ParentCommentID, req.PostID).
			First(&parent).Error; err != nil {
			return helper.DBError(c, err, "Parent comment not found")
		}
	}

	comment := model.CommentModel{
		PostID:          req.PostID,
		ParentCommentID: req.ParentCommentID,
		UserID:          userID,
		Content:         req.Content,
	}
	if err := ctrl.DB.Create(&comment).Error; err != nil {
		return helper.DBError(c, err, "")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Created comment successfully", comment)
}

// PUT /api/v1/comment/update/:comment_id
func (ctrl *CommentController) UpdateComment(c *fiber.Ctx) error {
	commentID, err := uuid.Parse(c.Params("comment_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid comment id")
	}

	var req updateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var comment model.CommentModel
	if err := ctrl.DB.First(&comment, "id = ?", commentID).Error; err != nil {
		return helper.DBError(c, err, "Comment not found")
	}

	if err := ctrl.DB.Model(&comment).Update("content", req.Content).Error; err != nil {
		return helper.DBError(c, err, "")
	}
	return helper.Success(c, "Updated comment successfully", comment)
}

// DELETE /api/v1/comment/delete/:comment_id
// Soft delete: the row is tombstoned so replies keep their place in the tree.
func (ctrl *CommentController) DeleteComment(c *fiber.Ctx) error {
	commentID, err := uuid.Parse(c.Params("comment_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid comment id")
	}

	var comment model.CommentModel
	if err := ctrl.DB.First(&comment, "id = ?", commentID).Error; err != nil {
		return helper.DBError(c, err, "Comment not found")
	}

	now := time.Now()
	if err := ctrl.DB.Model(&comment).Updates(map[string]interface{}{
		"is_deleted": true,
		"deleted_at": now,
	}).Error; err != nil {
		return helper.DBError(c, err, "")
	}
	return helper.Success(c, "Deleted comment successfully", nil)
}
