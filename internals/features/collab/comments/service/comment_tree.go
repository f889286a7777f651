package service

import (
	"gorm.io/gorm"

	"okr_backend/internals/features/collab/comments/model"
)

// TreeNode is one comment plus its ordered replies.
type TreeNode struct {
	Comment         model.CommentModel `json:"comment"`
	UserID          string             `json:"user_id"`
	ParentCommentID string             `json:"parent_id"`
	Children        []TreeNode         `json:"children"`
}

type CommentService struct {
	DB *gorm.DB
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{DB: db}
}

// GetCommentTree returns the threaded comment forest for a post.
//
// All comments for the post are fetched in one query ordered by
// (score desc, created_at desc) and assembled in memory through a parent-id
// index. Partitioning an ordered list by parent keeps the relative order of
// every sibling group, so each level independently honors the same ordering.
// Soft-deleted comments stay in the tree as tombstones so their replies are
// not orphaned.
func (s *CommentService) GetCommentTree(postID string) ([]TreeNode, error) {
	var all []model.CommentModel
	if err := s.DB.
		Where("post_id = ?", postID).
		Order("score DESC, created_at DESC").
		Find(&all).Error; err != nil {
		return nil, err
	}

	byParent := make(map[string][]model.CommentModel, len(all))
	for _, comment := range all {
		key := ""
		if comment.ParentCommentID != nil {
			key = comment.ParentCommentID.String()
		}
		byParent[key] = append(byParent[key], comment)
	}

	var build func(comment model.CommentModel) TreeNode
	build = func(comment model.CommentModel) TreeNode {
		node := TreeNode{
			Comment:  comment,
			UserID:   comment.UserID.String(),
			Children: []TreeNode{},
		}
		if comment.ParentCommentID != nil {
			node.ParentCommentID = comment.ParentCommentID.String()
		}
		for _, child := range byParent[comment.ID.String()] {
			node.Children = append(node.Children, build(child))
		}
		return node
	}

	roots := byParent[""]
	forest := make([]TreeNode, 0, len(roots))
	for _, root := range roots {
		forest = append(forest, build(root))
	}
	return forest, nil
}

// GetCommentByID fetches one comment scoped to its post.
func (s *CommentService) GetCommentByID(postID string, commentID string) (*model.CommentModel, error) {
	var comment model.CommentModel
	if err := s.DB.
		Where("id = ? AND post_id = ?", commentID, postID).
		First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}
