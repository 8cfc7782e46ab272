package repository

import (
	"context"
	"fmt"
	"time"

	"bislerium/internal/models"

	"gorm.io/gorm"
)

// CommentFilter narrows ListActive. PostIDs loads several threads in one query;
// ParentCommentID and TopLevel select one level of a thread.
type CommentFilter struct {
	PostID          uint
	PostIDs         []uint
	ParentCommentID uint
	TopLevel        bool
}

// CommentRepository defines interface for comment operations
type CommentRepository interface {
	ListActive(ctx context.Context, filter CommentFilter) ([]*models.Comment, error)
	GetActiveByID(ctx context.Context, id uint) (*models.Comment, error)
	Create(ctx context.Context, comment *models.Comment) error
	Update(ctx context.Context, comment *models.Comment, editorID uint) error
	SoftDelete(ctx context.Context, id, actorID uint) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// ListActive returns active comments ordered by creation time, then ID.
func (r *commentRepository) ListActive(ctx context.Context, filter CommentFilter) ([]*models.Comment, error) {
	q := r.db.WithContext(ctx).Preload("Author").Where("comments.is_active = ?", true)
	if filter.PostIDs != nil {
		if len(filter.PostIDs) == 0 {
			return []*models.Comment{}, nil
		}
		q = q.Where("comments.post_id IN ?", filter.PostIDs)
	}
	if filter.PostID != 0 {
		q = q.Where("comments.post_id = ?", filter.PostID)
	}
	switch {
	case filter.ParentCommentID != 0:
		q = q.Where("comments.target_kind = ? AND comments.target_id = ?", models.TargetComment, filter.ParentCommentID)
	case filter.TopLevel:
		q = q.Where("comments.target_kind = ?", models.TargetPost)
	}

	var comments []*models.Comment
	if err := q.Order("comments.created_at ASC, comments.id ASC").Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

func (r *commentRepository) GetActiveByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("comments.id = ? AND comments.is_active = ?", id, true).
		First(&comment).Error
	if err != nil {
		return nil, notFoundOr(err, "Comment", id, "get comment")
	}
	return &comment, nil
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	comment.IsActive = true
	if err := r.db.WithContext(ctx).Omit("Author").Create(comment).Error; err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	return nil
}

// Update replaces the message and keeps the previous one in comment_logs.
// The target is immutable and never written.
func (r *commentRepository) Update(ctx context.Context, comment *models.Comment, editorID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var prev models.Comment
		if err := tx.Where("id = ? AND is_active = ?", comment.ID, true).First(&prev).Error; err != nil {
			return notFoundOr(err, "Comment", comment.ID, "load comment")
		}

		entry := models.CommentLog{CommentID: prev.ID, Message: prev.Message, EditedBy: editorID}
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("write comment log: %w", err)
		}

		now := time.Now()
		comment.UpdatedAt = &now
		err := tx.Model(&models.Comment{}).Where("id = ?", comment.ID).Updates(map[string]interface{}{
			"message":    comment.Message,
			"updated_at": now,
		}).Error
		if err != nil {
			return fmt.Errorf("update comment: %w", err)
		}
		return nil
	})
}

func (r *commentRepository) SoftDelete(ctx context.Context, id, actorID uint) error {
	now := time.Now()
	res := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("id = ? AND is_active = ?", id, true).
		Updates(map[string]interface{}{
			"is_active":     false,
			"deleted_at":    now,
			"deleted_by_id": actorID,
		})
	if res.Error != nil {
		return fmt.Errorf("delete comment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Comment", id)
	}
	return nil
}
