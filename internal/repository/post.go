package repository

import (
	"context"
	"fmt"
	"time"

	"bislerium/internal/models"

	"gorm.io/gorm"
)

// PostFilter narrows ListActive. Zero values mean no restriction.
type PostFilter struct {
	AuthorID uint
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	ListActive(ctx context.Context, filter PostFilter) ([]*models.Post, error)
	GetActiveByID(ctx context.Context, id uint) (*models.Post, error)
	Create(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, post *models.Post) error
	SoftDelete(ctx context.Context, id, actorID uint) error
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func activeImages(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true).Order("position ASC, id ASC")
}

func (r *postRepository) withDetails(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Author").
		Preload("Images", activeImages)
}

// ListActive returns active posts in ascending ID order.
func (r *postRepository) ListActive(ctx context.Context, filter PostFilter) ([]*models.Post, error) {
	var posts []*models.Post
	q := r.withDetails(ctx).Where("posts.is_active = ?", true)
	if filter.AuthorID != 0 {
		q = q.Where("posts.author_id = ?", filter.AuthorID)
	}
	if err := q.Order("posts.id ASC").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

func (r *postRepository) GetActiveByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.withDetails(ctx).
		Where("posts.id = ? AND posts.is_active = ?", id, true).
		First(&post).Error
	if err != nil {
		return nil, notFoundOr(err, "Post", id, "get post")
	}
	return &post, nil
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	post.IsActive = true
	for i := range post.Images {
		post.Images[i].Position = i
		post.Images[i].IsActive = true
	}
	if err := r.db.WithContext(ctx).Omit("Author").Create(post).Error; err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	return nil
}

// Update stores the new content and keeps the previous one in post_logs.
// A non-nil Images slice replaces the post's active images.
func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var prev models.Post
		if err := tx.Where("id = ? AND is_active = ?", post.ID, true).First(&prev).Error; err != nil {
			return notFoundOr(err, "Post", post.ID, "load post")
		}

		var editor uint
		if post.UpdatedByID != nil {
			editor = *post.UpdatedByID
		}
		entry := models.PostLog{
			PostID:   prev.ID,
			Title:    prev.Title,
			Body:     prev.Body,
			Location: prev.Location,
			Mood:     prev.Mood,
			EditedBy: editor,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("write post log: %w", err)
		}

		now := time.Now()
		post.UpdatedAt = &now
		err := tx.Model(&models.Post{}).Where("id = ?", post.ID).Updates(map[string]interface{}{
			"title":         post.Title,
			"body":          post.Body,
			"location":      post.Location,
			"mood":          post.Mood,
			"updated_at":    now,
			"updated_by_id": post.UpdatedByID,
		}).Error
		if err != nil {
			return fmt.Errorf("update post: %w", err)
		}

		if post.Images == nil {
			return nil
		}
		if err := tx.Model(&models.PostImage{}).
			Where("post_id = ? AND is_active = ?", post.ID, true).
			Update("is_active", false).Error; err != nil {
			return fmt.Errorf("retire post images: %w", err)
		}
		for i := range post.Images {
			post.Images[i].ID = 0
			post.Images[i].PostID = post.ID
			post.Images[i].Position = i
			post.Images[i].IsActive = true
		}
		if len(post.Images) > 0 {
			if err := tx.Create(&post.Images).Error; err != nil {
				return fmt.Errorf("create post images: %w", err)
			}
		}
		return nil
	})
}

func (r *postRepository) SoftDelete(ctx context.Context, id, actorID uint) error {
	now := time.Now()
	res := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ? AND is_active = ?", id, true).
		Updates(map[string]interface{}{
			"is_active":     false,
			"deleted_at":    now,
			"deleted_by_id": actorID,
		})
	if res.Error != nil {
		return fmt.Errorf("delete post: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Post", id)
	}
	return nil
}
