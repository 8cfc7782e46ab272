package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bislerium/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// replaceAttempts bounds retries when a concurrent vote by the same author wins the unique index.
const replaceAttempts = 3

// ReactionFilter narrows ListActive. Zero values mean no restriction.
type ReactionFilter struct {
	Target   *models.Target
	PostIDs  []uint
	AuthorID uint
}

// ReactionRepository stores votes. Replace keeps at most one active reaction
// per author and target.
type ReactionRepository interface {
	ListActive(ctx context.Context, filter ReactionFilter) ([]models.Reaction, error)
	Replace(ctx context.Context, authorID uint, target models.Target, postID uint, kind models.ReactionKind) (*models.Reaction, error)
	Withdraw(ctx context.Context, authorID uint, target models.Target) (bool, error)
}

type reactionRepository struct {
	db *gorm.DB
}

// NewReactionRepository creates a new ReactionRepository
func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

func (r *reactionRepository) ListActive(ctx context.Context, filter ReactionFilter) ([]models.Reaction, error) {
	q := r.db.WithContext(ctx).Where("is_active = ?", true)
	if filter.Target != nil {
		q = q.Where("target_kind = ? AND target_id = ?", filter.Target.Kind, filter.Target.ID)
	}
	if filter.PostIDs != nil {
		if len(filter.PostIDs) == 0 {
			return []models.Reaction{}, nil
		}
		q = q.Where("post_id IN ?", filter.PostIDs)
	}
	if filter.AuthorID != 0 {
		q = q.Where("author_id = ?", filter.AuthorID)
	}

	var reactions []models.Reaction
	if err := q.Order("id ASC").Find(&reactions).Error; err != nil {
		return nil, fmt.Errorf("list reactions: %w", err)
	}
	return reactions, nil
}

func activeVote(tx *gorm.DB, authorID uint, target models.Target) *gorm.DB {
	return tx.Model(&models.Reaction{}).Where(
		"author_id = ? AND target_kind = ? AND target_id = ? AND is_active = ?",
		authorID, target.Kind, target.ID, true,
	)
}

// Replace deactivates the author's active reaction on target and inserts a new
// one in a single transaction. Voting the same kind twice still inserts a row.
func (r *reactionRepository) Replace(ctx context.Context, authorID uint, target models.Target, postID uint, kind models.ReactionKind) (*models.Reaction, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}

	var (
		reaction *models.Reaction
		err      error
	)
	for attempt := 0; attempt < replaceAttempts; attempt++ {
		reaction, err = r.replaceOnce(ctx, authorID, target, postID, kind)
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("replace reaction: %w", err)
	}
	return reaction, nil
}

func (r *reactionRepository) replaceOnce(ctx context.Context, authorID uint, target models.Target, postID uint, kind models.ReactionKind) (*models.Reaction, error) {
	reaction := &models.Reaction{
		Kind:     kind,
		AuthorID: authorID,
		Target:   target,
		PostID:   postID,
		IsActive: true,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := activeVote(tx, authorID, target)
		if isPostgres(tx) {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var ids []uint
		if err := q.Pluck("id", &ids).Error; err != nil {
			return err
		}

		if len(ids) > 0 {
			err := tx.Model(&models.Reaction{}).Where("id IN ?", ids).Updates(map[string]interface{}{
				"is_active":  false,
				"deleted_at": time.Now(),
			}).Error
			if err != nil {
				return err
			}
		}
		return tx.Create(reaction).Error
	})
	if err != nil {
		return nil, err
	}
	return reaction, nil
}

// Withdraw deactivates the author's active reaction on target. It reports
// whether a vote was active.
func (r *reactionRepository) Withdraw(ctx context.Context, authorID uint, target models.Target) (bool, error) {
	if err := target.Validate(); err != nil {
		return false, err
	}
	res := activeVote(r.db.WithContext(ctx), authorID, target).Updates(map[string]interface{}{
		"is_active":  false,
		"deleted_at": time.Now(),
	})
	if res.Error != nil {
		return false, fmt.Errorf("withdraw reaction: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}
