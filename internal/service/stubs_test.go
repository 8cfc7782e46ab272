package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"bislerium/internal/models"
	"bislerium/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	listActiveFn    func(context.Context, repository.PostFilter) ([]*models.Post, error)
	getActiveByIDFn func(context.Context, uint) (*models.Post, error)
	createFn        func(context.Context, *models.Post) error
	updateFn        func(context.Context, *models.Post) error
	softDeleteFn    func(context.Context, uint, uint) error
}

func (s *postRepoStub) ListActive(ctx context.Context, filter repository.PostFilter) ([]*models.Post, error) {
	return s.listActiveFn(ctx, filter)
}
func (s *postRepoStub) GetActiveByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getActiveByIDFn(ctx, id)
}
func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) SoftDelete(ctx context.Context, id, actorID uint) error {
	return s.softDeleteFn(ctx, id, actorID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		listActiveFn: func(context.Context, repository.PostFilter) ([]*models.Post, error) { return nil, nil },
		getActiveByIDFn: func(_ context.Context, id uint) (*models.Post, error) {
			return &models.Post{ID: id, IsActive: true}, nil
		},
		createFn:     func(context.Context, *models.Post) error { return nil },
		updateFn:     func(context.Context, *models.Post) error { return nil },
		softDeleteFn: func(context.Context, uint, uint) error { return nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	listActiveFn    func(context.Context, repository.CommentFilter) ([]*models.Comment, error)
	getActiveByIDFn func(context.Context, uint) (*models.Comment, error)
	createFn        func(context.Context, *models.Comment) error
	updateFn        func(context.Context, *models.Comment, uint) error
	softDeleteFn    func(context.Context, uint, uint) error
}

func (s *commentRepoStub) ListActive(ctx context.Context, filter repository.CommentFilter) ([]*models.Comment, error) {
	return s.listActiveFn(ctx, filter)
}
func (s *commentRepoStub) GetActiveByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getActiveByIDFn(ctx, id)
}
func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment, editorID uint) error {
	return s.updateFn(ctx, comment, editorID)
}
func (s *commentRepoStub) SoftDelete(ctx context.Context, id, actorID uint) error {
	return s.softDeleteFn(ctx, id, actorID)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		listActiveFn: func(context.Context, repository.CommentFilter) ([]*models.Comment, error) { return nil, nil },
		getActiveByIDFn: func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, IsActive: true}, nil
		},
		createFn:     func(context.Context, *models.Comment) error { return nil },
		updateFn:     func(context.Context, *models.Comment, uint) error { return nil },
		softDeleteFn: func(context.Context, uint, uint) error { return nil },
	}
}

// reactionRepoStub is a stub for repository.ReactionRepository.
type reactionRepoStub struct {
	listActiveFn func(context.Context, repository.ReactionFilter) ([]models.Reaction, error)
	replaceFn    func(context.Context, uint, models.Target, uint, models.ReactionKind) (*models.Reaction, error)
	withdrawFn   func(context.Context, uint, models.Target) (bool, error)
}

func (s *reactionRepoStub) ListActive(ctx context.Context, filter repository.ReactionFilter) ([]models.Reaction, error) {
	return s.listActiveFn(ctx, filter)
}
func (s *reactionRepoStub) Replace(ctx context.Context, authorID uint, target models.Target, postID uint, kind models.ReactionKind) (*models.Reaction, error) {
	return s.replaceFn(ctx, authorID, target, postID, kind)
}
func (s *reactionRepoStub) Withdraw(ctx context.Context, authorID uint, target models.Target) (bool, error) {
	return s.withdrawFn(ctx, authorID, target)
}

func noopReactionRepo() *reactionRepoStub {
	return &reactionRepoStub{
		listActiveFn: func(context.Context, repository.ReactionFilter) ([]models.Reaction, error) { return nil, nil },
		replaceFn: func(_ context.Context, authorID uint, target models.Target, postID uint, kind models.ReactionKind) (*models.Reaction, error) {
			return &models.Reaction{Kind: kind, AuthorID: authorID, Target: target, PostID: postID, IsActive: true}, nil
		},
		withdrawFn: func(context.Context, uint, models.Target) (bool, error) { return false, nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	listFn          func(context.Context) ([]models.User, error)
	createFn        func(context.Context, *models.User) error
	updateFn        func(context.Context, *models.User) error
	deleteCascadeFn func(context.Context, uint) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) List(ctx context.Context) ([]models.User, error) {
	return s.listFn(ctx)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) DeleteCascade(ctx context.Context, id uint) error {
	return s.deleteCascadeFn(ctx, id)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:       func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByEmailFn:    func(_ context.Context, email string) (*models.User, error) { return nil, models.NewNotFoundError("User", email) },
		getByUsernameFn: func(_ context.Context, name string) (*models.User, error) { return nil, models.NewNotFoundError("User", name) },
		listFn:          func(context.Context) ([]models.User, error) { return nil, nil },
		createFn:        func(context.Context, *models.User) error { return nil },
		updateFn:        func(context.Context, *models.User) error { return nil },
		deleteCascadeFn: func(context.Context, uint) error { return nil },
	}
}

func assertAppError(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}

// assertValidationError asserts that err is an AppError with code VALIDATION_ERROR.
func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppError(t, err, "VALIDATION_ERROR")
}

// assertUnauthorizedError asserts that err is an AppError with code UNAUTHORIZED.
func assertUnauthorizedError(t *testing.T, err error) {
	t.Helper()
	assertAppError(t, err, "UNAUTHORIZED")
}

func assertForbiddenError(t *testing.T, err error) {
	t.Helper()
	assertAppError(t, err, "FORBIDDEN")
}

func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	assertAppError(t, err, "NOT_FOUND")
}

func activePost(id, authorID uint, title string, created time.Time) *models.Post {
	return &models.Post{
		ID:        id,
		Title:     title,
		Body:      "body",
		AuthorID:  authorID,
		Author:    models.User{ID: authorID, Username: "user"},
		CreatedAt: created,
		IsActive:  true,
	}
}

func activeComment(id, postID uint, target models.Target, created time.Time) *models.Comment {
	return &models.Comment{
		ID:        id,
		Message:   "comment",
		AuthorID:  9,
		Target:    target,
		PostID:    postID,
		CreatedAt: created,
		IsActive:  true,
	}
}

func activeVote(authorID uint, target models.Target, postID uint, kind models.ReactionKind) models.Reaction {
	return models.Reaction{Kind: kind, AuthorID: authorID, Target: target, PostID: postID, IsActive: true}
}

func adminIf(ids ...uint) AdminCheck {
	return func(_ context.Context, userID uint) (bool, error) {
		for _, id := range ids {
			if id == userID {
				return true, nil
			}
		}
		return false, nil
	}
}
