package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"bislerium/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countReactions(t *testing.T, repo ReactionRepository, authorID uint, target models.Target) int {
	t.Helper()
	active, err := repo.ListActive(context.Background(), ReactionFilter{Target: &target, AuthorID: authorID})
	require.NoError(t, err)
	return len(active)
}

func TestReactionRepository_ReplaceKeepsOneActive(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewReactionRepository(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	post := createPost(t, db, alice, "one")
	target := models.PostTarget(post.ID)

	_, err := repo.Replace(ctx, alice.ID, target, post.ID, models.Upvote)
	require.NoError(t, err)
	_, err = repo.Replace(ctx, alice.ID, target, post.ID, models.Upvote)
	require.NoError(t, err)

	assert.Equal(t, 1, countReactions(t, repo, alice.ID, target))

	var total int64
	require.NoError(t, db.Model(&models.Reaction{}).Count(&total).Error)
	assert.Equal(t, int64(2), total, "same-kind vote still inserts a new row")

	last, err := repo.Replace(ctx, alice.ID, target, post.ID, models.Downvote)
	require.NoError(t, err)

	active, err := repo.ListActive(ctx, ReactionFilter{Target: &target})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, last.ID, active[0].ID)
	assert.Equal(t, models.Downvote, active[0].Kind)
}

func TestReactionRepository_ReplaceIsScopedToTarget(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewReactionRepository(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	post := createPost(t, db, alice, "one")
	c := createComment(t, db, alice, models.PostTarget(post.ID), post.ID, 0)

	_, err := repo.Replace(ctx, alice.ID, models.PostTarget(post.ID), post.ID, models.Upvote)
	require.NoError(t, err)
	_, err = repo.Replace(ctx, alice.ID, models.CommentTarget(c.ID), post.ID, models.Downvote)
	require.NoError(t, err)

	thread, err := repo.ListActive(ctx, ReactionFilter{PostIDs: []uint{post.ID}})
	require.NoError(t, err)
	assert.Len(t, thread, 2)

	none, err := repo.ListActive(ctx, ReactionFilter{PostIDs: []uint{}})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestReactionRepository_Withdraw(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewReactionRepository(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	post := createPost(t, db, alice, "one")
	target := models.PostTarget(post.ID)

	withdrawn, err := repo.Withdraw(ctx, alice.ID, target)
	require.NoError(t, err)
	assert.False(t, withdrawn)

	_, err = repo.Replace(ctx, alice.ID, target, post.ID, models.Upvote)
	require.NoError(t, err)

	withdrawn, err = repo.Withdraw(ctx, alice.ID, target)
	require.NoError(t, err)
	assert.True(t, withdrawn)
	assert.Equal(t, 0, countReactions(t, repo, alice.ID, target))
}

func TestReactionRepository_ReplaceRejectsInvalidTarget(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewReactionRepository(db)

	_, err := repo.Replace(context.Background(), 1, models.Target{Kind: "blog", ID: 1}, 1, models.Upvote)
	assert.True(t, models.HasCode(err, models.CodeValidation))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReactionRepository_ReplaceLocksOnPostgres(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewReactionRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM "reactions" WHERE`) + `.*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "reactions" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "reactions"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "is_active"}).AddRow(8, true))
	mock.ExpectCommit()

	r, err := repo.Replace(context.Background(), 3, models.PostTarget(4), 4, models.Upvote)
	require.NoError(t, err)
	assert.Equal(t, uint(8), r.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReactionRepository_ReplaceRollsBackOnInsertFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewReactionRepository(db)
	boom := errors.New("disk full")

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM "reactions" WHERE`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "reactions"`)).
		WillReturnError(boom)
	mock.ExpectRollback()

	_, err := repo.Replace(context.Background(), 3, models.PostTarget(4), 4, models.Upvote)
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}
