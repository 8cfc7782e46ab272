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

func TestPostRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	post := &models.Post{Title: "Test Post", Body: "Content", AuthorID: 1}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "posts"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "is_active"}).AddRow(1, true))
	mock.ExpectCommit()

	err := repo.Create(ctx, post)
	assert.NoError(t, err)
	assert.Equal(t, uint(1), post.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_SoftDelete(t *testing.T) {
	tests := []struct {
		name         string
		rowsAffected int64
		execErr      error
		wantCode     string
		wantErr      bool
	}{
		{name: "Success", rowsAffected: 1},
		{name: "Already deleted", rowsAffected: 0, wantErr: true, wantCode: models.CodeNotFound},
		{name: "Store failure", execErr: errors.New("connection reset"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupMockDB(t)
			repo := NewPostRepository(db)

			mock.ExpectBegin()
			exec := mock.ExpectExec(regexp.QuoteMeta(`UPDATE "posts" SET`))
			if tt.execErr != nil {
				exec.WillReturnError(tt.execErr)
				mock.ExpectRollback()
			} else {
				exec.WillReturnResult(sqlmock.NewResult(0, tt.rowsAffected))
				mock.ExpectCommit()
			}

			err := repo.SoftDelete(context.Background(), 5, 9)
			if !tt.wantErr {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				if tt.wantCode != "" {
					assert.True(t, models.HasCode(err, tt.wantCode))
				}
				if tt.execErr != nil {
					assert.ErrorIs(t, err, tt.execErr)
				}
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostRepository_ListActive_FiltersAndOrders(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	p1 := createPost(t, db, alice, "first", "a.png", "b.png")
	p2 := createPost(t, db, bob, "second")
	p3 := createPost(t, db, alice, "third")
	require.NoError(t, repo.SoftDelete(ctx, p3.ID, alice.ID))

	all, err := repo.ListActive(ctx, PostFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, p1.ID, all[0].ID)
	assert.Equal(t, p2.ID, all[1].ID)
	assert.Equal(t, "alice", all[0].Author.Username)
	assert.Equal(t, []string{"a.png", "b.png"}, all[0].ImagePaths())

	mine, err := repo.ListActive(ctx, PostFilter{AuthorID: bob.ID})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, p2.ID, mine[0].ID)

	_, err = repo.GetActiveByID(ctx, p3.ID)
	assert.True(t, models.HasCode(err, models.CodeNotFound))
}

func TestPostRepository_Update_WritesLogAndReplacesImages(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	post := createPost(t, db, alice, "draft", "old.png")

	editor := alice.ID
	err := repo.Update(ctx, &models.Post{
		ID:          post.ID,
		Title:       "final",
		Body:        "new body",
		UpdatedByID: &editor,
		Images:      []models.PostImage{{Path: "new.png"}},
	})
	require.NoError(t, err)

	got, err := repo.GetActiveByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "final", got.Title)
	assert.True(t, got.IsEdited())
	assert.Equal(t, []string{"new.png"}, got.ImagePaths())

	var logs []models.PostLog
	require.NoError(t, db.Where("post_id = ?", post.ID).Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, "draft", logs[0].Title)
	assert.Equal(t, alice.ID, logs[0].EditedBy)

	err = repo.Update(ctx, &models.Post{ID: 999, Title: "x", Body: "y"})
	assert.True(t, models.HasCode(err, models.CodeNotFound))
}
