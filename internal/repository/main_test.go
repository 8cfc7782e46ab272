package repository

import (
	"context"
	"testing"
	"time"

	"bislerium/internal/database"
	"bislerium/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)

	return gormDB, mock
}

// setupSQLiteDB returns a migrated in-memory database.
func setupSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Discard,
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	return db
}

var baseTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func createUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	u := &models.User{Username: name, Email: name + "@example.com", Password: "hash"}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), u))
	return u
}

func createPost(t *testing.T, db *gorm.DB, author *models.User, title string, images ...string) *models.Post {
	t.Helper()
	p := &models.Post{Title: title, Body: "body of " + title, AuthorID: author.ID}
	for _, path := range images {
		p.Images = append(p.Images, models.PostImage{Path: path})
	}
	require.NoError(t, NewPostRepository(db).Create(context.Background(), p))
	return p
}

func createComment(t *testing.T, db *gorm.DB, author *models.User, target models.Target, postID uint, offset time.Duration) *models.Comment {
	t.Helper()
	c := &models.Comment{
		Message:   "comment",
		AuthorID:  author.ID,
		Target:    target,
		PostID:    postID,
		CreatedAt: baseTime.Add(offset),
	}
	require.NoError(t, NewCommentRepository(db).Create(context.Background(), c))
	return c
}
