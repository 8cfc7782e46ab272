package database

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"bislerium/internal/config"
	"bislerium/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openMemory(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Every new connection would open a separate in-memory database.
	sqlDB.SetMaxOpenConns(1)
	return db
}

func TestConfigurePool(t *testing.T) {
	db := openMemory(t)

	cfg := &config.Config{
		DBMaxOpenConns:           10,
		DBMaxIdleConns:           5,
		DBConnMaxLifetimeMinutes: 15,
	}

	require.NoError(t, configurePool(db, cfg))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 10, sqlDB.Stats().MaxOpenConnections)
}

func TestMigrate_CreatesTablesAndReactionIndex(t *testing.T) {
	db := openMemory(t)
	require.NoError(t, Migrate(db))

	for _, model := range PersistentModels() {
		assert.True(t, db.Migrator().HasTable(model))
	}

	user := models.User{Username: "writer", Email: "w@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)

	first := models.Reaction{Kind: models.Upvote, AuthorID: user.ID, Target: models.PostTarget(1), PostID: 1, IsActive: true}
	require.NoError(t, db.Create(&first).Error)

	dup := models.Reaction{Kind: models.Downvote, AuthorID: user.ID, Target: models.PostTarget(1), PostID: 1, IsActive: true}
	assert.Error(t, db.Create(&dup).Error, "second active reaction on the same target must violate the index")

	require.NoError(t, db.Model(&first).Update("is_active", false).Error)
	assert.NoError(t, db.Create(&models.Reaction{Kind: models.Downvote, AuthorID: user.ID, Target: models.PostTarget(1), PostID: 1, IsActive: true}).Error)
}

func TestMigrate_IsIdempotent(t *testing.T) {
	db := openMemory(t)
	require.NoError(t, Migrate(db))
	assert.NoError(t, Migrate(db))
}

func TestPing(t *testing.T) {
	db := openMemory(t)
	assert.NoError(t, Ping(context.Background(), db))
}

func TestCustomGormLogger_Trace(t *testing.T) {
	var buf bytes.Buffer
	l := NewGormLogger(slog.New(slog.NewJSONHandler(&buf, nil)))

	sql := func() (string, int64) { return "SELECT 1", 1 }

	l.Trace(context.Background(), time.Now(), sql, gorm.ErrRecordNotFound)
	assert.Empty(t, buf.String(), "record not found is not logged")

	l.Trace(context.Background(), time.Now(), sql, errors.New("syntax error"))
	assert.Contains(t, buf.String(), "GORM query error")

	buf.Reset()
	l.Trace(context.Background(), time.Now().Add(-time.Second), sql, nil)
	assert.Contains(t, buf.String(), "GORM slow query")

	buf.Reset()
	l.LogMode(logger.Silent).Trace(context.Background(), time.Now(), sql, errors.New("ignored"))
	assert.Empty(t, buf.String())
}
