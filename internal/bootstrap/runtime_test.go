package bootstrap

import (
	"context"
	"testing"

	"bislerium/internal/config"
	"bislerium/internal/database"
	"bislerium/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

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

func superAdminConfig() *config.Config {
	return &config.Config{
		BootstrapSuperAdmin: true,
		SuperAdminUsername:  "superadmin",
		SuperAdminEmail:     "SuperAdmin@SuperAdmin.com",
		SuperAdminPassword:  "Admin@123456",
	}
}

func TestEnsureSuperAdmin_Creates(t *testing.T) {
	db := setupSQLiteDB(t)
	ctx := context.Background()

	require.NoError(t, EnsureSuperAdmin(ctx, superAdminConfig(), db))
	// Second run is a no-op.
	require.NoError(t, EnsureSuperAdmin(ctx, superAdminConfig(), db))

	var admins []models.User
	require.NoError(t, db.Find(&admins).Error)
	require.Len(t, admins, 1)
	admin := admins[0]
	assert.Equal(t, "superadmin@superadmin.com", admin.Email)
	assert.Equal(t, "Super Admin", admin.FullName)
	assert.True(t, admin.IsAdmin())
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte("Admin@123456")))
}

func TestEnsureSuperAdmin_PromotesExisting(t *testing.T) {
	db := setupSQLiteDB(t)
	ctx := context.Background()
	require.NoError(t, db.Create(&models.User{
		Username: "owner",
		Email:    "superadmin@superadmin.com",
		Password: "hash",
		Role:     models.RoleBlogger,
	}).Error)

	require.NoError(t, EnsureSuperAdmin(ctx, superAdminConfig(), db))

	var u models.User
	require.NoError(t, db.Where("email = ?", "superadmin@superadmin.com").First(&u).Error)
	assert.True(t, u.IsAdmin())
	assert.Equal(t, "owner", u.Username)
}

func TestEnsureSuperAdmin_Disabled(t *testing.T) {
	db := setupSQLiteDB(t)
	cfg := superAdminConfig()
	cfg.BootstrapSuperAdmin = false

	require.NoError(t, EnsureSuperAdmin(context.Background(), cfg, db))

	var n int64
	require.NoError(t, db.Model(&models.User{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestEnsureSuperAdmin_RequiresPassword(t *testing.T) {
	cfg := superAdminConfig()
	cfg.SuperAdminPassword = ""
	assert.Error(t, EnsureSuperAdmin(context.Background(), cfg, setupSQLiteDB(t)))
}

func TestSeedIfEmpty_SkipsPopulatedDatabase(t *testing.T) {
	db := setupSQLiteDB(t)
	ctx := context.Background()
	author := &models.User{Username: "a", Email: "a@example.com", Password: "hash"}
	require.NoError(t, db.Create(author).Error)
	require.NoError(t, db.Create(&models.Post{Title: "t", Body: "b", AuthorID: author.ID, IsActive: true}).Error)

	require.NoError(t, seedIfEmpty(ctx, db))

	var users int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	assert.EqualValues(t, 1, users)
}
