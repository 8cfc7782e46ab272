// Package bootstrap wires the database, cache and first-run data for the binaries in cmd/.
package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"bislerium/internal/cache"
	"bislerium/internal/config"
	"bislerium/internal/database"
	"bislerium/internal/middleware"
	"bislerium/internal/models"
	"bislerium/internal/repository"
	"bislerium/internal/seed"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// Seed fills an empty database with demo content.
	Seed bool
}

// InitRuntime connects to DB and Redis, ensures the super admin exists and optionally seeds.
func InitRuntime(ctx context.Context, cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	// May leave a nil client when Redis is unreachable.
	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if err := EnsureSuperAdmin(ctx, cfg, db); err != nil {
		return nil, nil, fmt.Errorf("failed to bootstrap super admin: %w", err)
	}

	if opts.Seed {
		if err := seedIfEmpty(ctx, db); err != nil {
			return nil, nil, fmt.Errorf("failed to seed demo content: %w", err)
		}
	}

	return db, r, nil
}

// EnsureSuperAdmin creates the configured admin account when no user holds its email.
// An existing account with that email is promoted to admin.
func EnsureSuperAdmin(ctx context.Context, cfg *config.Config, db *gorm.DB) error {
	if cfg == nil || db == nil || !cfg.BootstrapSuperAdmin {
		return nil
	}

	email := strings.TrimSpace(strings.ToLower(cfg.SuperAdminEmail))
	username := strings.TrimSpace(cfg.SuperAdminUsername)
	if username == "" {
		username = "superadmin"
	}
	if cfg.SuperAdminPassword == "" {
		return fmt.Errorf("SUPERADMIN_PASSWORD must be set when BOOTSTRAP_SUPERADMIN is enabled")
	}

	users := repository.NewUserRepository(db)
	existing, err := users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.IsAdmin() {
			return nil
		}
		existing.Role = models.RoleAdmin
		if err := users.Update(ctx, existing); err != nil {
			return err
		}
		middleware.Logger.Info("promoted existing account to admin", "email", email)
		return nil
	case !models.HasCode(err, models.CodeNotFound):
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.SuperAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash super admin password: %w", err)
	}
	admin := &models.User{
		Username: username,
		Email:    email,
		Password: string(hashed),
		FullName: "Super Admin",
		Role:     models.RoleAdmin,
	}
	if err := users.Create(ctx, admin); err != nil {
		return err
	}

	middleware.Logger.Info("super admin bootstrap ensured", "user_id", admin.ID, "email", email)
	return nil
}

func seedIfEmpty(ctx context.Context, db *gorm.DB) error {
	var posts int64
	if err := db.WithContext(ctx).Model(&models.Post{}).Count(&posts).Error; err != nil {
		return err
	}
	if posts > 0 {
		middleware.Logger.Info("database already has posts, skipping seed", "posts", posts)
		return nil
	}

	opts := seed.DefaultOptions()
	opts.Clean = false
	s, err := seed.NewSeeder(db, opts)
	if err != nil {
		return err
	}
	_, err = s.Run(ctx)
	return err
}
