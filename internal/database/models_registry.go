package database

import "bislerium/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Post{},
		&models.PostImage{},
		&models.PostLog{},
		&models.Comment{},
		&models.CommentLog{},
		&models.Reaction{},
	}
}
