// Package repository implements the engagement store accessor on GORM.
package repository

import (
	"errors"
	"fmt"

	"bislerium/internal/models"

	"gorm.io/gorm"
)

// notFoundOr maps a missing row to a NotFound AppError and wraps anything else.
func notFoundOr(err error, resource string, id uint, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError(resource, id)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// isPostgres reports whether row locks can be requested on db.
func isPostgres(db *gorm.DB) bool {
	return db.Dialector != nil && db.Dialector.Name() == "postgres"
}
