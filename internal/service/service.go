// Package service orchestrates request-scoped work: it loads a snapshot
// through the repositories and hands it to the engagement core.
package service

import (
	"context"
	"errors"
	"log/slog"

	"bislerium/internal/middleware"
	"bislerium/internal/models"
)

// AdminCheck reports whether userID may moderate other users' content.
type AdminCheck func(ctx context.Context, userID uint) (bool, error)

func requireViewer(viewerID uint) error {
	if viewerID == 0 {
		return models.NewUnauthorizedError("Authentication required")
	}
	return nil
}

// logFailure logs store failures. AppErrors are expected outcomes and pass through silently.
func logFailure(ctx context.Context, op string, err error) error {
	var appErr *models.AppError
	if err != nil && !errors.As(err, &appErr) {
		middleware.Logger.ErrorContext(ctx, "service operation failed",
			slog.String("operation", op),
			slog.String("error", err.Error()),
		)
	}
	return err
}

// canModerate allows the owner, or an admin when isAdmin is set.
func canModerate(ctx context.Context, isAdmin AdminCheck, ownerID, viewerID uint) (bool, error) {
	if ownerID == viewerID {
		return true, nil
	}
	if isAdmin == nil {
		return false, nil
	}
	return isAdmin(ctx, viewerID)
}

func postIDs(posts []*models.Post) []uint {
	ids := make([]uint, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	return ids
}
