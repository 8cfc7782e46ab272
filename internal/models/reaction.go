package models

import (
	"fmt"
	"strings"
	"time"
)

// ReactionKind is the direction of a vote.
type ReactionKind string

const (
	Upvote   ReactionKind = "upvote"
	Downvote ReactionKind = "downvote"
)

// ParseReactionKind accepts "upvote"/"downvote" and the short forms "up"/"down".
func ParseReactionKind(raw string) (ReactionKind, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "upvote", "up":
		return Upvote, nil
	case "downvote", "down":
		return Downvote, nil
	}
	return "", NewValidationError(fmt.Sprintf("unknown reaction kind %q", raw))
}

// Reaction is a single vote by an author on a post or a comment.
// At most one reaction per (author, target) is active. The store backs this with
// the partial unique index created by database.EnsureIndexes.
type Reaction struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	Kind      ReactionKind `gorm:"type:varchar(16);not null" json:"kind"`
	AuthorID  uint         `gorm:"not null;index" json:"author_id"`
	Target    Target       `gorm:"embedded;embeddedPrefix:target_" json:"target"`
	PostID    uint         `gorm:"not null;index" json:"post_id"`
	CreatedAt time.Time    `json:"created_at"`
	IsActive  bool         `gorm:"not null;default:true;index" json:"-"`
	DeletedAt *time.Time   `json:"-"`
}
