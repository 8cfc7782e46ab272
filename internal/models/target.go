package models

import "fmt"

// TargetKind discriminates what a comment or reaction is attached to.
type TargetKind string

const (
	TargetPost    TargetKind = "post"
	TargetComment TargetKind = "comment"
)

// Target is the post or comment a comment or reaction is attached to.
// Exactly one kind is set; construct it with PostTarget or CommentTarget.
type Target struct {
	Kind TargetKind `gorm:"column:kind;type:varchar(16);not null" json:"kind"`
	ID   uint       `gorm:"column:id;not null" json:"id"`
}

// PostTarget returns a target pointing at a post.
func PostTarget(postID uint) Target {
	return Target{Kind: TargetPost, ID: postID}
}

// CommentTarget returns a target pointing at a comment.
func CommentTarget(commentID uint) Target {
	return Target{Kind: TargetComment, ID: commentID}
}

func (t Target) IsPost() bool    { return t.Kind == TargetPost }
func (t Target) IsComment() bool { return t.Kind == TargetComment }

// Validate checks the discriminator and the identifier.
func (t Target) Validate() error {
	switch t.Kind {
	case TargetPost, TargetComment:
	default:
		return NewValidationError(fmt.Sprintf("unknown target kind %q", t.Kind))
	}
	if t.ID == 0 {
		return NewValidationError("target id is required")
	}
	return nil
}

func (t Target) String() string {
	return fmt.Sprintf("%s:%d", t.Kind, t.ID)
}
