package models

import "time"

// Comment is either attached to a post (top-level) or to another comment (a reply).
// PostID always holds the root post of the thread so a thread loads in one query.
type Comment struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Message     string     `gorm:"type:text;not null" json:"message"`
	AuthorID    uint       `gorm:"not null;index" json:"author_id"`
	Author      User       `gorm:"foreignKey:AuthorID" json:"author"`
	Target      Target     `gorm:"embedded;embeddedPrefix:target_" json:"target"`
	PostID      uint       `gorm:"not null;index" json:"post_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `gorm:"autoUpdateTime:false" json:"updated_at,omitempty"`
	IsActive    bool       `gorm:"not null;default:true;index" json:"-"`
	DeletedAt   *time.Time `json:"-"`
	DeletedByID *uint      `json:"-"`
}

// IsTopLevel reports whether the comment is attached directly to a post.
func (c *Comment) IsTopLevel() bool {
	return c.Target.IsPost()
}

// IsEdited reports whether the comment was updated after creation.
func (c *Comment) IsEdited() bool {
	return c.UpdatedAt != nil
}

// CommentLog keeps the previous message of a comment each time it is edited.
type CommentLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CommentID uint      `gorm:"not null;index" json:"comment_id"`
	Message   string    `gorm:"type:text" json:"message"`
	EditedBy  uint      `gorm:"not null" json:"edited_by"`
	CreatedAt time.Time `json:"created_at"`
}
