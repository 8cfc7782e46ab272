package models

import "time"

// Post represents a blog post. Posts are soft-deleted by clearing IsActive.
type Post struct {
	ID       uint        `gorm:"primaryKey" json:"id"`
	Title    string      `gorm:"not null" json:"title"`
	Body     string      `gorm:"type:text;not null" json:"body"`
	Location string      `json:"location"`
	Mood     string      `json:"mood"`
	AuthorID uint        `gorm:"not null;index" json:"author_id"`
	Author   User        `gorm:"foreignKey:AuthorID" json:"author"`
	Images   []PostImage `gorm:"foreignKey:PostID" json:"images,omitempty"`
	// UpdatedAt stays nil until the author edits the post.
	UpdatedAt   *time.Time `gorm:"autoUpdateTime:false" json:"updated_at,omitempty"`
	UpdatedByID *uint      `json:"-"`
	CreatedAt   time.Time  `gorm:"index" json:"created_at"`
	IsActive    bool       `gorm:"not null;default:true;index" json:"-"`
	DeletedAt   *time.Time `json:"-"`
	DeletedByID *uint      `json:"-"`
}

// IsEdited reports whether the post was updated after creation.
func (p *Post) IsEdited() bool {
	return p.UpdatedAt != nil
}

// ImagePaths returns the paths of the post's active images in stored order.
func (p *Post) ImagePaths() []string {
	paths := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		if img.IsActive {
			paths = append(paths, img.Path)
		}
	}
	return paths
}

// PostImage is an image path attached to a post. The bytes live in external storage.
type PostImage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	Path      string    `gorm:"not null" json:"path"`
	Position  int       `gorm:"not null;default:0" json:"position"`
	IsActive  bool      `gorm:"not null;default:true" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// PostLog keeps the previous content of a post each time it is edited.
type PostLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	Title     string    `json:"title"`
	Body      string    `gorm:"type:text" json:"body"`
	Location  string    `json:"location"`
	Mood      string    `json:"mood"`
	EditedBy  uint      `gorm:"not null" json:"edited_by"`
	CreatedAt time.Time `json:"created_at"`
}
