// Package models contains data structures for the application's domain models.
package models

import "time"

// Role names a user's permission level.
type Role string

const (
	RoleBlogger Role = "blogger"
	RoleAdmin   Role = "admin"
)

// DefaultImagePath is shown for authors without a profile image.
const DefaultImagePath = "Sample.svg"

// UnknownAuthor is shown when an author record is missing.
const UnknownAuthor = "Unknown"

// User represents a blog author. Read-only from the engagement engine's perspective.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	FullName  string    `json:"full_name"`
	ImagePath string    `json:"image_path"`
	Role      Role      `gorm:"type:varchar(16);not null;default:blogger" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// DisplayName falls back to the username when no full name is set.
func (u *User) DisplayName() string {
	if u == nil {
		return UnknownAuthor
	}
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}

// Avatar returns the user's image path or the default placeholder.
func (u *User) Avatar() string {
	if u == nil || u.ImagePath == "" {
		return DefaultImagePath
	}
	return u.ImagePath
}
