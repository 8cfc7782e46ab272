package validation

import (
	"fmt"
	"strings"
)

const (
	MaxTitleLen     = 300
	MaxBodyLen      = 50000
	MaxTagLen       = 100
	MaxCommentLen   = 10000
	MaxPostImages   = 3
	maxImagePathLen = 512
)

// ValidatePostContent checks a post's title, body, location and mood tags and image paths.
func ValidatePostContent(title, body, location, mood string, images []string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("title is required")
	}
	if len(title) > MaxTitleLen {
		return fmt.Errorf("title too long (max %d characters)", MaxTitleLen)
	}
	if strings.TrimSpace(body) == "" {
		return fmt.Errorf("body is required")
	}
	if len(body) > MaxBodyLen {
		return fmt.Errorf("body too long (max %d characters)", MaxBodyLen)
	}
	if len(location) > MaxTagLen || len(mood) > MaxTagLen {
		return fmt.Errorf("location and mood must not exceed %d characters", MaxTagLen)
	}
	if len(images) > MaxPostImages {
		return fmt.Errorf("a post can have at most %d images", MaxPostImages)
	}
	for _, path := range images {
		if strings.TrimSpace(path) == "" || len(path) > maxImagePathLen {
			return fmt.Errorf("invalid image path %q", path)
		}
	}
	return nil
}

// ValidateCommentMessage checks a comment or reply body.
func ValidateCommentMessage(message string) error {
	if strings.TrimSpace(message) == "" {
		return fmt.Errorf("message is required")
	}
	if len(message) > MaxCommentLen {
		return fmt.Errorf("comment too long (max %d characters)", MaxCommentLen)
	}
	return nil
}
