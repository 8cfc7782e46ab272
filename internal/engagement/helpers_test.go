package engagement

import (
	"time"

	"bislerium/internal/models"
)

var t0 = time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC)

func newPost(id, authorID uint, created time.Time) *models.Post {
	return &models.Post{
		ID:        id,
		Title:     "post",
		AuthorID:  authorID,
		Author:    models.User{ID: authorID, Username: "user"},
		CreatedAt: created,
		IsActive:  true,
	}
}

func topLevel(id, postID uint, created time.Time) *models.Comment {
	return &models.Comment{ID: id, Message: "top", Target: models.PostTarget(postID), PostID: postID, CreatedAt: created, IsActive: true}
}

func reply(id, parentID, postID uint, created time.Time) *models.Comment {
	return &models.Comment{ID: id, Message: "reply", Target: models.CommentTarget(parentID), PostID: postID, CreatedAt: created, IsActive: true}
}

func vote(authorID uint, target models.Target, postID uint, kind models.ReactionKind) models.Reaction {
	return models.Reaction{Kind: kind, AuthorID: authorID, Target: target, PostID: postID, IsActive: true}
}

func upvotes(n int, target models.Target, postID uint) []models.Reaction {
	out := make([]models.Reaction, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, vote(uint(100+i), target, postID, models.Upvote))
	}
	return out
}
