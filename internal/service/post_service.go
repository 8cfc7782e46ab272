package service

import (
	"context"
	"strings"

	"bislerium/internal/models"
	"bislerium/internal/repository"
	"bislerium/internal/validation"
)

type PostService struct {
	postRepo repository.PostRepository
	isAdmin  AdminCheck
}

type CreatePostInput struct {
	UserID   uint
	Title    string
	Body     string
	Location string
	Mood     string
	Images   []string
}

// UpdatePostInput leaves blank fields unchanged. A nil Images keeps the
// current images; an empty slice removes them.
type UpdatePostInput struct {
	UserID   uint
	PostID   uint
	Title    string
	Body     string
	Location string
	Mood     string
	Images   []string
}

type DeletePostInput struct {
	UserID uint
	PostID uint
}

func NewPostService(postRepo repository.PostRepository, isAdmin AdminCheck) *PostService {
	return &PostService{postRepo: postRepo, isAdmin: isAdmin}
}

func imageRecords(paths []string) []models.PostImage {
	if paths == nil {
		return nil
	}
	out := make([]models.PostImage, 0, len(paths))
	for _, p := range paths {
		out = append(out, models.PostImage{Path: strings.TrimSpace(p)})
	}
	return out
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if err := requireViewer(in.UserID); err != nil {
		return nil, err
	}
	title := strings.TrimSpace(in.Title)
	if err := validation.ValidatePostContent(title, in.Body, in.Location, in.Mood, in.Images); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	post := &models.Post{
		Title:    title,
		Body:     in.Body,
		Location: strings.TrimSpace(in.Location),
		Mood:     strings.TrimSpace(in.Mood),
		AuthorID: in.UserID,
		Images:   imageRecords(in.Images),
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, logFailure(ctx, "post.CreatePost", err)
	}
	return s.postRepo.GetActiveByID(ctx, post.ID)
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	if err := requireViewer(in.UserID); err != nil {
		return nil, err
	}
	post, err := s.postRepo.GetActiveByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != in.UserID {
		return nil, models.NewForbiddenError("You can only update your own posts")
	}

	if t := strings.TrimSpace(in.Title); t != "" {
		post.Title = t
	}
	if in.Body != "" {
		post.Body = in.Body
	}
	if in.Location != "" {
		post.Location = strings.TrimSpace(in.Location)
	}
	if in.Mood != "" {
		post.Mood = strings.TrimSpace(in.Mood)
	}
	images := post.ImagePaths()
	if in.Images != nil {
		images = in.Images
	}
	if err := validation.ValidatePostContent(post.Title, post.Body, post.Location, post.Mood, images); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	editor := in.UserID
	post.UpdatedByID = &editor
	post.Images = imageRecords(in.Images)
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, logFailure(ctx, "post.UpdatePost", err)
	}
	return s.postRepo.GetActiveByID(ctx, post.ID)
}

// DeletePost soft-deletes a post. Admins may delete any post.
func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	if err := requireViewer(in.UserID); err != nil {
		return err
	}
	post, err := s.postRepo.GetActiveByID(ctx, in.PostID)
	if err != nil {
		return err
	}
	allowed, err := canModerate(ctx, s.isAdmin, post.AuthorID, in.UserID)
	if err != nil {
		return logFailure(ctx, "post.DeletePost", err)
	}
	if !allowed {
		return models.NewForbiddenError("You can only delete your own posts")
	}
	return logFailure(ctx, "post.DeletePost", s.postRepo.SoftDelete(ctx, post.ID, in.UserID))
}
