package service

import (
	"context"

	"bislerium/internal/models"
	"bislerium/internal/repository"
	"bislerium/internal/validation"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	isAdmin     AdminCheck
}

type AddCommentInput struct {
	UserID  uint
	PostID  uint
	Message string
}

type AddReplyInput struct {
	UserID          uint
	ParentCommentID uint
	Message         string
}

type UpdateCommentInput struct {
	UserID    uint
	CommentID uint
	Message   string
}

type DeleteCommentInput struct {
	UserID    uint
	CommentID uint
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	isAdmin AdminCheck,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		isAdmin:     isAdmin,
	}
}

func (s *CommentService) create(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, logFailure(ctx, "comment.Create", err)
	}
	return s.commentRepo.GetActiveByID(ctx, comment.ID)
}

// AddComment attaches a top-level comment to an active post.
func (s *CommentService) AddComment(ctx context.Context, in AddCommentInput) (*models.Comment, error) {
	if err := requireViewer(in.UserID); err != nil {
		return nil, err
	}
	if err := validation.ValidateCommentMessage(in.Message); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if _, err := s.postRepo.GetActiveByID(ctx, in.PostID); err != nil {
		return nil, err
	}

	return s.create(ctx, &models.Comment{
		Message:  in.Message,
		AuthorID: in.UserID,
		Target:   models.PostTarget(in.PostID),
		PostID:   in.PostID,
	})
}

// AddReply attaches a reply to an active comment of an active post. The
// reply joins the parent's thread.
func (s *CommentService) AddReply(ctx context.Context, in AddReplyInput) (*models.Comment, error) {
	if err := requireViewer(in.UserID); err != nil {
		return nil, err
	}
	if err := validation.ValidateCommentMessage(in.Message); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	parent, err := s.commentRepo.GetActiveByID(ctx, in.ParentCommentID)
	if err != nil {
		return nil, err
	}
	if _, err := s.postRepo.GetActiveByID(ctx, parent.PostID); err != nil {
		return nil, err
	}

	return s.create(ctx, &models.Comment{
		Message:  in.Message,
		AuthorID: in.UserID,
		Target:   models.CommentTarget(parent.ID),
		PostID:   parent.PostID,
	})
}

func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	if err := requireViewer(in.UserID); err != nil {
		return nil, err
	}
	comment, err := s.commentRepo.GetActiveByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != in.UserID {
		return nil, models.NewForbiddenError("You can only update your own comments")
	}
	if err := validation.ValidateCommentMessage(in.Message); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	comment.Message = in.Message
	if err := s.commentRepo.Update(ctx, comment, in.UserID); err != nil {
		return nil, logFailure(ctx, "comment.UpdateComment", err)
	}
	return s.commentRepo.GetActiveByID(ctx, comment.ID)
}

// DeleteComment soft-deletes a comment. Its replies stay stored but drop out of the thread.
func (s *CommentService) DeleteComment(ctx context.Context, in DeleteCommentInput) error {
	if err := requireViewer(in.UserID); err != nil {
		return err
	}
	comment, err := s.commentRepo.GetActiveByID(ctx, in.CommentID)
	if err != nil {
		return err
	}
	allowed, err := canModerate(ctx, s.isAdmin, comment.AuthorID, in.UserID)
	if err != nil {
		return logFailure(ctx, "comment.DeleteComment", err)
	}
	if !allowed {
		return models.NewForbiddenError("You can only delete your own comments")
	}
	return logFailure(ctx, "comment.DeleteComment", s.commentRepo.SoftDelete(ctx, comment.ID, in.UserID))
}
