package server

import (
	"bislerium/internal/models"
	"bislerium/internal/service"

	"github.com/gofiber/fiber/v2"
)

type commentRequest struct {
	Message string `json:"message"`
}

func parseCommentRequest(c *fiber.Ctx) (commentRequest, error) {
	var req commentRequest
	if err := c.BodyParser(&req); err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
		return req, errResponseWritten
	}
	return req, nil
}

// CreateComment handles POST /api/posts/:id/comments
// @Summary Comment on a post
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body commentRequest true "Comment"
// @Success 201 {object} models.Comment
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id}/comments [post]
func (s *Server) CreateComment(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	req, err := parseCommentRequest(c)
	if err != nil {
		return nil
	}

	created, err := s.commentService.AddComment(c.UserContext(), service.AddCommentInput{
		UserID:  viewerID(c),
		PostID:  postID,
		Message: req.Message,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// CreateReply handles POST /api/comments/:commentId/replies
// @Summary Reply to a comment
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param commentId path int true "Parent comment ID"
// @Param request body commentRequest true "Reply"
// @Success 201 {object} models.Comment
// @Failure 404 {object} models.ErrorResponse
// @Router /comments/{commentId}/replies [post]
func (s *Server) CreateReply(c *fiber.Ctx) error {
	parentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}
	req, err := parseCommentRequest(c)
	if err != nil {
		return nil
	}

	created, err := s.commentService.AddReply(c.UserContext(), service.AddReplyInput{
		UserID:          viewerID(c),
		ParentCommentID: parentID,
		Message:         req.Message,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// UpdateComment handles PATCH /api/comments/:commentId
// @Summary Edit a comment
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param commentId path int true "Comment ID"
// @Param request body commentRequest true "New message"
// @Success 200 {object} models.Comment
// @Failure 403 {object} models.ErrorResponse
// @Router /comments/{commentId} [patch]
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}
	req, err := parseCommentRequest(c)
	if err != nil {
		return nil
	}

	updated, err := s.commentService.UpdateComment(c.UserContext(), service.UpdateCommentInput{
		UserID:    viewerID(c),
		CommentID: commentID,
		Message:   req.Message,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(updated)
}

// DeleteComment handles DELETE /api/comments/:commentId
// @Summary Delete a comment
// @Tags comments
// @Security BearerAuth
// @Param commentId path int true "Comment ID"
// @Success 204
// @Failure 403 {object} models.ErrorResponse
// @Router /comments/{commentId} [delete]
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	if err := s.commentService.DeleteComment(c.UserContext(), service.DeleteCommentInput{
		UserID:    viewerID(c),
		CommentID: commentID,
	}); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
