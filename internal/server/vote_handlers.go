package server

import (
	"bislerium/internal/models"
	"bislerium/internal/service"

	"github.com/gofiber/fiber/v2"
)

type voteRequest struct {
	Kind string `json:"kind" example:"upvote"`
}

func (s *Server) castVote(c *fiber.Ctx, kind models.TargetKind, param string) error {
	id, err := s.parseID(c, param)
	if err != nil {
		return nil
	}
	var req voteRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	summary, err := s.voteService.CastVote(c.UserContext(), service.CastVoteInput{
		ViewerID: viewerID(c),
		Target:   models.Target{Kind: kind, ID: id},
		Kind:     req.Kind,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

func (s *Server) withdrawVote(c *fiber.Ctx, kind models.TargetKind, param string) error {
	id, err := s.parseID(c, param)
	if err != nil {
		return nil
	}

	summary, err := s.voteService.WithdrawVote(c.UserContext(), service.WithdrawVoteInput{
		ViewerID: viewerID(c),
		Target:   models.Target{Kind: kind, ID: id},
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

// CastPostVote handles POST /api/posts/:id/votes
// @Summary Vote on a post
// @Description Replaces any earlier vote by the caller on the same post
// @Tags votes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body voteRequest true "upvote or downvote"
// @Success 200 {object} engagement.VoteSummary
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id}/votes [post]
func (s *Server) CastPostVote(c *fiber.Ctx) error {
	return s.castVote(c, models.TargetPost, "id")
}

// WithdrawPostVote handles DELETE /api/posts/:id/votes
// @Summary Withdraw a post vote
// @Tags votes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} engagement.VoteSummary
// @Router /posts/{id}/votes [delete]
func (s *Server) WithdrawPostVote(c *fiber.Ctx) error {
	return s.withdrawVote(c, models.TargetPost, "id")
}

// CastCommentVote handles POST /api/comments/:commentId/votes
// @Summary Vote on a comment
// @Tags votes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param commentId path int true "Comment ID"
// @Param request body voteRequest true "upvote or downvote"
// @Success 200 {object} engagement.VoteSummary
// @Router /comments/{commentId}/votes [post]
func (s *Server) CastCommentVote(c *fiber.Ctx) error {
	return s.castVote(c, models.TargetComment, "commentId")
}

// WithdrawCommentVote handles DELETE /api/comments/:commentId/votes
// @Summary Withdraw a comment vote
// @Tags votes
// @Produce json
// @Security BearerAuth
// @Param commentId path int true "Comment ID"
// @Success 200 {object} engagement.VoteSummary
// @Router /comments/{commentId}/votes [delete]
func (s *Server) WithdrawCommentVote(c *fiber.Ctx) error {
	return s.withdrawVote(c, models.TargetComment, "commentId")
}
