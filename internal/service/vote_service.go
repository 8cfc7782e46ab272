package service

import (
	"context"

	"bislerium/internal/engagement"
	"bislerium/internal/models"
	"bislerium/internal/observability"
	"bislerium/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

type VoteService struct {
	reactions repository.ReactionRepository
	posts     repository.PostRepository
	comments  repository.CommentRepository
}

type CastVoteInput struct {
	ViewerID uint
	Target   models.Target
	Kind     string
}

type WithdrawVoteInput struct {
	ViewerID uint
	Target   models.Target
}

func NewVoteService(
	reactions repository.ReactionRepository,
	posts repository.PostRepository,
	comments repository.CommentRepository,
) *VoteService {
	return &VoteService{reactions: reactions, posts: posts, comments: comments}
}

// threadOf returns the root post of an active target. A comment counts as
// active only while its root post is.
func (s *VoteService) threadOf(ctx context.Context, target models.Target) (uint, error) {
	postID := target.ID
	if target.IsComment() {
		comment, err := s.comments.GetActiveByID(ctx, target.ID)
		if err != nil {
			return 0, err
		}
		postID = comment.PostID
	}
	post, err := s.posts.GetActiveByID(ctx, postID)
	if err != nil {
		return 0, err
	}
	return post.ID, nil
}

func (s *VoteService) summary(ctx context.Context, target models.Target, viewerID uint) (*engagement.VoteSummary, error) {
	reactions, err := s.reactions.ListActive(ctx, repository.ReactionFilter{Target: &target})
	if err != nil {
		return nil, err
	}
	v := engagement.Tally(reactions, target, viewerID)
	return &v, nil
}

// CastVote replaces the viewer's vote on the target and returns the new tally.
func (s *VoteService) CastVote(ctx context.Context, in CastVoteInput) (v *engagement.VoteSummary, err error) {
	const op = "vote.CastVote"
	span, ctx := observability.NewSpan(ctx, op,
		attribute.String("target", in.Target.String()),
		attribute.String("vote.kind", in.Kind),
	)
	defer func() { span.End(err) }()

	if err := requireViewer(in.ViewerID); err != nil {
		return nil, err
	}
	kind, err := models.ParseReactionKind(in.Kind)
	if err != nil {
		return nil, err
	}
	if err := in.Target.Validate(); err != nil {
		return nil, err
	}
	postID, err := s.threadOf(ctx, in.Target)
	if err != nil {
		return nil, logFailure(ctx, op, err)
	}

	if _, err := s.reactions.Replace(ctx, in.ViewerID, in.Target, postID, kind); err != nil {
		return nil, logFailure(ctx, op, err)
	}
	observability.VotesCast.WithLabelValues(string(in.Target.Kind), string(kind)).Inc()

	v, err = s.summary(ctx, in.Target, in.ViewerID)
	return v, logFailure(ctx, op, err)
}

// WithdrawVote removes the viewer's active vote on the target, if any.
func (s *VoteService) WithdrawVote(ctx context.Context, in WithdrawVoteInput) (v *engagement.VoteSummary, err error) {
	const op = "vote.WithdrawVote"
	span, ctx := observability.NewSpan(ctx, op, attribute.String("target", in.Target.String()))
	defer func() { span.End(err) }()

	if err := requireViewer(in.ViewerID); err != nil {
		return nil, err
	}
	if err := in.Target.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.threadOf(ctx, in.Target); err != nil {
		return nil, logFailure(ctx, op, err)
	}

	withdrawn, err := s.reactions.Withdraw(ctx, in.ViewerID, in.Target)
	if err != nil {
		return nil, logFailure(ctx, op, err)
	}
	if withdrawn {
		observability.VotesWithdrawn.WithLabelValues(string(in.Target.Kind)).Inc()
	}

	v, err = s.summary(ctx, in.Target, in.ViewerID)
	return v, logFailure(ctx, op, err)
}
