package service

import (
	"context"

	"bislerium/internal/engagement"
	"bislerium/internal/observability"
	"bislerium/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

type DashboardService struct {
	posts     repository.PostRepository
	comments  repository.CommentRepository
	reactions repository.ReactionRepository
	topN      int
}

func NewDashboardService(
	posts repository.PostRepository,
	comments repository.CommentRepository,
	reactions repository.ReactionRepository,
	topN int,
) *DashboardService {
	return &DashboardService{posts: posts, comments: comments, reactions: reactions, topN: topN}
}

// GetDashboard aggregates every active post, comment and reaction.
func (s *DashboardService) GetDashboard(ctx context.Context) (d engagement.Dashboard, err error) {
	const op = "dashboard.GetDashboard"
	span, ctx := observability.NewSpan(ctx, op)
	defer func() { span.End(err) }()

	posts, err := s.posts.ListActive(ctx, repository.PostFilter{})
	if err != nil {
		return engagement.Dashboard{}, logFailure(ctx, op, err)
	}
	comments, err := s.comments.ListActive(ctx, repository.CommentFilter{})
	if err != nil {
		return engagement.Dashboard{}, logFailure(ctx, op, err)
	}
	reactions, err := s.reactions.ListActive(ctx, repository.ReactionFilter{})
	if err != nil {
		return engagement.Dashboard{}, logFailure(ctx, op, err)
	}

	done := observability.TrackBuild(op)
	d = engagement.BuildDashboard(engagement.Snapshot{Posts: posts, Comments: comments, Reactions: reactions}, s.topN)
	done()

	span.AddAttributes(attribute.Int("dashboard.posts", d.Counts.Posts))
	return d, nil
}
