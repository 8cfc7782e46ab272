package service

import (
	"context"
	"time"

	"bislerium/internal/engagement"
	"bislerium/internal/models"
	"bislerium/internal/observability"
	"bislerium/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// FeedOptions tunes the feed. Zero values fall back to the defaults below.
type FeedOptions struct {
	MaxPageSize     int
	PreviewComments int
	Now             func() time.Time
	Shuffle         engagement.Shuffler
}

const defaultMaxPageSize = 100

type FeedService struct {
	posts       repository.PostRepository
	comments    repository.CommentRepository
	reactions   repository.ReactionRepository
	composer    engagement.Composer
	shuffle     engagement.Shuffler
	maxPageSize int
}

// FeedInput selects one page of the feed. Page is 1-indexed; a page past the
// end, or a non-positive page or size, yields an empty page.
type FeedInput struct {
	Page     int
	PageSize int
	SortBy   string
	ViewerID uint
}

type FeedPage = engagement.Page[engagement.PostView]

func NewFeedService(
	posts repository.PostRepository,
	comments repository.CommentRepository,
	reactions repository.ReactionRepository,
	opts FeedOptions,
) *FeedService {
	if opts.MaxPageSize <= 0 {
		opts.MaxPageSize = defaultMaxPageSize
	}
	return &FeedService{
		posts:       posts,
		comments:    comments,
		reactions:   reactions,
		composer:    engagement.Composer{Now: opts.Now, PreviewComments: opts.PreviewComments},
		shuffle:     opts.Shuffle,
		maxPageSize: opts.MaxPageSize,
	}
}

// snapshot loads the given posts together with every active comment and
// reaction of their threads.
func (s *FeedService) snapshot(ctx context.Context, posts []*models.Post) (engagement.Snapshot, error) {
	ids := postIDs(posts)
	comments, err := s.comments.ListActive(ctx, repository.CommentFilter{PostIDs: ids})
	if err != nil {
		return engagement.Snapshot{}, err
	}
	reactions, err := s.reactions.ListActive(ctx, repository.ReactionFilter{PostIDs: ids})
	if err != nil {
		return engagement.Snapshot{}, err
	}
	return engagement.Snapshot{Posts: posts, Comments: comments, Reactions: reactions}, nil
}

func recordThreads(a *engagement.Analysis) {
	for _, e := range a.Posts {
		observability.RecordThread(e.Thread.Len(), e.Thread.Dropped)
	}
}

func (s *FeedService) feed(ctx context.Context, op string, filter repository.PostFilter, in FeedInput) (page FeedPage, err error) {
	span, ctx := observability.NewSpan(ctx, op,
		attribute.Int("feed.page", in.Page),
		attribute.Int("feed.page_size", in.PageSize),
		attribute.String("feed.sort", in.SortBy),
	)
	defer func() { span.End(err) }()

	posts, err := s.posts.ListActive(ctx, filter)
	if err != nil {
		return FeedPage{}, logFailure(ctx, op, err)
	}
	snap, err := s.snapshot(ctx, posts)
	if err != nil {
		return FeedPage{}, logFailure(ctx, op, err)
	}

	done := observability.TrackBuild(op)
	a := engagement.Analyze(snap, in.ViewerID)
	recordThreads(a)
	views := s.composer.ComposeFeed(a)
	engagement.SortPosts(views, engagement.ParseSortKey(in.SortBy), s.shuffle)
	done()

	size := min(in.PageSize, s.maxPageSize)
	page = engagement.Paginate(views, in.Page, size)
	span.AddAttributes(attribute.Int("feed.total", page.TotalCount))
	return page, nil
}

// GetPostFeed returns one page of every active post, sorted by SortBy.
func (s *FeedService) GetPostFeed(ctx context.Context, in FeedInput) (FeedPage, error) {
	return s.feed(ctx, "feed.GetPostFeed", repository.PostFilter{}, in)
}

// GetAuthorFeed returns one page of the viewer's own active posts.
func (s *FeedService) GetAuthorFeed(ctx context.Context, in FeedInput) (FeedPage, error) {
	if err := requireViewer(in.ViewerID); err != nil {
		return FeedPage{}, err
	}
	return s.feed(ctx, "feed.GetAuthorFeed", repository.PostFilter{AuthorID: in.ViewerID}, in)
}

// GetPostDetail returns a post with its full comment tree.
func (s *FeedService) GetPostDetail(ctx context.Context, postID, viewerID uint) (view *engagement.PostView, err error) {
	const op = "feed.GetPostDetail"
	span, ctx := observability.NewSpan(ctx, op, attribute.Int64("post.id", int64(postID)))
	defer func() { span.End(err) }()

	post, err := s.posts.GetActiveByID(ctx, postID)
	if err != nil {
		return nil, logFailure(ctx, op, err)
	}
	comments, err := s.comments.ListActive(ctx, repository.CommentFilter{PostID: postID})
	if err != nil {
		return nil, logFailure(ctx, op, err)
	}
	reactions, err := s.reactions.ListActive(ctx, repository.ReactionFilter{PostIDs: []uint{postID}})
	if err != nil {
		return nil, logFailure(ctx, op, err)
	}

	done := observability.TrackBuild(op)
	a := engagement.Analyze(engagement.Snapshot{
		Posts:     []*models.Post{post},
		Comments:  comments,
		Reactions: reactions,
	}, viewerID)
	recordThreads(a)
	if len(a.Posts) == 0 {
		done()
		return nil, models.NewNotFoundError("Post", postID)
	}
	composed := s.composer.ComposePost(a, a.Posts[0], engagement.AllComments)
	done()
	return &composed, nil
}
