package seed

import (
	"context"
	"fmt"
	"time"

	"bislerium/internal/middleware"
	"bislerium/internal/models"

	"gorm.io/gorm"
)

// Options configure the seeder.
type Options struct {
	Users int
	Posts int
	// MaxComments bounds the top-level comments per post.
	MaxComments int
	// ReplyChance is the probability that a comment gets a reply, applied
	// again at each level.
	ReplyChance float64
	// VoteChance is the probability that a given user votes on a given post or comment.
	VoteChance float64
	UpvoteRatio float64
	Seed        int64
	Clean       bool
	SkipBcrypt  bool
}

// DefaultOptions returns a small, readable data set.
func DefaultOptions() Options {
	return Options{
		Users:       12,
		Posts:       40,
		MaxComments: 4,
		ReplyChance: 0.4,
		VoteChance:  0.3,
		UpvoteRatio: 0.75,
		Seed:        time.Now().UnixNano(),
		Clean:       true,
	}
}

// maxReplyDepth keeps generated threads readable.
const maxReplyDepth = 4

// Summary reports what Seed created.
type Summary struct {
	Users     int
	Posts     int
	Comments  int
	Reactions int
}

// Seeder fills the database with generated bloggers, posts, threads and votes.
type Seeder struct {
	db      *gorm.DB
	opts    Options
	factory *Factory
	summary Summary
}

func NewSeeder(db *gorm.DB, opts Options) (*Seeder, error) {
	f, err := NewFactory(db, opts.Seed, opts.SkipBcrypt)
	if err != nil {
		return nil, err
	}
	return &Seeder{db: db, opts: opts, factory: f}, nil
}

// ClearAll removes every row of the engagement tables.
func (s *Seeder) ClearAll(ctx context.Context) error {
	tables := []any{
		&models.Reaction{},
		&models.CommentLog{},
		&models.Comment{},
		&models.PostImage{},
		&models.PostLog{},
		&models.Post{},
		&models.User{},
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, table := range tables {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(table).Error; err != nil {
				return fmt.Errorf("clear %T: %w", table, err)
			}
		}
		return nil
	})
}

// Run seeds according to the options and returns what was created.
func (s *Seeder) Run(ctx context.Context) (Summary, error) {
	log := middleware.Component("seed")
	if s.opts.Clean {
		if err := s.ClearAll(ctx); err != nil {
			return s.summary, err
		}
	}

	users := make([]*models.User, 0, s.opts.Users)
	for i := 0; i < s.opts.Users; i++ {
		u, err := s.factory.CreateUser(ctx)
		if err != nil {
			return s.summary, fmt.Errorf("create user: %w", err)
		}
		users = append(users, u)
	}
	s.summary.Users = len(users)
	if len(users) == 0 {
		return s.summary, nil
	}
	log.Info("seeded users", "count", len(users))

	for i := 0; i < s.opts.Posts; i++ {
		author := s.pick(users)
		post, err := s.factory.CreatePost(ctx, author)
		if err != nil {
			return s.summary, fmt.Errorf("create post: %w", err)
		}
		s.summary.Posts++

		if err := s.votes(ctx, users, models.PostTarget(post.ID), post.ID); err != nil {
			return s.summary, err
		}
		for n := s.factory.faker.Number(0, max(s.opts.MaxComments, 0)); n > 0; n-- {
			if err := s.thread(ctx, users, models.PostTarget(post.ID), post.ID, 0); err != nil {
				return s.summary, err
			}
		}
	}

	log.Info("seeding complete",
		"posts", s.summary.Posts,
		"comments", s.summary.Comments,
		"reactions", s.summary.Reactions,
	)
	return s.summary, nil
}

// thread adds one comment on target and, by chance, a chain of replies under it.
func (s *Seeder) thread(ctx context.Context, users []*models.User, target models.Target, postID uint, depth int) error {
	c, err := s.factory.CreateComment(ctx, s.pick(users), target, postID)
	if err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	s.summary.Comments++

	if err := s.votes(ctx, users, models.CommentTarget(c.ID), postID); err != nil {
		return err
	}
	if depth+1 < maxReplyDepth && s.chance(s.opts.ReplyChance) {
		return s.thread(ctx, users, models.CommentTarget(c.ID), postID, depth+1)
	}
	return nil
}

func (s *Seeder) votes(ctx context.Context, users []*models.User, target models.Target, postID uint) error {
	for _, u := range users {
		if !s.chance(s.opts.VoteChance) {
			continue
		}
		if err := s.factory.Vote(ctx, u, target, postID, s.opts.UpvoteRatio); err != nil {
			return fmt.Errorf("vote on %s: %w", target, err)
		}
		s.summary.Reactions++
	}
	return nil
}

func (s *Seeder) pick(users []*models.User) *models.User {
	return users[s.factory.faker.Number(0, len(users)-1)]
}

func (s *Seeder) chance(p float64) bool {
	return p > 0 && s.factory.faker.Float64Range(0, 1) < p
}
