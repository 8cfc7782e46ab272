// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"context"
	"fmt"
	"strings"

	"bislerium/internal/models"
	"bislerium/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the password of every seeded account.
const DefaultPassword = "Password@1234"

var moods = []string{"happy", "curious", "tired", "grateful", "excited", "calm", "nostalgic"}

// Factory builds domain entities and persists them through the repositories.
type Factory struct {
	faker     *gofakeit.Faker
	users     repository.UserRepository
	posts     repository.PostRepository
	comments  repository.CommentRepository
	reactions repository.ReactionRepository
	password  string
	seq       int
}

// NewFactory creates a Factory bound to db. The same seed yields the same content.
func NewFactory(db *gorm.DB, seed int64, skipBcrypt bool) (*Factory, error) {
	password := DefaultPassword
	if !skipBcrypt {
		hashed, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash seed password: %w", err)
		}
		password = string(hashed)
	}
	return &Factory{
		faker:     gofakeit.New(seed),
		users:     repository.NewUserRepository(db),
		posts:     repository.NewPostRepository(db),
		comments:  repository.NewCommentRepository(db),
		reactions: repository.NewReactionRepository(db),
		password:  password,
	}, nil
}

// CreateUser persists a blogger with a generated name and the shared password.
// Optional override functions may modify the user before saving.
func (f *Factory) CreateUser(ctx context.Context, overrides ...func(*models.User)) (*models.User, error) {
	f.seq++
	first, last := f.faker.FirstName(), f.faker.LastName()
	username := strings.ToLower(fmt.Sprintf("%s%s%d", first[:1], last, f.seq))
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: f.password,
		FullName: first + " " + last,
		Role:     models.RoleBlogger,
	}
	if f.faker.Bool() {
		user.ImagePath = fmt.Sprintf("https://i.pravatar.cc/150?u=%s", f.faker.UUID())
	}

	for _, override := range overrides {
		override(user)
	}
	if err := f.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// CreatePost persists a post by author with up to MaxPostImages images.
func (f *Factory) CreatePost(ctx context.Context, author *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	post := &models.Post{
		Title:    f.faker.Sentence(5),
		Body:     f.faker.Paragraph(2, 4, 12, "\n\n"),
		Location: f.faker.City(),
		Mood:     moods[f.faker.Number(0, len(moods)-1)],
		AuthorID: author.ID,
	}
	for i := f.faker.Number(0, 3); i > 0; i-- {
		post.Images = append(post.Images, models.PostImage{
			Path: fmt.Sprintf("https://picsum.photos/seed/%s/800/600", f.faker.UUID()),
		})
	}

	for _, override := range overrides {
		override(post)
	}
	if err := f.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// CreateComment persists a comment by author on target. postID is the thread root.
func (f *Factory) CreateComment(ctx context.Context, author *models.User, target models.Target, postID uint) (*models.Comment, error) {
	comment := &models.Comment{
		Message:  f.faker.Sentence(f.faker.Number(4, 20)),
		AuthorID: author.ID,
		Target:   target,
		PostID:   postID,
	}
	if err := f.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Vote records voter's vote on target, upvoting with probability upRatio.
func (f *Factory) Vote(ctx context.Context, voter *models.User, target models.Target, postID uint, upRatio float64) error {
	kind := models.Downvote
	if f.faker.Float64Range(0, 1) < upRatio {
		kind = models.Upvote
	}
	_, err := f.reactions.Replace(ctx, voter.ID, target, postID, kind)
	return err
}
