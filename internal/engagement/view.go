package engagement

import (
	"fmt"
	"time"

	"bislerium/internal/models"
)

const absoluteAgeLayout = "02-01-2006 15:04"

// FormatRelativeAge renders how long ago createdAt was: seconds under a
// minute, minutes under an hour, hours under a day, then the date itself.
// Timestamps in the future count as zero seconds.
func FormatRelativeAge(now, createdAt time.Time) string {
	d := now.Sub(createdAt)
	if d < 0 {
		d = 0
	}
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%d seconds ago", int(d/time.Second))
	case d < time.Hour:
		return fmt.Sprintf("%d minutes ago", int(d/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("%d hours ago", int(d/time.Hour))
	}
	return createdAt.Format(absoluteAgeLayout)
}

// AuthorView is the public face of a post or comment author.
type AuthorView struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

func authorView(u *models.User) AuthorView {
	if u == nil || u.ID == 0 {
		return AuthorView{Name: models.UnknownAuthor, Image: models.DefaultImagePath}
	}
	return AuthorView{ID: u.ID, Name: u.DisplayName(), Image: u.Avatar()}
}

type CommentView struct {
	ID      uint       `json:"id"`
	Message string     `json:"message"`
	Author  AuthorView `json:"author"`
	VoteSummary
	IsEdited  bool          `json:"is_edited"`
	CreatedAt time.Time     `json:"created_at"`
	Age       string        `json:"age"`
	Replies   []CommentView `json:"replies"`
}

type PostView struct {
	ID       uint       `json:"id"`
	Title    string     `json:"title"`
	Body     string     `json:"body"`
	Location string     `json:"location"`
	Mood     string     `json:"mood"`
	Author   AuthorView `json:"author"`
	Images   []string   `json:"images"`
	VoteSummary
	CommentCount int           `json:"comment_count"`
	Popularity   int           `json:"popularity"`
	IsEdited     bool          `json:"is_edited"`
	CreatedAt    time.Time     `json:"created_at"`
	Age          string        `json:"age"`
	Comments     []CommentView `json:"comments"`
}

// AllComments asks ComposePost for the whole thread.
const AllComments = -1

// Composer projects analyzed posts into views.
type Composer struct {
	// Now defaults to time.Now.
	Now func() time.Time
	// PreviewComments is the number of top-level comments, with their
	// replies, shown on each feed item.
	PreviewComments int
}

func (c Composer) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// ComposeComments renders the first limit top-level comments of thread with
// all their replies. A negative limit renders every comment.
func (c Composer) ComposeComments(a *Analysis, thread *Thread, limit int) []CommentView {
	if thread == nil || len(thread.Roots) == 0 || limit == 0 {
		return []CommentView{}
	}
	now := c.now()

	roots := thread.Roots
	end := len(thread.Nodes)
	if limit > 0 && limit < len(roots) {
		// Pre-order keeps each root's subtree contiguous.
		end = roots[limit]
		roots = roots[:limit]
	}

	views := make([]CommentView, end)
	for i := end - 1; i >= 0; i-- {
		n := thread.Nodes[i]
		cm := n.Comment
		v := CommentView{
			ID:          cm.ID,
			Message:     cm.Message,
			Author:      authorView(&cm.Author),
			VoteSummary: a.Reactions.Tally(models.CommentTarget(cm.ID), a.ViewerID),
			IsEdited:    cm.IsEdited(),
			CreatedAt:   cm.CreatedAt,
			Age:         FormatRelativeAge(now, cm.CreatedAt),
			Replies:     make([]CommentView, 0, len(n.Children)),
		}
		for _, child := range n.Children {
			v.Replies = append(v.Replies, views[child])
		}
		views[i] = v
	}

	out := make([]CommentView, 0, len(roots))
	for _, r := range roots {
		out = append(out, views[r])
	}
	return out
}

// ComposePost renders one analyzed post with up to commentLimit top-level comments.
func (c Composer) ComposePost(a *Analysis, e PostEngagement, commentLimit int) PostView {
	p := e.Post
	images := p.ImagePaths()
	return PostView{
		ID:           p.ID,
		Title:        p.Title,
		Body:         p.Body,
		Location:     p.Location,
		Mood:         p.Mood,
		Author:       authorView(&p.Author),
		Images:       images,
		VoteSummary:  e.Votes,
		CommentCount: e.Thread.Len(),
		Popularity:   e.Popularity,
		IsEdited:     p.IsEdited(),
		CreatedAt:    p.CreatedAt,
		Age:          FormatRelativeAge(c.now(), p.CreatedAt),
		Comments:     c.ComposeComments(a, e.Thread, commentLimit),
	}
}

// ComposeFeed renders every analyzed post as a feed item.
func (c Composer) ComposeFeed(a *Analysis) []PostView {
	out := make([]PostView, 0, len(a.Posts))
	for _, e := range a.Posts {
		out = append(out, c.ComposePost(a, e, c.PreviewComments))
	}
	return out
}
