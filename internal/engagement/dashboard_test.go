package engagement

import (
	"testing"

	"bislerium/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDashboard(t *testing.T) {
	first := newPost(1, 10, t0)
	second := newPost(2, 20, t0)
	third := newPost(3, 10, t0)

	var reactions []models.Reaction
	reactions = append(reactions, upvotes(2, models.PostTarget(1), 1)...)
	reactions = append(reactions, upvotes(4, models.PostTarget(2), 2)...)
	reactions = append(reactions, upvotes(1, models.PostTarget(3), 3)...)
	reactions = append(reactions, vote(1, models.CommentTarget(2), 2, models.Downvote))

	withdrawn := vote(2, models.PostTarget(3), 3, models.Downvote)
	withdrawn.IsActive = false
	reactions = append(reactions, withdrawn)

	snap := Snapshot{
		Posts:     []*models.Post{first, second, third},
		Comments:  []*models.Comment{topLevel(1, 1, t0), topLevel(2, 2, t0)},
		Reactions: reactions,
	}

	d := BuildDashboard(snap, 10)

	assert.Equal(t, DashboardCounts{Posts: 3, Comments: 2, Upvotes: 7, Downvotes: 1}, d.Counts)

	require.Len(t, d.TopPosts, 3)
	assert.Equal(t, []uint{2, 1, 3}, []uint{d.TopPosts[0].PostID, d.TopPosts[1].PostID, d.TopPosts[2].PostID})
	assert.Equal(t, []int{9, 5, 2}, []int{d.TopPosts[0].Popularity, d.TopPosts[1].Popularity, d.TopPosts[2].Popularity})

	require.Len(t, d.TopAuthors, 2)
	assert.Equal(t, uint(20), d.TopAuthors[0].Author.ID)
	assert.Equal(t, 9, d.TopAuthors[0].Popularity)
	assert.Equal(t, uint(10), d.TopAuthors[1].Author.ID)
	assert.Equal(t, 7, d.TopAuthors[1].Popularity)
	assert.Equal(t, 2, d.TopAuthors[1].PostCount)
}

func TestBuildDashboard_TiesAndLimit(t *testing.T) {
	var posts []*models.Post
	for id := uint(15); id >= 1; id-- {
		posts = append(posts, newPost(id, id, t0))
	}

	d := BuildDashboard(Snapshot{Posts: posts}, 0)

	require.Len(t, d.TopPosts, DefaultTopN)
	require.Len(t, d.TopAuthors, DefaultTopN)
	for i := 0; i < DefaultTopN; i++ {
		assert.Equal(t, uint(i+1), d.TopPosts[i].PostID)
		assert.Equal(t, uint(i+1), d.TopAuthors[i].Author.ID)
	}

	small := BuildDashboard(Snapshot{Posts: posts}, 3)
	assert.Len(t, small.TopPosts, 3)
}

func TestBuildDashboard_Empty(t *testing.T) {
	d := BuildDashboard(Snapshot{}, 10)
	assert.Equal(t, DashboardCounts{}, d.Counts)
	assert.NotNil(t, d.TopPosts)
	assert.Empty(t, d.TopPosts)
	assert.Empty(t, d.TopAuthors)
}
