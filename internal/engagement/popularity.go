package engagement

import "bislerium/internal/models"

// PostPopularity scores a post: two points per upvote, minus one per
// downvote, plus one per comment in its thread.
func PostPopularity(votes VoteSummary, thread *Thread) int {
	score := 2*votes.Upvotes - votes.Downvotes
	if thread != nil {
		score += thread.TopLevelCount() + thread.ReplyCount()
	}
	return score
}

// PostScore ties a popularity score to its post and author.
type PostScore struct {
	PostID     uint
	AuthorID   uint
	Popularity int
}

// AuthorPopularity sums post scores per author.
func AuthorPopularity(scores []PostScore) map[uint]int {
	out := make(map[uint]int)
	for _, s := range scores {
		out[s.AuthorID] += s.Popularity
	}
	return out
}

// Snapshot is the set of facts one request aggregates over.
type Snapshot struct {
	Posts     []*models.Post
	Comments  []*models.Comment
	Reactions []models.Reaction
}

// PostEngagement is the derived state of one post.
type PostEngagement struct {
	Post       *models.Post
	Votes      VoteSummary
	Thread     *Thread
	Popularity int
}

// Analysis is a snapshot after tallying and tree building, scoped to a viewer.
type Analysis struct {
	Posts     []PostEngagement
	Reactions ReactionIndex
	ViewerID  uint
}

// Analyze tallies votes, builds every thread and scores every active post of s.
// Posts keep their snapshot order.
func Analyze(s Snapshot, viewerID uint) *Analysis {
	a := &Analysis{
		Posts:     make([]PostEngagement, 0, len(s.Posts)),
		Reactions: IndexReactions(s.Reactions),
		ViewerID:  viewerID,
	}
	threads := GroupByPost(s.Comments)
	for _, p := range s.Posts {
		if p == nil || !p.IsActive {
			continue
		}
		e := PostEngagement{
			Post:   p,
			Votes:  a.Reactions.Tally(models.PostTarget(p.ID), viewerID),
			Thread: BuildThread(p.ID, threads[p.ID]),
		}
		e.Popularity = PostPopularity(e.Votes, e.Thread)
		a.Posts = append(a.Posts, e)
	}
	return a
}

// Scores returns the popularity of every analyzed post.
func (a *Analysis) Scores() []PostScore {
	out := make([]PostScore, 0, len(a.Posts))
	for _, e := range a.Posts {
		out = append(out, PostScore{PostID: e.Post.ID, AuthorID: e.Post.AuthorID, Popularity: e.Popularity})
	}
	return out
}
