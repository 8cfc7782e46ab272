// Package engagement turns a snapshot of posts, comments and reactions into
// vote tallies, comment threads, popularity scores and page-ready views.
// Everything here is a pure function of its inputs.
package engagement

import "bislerium/internal/models"

// VoteSummary is the vote state of one post or comment.
type VoteSummary struct {
	Upvotes         int  `json:"upvotes"`
	Downvotes       int  `json:"downvotes"`
	ViewerUpvoted   bool `json:"viewer_upvoted"`
	ViewerDownvoted bool `json:"viewer_downvoted"`
}

func (v *VoteSummary) add(r models.Reaction, viewerID uint) {
	viewer := viewerID != 0 && r.AuthorID == viewerID
	switch r.Kind {
	case models.Upvote:
		v.Upvotes++
		v.ViewerUpvoted = v.ViewerUpvoted || viewer
	case models.Downvote:
		v.Downvotes++
		v.ViewerDownvoted = v.ViewerDownvoted || viewer
	}
}

// Tally counts the active reactions on target. viewerID 0 means anonymous.
func Tally(reactions []models.Reaction, target models.Target, viewerID uint) VoteSummary {
	var v VoteSummary
	for _, r := range reactions {
		if r.IsActive && r.Target == target {
			v.add(r, viewerID)
		}
	}
	return v
}

// ReactionIndex groups active reactions by target.
type ReactionIndex map[models.Target][]models.Reaction

// IndexReactions builds the index in one pass so each target is tallied over
// its own reactions only.
func IndexReactions(reactions []models.Reaction) ReactionIndex {
	idx := make(ReactionIndex)
	for _, r := range reactions {
		if r.IsActive {
			idx[r.Target] = append(idx[r.Target], r)
		}
	}
	return idx
}

// Tally is Tally over the indexed reactions of target.
func (idx ReactionIndex) Tally(target models.Target, viewerID uint) VoteSummary {
	var v VoteSummary
	for _, r := range idx[target] {
		v.add(r, viewerID)
	}
	return v
}
