package engagement

import (
	"sort"

	"bislerium/internal/models"
)

// DefaultTopN is the length of the dashboard rankings.
const DefaultTopN = 10

type DashboardCounts struct {
	Posts     int `json:"posts"`
	Comments  int `json:"comments"`
	Upvotes   int `json:"upvotes"`
	Downvotes int `json:"downvotes"`
}

type RankedPost struct {
	PostID     uint       `json:"post_id"`
	Title      string     `json:"title"`
	Author     AuthorView `json:"author"`
	Popularity int        `json:"popularity"`
}

type RankedAuthor struct {
	Author     AuthorView `json:"author"`
	PostCount  int        `json:"post_count"`
	Popularity int        `json:"popularity"`
}

type Dashboard struct {
	Counts     DashboardCounts `json:"counts"`
	TopPosts   []RankedPost    `json:"top_posts"`
	TopAuthors []RankedAuthor  `json:"top_authors"`
}

// BuildDashboard computes global counts and the topN posts and authors by
// popularity. Equal scores rank the lower ID first. topN <= 0 means DefaultTopN.
func BuildDashboard(s Snapshot, topN int) Dashboard {
	if topN <= 0 {
		topN = DefaultTopN
	}
	a := Analyze(s, 0)

	d := Dashboard{Counts: DashboardCounts{Posts: len(a.Posts)}}
	for _, c := range s.Comments {
		if c != nil && c.IsActive {
			d.Counts.Comments++
		}
	}
	for _, r := range s.Reactions {
		if !r.IsActive {
			continue
		}
		switch r.Kind {
		case models.Upvote:
			d.Counts.Upvotes++
		case models.Downvote:
			d.Counts.Downvotes++
		}
	}

	posts := make([]RankedPost, 0, len(a.Posts))
	authors := make(map[uint]*RankedAuthor)
	for _, e := range a.Posts {
		av := authorView(&e.Post.Author)
		posts = append(posts, RankedPost{PostID: e.Post.ID, Title: e.Post.Title, Author: av, Popularity: e.Popularity})

		ra, ok := authors[e.Post.AuthorID]
		if !ok {
			if av.ID == 0 {
				av.ID = e.Post.AuthorID
			}
			ra = &RankedAuthor{Author: av}
			authors[e.Post.AuthorID] = ra
		}
		ra.PostCount++
	}
	for id, score := range AuthorPopularity(a.Scores()) {
		if ra, ok := authors[id]; ok {
			ra.Popularity = score
		}
	}

	sort.SliceStable(posts, func(i, j int) bool {
		if posts[i].Popularity != posts[j].Popularity {
			return posts[i].Popularity > posts[j].Popularity
		}
		return posts[i].PostID < posts[j].PostID
	})

	ranked := make([]RankedAuthor, 0, len(authors))
	for _, ra := range authors {
		ranked = append(ranked, *ra)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Popularity != ranked[j].Popularity {
			return ranked[i].Popularity > ranked[j].Popularity
		}
		return ranked[i].Author.ID < ranked[j].Author.ID
	})

	d.TopPosts = posts[:min(topN, len(posts))]
	d.TopAuthors = ranked[:min(topN, len(ranked))]
	return d
}
