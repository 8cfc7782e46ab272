package engagement

import (
	"math/rand/v2"
	"sort"
	"strings"
)

// SortKey selects the feed order.
type SortKey string

const (
	SortRecency    SortKey = "recency"
	SortPopularity SortKey = "popularity"
	// SortRandom is what any unrecognized key maps to. The order changes on every call.
	SortRandom SortKey = "random"
)

// ParseSortKey matches case-insensitively. An empty key means recency.
func ParseSortKey(raw string) SortKey {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", string(SortRecency):
		return SortRecency
	case string(SortPopularity):
		return SortPopularity
	}
	return SortRandom
}

// Shuffler has the signature of rand.Shuffle.
type Shuffler func(n int, swap func(i, j int))

// SortPosts orders views in place. Recency is newest first with ties broken by
// higher ID; popularity is highest first and keeps input order on ties.
// shuffle is used for SortRandom and defaults to math/rand.
func SortPosts(views []PostView, key SortKey, shuffle Shuffler) {
	switch key {
	case SortRecency:
		sort.SliceStable(views, func(i, j int) bool {
			a, b := views[i], views[j]
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
			return a.ID > b.ID
		})
	case SortPopularity:
		sort.SliceStable(views, func(i, j int) bool {
			return views[i].Popularity > views[j].Popularity
		})
	default:
		if shuffle == nil {
			shuffle = rand.Shuffle
		}
		shuffle(len(views), func(i, j int) { views[i], views[j] = views[j], views[i] })
	}
}

// Page is one page of a sorted list. TotalCount is the size of the whole list.
type Page[T any] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"totalCount"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
}

// Paginate returns the 1-indexed page of items. Pages past the end, and
// non-positive page numbers or sizes, are empty rather than an error.
func Paginate[T any](items []T, page, size int) Page[T] {
	out := Page[T]{Items: []T{}, TotalCount: len(items), Page: page, PageSize: size}
	if page < 1 || size < 1 {
		return out
	}
	// Compare page counts first so (page-1)*size cannot overflow.
	pages := len(items) / size
	if len(items)%size != 0 {
		pages++
	}
	if page > pages {
		return out
	}
	skip := (page - 1) * size
	end := skip + min(size, len(items)-skip)
	out.Items = items[skip:end]
	return out
}
