package engagement

import (
	"sort"

	"bislerium/internal/models"
)

// Node is one comment in a Thread arena. Parent and Children are indices into Thread.Nodes.
type Node struct {
	Comment  *models.Comment
	Parent   int
	Depth    int
	Children []int
}

// Thread is the materialized comment tree of a post. Nodes are stored in
// pre-order, so every node comes before its replies.
type Thread struct {
	PostID uint
	Nodes  []Node
	Roots  []int
	// Dropped counts active comments that could not be attached: orphans,
	// self-references, cycles and duplicate IDs.
	Dropped int
}

// Len returns the number of comments in the tree.
func (t *Thread) Len() int { return len(t.Nodes) }

// TopLevelCount returns the number of comments attached directly to the post.
func (t *Thread) TopLevelCount() int { return len(t.Roots) }

// ReplyCount returns the number of comments attached to another comment, at any depth.
func (t *Thread) ReplyCount() int { return len(t.Nodes) - len(t.Roots) }

func sortSiblings(siblings []*models.Comment) {
	sort.SliceStable(siblings, func(i, j int) bool {
		a, b := siblings[i], siblings[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}

// GroupByPost splits a multi-thread comment set by thread root.
func GroupByPost(comments []*models.Comment) map[uint][]*models.Comment {
	out := make(map[uint][]*models.Comment)
	for _, c := range comments {
		if c != nil {
			out[c.PostID] = append(out[c.PostID], c)
		}
	}
	return out
}

// BuildThread materializes the active comments of postID into a tree.
// Siblings are ordered by creation time, then ID. Construction is iterative,
// and a comment is placed at most once, so cyclic input terminates.
func BuildThread(postID uint, comments []*models.Comment) *Thread {
	byParent := make(map[models.Target][]*models.Comment)
	candidates := 0
	for _, c := range comments {
		if c == nil || !c.IsActive || c.ID == 0 {
			continue
		}
		if c.PostID != postID && c.Target != models.PostTarget(postID) {
			continue
		}
		candidates++
		byParent[c.Target] = append(byParent[c.Target], c)
	}
	for _, siblings := range byParent {
		sortSiblings(siblings)
	}

	t := &Thread{PostID: postID, Nodes: make([]Node, 0, candidates)}

	type frame struct {
		comment *models.Comment
		parent  int
		depth   int
	}
	push := func(stack []frame, children []*models.Comment, parent, depth int) []frame {
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, frame{comment: children[i], parent: parent, depth: depth})
		}
		return stack
	}

	placed := make(map[uint]bool, candidates)
	stack := push(nil, byParent[models.PostTarget(postID)], -1, 0)
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if placed[f.comment.ID] {
			continue
		}
		placed[f.comment.ID] = true

		idx := len(t.Nodes)
		t.Nodes = append(t.Nodes, Node{Comment: f.comment, Parent: f.parent, Depth: f.depth})
		if f.parent < 0 {
			t.Roots = append(t.Roots, idx)
		} else {
			t.Nodes[f.parent].Children = append(t.Nodes[f.parent].Children, idx)
		}
		stack = push(stack, byParent[models.CommentTarget(f.comment.ID)], idx, f.depth+1)
	}

	t.Dropped = candidates - len(t.Nodes)
	return t
}
