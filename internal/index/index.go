// Package index orders published posts and groups them by category and tag.
package index

import (
	"sort"

	"git.home.luguber.info/inful/blogbuilder/internal/post"
)

// Index is the published view of one build. It is not modified after Build.
type Index struct {
	// Posts holds the non-draft posts, newest first.
	Posts      []*post.Post
	Categories *Taxonomy
	Tags       *Taxonomy
	// Drafts counts posts excluded because they are drafts.
	Drafts int
}

// Build drops drafts, stable-sorts the rest by date descending and fills the
// category and tag buckets from the sorted sequence, so each bucket keeps the
// global order.
func Build(posts []*post.Post) *Index {
	idx := &Index{Categories: newTaxonomy(), Tags: newTaxonomy()}
	for _, p := range posts {
		if p.Draft {
			idx.Drafts++
			continue
		}
		idx.Posts = append(idx.Posts, p)
	}
	sort.SliceStable(idx.Posts, func(i, j int) bool {
		return idx.Posts[i].Date.After(idx.Posts[j].Date)
	})
	for _, p := range idx.Posts {
		for _, c := range p.Categories {
			idx.Categories.add(c, p)
		}
		for _, t := range p.Tags {
			idx.Tags.add(t, p)
		}
	}
	return idx
}

// Recent returns up to n posts from the front of the ordered sequence.
func (idx *Index) Recent(n int) []*post.Post {
	if n < 0 || n > len(idx.Posts) {
		n = len(idx.Posts)
	}
	return idx.Posts[:n]
}
