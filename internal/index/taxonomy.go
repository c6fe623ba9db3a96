package index

import (
	"sort"

	"git.home.luguber.info/inful/blogbuilder/internal/post"
)

// Taxonomy maps labels to the posts that carry them. Labels are compared
// exactly, so "Go" and "go" are separate buckets.
type Taxonomy struct {
	labels  []string
	buckets map[string][]*post.Post
}

// Bucket is one label with its posts.
type Bucket struct {
	Label string
	Posts []*post.Post
}

// Count returns the number of posts in the bucket.
func (b Bucket) Count() int { return len(b.Posts) }

func newTaxonomy() *Taxonomy {
	return &Taxonomy{buckets: map[string][]*post.Post{}}
}

func (t *Taxonomy) add(label string, p *post.Post) {
	bucket, ok := t.buckets[label]
	if !ok {
		t.labels = append(t.labels, label)
	}
	// A post listing a label twice is bucketed once.
	if n := len(bucket); n > 0 && bucket[n-1] == p {
		return
	}
	t.buckets[label] = append(bucket, p)
}

// Labels returns the labels in the order they were first encountered.
func (t *Taxonomy) Labels() []string {
	return append([]string(nil), t.labels...)
}

// Posts returns the posts for label in global order, or nil.
func (t *Taxonomy) Posts(label string) []*post.Post {
	return t.buckets[label]
}

// Has reports whether label has at least one post.
func (t *Taxonomy) Has(label string) bool {
	_, ok := t.buckets[label]
	return ok
}

// Len returns the number of distinct labels.
func (t *Taxonomy) Len() int { return len(t.labels) }

// Buckets returns every label with its posts in encounter order.
func (t *Taxonomy) Buckets() []Bucket {
	out := make([]Bucket, 0, len(t.labels))
	for _, l := range t.labels {
		out = append(out, Bucket{Label: l, Posts: t.buckets[l]})
	}
	return out
}

// ByCount returns the buckets sorted by post count descending; equal counts keep encounter order.
func (t *Taxonomy) ByCount() []Bucket {
	out := t.Buckets()
	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i].Posts) > len(out[j].Posts)
	})
	return out
}

// Top returns the first k buckets of ByCount. A negative k returns all.
func (t *Taxonomy) Top(k int) []Bucket {
	out := t.ByCount()
	if k >= 0 && k < len(out) {
		out = out[:k]
	}
	return out
}
