// Package pages splits the ordered posts into listing pages and assembles the
// context handed to the template for each kind of page.
package pages

import (
	"strconv"

	"git.home.luguber.info/inful/blogbuilder/internal/post"
)

// Page is one listing page. Number is 1-based.
type Page struct {
	Number int
	Total  int
	Posts  []*post.Post
}

// OutputPath is index.html for the first page and page<N>.html after that.
func (p Page) OutputPath() string {
	if p.Number <= 1 {
		return "index.html"
	}
	return "page" + strconv.Itoa(p.Number) + ".html"
}

// Paginate splits posts into ceil(len/size) pages. No posts still yields one
// empty page, and a non-positive size puts everything on a single page.
func Paginate(posts []*post.Post, size int) []Page {
	if size <= 0 || len(posts) == 0 {
		return []Page{{Number: 1, Total: 1, Posts: posts}}
	}
	total := (len(posts) + size - 1) / size
	pages := make([]Page, 0, total)
	for i := 0; i < total; i++ {
		end := min((i+1)*size, len(posts))
		pages = append(pages, Page{Number: i + 1, Total: total, Posts: posts[i*size : end]})
	}
	return pages
}
