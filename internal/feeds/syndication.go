package feeds

import (
	"github.com/gorilla/feeds"

	"git.home.luguber.info/inful/blogbuilder/internal/index"
	"git.home.luguber.info/inful/blogbuilder/internal/urls"
)

func (e *Emitter) feed(idx *index.Index) *feeds.Feed {
	f := &feeds.Feed{
		Title:       e.title,
		Link:        &feeds.Link{Href: urls.Absolute(e.siteURL, "")},
		Description: e.description,
		Author:      &feeds.Author{Name: e.author},
		Updated:     e.now().UTC(),
		Id:          urls.Absolute(e.siteURL, ""),
	}
	for _, p := range idx.Posts {
		link := e.PostURL(p)
		f.Items = append(f.Items, &feeds.Item{
			Title:       p.Title,
			Link:        &feeds.Link{Href: link},
			Id:          link,
			Created:     p.Date,
			Updated:     p.Date,
			Description: p.Description,
		})
	}
	return f
}

// RSS renders an RSS 2.0 document with one item per published post, newest first.
func (e *Emitter) RSS(idx *index.Index) (string, error) {
	return e.feed(idx).ToRss()
}

// Atom renders an Atom 1.0 document carrying the same entries as RSS.
func (e *Emitter) Atom(idx *index.Index) (string, error) {
	return e.feed(idx).ToAtom()
}
