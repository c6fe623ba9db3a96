// Package feeds emits the syndication and crawler files of a build:
// sitemap.xml, rss.xml, atom.xml and robots.txt.
package feeds

import (
	"time"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/post"
	"git.home.luguber.info/inful/blogbuilder/internal/urls"
)

// Emitter renders feed documents for one site.
type Emitter struct {
	title       string
	description string
	author      string
	siteURL     string
	now         func() time.Time
}

// Option customizes an Emitter.
type Option func(*Emitter)

// WithClock sets the source of the feed-level updated timestamp.
func WithClock(now func() time.Time) Option {
	return func(e *Emitter) { e.now = now }
}

// NewEmitter reads the site identity from cfg.
func NewEmitter(cfg *config.Config, opts ...Option) *Emitter {
	e := &Emitter{
		title:       cfg.Site.Title,
		description: cfg.Site.Description,
		author:      cfg.Site.Author,
		siteURL:     cfg.Site.URL,
		now:         time.Now,
	}
	if e.description == "" {
		e.description = e.title
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// PostURL returns the absolute URL of p.
func (e *Emitter) PostURL(p *post.Post) string {
	return urls.Absolute(e.siteURL, urls.PostURL(p.Slug, p.Title, p.Date))
}

// Robots returns robots.txt allowing everything and pointing at the sitemap.
func (e *Emitter) Robots() string {
	return "User-agent: *\nDisallow:\nSitemap: " + urls.Absolute(e.siteURL, "sitemap.xml")
}
