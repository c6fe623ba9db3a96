package pages

import (
	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/index"
	"git.home.luguber.info/inful/blogbuilder/internal/post"
)

// Context is the template context of one output page.
type Context map[string]any

// Context keys understood by the templates.
const (
	KeyBlogTitle   = "blog_title"
	KeySiteURL     = "SITE_URL"
	KeyPosts       = "posts"
	KeyRecentPosts = "recent_posts"
	KeyCategories  = "categories"
	KeyTags        = "tags"
	KeyCurrentPage = "current_page"
	KeyNumPages    = "num_pages"
	KeyCategory    = "category"
	KeyTag         = "tag"
	KeyPost        = "post"
)

// NotFoundTitle is the title of the error page.
const NotFoundTitle = "Page Not Found"

// Assembler builds page contexts from the site configuration.
type Assembler struct {
	title         string
	siteURL       string
	recent        int
	topCategories int
}

// NewAssembler reads the site title, URL and selection sizes from cfg.
func NewAssembler(cfg *config.Config) *Assembler {
	return &Assembler{
		title:         cfg.Site.Title,
		siteURL:       cfg.Site.URL,
		recent:        cfg.Build.RecentPosts,
		topCategories: cfg.Build.TopCategories,
	}
}

// Listing is the context of a main listing page. Besides the page's own posts
// it carries the most recent posts, the top categories and every tag ranked by
// post count.
func (a *Assembler) Listing(idx *index.Index, page Page) Context {
	return Context{
		KeyBlogTitle:   a.title,
		KeySiteURL:     a.siteURL,
		KeyPosts:       page.Posts,
		KeyRecentPosts: idx.Recent(a.recent),
		KeyCategories:  idx.Categories.Top(a.topCategories),
		KeyTags:        idx.Tags.ByCount(),
		KeyCurrentPage: page.Number,
		KeyNumPages:    page.Total,
	}
}

// Category is the single-page listing of one category.
func (a *Assembler) Category(label string, posts []*post.Post) Context {
	return a.label(KeyCategory, "Category: ", label, posts)
}

// Tag is the single-page listing of one tag.
func (a *Assembler) Tag(label string, posts []*post.Post) Context {
	return a.label(KeyTag, "Tag: ", label, posts)
}

func (a *Assembler) label(key, prefix, label string, posts []*post.Post) Context {
	return Context{
		KeyBlogTitle:   prefix + label,
		KeySiteURL:     a.siteURL,
		key:            label,
		KeyPosts:       posts,
		KeyCurrentPage: 1,
		KeyNumPages:    1,
	}
}

// Post is the context of a single post page.
func (a *Assembler) Post(p *post.Post) Context {
	return Context{
		KeyPost:      p,
		KeyBlogTitle: p.Title,
		KeySiteURL:   a.siteURL,
	}
}

// NotFound is the context of the 404 page.
func (a *Assembler) NotFound() Context {
	return Context{
		KeyBlogTitle: NotFoundTitle,
		KeySiteURL:   a.siteURL,
	}
}
