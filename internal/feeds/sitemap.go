package feeds

import (
	"encoding/xml"

	"git.home.luguber.info/inful/blogbuilder/internal/index"
	"git.home.luguber.info/inful/blogbuilder/internal/post"
	"git.home.luguber.info/inful/blogbuilder/internal/urls"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// Sitemap lists the site root, each distinct category and tag URL, then every
// post with its date as lastmod.
func (e *Emitter) Sitemap(idx *index.Index) ([]byte, error) {
	set := sitemapURLSet{XMLNS: sitemapNS}
	set.URLs = append(set.URLs, sitemapURL{Loc: urls.Absolute(e.siteURL, "")})

	seen := map[string]bool{}
	addLabel := func(rel string) {
		if seen[rel] {
			return
		}
		seen[rel] = true
		set.URLs = append(set.URLs, sitemapURL{Loc: urls.Absolute(e.siteURL, rel)})
	}
	for _, l := range idx.Categories.Labels() {
		addLabel(urls.CategoryURL(l))
	}
	for _, l := range idx.Tags.Labels() {
		addLabel(urls.TagURL(l))
	}
	for _, p := range idx.Posts {
		set.URLs = append(set.URLs, sitemapURL{Loc: e.PostURL(p), LastMod: p.Date.Format(post.DateLayout)})
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), out...), nil
}
