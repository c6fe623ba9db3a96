// Package urls derives the site-relative URLs of posts, categories and tags.
//
// All functions are pure. Two labels that differ only by case or by spaces
// versus hyphens map to the same URL.
package urls

import (
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	lower      = cases.Lower(language.Und)
	nonWordish = regexp.MustCompile(`[^\p{L}\p{M}\p{N}_-]`)
	separators = strings.NewReplacer(" ", "-", "/", "-", `\`, "-")
)

// Slugify lowercases s, turns spaces into hyphens and drops every other
// character that is not a letter, combining mark, digit, underscore or hyphen.
func Slugify(s string) string {
	return nonWordish.ReplaceAllString(strings.ReplaceAll(lower.String(s), " ", "-"), "")
}

// labelSlug keeps a label to a single path segment: spaces and path
// separators become hyphens, and a dots-only result is hyphenated too.
func labelSlug(label string) string {
	s := separators.Replace(lower.String(label))
	if s != "" && strings.Trim(s, ".") == "" {
		s = strings.Repeat("-", len(s))
	}
	return s
}

// PostURL returns posts/<slug>.html, or posts/<date>-<slugified title>.html when slug is empty.
func PostURL(slug, title string, date time.Time) string {
	if slug != "" {
		return "posts/" + slug + ".html"
	}
	return "posts/" + date.Format("2006-01-02") + "-" + Slugify(title) + ".html"
}

// CategoryURL returns categories/<label>/ with the label lowercased and spaces hyphenated.
// The label always occupies exactly one path segment.
func CategoryURL(label string) string {
	return "categories/" + labelSlug(label) + "/"
}

// TagURL returns tags/<label>/ with the label lowercased and spaces hyphenated.
func TagURL(label string) string {
	return "tags/" + labelSlug(label) + "/"
}

// Absolute joins a site URL and a site-relative path with a single slash.
func Absolute(siteURL, rel string) string {
	return strings.TrimRight(siteURL, "/") + "/" + strings.TrimLeft(rel, "/")
}
