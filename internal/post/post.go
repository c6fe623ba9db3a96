package post

import (
	"path/filepath"
	"strings"
	"time"
)

// DateLayout is the accepted format of the date metadata field.
const DateLayout = "2006-01-02"

// Mandatory metadata keys, in the order they are reported.
var mandatory = []string{"title", "date", "tags", "description"}

// known keys map onto Post fields; everything else lands in Meta.
var known = map[string]bool{
	"title": true, "date": true, "tags": true, "description": true,
	"categories": true, "keywords": true, "draft": true,
}

// Converter renders a Markdown body to HTML.
type Converter interface {
	Render(body []byte) (string, error)
}

// Post is a validated blog post. Values are not modified after Parse returns.
type Post struct {
	// Slug is the source filename without its .md extension.
	Slug        string
	SourcePath  string
	Title       string
	Date        time.Time
	Tags        []string
	Categories  []string
	Keywords    []string
	Description string
	Draft       bool
	// Body is the rendered HTML.
	Body string
	// Raw is the Markdown body as read from the source.
	Raw string
	// Meta holds metadata keys without a dedicated field.
	Meta map[string]string
}

// SlugFromSource derives the stable slug from a source path.
func SlugFromSource(source string) string {
	return strings.TrimSuffix(filepath.Base(source), ".md")
}

// Parse validates raw and returns the Post it describes. Validation failures
// return a *ParseError; conversion failures are returned as they are. A nil
// conv keeps the body unrendered.
func Parse(raw []byte, source string, conv Converter) (*Post, error) {
	block, body, ok := Split(raw)
	if !ok {
		return nil, &ParseError{Source: source, Kind: KindMissingMetadata}
	}
	md := parseMetadata(block)

	if missing := md.missing(); len(missing) > 0 {
		return nil, &ParseError{Source: source, Kind: KindMissingFields, Fields: missing}
	}
	if empty := md.empty(); len(empty) > 0 {
		return nil, &ParseError{Source: source, Kind: KindEmptyFields, Fields: empty}
	}
	if len(md.lists["tags"]) == 0 {
		return nil, &ParseError{Source: source, Kind: KindEmptyTags}
	}
	date, err := time.Parse(DateLayout, md.values["date"])
	if err != nil {
		return nil, &ParseError{Source: source, Kind: KindInvalidDate}
	}

	p := &Post{
		Slug:        SlugFromSource(source),
		SourcePath:  source,
		Title:       md.values["title"],
		Date:        date,
		Tags:        md.lists["tags"],
		Categories:  md.lists["categories"],
		Keywords:    md.lists["keywords"],
		Description: md.values["description"],
		Draft:       strings.EqualFold(md.values["draft"], "true"),
		Raw:         string(body),
		Meta:        map[string]string{},
	}
	for _, key := range md.order {
		if !known[key] {
			p.Meta[key] = md.values[key]
		}
	}

	p.Body = p.Raw
	if conv != nil {
		html, err := conv.Render(body)
		if err != nil {
			return nil, err
		}
		p.Body = html
	}
	return p, nil
}

func (m *rawMetadata) missing() []string {
	var out []string
	for _, key := range mandatory {
		if !m.has(key) {
			out = append(out, key)
		}
	}
	return out
}

func (m *rawMetadata) empty() []string {
	var out []string
	for _, key := range mandatory {
		if m.values[key] == "" {
			out = append(out, key)
		}
	}
	return out
}
