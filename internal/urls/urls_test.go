package urls

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPostURL(t *testing.T) {
	date := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "posts/hello.html", PostURL("hello", "Ignored Title", date))
	assert.Equal(t, "posts/2024-02-01-hello-world.html", PostURL("", "Hello, World!", date))
}

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Hello World":      "hello-world",
		"Go 1.24: What's?": "go-124-whats",
		"snake_case-ok":    "snake_case-ok",
		"Café Crème":       "café-crème",
		"Cafe\u0301 Time":  "cafe\u0301-time",
		"":                 "",
	}
	for in, want := range tests {
		assert.Equal(t, want, Slugify(in), in)
	}
}

func TestLabelURLs(t *testing.T) {
	assert.Equal(t, "categories/web-development/", CategoryURL("Web Development"))
	assert.Equal(t, "tags/go/", TagURL("Go"))
	assert.Equal(t, "tags/c++/", TagURL("C++"))
}

func TestLabelURLsStayInOneSegment(t *testing.T) {
	tests := map[string]string{
		"../../../escaped": "tags/..-..-..-escaped/",
		"a/b":              "tags/a-b/",
		`win\path`:         "tags/win-path/",
		"..":               "tags/--/",
		".":                "tags/-/",
		".hidden":          "tags/.hidden/",
	}
	for label, want := range tests {
		assert.Equal(t, want, TagURL(label), label)
	}
	assert.Equal(t, "categories/..-etc/", CategoryURL("../etc"))
}

func TestLabelCollision(t *testing.T) {
	assert.Equal(t, TagURL("Machine Learning"), TagURL("machine-learning"))
}

func TestDeterministic(t *testing.T) {
	date := time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)
	for range 3 {
		assert.Equal(t, PostURL("", "Year End", date), PostURL("", "Year End", date))
		assert.Equal(t, CategoryURL("News"), CategoryURL("News"))
	}
}

func TestAbsolute(t *testing.T) {
	assert.Equal(t, "https://example.com/posts/a.html", Absolute("https://example.com", "posts/a.html"))
	assert.Equal(t, "https://example.com/posts/a.html", Absolute("https://example.com/", "/posts/a.html"))
	assert.Equal(t, "https://example.com/", Absolute("https://example.com", ""))
}
