package post

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type upperConverter struct{}

func (upperConverter) Render(body []byte) (string, error) {
	return "<p>" + string(body) + "</p>", nil
}

type failingConverter struct{}

func (failingConverter) Render([]byte) (string, error) { return "", errors.New("converter down") }

const valid = "Title: Hello\n" +
	"date: 2024-01-01\n" +
	"tags: x, y\n" +
	"categories: Go, \"Tips, Tricks\"\n" +
	"description: first post\n" +
	"author: ann\n" +
	"\n" +
	"Body text\n"

func TestParseValid(t *testing.T) {
	p, err := Parse([]byte(valid), "posts/hello.md", upperConverter{})
	require.NoError(t, err)

	assert.Equal(t, "hello", p.Slug)
	assert.Equal(t, "posts/hello.md", p.SourcePath)
	assert.Equal(t, "Hello", p.Title)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), p.Date)
	assert.Equal(t, []string{"x", "y"}, p.Tags)
	assert.Equal(t, []string{"Go", "Tips, Tricks"}, p.Categories)
	assert.Equal(t, "first post", p.Description)
	assert.False(t, p.Draft)
	assert.Equal(t, "Body text\n", p.Raw)
	assert.Equal(t, "<p>Body text\n</p>", p.Body)
	assert.Equal(t, map[string]string{"author": "ann"}, p.Meta)
}

func TestParseIsIdempotent(t *testing.T) {
	a, err := Parse([]byte(valid), "hello.md", upperConverter{})
	require.NoError(t, err)
	b, err := Parse([]byte(valid), "hello.md", upperConverter{})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestParseCRLF(t *testing.T) {
	raw := "title: T\r\ndate: 2024-03-04\r\ntags: a\r\ndescription: d\r\n\r\nbody\r\n"
	p, err := Parse([]byte(raw), "crlf.md", nil)
	require.NoError(t, err)
	assert.Equal(t, "T", p.Title)
	assert.Equal(t, "body\n", p.Body)
}

func TestParseDraft(t *testing.T) {
	tests := map[string]bool{
		"true":  true,
		"TRUE":  true,
		"True":  true,
		"yes":   false,
		"false": false,
		"1":     false,
	}
	for value, want := range tests {
		t.Run(value, func(t *testing.T) {
			raw := "title: T\ndate: 2024-01-01\ntags: a\ndescription: d\ndraft: " + value + "\n\nbody"
			p, err := Parse([]byte(raw), "d.md", nil)
			require.NoError(t, err)
			assert.Equal(t, want, p.Draft)
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		kind     Kind
		sentinel error
		fields   []string
	}{
		{
			name:     "no separator",
			raw:      "title: T\ndate: 2024-01-01\ntags: a\ndescription: d",
			kind:     KindMissingMetadata,
			sentinel: ErrMissingMetadata,
		},
		{
			name:     "missing title and description",
			raw:      "date: 2024-01-01\ntags: a\n\nbody",
			kind:     KindMissingFields,
			sentinel: ErrMissingFields,
			fields:   []string{"title", "description"},
		},
		{
			name:     "missing everything",
			raw:      "author: x\n\nbody",
			kind:     KindMissingFields,
			sentinel: ErrMissingFields,
			fields:   []string{"title", "date", "tags", "description"},
		},
		{
			name:     "empty title and tags",
			raw:      "title:\ndate: 2024-01-01\ntags:\ndescription: d\n\nbody",
			kind:     KindEmptyFields,
			sentinel: ErrEmptyFields,
			fields:   []string{"title", "tags"},
		},
		{
			name:     "quoted empty tags",
			raw:      "title: T\ndate: 2024-01-01\ntags: \"\"\ndescription: d\n\nbody",
			kind:     KindEmptyTags,
			sentinel: ErrEmptyTags,
		},
		{
			name:     "tags of only commas",
			raw:      "title: T\ndate: 2024-01-01\ntags: , ,\ndescription: d\n\nbody",
			kind:     KindEmptyTags,
			sentinel: ErrEmptyTags,
		},
		{
			name:     "bad date",
			raw:      "title: T\ndate: 01/02/2024\ntags: a\ndescription: d\n\nbody",
			kind:     KindInvalidDate,
			sentinel: ErrInvalidDate,
		},
		{
			name:     "impossible date",
			raw:      "title: T\ndate: 2024-02-30\ntags: a\ndescription: d\n\nbody",
			kind:     KindInvalidDate,
			sentinel: ErrInvalidDate,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.raw), "posts/bad.md", nil)
			require.Error(t, err)

			pe, ok := AsParseError(err)
			require.True(t, ok)
			assert.Equal(t, tt.kind, pe.Kind)
			assert.Equal(t, tt.fields, pe.Fields)
			assert.Equal(t, "posts/bad.md", pe.Source)
			assert.ErrorIs(t, err, tt.sentinel)
		})
	}
}

func TestParseErrorMessage(t *testing.T) {
	err := &ParseError{Source: "a.md", Kind: KindMissingFields, Fields: []string{"title", "date"}}
	assert.Equal(t, "a.md: missing mandatory fields: title, date", err.Error())
}

func TestParseConverterFailure(t *testing.T) {
	_, err := Parse([]byte(valid), "hello.md", failingConverter{})
	require.Error(t, err)
	_, isParse := AsParseError(err)
	assert.False(t, isParse)
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{`a, "b, c", d`, []string{"a", "b, c", "d"}},
		{"go,rust ,  zig", []string{"go", "rust", "zig"}},
		{"single", []string{"single"}},
		{"", nil},
		{`""`, nil},
		{"a,,b", []string{"a", "b"}},
		{`"x, y"`, []string{"x, y"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitList(tt.in))
		})
	}
}

func TestSplit(t *testing.T) {
	meta, body, ok := Split([]byte("a: 1\nb: 2\n\nline one\n\nline two"))
	require.True(t, ok)
	assert.Equal(t, "a: 1\nb: 2", string(meta))
	assert.Equal(t, "line one\n\nline two", string(body))

	_, _, ok = Split([]byte("a: 1\nb: 2\n"))
	assert.False(t, ok)
}

func TestMetadataKeysAreCaseFolded(t *testing.T) {
	raw := "TITLE: T\n  Date : 2024-01-01\nTags: a\nDescription: url: http://x\nnot a field\n\nbody"
	p, err := Parse([]byte(raw), "k.md", nil)
	require.NoError(t, err)
	assert.Equal(t, "T", p.Title)
	assert.Equal(t, "url: http://x", p.Description)
	assert.Empty(t, p.Meta)
}
