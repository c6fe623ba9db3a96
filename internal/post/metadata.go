package post

import (
	"bytes"
	"strings"
)

// listKeys are split into ordered lists instead of kept as strings.
var listKeys = map[string]bool{
	"categories": true,
	"keywords":   true,
	"tags":       true,
}

// Split separates the metadata block from the body at the first blank line.
// CRLF input is normalized to LF first. ok is false when there is no blank line.
func Split(content []byte) (metadata, body []byte, ok bool) {
	content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
	idx := bytes.Index(content, []byte("\n\n"))
	if idx < 0 {
		return nil, nil, false
	}
	return content[:idx], content[idx+2:], true
}

// rawMetadata is the untyped view of a metadata block before validation.
type rawMetadata struct {
	values map[string]string
	lists  map[string][]string
	order  []string
}

func (m *rawMetadata) has(key string) bool {
	_, ok := m.values[key]
	return ok
}

// parseMetadata reads "key: value" lines. Keys are lowercased and trimmed,
// lines without a colon are ignored, and a repeated key keeps its last value.
func parseMetadata(block []byte) *rawMetadata {
	m := &rawMetadata{values: map[string]string{}, lists: map[string][]string{}}
	for _, line := range strings.Split(string(block), "\n") {
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		if key == "" {
			continue
		}
		value = strings.TrimSpace(value)
		if !m.has(key) {
			m.order = append(m.order, key)
		}
		m.values[key] = value
		if listKeys[key] {
			m.lists[key] = SplitList(value)
		}
	}
	return m
}

// SplitList splits a comma separated value. A comma is a split point only when
// an even number of double quotes follows it, so commas inside "..." survive.
// Tokens are trimmed, a surrounding pair of quotes is removed, and empty tokens
// are dropped.
func SplitList(value string) []string {
	if value == "" {
		return nil
	}
	remaining := strings.Count(value, `"`)
	var (
		out   []string
		start int
	)
	for i := 0; i < len(value); i++ {
		switch value[i] {
		case '"':
			remaining--
		case ',':
			if remaining%2 == 0 {
				out = appendToken(out, value[start:i])
				start = i + 1
			}
		}
	}
	return appendToken(out, value[start:])
}

func appendToken(out []string, token string) []string {
	token = strings.TrimSpace(token)
	if len(token) >= 2 && token[0] == '"' && token[len(token)-1] == '"' {
		token = strings.TrimSpace(token[1 : len(token)-1])
	}
	if token == "" {
		return out
	}
	return append(out, token)
}
