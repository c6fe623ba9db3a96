// Package manifest records what a build consumed and produced.
package manifest

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/inful/mdfp"

	"git.home.luguber.info/inful/blogbuilder/internal/post"
)

// FileName is the manifest's name inside a build directory.
const FileName = "manifest.json"

// BuildManifest is written as manifest.json at the root of each build.
type BuildManifest struct {
	ID        string      `json:"id"`
	Timestamp time.Time   `json:"timestamp"`
	Site      string      `json:"site"`
	Theme     string      `json:"theme"`
	Commit    string      `json:"commit,omitempty"`
	Posts     []PostEntry `json:"posts"`
	Drafts    []string    `json:"drafts,omitempty"`
	Skipped   []string    `json:"skipped,omitempty"`
	Duration  int64       `json:"duration_ms"`
}

// PostEntry identifies one published post and the fingerprint of its source.
type PostEntry struct {
	Source      string `json:"source"`
	URL         string `json:"url"`
	Fingerprint string `json:"fingerprint"`
}

// Fingerprint hashes the parsed metadata and Markdown body of p.
// The metadata is rendered canonically so key order in the source does not matter.
func Fingerprint(p *post.Post) string {
	return mdfp.CalculateFingerprintFromParts(canonicalMetadata(p), p.Raw)
}

func canonicalMetadata(p *post.Post) string {
	var b strings.Builder
	line := func(k, v string) {
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(v)
		b.WriteByte('\n')
	}
	line("title", p.Title)
	line("date", p.Date.Format(post.DateLayout))
	line("tags", strings.Join(p.Tags, ", "))
	line("categories", strings.Join(p.Categories, ", "))
	if len(p.Keywords) > 0 {
		line("keywords", strings.Join(p.Keywords, ", "))
	}
	if p.Description != "" {
		line("description", p.Description)
	}
	line("draft", strconv.FormatBool(p.Draft))

	keys := make([]string, 0, len(p.Meta))
	for k := range p.Meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		line(k, p.Meta[k])
	}
	return b.String()
}

// ToJSON serializes the manifest to indented JSON.
func (m *BuildManifest) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	return data, nil
}

// FromJSON deserializes a manifest.
func FromJSON(data []byte) (*BuildManifest, error) {
	var m BuildManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}
	return &m, nil
}

// ContentHash is a digest of the inputs only: theme, commit and post fingerprints.
// Builds of identical content share it even though IDs and timestamps differ.
func (m *BuildManifest) ContentHash() (string, error) {
	hashInput := struct {
		Site   string      `json:"site"`
		Theme  string      `json:"theme"`
		Commit string      `json:"commit"`
		Posts  []PostEntry `json:"posts"`
	}{m.Site, m.Theme, m.Commit, m.Posts}

	data, err := json.Marshal(hashInput)
	if err != nil {
		return "", fmt.Errorf("marshal for hash: %w", err)
	}
	return fmt.Sprintf("%x", sha256.Sum256(data)), nil
}

// WriteFile writes the manifest as JSON to path.
func (m *BuildManifest) WriteFile(path string) error {
	data, err := m.ToJSON()
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// ReadFile loads a manifest written by WriteFile.
func ReadFile(path string) (*BuildManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return FromJSON(data)
}
