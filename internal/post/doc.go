// Package post parses blog post source documents into validated Post records.
//
// A document is a block of "key: value" metadata lines, a blank line, and a
// Markdown body. Parse rejects documents that lack the mandatory metadata with a
// *ParseError whose Kind says why; callers report those and move on.
package post
