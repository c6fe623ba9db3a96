package post

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies why a document was rejected.
type Kind string

const (
	KindMissingMetadata Kind = "missing_metadata"
	KindMissingFields   Kind = "missing_fields"
	KindEmptyFields     Kind = "empty_fields"
	KindEmptyTags       Kind = "empty_tags"
	KindInvalidDate     Kind = "invalid_date"
)

// Sentinels for errors.Is matching against a *ParseError.
var (
	ErrMissingMetadata = errors.New("no metadata block")
	ErrMissingFields   = errors.New("missing mandatory fields")
	ErrEmptyFields     = errors.New("empty mandatory fields")
	ErrEmptyTags       = errors.New("tags list cannot be empty")
	ErrInvalidDate     = errors.New("invalid date format, use YYYY-MM-DD")
)

var sentinels = map[Kind]error{
	KindMissingMetadata: ErrMissingMetadata,
	KindMissingFields:   ErrMissingFields,
	KindEmptyFields:     ErrEmptyFields,
	KindEmptyTags:       ErrEmptyTags,
	KindInvalidDate:     ErrInvalidDate,
}

// ParseError reports a rejected document.
type ParseError struct {
	Source string
	Kind   Kind
	// Fields names the offending keys for KindMissingFields and KindEmptyFields.
	Fields []string
}

func (e *ParseError) Error() string {
	msg := sentinels[e.Kind].Error()
	if len(e.Fields) > 0 {
		msg += ": " + strings.Join(e.Fields, ", ")
	}
	return fmt.Sprintf("%s: %s", e.Source, msg)
}

// Is lets errors.Is(err, ErrEmptyTags) and friends match by kind.
func (e *ParseError) Is(target error) bool {
	return sentinels[e.Kind] == target
}

// AsParseError extracts a *ParseError from err's chain.
func AsParseError(err error) (*ParseError, bool) {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
