package git

import (
	"errors"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"

	foundation "git.home.luguber.info/inful/blogbuilder/internal/foundation/errors"
)

// HeadCommit returns the HEAD hash of the checkout at dir, or "" when dir is not a repository.
func HeadCommit(dir string) (string, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return "", nil
	}
	if err != nil {
		return "", foundation.WrapError(err, foundation.CategoryGit, "open repository").WithContext("path", dir).Build()
	}
	return headHash(repo)
}

func headHash(repo *git.Repository) (string, error) {
	ref, err := repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return "", nil
	}
	if err != nil {
		return "", foundation.WrapError(err, foundation.CategoryGit, "resolve HEAD").Build()
	}
	return ref.Hash().String(), nil
}

func short(hash string) string {
	if len(hash) > 8 {
		return hash[:8]
	}
	return hash
}

func isPermanent(err error) bool {
	switch {
	case errors.Is(err, transport.ErrAuthenticationRequired),
		errors.Is(err, transport.ErrAuthorizationFailed),
		errors.Is(err, transport.ErrRepositoryNotFound),
		errors.Is(err, plumbing.ErrReferenceNotFound),
		errors.Is(err, git.ErrRepositoryNotExists):
		return true
	}
	l := strings.ToLower(err.Error())
	return strings.Contains(l, "couldn't find remote ref") || strings.Contains(l, "repository not found")
}
