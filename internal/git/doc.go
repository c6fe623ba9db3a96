// Package git keeps a local checkout of the posts repository in sync with its remote.
//
// The checkout is a mirror: updates fetch the configured branch and hard reset
// the worktree onto it, so local edits in the posts directory are discarded.
package git
