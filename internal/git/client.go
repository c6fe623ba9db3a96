package git

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	ggitcfg "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	foundation "git.home.luguber.info/inful/blogbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
	"git.home.luguber.info/inful/blogbuilder/internal/retry"
)

// Client syncs a single source repository.
type Client struct {
	url    string
	branch string
	depth  int
	policy retry.Policy
}

// NewClient builds a client from the source section. Call only when src.Enabled().
func NewClient(src config.SourceConfig) *Client {
	branch := src.Branch
	if branch == "" {
		branch = "main"
	}
	return &Client{url: src.Repository, branch: branch, depth: src.Depth, policy: retry.FromConfig(src.Retry)}
}

// WithPolicy returns a copy of c using p for transient failures.
func (c *Client) WithPolicy(p retry.Policy) *Client {
	cp := *c
	cp.policy = p
	return &cp
}

// Sync clones into dest or updates an existing checkout there, returning the head commit.
// Transient clone and fetch failures are retried according to the client's policy.
func (c *Client) Sync(ctx context.Context, dest string) (string, error) {
	var commit string
	err := c.policy.Do(ctx, "sync posts repository", func(ctx context.Context) error {
		var err error
		commit, err = c.syncOnce(ctx, dest)
		return err
	})
	return commit, err
}

func (c *Client) syncOnce(ctx context.Context, dest string) (string, error) {
	if _, err := os.Stat(filepath.Join(dest, ".git")); err == nil {
		return c.update(ctx, dest)
	}
	if entries, err := os.ReadDir(dest); err == nil && len(entries) > 0 {
		return "", foundation.GitError("destination exists and is not a git checkout").
			WithContext("path", dest).UserAction().Build()
	}
	return c.clone(ctx, dest)
}

func (c *Client) clone(ctx context.Context, dest string) (string, error) {
	slog.Debug("Cloning posts repository", slog.String("url", c.url), slog.String("branch", c.branch), logfields.Path(dest))
	opts := &git.CloneOptions{
		URL:           c.url,
		ReferenceName: plumbing.NewBranchReferenceName(c.branch),
		SingleBranch:  true,
		Tags:          git.NoTags,
	}
	if c.depth > 0 {
		opts.Depth = c.depth
	}
	repo, err := git.PlainCloneContext(ctx, dest, false, opts)
	if err != nil {
		_ = os.RemoveAll(dest)
		return "", c.classify("clone", err)
	}
	commit, err := headHash(repo)
	if err != nil {
		return "", err
	}
	slog.Info("Posts repository cloned", slog.String("url", c.url), slog.String("commit", short(commit)))
	return commit, nil
}

func (c *Client) update(ctx context.Context, dest string) (string, error) {
	repo, err := git.PlainOpen(dest)
	if err != nil {
		return "", c.classify("open", err)
	}

	refSpec := ggitcfg.RefSpec("+refs/heads/" + c.branch + ":refs/remotes/origin/" + c.branch)
	fetchOpts := &git.FetchOptions{RemoteName: "origin", Tags: git.NoTags, RefSpecs: []ggitcfg.RefSpec{refSpec}}
	if c.depth > 0 {
		fetchOpts.Depth = c.depth
	}
	if err := repo.FetchContext(ctx, fetchOpts); err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return "", c.classify("fetch", err)
	}

	remoteRef, err := repo.Reference(plumbing.NewRemoteReferenceName("origin", c.branch), true)
	if err != nil {
		return "", c.classify("resolve remote branch", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return "", c.classify("worktree", err)
	}

	before, _ := headHash(repo)
	local := plumbing.NewBranchReferenceName(c.branch)
	if err := repo.Storer.SetReference(plumbing.NewHashReference(local, remoteRef.Hash())); err != nil {
		return "", c.classify("update local branch", err)
	}
	if err := wt.Checkout(&git.CheckoutOptions{Branch: local, Force: true}); err != nil {
		return "", c.classify("checkout", err)
	}
	if err := wt.Reset(&git.ResetOptions{Commit: remoteRef.Hash(), Mode: git.HardReset}); err != nil {
		return "", c.classify("reset", err)
	}

	after := remoteRef.Hash().String()
	if before == after {
		slog.Debug("Posts repository already up-to-date", slog.String("commit", short(after)))
	} else {
		slog.Info("Posts repository updated", slog.String("from", short(before)), slog.String("to", short(after)))
	}
	return after, nil
}

func (c *Client) classify(op string, err error) error {
	b := foundation.WrapError(err, foundation.CategoryGit, op+" posts repository").
		WithContext("url", c.url).
		WithContext("branch", c.branch)
	if isPermanent(err) {
		return b.UserAction().Build()
	}
	return b.Retryable().Build()
}
