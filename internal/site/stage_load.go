package site

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	foundation "git.home.luguber.info/inful/blogbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/git"
	"git.home.luguber.info/inful/blogbuilder/internal/index"
	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
	"git.home.luguber.info/inful/blogbuilder/internal/markdown"
	"git.home.luguber.info/inful/blogbuilder/internal/post"
	"git.home.luguber.info/inful/blogbuilder/internal/render"
)

func stagePrepare(_ context.Context, bs *buildState) error {
	if info, err := os.Stat(bs.postsDir); err != nil || !info.IsDir() {
		return foundation.ValidationError("posts directory not found").
			WithContext("path", bs.postsDir).Build()
	}
	engine, err := render.NewEngine(bs.themeDir, bs.start)
	if err != nil {
		return err
	}
	bs.engine = engine

	commit, err := git.HeadCommit(bs.postsDir)
	if err != nil {
		slog.Warn("Could not read posts commit", logfields.Path(bs.postsDir), logfields.Error(err))
	}
	bs.commit = commit
	return nil
}

func stageLoad(ctx context.Context, bs *buildState) error {
	entries, err := os.ReadDir(bs.postsDir)
	if err != nil {
		return foundation.WrapError(err, foundation.CategoryFileSystem, "read posts directory").
			WithContext("path", bs.postsDir).Fatal().Build()
	}
	conv := markdown.New()
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		if err := ctx.Err(); err != nil {
			return canceled(StageLoad, err)
		}
		path := filepath.Join(bs.postsDir, e.Name())
		raw, err := os.ReadFile(path)
		if err != nil {
			return foundation.WrapError(err, foundation.CategoryFileSystem, "read post").
				WithContext("path", path).Fatal().Build()
		}
		p, err := post.Parse(raw, e.Name(), conv)
		if err != nil {
			if pe, ok := post.AsParseError(err); ok {
				slog.Warn("Skipping document", logfields.Source(e.Name()), slog.String("kind", string(pe.Kind)), logfields.Error(err))
				bs.skipped = append(bs.skipped, e.Name())
				continue
			}
			return foundation.WrapError(err, foundation.CategoryDocument, "convert post").
				WithContext("source", e.Name()).Fatal().Build()
		}
		bs.posts = append(bs.posts, p)
	}
	slog.Debug("Loaded posts", logfields.Count(len(bs.posts)), slog.Int("skipped", len(bs.skipped)))
	return nil
}

func stageIndex(_ context.Context, bs *buildState) error {
	bs.idx = index.Build(bs.posts)
	bs.gen.recorder.AddPosts(len(bs.idx.Posts), bs.idx.Drafts)
	return nil
}
