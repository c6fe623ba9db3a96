package site

import (
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/index"
	"git.home.luguber.info/inful/blogbuilder/internal/post"
	"git.home.luguber.info/inful/blogbuilder/internal/render"
)

// buildState is the mutable state threaded through the stages of one build.
type buildState struct {
	gen   *Generator
	id    string
	start time.Time

	postsDir string
	themeDir string
	distDir  string
	commit   string

	posts   []*post.Post
	skipped []string
	idx     *index.Index
	engine  render.Renderer

	outDir  string
	archive string
	report  *BuildReport
}

func newBuildState(g *Generator, id string) *buildState {
	return &buildState{
		gen:      g,
		id:       id,
		start:    g.now(),
		postsDir: config.ResolvePath(g.blogDir, g.cfg.Build.PostsDir),
		themeDir: filepath.Join(g.blogDir, "templates", g.cfg.Build.Theme),
		distDir:  filepath.Join(g.blogDir, "dist"),
	}
}

func (bs *buildState) result(d time.Duration) *Result {
	res := &Result{
		BuildID:   bs.id,
		OutputDir: bs.outDir,
		Archive:   bs.archive,
		Commit:    bs.commit,
		Skipped:   bs.skipped,
		Duration:  d,
		Report:    bs.report,
	}
	if bs.idx != nil {
		res.Posts = len(bs.idx.Posts)
		res.Drafts = bs.idx.Drafts
		res.Categories = bs.idx.Categories.Len()
		res.Tags = bs.idx.Tags.Len()
	}
	return res
}
