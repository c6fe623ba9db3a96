package site

import (
	"context"
	"path"

	"git.home.luguber.info/inful/blogbuilder/internal/pages"
	"git.home.luguber.info/inful/blogbuilder/internal/post"
	"git.home.luguber.info/inful/blogbuilder/internal/render"
	"git.home.luguber.info/inful/blogbuilder/internal/urls"
	"git.home.luguber.info/inful/blogbuilder/internal/workspace"
)

func stageOutput(_ context.Context, bs *buildState) error {
	dir, err := workspace.NewManager(bs.distDir, bs.gen.cfg.Build.OutputDirFormat).Create(bs.start)
	if err != nil {
		return err
	}
	bs.outDir = dir
	return nil
}

func stageRender(ctx context.Context, bs *buildState) error {
	asm := pages.NewAssembler(bs.gen.cfg)
	write := func(tpl string, pctx pages.Context, rel string) error {
		if err := ctx.Err(); err != nil {
			return canceled(StageRender, err)
		}
		return render.WriteFile(bs.engine, tpl, pctx, bs.outDir, rel)
	}

	for _, p := range bs.idx.Posts {
		if err := write(render.TemplatePost, asm.Post(p), urls.PostURL(p.Slug, p.Title, p.Date)); err != nil {
			return err
		}
	}

	for _, page := range pages.Paginate(bs.idx.Posts, bs.gen.cfg.Build.PostsPerPage) {
		if err := write(render.TemplateMain, asm.Listing(bs.idx, page), page.OutputPath()); err != nil {
			return err
		}
	}

	labels := []struct {
		names func() []string
		posts func(string) []*post.Post
		ctx   func(string, []*post.Post) pages.Context
		url   func(string) string
	}{
		{bs.idx.Categories.Labels, bs.idx.Categories.Posts, asm.Category, urls.CategoryURL},
		{bs.idx.Tags.Labels, bs.idx.Tags.Posts, asm.Tag, urls.TagURL},
	}
	for _, l := range labels {
		for _, label := range l.names() {
			rel := path.Join(l.url(label), "index.html")
			if err := write(render.TemplateMain, l.ctx(label, l.posts(label)), rel); err != nil {
				return err
			}
		}
	}

	return write(render.TemplateNotFound, asm.NotFound(), "404.html")
}
