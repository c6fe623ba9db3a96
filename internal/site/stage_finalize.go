package site

import (
	"context"
	"log/slog"
	"path/filepath"

	"git.home.luguber.info/inful/blogbuilder/internal/archive"
	foundation "git.home.luguber.info/inful/blogbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
	"git.home.luguber.info/inful/blogbuilder/internal/manifest"
	"git.home.luguber.info/inful/blogbuilder/internal/urls"
)

func stageReport(_ context.Context, bs *buildState) error {
	now := bs.gen.now()
	bs.report = &BuildReport{
		BuildTime:  now.Sub(bs.start),
		Posts:      len(bs.idx.Posts),
		Categories: bs.idx.Categories.Len(),
		Tags:       bs.idx.Tags.Len(),
		Skipped:    len(bs.skipped),
		Generated:  now,
	}
	if err := writeOutput(bs.outDir, ReportFileName, []byte(bs.report.String())); err != nil {
		return err
	}

	m := &manifest.BuildManifest{
		ID:        bs.id,
		Timestamp: bs.start,
		Site:      bs.gen.cfg.Site.Title,
		Theme:     bs.gen.cfg.Build.Theme,
		Commit:    bs.commit,
		Posts:     make([]manifest.PostEntry, 0, len(bs.idx.Posts)),
		Skipped:   bs.skipped,
		Duration:  bs.report.BuildTime.Milliseconds(),
	}
	for _, p := range bs.idx.Posts {
		m.Posts = append(m.Posts, manifest.PostEntry{
			Source:      p.SourcePath,
			URL:         urls.PostURL(p.Slug, p.Title, p.Date),
			Fingerprint: manifest.Fingerprint(p),
		})
	}
	for _, p := range bs.posts {
		if p.Draft {
			m.Drafts = append(m.Drafts, p.SourcePath)
		}
	}
	path := filepath.Join(bs.outDir, manifest.FileName)
	if err := m.WriteFile(path); err != nil {
		return foundation.WrapError(err, foundation.CategoryFileSystem, "write manifest").
			WithContext("path", path).Fatal().Build()
	}
	return nil
}

func stageArchive(_ context.Context, bs *buildState) error {
	if !bs.gen.cfg.Build.ArchiveEnabled() {
		slog.Debug("Archive disabled")
		return nil
	}
	zipPath := bs.outDir + ".zip"
	n, err := archive.Zip(bs.outDir, zipPath)
	if err != nil {
		return foundation.WrapError(err, foundation.CategoryBuild, "create archive").
			WithContext("path", zipPath).Fatal().Build()
	}
	bs.archive = zipPath
	slog.Debug("Created archive", logfields.Path(zipPath), logfields.Count(n))
	return nil
}
