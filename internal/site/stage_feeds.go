package site

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/blogbuilder/internal/analytics"
	"git.home.luguber.info/inful/blogbuilder/internal/feeds"
	foundation "git.home.luguber.info/inful/blogbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
)

func stageFeeds(_ context.Context, bs *buildState) error {
	em := feeds.NewEmitter(bs.gen.cfg, feeds.WithClock(func() time.Time { return bs.start }))

	sitemap, err := em.Sitemap(bs.idx)
	if err != nil {
		return foundation.WrapError(err, foundation.CategoryBuild, "generate sitemap").Fatal().Build()
	}
	rss, err := em.RSS(bs.idx)
	if err != nil {
		return foundation.WrapError(err, foundation.CategoryBuild, "generate rss feed").Fatal().Build()
	}
	atom, err := em.Atom(bs.idx)
	if err != nil {
		return foundation.WrapError(err, foundation.CategoryBuild, "generate atom feed").Fatal().Build()
	}

	files := []struct {
		name string
		data []byte
	}{
		{"robots.txt", []byte(em.Robots())},
		{"sitemap.xml", sitemap},
		{"rss.xml", []byte(rss)},
		{"atom.xml", []byte(atom)},
	}
	for _, f := range files {
		if err := writeOutput(bs.outDir, f.name, f.data); err != nil {
			return err
		}
	}
	return nil
}

func stageAnalytics(_ context.Context, bs *buildState) error {
	id := bs.gen.cfg.Analytics.TrackingID
	if id == "" {
		return nil
	}
	n, err := analytics.InjectTree(bs.outDir, id)
	if err != nil {
		return foundation.WrapError(err, foundation.CategoryFileSystem, "inject analytics").
			WithContext("path", bs.outDir).Fatal().Build()
	}
	slog.Debug("Injected analytics snippet", logfields.Count(n))
	return nil
}

func writeOutput(dir, name string, data []byte) error {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return foundation.WrapError(err, foundation.CategoryFileSystem, "write output").
			WithContext("path", path).Fatal().Build()
	}
	return nil
}
