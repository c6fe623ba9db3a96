package commands

import (
	"errors"
	"fmt"
	"path/filepath"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/preview"
	"git.home.luguber.info/inful/blogbuilder/internal/workspace"
)

// PreviewCmd implements the 'preview' command.
type PreviewCmd struct {
	Name  string `short:"n" required:"" help:"Blog directory"`
	Theme string `short:"t" help:"Theme under <blog>/templates (default: build.theme)"`
	Port  int    `short:"p" help:"Port to listen on (default: preview.port)"`
}

func (p *PreviewCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root, p.Name, p.Theme)
	if err != nil {
		return err
	}
	port := cfg.Preview.Port
	if p.Port > 0 {
		port = p.Port
	}

	ctx, cancel := signalContext()
	defer cancel()

	env, err := newBuildEnv(ctx, cfg, p.Name)
	if err != nil {
		return err
	}
	defer env.Close()

	initial, err := workspace.NewManager(filepath.Join(p.Name, "dist"), cfg.Build.OutputDirFormat).Latest()
	if err != nil && !errors.Is(err, workspace.ErrNoBuilds) {
		return err
	}

	srv := preview.New(env, preview.Options{
		Addr: fmt.Sprintf(":%d", port),
		WatchDirs: []string{
			config.ResolvePath(p.Name, cfg.Build.PostsDir),
			filepath.Join(p.Name, "templates", cfg.Build.Theme),
			filepath.Join(p.Name, "images"),
		},
		Metrics: env.recorder.HTTPHandler(),
		Initial: initial,
	})
	return srv.Run(ctx)
}
