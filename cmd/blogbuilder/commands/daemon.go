package commands

import (
	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/daemon"
	"git.home.luguber.info/inful/blogbuilder/internal/git"
)

// DaemonCmd implements the 'daemon' command.
type DaemonCmd struct {
	Name  string `short:"n" required:"" help:"Blog directory"`
	Theme string `short:"t" help:"Theme under <blog>/templates (default: build.theme)"`
}

func (d *DaemonCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root, d.Name, d.Theme)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	env, err := newBuildEnv(ctx, cfg, d.Name)
	if err != nil {
		return err
	}
	defer env.Close()

	var syncer daemon.Syncer
	if cfg.Source.Enabled() {
		syncer = git.NewClient(cfg.Source)
	}
	dm, err := daemon.New(env, syncer, config.ResolvePath(d.Name, cfg.Build.PostsDir), cfg.Daemon.IntervalDuration())
	if err != nil {
		return err
	}
	return dm.Run(ctx)
}
