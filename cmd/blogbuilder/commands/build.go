package commands

import (
	"fmt"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Name  string `short:"n" required:"" help:"Blog directory"`
	Theme string `short:"t" help:"Theme under <blog>/templates (default: build.theme)"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root, b.Name, b.Theme)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	rt, err := newBuildEnv(ctx, cfg, b.Name)
	if err != nil {
		return err
	}
	defer rt.Close()

	res, err := rt.Generate(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(g.out(), "Blog generated successfully in: %s\n", res.OutputDir)
	if res.Archive != "" {
		fmt.Fprintf(g.out(), "ZIP archive created: %s\n", res.Archive)
	}
	return nil
}
