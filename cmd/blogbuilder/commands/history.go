package commands

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	foundation "git.home.luguber.info/inful/blogbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/history"
)

// HistoryCmd implements the 'history' command.
type HistoryCmd struct {
	Name  string `short:"n" required:"" help:"Blog directory"`
	Limit int    `short:"l" default:"10" help:"Number of builds to show (0 for all)"`
}

func (h *HistoryCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root, h.Name, "")
	if err != nil {
		return err
	}
	if cfg.History.Database == "" {
		return foundation.ValidationError("build history is disabled (set history.database)").Build()
	}
	store, err := history.Open(config.ResolvePath(h.Name, cfg.History.Database))
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	records, err := store.List(context.Background(), h.Limit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(g.out(), "No builds recorded")
		return nil
	}

	tw := tabwriter.NewWriter(g.out(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STARTED\tSTATUS\tDURATION\tPOSTS\tSKIPPED\tBUILD ID\tOUTPUT")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.Status,
			r.Duration.Round(time.Millisecond),
			r.Posts,
			r.Skipped,
			r.BuildID,
			r.OutputDir)
	}
	return tw.Flush()
}
