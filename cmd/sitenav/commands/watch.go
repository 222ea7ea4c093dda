package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"git.home.luguber.info/inful/sitenav/internal/foundation/errors"
	"git.home.luguber.info/inful/sitenav/internal/logfields"
	"git.home.luguber.info/inful/sitenav/internal/nav"
	"git.home.luguber.info/inful/sitenav/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Debounce time.Duration `default:"500ms" help:"Quiet period after a change before re-validating"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return w.run(ctx, g, root)
}

func (w *WatchCmd) run(ctx context.Context, g *Global, root *CLI) error {
	cfg, err := root.load(g)
	if err != nil {
		return err
	}
	report := w.reporter(g, root)
	report(cfg, nil)

	files := append([]string{root.Config}, root.Overlay...)
	watcher, err := watch.New(files,
		func() (*nav.SiteConfig, error) { return root.load(g) },
		report,
		watch.WithDebounce(w.Debounce),
		watch.WithLogger(g.logger()),
	)
	if err != nil {
		return err
	}
	if err := watcher.Start(ctx); err != nil {
		_ = watcher.Stop()
		return err
	}

	<-ctx.Done()
	g.logger().Info("Shutdown signal received, stopping watcher")
	return watcher.Stop()
}

// reporter prints one line per reload. Rejected configurations are reported
// and watching continues.
func (w *WatchCmd) reporter(g *Global, root *CLI) watch.ChangeFunc {
	return func(cfg *nav.SiteConfig, err error) {
		stamp := time.Now().Format(time.TimeOnly)
		if err != nil {
			status := "error"
			if errors.HasCategory(err, errors.CategoryValidation) {
				status = "rejected"
			}
			fmt.Fprintf(g.out(), "%s %s: %s: %v\n", stamp, root.Config, status, err)
			return
		}
		sum, err := cfg.Snapshot()
		if err != nil {
			g.logger().Error("Snapshot failed", logfields.Error(err))
			return
		}
		g.logger().Info("Configuration valid", logfields.ConfigPath(root.Config), logfields.Snapshot(sum))
		fmt.Fprintf(g.out(), "%s %s: ok (%d pages, %s)\n", stamp, root.Config, len(nav.Flatten(cfg)), sum[:12])
	}
}
