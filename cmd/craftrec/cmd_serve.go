package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rushteam/craftrec/catalog"
	"github.com/rushteam/craftrec/pkg/logging"
	"github.com/rushteam/craftrec/server"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP recommendation server",
		Long:  "Load the catalog, open the click/preference store and serve the HTTP API.\nWith catalog.watch enabled the catalog file is reloaded on change.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, opts.configPath)
		},
	}
}

func runServe(ctx context.Context, configPath string) error {
	a, err := newApp(ctx, configPath)
	if err != nil {
		return err
	}
	defer a.Close()

	log := logging.Component("main")
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.New(a.rec, a.cfg.Server).Run(ctx)
	})
	if a.cfg.Catalog.Watch {
		w := &catalog.Watcher{
			Path:     a.cfg.Catalog.Path,
			Reloader: a.reloader,
			Debounce: a.cfg.Catalog.Debounce,
		}
		g.Go(func() error {
			// 监听失败不影响服务，只是失去热加载
			if err := w.Run(ctx); err != nil {
				log.Error().Err(err).Msg("catalog watcher stopped")
			}
			return nil
		})
	}
	return g.Wait()
}
