package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/heightfield/server"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve heightmaps to preview clients over a websocket",
		Long: `Starts the preview server. Clients connect to /ws and send one JSON request
per map; /healthz reports liveness. Stops on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				a.cfg.Server.Addr = addr
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return a.serve(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: from config)")

	return cmd
}

func (a *app) serve(ctx context.Context) error {
	srv := server.New(server.Config{
		Addr:       a.cfg.Server.Addr,
		MaxCells:   a.cfg.Server.MaxCells,
		MaxOctaves: a.cfg.Server.MaxOctaves,
		Workers:    a.cfg.Noise.Workers,
	}, a.logger)

	return srv.ListenAndServe(ctx)
}
