package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/vango-dev/refstore/internal/config"
	"github.com/vango-dev/refstore/internal/loginpage"
	"github.com/vango-dev/refstore/pkg/server"
)

func serveCmd() *cobra.Command {
	var (
		dir   string
		addr  string
		debug bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the login screen",
		Long: `Serve the login screen over HTTP and WebSocket.

Settings come from refstore.json in --dir if present, then from
.env/.env.local and the environment (REFSTORE_ADDR, REFSTORE_DEBUG),
then from flags.

Routes:
  /         page shell with the server-rendered screen
  /ws       session event socket
  /metrics  Prometheus metrics
  /healthz  liveness check

Examples:
  refstore serve
  refstore serve --addr=127.0.0.1:3000 --debug`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, dir, addr, debug)
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "Directory containing refstore.json")
	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from refstore.json)")
	cmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging")

	return cmd
}

func runServe(cmd *cobra.Command, dir, addr string, debug bool) error {
	out := cmd.OutOrStdout()

	loaded, err := config.LoadEnvFiles()
	if err != nil {
		return err
	}
	for _, name := range loaded {
		info(out, "loaded %s", name)
	}

	cfg, err := config.LoadOptional(dir)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return err
	}

	sc := cfg.ServerConfig()
	if addr != "" {
		sc.Address = addr
	}
	if debug {
		sc.DebugMode = true
	}
	if sc.DebugMode {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	srv := server.New(loginpage.App, sc)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	success(out, "listening on %s", sc.Address)
	return srv.Run(ctx)
}
