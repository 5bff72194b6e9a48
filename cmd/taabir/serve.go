package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/taabirhq/taabir/internal/config"
	"github.com/taabirhq/taabir/internal/home"
	"github.com/taabirhq/taabir/internal/server"
)

var (
	serveHost string
	servePort string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Taabir server",
	Long: `Start the Taabir HTTP server.

The server exposes the pipeline stages as HTTP endpoints and hot-reloads
its configuration file.

Examples:
  taabir serve                    # Start on default port 8750
  taabir serve --port 3000        # Start on custom port
  taabir serve --host 0.0.0.0     # Bind to all interfaces`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// Set up logger
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))

		// Get home directory
		h, err := home.New(homeDir)
		if err != nil {
			return err
		}
		if err := h.EnsureExists(); err != nil {
			return err
		}

		// Load configuration (hot reload on file changes)
		path := cfgFile
		if path == "" && h.ConfigExists() {
			path = h.ConfigPath()
		}
		cm, err := config.NewManager(path)
		if err != nil {
			return err
		}
		cm.WatchConfig()

		host := serveHost
		if host == "" {
			host = cm.Get().Server.Host
		}
		port := servePort
		if port == "" {
			port = cm.Get().Server.Port
		}

		srv, err := server.New(server.Config{
			Host:          host,
			Port:          port,
			ConfigManager: cm,
			Home:          h,
			Logger:        logger,
		})
		if err != nil {
			return err
		}

		// Start server (blocks until shutdown)
		return srv.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host to bind to (default from config)")
	serveCmd.Flags().StringVar(&servePort, "port", "", "Port to listen on (default from config)")

	rootCmd.AddCommand(serveCmd)
}
