package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-docgen/internal/config"
	"github.com/jonathan/resume-docgen/internal/server"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  `Start an HTTP server that exposes endpoints for generating resume documents.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(configPath, config.Config{Port: servePort, Verbose: verbose})
	if err != nil {
		return err
	}

	srv, err := server.New(server.Config{
		Port:     cfg.Port,
		Defaults: cfg,
		Logger:   newLogger(cfg),
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
