package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-builder/internal/config"
	"github.com/jonathan/cv-builder/internal/generation"
	"github.com/jonathan/cv-builder/internal/server"
)

var (
	servePort      int
	serveEphemeral bool
	serveBrowser   bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the editor, rendering, export and job matching over REST, with a Server-Sent Events stream of changes at /api/events.`,
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().BoolVar(&serveEphemeral, "ephemeral", false, "Keep versions in memory only")
	serveCmd.Flags().BoolVar(&serveBrowser, "use-browser", false, "Fall back to headless Chrome for JS-rendered job postings")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveEphemeral {
		cfg.Storage = config.StorageMemory
	}
	if cmd.Flags().Changed("port") || cfg.Port == 0 {
		cfg.Port = servePort
	}

	a, err := openAppWith(cmd, cfg)
	if err != nil {
		return err
	}
	defer a.close()

	// The editor works without a model; only the generative endpoints need one.
	var gen *generation.Generator
	if g, err := a.generator(cmd.Context()); err != nil {
		log.Printf("Text generation disabled: %v", err)
	} else {
		gen = g
	}

	srv, err := server.New(server.Config{
		Port:       cfg.Port,
		Store:      a.store,
		Generator:  gen,
		ChromePath: cfg.ChromePath,
		UseBrowser: serveBrowser || cfg.UseBrowser,
		Verbose:    cfg.Verbose,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
