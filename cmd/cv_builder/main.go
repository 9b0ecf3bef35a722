// Package main provides the cv_builder command line: version management, form editing,
// rendering, export, job matching and the local REST API.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configPath  string
	dataDir     string
	storageName string
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:           "cv_builder",
	Short:         "Build, tailor and export CVs",
	Long:          "cv_builder keeps named CV versions, edits them section by section, renders them to HTML, Word and PDF, and tailors them to job descriptions with Gemini.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON config file")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Directory for file storage (default ~/.cv-builder)")
	rootCmd.PersistentFlags().StringVar(&storageName, "storage", "", "Storage backend: file, postgres or memory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
