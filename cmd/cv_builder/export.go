package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-builder/internal/export"
	"github.com/jonathan/cv-builder/internal/rendering"
)

var (
	exportOut     string
	exportTimeout time.Duration
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the active version as a Word document or PDF",
}

var exportWordCmd = &cobra.Command{
	Use:   "word",
	Short: "Write a Word-compatible .doc file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, func(a *app) error {
			v := a.store.Active()
			body, err := rendering.RenderBodyHTML(rendering.RenderVersion(v))
			if err != nil {
				return err
			}
			return writeExport(cmd, exportPath(export.WordFilename(v.Data.PersonalInfo.FullName)), export.WordDocument(body))
		})
	},
}

var exportPDFCmd = &cobra.Command{
	Use:   "pdf",
	Short: "Print the active version to PDF with headless Chrome",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, func(a *app) error {
			v := a.store.Active()
			html, err := rendering.RenderHTML(rendering.RenderVersion(v))
			if err != nil {
				return err
			}
			pdf, err := export.PDF(cmd.Context(), html, export.PDFOptions{
				ChromePath: a.cfg.ChromePath,
				Timeout:    exportTimeout,
			})
			if err != nil {
				return err
			}
			return writeExport(cmd, exportPath(export.PDFFilename(v.Data.PersonalInfo.FullName)), pdf)
		})
	},
}

// exportPath is --out, or the default file name in the current directory. An --out that is an
// existing directory receives the default file name.
func exportPath(defaultName string) string {
	if exportOut == "" {
		return defaultName
	}
	if info, err := os.Stat(exportOut); err == nil && info.IsDir() {
		return filepath.Join(exportOut, defaultName)
	}
	return exportOut
}

func writeExport(cmd *cobra.Command, path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bytes)\n", path, len(data))
	return nil
}

func init() {
	exportCmd.PersistentFlags().StringVarP(&exportOut, "out", "o", "", "Output file or directory")
	exportPDFCmd.Flags().DurationVar(&exportTimeout, "timeout", 0, "Chrome timeout (default 60s)")

	exportCmd.AddCommand(exportWordCmd, exportPDFCmd)
	rootCmd.AddCommand(exportCmd)
}
