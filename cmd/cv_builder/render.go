package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-builder/internal/rendering"
	"github.com/jonathan/cv-builder/internal/sections"
)

var (
	renderOut  string
	renderBody bool
	renderJSON bool
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the active version as HTML",
	Long:  "Render the active version as a standalone HTML page (print-ready), only its body markup with --body, or the laid-out document as JSON with --json.",
	Args:  cobra.NoArgs,
	RunE:  runRender,
}

func runRender(cmd *cobra.Command, _ []string) error {
	if renderBody && renderJSON {
		return fmt.Errorf("--body and --json are mutually exclusive; provide only one")
	}

	return withApp(cmd, func(a *app) error {
		doc := rendering.RenderVersion(a.store.Active())

		var out []byte
		switch {
		case renderJSON:
			b, err := json.MarshalIndent(doc, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal document: %w", err)
			}
			out = append(b, '\n')
		case renderBody:
			html, err := rendering.RenderBodyHTML(doc)
			if err != nil {
				return err
			}
			out = []byte(html)
		default:
			html, err := rendering.RenderHTML(doc)
			if err != nil {
				return err
			}
			out = []byte(html)
		}

		if renderOut == "" {
			_, err := cmd.OutOrStdout().Write(out)
			return err
		}
		if err := os.WriteFile(renderOut, out, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", renderOut, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", renderOut)
		return nil
	})
}

var sectionsCmd = &cobra.Command{
	Use:   "sections",
	Short: "List the sections in the active version's order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, func(a *app) error {
			v := a.store.Active()
			out := cmd.OutOrStdout()
			for i, id := range v.SectionOrder {
				label, ok := sections.Label(id)
				if !ok {
					continue
				}
				state := ""
				if v.IsHidden(id) {
					state = "(hidden)"
				}
				fmt.Fprintf(out, "%d. %-15s %-26s %s\n", i+1, id, label, state)
			}
			return nil
		})
	},
}

func init() {
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "Write to a file instead of stdout")
	renderCmd.Flags().BoolVar(&renderBody, "body", false, "Render only the document markup")
	renderCmd.Flags().BoolVar(&renderJSON, "json", false, "Print the laid-out document as JSON")

	rootCmd.AddCommand(renderCmd, sectionsCmd)
}
