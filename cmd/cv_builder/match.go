package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-builder/internal/export"
	"github.com/jonathan/cv-builder/internal/generation"
	"github.com/jonathan/cv-builder/internal/ingestion"
	"github.com/jonathan/cv-builder/internal/observability"
	"github.com/jonathan/cv-builder/internal/versions"
)

var (
	jdText       string
	jdFile       string
	jdURL        string
	jobTitle     string
	applySummary bool
	reportPath   string
	useBrowser   bool
	againstCV    bool
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Analyze a job description against the active version and draft a tailored summary",
	Long: `Analyze a job description against the active version: keywords, gaps, match score and
suggestions, plus a tailored professional summary.

The job description comes from exactly one of --jd (text, or - for stdin), --jd-file
(.txt, .html, .pdf or .docx) or --jd-url.`,
	Args: cobra.NoArgs,
	RunE: runMatch,
}

func init() {
	matchCmd.Flags().StringVar(&jdText, "jd", "", "Job description text, or - to read stdin")
	matchCmd.Flags().StringVar(&jdFile, "jd-file", "", "Path to a job description file")
	matchCmd.Flags().StringVar(&jdURL, "jd-url", "", "URL of a job posting")
	matchCmd.Flags().StringVar(&jobTitle, "title", "", "Job title for the report (default: page title)")
	matchCmd.Flags().BoolVar(&applySummary, "apply-summary", false, "Save the generated summary to the active version")
	matchCmd.Flags().StringVar(&reportPath, "report", "", "Also write an .xlsx match report to this path")
	matchCmd.Flags().BoolVar(&useBrowser, "use-browser", false, "Fall back to headless Chrome for JS-rendered postings")
	matchCmd.Flags().BoolVar(&againstCV, "against-cv", false, "Score the job against the active version instead of the posting alone")

	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, _ []string) error {
	return withApp(cmd, func(a *app) error {
		jd, meta, err := readJobDescription(cmd, a)
		if err != nil {
			return err
		}
		if a.cfg.Verbose {
			a.printer.PrintIngested(meta)
		}

		gen, err := a.generator(cmd.Context())
		if err != nil {
			return err
		}

		var opts []generation.MatchOption
		if againstCV {
			opts = append(opts, generation.AgainstCV())
		}
		version := a.store.Active()
		resp, err := gen.Match(cmd.Context(), version.Data, jd, opts...)
		if err != nil {
			return err
		}

		found, missing := generation.Coverage(resp.Analysis, version.Data)
		a.printer.PrintAnalysis(resp.Analysis, found, missing)
		a.printer.PrintSummary(resp.Summary)

		if applySummary && resp.Summary != "" {
			summary := resp.Summary
			version = a.store.UpdateActive(cmd.Context(), "match:summary", versions.Patch{Summary: &summary})
			fmt.Fprintf(cmd.OutOrStdout(), "Summary saved to %q\n", version.Name)
		}

		if reportPath != "" {
			title := jobTitle
			if title == "" && meta != nil {
				title = meta.Title
			}
			path, err := export.MatchReport(export.Report{
				VersionName: version.Name,
				JobTitle:    title,
				Generated:   time.Now(),
				Result:      resp,
				Found:       found,
			}, reportPath)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", path)
		}
		return nil
	})
}

// readJobDescription loads the job description from whichever source flag was given.
func readJobDescription(cmd *cobra.Command, a *app) (string, *ingestion.Metadata, error) {
	given := 0
	for _, v := range []string{jdText, jdFile, jdURL} {
		if v != "" {
			given++
		}
	}
	if given != 1 {
		return "", nil, fmt.Errorf("exactly one of --jd, --jd-file or --jd-url must be provided")
	}

	switch {
	case jdFile != "":
		return ingestion.IngestFromFile(jdFile)
	case jdURL != "":
		return ingestion.IngestFromURL(cmd.Context(), jdURL, ingestion.URLOptions{
			UseBrowser: useBrowser || a.cfg.UseBrowser,
			ChromePath: a.cfg.ChromePath,
			Verbose:    a.cfg.Verbose,
		})
	}

	text := jdText
	if text == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		text = string(b)
	}
	return ingestion.IngestText(strings.TrimSpace(text))
}

var ingestOut string

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Fetch and clean a job description without analyzing it",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		a := &app{cfg: cfg}
		text, meta, err := readJobDescription(cmd, a)
		if err != nil {
			return err
		}

		observability.NewPrinter(cmd.OutOrStdout()).PrintIngested(meta)
		if ingestOut == "" {
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		}
		if err := os.WriteFile(ingestOut, []byte(text+"\n"), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", ingestOut, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", ingestOut)
		return nil
	},
}

func init() {
	ingestCmd.Flags().StringVar(&jdText, "jd", "", "Job description text, or - to read stdin")
	ingestCmd.Flags().StringVar(&jdFile, "jd-file", "", "Path to a job description file")
	ingestCmd.Flags().StringVar(&jdURL, "jd-url", "", "URL of a job posting")
	ingestCmd.Flags().BoolVar(&useBrowser, "use-browser", false, "Fall back to headless Chrome for JS-rendered postings")
	ingestCmd.Flags().StringVarP(&ingestOut, "out", "o", "", "Write the cleaned text to a file")

	rootCmd.AddCommand(ingestCmd)
}
