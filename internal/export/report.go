package export

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jonathan/cv-builder/internal/types"
)

const (
	summarySheet  = "Summary"
	keywordsSheet = "Keywords"
)

// ReportContentType is the media type of an .xlsx workbook.
const ReportContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportFilename names the match report for a version, e.g. "Backend_Roles_Match.xlsx".
func ReportFilename(versionName string) string {
	base := BaseName(versionName)
	return strings.ReplaceAll(base, " ", "_") + "_Match.xlsx"
}

// Report is the content of a match report workbook.
type Report struct {
	VersionName string
	JobTitle    string
	Generated   time.Time
	Result      *types.MatchResponse
	// Found lists analysis keywords already present in the CV.
	Found []string
}

// WriteMatchReport writes an .xlsx workbook with the match score, summary,
// gaps and keyword coverage.
func WriteMatchReport(w io.Writer, r Report) error {
	f, err := buildReport(r)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if err := f.Write(w); err != nil {
		return &Error{Format: "xlsx", Message: "failed to write workbook", Cause: err}
	}
	return nil
}

// MatchReport saves the report to path, adding the .xlsx extension if missing.
func MatchReport(r Report, path string) (string, error) {
	if !strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		path += ".xlsx"
	}
	path = filepath.Clean(path)

	f, err := buildReport(r)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	if err := f.SaveAs(path); err != nil {
		return "", &Error{Format: "xlsx", Message: "failed to save " + path, Cause: err}
	}
	return path, nil
}

func buildReport(r Report) (*excelize.File, error) {
	if r.Result == nil || r.Result.Analysis == nil {
		return nil, &Error{Format: "xlsx", Message: "match result is empty"}
	}
	if r.Generated.IsZero() {
		r.Generated = time.Now()
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		_ = f.Close()
		return nil, &Error{Format: "xlsx", Message: "failed to name sheet", Cause: err}
	}
	if _, err := f.NewSheet(keywordsSheet); err != nil {
		_ = f.Close()
		return nil, &Error{Format: "xlsx", Message: "failed to add sheet", Cause: err}
	}

	if err := writeSummarySheet(f, r); err != nil {
		_ = f.Close()
		return nil, &Error{Format: "xlsx", Message: "failed to write summary sheet", Cause: err}
	}
	if err := writeKeywordsSheet(f, r); err != nil {
		_ = f.Close()
		return nil, &Error{Format: "xlsx", Message: "failed to write keywords sheet", Cause: err}
	}
	return f, nil
}

type cellWriter struct {
	f     *excelize.File
	sheet string
	err   error
}

func (c *cellWriter) set(cell string, value any) {
	if c.err == nil {
		c.err = c.f.SetCellValue(c.sheet, cell, value)
	}
}

func (c *cellWriter) style(from, to string, style int) {
	if c.err == nil {
		c.err = c.f.SetCellStyle(c.sheet, from, to, style)
	}
}

func writeSummarySheet(f *excelize.File, r Report) error {
	a := r.Result.Analysis

	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	label, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	scoreColor := "C00000"
	if a.IsStrongMatch() {
		scoreColor = "00B050"
	}
	score, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 16, Color: scoreColor}})
	if err != nil {
		return err
	}
	wrap, err := f.NewStyle(&excelize.Style{Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"}})
	if err != nil {
		return err
	}

	if err := f.SetColWidth(summarySheet, "A", "A", 22); err != nil {
		return err
	}
	if err := f.SetColWidth(summarySheet, "B", "B", 80); err != nil {
		return err
	}

	w := &cellWriter{f: f, sheet: summarySheet}
	w.set("A1", "CV Match Report")
	w.style("A1", "B1", header)

	rows := []struct {
		label string
		value any
	}{
		{"Version", r.VersionName},
		{"Job", r.JobTitle},
		{"Generated", r.Generated.Format("2006-01-02 15:04")},
		{"Match Score", fmt.Sprintf("%d%%", a.RoundedScore())},
		{"Tailored Summary", r.Result.Summary},
		{"Suggestions", a.Suggestions},
		{"Gaps", strings.Join(a.Gaps, "\n")},
	}
	for i, row := range rows {
		n := i + 3
		w.set(fmt.Sprintf("A%d", n), row.label)
		w.style(fmt.Sprintf("A%d", n), fmt.Sprintf("A%d", n), label)
		w.set(fmt.Sprintf("B%d", n), row.value)
		if row.label == "Match Score" {
			w.style(fmt.Sprintf("B%d", n), fmt.Sprintf("B%d", n), score)
		} else {
			w.style(fmt.Sprintf("B%d", n), fmt.Sprintf("B%d", n), wrap)
		}
	}
	return w.err
}

func writeKeywordsSheet(f *excelize.File, r Report) error {
	a := r.Result.Analysis

	found := make(map[string]bool, len(r.Found))
	for _, k := range r.Found {
		found[strings.ToLower(k)] = true
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	for col, width := range map[string]float64{"A": 20, "B": 50, "C": 12} {
		if err := f.SetColWidth(keywordsSheet, col, col, width); err != nil {
			return err
		}
	}

	w := &cellWriter{f: f, sheet: keywordsSheet}
	w.set("A1", "Category")
	w.set("B1", "Keyword")
	w.set("C1", "In CV")
	w.style("A1", "C1", bold)

	row := 2
	groups := []struct {
		name  string
		items []string
	}{
		{"Skills", a.Keywords.Skills},
		{"Tools", a.Keywords.Tools},
		{"Responsibilities", a.Keywords.Responsibilities},
	}
	for _, g := range groups {
		for _, item := range g.items {
			w.set(fmt.Sprintf("A%d", row), g.name)
			w.set(fmt.Sprintf("B%d", row), item)
			if g.name != "Responsibilities" {
				inCV := "no"
				if found[strings.ToLower(item)] {
					inCV = "yes"
				}
				w.set(fmt.Sprintf("C%d", row), inCV)
			}
			row++
		}
	}
	return w.err
}
