// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jonathan/cv-builder/internal/ingestion"
	"github.com/jonathan/cv-builder/internal/sections"
	"github.com/jonathan/cv-builder/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(line))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad truncates or right-pads line to the box's inner width, counting runes.
func pad(line string) string {
	width := boxWidth - 4
	n := utf8.RuneCountInString(line)
	if n > width {
		runes := []rune(line)
		return string(runes[:width-3]) + "..."
	}
	return line + strings.Repeat(" ", width-n)
}

func writeList(sb *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(sb, "%s:\n", heading)
	count := min(len(items), maxItemsToShow)
	for _, item := range items[:count] {
		fmt.Fprintf(sb, "  • %s\n", item)
	}
	if len(items) > maxItemsToShow {
		fmt.Fprintf(sb, "  ... and %d more\n", len(items)-maxItemsToShow)
	}
}

// PrintVersions lists every version, marking the active one.
func (p *Printer) PrintVersions(versions []types.CVVersion, activeID string) {
	var sb strings.Builder
	for _, v := range versions {
		marker := " "
		if v.ID == activeID {
			marker = "*"
		}
		fmt.Fprintf(&sb, "%s %s  %s\n", marker, shortID(v.ID), v.Name)
		fmt.Fprintf(&sb, "    modified %s\n", v.ModifiedAt().UTC().Format(time.DateTime))
	}
	if sb.Len() == 0 {
		sb.WriteString("(no versions)")
	}
	p.printBox(fmt.Sprintf("VERSIONS (%d)", len(versions)), sb.String())
}

// PrintVersion shows one version's layout: section order with visibility and
// entry counts.
func (p *Printer) PrintVersion(v types.CVVersion) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Name:   %s\n", v.Name)
	fmt.Fprintf(&sb, "ID:     %s\n", v.ID)
	if v.Data.PersonalInfo.FullName != "" {
		fmt.Fprintf(&sb, "Owner:  %s\n", v.Data.PersonalInfo.FullName)
	}
	sb.WriteString("\nSections:\n")
	for i, id := range v.SectionOrder {
		label, _ := sections.Label(id)
		state := "shown"
		if v.IsHidden(id) {
			state = "hidden"
		}
		fmt.Fprintf(&sb, "  %d. %-22s %-6s %s\n", i+1, label, state, countFor(v, id))
	}
	p.printBox("VERSION", sb.String())
}

func countFor(v types.CVVersion, sectionID string) string {
	switch sectionID {
	case sections.Experience:
		return fmt.Sprintf("(%d)", len(v.Data.Experiences))
	case sections.Projects:
		return fmt.Sprintf("(%d)", len(v.Data.Projects))
	case sections.Education:
		return fmt.Sprintf("(%d)", len(v.Data.Education))
	case sections.Skills:
		return fmt.Sprintf("(%d)", len(v.Data.SkillGroups))
	case sections.Certifications:
		return fmt.Sprintf("(%d)", len(v.Data.Certifications))
	}
	return ""
}

// PrintAnalysis outputs the match score, keyword coverage and gaps.
func (p *Printer) PrintAnalysis(a *types.JDAnalysis, found, missing []string) {
	if a == nil {
		return
	}

	var sb strings.Builder
	verdict := "needs work"
	if a.IsStrongMatch() {
		verdict = "strong match"
	}
	fmt.Fprintf(&sb, "Match Score: %d%% (%s)\n\n", a.RoundedScore(), verdict)

	writeList(&sb, "Skills", a.Keywords.Skills)
	writeList(&sb, "Tools", a.Keywords.Tools)
	writeList(&sb, "Already in CV", found)
	writeList(&sb, "Not in CV", missing)
	writeList(&sb, "Gaps", a.Gaps)

	if a.Suggestions != "" {
		sb.WriteString("\nSuggestions:\n")
		sb.WriteString(wrap(a.Suggestions, boxWidth-6, "  "))
	}

	p.printBox("JOB MATCH", sb.String())
}

// PrintSummary outputs a generated summary.
func (p *Printer) PrintSummary(summary string) {
	if strings.TrimSpace(summary) == "" {
		return
	}
	p.printBox("TAILORED SUMMARY", wrap(summary, boxWidth-4, ""))
}

// PrintIngested reports where a job description came from.
func (p *Printer) PrintIngested(meta *ingestion.Metadata) {
	if meta == nil {
		return
	}
	var sb strings.Builder
	source := meta.URL
	if source == "" {
		source = meta.Path
	}
	if source == "" {
		source = "(pasted)"
	}
	fmt.Fprintf(&sb, "Source:   %s\n", source)
	fmt.Fprintf(&sb, "Format:   %s\n", meta.Format)
	if meta.Platform != "" {
		fmt.Fprintf(&sb, "Platform: %s\n", meta.Platform)
	}
	if meta.Title != "" {
		fmt.Fprintf(&sb, "Title:    %s\n", meta.Title)
	}
	fmt.Fprintf(&sb, "Length:   %d chars\n", meta.Chars)
	p.printBox("JOB DESCRIPTION", sb.String())
}

// wrap breaks text on spaces so each line fits width runes.
func wrap(text string, width int, indent string) string {
	var sb strings.Builder
	line := indent
	for _, word := range strings.Fields(text) {
		if utf8.RuneCountInString(line)+utf8.RuneCountInString(word) > width && strings.TrimSpace(line) != "" {
			sb.WriteString(strings.TrimRight(line, " "))
			sb.WriteString("\n")
			line = indent
		}
		line += word + " "
	}
	if strings.TrimSpace(line) != "" {
		sb.WriteString(strings.TrimRight(line, " "))
		sb.WriteString("\n")
	}
	return sb.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
