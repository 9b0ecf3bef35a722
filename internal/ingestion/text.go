// Package ingestion turns job descriptions from files, links, or pasted text
// into clean plain text for the matcher.
package ingestion

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jonathan/cv-builder/internal/fetch"
)

var (
	// ErrEmptyContent is returned when a source yields no usable text.
	ErrEmptyContent = errors.New("no text content found")
	// ErrUnsupportedFormat is returned for file types that cannot be read.
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

var (
	spaceRun      = regexp.MustCompile(`\s+`)
	blankLineRun  = regexp.MustCompile(`\n\n\n+`)
	bulletGlyphRE = regexp.MustCompile(`^([•·▪●◦‣])\s*`)
)

// CleanText normalizes line endings and whitespace while keeping headings,
// bullets and up to one blank line between paragraphs.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.ReplaceAll(content, "\u00a0", " ")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned = append(cleaned, cleanLine(line))
	}

	result := blankLineRun.ReplaceAllString(strings.Join(cleaned, "\n"), "\n\n")
	return strings.TrimSpace(result)
}

func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	if strings.TrimSpace(line) == "" {
		return ""
	}

	trimmed := strings.TrimLeft(line, " \t")
	indent := len(line) - len(trimmed)

	if strings.HasPrefix(trimmed, "#") {
		return trimmed
	}

	// Word processors and PDFs emit glyph bullets; fold them to markdown.
	trimmed = bulletGlyphRE.ReplaceAllString(trimmed, "- ")

	if strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") {
		marker, rest := trimmed[:2], trimmed[2:]
		return strings.Repeat(" ", indent) + marker + spaceRun.ReplaceAllString(strings.TrimSpace(rest), " ")
	}

	return strings.Repeat(" ", indent) + spaceRun.ReplaceAllString(trimmed, " ")
}

// FormatForPath maps a file extension to a source format.
func FormatForPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md", ".markdown", "":
		return FormatText, nil
	case ".html", ".htm":
		return FormatHTML, nil
	case ".pdf":
		return FormatPDF, nil
	case ".docx":
		return FormatDOCX, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// IngestFromFile reads a job description from disk, picking a reader by
// extension, and returns the cleaned text with metadata.
func IngestFromFile(path string) (string, *Metadata, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return "", nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("file not found: %w", err)
		}
		return "", nil, fmt.Errorf("failed to read file: %w", err)
	}

	raw, title, err := extractText(format, data)
	if err != nil {
		return "", nil, err
	}

	cleaned := CleanText(raw)
	if cleaned == "" {
		return "", nil, fmt.Errorf("%s: %w", path, ErrEmptyContent)
	}

	metadata := NewMetadata(cleaned, format)
	metadata.Path = path
	metadata.Title = title
	return cleaned, metadata, nil
}

// IngestText cleans pasted job description text.
func IngestText(text string) (string, *Metadata, error) {
	cleaned := CleanText(text)
	if cleaned == "" {
		return "", nil, ErrEmptyContent
	}
	return cleaned, NewMetadata(cleaned, FormatText), nil
}

func extractText(format string, data []byte) (text string, title string, err error) {
	switch format {
	case FormatPDF:
		text, err = extractPDFText(data)
	case FormatDOCX:
		text, err = extractDocxText(data)
	case FormatHTML:
		html := string(data)
		title = fetch.PageTitle(html)
		text, err = fetch.ExtractMainText(html, fetch.JobPostingSelectors(), fetch.PlatformNoiseSelectors(fetch.PlatformUnknown)...)
	default:
		text = string(data)
	}
	return text, title, err
}
