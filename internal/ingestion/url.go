package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jonathan/cv-builder/internal/fetch"
)

var (
	// ErrHTTPRequestFailed is returned when the page cannot be fetched.
	ErrHTTPRequestFailed = errors.New("HTTP request failed")
	// ErrContentExtractionFailed is returned when no text can be pulled from the page.
	ErrContentExtractionFailed = errors.New("content extraction failed")
)

// URLOptions controls how a posting link is fetched.
type URLOptions struct {
	// UseBrowser re-renders short pages in headless Chrome.
	UseBrowser bool
	ChromePath string
	Verbose    bool
	Fetch      *fetch.Options
}

// IngestFromURL fetches a job posting, extracts its main text using
// board-specific selectors and returns the cleaned text with metadata.
func IngestFromURL(ctx context.Context, urlStr string, opts URLOptions) (string, *Metadata, error) {
	platform := fetch.DetectPlatform(urlStr)
	if opts.Verbose {
		log.Printf("[VERBOSE] URL: %s (platform: %s)", urlStr, platform)
	}

	result, err := fetch.URL(ctx, urlStr, opts.Fetch)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}
	if opts.Verbose {
		log.Printf("[VERBOSE] Fetched %d bytes (%s)", len(result.HTML), result.ContentType)
	}

	if !result.IsHTML() {
		cleaned := CleanText(result.HTML)
		if cleaned == "" {
			return "", nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, ErrEmptyContent)
		}
		metadata := NewMetadata(cleaned, FormatText)
		metadata.URL = urlStr
		metadata.Platform = string(platform)
		return cleaned, metadata, nil
	}

	contentSelectors := fetch.PlatformContentSelectors(platform)
	noiseSelectors := fetch.PlatformNoiseSelectors(platform)
	html := result.HTML

	text, err := fetch.ExtractMainText(html, contentSelectors, noiseSelectors...)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}

	if opts.UseBrowser && fetch.ShouldUseBrowser(text) {
		if opts.Verbose {
			log.Printf("[VERBOSE] Content too short (%d chars < %d), falling back to browser rendering", len(text), fetch.MinContentLength)
		}
		rendered, browserErr := fetch.WithBrowser(ctx, urlStr, fetch.BrowserOptions{ExecPath: opts.ChromePath, Verbose: opts.Verbose})
		switch {
		case browserErr != nil:
			log.Printf("browser rendering failed for %s, using HTTP content: %v", urlStr, browserErr)
		default:
			if browserText, err := fetch.ExtractMainText(rendered, contentSelectors, noiseSelectors...); err == nil && len(browserText) > len(text) {
				text = browserText
				html = rendered
			}
		}
	}

	cleaned := CleanText(text)
	if cleaned == "" {
		return "", nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, ErrEmptyContent)
	}
	if opts.Verbose {
		log.Printf("[VERBOSE] Cleaned text: %d chars", len(cleaned))
	}

	metadata := NewMetadata(cleaned, FormatHTML)
	metadata.URL = urlStr
	metadata.Platform = string(platform)
	metadata.Title = fetch.PageTitle(html)
	return cleaned, metadata, nil
}
