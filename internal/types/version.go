// Package types provides type definitions for structured data used throughout the cv-builder system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"slices"
	"time"
)

// DefaultVersionName is the name given to the version synthesized on first run
const DefaultVersionName = "Master CV"

// CVVersion is a named, independently editable document plus its presentation settings.
// Summary belongs to the version, not to the reusable CVData.
type CVVersion struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	LastModified   int64    `json:"lastModified"` // unix milliseconds
	Data           CVData   `json:"data"`
	Summary        string   `json:"summary"`
	SectionOrder   []string `json:"sectionOrder"`
	HiddenSections []string `json:"hiddenSections"`
}

// IsHidden reports whether the section is hidden on this version
func (v CVVersion) IsHidden(sectionID string) bool {
	return slices.Contains(v.HiddenSections, sectionID)
}

// ModifiedAt returns LastModified as a time.Time
func (v CVVersion) ModifiedAt() time.Time {
	return time.UnixMilli(v.LastModified)
}
