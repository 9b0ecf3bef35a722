// Package types provides type definitions for structured data used throughout the cv-builder system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// JDAnalysis is the structured result of analyzing a job description against a CV
type JDAnalysis struct {
	Keywords    JDKeywords `json:"keywords"`
	Gaps        []string   `json:"gaps"`
	MatchScore  float64    `json:"matchScore"` // percentage, 0-100 expected but not enforced
	Suggestions string     `json:"suggestions"`
}

// JDKeywords groups the keywords extracted from a job description
type JDKeywords struct {
	Skills           []string `json:"skills"`
	Tools            []string `json:"tools"`
	Responsibilities []string `json:"responsibilities"`
}

// strongMatchThreshold is the score above which a match is shown as strong
const strongMatchThreshold = 70

// RoundedScore returns the match score rounded to the nearest integer percentage
func (a *JDAnalysis) RoundedScore() int {
	if a.MatchScore < 0 {
		return int(a.MatchScore - 0.5)
	}
	return int(a.MatchScore + 0.5)
}

// IsStrongMatch reports whether the score is above the strong-match threshold
func (a *JDAnalysis) IsStrongMatch() bool {
	return a.MatchScore > strongMatchThreshold
}
