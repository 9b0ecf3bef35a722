// Package types provides type definitions for structured data used throughout the cv-builder system.
package types

import (
	"github.com/go-playground/validator/v10"
)

// CreateVersionRequest creates a new empty version, or duplicates SourceID when set.
type CreateVersionRequest struct {
	Name     string `json:"name" validate:"max=120"`
	SourceID string `json:"source_id,omitempty" validate:"omitempty,max=64,printascii"`
}

// SelectVersionRequest changes the active version.
type SelectVersionRequest struct {
	ID string `json:"id" validate:"required"`
}

// UpdateVersionRequest is a partial update of the active version's presentation fields.
// Nil fields are left unchanged.
type UpdateVersionRequest struct {
	Name           *string  `json:"name,omitempty" validate:"omitempty,max=120"`
	Summary        *string  `json:"summary,omitempty"`
	SectionOrder   []string `json:"section_order,omitempty" validate:"omitempty,unique,dive,oneof=personal summary skills experience projects education certifications"`
	HiddenSections []string `json:"hidden_sections,omitempty" validate:"omitempty,unique,dive,oneof=personal summary skills experience projects education certifications"`
}

// FieldEditRequest sets one field of one entry, or of the personal block.
type FieldEditRequest struct {
	Field string `json:"field" validate:"required"`
	Value string `json:"value"`
}

// BulletRequest adds or replaces one achievement statement.
type BulletRequest struct {
	Text string `json:"text"`
}

// ComposeBulletRequest asks the model to draft one bullet from its raw facts.
// Section and ID, when set, name the experience or project entry the bullet is appended to.
type ComposeBulletRequest struct {
	Action  string `json:"action" validate:"required"`
	Scope   string `json:"scope" validate:"required"`
	Metric  string `json:"metric"`
	Section string `json:"section,omitempty" validate:"omitempty,oneof=experience projects"`
	ID      string `json:"id,omitempty" validate:"required_with=Section"`
}

// MatchRequest runs job-description analysis and summary generation. The job description is
// given inline or fetched from JobURL.
type MatchRequest struct {
	JobDescription string `json:"job_description" validate:"required_without=JobURL"`
	JobURL         string `json:"job_url,omitempty" validate:"omitempty,url"`
	JobTitle       string `json:"job_title,omitempty" validate:"max=200"`
	ApplySummary   bool   `json:"apply_summary,omitempty"`
	// AgainstCV scores the job against the active version instead of the posting alone.
	AgainstCV bool `json:"against_cv,omitempty"`
}

// MatchResponse combines the analysis with the generated summary.
type MatchResponse struct {
	Analysis *JDAnalysis `json:"analysis"`
	Summary  string      `json:"summary"`
}

// Validate validates the CreateVersionRequest using the validator.
func (r *CreateVersionRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the SelectVersionRequest using the validator.
func (r *SelectVersionRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the UpdateVersionRequest using the validator.
func (r *UpdateVersionRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the FieldEditRequest using the validator.
func (r *FieldEditRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ComposeBulletRequest using the validator.
func (r *ComposeBulletRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the MatchRequest using the validator.
func (r *MatchRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
