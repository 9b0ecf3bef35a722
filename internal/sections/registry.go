// Package sections is the static registry of document sections: identifiers, editor labels,
// the canonical default order, and editor navigation over that order.
package sections

import "math"

// Section identifiers
const (
	Personal       = "personal"
	Summary        = "summary"
	Skills         = "skills"
	Experience     = "experience"
	Projects       = "projects"
	Education      = "education"
	Certifications = "certifications"
)

// Section pairs an identifier with its editor label
type Section struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

var registry = []Section{
	{ID: Personal, Label: "Personal Info"},
	{ID: Summary, Label: "Professional Summary"},
	{ID: Skills, Label: "Skills & Competencies"},
	{ID: Experience, Label: "Work Experience"},
	{ID: Projects, Label: "Key Projects"},
	{ID: Education, Label: "Education"},
	{ID: Certifications, Label: "Certifications"},
}

// All returns every known section in canonical order.
func All() []Section {
	out := make([]Section, len(registry))
	copy(out, registry)
	return out
}

// DefaultOrder returns a fresh copy of the canonical section order.
func DefaultOrder() []string {
	order := make([]string, len(registry))
	for i, s := range registry {
		order[i] = s.ID
	}
	return order
}

// Label returns the editor label for a section id
func Label(id string) (string, bool) {
	for _, s := range registry {
		if s.ID == id {
			return s.Label, true
		}
	}
	return "", false
}

// IsKnown reports whether id is a registered section
func IsKnown(id string) bool {
	_, ok := Label(id)
	return ok
}

func indexOf(id string) int {
	for i, s := range registry {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// Next returns the section after current in the canonical order.
// From the last section it returns current with finished set.
// Navigation never follows a version's custom order.
func Next(current string) (next string, finished bool) {
	idx := indexOf(current)
	if idx < 0 {
		return registry[0].ID, false
	}
	if idx == len(registry)-1 {
		return current, true
	}
	return registry[idx+1].ID, false
}

// Prev returns the section before current; the first section stays put.
func Prev(current string) string {
	idx := indexOf(current)
	if idx <= 0 {
		return registry[0].ID
	}
	return registry[idx-1].ID
}

// Progress returns the completion percentage for the current editor step.
func Progress(current string) int {
	idx := indexOf(current)
	return int(math.Round(float64(idx+1) / float64(len(registry)) * 100))
}
