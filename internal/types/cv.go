// Package types provides type definitions for structured data used throughout the cv-builder system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "github.com/google/uuid"

// PersonalInfo holds the candidate's contact block. Social links are optional.
type PersonalInfo struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
	Website  string `json:"website,omitempty"`
}

// Experience represents one job entry with its achievement statements
type Experience struct {
	ID          string   `json:"id"`
	Company     string   `json:"company"`
	Role        string   `json:"role"`
	Location    string   `json:"location"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"` // empty means "Present"
	Description []string `json:"description"`
}

// Project represents a side or portfolio project
type Project struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Role        string   `json:"role"`
	Link        string   `json:"link,omitempty"`
	Description []string `json:"description"`
	TechStack   []string `json:"techStack"`
}

// Education represents one degree entry
type Education struct {
	ID             string `json:"id"`
	Institution    string `json:"institution"`
	Degree         string `json:"degree"`
	FieldOfStudy   string `json:"fieldOfStudy"`
	Location       string `json:"location"`
	GraduationDate string `json:"graduationDate"`
}

// Certification is stored and round-tripped but has no editor surface and is never rendered.
type Certification struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Date   string `json:"date"`
	Link   string `json:"link,omitempty"`
}

// SkillGroup is a labelled set of skills. Skill order is kept for display stability only.
type SkillGroup struct {
	ID       string   `json:"id"`
	Category string   `json:"category"`
	Skills   []string `json:"skills"`
}

// CVData is the reusable base content of one document
type CVData struct {
	PersonalInfo      PersonalInfo    `json:"personalInfo"`
	ProfessionalTitle string          `json:"professionalTitle"`
	Experiences       []Experience    `json:"experiences"`
	Education         []Education     `json:"education"`
	SkillGroups       []SkillGroup    `json:"skillGroups"`
	Projects          []Project       `json:"projects"`
	Certifications    []Certification `json:"certifications"`
}

// NewID returns a fresh identifier for versions and list entries.
func NewID() string {
	return uuid.New().String()
}

// EmptyCVData returns a CVData with every field empty and every list non-nil.
func EmptyCVData() CVData {
	return CVData{
		Experiences:    []Experience{},
		Education:      []Education{},
		SkillGroups:    []SkillGroup{},
		Projects:       []Project{},
		Certifications: []Certification{},
	}
}

// Clone returns a deep copy of the data so the copy can be edited independently.
func (d CVData) Clone() CVData {
	out := d

	out.Experiences = make([]Experience, len(d.Experiences))
	for i, exp := range d.Experiences {
		exp.Description = cloneStrings(exp.Description)
		out.Experiences[i] = exp
	}

	out.Education = append(make([]Education, 0, len(d.Education)), d.Education...)

	out.SkillGroups = make([]SkillGroup, len(d.SkillGroups))
	for i, g := range d.SkillGroups {
		g.Skills = cloneStrings(g.Skills)
		out.SkillGroups[i] = g
	}

	out.Projects = make([]Project, len(d.Projects))
	for i, p := range d.Projects {
		p.Description = cloneStrings(p.Description)
		p.TechStack = cloneStrings(p.TechStack)
		out.Projects[i] = p
	}

	out.Certifications = append(make([]Certification, 0, len(d.Certifications)), d.Certifications...)

	return out
}

// AllSkills flattens every skill label across groups, preserving order.
func (d CVData) AllSkills() []string {
	var skills []string
	for _, g := range d.SkillGroups {
		skills = append(skills, g.Skills...)
	}
	return skills
}

func cloneStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
