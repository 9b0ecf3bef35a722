package rendering

import (
	"strings"

	"github.com/jonathan/cv-builder/internal/sections"
	"github.com/jonathan/cv-builder/internal/types"
)

// Placeholders shown in the header when the fields are empty
const (
	PlaceholderName  = "Your Name"
	PlaceholderTitle = "Target Job Title"
)

// Section titles as printed on the document
const (
	TitleSummary    = "Professional Summary"
	TitleSkills     = "Skills & Expertise"
	TitleExperience = "Professional Experience"
	TitleProjects   = "Key Projects"
	TitleEducation  = "Education"
)

// Document is the laid-out document, independent of any output format.
type Document struct {
	Header   Header    `json:"header"`
	Sections []Section `json:"sections"`
}

// Header is the name, title and contact line.
type Header struct {
	Name     string    `json:"name"`
	Title    string    `json:"title"`
	Contacts []Contact `json:"contacts"`
}

// Contact is one item of the contact line. URL is set for links, which print as their label.
type Contact struct {
	Label string `json:"label"`
	URL   string `json:"url,omitempty"`
}

// Section is one rendered section. Exactly one of Summary, Skills or Entries is populated.
type Section struct {
	ID           string      `json:"id"`
	Title        string      `json:"title"`
	KeepTogether bool        `json:"keepTogether"`
	Summary      string      `json:"summary,omitempty"`
	Skills       []SkillLine `json:"skills,omitempty"`
	Entries      []Entry     `json:"entries,omitempty"`
}

// SkillLine prints as "Category: a, b".
type SkillLine struct {
	Category string `json:"category"`
	Skills   string `json:"skills"`
}

// Entry is one job, project, or degree. Entries are never split across pages.
type Entry struct {
	Heading      string   `json:"heading"`
	Aside        string   `json:"aside,omitempty"`
	Subheading   string   `json:"subheading,omitempty"`
	SubAside     string   `json:"subAside,omitempty"`
	Bullets      []string `json:"bullets,omitempty"`
	KeepTogether bool     `json:"keepTogether"`
}

// SectionIDs lists the ids of the rendered sections in output order.
func (d *Document) SectionIDs() []string {
	ids := make([]string, len(d.Sections))
	for i, s := range d.Sections {
		ids[i] = s.ID
	}
	return ids
}

// Section returns the rendered section with id.
func (d *Document) Section(id string) (Section, bool) {
	for _, s := range d.Sections {
		if s.ID == id {
			return s, true
		}
	}
	return Section{}, false
}

// Render lays out data according to the version's section order and visibility. Each listed
// section is rendered at most once; unknown, hidden, and empty sections produce nothing.
func Render(data types.CVData, version types.CVVersion) *Document {
	doc := &Document{Header: renderHeader(data)}

	seen := make(map[string]bool, len(version.SectionOrder))
	for _, id := range version.SectionOrder {
		if seen[id] || version.IsHidden(id) {
			continue
		}
		seen[id] = true

		var (
			sec Section
			ok  bool
		)
		switch id {
		case sections.Summary:
			sec, ok = renderSummary(version.Summary)
		case sections.Skills:
			sec, ok = renderSkills(data.SkillGroups)
		case sections.Experience:
			sec, ok = renderExperience(data.Experiences)
		case sections.Projects:
			sec, ok = renderProjects(data.Projects)
		case sections.Education:
			sec, ok = renderEducation(data.Education)
		}
		if ok {
			doc.Sections = append(doc.Sections, sec)
		}
	}
	return doc
}

// RenderVersion renders a version against its own data.
func RenderVersion(version types.CVVersion) *Document {
	return Render(version.Data, version)
}

func renderHeader(data types.CVData) Header {
	p := data.PersonalInfo
	h := Header{
		Name:  orDefault(p.FullName, PlaceholderName),
		Title: orDefault(data.ProfessionalTitle, PlaceholderTitle),
	}
	for _, c := range []Contact{
		{Label: p.Location},
		{Label: p.Email},
		{Label: p.Phone},
	} {
		if c.Label != "" {
			h.Contacts = append(h.Contacts, c)
		}
	}
	for _, link := range []struct{ label, url string }{
		{"LinkedIn", p.LinkedIn},
		{"GitHub", p.GitHub},
		{"Website", p.Website},
	} {
		if link.url != "" {
			h.Contacts = append(h.Contacts, Contact{Label: link.label, URL: link.url})
		}
	}
	return h
}

func renderSummary(summary string) (Section, bool) {
	if strings.TrimSpace(summary) == "" {
		return Section{}, false
	}
	return Section{ID: sections.Summary, Title: TitleSummary, KeepTogether: true, Summary: summary}, true
}

func renderSkills(groups []types.SkillGroup) (Section, bool) {
	if len(groups) == 0 {
		return Section{}, false
	}
	sec := Section{ID: sections.Skills, Title: TitleSkills, KeepTogether: true}
	for _, g := range groups {
		sec.Skills = append(sec.Skills, SkillLine{Category: g.Category, Skills: strings.Join(g.Skills, ", ")})
	}
	return sec, true
}

func renderExperience(list []types.Experience) (Section, bool) {
	if len(list) == 0 {
		return Section{}, false
	}
	sec := Section{ID: sections.Experience, Title: TitleExperience}
	for _, e := range list {
		sec.Entries = append(sec.Entries, Entry{
			Heading:      strings.ToUpper(e.Company),
			Aside:        DateRange(e.StartDate, e.EndDate),
			Subheading:   e.Role,
			SubAside:     e.Location,
			Bullets:      e.Description,
			KeepTogether: true,
		})
	}
	return sec, true
}

func renderProjects(list []types.Project) (Section, bool) {
	if len(list) == 0 {
		return Section{}, false
	}
	sec := Section{ID: sections.Projects, Title: TitleProjects}
	for _, p := range list {
		sec.Entries = append(sec.Entries, Entry{
			Heading:      strings.ToUpper(p.Name),
			Aside:        strings.Join(p.TechStack, " • "),
			Subheading:   p.Role,
			Bullets:      p.Description,
			KeepTogether: true,
		})
	}
	return sec, true
}

func renderEducation(list []types.Education) (Section, bool) {
	if len(list) == 0 {
		return Section{}, false
	}
	sec := Section{ID: sections.Education, Title: TitleEducation, KeepTogether: true}
	for _, e := range list {
		sec.Entries = append(sec.Entries, Entry{
			Heading:      strings.ToUpper(e.Institution),
			Aside:        e.GraduationDate,
			Subheading:   DegreeLine(e.Degree, e.FieldOfStudy),
			SubAside:     e.Location,
			KeepTogether: true,
		})
	}
	return sec, true
}

// DateRange formats "start — end", printing Present for an empty end date.
func DateRange(start, end string) string {
	return start + " — " + orDefault(end, "Present")
}

// DegreeLine formats "degree in field", dropping the connector when either side is empty.
func DegreeLine(degree, field string) string {
	switch {
	case degree == "":
		return field
	case field == "":
		return degree
	default:
		return degree + " in " + field
	}
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
