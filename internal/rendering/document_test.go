package rendering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-builder/internal/sections"
	"github.com/jonathan/cv-builder/internal/types"
)

func newVersion(data types.CVData) types.CVVersion {
	return types.CVVersion{
		ID:             "v1",
		Name:           types.DefaultVersionName,
		Data:           data,
		SectionOrder:   sections.DefaultOrder(),
		HiddenSections: []string{},
	}
}

func fullData() types.CVData {
	data := types.EmptyCVData()
	data.PersonalInfo = types.PersonalInfo{FullName: "Jane Doe", Email: "jane@example.com", Location: "Berlin", LinkedIn: "https://linkedin.com/in/jane"}
	data.ProfessionalTitle = "Platform Engineer"
	data.SkillGroups = []types.SkillGroup{
		{ID: "g1", Category: "Languages", Skills: []string{"Go", "Python"}},
		{ID: "g2", Category: "Cloud", Skills: []string{"GCP"}},
	}
	data.Experiences = []types.Experience{{ID: "e1", Company: "Acme", Role: "Engineer", StartDate: "2020", EndDate: "2022", Description: []string{"Shipped X"}}}
	data.Projects = []types.Project{{ID: "p1", Name: "cvgen", TechStack: []string{"Go", "React"}, Description: []string{"Built it"}}}
	data.Education = []types.Education{{ID: "d1", Institution: "TU Berlin", Degree: "BSc", FieldOfStudy: "Computer Science", GraduationDate: "2019"}}
	return data
}

func TestRender_FirstRunShowsPlaceholdersOnly(t *testing.T) {
	v := newVersion(types.EmptyCVData())
	doc := Render(v.Data, v)

	assert.Equal(t, PlaceholderName, doc.Header.Name)
	assert.Equal(t, PlaceholderTitle, doc.Header.Title)
	assert.Empty(t, doc.Header.Contacts)
	assert.Empty(t, doc.Sections)
}

func TestRender_AcmeExperience(t *testing.T) {
	data := types.EmptyCVData()
	data.Experiences = []types.Experience{{ID: "e1", Company: "Acme", Role: "Engineer", StartDate: "2020", EndDate: "2022", Description: []string{"Shipped X"}}}
	v := newVersion(data)

	doc := Render(data, v)
	exp, ok := doc.Section(sections.Experience)
	require.True(t, ok)
	require.Len(t, exp.Entries, 1)

	entry := exp.Entries[0]
	assert.Equal(t, "ACME", entry.Heading)
	assert.Equal(t, "2020 — 2022", entry.Aside)
	assert.Equal(t, []string{"Shipped X"}, entry.Bullets)
	assert.True(t, entry.KeepTogether)
}

func TestRender_HiddenSkillsNeverRendered(t *testing.T) {
	data := fullData()
	v := newVersion(data)
	v.HiddenSections = []string{sections.Skills}

	doc := Render(data, v)
	_, ok := doc.Section(sections.Skills)
	assert.False(t, ok)
	assert.Len(t, data.SkillGroups, 2)
}

func TestRender_OrderFidelity(t *testing.T) {
	data := fullData()
	v := newVersion(data)
	v.Summary = "Builds platforms"
	v.SectionOrder = []string{sections.Education, sections.Personal, sections.Experience, sections.Summary, sections.Skills, sections.Projects, sections.Certifications}
	v.HiddenSections = []string{sections.Experience}

	doc := Render(data, v)
	assert.Equal(t, []string{sections.Education, sections.Summary, sections.Skills, sections.Projects}, doc.SectionIDs())
}

func TestRender_EmptySectionsSuppressed(t *testing.T) {
	data := fullData()
	data.Projects = []types.Project{}
	v := newVersion(data)

	doc := Render(data, v)
	assert.Equal(t, []string{sections.Skills, sections.Experience, sections.Education}, doc.SectionIDs(), "summary and projects are empty")
}

func TestRender_ToleratesDuplicatesAndUnknownIDs(t *testing.T) {
	data := fullData()
	v := newVersion(data)
	v.SectionOrder = []string{sections.Skills, "hobbies", sections.Skills, sections.Education}

	doc := Render(data, v)
	assert.Equal(t, []string{sections.Skills, sections.Education}, doc.SectionIDs())
}

func TestRender_DoesNotMutateInput(t *testing.T) {
	data := fullData()
	v := newVersion(data)
	before := data.Clone()

	Render(data, v)
	assert.Equal(t, before, data)
}

func TestRender_Presentation(t *testing.T) {
	data := fullData()
	data.Experiences[0].EndDate = ""
	v := newVersion(data)
	doc := Render(data, v)

	assert.Equal(t, []Contact{
		{Label: "Berlin"},
		{Label: "jane@example.com"},
		{Label: "LinkedIn", URL: "https://linkedin.com/in/jane"},
	}, doc.Header.Contacts)

	skills, _ := doc.Section(sections.Skills)
	assert.Equal(t, TitleSkills, skills.Title)
	assert.Equal(t, []SkillLine{{Category: "Languages", Skills: "Go, Python"}, {Category: "Cloud", Skills: "GCP"}}, skills.Skills)

	exp, _ := doc.Section(sections.Experience)
	assert.Equal(t, "2020 — Present", exp.Entries[0].Aside)

	proj, _ := doc.Section(sections.Projects)
	assert.Equal(t, "CVGEN", proj.Entries[0].Heading)
	assert.Equal(t, "Go • React", proj.Entries[0].Aside)

	edu, _ := doc.Section(sections.Education)
	assert.Equal(t, "BSc in Computer Science", edu.Entries[0].Subheading)
}

func TestDegreeLine(t *testing.T) {
	assert.Equal(t, "BSc in Physics", DegreeLine("BSc", "Physics"))
	assert.Equal(t, "BSc", DegreeLine("BSc", ""))
	assert.Equal(t, "Physics", DegreeLine("", "Physics"))
	assert.Equal(t, "", DegreeLine("", ""))
}
