package editor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jonathan/cv-builder/internal/types"
)

// ErrUnknownField is returned when an edit names a field the section does not have.
var ErrUnknownField = errors.New("unknown field")

func experienceID(e types.Experience) string { return e.ID }
func projectID(p types.Project) string       { return p.ID }
func educationID(e types.Education) string   { return e.ID }
func skillGroupID(g types.SkillGroup) string { return g.ID }

func unknownField(section, field string) error {
	return fmt.Errorf("%w %q for %s", ErrUnknownField, field, section)
}

// SplitList splits a comma-separated value into trimmed, non-empty labels.
func SplitList(value string) []string {
	out := []string{}
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Experience

// AddExperience prepends an empty experience with a fresh id.
func AddExperience(list []types.Experience) []types.Experience {
	return Prepend(list, types.Experience{ID: types.NewID(), Description: []string{}})
}

// RemoveExperience drops the experience with id.
func RemoveExperience(list []types.Experience, id string) []types.Experience {
	return RemoveByID(list, id, experienceID)
}

// SetExperienceField sets one of company, role, location, startDate, endDate.
func SetExperienceField(list []types.Experience, id, field, value string) ([]types.Experience, error) {
	var set func(*types.Experience)
	switch field {
	case "company":
		set = func(e *types.Experience) { e.Company = value }
	case "role":
		set = func(e *types.Experience) { e.Role = value }
	case "location":
		set = func(e *types.Experience) { e.Location = value }
	case "startDate":
		set = func(e *types.Experience) { e.StartDate = value }
	case "endDate":
		set = func(e *types.Experience) { e.EndDate = value }
	default:
		return list, unknownField("experience", field)
	}
	return MapByID(list, id, experienceID, func(e types.Experience) types.Experience {
		set(&e)
		return e
	}), nil
}

// Project

// AddProject prepends an empty project with a fresh id.
func AddProject(list []types.Project) []types.Project {
	return Prepend(list, types.Project{ID: types.NewID(), Description: []string{}, TechStack: []string{}})
}

// RemoveProject drops the project with id.
func RemoveProject(list []types.Project, id string) []types.Project {
	return RemoveByID(list, id, projectID)
}

// SetProjectField sets one of name, role, link, techStack. techStack is comma-separated.
func SetProjectField(list []types.Project, id, field, value string) ([]types.Project, error) {
	var set func(*types.Project)
	switch field {
	case "name":
		set = func(p *types.Project) { p.Name = value }
	case "role":
		set = func(p *types.Project) { p.Role = value }
	case "link":
		set = func(p *types.Project) { p.Link = value }
	case "techStack":
		set = func(p *types.Project) { p.TechStack = SplitList(value) }
	default:
		return list, unknownField("project", field)
	}
	return MapByID(list, id, projectID, func(p types.Project) types.Project {
		set(&p)
		return p
	}), nil
}

// Education

// AddEducation prepends an empty education entry with a fresh id.
func AddEducation(list []types.Education) []types.Education {
	return Prepend(list, types.Education{ID: types.NewID()})
}

// RemoveEducation drops the education entry with id.
func RemoveEducation(list []types.Education, id string) []types.Education {
	return RemoveByID(list, id, educationID)
}

// SetEducationField sets one of institution, degree, fieldOfStudy, location, graduationDate.
func SetEducationField(list []types.Education, id, field, value string) ([]types.Education, error) {
	var set func(*types.Education)
	switch field {
	case "institution":
		set = func(e *types.Education) { e.Institution = value }
	case "degree":
		set = func(e *types.Education) { e.Degree = value }
	case "fieldOfStudy":
		set = func(e *types.Education) { e.FieldOfStudy = value }
	case "location":
		set = func(e *types.Education) { e.Location = value }
	case "graduationDate":
		set = func(e *types.Education) { e.GraduationDate = value }
	default:
		return list, unknownField("education", field)
	}
	return MapByID(list, id, educationID, func(e types.Education) types.Education {
		set(&e)
		return e
	}), nil
}

// Skill groups

// AddSkillGroup prepends an empty skill group with a fresh id.
func AddSkillGroup(list []types.SkillGroup) []types.SkillGroup {
	return Prepend(list, types.SkillGroup{ID: types.NewID(), Skills: []string{}})
}

// RemoveSkillGroup drops the skill group with id.
func RemoveSkillGroup(list []types.SkillGroup, id string) []types.SkillGroup {
	return RemoveByID(list, id, skillGroupID)
}

// SetSkillGroupField sets category, or skills from a comma-separated value.
func SetSkillGroupField(list []types.SkillGroup, id, field, value string) ([]types.SkillGroup, error) {
	var set func(*types.SkillGroup)
	switch field {
	case "category":
		set = func(g *types.SkillGroup) { g.Category = value }
	case "skills":
		set = func(g *types.SkillGroup) { g.Skills = SplitList(value) }
	default:
		return list, unknownField("skills", field)
	}
	return MapByID(list, id, skillGroupID, func(g types.SkillGroup) types.SkillGroup {
		set(&g)
		return g
	}), nil
}

// Personal

// SetPersonalField sets a contact field or the professional title.
func SetPersonalField(data types.CVData, field, value string) (types.CVData, error) {
	p := &data.PersonalInfo
	switch field {
	case "fullName":
		p.FullName = value
	case "email":
		p.Email = value
	case "phone":
		p.Phone = value
	case "location":
		p.Location = value
	case "linkedin":
		p.LinkedIn = value
	case "github":
		p.GitHub = value
	case "website":
		p.Website = value
	case "professionalTitle":
		data.ProfessionalTitle = value
	default:
		return data, unknownField("personal", field)
	}
	return data, nil
}
