package editor

import (
	"errors"
	"fmt"

	"github.com/jonathan/cv-builder/internal/sections"
	"github.com/jonathan/cv-builder/internal/types"
)

// Op names an edit operation
type Op string

// Edit operations
const (
	OpAdd          Op = "add"
	OpRemove       Op = "remove"
	OpSet          Op = "set"
	OpAddBullet    Op = "bullet-add"
	OpSetBullet    Op = "bullet-set"
	OpRemoveBullet Op = "bullet-remove"
)

var (
	// ErrUnsupportedEdit is returned for an operation the section does not support.
	ErrUnsupportedEdit = errors.New("unsupported edit")
	// ErrItemNotFound is returned when an edit targets an id that is not in the list.
	ErrItemNotFound = errors.New("item not found")
)

// Edit is one form edit against a section of the data.
type Edit struct {
	Section string `json:"section"` // section id from the registry
	Op      Op     `json:"op"`
	ID      string `json:"id,omitempty"` // target entry, unused for add and for personal
	Field   string `json:"field,omitempty"`
	Value   string `json:"value,omitempty"`
	Index   int    `json:"index,omitempty"` // bullet index for bullet-set and bullet-remove
}

// ApplyToData applies e and returns the whole updated data together with the id of the affected
// entry (the fresh id for add). data itself is not modified.
func ApplyToData(data types.CVData, e Edit) (types.CVData, string, error) {
	out := data.Clone()

	switch e.Section {
	case sections.Personal:
		if e.Op != OpSet {
			return data, "", unsupported(e)
		}
		updated, err := SetPersonalField(out, e.Field, e.Value)
		if err != nil {
			return data, "", err
		}
		return updated, "", nil

	case sections.Experience:
		list, id, err := applyList(out.Experiences, e, experienceID, listOps[types.Experience]{
			add:     AddExperience,
			remove:  RemoveExperience,
			set:     SetExperienceField,
			bullets: EditExperienceBullets,
		})
		if err != nil {
			return data, "", err
		}
		out.Experiences = list
		return out, id, nil

	case sections.Projects:
		list, id, err := applyList(out.Projects, e, projectID, listOps[types.Project]{
			add:     AddProject,
			remove:  RemoveProject,
			set:     SetProjectField,
			bullets: EditProjectBullets,
		})
		if err != nil {
			return data, "", err
		}
		out.Projects = list
		return out, id, nil

	case sections.Education:
		list, id, err := applyList(out.Education, e, educationID, listOps[types.Education]{
			add:    AddEducation,
			remove: RemoveEducation,
			set:    SetEducationField,
		})
		if err != nil {
			return data, "", err
		}
		out.Education = list
		return out, id, nil

	case sections.Skills:
		list, id, err := applyList(out.SkillGroups, e, skillGroupID, listOps[types.SkillGroup]{
			add:    AddSkillGroup,
			remove: RemoveSkillGroup,
			set:    SetSkillGroupField,
		})
		if err != nil {
			return data, "", err
		}
		out.SkillGroups = list
		return out, id, nil
	}

	return data, "", unsupported(e)
}

type listOps[T any] struct {
	add     func([]T) []T
	remove  func([]T, string) []T
	set     func([]T, string, string, string) ([]T, error)
	bullets func([]T, string, func([]string) []string) []T
}

func applyList[T any](list []T, e Edit, idOf func(T) string, ops listOps[T]) ([]T, string, error) {
	if e.Op == OpAdd {
		out := ops.add(list)
		return out, idOf(out[0]), nil
	}
	if !ContainsID(list, e.ID, idOf) {
		return list, "", fmt.Errorf("%w: %s %q", ErrItemNotFound, e.Section, e.ID)
	}

	switch e.Op {
	case OpRemove:
		return ops.remove(list, e.ID), e.ID, nil
	case OpSet:
		out, err := ops.set(list, e.ID, e.Field, e.Value)
		return out, e.ID, err
	case OpAddBullet, OpSetBullet, OpRemoveBullet:
		if ops.bullets == nil {
			return list, "", unsupported(e)
		}
		var fn func([]string) []string
		switch e.Op {
		case OpAddBullet:
			fn = func(b []string) []string { return AddBullet(b, e.Value) }
		case OpSetBullet:
			fn = func(b []string) []string { return SetBullet(b, e.Index, e.Value) }
		default:
			fn = func(b []string) []string { return RemoveBullet(b, e.Index) }
		}
		return ops.bullets(list, e.ID, fn), e.ID, nil
	}
	return list, "", unsupported(e)
}

func unsupported(e Edit) error {
	return fmt.Errorf("%w: %s on %q", ErrUnsupportedEdit, e.Op, e.Section)
}
