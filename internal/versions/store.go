// Package versions implements the version store: the collection of named CV versions, the active
// selection, and their persistence under a single storage key.
//
// The functions in this file are pure. They never mutate their inputs and return fresh slices, so a
// caller holding the previous collection keeps seeing it unchanged.
package versions

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"slices"
	"time"

	"github.com/jonathan/cv-builder/internal/sections"
	"github.com/jonathan/cv-builder/internal/types"
)

// Patch is a partial update of a version. Nil fields are left unchanged.
type Patch struct {
	Name           *string
	Data           *types.CVData
	Summary        *string
	SectionOrder   []string
	HiddenSections []string
}

// NewVersion returns an empty version with a fresh id and the registry default order.
func NewVersion(name string, now time.Time) types.CVVersion {
	if name == "" {
		name = types.DefaultVersionName
	}
	return types.CVVersion{
		ID:             types.NewID(),
		Name:           name,
		LastModified:   now.UnixMilli(),
		Data:           types.EmptyCVData(),
		Summary:        "",
		SectionOrder:   sections.DefaultOrder(),
		HiddenSections: []string{},
	}
}

// EnsureActive guarantees a non-empty collection and a valid active selection.
// An empty collection gets exactly one default version, which becomes active. Otherwise an unset or
// stale activeID falls back to the first version. Calling it again on its own output is a no-op.
func EnsureActive(versions []types.CVVersion, activeID string, now time.Time) ([]types.CVVersion, string) {
	if len(versions) == 0 {
		v := NewVersion(types.DefaultVersionName, now)
		return []types.CVVersion{v}, v.ID
	}
	if activeID != "" && indexOf(versions, activeID) >= 0 {
		return versions, activeID
	}
	return versions, versions[0].ID
}

// Update merges patch into the version whose id is activeID and refreshes its LastModified.
// Every other version is carried over unchanged. An empty or unmatched activeID returns the input.
// A patched order keeps only known sections, once each, and the hidden set is cut down to
// sections present in the resulting order.
func Update(versions []types.CVVersion, activeID string, patch Patch, now time.Time) []types.CVVersion {
	idx := indexOf(versions, activeID)
	if activeID == "" || idx < 0 {
		return versions
	}

	out := slices.Clone(versions)
	v := out[idx]
	if patch.Name != nil {
		v.Name = *patch.Name
	}
	if patch.Data != nil {
		v.Data = patch.Data.Clone()
	}
	if patch.Summary != nil {
		v.Summary = *patch.Summary
	}
	if patch.SectionOrder != nil {
		v.SectionOrder = knownOnce(patch.SectionOrder, sections.IsKnown)
	}
	if patch.HiddenSections != nil {
		v.HiddenSections = slices.Clone(patch.HiddenSections)
	}
	if patch.SectionOrder != nil || patch.HiddenSections != nil {
		v.HiddenSections = knownOnce(v.HiddenSections, func(id string) bool {
			return slices.Contains(v.SectionOrder, id)
		})
	}
	v.LastModified = now.UnixMilli()
	out[idx] = v
	return out
}

// knownOnce returns the ids accepted by keep, dropping repeats. The result is never nil.
func knownOnce(ids []string, keep func(string) bool) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if keep(id) && !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}

// Find returns the version with the given id.
func Find(versions []types.CVVersion, id string) (types.CVVersion, bool) {
	idx := indexOf(versions, id)
	if idx < 0 {
		return types.CVVersion{}, false
	}
	return versions[idx], true
}

// Create appends a new empty version and returns it alongside the new collection.
func Create(versions []types.CVVersion, name string, now time.Time) ([]types.CVVersion, types.CVVersion) {
	v := NewVersion(name, now)
	out := append(slices.Clone(versions), v)
	return out, v
}

// Duplicate appends a deep copy of the source version under a fresh id. An empty name defaults to
// "<source name> (Copy)".
func Duplicate(versions []types.CVVersion, sourceID, name string, now time.Time) ([]types.CVVersion, types.CVVersion, error) {
	src, ok := Find(versions, sourceID)
	if !ok {
		return versions, types.CVVersion{}, fmt.Errorf("duplicate %s: %w", sourceID, ErrVersionNotFound)
	}
	if name == "" {
		name = src.Name + " (Copy)"
	}
	dup := types.CVVersion{
		ID:             types.NewID(),
		Name:           name,
		LastModified:   now.UnixMilli(),
		Data:           src.Data.Clone(),
		Summary:        src.Summary,
		SectionOrder:   cloneOrEmpty(src.SectionOrder),
		HiddenSections: cloneOrEmpty(src.HiddenSections),
	}
	return append(slices.Clone(versions), dup), dup, nil
}

// Delete removes a version. The last remaining version cannot be deleted.
func Delete(versions []types.CVVersion, id string) ([]types.CVVersion, error) {
	idx := indexOf(versions, id)
	if idx < 0 {
		return versions, fmt.Errorf("delete %s: %w", id, ErrVersionNotFound)
	}
	if len(versions) == 1 {
		return versions, ErrLastVersion
	}
	return slices.Delete(slices.Clone(versions), idx, idx+1), nil
}

// SetHidden shows or hides a section on the active version. Hiding a section that is not in the
// version's order is a no-op so that hidden sections stay a subset of the order.
func SetHidden(versions []types.CVVersion, activeID, sectionID string, hidden bool, now time.Time) ([]types.CVVersion, error) {
	if !sections.IsKnown(sectionID) {
		return versions, fmt.Errorf("%w: %q", ErrUnknownSection, sectionID)
	}
	v, ok := Find(versions, activeID)
	if !ok {
		return versions, fmt.Errorf("set hidden on %s: %w", activeID, ErrVersionNotFound)
	}

	current := v.IsHidden(sectionID)
	switch {
	case hidden == current:
		return versions, nil
	case hidden && !slices.Contains(v.SectionOrder, sectionID):
		return versions, nil
	case hidden:
		next := append(cloneOrEmpty(v.HiddenSections), sectionID)
		return Update(versions, activeID, Patch{HiddenSections: next}, now), nil
	default:
		next := slices.DeleteFunc(cloneOrEmpty(v.HiddenSections), func(s string) bool { return s == sectionID })
		return Update(versions, activeID, Patch{HiddenSections: next}, now), nil
	}
}

// MoveSection shifts a section within the active version's order by delta positions, clamped to the
// bounds of the order.
func MoveSection(versions []types.CVVersion, activeID, sectionID string, delta int, now time.Time) ([]types.CVVersion, error) {
	v, ok := Find(versions, activeID)
	if !ok {
		return versions, fmt.Errorf("move section on %s: %w", activeID, ErrVersionNotFound)
	}
	from := slices.Index(v.SectionOrder, sectionID)
	if from < 0 {
		return versions, fmt.Errorf("%w: %q is not in the section order", ErrUnknownSection, sectionID)
	}
	to := max(0, min(len(v.SectionOrder)-1, from+delta))
	if to == from {
		return versions, nil
	}

	order := slices.Delete(slices.Clone(v.SectionOrder), from, from+1)
	order = slices.Insert(order, to, sectionID)
	return Update(versions, activeID, Patch{SectionOrder: order}, now), nil
}

// Persist writes the full collection to storage. An empty collection is never written.
func Persist(ctx context.Context, storage Storage, versions []types.CVVersion) error {
	if len(versions) == 0 {
		return nil
	}
	data, err := encodeSnapshot(versions)
	if err != nil {
		return err
	}
	if err := storage.Put(ctx, StorageKey, data); err != nil {
		return fmt.Errorf("failed to persist versions: %w", err)
	}
	return nil
}

// Load reads the persisted collection. It fails soft: a missing, unreadable, or invalid snapshot
// yields an empty collection and the reason is logged.
func Load(ctx context.Context, storage Storage) []types.CVVersion {
	data, err := storage.Get(ctx, StorageKey)
	if err != nil {
		log.Printf("versions: could not read %s: %v", StorageKey, err)
		return []types.CVVersion{}
	}
	if data == nil {
		data, err = storage.Get(ctx, LegacyStorageKey)
		if err != nil {
			log.Printf("versions: could not read %s: %v", LegacyStorageKey, err)
			return []types.CVVersion{}
		}
		if data == nil {
			return []types.CVVersion{}
		}
	}

	versions, err := decodeSnapshot(data)
	if err != nil {
		log.Printf("versions: ignoring stored snapshot: %v", err)
		return []types.CVVersion{}
	}
	return versions
}

// PersistActive records the active selection under ActiveKey.
func PersistActive(ctx context.Context, storage Storage, activeID string) error {
	data, err := json.Marshal(activeID)
	if err != nil {
		return fmt.Errorf("failed to encode active version: %w", err)
	}
	if err := storage.Put(ctx, ActiveKey, data); err != nil {
		return fmt.Errorf("failed to persist active version: %w", err)
	}
	return nil
}

// LoadActive returns the persisted active id, or "" when none is stored or it cannot be read.
func LoadActive(ctx context.Context, storage Storage) string {
	data, err := storage.Get(ctx, ActiveKey)
	if err != nil {
		log.Printf("versions: could not read %s: %v", ActiveKey, err)
		return ""
	}
	if data == nil {
		return ""
	}
	var id string
	if err := json.Unmarshal(data, &id); err != nil {
		log.Printf("versions: ignoring stored active version: %v", err)
		return ""
	}
	return id
}

func indexOf(versions []types.CVVersion, id string) int {
	return slices.IndexFunc(versions, func(v types.CVVersion) bool { return v.ID == id })
}

func cloneOrEmpty(in []string) []string {
	if in == nil {
		return []string{}
	}
	return slices.Clone(in)
}
