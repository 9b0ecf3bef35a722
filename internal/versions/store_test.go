package versions

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-builder/internal/sections"
	"github.com/jonathan/cv-builder/internal/types"
)

var (
	t0 = time.UnixMilli(1_700_000_000_000)
	t1 = t0.Add(time.Minute)
)

func strPtr(s string) *string { return &s }

func twoVersions() []types.CVVersion {
	a := NewVersion("A", t0)
	b := NewVersion("B", t0)
	b.Data.ProfessionalTitle = "Engineer"
	return []types.CVVersion{a, b}
}

func TestEnsureActive_FirstRun(t *testing.T) {
	versions, active := EnsureActive(nil, "", t0)

	require.Len(t, versions, 1)
	v := versions[0]
	assert.Equal(t, v.ID, active)
	assert.Equal(t, "Master CV", v.Name)
	assert.Equal(t, sections.DefaultOrder(), v.SectionOrder)
	assert.Empty(t, v.HiddenSections)
	assert.Empty(t, v.Summary)
	assert.Empty(t, v.Data.Experiences)
	assert.NotNil(t, v.Data.Experiences)
	assert.Equal(t, t0.UnixMilli(), v.LastModified)
}

func TestEnsureActive_Idempotent(t *testing.T) {
	v1, a1 := EnsureActive(nil, "", t0)
	v2, a2 := EnsureActive(v1, a1, t1)

	assert.Equal(t, v1, v2)
	assert.Equal(t, a1, a2)
	assert.Len(t, v2, 1)
}

func TestEnsureActive_SelectsFirstWhenUnsetOrStale(t *testing.T) {
	vs := twoVersions()

	_, active := EnsureActive(vs, "", t0)
	assert.Equal(t, vs[0].ID, active)

	_, active = EnsureActive(vs, "gone", t0)
	assert.Equal(t, vs[0].ID, active)

	_, active = EnsureActive(vs, vs[1].ID, t0)
	assert.Equal(t, vs[1].ID, active)
}

func TestUpdate_IsolatesOtherVersions(t *testing.T) {
	vs := twoVersions()
	before := vs[1]

	out := Update(vs, vs[0].ID, Patch{Summary: strPtr("Builds things")}, t1)

	assert.Equal(t, "Builds things", out[0].Summary)
	assert.Equal(t, t1.UnixMilli(), out[0].LastModified)
	assert.Equal(t, before, out[1])
	assert.Empty(t, vs[0].Summary, "input must not be mutated")
}

func TestUpdate_MergesOnlyProvidedFields(t *testing.T) {
	vs := twoVersions()
	vs = Update(vs, vs[1].ID, Patch{Summary: strPtr("s")}, t0)

	out := Update(vs, vs[1].ID, Patch{Name: strPtr("Renamed")}, t1)
	assert.Equal(t, "Renamed", out[1].Name)
	assert.Equal(t, "s", out[1].Summary)
	assert.Equal(t, "Engineer", out[1].Data.ProfessionalTitle)
}

func TestUpdate_DataPatchIsCopied(t *testing.T) {
	vs := twoVersions()
	data := types.EmptyCVData()
	data.Experiences = append(data.Experiences, types.Experience{ID: "e1", Description: []string{"x"}})

	out := Update(vs, vs[0].ID, Patch{Data: &data}, t1)
	data.Experiences[0].Description[0] = "mutated"

	assert.Equal(t, "x", out[0].Data.Experiences[0].Description[0])
}

func TestUpdate_OrderAndHiddenStayConsistent(t *testing.T) {
	vs := twoVersions()
	id := vs[0].ID

	out := Update(vs, id, Patch{
		SectionOrder:   []string{sections.Summary, "bogus", sections.Skills, sections.Summary},
		HiddenSections: []string{sections.Experience, "nonsense", sections.Skills},
	}, t1)
	assert.Equal(t, []string{sections.Summary, sections.Skills}, out[0].SectionOrder)
	assert.Equal(t, []string{sections.Skills}, out[0].HiddenSections)

	// A new order that drops a hidden section takes it out of the hidden set too.
	out = Update(out, id, Patch{SectionOrder: []string{sections.Summary}}, t1)
	assert.Equal(t, []string{sections.Summary}, out[0].SectionOrder)
	assert.Empty(t, out[0].HiddenSections)
	assert.NotNil(t, out[0].HiddenSections)
}

func TestUpdate_NoActiveIsNoop(t *testing.T) {
	vs := twoVersions()
	assert.Equal(t, vs, Update(vs, "", Patch{Summary: strPtr("x")}, t1))
	assert.Equal(t, vs, Update(vs, "missing", Patch{Summary: strPtr("x")}, t1))
}

func TestCreateAndDuplicate(t *testing.T) {
	vs := twoVersions()
	vs[1].Summary = "orig"
	vs[1].HiddenSections = []string{sections.Skills}
	vs[1].Data.Experiences = []types.Experience{{ID: "e1", Description: []string{"a"}}}

	out, created := Create(vs, "Fresh", t1)
	require.Len(t, out, 3)
	assert.Equal(t, "Fresh", created.Name)
	assert.Len(t, vs, 2)

	out, dup, err := Duplicate(out, vs[1].ID, "", t1)
	require.NoError(t, err)
	require.Len(t, out, 4)
	assert.Equal(t, "B (Copy)", dup.Name)
	assert.NotEqual(t, vs[1].ID, dup.ID)
	assert.Equal(t, "orig", dup.Summary)
	assert.Equal(t, []string{sections.Skills}, dup.HiddenSections)

	dup.Data.Experiences[0].Description[0] = "changed"
	assert.Equal(t, "a", vs[1].Data.Experiences[0].Description[0])

	_, _, err = Duplicate(out, "missing", "", t1)
	assert.ErrorIs(t, err, ErrVersionNotFound)
}

func TestDelete(t *testing.T) {
	vs := twoVersions()

	out, err := Delete(vs, vs[0].ID)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, vs[1].ID, out[0].ID)

	_, err = Delete(out, out[0].ID)
	assert.ErrorIs(t, err, ErrLastVersion)

	_, err = Delete(vs, "missing")
	assert.ErrorIs(t, err, ErrVersionNotFound)
}

func TestSetHidden(t *testing.T) {
	vs := twoVersions()
	id := vs[0].ID

	out, err := SetHidden(vs, id, sections.Skills, true, t1)
	require.NoError(t, err)
	assert.True(t, out[0].IsHidden(sections.Skills))
	assert.False(t, vs[0].IsHidden(sections.Skills))

	again, err := SetHidden(out, id, sections.Skills, true, t1)
	require.NoError(t, err)
	assert.Equal(t, []string{sections.Skills}, again[0].HiddenSections)

	shown, err := SetHidden(out, id, sections.Skills, false, t1)
	require.NoError(t, err)
	assert.False(t, shown[0].IsHidden(sections.Skills))

	_, err = SetHidden(vs, id, "hobbies", true, t1)
	assert.ErrorIs(t, err, ErrUnknownSection)
}

func TestSetHidden_KeepsSubsetOfOrder(t *testing.T) {
	vs := twoVersions()
	vs = Update(vs, vs[0].ID, Patch{SectionOrder: []string{sections.Summary}}, t0)

	out, err := SetHidden(vs, vs[0].ID, sections.Skills, true, t1)
	require.NoError(t, err)
	assert.Empty(t, out[0].HiddenSections)
}

func TestMoveSection(t *testing.T) {
	vs := twoVersions()
	id := vs[0].ID

	out, err := MoveSection(vs, id, sections.Experience, -1, t1)
	require.NoError(t, err)
	assert.Equal(t, []string{"personal", "summary", "experience", "skills", "projects", "education", "certifications"}, out[0].SectionOrder)
	assert.Equal(t, sections.DefaultOrder(), vs[0].SectionOrder)

	clamped, err := MoveSection(vs, id, sections.Personal, -5, t1)
	require.NoError(t, err)
	assert.Equal(t, vs, clamped)

	last, err := MoveSection(vs, id, sections.Personal, 100, t1)
	require.NoError(t, err)
	assert.Equal(t, sections.Personal, last[0].SectionOrder[len(last[0].SectionOrder)-1])

	_, err = MoveSection(vs, id, "hobbies", 1, t1)
	assert.ErrorIs(t, err, ErrUnknownSection)
}

func TestPersist_EmptyNeverWrites(t *testing.T) {
	storage := NewMemoryStorage()
	require.NoError(t, Persist(context.Background(), storage, nil))
	require.NoError(t, Persist(context.Background(), storage, []types.CVVersion{}))
	assert.Equal(t, 0, storage.Puts())
}

func TestPersistThenLoad(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	vs := twoVersions()
	vs = Update(vs, vs[0].ID, Patch{Summary: strPtr("hello")}, t1)

	require.NoError(t, Persist(ctx, storage, vs))
	loaded := Load(ctx, storage)

	assert.Equal(t, vs, loaded)
}
