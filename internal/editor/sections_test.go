package editor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-builder/internal/types"
)

func TestSetExperienceField_ChangesOnlyTarget(t *testing.T) {
	in := sampleExperiences()

	for _, field := range []string{"company", "role", "location", "startDate", "endDate"} {
		t.Run(field, func(t *testing.T) {
			out, err := SetExperienceField(in, "a", field, "X")
			require.NoError(t, err)
			assert.Equal(t, in[1:], out[1:])
			assert.NotEqual(t, in[0], out[0])
		})
	}

	_, err := SetExperienceField(in, "a", "salary", "1")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestSetProjectField_TechStackSplit(t *testing.T) {
	in := []types.Project{{ID: "p"}}
	out, err := SetProjectField(in, "p", "techStack", " Go, React ,, Postgres ")
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "React", "Postgres"}, out[0].TechStack)
	assert.Nil(t, in[0].TechStack)

	_, err = SetProjectField(in, "p", "stars", "1")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestSetEducationField(t *testing.T) {
	in := []types.Education{{ID: "e"}, {ID: "f"}}
	out, err := SetEducationField(in, "f", "fieldOfStudy", "Physics")
	require.NoError(t, err)
	assert.Equal(t, "Physics", out[1].FieldOfStudy)
	assert.Equal(t, in[0], out[0])
}

func TestSetSkillGroupField(t *testing.T) {
	in := []types.SkillGroup{{ID: "g"}}
	out, err := SetSkillGroupField(in, "g", "skills", "Go, Rust")
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "Rust"}, out[0].Skills)

	out, err = SetSkillGroupField(out, "g", "category", "Languages")
	require.NoError(t, err)
	assert.Equal(t, "Languages", out[0].Category)
}

func TestSetPersonalField(t *testing.T) {
	data := types.EmptyCVData()
	out, err := SetPersonalField(data, "fullName", "Jane Doe")
	require.NoError(t, err)
	out, err = SetPersonalField(out, "professionalTitle", "Engineer")
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", out.PersonalInfo.FullName)
	assert.Equal(t, "Engineer", out.ProfessionalTitle)
	assert.Empty(t, data.PersonalInfo.FullName)

	_, err = SetPersonalField(data, "age", "40")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestBullets(t *testing.T) {
	in := []string{"a", "b", "c"}

	assert.Equal(t, []string{"a", "b", "c", "d"}, AddBullet(in, "d"))
	assert.Equal(t, []string{"a", "c"}, RemoveBullet(in, 1))
	assert.Equal(t, []string{"a", "B", "c"}, SetBullet(in, 1, "B"))
	assert.Equal(t, in, RemoveBullet(in, 5))
	assert.Equal(t, in, SetBullet(in, -1, "x"))
	assert.Equal(t, []string{"a", "b", "c"}, in)
	assert.Equal(t, []string{"x"}, AddBullet(nil, "x"))
}

func TestAppendExperienceBullet(t *testing.T) {
	in := sampleExperiences()
	out := AppendExperienceBullet(in, "a", "Shipped X")

	assert.Equal(t, []string{"one", "Shipped X"}, out[0].Description)
	assert.Equal(t, []string{"one"}, in[0].Description)
	assert.Equal(t, in[1:], out[1:])
}

func TestAppendProjectBullet(t *testing.T) {
	in := []types.Project{{ID: "p", Description: []string{}}}
	out := AppendProjectBullet(in, "p", "Built Y")
	assert.Equal(t, []string{"Built Y"}, out[0].Description)
}

type fakeComposer struct {
	text string
	err  error
}

func (f fakeComposer) OptimizeBullet(context.Context, string, string, string) (string, error) {
	return f.text, f.err
}

func TestComposeBullet(t *testing.T) {
	ctx := context.Background()

	text, err := ComposeBullet(ctx, fakeComposer{text: "  Cut latency by 40%  "}, "Reduced", "latency", "40%")
	require.NoError(t, err)
	assert.Equal(t, "Cut latency by 40%", text)

	_, err = ComposeBullet(ctx, fakeComposer{text: "   "}, "a", "b", "c")
	assert.Error(t, err)

	boom := errors.New("boom")
	_, err = ComposeBullet(ctx, fakeComposer{err: boom}, "a", "b", "c")
	assert.ErrorIs(t, err, boom)
}
