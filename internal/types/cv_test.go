//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID_IsUniqueUUID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewID()
		_, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.False(t, seen[id], "id %s generated twice", id)
		seen[id] = true
	}
}

func TestEmptyCVData_ListsAreNonNil(t *testing.T) {
	data := EmptyCVData()

	assert.NotNil(t, data.Experiences)
	assert.NotNil(t, data.Education)
	assert.NotNil(t, data.SkillGroups)
	assert.NotNil(t, data.Projects)
	assert.NotNil(t, data.Certifications)
	assert.Empty(t, data.PersonalInfo.FullName)
	assert.Empty(t, data.ProfessionalTitle)

	// Empty lists serialize as [] rather than null
	jsonBytes, err := json.Marshal(data)
	require.NoError(t, err)
	assert.Contains(t, string(jsonBytes), `"experiences":[]`)
}

func TestCVData_Clone_IsIndependent(t *testing.T) {
	data := EmptyCVData()
	data.Experiences = []Experience{{ID: "e1", Company: "Acme", Description: []string{"Shipped X"}}}
	data.Projects = []Project{{ID: "p1", Name: "Tool", TechStack: []string{"Go"}, Description: []string{"Built it"}}}
	data.SkillGroups = []SkillGroup{{ID: "s1", Category: "Backend", Skills: []string{"Go", "SQL"}}}

	clone := data.Clone()
	assert.Equal(t, data, clone)

	clone.Experiences[0].Description[0] = "Changed"
	clone.Projects[0].TechStack[0] = "Rust"
	clone.SkillGroups[0].Skills[1] = "NoSQL"
	clone.Experiences[0].Company = "Other"

	assert.Equal(t, "Shipped X", data.Experiences[0].Description[0])
	assert.Equal(t, "Go", data.Projects[0].TechStack[0])
	assert.Equal(t, "SQL", data.SkillGroups[0].Skills[1])
	assert.Equal(t, "Acme", data.Experiences[0].Company)
}

func TestCVData_AllSkills(t *testing.T) {
	data := CVData{SkillGroups: []SkillGroup{
		{ID: "a", Skills: []string{"Go", "SQL"}},
		{ID: "b", Skills: []string{"Docker"}},
	}}
	assert.Equal(t, []string{"Go", "SQL", "Docker"}, data.AllSkills())
}

func TestCVVersion_JSONUsesStorageKeys(t *testing.T) {
	v := CVVersion{
		ID:             "v1",
		Name:           DefaultVersionName,
		LastModified:   1700000000000,
		Data:           EmptyCVData(),
		SectionOrder:   []string{"personal", "summary"},
		HiddenSections: []string{"summary"},
	}

	jsonBytes, err := json.Marshal(v)
	require.NoError(t, err)
	s := string(jsonBytes)
	assert.Contains(t, s, `"lastModified":1700000000000`)
	assert.Contains(t, s, `"sectionOrder":["personal","summary"]`)
	assert.Contains(t, s, `"hiddenSections":["summary"]`)
	assert.Contains(t, s, `"personalInfo"`)

	assert.True(t, v.IsHidden("summary"))
	assert.False(t, v.IsHidden("personal"))
	assert.Equal(t, int64(1700000000000), v.ModifiedAt().UnixMilli())
}

func TestJDAnalysis_Unmarshal(t *testing.T) {
	input := `{
		"keywords": {"skills": ["Go"], "tools": [], "responsibilities": []},
		"gaps": ["Kubernetes"],
		"matchScore": 72,
		"suggestions": "Add more infra experience"
	}`

	var analysis JDAnalysis
	require.NoError(t, json.Unmarshal([]byte(input), &analysis))

	assert.Equal(t, []string{"Go"}, analysis.Keywords.Skills)
	assert.Equal(t, []string{"Kubernetes"}, analysis.Gaps)
	assert.Equal(t, 72, analysis.RoundedScore())
	assert.True(t, analysis.IsStrongMatch())
}

func TestJDAnalysis_RoundedScore(t *testing.T) {
	tests := []struct {
		score float64
		want  int
	}{
		{score: 0, want: 0},
		{score: 69.5, want: 70},
		{score: 70.4, want: 70},
		{score: 100, want: 100},
	}

	for _, tt := range tests {
		a := &JDAnalysis{MatchScore: tt.score}
		assert.Equal(t, tt.want, a.RoundedScore(), "score %v", tt.score)
	}

	assert.False(t, (&JDAnalysis{MatchScore: 70}).IsStrongMatch())
}
