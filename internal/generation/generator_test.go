package generation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-builder/internal/llm"
	"github.com/jonathan/cv-builder/internal/llm/llmtest"
	"github.com/jonathan/cv-builder/internal/types"
)

const scenarioAnalysis = `{"keywords":{"skills":["Go"],"tools":[],"responsibilities":[]},"gaps":["Kubernetes"],"matchScore":72,"suggestions":"Add more infra experience"}`

func sampleData() types.CVData {
	data := types.EmptyCVData()
	data.ProfessionalTitle = "Backend Engineer"
	data.SkillGroups = []types.SkillGroup{
		{ID: "g1", Category: "Languages", Skills: []string{"Go", "Python"}},
		{ID: "g2", Category: "Data", Skills: []string{"PostgreSQL"}},
	}
	data.Experiences = []types.Experience{
		{ID: "e1", Company: "Acme", Role: "Engineer"},
		{ID: "e2", Company: "Globex", Role: "Intern"},
		{ID: "e3", Company: "Initech", Role: "Contractor"},
	}
	return data
}

func TestOptimizeBullet_StripsMarker(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     string
	}{
		{"dash", "- Reduced latency by 40%", "Reduced latency by 40%"},
		{"bullet glyph", "  •Reduced latency by 40%\n", "Reduced latency by 40%"},
		{"asterisk", "* Reduced latency", "Reduced latency"},
		{"bold is kept", "**Reduced** latency", "**Reduced** latency"},
		{"plain", "Reduced latency", "Reduced latency"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &llmtest.Fake{Text: tt.response}
			got, err := New(fake).OptimizeBullet(context.Background(), "Reduced", "API latency", "40%")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOptimizeBullet_PromptAndTier(t *testing.T) {
	fake := &llmtest.Fake{Text: "ok"}
	_, err := New(fake).OptimizeBullet(context.Background(), "Led", "migration to GKE", "zero downtime")
	require.NoError(t, err)

	calls := fake.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, llm.TierLite, calls[0].Tier)
	assert.False(t, calls[0].JSON)
	assert.Contains(t, calls[0].Prompt, "Action: Led")
	assert.Contains(t, calls[0].Prompt, "What: migration to GKE")
	assert.Contains(t, calls[0].Prompt, "Result/Metric: zero downtime")
}

func TestOptimizeBullet_APIError(t *testing.T) {
	fake := &llmtest.Fake{Err: errors.New("unreachable")}
	_, err := New(fake).OptimizeBullet(context.Background(), "a", "b", "c")

	var apiErr *APICallError
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, err.Error(), "unreachable")
}

func TestAnalyzeJobDescription_Scenario(t *testing.T) {
	fake := &llmtest.Fake{JSON: scenarioAnalysis}
	analysis, err := New(fake).AnalyzeJobDescription(context.Background(), "We need a Go engineer with Kubernetes")
	require.NoError(t, err)

	assert.Equal(t, 72, analysis.RoundedScore())
	assert.True(t, analysis.IsStrongMatch())
	assert.Equal(t, []string{"Kubernetes"}, analysis.Gaps)
	assert.Equal(t, []string{"Go"}, analysis.Keywords.Skills)
	assert.Equal(t, "Add more infra experience", analysis.Suggestions)

	calls := fake.Calls()
	require.Len(t, calls, 1)
	assert.True(t, calls[0].JSON)
	assert.NotContains(t, calls[0].Prompt, "Candidate CV")
	assert.Contains(t, calls[0].Prompt, "JD: We need a Go engineer with Kubernetes")
}

func TestAnalyzeAgainstCV_IncludesCandidate(t *testing.T) {
	fake := &llmtest.Fake{JSON: scenarioAnalysis}
	_, err := New(fake).AnalyzeAgainstCV(context.Background(), sampleData(), "jd")
	require.NoError(t, err)

	prompt, ok := fake.PromptContaining("Candidate CV")
	require.True(t, ok)
	assert.Contains(t, prompt, "Go, Python, PostgreSQL")
	assert.Contains(t, prompt, "Contractor at Initech")
}

func TestParseAnalysis_Strict(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"not json", "I could not analyze this"},
		{"missing gaps", `{"keywords":{"skills":[],"tools":[],"responsibilities":[]},"matchScore":50,"suggestions":""}`},
		{"score not numeric", `{"keywords":{"skills":[],"tools":[],"responsibilities":[]},"gaps":[],"matchScore":"72%","suggestions":""}`},
		{"keywords incomplete", `{"keywords":{"skills":[]},"gaps":[],"matchScore":50,"suggestions":""}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAnalysis(tt.text)
			var parseErr *ParseError
			assert.ErrorAs(t, err, &parseErr)
		})
	}
}

func TestParseAnalysis_FencedAndNormalized(t *testing.T) {
	text := "```json\n" + `{"keywords":{"skills":["golang"," Go ","k8s"],"tools":["Docker"],"responsibilities":[]},"gaps":["kubernetes",""],"matchScore":64.6,"suggestions":" tighten bullets "}` + "\n```"

	analysis, err := ParseAnalysis(text)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "Kubernetes"}, analysis.Keywords.Skills)
	assert.Equal(t, []string{"Kubernetes"}, analysis.Gaps)
	assert.Equal(t, 65, analysis.RoundedScore())
	assert.False(t, analysis.IsStrongMatch())
	assert.Equal(t, "tighten bullets", analysis.Suggestions)
}

func TestGenerateSummary_Prompt(t *testing.T) {
	fake := &llmtest.Fake{Text: "  Backend engineer with a decade of Go.\n"}
	summary, err := New(fake).GenerateSummary(context.Background(), sampleData(), "Go role")
	require.NoError(t, err)
	assert.Equal(t, "Backend engineer with a decade of Go.", summary)

	prompt := fake.Calls()[0].Prompt
	assert.Contains(t, prompt, "- Title: Backend Engineer")
	assert.Contains(t, prompt, "- Key Skills: Go, Python, PostgreSQL")
	assert.Contains(t, prompt, "- Experience Highlights: Engineer at Acme, Intern at Globex\n")
	assert.NotContains(t, prompt, "Initech")
	assert.Contains(t, prompt, "Go role")
}

func TestHighlights(t *testing.T) {
	assert.Equal(t, []string{"Engineer at Acme"}, Highlights(sampleData(), 1))
	assert.Equal(t, []string{}, Highlights(types.EmptyCVData(), 2))
}
