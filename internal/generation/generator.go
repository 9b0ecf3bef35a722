// Package generation implements the generative text operations: drafting a bullet, analyzing a
// job description, and writing a tailored summary.
package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/jonathan/cv-builder/internal/llm"
	"github.com/jonathan/cv-builder/internal/prompts"
	"github.com/jonathan/cv-builder/internal/schemas"
	"github.com/jonathan/cv-builder/internal/types"
)

// maxHighlights is how many "role at company" lines the summary prompt includes
const maxHighlights = 2

var bulletMarker = regexp.MustCompile(`^(?:[-•]\s*|\*\s+)`)

// Generator runs the generative operations against an llm.Client.
type Generator struct {
	client llm.Client
}

// New returns a Generator. The client must already be constructed, so a missing credential has
// failed before any Generator exists.
func New(client llm.Client) *Generator {
	return &Generator{client: client}
}

// OptimizeBullet drafts one achievement statement from an action verb, a scope, and a metric.
func (g *Generator) OptimizeBullet(ctx context.Context, action, scope, metric string) (string, error) {
	prompt, err := prompts.Build(prompts.Generation, prompts.KeyOptimizeBullet, map[string]string{
		"Action": action,
		"Scope":  scope,
		"Metric": metric,
	})
	if err != nil {
		return "", err
	}

	text, err := g.client.GenerateContent(ctx, prompt, llm.TierLite)
	if err != nil {
		return "", &APICallError{Message: "failed to optimize bullet", Cause: err}
	}
	return CleanBullet(text), nil
}

// CleanBullet trims the response and strips one leading list marker.
func CleanBullet(text string) string {
	text = strings.TrimSpace(text)
	return strings.TrimSpace(bulletMarker.ReplaceAllString(text, ""))
}

// AnalyzeJobDescription extracts keywords, gaps, a match score, and suggestions from jd.
func (g *Generator) AnalyzeJobDescription(ctx context.Context, jd string) (*types.JDAnalysis, error) {
	return g.analyze(ctx, "", jd)
}

// AnalyzeAgainstCV is AnalyzeJobDescription with the candidate's data in the prompt, so gaps and
// score are judged against it.
func (g *Generator) AnalyzeAgainstCV(ctx context.Context, data types.CVData, jd string) (*types.JDAnalysis, error) {
	return g.analyze(ctx, candidateBlock(data), jd)
}

func (g *Generator) analyze(ctx context.Context, candidate, jd string) (*types.JDAnalysis, error) {
	prompt, err := prompts.Build(prompts.Generation, prompts.KeyAnalyzeJD, map[string]string{
		"Candidate":      candidate,
		"JobDescription": jd,
	})
	if err != nil {
		return nil, err
	}

	text, err := g.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, &APICallError{Message: "failed to analyze job description", Cause: err}
	}
	return ParseAnalysis(text)
}

// ParseAnalysis strictly parses a model response: every field must be present with the right
// type before it is decoded.
func ParseAnalysis(text string) (*types.JDAnalysis, error) {
	text = llm.CleanJSONBlock(text)
	if err := schemas.ValidateJDAnalysis(text); err != nil {
		return nil, &ParseError{Message: "job description analysis does not match schema", Cause: err}
	}

	var analysis types.JDAnalysis
	if err := json.Unmarshal([]byte(text), &analysis); err != nil {
		return nil, &ParseError{Message: "failed to parse JSON response", Cause: err}
	}
	normalizeAnalysis(&analysis)
	return &analysis, nil
}

// GenerateSummary writes a short professional summary tailored to jd.
func (g *Generator) GenerateSummary(ctx context.Context, data types.CVData, jd string) (string, error) {
	prompt, err := prompts.Build(prompts.Generation, prompts.KeySummary, map[string]string{
		"Title":          data.ProfessionalTitle,
		"Skills":         strings.Join(data.AllSkills(), ", "),
		"Highlights":     strings.Join(Highlights(data, maxHighlights), ", "),
		"JobDescription": jd,
	})
	if err != nil {
		return "", err
	}

	text, err := g.client.GenerateContent(ctx, prompt, llm.TierStandard)
	if err != nil {
		return "", &APICallError{Message: "failed to generate summary", Cause: err}
	}
	return strings.TrimSpace(text), nil
}

// Highlights returns up to n "role at company" strings from the first experiences.
func Highlights(data types.CVData, n int) []string {
	out := []string{}
	for _, e := range data.Experiences {
		if len(out) == n {
			break
		}
		out = append(out, e.Role+" at "+e.Company)
	}
	return out
}

func candidateBlock(data types.CVData) string {
	return fmt.Sprintf("\nCandidate CV:\n- Title: %s\n- Skills: %s\n- Experience: %s\n",
		data.ProfessionalTitle,
		strings.Join(data.AllSkills(), ", "),
		strings.Join(Highlights(data, len(data.Experiences)), "; "))
}
