package llm

import (
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidate(parts ...genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: parts}}},
	}
}

func TestJoinTextParts(t *testing.T) {
	got, err := joinTextParts(candidate(genai.Text("Led "), genai.Blob{MIMEType: "image/png"}, genai.Text("the migration")))
	require.NoError(t, err)
	assert.Equal(t, "Led the migration", got)
}

func TestJoinTextParts_Empty(t *testing.T) {
	tests := []struct {
		name string
		resp *genai.GenerateContentResponse
		want string
	}{
		{name: "nil response", resp: nil, want: "no candidates"},
		{name: "no candidates", resp: &genai.GenerateContentResponse{}, want: "no candidates"},
		{name: "nil content", resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}, want: "no content"},
		{name: "only blobs", resp: candidate(genai.Blob{MIMEType: "image/png"}), want: "no text parts"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := joinTextParts(tt.resp)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}
