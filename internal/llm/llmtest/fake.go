// Package llmtest provides an in-memory llm.Client for tests.
package llmtest

import (
	"context"
	"strings"
	"sync"

	"github.com/jonathan/cv-builder/internal/llm"
)

// Call records one request made to the fake
type Call struct {
	Prompt string
	Tier   llm.ModelTier
	JSON   bool
}

// Fake returns canned responses. Respond, when set, takes precedence over Text and JSON.
type Fake struct {
	Text    string
	JSON    string
	Err     error
	Respond func(prompt string, json bool) (string, error)
	// Block, when non-nil, delays every call until it is closed or the context ends
	Block chan struct{}

	mu    sync.Mutex
	calls []Call
}

var _ llm.Client = (*Fake)(nil)

// GenerateContent returns Text
func (f *Fake) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return f.respond(ctx, Call{Prompt: prompt, Tier: tier})
}

// GenerateJSON returns JSON
func (f *Fake) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return f.respond(ctx, Call{Prompt: prompt, Tier: tier, JSON: true})
}

func (f *Fake) respond(ctx context.Context, c Call) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, c)
	f.mu.Unlock()

	if f.Block != nil {
		select {
		case <-f.Block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if f.Respond != nil {
		return f.Respond(c.Prompt, c.JSON)
	}
	if f.Err != nil {
		return "", f.Err
	}
	if c.JSON {
		return f.JSON, nil
	}
	return f.Text, nil
}

// GetModel returns a fixed name
func (f *Fake) GetModel(tier llm.ModelTier) string {
	return "fake-" + string(tier)
}

// Close is a no-op
func (f *Fake) Close() error { return nil }

// Calls returns the recorded requests
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// PromptContaining returns the first recorded prompt containing s
func (f *Fake) PromptContaining(s string) (string, bool) {
	for _, c := range f.Calls() {
		if strings.Contains(c.Prompt, s) {
			return c.Prompt, true
		}
	}
	return "", false
}
