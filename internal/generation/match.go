package generation

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/cv-builder/internal/types"
)

// MatchOption adjusts a Match call.
type MatchOption func(*matchOptions)

type matchOptions struct {
	againstCV bool
}

// AgainstCV includes the candidate's data in the analysis request, so gaps and score are judged
// against the CV instead of the job description alone.
func AgainstCV() MatchOption {
	return func(o *matchOptions) { o.againstCV = true }
}

// Match analyzes jd and generates a summary tailored from data. Both requests run
// concurrently and both must succeed; the first failure cancels the other.
func (g *Generator) Match(ctx context.Context, data types.CVData, jd string, opts ...MatchOption) (*types.MatchResponse, error) {
	if strings.TrimSpace(jd) == "" {
		return nil, ErrEmptyJobDescription
	}

	var o matchOptions
	for _, opt := range opts {
		opt(&o)
	}

	var (
		analysis *types.JDAnalysis
		summary  string
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		if o.againstCV {
			analysis, err = g.AnalyzeAgainstCV(egCtx, data, jd)
		} else {
			analysis, err = g.AnalyzeJobDescription(egCtx, jd)
		}
		return err
	})
	eg.Go(func() error {
		var err error
		summary, err = g.GenerateSummary(egCtx, data, jd)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return &types.MatchResponse{Analysis: analysis, Summary: summary}, nil
}
