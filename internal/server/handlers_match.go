package server

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/jonathan/cv-builder/internal/export"
	"github.com/jonathan/cv-builder/internal/generation"
	"github.com/jonathan/cv-builder/internal/types"
	"github.com/jonathan/cv-builder/internal/versions"
)

// MatchResult is the analysis plus how the CV's skills cover its keywords.
type MatchResult struct {
	Analysis       *types.JDAnalysis `json:"analysis"`
	Summary        string            `json:"summary"`
	Found          []string          `json:"found"`
	Missing        []string          `json:"missing"`
	SummaryApplied bool              `json:"summaryApplied"`
}

// handleMatch analyzes a job description against the active version and drafts a tailored
// summary, optionally writing it to the version.
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	res, _, _, err := s.match(r)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, res)
}

// handleMatchReport runs the same match and returns it as a spreadsheet.
func (s *Server) handleMatchReport(w http.ResponseWriter, r *http.Request) {
	res, version, title, err := s.match(r)
	if err != nil {
		s.failure(w, r, err)
		return
	}

	var buf bytes.Buffer
	err = export.WriteMatchReport(&buf, export.Report{
		VersionName: version.Name,
		JobTitle:    title,
		Generated:   time.Now(),
		Result:      &types.MatchResponse{Analysis: res.Analysis, Summary: res.Summary},
		Found:       res.Found,
	})
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.attachment(w, export.ReportContentType, export.ReportFilename(version.Name), buf.Bytes())
}

func (s *Server) match(r *http.Request) (*MatchResult, types.CVVersion, string, error) {
	var req types.MatchRequest
	if err := s.decodeJSON(r, &req); err != nil {
		return nil, types.CVVersion{}, "", err
	}
	if err := req.Validate(); err != nil {
		return nil, types.CVVersion{}, "", validationError(err)
	}
	if s.generator == nil {
		return nil, types.CVVersion{}, "", ErrGenerationDisabled
	}

	release, err := s.inflight.Begin("match")
	if err != nil {
		return nil, types.CVVersion{}, "", err
	}
	defer release()

	jd, title, err := s.jobText(r.Context(), req)
	if err != nil {
		return nil, types.CVVersion{}, "", err
	}

	var opts []generation.MatchOption
	if req.AgainstCV {
		opts = append(opts, generation.AgainstCV())
	}
	version := s.store.Active()
	resp, err := s.generator.Match(r.Context(), version.Data, jd, opts...)
	if err != nil {
		return nil, types.CVVersion{}, "", err
	}

	found, missing := generation.Coverage(resp.Analysis, version.Data)
	res := &MatchResult{
		Analysis: resp.Analysis,
		Summary:  resp.Summary,
		Found:    found,
		Missing:  missing,
	}
	if req.ApplySummary && resp.Summary != "" {
		summary := resp.Summary
		version = s.store.UpdateActive(r.Context(), "match:summary", versions.Patch{Summary: &summary})
		res.SummaryApplied = true
	}
	return res, version, title, nil
}

// jobText returns the inline description, or downloads JobURL.
func (s *Server) jobText(ctx context.Context, req types.MatchRequest) (string, string, error) {
	if req.JobDescription != "" {
		return req.JobDescription, req.JobTitle, nil
	}
	text, title, err := s.fetchJob(ctx, req.JobURL)
	if err != nil {
		return "", "", err
	}
	if req.JobTitle != "" {
		title = req.JobTitle
	}
	return text, title, nil
}
