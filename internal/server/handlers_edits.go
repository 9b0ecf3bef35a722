package server

import (
	"log"
	"net/http"

	"github.com/jonathan/cv-builder/internal/editor"
	"github.com/jonathan/cv-builder/internal/sections"
	"github.com/jonathan/cv-builder/internal/types"
)

// EditResponse returns the updated version and the id of the affected entry.
type EditResponse struct {
	Version types.CVVersion `json:"version"`
	ID      string          `json:"id,omitempty"`
}

// ComposeResponse carries a drafted bullet. Version is set when the bullet was appended to an entry.
type ComposeResponse struct {
	Bullet  string           `json:"bullet"`
	Version *types.CVVersion `json:"version,omitempty"`
}

// handleEdit applies one form edit to the active version's data.
func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	var e editor.Edit
	if err := s.decodeJSON(r, &e); err != nil {
		s.failure(w, r, err)
		return
	}
	if e.Section == "" || e.Op == "" {
		s.failure(w, r, &ErrValidation{Field: "section", Message: "section and op are required"})
		return
	}

	var affected string
	v, err := s.store.EditData(r.Context(), "edit:"+e.Section, func(data types.CVData) (types.CVData, error) {
		out, id, err := editor.ApplyToData(data, e)
		affected = id
		return out, err
	})
	if err != nil {
		s.failure(w, r, err)
		return
	}

	status := http.StatusOK
	if e.Op == editor.OpAdd {
		status = http.StatusCreated
	}
	s.jsonResponse(w, status, EditResponse{Version: v, ID: affected})
}

// handleCompose drafts an achievement bullet. With a target entry the bullet is appended to it;
// a second request for the same target while one is running gets 409.
func (s *Server) handleCompose(w http.ResponseWriter, r *http.Request) {
	var req types.ComposeBulletRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.failure(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.failure(w, r, validationError(err))
		return
	}
	if s.generator == nil {
		s.failure(w, r, ErrGenerationDisabled)
		return
	}

	key := "compose"
	if req.Section != "" {
		key += ":" + req.Section + ":" + req.ID
	}
	release, err := s.inflight.Begin(key)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	defer release()

	bullet, err := editor.ComposeBullet(r.Context(), s.generator, req.Action, req.Scope, req.Metric)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	if req.Section == "" {
		s.jsonResponse(w, http.StatusOK, ComposeResponse{Bullet: bullet})
		return
	}

	v, err := s.store.EditData(r.Context(), "compose:"+req.Section, func(data types.CVData) (types.CVData, error) {
		out, _, err := editor.ApplyToData(data, editor.Edit{
			Section: req.Section,
			Op:      editor.OpAddBullet,
			ID:      req.ID,
			Value:   bullet,
		})
		return out, err
	})
	if err != nil {
		s.failure(w, r, err)
		return
	}
	if s.verbose {
		log.Printf("[VERBOSE] Appended composed bullet to %s entry %s", targetLabel(req.Section), req.ID)
	}
	s.jsonResponse(w, http.StatusOK, ComposeResponse{Bullet: bullet, Version: &v})
}

// targetLabel names the section for log lines.
func targetLabel(section string) string {
	if label, ok := sections.Label(section); ok {
		return label
	}
	return section
}
