package server

import (
	"net/http"

	"github.com/jonathan/cv-builder/internal/sections"
	"github.com/jonathan/cv-builder/internal/types"
	"github.com/jonathan/cv-builder/internal/versions"
)

// SectionInfo describes one registry entry.
type SectionInfo struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Position int    `json:"position"`
	Hidden   bool   `json:"hidden"`
}

// VisibilityRequest shows or hides a section of the active version.
type VisibilityRequest struct {
	Hidden bool `json:"hidden"`
}

// MoveRequest shifts a section of the active version; negative moves up.
type MoveRequest struct {
	Delta int `json:"delta"`
}

// handleSections lists the section registry in the active version's order.
func (s *Server) handleSections(w http.ResponseWriter, _ *http.Request) {
	active := s.store.Active()
	order := active.SectionOrder
	if len(order) == 0 {
		order = sections.DefaultOrder()
	}

	out := make([]SectionInfo, 0, len(order))
	for i, id := range order {
		label, ok := sections.Label(id)
		if !ok {
			continue
		}
		out = append(out, SectionInfo{ID: id, Label: label, Position: i + 1, Hidden: active.IsHidden(id)})
	}
	s.jsonResponse(w, http.StatusOK, out)
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.store.State())
}

// handleCreateVersion creates an empty version, or a copy of source_id.
func (s *Server) handleCreateVersion(w http.ResponseWriter, r *http.Request) {
	var req types.CreateVersionRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.failure(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.failure(w, r, validationError(err))
		return
	}

	if req.SourceID != "" {
		v, err := s.store.Duplicate(r.Context(), req.SourceID, req.Name)
		if err != nil {
			s.failure(w, r, err)
			return
		}
		s.jsonResponse(w, http.StatusCreated, v)
		return
	}
	s.jsonResponse(w, http.StatusCreated, s.store.Create(r.Context(), req.Name))
}

func (s *Server) handleGetVersion(w http.ResponseWriter, r *http.Request) {
	v, ok := versions.Find(s.store.State().Versions, r.PathValue("id"))
	if !ok {
		s.failure(w, r, versions.ErrVersionNotFound)
		return
	}
	s.jsonResponse(w, http.StatusOK, v)
}

func (s *Server) handleDeleteVersion(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.failure(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSelectVersion(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Select(r.Context(), r.PathValue("id")); err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.store.Active())
}

func (s *Server) handleGetActive(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.store.Active())
}

// handleUpdateActive renames the active version or replaces its summary, order or hidden set.
func (s *Server) handleUpdateActive(w http.ResponseWriter, r *http.Request) {
	var req types.UpdateVersionRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.failure(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.failure(w, r, validationError(err))
		return
	}

	v := s.store.UpdateActive(r.Context(), "update", versions.Patch{
		Name:           req.Name,
		Summary:        req.Summary,
		SectionOrder:   req.SectionOrder,
		HiddenSections: req.HiddenSections,
	})
	s.jsonResponse(w, http.StatusOK, v)
}

func (s *Server) handleSetVisibility(w http.ResponseWriter, r *http.Request) {
	var req VisibilityRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.failure(w, r, err)
		return
	}
	v, err := s.store.SetHidden(r.Context(), r.PathValue("section"), req.Hidden)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, v)
}

func (s *Server) handleMoveSection(w http.ResponseWriter, r *http.Request) {
	var req MoveRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.failure(w, r, err)
		return
	}
	if req.Delta == 0 {
		s.failure(w, r, &ErrValidation{Field: "delta", Message: "must be non-zero"})
		return
	}
	v, err := s.store.MoveSection(r.Context(), r.PathValue("section"), req.Delta)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, v)
}
