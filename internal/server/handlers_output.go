package server

import (
	"net/http"

	"github.com/jonathan/cv-builder/internal/export"
	"github.com/jonathan/cv-builder/internal/rendering"
)

// handleDocument returns the laid-out active version as JSON for clients that draw it themselves.
func (s *Server) handleDocument(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, rendering.RenderVersion(s.store.Active()))
}

// handlePreview returns the active version as a standalone HTML page.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	html, err := rendering.RenderHTML(rendering.RenderVersion(s.store.Active()))
	if err != nil {
		s.failure(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(html))
}

func (s *Server) handleExportWord(w http.ResponseWriter, r *http.Request) {
	active := s.store.Active()
	body, err := rendering.RenderBodyHTML(rendering.RenderVersion(active))
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.attachment(w, export.WordContentType, export.WordFilename(active.Data.PersonalInfo.FullName), export.WordDocument(body))
}

func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	active := s.store.Active()
	html, err := rendering.RenderHTML(rendering.RenderVersion(active))
	if err != nil {
		s.failure(w, r, err)
		return
	}
	pdf, err := s.renderPDF(r.Context(), html)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.attachment(w, "application/pdf", export.PDFFilename(active.Data.PersonalInfo.FullName), pdf)
}
