// Package server provides the HTTP REST API for the CV builder.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/cv-builder/internal/export"
	"github.com/jonathan/cv-builder/internal/generation"
	"github.com/jonathan/cv-builder/internal/ingestion"
	"github.com/jonathan/cv-builder/internal/server/middleware"
	"github.com/jonathan/cv-builder/internal/server/ratelimit"
	"github.com/jonathan/cv-builder/internal/versions"
)

// maxBodyBytes caps request bodies; the largest legitimate one is a pasted job description.
const maxBodyBytes = 1 << 20

// PDFRenderer turns a complete HTML page into PDF bytes.
type PDFRenderer func(ctx context.Context, html string) ([]byte, error)

// JobFetcher downloads a job posting and returns its text and page title.
type JobFetcher func(ctx context.Context, url string) (text, title string, err error)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	store       *versions.Store
	generator   *generation.Generator
	inflight    *generation.InFlight
	rateLimiter *ratelimit.Limiter
	renderPDF   PDFRenderer
	fetchJob    JobFetcher
	verbose     bool

	// streams is the base context of every request; cancelling it ends open event streams.
	streams       context.Context
	cancelStreams context.CancelFunc
}

// Config holds server configuration
type Config struct {
	Port       int
	Store      *versions.Store
	Generator  *generation.Generator // nil disables the generative endpoints
	ChromePath string
	UseBrowser bool
	RateLimit  *ratelimit.Config // nil reads RATE_LIMIT_* from the environment
	Verbose    bool
}

// Option overrides a collaborator, mainly for tests.
type Option func(*Server)

// WithPDFRenderer replaces the headless Chrome PDF export.
func WithPDFRenderer(fn PDFRenderer) Option {
	return func(s *Server) { s.renderPDF = fn }
}

// WithJobFetcher replaces job posting download.
func WithJobFetcher(fn JobFetcher) Option {
	return func(s *Server) { s.fetchJob = fn }
}

// New creates a new server instance
func New(cfg Config, opts ...Option) (*Server, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("server requires a version store")
	}

	rl := cfg.RateLimit
	if rl == nil {
		rl = ratelimit.LoadConfig()
	}

	s := &Server{
		store:       cfg.Store,
		generator:   cfg.Generator,
		inflight:    generation.NewInFlight(),
		rateLimiter: ratelimit.NewLimiter(rl),
		verbose:     cfg.Verbose,
		renderPDF: func(ctx context.Context, html string) ([]byte, error) {
			return export.PDF(ctx, html, export.PDFOptions{ChromePath: cfg.ChromePath})
		},
		fetchJob: func(ctx context.Context, url string) (string, string, error) {
			text, meta, err := ingestion.IngestFromURL(ctx, url, ingestion.URLOptions{
				UseBrowser: cfg.UseBrowser,
				ChromePath: cfg.ChromePath,
				Verbose:    cfg.Verbose,
			})
			if err != nil {
				return "", "", err
			}
			return text, meta.Title, nil
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.streams, s.cancelStreams = context.WithCancel(context.Background())

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/sections", s.handleSections)
	mux.HandleFunc("GET /api/state", s.handleState)
	mux.HandleFunc("GET /api/events", s.handleEvents)

	// Versions
	mux.HandleFunc("GET /api/versions", s.handleState)
	mux.HandleFunc("POST /api/versions", s.handleCreateVersion)
	mux.HandleFunc("GET /api/versions/{id}", s.handleGetVersion)
	mux.HandleFunc("DELETE /api/versions/{id}", s.handleDeleteVersion)
	mux.HandleFunc("POST /api/versions/{id}/select", s.handleSelectVersion)

	// Active version
	mux.HandleFunc("GET /api/active", s.handleGetActive)
	mux.HandleFunc("PATCH /api/active", s.handleUpdateActive)
	mux.HandleFunc("PUT /api/active/sections/{section}/visibility", s.handleSetVisibility)
	mux.HandleFunc("POST /api/active/sections/{section}/move", s.handleMoveSection)
	mux.HandleFunc("POST /api/active/edits", s.handleEdit)
	mux.HandleFunc("POST /api/active/compose", s.handleCompose)

	// Output
	mux.HandleFunc("GET /api/active/document", s.handleDocument)
	mux.HandleFunc("GET /api/active/preview", s.handlePreview)
	mux.HandleFunc("GET /api/active/export/word", s.handleExportWord)
	mux.HandleFunc("GET /api/active/export/pdf", s.handleExportPDF)

	// Job matching
	mux.HandleFunc("POST /api/match", s.handleMatch)
	mux.HandleFunc("POST /api/match/report", s.handleMatchReport)

	s.httpServer = &http.Server{
		Addr: fmt.Sprintf(":%d", cfg.Port),
		Handler: middleware.Chain(mux,
			middleware.RequestID,
			s.withRateLimit,
			s.withLogging,
			s.withCORS,
			middleware.Recover,
		),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0, // the event stream stays open
		IdleTimeout:  60 * time.Second,
		BaseContext:  func(net.Listener) context.Context { return s.streams },
	}

	return s, nil
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start serves until SIGINT or SIGTERM.
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Run(ctx)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		s.Close()
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Event streams never go idle on their own.
	s.httpServer.RegisterOnShutdown(s.cancelStreams)
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.Close()
	log.Println("Server stopped")
	return nil
}

// Close releases background resources without serving; used when the handler is mounted elsewhere.
func (s *Server) Close() {
	s.cancelStreams()
	s.rateLimiter.Stop()
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+middleware.RequestIDHeader)
		w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition, "+middleware.RequestIDHeader)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		if s.verbose {
			log.Printf("[VERBOSE] [%s] %s %s (request %s)", r.Method, r.URL.Path, r.RemoteAddr,
				middleware.GetRequestID(r.Context()))
		}
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"generation": s.generator != nil,
	})
}

// decodeJSON reads a JSON request body into v. An empty body leaves v untouched.
func (s *Server) decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return &ErrValidation{Field: "body", Message: err.Error()}
	}
	return nil
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// failure maps err to its status and writes it. Server-side failures are logged.
func (s *Server) failure(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[%s] %s failed (request %s): %v", r.Method, r.URL.Path,
			middleware.GetRequestID(r.Context()), err)
	}
	s.errorResponse(w, status, err.Error())
}

// attachment writes a downloadable file.
func (s *Server) attachment(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Printf("Error writing %s: %v", filename, err)
	}
}

// extractClientID uses the peer address; forwarded headers are not trusted.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}

	if info.RetryAfter > 0 {
		secs := max(1, int(info.RetryAfter.Seconds()))
		response["retry_after"] = secs
		w.Header().Set("Retry-After", fmt.Sprintf("%d", secs))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d", info.Limit, info.Remaining)
	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
