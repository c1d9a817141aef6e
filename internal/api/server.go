// Package api exposes the fill engine over HTTP with JSON bodies.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/polyfill/internal/fill"
)

// Request limits. Every request is held to these, strict mode or not.
const (
	DefaultMaxPixels = 4_000_000 // canvas area cap, see Options.MaxPixels
	MaxCoordinate    = 1 << 16   // largest accepted |x| or |y| of a vertex or seed
	maxBodyBytes     = 1 << 20
)

// Options configures a Server.
type Options struct {
	// Strict rejects requests the engine would otherwise render in a
	// degenerate way: short polygons, unknown modes, missing or misplaced
	// seeds, and colour tokens that are not hex colours.
	Strict bool

	// MaxPixels caps canvas_width*canvas_height. Zero disables the cap.
	MaxPixels int

	Logger *log.Logger
}

// Server routes HTTP requests to a fill engine.
type Server struct {
	engine *fill.Engine
	opts   Options
	logger *log.Logger
	mux    *http.ServeMux
}

// NewServer creates a server backed by engine.
func NewServer(engine *fill.Engine, opts Options) *Server {
	s := &Server{
		engine: engine,
		opts:   opts,
		logger: opts.Logger,
		mux:    http.NewServeMux(),
	}
	if s.logger == nil {
		s.logger = log.Default()
	}

	s.mux.HandleFunc("POST /api/fill", s.handleFill)
	s.mux.HandleFunc("GET /api/shape", s.handleShape)
	s.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprint(w, "ok")
	})
	return s
}

// Ensure Server satisfies http.Handler.
var _ http.Handler = (*Server)(nil)

// ServeHTTP implements http.Handler and logs every request.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
	s.mux.ServeHTTP(sw, r)
	s.logger.Info("request",
		"method", r.Method,
		"path", r.URL.Path,
		"status", sw.status,
		"elapsed", time.Since(start),
	)
}

func (s *Server) handleFill(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var fr FillRequest
	if err := json.NewDecoder(r.Body).Decode(&fr); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			s.writeError(w, http.StatusRequestEntityTooLarge, err)
			return
		}
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("%w: %v", ErrInvalid, err))
		return
	}

	req, err := s.toFillRequest(fr)
	switch {
	case errors.Is(err, ErrTooLarge):
		s.writeError(w, http.StatusRequestEntityTooLarge, err)
		return
	case err != nil:
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	res := s.engine.Fill(req)
	s.writeJSON(w, http.StatusOK, newFillResponse(res))
}

func (s *Server) handleShape(w http.ResponseWriter, r *http.Request) {
	width, height := s.engine.Size()
	s.writeJSON(w, http.StatusOK, ShapeResponse{
		Shape:  fromPoints(fill.DefaultShape()),
		Width:  width,
		Height: height,
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to write response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.logger.Warn("rejected request", "status", status, "err", err)
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

// statusWriter records the status code written by a handler.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (sw *statusWriter) WriteHeader(code int) {
	sw.status = code
	sw.ResponseWriter.WriteHeader(code)
}
