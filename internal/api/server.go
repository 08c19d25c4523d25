// Package api exposes the circuit editor over HTTP for browser frontends
// and scripting.
//
// The server owns a single live circuit. The circuit itself is
// single-threaded, so every handler takes the server mutex before touching
// it; concurrency stops at this boundary.
package api

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/arclabs/breadboard/pkg/circuit"
	"github.com/arclabs/breadboard/pkg/errors"
	"github.com/arclabs/breadboard/pkg/pipeline"
)

// Server serves the circuit editing API.
type Server struct {
	mu      sync.Mutex
	circuit *circuit.Circuit
	runner  *pipeline.Runner
	logger  *log.Logger
}

// NewServer creates a server around a fresh circuit. The runner supplies
// rendering and AI generation; a runner without a generator serves
// everything except /api/generate.
func NewServer(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		circuit: circuit.New(),
		runner:  runner,
		logger:  logger,
	}
}

// Handler returns the chi router for the API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/circuit", s.handleGetCircuit)
		r.Put("/circuit", s.handlePutCircuit)
		r.Post("/components", s.handleAddComponent)
		r.Delete("/components/{id}", s.handleRemoveComponent)
		r.Post("/connections", s.handleAddConnection)
		r.Delete("/connections/{id}", s.handleRemoveConnection)
		r.Post("/simulate", s.handleSimulate)
		r.Get("/render", s.handleRender)
		r.Post("/generate", s.handleGenerate)
		r.Get("/verify", s.handleVerify)
	})

	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start))
	})
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGetCircuit(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	data := s.circuit.Data()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, data)
}

func (s *Server) handlePutCircuit(w http.ResponseWriter, r *http.Request) {
	var data circuit.Data
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode circuit"))
		return
	}

	s.mu.Lock()
	s.circuit.UpdateFromData(data)
	out := s.circuit.Data()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

type addComponentRequest struct {
	Type string `json:"type"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

type componentResponse struct {
	ID   string   `json:"id"`
	Type string   `json:"type"`
	X    int      `json:"x"`
	Y    int      `json:"y"`
	Pins []string `json:"pins"`
}

func (s *Server) handleAddComponent(w http.ResponseWriter, r *http.Request) {
	var req addComponentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode component"))
		return
	}
	if req.Type == "" {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "component type is required"))
		return
	}

	s.mu.Lock()
	comp := s.circuit.AddComponent(req.Type, circuit.Point{X: req.X, Y: req.Y})
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, componentResponse{
		ID:   comp.ID,
		Type: comp.Type,
		X:    comp.Position.X,
		Y:    comp.Position.Y,
		Pins: comp.PinNames(),
	})
}

func (s *Server) handleRemoveComponent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	_, ok := s.circuit.Component(id)
	if ok {
		s.circuit.RemoveComponent(id)
	}
	s.mu.Unlock()

	if !ok {
		writeError(w, errors.New(errors.ErrCodeNotFound, "component not found"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type addConnectionRequest struct {
	Pin1 string `json:"pin1"`
	Pin2 string `json:"pin2"`
}

func (s *Server) handleAddConnection(w http.ResponseWriter, r *http.Request) {
	var req addConnectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode connection"))
		return
	}
	if req.Pin1 == "" || req.Pin2 == "" {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "pin1 and pin2 are required"))
		return
	}

	s.mu.Lock()
	conn := s.circuit.AddConnection(req.Pin1, req.Pin2)
	s.mu.Unlock()

	if conn == nil {
		// Duplicate pair or both endpoints on the same pin.
		writeJSON(w, http.StatusConflict, map[string]string{"error": "connection already exists or is invalid"})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{
		"id":   conn.ID,
		"pin1": conn.Pin1,
		"pin2": conn.Pin2,
	})
}

func (s *Server) handleRemoveConnection(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	found := false
	for _, conn := range s.circuit.Connections() {
		if conn.ID == id {
			found = true
			break
		}
	}
	if found {
		s.circuit.RemoveConnection(id)
	}
	s.mu.Unlock()

	if !found {
		writeError(w, errors.New(errors.ErrCodeNotFound, "connection not found"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type simulateRequest struct {
	Ticks int `json:"ticks"`
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	ticks := pipeline.DefaultTicks
	if r.Body != nil && r.ContentLength != 0 {
		var req simulateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode simulate request"))
			return
		}
		if req.Ticks != 0 {
			ticks = req.Ticks
		}
	}
	if ticks < 0 || ticks > pipeline.MaxTicks {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "ticks out of range"))
		return
	}

	s.mu.Lock()
	var state circuit.SimulationState
	for range ticks {
		state = s.circuit.SimulateStep()
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, err)
		return
	}
	showStates := r.URL.Query().Get("states") == "true"

	s.mu.Lock()
	artifacts, err := s.runner.Render(r.Context(), s.circuit, "", pipeline.Options{
		Formats:    []string{format},
		ShowStates: showStates,
	})
	s.mu.Unlock()
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentType(format))
	w.WriteHeader(http.StatusOK)
	w.Write(artifacts[format])
}

type generateRequest struct {
	Prompt string `json:"prompt"`
}

type generateResponse struct {
	Data circuit.Data `json:"data"`
	Code string       `json:"code"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if s.runner == nil || s.runner.Generator == nil {
		writeError(w, errors.New(errors.ErrCodeNoAPIKey, "AI generation is not configured"))
		return
	}

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode generate request"))
		return
	}

	data, err := s.runner.Generator.GenerateCircuit(r.Context(), req.Prompt)
	if err != nil {
		writeError(w, err)
		return
	}
	code, err := s.runner.Generator.GenerateCode(r.Context(), data)
	if err != nil {
		writeError(w, err)
		return
	}

	// The generated design replaces the live circuit.
	s.mu.Lock()
	s.circuit.UpdateFromData(data)
	out := s.circuit.Data()
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, generateResponse{Data: out, Code: code})
}

func (s *Server) handleVerify(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	issues := s.circuit.Verify()
	s.mu.Unlock()

	if issues == nil {
		issues = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"issues": issues})
}

// =============================================================================
// Response helpers
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), map[string]string{
		"error": errors.UserMessage(err),
		"code":  string(errors.GetCode(err)),
	})
}

// statusFor maps error codes to HTTP status codes.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidPrompt, errors.ErrCodeInvalidDesign:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound, errors.ErrCodeDesignNotFound:
		return http.StatusNotFound
	case errors.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case errors.ErrCodeNoAPIKey:
		return http.StatusServiceUnavailable
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func contentType(format string) string {
	switch format {
	case pipeline.FormatSVG:
		return "image/svg+xml"
	case pipeline.FormatPNG:
		return "image/png"
	default:
		return "text/vnd.graphviz"
	}
}
