// Package http exposes the kernel over a small JSON API: launching
// navigators, executing registered workflows, and introspecting the
// navigator catalog.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aretw0/kestrel/pkg/domain"
	"github.com/go-chi/chi/v5"
)

// Kernel defines the interface the HTTP adapter needs from the kestrel core.
type Kernel interface {
	Launch(ctx context.Context, navigator string, escaped bool, seed domain.Memory) (bool, error)
	Execute(ctx context.Context, wf domain.Workflow, mem domain.Memory) (domain.Memory, error)
	Workflow(name string) (domain.Workflow, bool)
	Navigators() []string
}

// Server handles the API routes.
type Server struct {
	kernel Kernel
}

// NewHandler creates a new HTTP handler for the kernel. It fails if the
// embedded OpenAPI document does not validate, which catches drift between
// the spec and the routes at startup rather than in a client.
func NewHandler(kernel Kernel) (http.Handler, error) {
	if err := validateSpec(); err != nil {
		return nil, fmt.Errorf("openapi spec invalid: %w", err)
	}

	s := &Server{kernel: kernel}

	r := chi.NewRouter()
	r.Post("/launch", s.handleLaunch)
	r.Post("/workflows/{name}/execute", s.handleExecute)
	r.Get("/navigators", s.handleNavigators)
	r.Get("/openapi.yaml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		_, _ = w.Write(openapiSpec)
	})
	return r, nil
}

type launchRequest struct {
	Navigator string        `json:"navigator"`
	Escaped   bool          `json:"escaped"`
	Memory    domain.Memory `json:"memory"`
}

type launchResponse struct {
	Valid bool `json:"valid"`
}

func (s *Server) handleLaunch(w http.ResponseWriter, r *http.Request) {
	var body launchRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if body.Navigator == "" {
		http.Error(w, "navigator is required", http.StatusBadRequest)
		return
	}

	valid, err := s.kernel.Launch(r.Context(), body.Navigator, body.Escaped, body.Memory)
	if err != nil {
		http.Error(w, fmt.Sprintf("Launch error: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, launchResponse{Valid: valid})
}

type executeRequest struct {
	Memory domain.Memory `json:"memory"`
}

type executeResponse struct {
	Valid  bool          `json:"valid"`
	Memory domain.Memory `json:"memory"`
}

func (s *Server) handleExecute(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	wf, ok := s.kernel.Workflow(name)
	if !ok {
		http.Error(w, fmt.Sprintf("Unknown workflow: %s", name), http.StatusNotFound)
		return
	}

	var body executeRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
	}

	mem, err := s.kernel.Execute(r.Context(), wf, body.Memory)
	if err != nil {
		http.Error(w, fmt.Sprintf("Execute error: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, executeResponse{Valid: mem.Valid(), Memory: mem})
}

func (s *Server) handleNavigators(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string][]string{"navigators": s.kernel.Navigators()})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "Encoding error", http.StatusInternalServerError)
	}
}
