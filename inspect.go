package scenedi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Read-only HTTP inspector over the directory's live state. Diagnostic
// surface only: it never mutates scopes and takes no part in resolution.

type scopeSummary struct {
	ID          string   `json:"id"`
	Kind        string   `json:"kind"`
	Scene       string   `json:"scene,omitempty"`
	Services    []string `json:"services"`
	TickHandles [3]int   `json:"tickHandles"`
	Teardown    int      `json:"teardownHandles"`
	SweptByOrch bool     `json:"swept"`
}

type busSummary struct {
	Subscriptions map[string]int `json:"subscriptions"`
}

// InspectorHandler returns an http.Handler exposing the directory state as
// JSON:
//
//	GET /scopes        → all indexed scopes
//	GET /scopes/{id}   → one scope
//	GET /subscriptions → outstanding deferred-injection subscriptions
func (d *Directory) InspectorHandler() http.Handler {
	r := chi.NewRouter()

	r.Get("/scopes", func(w http.ResponseWriter, _ *http.Request) {
		scopes := d.Scopes()
		out := make([]scopeSummary, 0, len(scopes))
		for _, s := range scopes {
			out = append(out, d.summarize(s))
		}
		writeJSON(w, http.StatusOK, out)
	})

	r.Get("/scopes/{id}", func(w http.ResponseWriter, req *http.Request) {
		id := chi.URLParam(req, "id")
		for _, s := range d.Scopes() {
			if s.ID() == id {
				writeJSON(w, http.StatusOK, d.summarize(s))
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown scope"})
	})

	r.Get("/subscriptions", func(w http.ResponseWriter, _ *http.Request) {
		counts := d.bus.counts()
		out := busSummary{Subscriptions: make(map[string]int, len(counts))}
		for t, n := range counts {
			out.Subscriptions[t.String()] = n
		}
		writeJSON(w, http.StatusOK, out)
	})

	return r
}

func (d *Directory) summarize(s *Scope) scopeSummary {
	types := s.ServiceTypes()
	services := make([]string, 0, len(types))
	for _, t := range types {
		services = append(services, t.String())
	}
	return scopeSummary{
		ID:       s.ID(),
		Kind:     s.kindOf().String(),
		Scene:    string(s.SceneKey()),
		Services: services,
		TickHandles: [3]int{
			s.ticks.count(PrePhysics),
			s.ticks.count(Physics),
			s.ticks.count(PostPhysics),
		},
		Teardown:    s.teardown.count(),
		SweptByOrch: d.orch.Swept(s),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
