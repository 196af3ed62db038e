package web

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleSnapshot runs one aggregation cycle per request. Concurrent requests
// run wholly independent cycles. A snapshot with failure entries is still a
// deliverable result, so the status is 200 as long as a cycle completed.
func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := s.agg.Run(r.Context())
	if err != nil {
		slog.Error("aggregation cycle failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snap)
}

func (s *Server) handleProbes(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.descs)
}
