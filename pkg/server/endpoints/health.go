package endpoints

import (
	"net/http"

	"github.com/doodlesbykumbi/idrepo/pkg/server"
	"github.com/doodlesbykumbi/idrepo/pkg/store"
)

// HealthResponse represents the response from /health
type HealthResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// RegisterHealthEndpoints registers GET /health
func RegisterHealthEndpoints(s *server.Server) {
	s.Router.HandleFunc("/health", handleHealth(s.Repos.Health)).Methods("GET")
}

func handleHealth(health store.HealthStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := health.CheckConnectivity(r.Context()); err != nil {
			respondWithJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "unavailable", Error: err.Error()})
			return
		}
		respondWithJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
	}
}
