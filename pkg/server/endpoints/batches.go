package endpoints

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/doodlesbykumbi/idrepo/pkg/audit"
	"github.com/doodlesbykumbi/idrepo/pkg/logger"
	"github.com/doodlesbykumbi/idrepo/pkg/server"
	"github.com/doodlesbykumbi/idrepo/pkg/store"
)

// ReapResponse represents the response from POST /batches/reap
type ReapResponse struct {
	Deleted int64 `json:"deleted"`
}

// RegisterBatchesEndpoints registers POST /batches/reap
func RegisterBatchesEndpoints(s *server.Server) {
	s.Router.HandleFunc("/batches/reap", handleReap(s.Repos.Batches)).Methods("POST")
}

func handleReap(batches store.BatchStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := batches.DeleteExpired(r.Context())
		if err != nil {
			respondWithStoreError(w, r, err)
			return
		}
		logger.Log.Debug("reaped batches on request", zap.Int64("count", n))
		audit.Log(audit.ReapEvent{ClientIP: clientIP(r), Deleted: n})
		respondWithJSON(w, http.StatusOK, ReapResponse{Deleted: n})
	}
}
