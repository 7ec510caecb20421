package endpoints

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/doodlesbykumbi/idrepo/pkg/audit"
	"github.com/doodlesbykumbi/idrepo/pkg/server"
)

// RegisterCollectionsEndpoints registers DELETE /{collection}/{key}. The
// entity's cascade runs in one transaction; an absent key still answers 204.
func RegisterCollectionsEndpoints(s *server.Server) {
	repos := s.Repos
	s.Router.HandleFunc("/{collection}/{key}", func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		err := repos.DeleteFrom(r.Context(), vars["collection"], vars["key"])
		auditDelete(r, vars["collection"], vars["key"], err)
		if err != nil {
			respondWithStoreError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}).Methods("DELETE")
}

func auditDelete(r *http.Request, collection, key string, err error) {
	event := audit.DeleteEvent{
		Collection: collection,
		Key:        key,
		ClientIP:   clientIP(r),
		Success:    err == nil,
	}
	if err != nil {
		event.ErrorMessage = err.Error()
	}
	audit.Log(event)
}
