package endpoints

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/doodlesbykumbi/idrepo/pkg/server"
	"github.com/doodlesbykumbi/idrepo/pkg/store"
)

// RegisterImplementationsEndpoints registers GET /implementations/{key}. The
// loaded implementation is served from the implementation cache.
func RegisterImplementationsEndpoints(s *server.Server) {
	s.Router.HandleFunc("/implementations/{key}", handleLoadImplementation(s.Repos.Implementations)).Methods("GET")
}

func handleLoadImplementation(impls store.ImplementationStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		loaded, err := impls.Load(r.Context(), mux.Vars(r)["key"])
		if err != nil {
			respondWithStoreError(w, r, err)
			return
		}
		respondWithJSON(w, http.StatusOK, loaded)
	}
}
