package endpoints

import (
	"net/http"

	"github.com/doodlesbykumbi/idrepo/pkg/server"
	storegorm "github.com/doodlesbykumbi/idrepo/pkg/store/gorm"
)

// RegisterCascadesEndpoint registers GET /cascades, which lists what deleting
// each kind of entity does to the entities referring to it
func RegisterCascadesEndpoint(s *server.Server) {
	s.Router.HandleFunc("/cascades", func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, storegorm.Cascades())
	}).Methods("GET")
}
