package endpoints

import (
	"github.com/doodlesbykumbi/idrepo/pkg/server"
)

// RegisterAll registers all admin endpoints on the server. Fixed paths are
// registered before the generic collection route.
func RegisterAll(srv *server.Server) {
	RegisterHealthEndpoints(srv)
	RegisterCascadesEndpoint(srv)
	RegisterAttributesEndpoints(srv)
	RegisterBatchesEndpoints(srv)
	RegisterImplementationsEndpoints(srv)
	RegisterCollectionsEndpoints(srv)
}
