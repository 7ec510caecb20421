// Package server provides the admin HTTP server of idrepo.
//
// It uses gorilla/mux for routing and wraps the router in gorilla/handlers
// request logging. Endpoints are registered by the endpoints subpackage:
//
//	srv := server.NewServer(repos, "0.0.0.0", "8000", 30*time.Second)
//	endpoints.RegisterAll(srv)
//	log.Fatal(srv.Start())
//
// Registered endpoints:
//
//   - GET /health - Database connectivity
//   - GET /cascades - Cascade table of every repository
//   - GET /attributes/{family}/{ownerKind}[/{key}] - Attribute lookup
//   - DELETE /attributes/{family}/{ownerKind}/{key} - Attribute deletion
//   - DELETE /{collection}/{key} - Entity deletion with its cascade
//   - POST /batches/reap - Remove expired batches
package server
