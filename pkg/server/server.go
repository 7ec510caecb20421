package server

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	storegorm "github.com/doodlesbykumbi/idrepo/pkg/store/gorm"
)

// DefaultTimeout is used when NewServer is given a non-positive timeout
const DefaultTimeout = 15 * time.Second

type Server struct {
	Router *mux.Router
	Repos  *storegorm.Repositories
	srv    *http.Server
}

func NewServer(
	repos *storegorm.Repositories,
	host string,
	port string,
	timeout time.Duration,
) *Server {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	router := mux.NewRouter()
	srv := &http.Server{
		Handler:      handlers.LoggingHandler(os.Stdout, router),
		Addr:         host + ":" + port,
		WriteTimeout: timeout,
		ReadTimeout:  timeout,
	}

	return &Server{
		Router: router,
		Repos:  repos,
		srv:    srv,
	}
}

// Addr returns the address the server listens on
func (s *Server) Addr() string {
	return s.srv.Addr
}

func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
