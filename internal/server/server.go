// Package server exposes a task list manager over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dashkit/todo/internal/todo"
)

const shutdownTimeout = 5 * time.Second

// Server is the todo HTTP server. A single mutex serializes every request
// against the manager.
type Server struct {
	mu      sync.Mutex
	manager *todo.Manager
	router  *gin.Engine
}

// New creates a server over a loaded manager.
func New(manager *todo.Manager) *Server {
	router := gin.Default()

	s := &Server{
		manager: manager,
		router:  router,
	}

	api := router.Group("/api")
	{
		api.GET("/tasks", s.handleList)
		api.POST("/tasks", s.handleAdd)
		api.POST("/tasks/:index/complete", s.handleCompleteIndex)
		api.DELETE("/tasks/:index", s.handleDeleteIndex)
		api.POST("/ids/:id/complete", s.handleCompleteID)
		api.DELETE("/ids/:id", s.handleDeleteID)
		api.GET("/stats", s.handleStats)
	}

	return s
}

// Handler returns the router for use with httptest or a custom http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
