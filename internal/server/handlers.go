package server

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dashkit/todo/internal/task"
	"github.com/dashkit/todo/internal/todo"
)

type addRequest struct {
	Description string `json:"description"`
}

// applyFilter sets the filter named by the request, defaulting to all.
// Caller must hold s.mu.
func (s *Server) applyFilter(c *gin.Context) bool {
	f, err := task.ParseFilter(c.Query("filter"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return false
	}
	s.manager.SetFilter(f)
	return true
}

func (s *Server) handleList(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.applyFilter(c) {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"view":    s.manager.Render(),
	})
}

func (s *Server) handleAdd(c *gin.Context) {
	var req addRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.applyFilter(c) {
		return
	}
	created, err := s.manager.Add(c.Request.Context(), req.Description)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": s.messageText(),
		"task":    taskBody(created),
		"view":    s.manager.Render(),
	})
}

func (s *Server) handleCompleteIndex(c *gin.Context) {
	s.mutateIndex(c, s.manager.Complete)
}

func (s *Server) handleDeleteIndex(c *gin.Context) {
	s.mutateIndex(c, s.manager.Delete)
}

func (s *Server) handleCompleteID(c *gin.Context) {
	s.mutateID(c, s.manager.CompleteID)
}

func (s *Server) handleDeleteID(c *gin.Context) {
	s.mutateID(c, s.manager.DeleteID)
}

func (s *Server) handleStats(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"counts":  s.manager.Counts(),
	})
}

type indexOp func(ctx context.Context, visibleIndex int) (task.Task, error)

type refOp func(ctx context.Context, ref string) (task.Task, error)

// mutateIndex applies op to the 0-based index in the path, resolved against
// the view selected by ?filter=.
func (s *Server) mutateIndex(c *gin.Context, op indexOp) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "index must be an integer",
		})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.applyFilter(c) {
		return
	}
	t, err := op(c.Request.Context(), index)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.succeed(c, t)
}

func (s *Server) mutateID(c *gin.Context, op refOp) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.applyFilter(c) {
		return
	}
	t, err := op(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	s.succeed(c, t)
}

// succeed writes the standard success body. Caller must hold s.mu.
func (s *Server) succeed(c *gin.Context, t task.Task) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": s.messageText(),
		"task":    taskBody(t),
		"view":    s.manager.Render(),
	})
}

// fail writes the error body with a status derived from the error class.
// Caller must hold s.mu.
func (s *Server) fail(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{
		"success": false,
		"error":   err.Error(),
		"view":    s.manager.Render(),
	})
}

func (s *Server) messageText() string {
	if msg := s.manager.Message(); msg != nil {
		return msg.Text
	}
	return ""
}

func taskBody(t task.Task) gin.H {
	return gin.H{
		"id":          t.ID,
		"description": t.Description,
		"completed":   t.Completed,
		"state":       t.StateLabel(),
	}
}

func statusFor(err error) int {
	switch {
	case todo.IsValidation(err):
		return http.StatusBadRequest
	case todo.IsStale(err):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
