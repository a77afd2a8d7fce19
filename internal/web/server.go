// Package web serves a todo list over HTTP.
package web

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MihkelHunter/todotxt/todo"
)

// TaskService is the part of todo.Service the handlers use.
type TaskService interface {
	Add(line string) (*todo.Task, error)
	All() (*todo.List, error)
	Get(id int64) (*todo.Task, error)
	Edit(id int64, line string) (*todo.Task, error)
	Toggle(id int64) (*todo.Task, error)
	Delete(id int64) error
}

// Server is the todo web server.
type Server struct {
	// mu serializes service calls; tasks and stores are not safe for
	// concurrent use.
	mu     sync.Mutex
	svc    TaskService
	router *gin.Engine
	log    *slog.Logger
}

// NewServer creates a new web server. A nil logger means slog.Default.
func NewServer(svc TaskService, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		svc:    svc,
		router: router,
		log:    logger,
	}
	router.Use(s.logRequests)

	router.GET("/todo.txt", s.handleTodoTxt)

	api := router.Group("/api")
	{
		api.GET("/tasks", s.handleList)
		api.GET("/tasks/:id", s.handleGet)
		api.POST("/tasks", s.handleCreate)
		api.PUT("/tasks/:id", s.handleUpdate)
		api.POST("/tasks/:id/toggle", s.handleToggle)
		api.DELETE("/tasks/:id", s.handleDelete)
	}

	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts the web server.
func (s *Server) Run(addr string) error {
	s.log.Info("web server listening", "addr", addr)
	return s.router.Run(addr)
}

func (s *Server) logRequests(c *gin.Context) {
	start := time.Now()
	c.Next()
	s.log.Debug("request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"duration", time.Since(start),
	)
}
