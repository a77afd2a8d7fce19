package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/MihkelHunter/todotxt/todo"
)

const maxLineSize = 10 << 10 // 10KB

type lineRequest struct {
	Line string `json:"line" binding:"required"`
}

func (s *Server) handleTodoTxt(c *gin.Context) {
	s.mu.Lock()
	l, err := s.svc.All()
	s.mu.Unlock()
	if err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	body := l.String()
	if body != "" {
		body += "\n"
	}
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(body))
}

func (s *Server) handleList(c *gin.Context) {
	preds, err := queryFilters(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	s.mu.Lock()
	l, err := s.svc.All()
	s.mu.Unlock()
	if err != nil {
		s.fail(c, err)
		return
	}

	l = l.Filter(todo.And(preds...))
	if c.Query("sort") == "priority" {
		l.SortByPriority()
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"tasks":   l.Views(),
		"count":   l.Len(),
	})
}

// queryFilters maps priority, context, project and done query parameters
// to predicates.
func queryFilters(c *gin.Context) ([]todo.Predicate, error) {
	var preds []todo.Predicate
	if v := c.Query("priority"); v != "" {
		p, ok := todo.ParsePriority(v)
		if !ok {
			return nil, errors.New("priority must be a single letter A-Z")
		}
		preds = append(preds, todo.HasPriority(p))
	}
	if v := c.Query("context"); v != "" {
		preds = append(preds, todo.HasContext(v))
	}
	if v := c.Query("project"); v != "" {
		preds = append(preds, todo.HasProject(v))
	}
	if v := c.Query("done"); v != "" {
		done, err := strconv.ParseBool(v)
		if err != nil {
			return nil, errors.New("done must be true or false")
		}
		preds = append(preds, todo.IsDone(done))
	}
	return preds, nil
}

func (s *Server) handleGet(c *gin.Context) {
	id, ok := s.taskID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	t, err := s.svc.Get(id)
	s.mu.Unlock()
	s.respondTask(c, http.StatusOK, t, err)
}

func (s *Server) handleCreate(c *gin.Context) {
	line, ok := s.bindLine(c)
	if !ok {
		return
	}
	s.mu.Lock()
	t, err := s.svc.Add(line)
	s.mu.Unlock()
	s.respondTask(c, http.StatusCreated, t, err)
}

func (s *Server) handleUpdate(c *gin.Context) {
	id, ok := s.taskID(c)
	if !ok {
		return
	}
	line, ok := s.bindLine(c)
	if !ok {
		return
	}
	s.mu.Lock()
	t, err := s.svc.Edit(id, line)
	s.mu.Unlock()
	s.respondTask(c, http.StatusOK, t, err)
}

func (s *Server) handleToggle(c *gin.Context) {
	id, ok := s.taskID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	t, err := s.svc.Toggle(id)
	s.mu.Unlock()
	s.respondTask(c, http.StatusOK, t, err)
}

func (s *Server) handleDelete(c *gin.Context) {
	id, ok := s.taskID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	err := s.svc.Delete(id)
	s.mu.Unlock()
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Task deleted"})
}

func (s *Server) taskID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid task id"})
		return 0, false
	}
	return id, true
}

func (s *Server) bindLine(c *gin.Context) (string, bool) {
	var req lineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return "", false
	}
	if len(req.Line) > maxLineSize {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "line exceeds maximum size of 10KB"})
		return "", false
	}
	return req.Line, true
}

func (s *Server) respondTask(c *gin.Context, status int, t *todo.Task, err error) {
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(status, gin.H{"success": true, "task": todo.NewView(t)})
}

func (s *Server) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, todo.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, todo.ErrEmptyLine):
		status = http.StatusBadRequest
	default:
		s.log.Error("request failed", "path", c.Request.URL.Path, "err", err)
	}
	c.JSON(status, gin.H{"success": false, "error": err.Error()})
}
