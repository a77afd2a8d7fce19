package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MihkelHunter/todotxt/internal/store"
	"github.com/MihkelHunter/todotxt/todo"
)

const seed = "(A) Call mom @phone +family\n" +
	"x 2012-03-05 Pay rent @home\n" +
	"(B) Schedule checkup @phone\n"

func newTestServer(t *testing.T, contents string) (*Server, afero.Fs) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/todo.txt", []byte(contents), 0o644))
	repo, err := store.NewFile(fsys, "/todo.txt")
	require.NoError(t, err)

	return NewServer(todo.NewService(repo), nil), fsys
}

func do(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

type listResponse struct {
	Success bool        `json:"success"`
	Tasks   []todo.View `json:"tasks"`
	Count   int         `json:"count"`
	Error   string      `json:"error"`
}

type taskResponse struct {
	Success bool      `json:"success"`
	Task    todo.View `json:"task"`
	Error   string    `json:"error"`
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestTodoTxtEndpoint(t *testing.T) {
	s, _ := newTestServer(t, seed)

	w := do(t, s, http.MethodGet, "/todo.txt", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, seed, w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
}

func TestListTasks(t *testing.T) {
	s, _ := newTestServer(t, seed)

	tests := []struct {
		name  string
		query string
		want  []int64
	}{
		{"all", "", []int64{1, 2, 3}},
		{"by context", "?context=phone", []int64{1, 3}},
		{"by project", "?project=%2Bfamily", []int64{1}},
		{"by priority", "?priority=B", []int64{3}},
		{"not done", "?done=false", []int64{1, 3}},
		{"done", "?done=true", []int64{2}},
		{"combined", "?context=@phone&priority=A", []int64{1}},
		{"sorted", "?sort=priority", []int64{1, 3, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, s, http.MethodGet, "/api/tasks"+tt.query, nil)
			require.Equal(t, http.StatusOK, w.Code)

			resp := decode[listResponse](t, w)
			assert.True(t, resp.Success)
			assert.Equal(t, len(tt.want), resp.Count)
			var ids []int64
			for _, v := range resp.Tasks {
				ids = append(ids, v.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestListTasksBadFilters(t *testing.T) {
	s, _ := newTestServer(t, seed)

	for _, q := range []string{"?priority=a", "?priority=AB", "?done=maybe"} {
		w := do(t, s, http.MethodGet, "/api/tasks"+q, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
}

func TestGetTask(t *testing.T) {
	s, _ := newTestServer(t, seed)

	w := do(t, s, http.MethodGet, "/api/tasks/2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[taskResponse](t, w)
	assert.True(t, resp.Task.Done)
	assert.Equal(t, "2012-03-05", resp.Task.CompletedOn)
	assert.Equal(t, "Pay rent", resp.Task.Text)

	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/api/tasks/9", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodGet, "/api/tasks/abc", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodGet, "/api/tasks/0", nil).Code)
}

func TestCreateTask(t *testing.T) {
	s, fsys := newTestServer(t, seed)

	w := do(t, s, http.MethodPost, "/api/tasks", lineRequest{Line: "(C) 2012-03-04 Water plants @home due:2012-03-10"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	resp := decode[taskResponse](t, w)
	assert.Equal(t, int64(4), resp.Task.ID)
	assert.Equal(t, "C", resp.Task.Priority)
	assert.Equal(t, "2012-03-10", resp.Task.DueOn)
	assert.Equal(t, []string{"@home"}, resp.Task.Contexts)

	data, err := afero.ReadFile(fsys, "/todo.txt")
	require.NoError(t, err)
	assert.Equal(t, seed+"(C) 2012-03-04 Water plants @home due:2012-03-10\n", string(data))
}

func TestCreateTaskRejectsBadBodies(t *testing.T) {
	s, _ := newTestServer(t, seed)

	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodPost, "/api/tasks", map[string]string{}).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodPost, "/api/tasks", lineRequest{Line: "   "}).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodPost, "/api/tasks", lineRequest{Line: string(make([]byte, maxLineSize+1))}).Code)
}

func TestUpdateTask(t *testing.T) {
	s, _ := newTestServer(t, seed)

	w := do(t, s, http.MethodPut, "/api/tasks/3", lineRequest{Line: "(A) Schedule dentist @phone"})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[taskResponse](t, w)
	assert.Equal(t, int64(3), resp.Task.ID)
	assert.Equal(t, "(A) Schedule dentist @phone", resp.Task.Line)

	w = do(t, s, http.MethodPut, "/api/tasks/7", lineRequest{Line: "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestToggleTask(t *testing.T) {
	s, _ := newTestServer(t, seed)

	w := do(t, s, http.MethodPost, "/api/tasks/2/toggle", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[taskResponse](t, w)
	assert.False(t, resp.Task.Done)
	assert.Equal(t, "Pay rent @home", resp.Task.Line)

	w = do(t, s, http.MethodPost, "/api/tasks/1/toggle", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp = decode[taskResponse](t, w)
	assert.True(t, resp.Task.Done)
	assert.Equal(t, "A", resp.Task.Priority)
	assert.Contains(t, resp.Task.Line, "priority:A")
}

func TestDeleteTask(t *testing.T) {
	s, _ := newTestServer(t, seed)

	assert.Equal(t, http.StatusOK, do(t, s, http.MethodDelete, "/api/tasks/1", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodDelete, "/api/tasks/1", nil).Code)

	w := do(t, s, http.MethodGet, "/api/tasks", nil)
	resp := decode[listResponse](t, w)
	assert.Equal(t, 2, resp.Count)
}

// brokenService fails every call.
type brokenService struct{}

var errBroken = errors.New("store unavailable")

func (brokenService) Add(string) (*todo.Task, error) { return nil, errBroken }
func (brokenService) All() (*todo.List, error) { return nil, errBroken }
func (brokenService) Get(int64) (*todo.Task, error) { return nil, errBroken }
func (brokenService) Edit(int64, string) (*todo.Task, error) { return nil, errBroken }
func (brokenService) Toggle(int64) (*todo.Task, error) { return nil, errBroken }
func (brokenService) Delete(int64) error { return errBroken }

func TestServiceErrorsAreInternal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s := NewServer(brokenService{}, nil)

	assert.Equal(t, http.StatusInternalServerError, do(t, s, http.MethodGet, "/todo.txt", nil).Code)
	assert.Equal(t, http.StatusInternalServerError, do(t, s, http.MethodGet, "/api/tasks", nil).Code)

	w := do(t, s, http.MethodPost, "/api/tasks/1/toggle", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "store unavailable", decode[taskResponse](t, w).Error)
}
