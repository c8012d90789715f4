package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/dashkit/todo/internal/storage"
	"github.com/dashkit/todo/internal/todo"
)

type response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
	Task    struct {
		ID          string `json:"id"`
		Description string `json:"description"`
		Completed   bool   `json:"completed"`
	} `json:"task"`
	View struct {
		Filter string `json:"filter"`
		Rows   []struct {
			Index       int    `json:"index"`
			ID          string `json:"id"`
			Description string `json:"description"`
			Completed   bool   `json:"completed"`
			State       string `json:"state"`
		} `json:"rows"`
		Counts struct {
			Total     int `json:"total"`
			Pending   int `json:"pending"`
			Completed int `json:"completed"`
		} `json:"counts"`
		Empty string `json:"empty"`
	} `json:"view"`
}

type testServer struct {
	*Server
	store *storage.MemoryStore
}

func newTestServer(t *testing.T, descriptions ...string) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := storage.NewMemoryStore()
	m := todo.New(store)
	if err := m.Load(context.Background()); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	for _, d := range descriptions {
		if _, err := m.Add(context.Background(), d); err != nil {
			t.Fatalf("Add(%q) returned error: %v", d, err)
		}
	}
	return &testServer{Server: New(m), store: store}
}

func (ts *testServer) do(t *testing.T, method, target string, body any) (int, response) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	ts.Handler().ServeHTTP(w, req)

	var resp response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return w.Code, resp
}

func TestListTasks(t *testing.T) {
	t.Run("it returns the no-tasks empty state for an empty list", func(t *testing.T) {
		ts := newTestServer(t)

		code, resp := ts.do(t, http.MethodGet, "/api/tasks", nil)

		if code != http.StatusOK || !resp.Success {
			t.Fatalf("status = %d, success = %v", code, resp.Success)
		}
		if resp.View.Empty != "no-tasks" || len(resp.View.Rows) != 0 {
			t.Errorf("view = %+v, want empty no-tasks", resp.View)
		}
	})

	t.Run("it filters rows but counts the full list", func(t *testing.T) {
		ts := newTestServer(t, "A", "B")
		ts.do(t, http.MethodPost, "/api/tasks/0/complete", nil)

		code, resp := ts.do(t, http.MethodGet, "/api/tasks?filter=pending", nil)

		if code != http.StatusOK {
			t.Fatalf("status = %d", code)
		}
		if resp.View.Filter != "pending" || len(resp.View.Rows) != 1 || resp.View.Rows[0].Description != "B" {
			t.Errorf("view = %+v, want only B", resp.View)
		}
		if resp.View.Counts.Total != 2 || resp.View.Counts.Completed != 1 {
			t.Errorf("counts = %+v, want total 2 completed 1", resp.View.Counts)
		}
	})

	t.Run("it rejects an unknown filter with 400", func(t *testing.T) {
		ts := newTestServer(t)

		code, resp := ts.do(t, http.MethodGet, "/api/tasks?filter=urgent", nil)

		if code != http.StatusBadRequest || resp.Success {
			t.Errorf("status = %d success = %v, want 400 false", code, resp.Success)
		}
		if !strings.Contains(resp.Error, "unknown filter") {
			t.Errorf("error = %q", resp.Error)
		}
	})
}

func TestAddTask(t *testing.T) {
	t.Run("it adds a task and persists it", func(t *testing.T) {
		ts := newTestServer(t)

		code, resp := ts.do(t, http.MethodPost, "/api/tasks", map[string]string{"description": "  Buy milk  "})

		if code != http.StatusCreated || !resp.Success {
			t.Fatalf("status = %d, resp = %+v", code, resp)
		}
		if resp.Task.Description != "Buy milk" || resp.Task.Completed {
			t.Errorf("task = %+v", resp.Task)
		}
		if resp.Message != "Task added successfully" {
			t.Errorf("message = %q", resp.Message)
		}
		data, err := ts.store.Get(context.Background(), todo.DefaultKey)
		if err != nil || !strings.Contains(string(data), "Buy milk") {
			t.Errorf("stored = %q, %v", data, err)
		}
	})

	t.Run("it returns 400 for a blank description", func(t *testing.T) {
		ts := newTestServer(t)

		code, resp := ts.do(t, http.MethodPost, "/api/tasks", map[string]string{"description": "   "})

		if code != http.StatusBadRequest || resp.Success {
			t.Errorf("status = %d success = %v, want 400 false", code, resp.Success)
		}
		if resp.View.Counts.Total != 0 {
			t.Errorf("total = %d, want 0", resp.View.Counts.Total)
		}
	})
}

func TestMutateByIndex(t *testing.T) {
	t.Run("it completes the task at the index in the filtered view", func(t *testing.T) {
		ts := newTestServer(t, "A", "B", "C")
		ts.do(t, http.MethodPost, "/api/tasks/0/complete", nil)

		code, resp := ts.do(t, http.MethodPost, "/api/tasks/1/complete?filter=pending", nil)

		if code != http.StatusOK {
			t.Fatalf("status = %d, resp = %+v", code, resp)
		}
		if resp.Task.Description != "C" || !resp.Task.Completed {
			t.Errorf("task = %+v, want C completed", resp.Task)
		}
		if resp.Message != `Task "C" marked as completed` {
			t.Errorf("message = %q", resp.Message)
		}
	})

	t.Run("it deletes the task at the index", func(t *testing.T) {
		ts := newTestServer(t, "A", "B")

		code, resp := ts.do(t, http.MethodDelete, "/api/tasks/0", nil)

		if code != http.StatusOK {
			t.Fatalf("status = %d", code)
		}
		if len(resp.View.Rows) != 1 || resp.View.Rows[0].Description != "B" {
			t.Errorf("rows = %+v, want only B", resp.View.Rows)
		}
	})

	t.Run("it returns 409 for an out of range index", func(t *testing.T) {
		ts := newTestServer(t, "A")

		code, resp := ts.do(t, http.MethodDelete, "/api/tasks/5", nil)

		if code != http.StatusConflict || resp.Success {
			t.Errorf("status = %d success = %v, want 409 false", code, resp.Success)
		}
		if resp.View.Counts.Total != 1 {
			t.Errorf("total = %d, want 1", resp.View.Counts.Total)
		}
	})

	t.Run("it returns 400 for a non-numeric index", func(t *testing.T) {
		ts := newTestServer(t, "A")

		code, _ := ts.do(t, http.MethodDelete, "/api/tasks/first", nil)

		if code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", code)
		}
	})
}

func TestMutateByID(t *testing.T) {
	t.Run("it completes and deletes by ID", func(t *testing.T) {
		ts := newTestServer(t, "A")
		_, list := ts.do(t, http.MethodGet, "/api/tasks", nil)
		id := list.View.Rows[0].ID

		code, resp := ts.do(t, http.MethodPost, "/api/ids/"+id+"/complete", nil)
		if code != http.StatusOK || !resp.Task.Completed {
			t.Fatalf("complete: status = %d, task = %+v", code, resp.Task)
		}

		code, resp = ts.do(t, http.MethodDelete, "/api/ids/"+id, nil)
		if code != http.StatusOK || resp.View.Empty != "no-tasks" {
			t.Errorf("delete: status = %d, view = %+v", code, resp.View)
		}
	})

	t.Run("it returns 409 for an unknown ID", func(t *testing.T) {
		ts := newTestServer(t, "A")

		code, resp := ts.do(t, http.MethodDelete, "/api/ids/t-ffffff", nil)

		if code != http.StatusConflict || !strings.Contains(resp.Error, "not found") {
			t.Errorf("status = %d error = %q, want 409 not found", code, resp.Error)
		}
	})
}

func TestStats(t *testing.T) {
	t.Run("it returns counters over the full list", func(t *testing.T) {
		ts := newTestServer(t, "A", "B", "C")
		ts.do(t, http.MethodPost, "/api/tasks/2/complete", nil)

		req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
		w := httptest.NewRecorder()
		ts.Handler().ServeHTTP(w, req)

		var body struct {
			Success bool `json:"success"`
			Counts  struct {
				Total     int `json:"total"`
				Pending   int `json:"pending"`
				Completed int `json:"completed"`
			} `json:"counts"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.Counts.Total != 3 || body.Counts.Pending != 2 || body.Counts.Completed != 1 {
			t.Errorf("counts = %+v", body.Counts)
		}
	})
}

func TestRun(t *testing.T) {
	t.Run("it stops when the context is cancelled", func(t *testing.T) {
		ts := newTestServer(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if err := ts.Run(ctx, "127.0.0.1:0"); err != nil {
			t.Errorf("Run returned error: %v", err)
		}
	})
}
