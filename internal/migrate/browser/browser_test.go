package browser

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dashkit/todo/internal/migrate"
)

func writeExport(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "export.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write export: %v", err)
	}
	return path
}

func TestProviderName(t *testing.T) {
	t.Run("it is named browser", func(t *testing.T) {
		if got := New("x", "").Name(); got != "browser" {
			t.Errorf("Name() = %q, want browser", got)
		}
	})
}

func TestProviderTasks(t *testing.T) {
	ctx := context.Background()

	t.Run("it reads a bare array with Spanish keys", func(t *testing.T) {
		path := writeExport(t, `[{"descripcion":"Comprar pan","completada":false},{"descripcion":"Leer","completada":true}]`)

		tasks, err := New(path, "").Tasks(ctx)
		if err != nil {
			t.Fatalf("Tasks() returned error: %v", err)
		}
		want := []migrate.MigratedTask{
			{Description: "Comprar pan"},
			{Description: "Leer", Completed: true},
		}
		if len(tasks) != len(want) {
			t.Fatalf("got %d tasks, want %d", len(tasks), len(want))
		}
		for i := range want {
			if tasks[i] != want[i] {
				t.Errorf("tasks[%d] = %+v, want %+v", i, tasks[i], want[i])
			}
		}
	})

	t.Run("it reads a bare array with English keys", func(t *testing.T) {
		path := writeExport(t, `[{"id":"t-aaaaaa","description":"Buy milk","completed":true}]`)

		tasks, err := New(path, "").Tasks(ctx)
		if err != nil {
			t.Fatalf("Tasks() returned error: %v", err)
		}
		if len(tasks) != 1 || tasks[0].Description != "Buy milk" || !tasks[0].Completed {
			t.Errorf("tasks = %+v", tasks)
		}
	})

	t.Run("it decodes a localStorage dump holding the list as a string", func(t *testing.T) {
		path := writeExport(t, `{"theme":"dark","tareasList":"[{\"descripcion\":\"A\",\"completada\":false}]"}`)

		tasks, err := New(path, "").Tasks(ctx)
		if err != nil {
			t.Fatalf("Tasks() returned error: %v", err)
		}
		if len(tasks) != 1 || tasks[0].Description != "A" {
			t.Errorf("tasks = %+v", tasks)
		}
	})

	t.Run("it accepts a dump holding the list as an array", func(t *testing.T) {
		path := writeExport(t, `{"custom":[{"description":"B"}]}`)

		tasks, err := New(path, "custom").Tasks(ctx)
		if err != nil {
			t.Fatalf("Tasks() returned error: %v", err)
		}
		if len(tasks) != 1 || tasks[0].Description != "B" {
			t.Errorf("tasks = %+v", tasks)
		}
	})

	t.Run("it maps non-object elements to failing tasks", func(t *testing.T) {
		path := writeExport(t, `[{"descripcion":"ok"},42,"text"]`)

		tasks, err := New(path, "").Tasks(ctx)
		if err != nil {
			t.Fatalf("Tasks() returned error: %v", err)
		}
		if len(tasks) != 3 {
			t.Fatalf("got %d tasks, want 3", len(tasks))
		}
		if tasks[0].Validate() != nil {
			t.Errorf("tasks[0] = %+v, want valid", tasks[0])
		}
		for _, mt := range tasks[1:] {
			if mt.Description != "" || mt.Validate() == nil {
				t.Errorf("expected a blank failing task for a malformed entry, got %+v", mt)
			}
		}
	})

	t.Run("it maps records without a description to blank tasks", func(t *testing.T) {
		path := writeExport(t, `[{"completada":true}]`)

		tasks, err := New(path, "").Tasks(ctx)
		if err != nil {
			t.Fatalf("Tasks() returned error: %v", err)
		}
		if len(tasks) != 1 || tasks[0] != (migrate.MigratedTask{}) {
			t.Errorf("tasks = %+v, want one blank task", tasks)
		}
	})

	t.Run("it rejects records the task list loader would reject", func(t *testing.T) {
		path := writeExport(t, `[{"description":"A","created":"yesterday"}]`)

		tasks, err := New(path, "").Tasks(ctx)
		if err != nil {
			t.Fatalf("Tasks() returned error: %v", err)
		}
		if len(tasks) != 1 {
			t.Fatalf("got %d tasks, want 1", len(tasks))
		}
		if err := tasks[0].Validate(); err == nil || !strings.Contains(err.Error(), "invalid created timestamp") {
			t.Errorf("Validate() = %v, want invalid created timestamp", err)
		}
	})

	t.Run("it errors when the key is missing", func(t *testing.T) {
		path := writeExport(t, `{"theme":"dark"}`)

		_, err := New(path, "").Tasks(ctx)
		if err == nil || !strings.Contains(err.Error(), `key "tareasList" not found`) {
			t.Errorf("error = %v, want missing key", err)
		}
	})

	t.Run("it errors when the file does not exist", func(t *testing.T) {
		_, err := New(filepath.Join(t.TempDir(), "missing.json"), "").Tasks(ctx)
		if err == nil || !strings.Contains(err.Error(), "failed to read export") {
			t.Errorf("error = %v, want read failure", err)
		}
	})

	t.Run("it errors when the list is not an array", func(t *testing.T) {
		path := writeExport(t, `{"tareasList":"{\"a\":1}"}`)

		_, err := New(path, "").Tasks(ctx)
		if err == nil || !strings.Contains(err.Error(), "not a JSON array") {
			t.Errorf("error = %v, want not an array", err)
		}
	})
}
