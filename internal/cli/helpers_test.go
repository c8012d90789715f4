package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/dashkit/todo/internal/task"
	"github.com/dashkit/todo/internal/testutil"
)

// runTodo runs the CLI in dir with output forced to be non-TTY and returns
// stdout, stderr and the exit code.
func runTodo(t *testing.T, dir string, args ...string) (string, string, int) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app := NewApp(&stdout, &stderr)
	app.isTTY = func(io.Writer) bool { return false }
	code := app.Run(append([]string{"todo"}, args...), dir)
	return stdout.String(), stderr.String(), code
}

// setupProject returns a temp directory that has been through todo init.
func setupProject(t *testing.T) string {
	t.Helper()
	testutil.IsolateConfig(t)
	dir := t.TempDir()
	if _, stderr, code := runTodo(t, dir, "init"); code != 0 {
		t.Fatalf("init exit code = %d, stderr = %q", code, stderr)
	}
	return dir
}

// listPath is where the file backend keeps the default list.
func listPath(dir string) string {
	return filepath.Join(dir, DataDirName, "tareasList.json")
}

// readTasks decodes the persisted list from dir.
func readTasks(t *testing.T, dir string) []task.Task {
	t.Helper()
	data, err := os.ReadFile(listPath(dir))
	if err != nil {
		t.Fatalf("failed to read task list: %v", err)
	}
	tasks, err := task.Unmarshal(data)
	if err != nil {
		t.Fatalf("failed to parse task list: %v", err)
	}
	return tasks
}

// writeList replaces the persisted list in dir with raw JSON.
func writeList(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(listPath(dir), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write task list: %v", err)
	}
}

// addTasks adds each description through the CLI.
func addTasks(t *testing.T, dir string, descriptions ...string) {
	t.Helper()
	for _, d := range descriptions {
		if _, stderr, code := runTodo(t, dir, "add", d); code != 0 {
			t.Fatalf("add %q exit code = %d, stderr = %q", d, code, stderr)
		}
	}
}
