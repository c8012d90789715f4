package cli

import (
	"strings"
	"testing"

	"github.com/dashkit/todo/internal/testutil"
)

func TestApp(t *testing.T) {
	t.Run("it returns exit code 1 and prints an error for an unknown command", func(t *testing.T) {
		testutil.IsolateConfig(t)
		_, stderr, code := runTodo(t, t.TempDir(), "frobnicate")
		if code != 1 {
			t.Errorf("exit code = %d, want 1", code)
		}
		if !strings.HasPrefix(stderr, "Error: ") {
			t.Errorf("stderr = %q, want Error: prefix", stderr)
		}
	})

	t.Run("it rejects more than one format flag", func(t *testing.T) {
		dir := setupProject(t)
		_, stderr, code := runTodo(t, dir, "--json", "--toon", "list")
		if code != 1 {
			t.Errorf("exit code = %d, want 1", code)
		}
		if !strings.Contains(stderr, "cannot specify multiple format flags") {
			t.Errorf("stderr = %q, want multiple format flags error", stderr)
		}
	})

	t.Run("it reports an uninitialized directory", func(t *testing.T) {
		testutil.IsolateConfig(t)
		_, stderr, code := runTodo(t, t.TempDir(), "list")
		if code != 1 {
			t.Errorf("exit code = %d, want 1", code)
		}
		if !strings.Contains(stderr, "run todo init") {
			t.Errorf("stderr = %q, want init hint", stderr)
		}
	})

	t.Run("it prints the version", func(t *testing.T) {
		testutil.IsolateConfig(t)
		stdout, _, code := runTodo(t, t.TempDir(), "version")
		if code != 0 {
			t.Fatalf("exit code = %d, want 0", code)
		}
		if stdout != "todo version "+Version+"\n" {
			t.Errorf("stdout = %q", stdout)
		}
	})

	t.Run("it writes verbose lines to stderr only", func(t *testing.T) {
		dir := setupProject(t)
		stdout, stderr, code := runTodo(t, dir, "--verbose", "stats")
		if code != 0 {
			t.Fatalf("exit code = %d, stderr = %q", code, stderr)
		}
		if strings.Contains(stdout, "verbose:") {
			t.Errorf("stdout contains verbose output: %q", stdout)
		}
		if !strings.Contains(stderr, "verbose: config: data dir") {
			t.Errorf("stderr = %q, want config verbose line", stderr)
		}
		if !strings.Contains(stderr, "verbose: read: tareasList.json") {
			t.Errorf("stderr = %q, want storage read verbose line", stderr)
		}
	})
}
