// Package cli implements the todo command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// Version is the build version, set by main.
var Version = "dev"

// GlobalOpts holds the parsed global flags.
type GlobalOpts struct {
	Quiet   bool
	Verbose bool
	Toon    bool
	Pretty  bool
	JSON    bool
}

// App is the todo CLI application.
type App struct {
	stdout io.Writer
	stderr io.Writer
	opts   GlobalOpts
	isTTY  func(io.Writer) bool
}

// NewApp creates a CLI application writing to the given streams.
func NewApp(stdout, stderr io.Writer) *App {
	return &App{
		stdout: stdout,
		stderr: stderr,
		isTTY:  DetectTTY,
	}
}

// exitError carries a non-zero exit code for a command that has already
// reported its failure.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// Run executes the command line args (args[0] is the program name) in
// workDir and returns the process exit code.
func (a *App) Run(args []string, workDir string) int {
	return a.RunContext(context.Background(), args, workDir)
}

// RunContext is Run with a context that cancels long-running commands
// such as serve and tui.
func (a *App) RunContext(ctx context.Context, args []string, workDir string) int {
	root := a.rootCommand(workDir)
	root.SetArgs(args[1:])
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var exit *exitError
	if errors.As(err, &exit) {
		return exit.code
	}
	fmt.Fprintf(a.stderr, "Error: %s\n", err)
	return 1
}

func (a *App) rootCommand(workDir string) *cobra.Command {
	a.opts = GlobalOpts{}

	root := &cobra.Command{
		Use:   "todo",
		Short: "A persisted task list",
		Long: `todo keeps an ordered task list in .todo/ and writes it through to
storage on every change. Tasks are addressed by their number in the
current listing or by ID.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.BoolVarP(&a.opts.Quiet, "quiet", "q", false, "suppress non-essential output")
	flags.BoolVarP(&a.opts.Verbose, "verbose", "v", false, "debug output on stderr")
	flags.BoolVar(&a.opts.Toon, "toon", false, "force TOON output")
	flags.BoolVar(&a.opts.Pretty, "pretty", false, "force human-readable output")
	flags.BoolVar(&a.opts.JSON, "json", false, "force JSON output")

	root.AddCommand(
		a.initCommand(workDir),
		a.addCommand(workDir),
		a.listCommand(workDir),
		a.doneCommand(workDir),
		a.removeCommand(workDir),
		a.statsCommand(workDir),
		a.doctorCommand(workDir),
		a.importCommand(workDir),
		a.serveCommand(workDir),
		a.tuiCommand(workDir),
		a.versionCommand(),
	)
	return root
}

// Getwd is the working directory used by main.
func Getwd() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("could not determine working directory: %w", err)
	}
	return dir, nil
}
