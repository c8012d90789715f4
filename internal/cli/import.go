package cli

import (
	"github.com/spf13/cobra"

	"github.com/dashkit/todo/internal/migrate"
	"github.com/dashkit/todo/internal/migrate/browser"
)

// providerFactory builds a provider for an import source.
type providerFactory func(path, key string) migrate.Provider

var providers = map[string]providerFactory{
	"browser": func(path, key string) migrate.Provider { return browser.New(path, key) },
}

// newProvider looks up a provider by name.
func newProvider(name, path, key string) (migrate.Provider, error) {
	factory, ok := providers[name]
	if !ok {
		available := make([]string, 0, len(providers))
		for n := range providers {
			available = append(available, n)
		}
		return nil, &migrate.UnknownProviderError{Name: name, Available: available}
	}
	return factory(path, key), nil
}

func (a *App) importCommand(workDir string) *cobra.Command {
	var (
		from   string
		key    string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import tasks from a browser localStorage export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := newProvider(from, args[0], key)
			if err != nil {
				return err
			}

			s, err := a.openManager(cmd.Context(), workDir)
			if err != nil {
				return err
			}
			defer s.Close()

			var creator migrate.TaskCreator = migrate.NewManagerTaskCreator(s.manager)
			if dryRun {
				creator = migrate.DryRunTaskCreator{}
			}

			results, err := migrate.NewEngine(creator).Run(cmd.Context(), provider)
			if err != nil && results == nil {
				return err
			}
			if !s.fc.Quiet {
				migrate.Present(a.stdout, provider.Name(), dryRun, results)
			}
			return err
		},
	}

	cmd.Flags().StringVar(&from, "from", "browser", "source format")
	cmd.Flags().StringVar(&key, "key", browser.DefaultKey, "localStorage key holding the list")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would be imported without writing")
	return cmd
}
