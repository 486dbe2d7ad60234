// Package cli defines the cinemaflow command line. Without a subcommand it
// starts the TUI; the subcommands query the catalogue and manage settings
// from scripts.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/five82/cinemaflow/internal/app"
)

type rootOptions struct {
	configPath string
	prefsPath  string
	ephemeral  bool
	category   string
}

func (o *rootOptions) appOptions() app.Options {
	return app.Options{
		ConfigPath: o.configPath,
		PrefsPath:  o.prefsPath,
		Ephemeral:  o.ephemeral,
		Category:   o.category,
	}
}

// bootstrap wires the dependencies for a one-shot command.
func (o *rootOptions) bootstrap() (*app.Env, error) {
	return app.Bootstrap(o.appOptions())
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "cinemaflow",
		Short:         "Browse a film catalogue from the terminal",
		Long:          "Browse, search and play titles from the catalogue API with a TUI or one-shot commands",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), opts.appOptions())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default ~/.config/cinemaflow/config.toml)")
	flags.StringVar(&opts.prefsPath, "prefs", "", "preferences file (default ~/.config/cinemaflow/prefs.toml)")
	flags.BoolVar(&opts.ephemeral, "ephemeral", false, "keep settings in memory for this run")
	root.Flags().StringVarP(&opts.category, "category", "c", "", "category to open with")

	root.AddCommand(
		newListCmd(opts),
		newSearchCmd(opts),
		newShowCmd(opts),
		newPlayCmd(opts),
		newSettingsCmd(opts),
	)
	return root
}

// Execute runs the command line until ctx is cancelled.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}
