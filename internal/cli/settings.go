package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/cinemaflow/internal/settings"
)

func newSettingsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the API token and player domain",
	}
	cmd.AddCommand(newSettingsShowCmd(opts), newSettingsSetCmd(opts), newSettingsResetCmd(opts))
	return cmd
}

func newSettingsShowCmd(opts *rootOptions) *cobra.Command {
	var reveal bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := opts.bootstrap()
			if err != nil {
				return err
			}
			defer func() { _ = env.Close() }()

			printSettings(cmd.OutOrStdout(), env.Settings.Load(), reveal)
			return nil
		},
	}
	cmd.Flags().BoolVar(&reveal, "reveal", false, "print the token in full")
	return cmd
}

func newSettingsSetCmd(opts *rootOptions) *cobra.Command {
	var token, domain string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Validate and save new settings",
		Long:  "Update the API token and/or player domain. Fields not given keep their current value. Nothing is saved if validation fails.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("token") && !flags.Changed("player-domain") {
				return fmt.Errorf("nothing to set: pass --token and/or --player-domain")
			}

			env, err := opts.bootstrap()
			if err != nil {
				return err
			}
			defer func() { _ = env.Close() }()

			next := env.Settings.Load()
			if flags.Changed("token") {
				next.APIToken = token
			}
			if flags.Changed("player-domain") {
				next.PlayerDomain = domain
			}
			saved, err := env.Settings.Save(next)
			if err != nil {
				return fmt.Errorf("save settings: %w", err)
			}
			printSettings(cmd.OutOrStdout(), saved, false)
			return nil
		},
	}
	cmd.Flags().StringVar(&token, "token", "", "API token")
	cmd.Flags().StringVar(&domain, "player-domain", "", "player base URL, e.g. https://player.example/")
	return cmd
}

func newSettingsResetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := opts.bootstrap()
			if err != nil {
				return err
			}
			defer func() { _ = env.Close() }()

			value, err := env.Settings.Reset()
			if err != nil {
				return fmt.Errorf("reset settings: %w", err)
			}
			printSettings(cmd.OutOrStdout(), value, false)
			return nil
		},
	}
}

func printSettings(w io.Writer, value settings.Settings, reveal bool) {
	token := value.APIToken
	if !reveal {
		token = maskToken(token)
	}
	_, _ = fmt.Fprintf(w, "%s %s\n", labelStyle.Render("API token:    "), token)
	_, _ = fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Player domain:"), value.PlayerDomain)
}

// maskToken keeps the first three characters.
func maskToken(token string) string {
	runes := []rune(strings.TrimSpace(token))
	if len(runes) <= 3 {
		return strings.Repeat("•", len(runes))
	}
	return string(runes[:3]) + strings.Repeat("•", len(runes)-3)
}
