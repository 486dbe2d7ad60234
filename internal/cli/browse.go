package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/cinemaflow/internal/catalog"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the titles in a category",
		Long:  "Fetch the showcase for a category and display it in a table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := opts.bootstrap()
			if err != nil {
				return err
			}
			defer func() { _ = env.Close() }()

			if category == "" {
				category = env.Config.DefaultCategory
			}
			token := env.Settings.Load().APIToken
			items, err := env.Catalog.List(cmd.Context(), token, category)
			if err != nil {
				return fmt.Errorf("list %s: %w", category, err)
			}
			printItems(cmd.OutOrStdout(), items)
			return nil
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "category to list (default from config)")
	return cmd
}

func newSearchCmd(opts *rootOptions) *cobra.Command {
	var year, category string

	cmd := &cobra.Command{
		Use:   "search [title]",
		Short: "Search titles by name",
		Long:  "Search the catalogue by title, optionally narrowed by year and category",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := catalog.SearchQuery{
				Name:     strings.TrimSpace(strings.Join(args, " ")),
				Year:     year,
				Category: category,
			}
			if query.Name == "" {
				return fmt.Errorf("search needs a title")
			}

			env, err := opts.bootstrap()
			if err != nil {
				return err
			}
			defer func() { _ = env.Close() }()

			items, err := env.Catalog.Search(cmd.Context(), env.Settings.Load().APIToken, query)
			if err != nil {
				return fmt.Errorf("search failed: %w", err)
			}
			printItems(cmd.OutOrStdout(), items)
			return nil
		},
	}
	cmd.Flags().StringVarP(&year, "year", "y", "", "release year")
	cmd.Flags().StringVarP(&category, "category", "c", "", "category to search in")
	return cmd
}
