package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/five82/cinemaflow/internal/app"
	"github.com/five82/cinemaflow/internal/catalog"
	"github.com/five82/cinemaflow/internal/player"
)

// selector addresses one title by identifier.
type selector struct {
	kp, imdb, worldArt, name, year string
}

func (s *selector) register(flags *pflag.FlagSet) {
	flags.StringVar(&s.kp, "kp", "", "Kinopoisk id")
	flags.StringVar(&s.imdb, "imdb", "", "IMDb id")
	flags.StringVar(&s.worldArt, "world-art", "", "World Art id")
	flags.StringVar(&s.name, "name", "", "title name")
	flags.StringVar(&s.year, "year", "", "release year, used with --name")
}

func (s selector) item() (catalog.Item, error) {
	item := catalog.Item{
		KinopoiskID: catalog.Text(s.kp),
		IMDbID:      catalog.Text(s.imdb),
		WorldArtID:  catalog.Text(s.worldArt),
		Name:        catalog.Text(s.name),
		Year:        catalog.Text(s.year),
	}
	if _, _, ok := item.Identity(); !ok {
		return catalog.Item{}, errors.New("one of --kp, --imdb, --world-art or --name is required")
	}
	return item, nil
}

// fetch resolves the selector to the full record. Detail lookups are
// best-effort: a failed lookup yields the selector's own fields.
func fetch(cmd *cobra.Command, env *app.Env, sel selector) (catalog.Item, error) {
	summary, err := sel.item()
	if err != nil {
		return catalog.Item{}, err
	}
	return env.Catalog.Details(cmd.Context(), env.Settings.Load().APIToken, summary), nil
}

func newShowCmd(opts *rootOptions) *cobra.Command {
	var sel selector

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the details of one title",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := opts.bootstrap()
			if err != nil {
				return err
			}
			defer func() { _ = env.Close() }()

			item, err := fetch(cmd, env, sel)
			if err != nil {
				return err
			}
			printDetail(cmd.OutOrStdout(), item)
			return nil
		},
	}
	sel.register(cmd.Flags())
	return cmd
}

func newPlayCmd(opts *rootOptions) *cobra.Command {
	var (
		sel        selector
		track      string
		autoplay   bool
		listTracks bool
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Print the player URL for one title",
		Long:  "Resolve the embeddable player URL for a title. Without --translation the first valid translation track is used.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := opts.bootstrap()
			if err != nil {
				return err
			}
			defer func() { _ = env.Close() }()

			item, err := fetch(cmd, env, sel)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if listTracks {
				printTracks(out, player.Tracks(item))
				return nil
			}

			track = strings.TrimSpace(track)
			if track == "" {
				if def, ok := player.DefaultTrack(item); ok {
					track = def.ID
				}
			}

			current := env.Settings.Load()
			src, err := player.Resolve(player.Request{
				Item:         item,
				TrackID:      track,
				Autoplay:     autoplay,
				PlayerDomain: current.PlayerDomain,
				Token:        current.APIToken,
			})
			if err != nil {
				return fmt.Errorf("resolve player: %w", err)
			}
			_, _ = fmt.Fprintln(out, src.URL)
			return nil
		},
	}
	sel.register(cmd.Flags())
	cmd.Flags().StringVarP(&track, "translation", "t", "", "translation track id")
	cmd.Flags().BoolVar(&autoplay, "autoplay", false, "start playback on load")
	cmd.Flags().BoolVar(&listTracks, "tracks", false, "list the translation tracks instead")
	return cmd
}
