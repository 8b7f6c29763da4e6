package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rehearsals/internal/config"
	"rehearsals/internal/publish"
)

func newShowCmd() *cobra.Command {
	var episodes int

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the configured podcast show and its recent episodes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !cfg.PublishingConfigured() {
				return fmt.Errorf("publishing is not configured: missing %s",
					strings.Join(cfg.Spotify.Missing(), ", "))
			}

			logger, err := zap.NewDevelopment()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			client, err := publish.New(cmd.Context(), cfg.Spotify, logger.Sugar())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			show := client.ShowDetails(cmd.Context())
			if show.ID == "" {
				fmt.Fprintln(out, "show details unavailable")
			} else {
				fmt.Fprintf(out, "%s — %s (%d episodes)\n", show.Name, show.Publisher, show.TotalEpisodes)
				if show.Description != "" {
					fmt.Fprintln(out, show.Description)
				}
			}

			eps := client.Episodes(cmd.Context(), episodes)
			if len(eps) == 0 {
				fmt.Fprintln(out, "no episodes")
				return nil
			}
			fmt.Fprintln(out)
			for _, ep := range eps {
				fmt.Fprintf(out, "%-12s %s  %s\n", ep.ReleaseDate, ep.Name, client.EpisodeURL(ep.ID))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&episodes, "episodes", 10, "number of recent episodes to list")
	return cmd
}
