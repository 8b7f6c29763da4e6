package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"rehearsals/internal/config"
	"rehearsals/internal/create"
	"rehearsals/internal/enhance"
	"rehearsals/internal/player"
	"rehearsals/internal/publish"
	"rehearsals/internal/store"
	"rehearsals/internal/tui"
	"rehearsals/internal/voice"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "rehearsals",
		Short:        "Write, voice, and publish rehearsal scripts from the terminal",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive studio
  rehearsals

  # Inspect the configured podcast show
  rehearsals show --episodes 5
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return cmd.Help()
			}
			return runTUI(cmd)
		},
	}

	cmd.AddCommand(newShowCmd())
	cmd.AddCommand(newVersionCmd())
	return cmd
}

func runTUI(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	// No audio, no app: the API key is the one fatal startup requirement.
	if err := cfg.ValidateVoice(); err != nil {
		return fmt.Errorf("voice synthesis is unavailable: %w", err)
	}

	log, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	s := store.New()
	wf := &create.Workflow{
		Store: s,
		Voice: voice.New(cfg.ElevenLabs),
		Log:   log,
	}

	if cfg.PublishingConfigured() {
		pub, err := publish.New(cmd.Context(), cfg.Spotify, log)
		if err != nil {
			// Surfaced once; publishing stays unavailable but the app runs.
			fmt.Fprintf(os.Stderr, "publishing disabled: %v\n", err)
			log.Warnw("publishing disabled", "error", err)
		} else {
			wf.Publisher = pub
		}
	} else {
		log.Infow("publishing disabled", "missing", cfg.Spotify.Missing())
	}

	log.Infow("starting studio", "publishing", wf.Publisher != nil)
	return tui.Run(s, enhance.Default(), wf, player.NewSpeaker(), log)
}
