package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"rehearsals/internal/create"
	"rehearsals/internal/enhance"
	"rehearsals/internal/store"
)

// Player is the audio playback dependency of the app; see internal/player
// for the speaker-backed and no-op implementations.
type Player = playbackPlayer

func Run(s *store.Store, enh enhance.Enhancer, wf *create.Workflow, p Player, log *zap.SugaredLogger) error {
	m := newAppModel(s, enh, wf, p, log)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
