package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"rehearsals/internal/create"
	"rehearsals/internal/enhance"
	"rehearsals/internal/model"
	"rehearsals/internal/session"
	"rehearsals/internal/store"
)

// playbackPlayer is the slice of the audio player the app drives. The done
// channel closes when a clip ends or is stopped.
type playbackPlayer interface {
	Start(audio []byte) (<-chan struct{}, error)
	Pause()
	Resume()
	Stop()
}

// creationDoneMsg reports the outcome of the creation workflow command.
type creationDoneMsg struct {
	res create.Result
	err error
}

// playbackEndedMsg reports that a started clip ran to its natural end. The
// generation counter guards against stale messages from replaced clips.
type playbackEndedMsg struct {
	gen int
}

type appModel struct {
	store    *store.Store
	enhancer enhance.Enhancer
	workflow *create.Workflow
	player   playbackPlayer
	log      *zap.SugaredLogger

	state session.State
	note  session.Note

	draft    textarea.Model
	spin     spinner.Model
	creating bool

	// loadedIndex is the item whose clip the player currently holds; -1
	// when nothing is loaded. paused distinguishes resume from restart.
	loadedIndex int
	paused      bool
	playGen     int

	publishing bool

	width  int
	height int
}

func newAppModel(s *store.Store, enh enhance.Enhancer, wf *create.Workflow, p playbackPlayer, log *zap.SugaredLogger) appModel {
	ta := textarea.New()
	ta.Placeholder = "Enter your rehearsal ideas"
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	return appModel{
		store:       s,
		enhancer:    enh,
		workflow:    wf,
		player:      p,
		log:         log,
		draft:       ta,
		spin:        sp,
		loadedIndex: -1,
		publishing:  wf.Publisher != nil,
	}
}

func (m appModel) Init() tea.Cmd { return textarea.Blink }

// env is what the state machine needs to know about the store.
func (m appModel) env() session.Env {
	items := m.store.Len()
	e := session.Env{Items: items}
	if items > 0 {
		if it := m.selectedItem(); it != nil {
			e.SelectedHasAudio = it.HasAudio()
		}
	}
	return e
}

func (m appModel) selectedItem() *model.Item {
	items := m.store.Len()
	if items == 0 {
		return nil
	}
	return m.store.At(m.state.SelectedIndex(items))
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case spinner.TickMsg:
		if !m.creating {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case creationDoneMsg:
		return m.handleCreationDone(msg)

	case playbackEndedMsg:
		if msg.gen != m.playGen {
			return m, nil
		}
		// Natural end of the clip.
		m.state, _ = session.Apply(m.state, session.Event{Kind: session.Stop}, m.env())
		m.loadedIndex = -1
		m.paused = false
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateDraft(msg)
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.player.Stop()
		return m, tea.Quit
	}
	if m.state.Screen == session.ScreenCreate {
		return m.handleCreateKey(msg)
	}
	return m.handlePlayKey(msg)
}

func (m appModel) handleCreateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "esc":
		m.apply(session.Event{Kind: session.NavigatePlay})
		return m, nil

	case "ctrl+d":
		// Design (or redesign): run the enhancement step on the draft.
		if m.creating {
			return m, nil
		}
		draft := m.draft.Value()
		enhanced, err := m.enhancer.Enhance(context.Background(), draft)
		if err != nil {
			m.note = session.Note{Level: session.LevelError, Text: "Enhancement failed: " + err.Error()}
			return m, nil
		}
		m.apply(session.Event{Kind: session.SubmitDraft, Draft: draft, Enhanced: enhanced})
		return m, nil

	case "ctrl+g":
		// Complete and generate the voiceover.
		if m.creating || m.state.Phase(m.store.Len()) != session.PhaseCreateReview {
			return m, nil
		}
		m.creating = true
		m.note = session.Note{}
		return m, tea.Batch(m.spin.Tick, m.createCmd())
	}
	return m.updateDraft(msg)
}

func (m appModel) handlePlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.player.Stop()
		return m, tea.Quit

	case "n", "c", "esc":
		m.player.Stop()
		m.loadedIndex = -1
		m.paused = false
		m.apply(session.Event{Kind: session.NavigateCreate})
		return m, nil

	case "left", "h":
		return m.navigate(session.Previous)

	case "right", "l":
		return m.navigate(session.Next)

	case " ", "p":
		return m.togglePlayback()

	case "s":
		wasPlaying := m.state.Playing
		m.apply(session.Event{Kind: session.Stop})
		if wasPlaying || m.loadedIndex >= 0 {
			m.player.Stop()
			m.loadedIndex = -1
			m.paused = false
		}
		return m, nil
	}
	return m, nil
}

func (m appModel) navigate(kind session.EventKind) (tea.Model, tea.Cmd) {
	wasPlaying := m.state.Playing
	m.apply(session.Event{Kind: kind})
	if wasPlaying || m.loadedIndex >= 0 {
		// Switching items stops playback.
		m.player.Stop()
		m.loadedIndex = -1
		m.paused = false
	}
	return m, nil
}

func (m appModel) togglePlayback() (tea.Model, tea.Cmd) {
	before := m.state.Playing
	m.apply(session.Event{Kind: session.TogglePlay})
	if m.state.Playing == before {
		return m, nil // warned or unavailable; nothing to drive
	}

	if !m.state.Playing {
		m.player.Pause()
		m.paused = true
		return m, nil
	}

	idx := m.state.SelectedIndex(m.store.Len())
	if m.paused && m.loadedIndex == idx {
		m.player.Resume()
		m.paused = false
		return m, nil
	}

	it := m.store.At(idx)
	done, err := m.player.Start(it.Audio)
	if err != nil {
		m.state, _ = session.Apply(m.state, session.Event{Kind: session.Stop}, m.env())
		m.note = session.Note{Level: session.LevelWarn, Text: "Playback failed: " + err.Error()}
		m.log.Warnw("playback failed", "item", it.ID, "error", err)
		return m, nil
	}
	m.loadedIndex = idx
	m.paused = false
	m.playGen++
	gen := m.playGen
	return m, func() tea.Msg {
		<-done
		return playbackEndedMsg{gen: gen}
	}
}

func (m appModel) createCmd() tea.Cmd {
	wf := m.workflow
	enhanced := m.state.Enhanced
	return func() tea.Msg {
		res, err := wf.Run(context.Background(), enhanced)
		return creationDoneMsg{res: res, err: err}
	}
}

func (m appModel) handleCreationDone(msg creationDoneMsg) (tea.Model, tea.Cmd) {
	m.creating = false
	if msg.err != nil {
		m.apply(session.Event{Kind: session.CreateFailed, Err: msg.err.Error()})
		return m, nil
	}

	m.apply(session.Event{Kind: session.Created, Index: msg.res.Index})
	m.draft.Reset()
	if msg.res.Warning != "" {
		// Completed, but without a published reference.
		m.note = session.Note{Level: session.LevelWarn, Text: msg.res.Warning}
	}
	return m, nil
}

// apply routes an event through the state machine and keeps the surfaced
// note for the next render.
func (m *appModel) apply(ev session.Event) {
	m.state, m.note = session.Apply(m.state, ev, m.env())
}

func (m appModel) updateDraft(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.draft, cmd = m.draft.Update(msg)

	// Keep the machine's draft in sync so navigation preserves it.
	m.state.Draft = m.draft.Value()
	return m, cmd
}

func (m *appModel) resize() {
	w := m.width - 4
	if w < 20 {
		w = 20
	}
	m.draft.SetWidth(w)
	h := m.height / 3
	if h < 4 {
		h = 4
	}
	m.draft.SetHeight(h)
}
