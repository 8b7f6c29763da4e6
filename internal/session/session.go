// Package session holds the navigation and playback state machine for one
// interactive run. The machine is a pure function from (state, event) to
// (state, note): the UI redraws fully from state on every event, so every
// (phase, event) pair must have a defined result.
package session

import "strings"

// Screen is the requested top-level screen.
type Screen int

const (
	ScreenCreate Screen = iota
	ScreenPlay
)

// Phase is the effective sub-state, derived from State plus the item count.
// An empty store forces the Play screen into PhasePlayEmpty regardless of
// what was requested.
type Phase int

const (
	PhaseCreateCompose Phase = iota
	PhaseCreateReview
	PhasePlayEmpty
	PhasePlayBrowsing
	PhasePlayPlaying
)

func (p Phase) String() string {
	switch p {
	case PhaseCreateCompose:
		return "create/compose"
	case PhaseCreateReview:
		return "create/review"
	case PhasePlayEmpty:
		return "play/empty"
	case PhasePlayBrowsing:
		return "play/browsing"
	case PhasePlayPlaying:
		return "play/playing"
	}
	return "unknown"
}

// State is the session record. One instance per run, never persisted.
//
// Selected is stored as a raw counter and interpreted modulo the current item
// count (see SelectedIndex), so it survives items being added and wraps past
// either end of the list.
type State struct {
	Screen   Screen
	Draft    string
	Enhanced string
	Selected int
	Playing  bool
}

// Env is the slice of the world the machine consults: how many items exist
// and whether the currently selected one has audio attached.
type Env struct {
	Items            int
	SelectedHasAudio bool
}

type EventKind int

const (
	// SubmitDraft submits the draft for (re-)enhancement. The caller runs
	// the enhancement collaborator and passes the result along; an empty
	// draft makes the event a no-op.
	SubmitDraft EventKind = iota
	NavigateCreate
	NavigatePlay
	Previous
	Next
	TogglePlay
	Stop
	// Created and CreateFailed report the outcome of the creation workflow
	// back into the machine.
	Created
	CreateFailed
)

func (k EventKind) String() string {
	switch k {
	case SubmitDraft:
		return "submit-draft"
	case NavigateCreate:
		return "navigate-create"
	case NavigatePlay:
		return "navigate-play"
	case Previous:
		return "previous"
	case Next:
		return "next"
	case TogglePlay:
		return "toggle-play"
	case Stop:
		return "stop"
	case Created:
		return "created"
	case CreateFailed:
		return "create-failed"
	}
	return "unknown"
}

type Event struct {
	Kind     EventKind
	Draft    string // SubmitDraft: raw draft text
	Enhanced string // SubmitDraft: enhanced draft text
	Index    int    // Created: index of the new item
	Err      string // CreateFailed: surfaced error text
}

// Level classifies a surfaced note.
type Level int

const (
	LevelNone Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Note is the message a transition surfaces inline, if any. The interaction
// loop never crashes on a per-action failure; it renders the note instead.
type Note struct {
	Level Level
	Text  string
}

const noItemsNote = "No rehearsals created yet. Create your first rehearsal!"

// SelectedIndex normalizes the selection counter into [0, items). Only valid
// to call with items > 0.
func (s State) SelectedIndex(items int) int {
	return mod(s.Selected, items)
}

// Phase derives the effective sub-state for the given item count.
func (s State) Phase(items int) Phase {
	if s.Screen == ScreenCreate {
		if s.Enhanced == "" {
			return PhaseCreateCompose
		}
		return PhaseCreateReview
	}
	if items == 0 {
		return PhasePlayEmpty
	}
	if s.Playing {
		return PhasePlayPlaying
	}
	return PhasePlayBrowsing
}

// Apply advances the machine. It is total: any event in any state yields a
// defined next state, and the zero Note means nothing to surface.
func Apply(s State, ev Event, env Env) (State, Note) {
	switch ev.Kind {
	case SubmitDraft:
		if strings.TrimSpace(ev.Draft) == "" {
			return s, Note{}
		}
		s.Draft = ev.Draft
		s.Enhanced = ev.Enhanced
		return s, Note{}

	case NavigateCreate:
		s.Screen = ScreenCreate
		// Playback is meaningful only while the Play screen is active.
		s.Playing = false
		return s, Note{}

	case NavigatePlay:
		s.Screen = ScreenPlay
		return s, Note{}

	case Previous, Next:
		if s.Screen != ScreenPlay || env.Items == 0 {
			return s, unavailable(env)
		}
		delta := 1
		if ev.Kind == Previous {
			delta = -1
		}
		s.Selected = mod(s.Selected+delta, env.Items)
		// Switching items stops playback.
		s.Playing = false
		return s, Note{}

	case TogglePlay:
		if s.Screen != ScreenPlay || env.Items == 0 {
			return s, unavailable(env)
		}
		if !env.SelectedHasAudio {
			return s, Note{Level: LevelWarn, Text: "This rehearsal has no audio to play."}
		}
		s.Playing = !s.Playing
		return s, Note{}

	case Stop:
		s.Playing = false
		if s.Screen != ScreenPlay || env.Items == 0 {
			return s, unavailable(env)
		}
		return s, Note{}

	case Created:
		s.Draft = ""
		s.Enhanced = ""
		s.Screen = ScreenPlay
		s.Selected = ev.Index
		s.Playing = false
		return s, Note{Level: LevelInfo, Text: "Rehearsal created."}

	case CreateFailed:
		// Stay in review with the enhanced text intact so the user can
		// retry or redesign.
		return s, Note{Level: LevelError, Text: ev.Err}
	}
	return s, Note{}
}

func unavailable(env Env) Note {
	if env.Items == 0 {
		return Note{Level: LevelInfo, Text: noItemsNote}
	}
	return Note{}
}

func mod(i, n int) int {
	return ((i % n) + n) % n
}
