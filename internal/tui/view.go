package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"rehearsals/internal/session"
)

func (m appModel) View() string {
	var b strings.Builder

	b.WriteString(m.header())
	b.WriteString("\n\n")

	switch m.state.Phase(m.store.Len()) {
	case session.PhaseCreateCompose, session.PhaseCreateReview:
		b.WriteString(m.viewCreate())
	case session.PhasePlayEmpty:
		b.WriteString(infoNoteStyle.Render(
			"No rehearsals created yet. Create your first rehearsal!"))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("esc create screen • ctrl+c quit"))
	default:
		b.WriteString(m.viewPlay())
	}

	if m.note.Level != session.LevelNone {
		b.WriteString("\n\n")
		b.WriteString(m.renderNote())
	}
	return b.String()
}

func (m appModel) header() string {
	screen := "Create"
	if m.state.Screen == session.ScreenPlay {
		screen = "Play"
	}
	crumb := breadcrumbStyle.Render(" › " + screen)
	return titleStyle.Render("Rehearsals") + crumb
}

func (m appModel) viewCreate() string {
	var b strings.Builder

	b.WriteString(m.draft.View())
	b.WriteString("\n")

	inReview := m.state.Phase(m.store.Len()) == session.PhaseCreateReview
	if inReview {
		b.WriteString("\n")
		b.WriteString(reviewBoxStyle.Width(m.contentWidth()).Render(m.state.Enhanced))
		b.WriteString("\n")
		if !m.publishing {
			b.WriteString(infoNoteStyle.Render("Publishing is not configured; the rehearsal will stay local."))
			b.WriteString("\n")
		}
	}

	if m.creating {
		b.WriteString("\n")
		b.WriteString(m.spin.View())
		b.WriteString(infoNoteStyle.Render("Generating voiceover..."))
		b.WriteString("\n")
	}

	help := "ctrl+d design • tab playback • ctrl+c quit"
	if inReview {
		help = "ctrl+d redesign • ctrl+g complete & generate voiceover • tab playback • ctrl+c quit"
	}
	b.WriteString(helpStyle.Render(help))
	return b.String()
}

func (m appModel) viewPlay() string {
	items := m.store.Len()
	idx := m.state.SelectedIndex(items)
	it := m.store.At(idx)

	var b strings.Builder

	pos := positionStyle.Render(fmt.Sprintf("‹ %d/%d ›", idx+1, items))
	title := it.Title()
	if len(strings.Fields(it.Content)) > len(it.TitleWords) {
		title += "..."
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center,
		pos, "  ", itemTitleStyle.Render(title)))
	b.WriteString("\n")

	status := "⏹ stopped"
	if m.state.Playing {
		status = "▶ playing"
	} else if m.paused {
		status = "⏸ paused"
	}
	b.WriteString(positionStyle.Render(status))
	if !it.HasAudio() {
		b.WriteString(warnNoteStyle.Render("  (no audio)"))
	}
	b.WriteString("\n")

	if it.Published != nil {
		b.WriteString(publishedStyle.Render("Published: " + it.Published.URL))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderTranscript(it.Content))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(
		"←/→ previous/next • space play/pause • s stop • n new rehearsal • q quit"))
	return b.String()
}

// renderTranscript shows the full content as markdown, falling back to the
// raw text when the renderer is unavailable.
func (m appModel) renderTranscript(content string) string {
	return renderMarkdown("### Transcript\n\n"+content, m.contentWidth())
}

func (m appModel) renderNote() string {
	switch m.note.Level {
	case session.LevelWarn:
		return warnNoteStyle.Render(m.note.Text)
	case session.LevelError:
		return errorNoteStyle.Render(m.note.Text)
	default:
		return infoNoteStyle.Render(m.note.Text)
	}
}

func (m appModel) contentWidth() int {
	w := m.width - 4
	if w < 20 {
		w = 76
	}
	return w
}
