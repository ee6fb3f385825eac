package tui

import (
	"fmt"
	"strings"
)

// View renders the full TUI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("speakbox"))
	b.WriteString(metaStyle.Render("  " + iconDot + " " + m.cfg.Backend.Model))
	b.WriteString("\n\n")

	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	b.WriteString(m.renderStatus())
	b.WriteString("\n")

	b.WriteString(m.renderHistory())
	b.WriteString("\n")

	b.WriteString(m.renderHelp())

	return b.String()
}

// renderStatus renders the main result area for the current view state.
func (m Model) renderStatus() string {
	switch m.state {
	case stateWaiting:
		return " " + m.spinner.View() + waitingStyle.Render("Synthesizing...") + "\n"

	case stateError:
		return " " + errorStyle.Render(m.errMsg) + "\n"

	case stateResults:
		if m.current == nil {
			return ""
		}
		e := m.current

		var b strings.Builder
		b.WriteString(" " + selectedStyle.Render(e.ID))
		b.WriteString(metaStyle.Render(fmt.Sprintf("  %s %s  %s %s",
			iconDot, e.Model,
			iconDot, e.Timestamp.Local().Format("2006-01-02 15:04:05"),
		)))
		b.WriteString("\n ")
		b.WriteString(resultStyle.Render(truncate(e.Text, max(20, m.width-4))))
		b.WriteString("\n")
		if m.audioPath != "" {
			b.WriteString(" " + metaStyle.Render("audio: "+m.audioPath) + "\n")
		}
		return b.String()

	default:
		return " " + metaStyle.Render("Enter text and press enter to synthesize.") + "\n"
	}
}

// renderHistory renders the past generations list, marking the entry shown
// in the main view as active.
func (m Model) renderHistory() string {
	var b strings.Builder
	b.WriteString(labelStyle.Render("History"))
	b.WriteString("\n")

	if len(m.entries) == 0 {
		b.WriteString(" " + metaStyle.Render("No past generations yet.") + "\n")
		return b.String()
	}

	for i, e := range m.entries {
		cursor := "  "
		if m.focus == focusHistory && i == m.cursor {
			cursor = selectedStyle.Render(iconCursor) + " "
		}

		marker := "  "
		if e.ID == m.selectedID {
			marker = activeStyle.Render(iconActive) + " "
		}

		style := normalStyle
		if m.focus == focusHistory && i == m.cursor {
			style = selectedStyle
		}

		line := truncate(e.Text, max(20, m.width-30))
		b.WriteString(fmt.Sprintf(" %s%s%s %s\n",
			cursor,
			marker,
			style.Render(line),
			metaStyle.Render(e.Timestamp.Local().Format("15:04:05")),
		))
	}

	return b.String()
}

func (m Model) renderHelp() string {
	if m.focus == focusHistory {
		return helpStyle.Render("enter open " + iconDot + " j/k move " + iconDot + " c clear " + iconDot + " tab input " + iconDot + " esc reset " + iconDot + " q quit")
	}
	return helpStyle.Render("enter synthesize " + iconDot + " tab history " + iconDot + " esc reset " + iconDot + " ctrl+c quit")
}

// truncate shortens s to at most n runes, appending an ellipsis.
func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
