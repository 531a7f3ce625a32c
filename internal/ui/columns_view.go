package ui

import (
	"fmt"
	"strings"
)

func (m Model) renderColumnEditor() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Columns"))
	b.WriteString("\n\n")

	working := m.columns.Working()
	cursor := clampCursor(m.editorCursor, len(working))
	blocked := false
	for i, c := range working {
		prefix := " "
		if i == cursor {
			prefix = ">"
		}
		box := "[ ]"
		if c.Visible {
			box = "[x]"
		}
		line := fmt.Sprintf("%s %s %s", prefix, box, c.Label)
		if !m.columns.CanToggle(c.ID) {
			line = mutedStyle.Render(line + " (locked)")
			if i == cursor {
				blocked = true
			}
		} else if i == cursor {
			line = activeControl.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if blocked {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("The last visible column cannot be hidden."))
		b.WriteString("\n")
	}
	if m.columns.Dirty() {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("enter to apply • " + m.cfg.Keys.Cancel + " to discard"))
		b.WriteString("\n")
	}
	return b.String()
}
