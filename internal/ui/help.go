package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// HelpRenderer renders the full key reference shown in the pager
type HelpRenderer struct {
	title   lipgloss.Style
	section lipgloss.Style
	key     lipgloss.Style
	desc    lipgloss.Style
	note    lipgloss.Style
}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		section: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginTop(1),
		key:  lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		desc: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		note: lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241")),
	}
}

// Render builds the help text from the active key bindings
func (r *HelpRenderer) Render(keys keyMap) string {
	var help strings.Builder

	help.WriteString(r.title.Render("docsearch Help"))
	help.WriteString("\n")

	r.writeSection(&help, "Searching", []key.Binding{keys.Submit, keys.Clear})
	help.WriteString(r.note.Render("  Typing searches automatically after a short pause."))
	help.WriteString("\n")

	r.writeSection(&help, "Results", []key.Binding{keys.Down, keys.Up})
	help.WriteString(r.note.Render("  Up from the first result returns to the search box; enter opens the focused result."))
	help.WriteString("\n")

	r.writeSection(&help, "Other", []key.Binding{keys.NextWidget, keys.Help, keys.Quit, keys.ForceQuit})
	help.WriteString(r.note.Render("  Clicking outside a search box clears its results."))

	return help.String()
}

func (r *HelpRenderer) writeSection(sb *strings.Builder, name string, bindings []key.Binding) {
	sb.WriteString(r.section.Render(name))
	sb.WriteString("\n")
	for _, b := range bindings {
		h := b.Help()
		fmt.Fprintf(sb, "  %s  %s\n", r.key.Width(8).Render(h.Key), r.desc.Render(h.Desc))
	}
}
