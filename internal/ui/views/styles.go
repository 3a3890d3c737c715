package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Dim           lipgloss.Style
	Status        lipgloss.Style
	StatusError   lipgloss.Style
	StatusLoading lipgloss.Style
	StatusSuccess lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	Prompt        lipgloss.Style
	Widget        lipgloss.Style
	WidgetFocused lipgloss.Style
	WidgetSmall   lipgloss.Style
	Result        lipgloss.Style
	ResultFocused lipgloss.Style
	ResultURL     lipgloss.Style
	Highlight     lipgloss.Style
	Message       lipgloss.Style
	Searching     lipgloss.Style
	More          lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Dim: lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		Help:          lipgloss.NewStyle().Faint(true),
		Main:          lipgloss.NewStyle().Padding(1, 2),
		Prompt:        lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Widget: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		WidgetFocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 1),
		WidgetSmall:   lipgloss.NewStyle().Padding(0, 1),
		Result:        lipgloss.NewStyle(),
		ResultFocused: lipgloss.NewStyle().Background(lipgloss.Color("238")).Bold(true),
		ResultURL:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Highlight:     lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Message:       lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Searching:     lipgloss.NewStyle().Foreground(lipgloss.Color("51")), // cyan
		More:          lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
	}
}
