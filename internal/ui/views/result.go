package views

import (
	"strings"

	"docsearch/internal/render"
)

// ResultTemplate renders result entries for the terminal
type ResultTemplate struct {
	styles  *Styles
	showURL bool
}

var _ render.Template = (*ResultTemplate)(nil)

// NewResultTemplate creates a terminal result template.
// showURL appends the page url after the label.
func NewResultTemplate(styles *Styles, showURL bool) *ResultTemplate {
	return &ResultTemplate{styles: styles, showURL: showURL}
}

// Render draws one entry, emphasizing the matched span of its title
func (t *ResultTemplate) Render(e render.Entry, focused bool) string {
	base := t.styles.Result
	cursor := "  "
	if focused {
		base = t.styles.ResultFocused
		cursor = "> "
	}

	var sb strings.Builder
	sb.WriteString(cursor)
	if e.Before != "" {
		sb.WriteString(base.Render(e.Before))
	}
	if e.Highlighted {
		sb.WriteString(t.styles.Highlight.Inherit(base).Render(e.Match))
	}
	if e.After != "" {
		sb.WriteString(base.Render(e.After))
	}
	if t.showURL {
		sb.WriteString("  ")
		sb.WriteString(t.styles.ResultURL.Render(e.URL))
	}
	return sb.String()
}
