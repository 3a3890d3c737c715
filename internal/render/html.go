package render

import (
	"html/template"
	"io"
	"strings"
)

const resultHTML = `<li class="result{{if .Focused}} result--focus{{end}}">` +
	`<a class="link" href="{{.URL}}">{{.Before}}{{if .Highlighted}}<b>{{.Match}}</b>{{end}}{{.After}}</a></li>`

const listHTML = `<ul id="results">{{range .Items}}{{template "result" .}}{{end}}</ul>` +
	`<div id="message"{{if not .MessageVisible}} style="display: none"{{end}}>{{.Message}}</div>`

// HTMLTemplate renders entries as search-result list items
type HTMLTemplate struct {
	tmpl *template.Template
}

// NewHTMLTemplate parses the result templates
func NewHTMLTemplate() *HTMLTemplate {
	t := template.Must(template.New("result").Parse(resultHTML))
	template.Must(t.New("list").Parse(listHTML))
	return &HTMLTemplate{tmpl: t}
}

type htmlItem struct {
	Entry
	Focused bool
}

// Render returns one <li> for the entry
func (h *HTMLTemplate) Render(e Entry, focused bool) string {
	var sb strings.Builder
	if err := h.tmpl.ExecuteTemplate(&sb, "result", htmlItem{Entry: e, Focused: focused}); err != nil {
		return template.HTMLEscapeString(e.Title)
	}
	return sb.String()
}

// RenderList writes the result list and status message
func (h *HTMLTemplate) RenderList(w io.Writer, l List, focusIndex int) error {
	items := make([]htmlItem, len(l.Entries))
	for i, e := range l.Entries {
		items[i] = htmlItem{Entry: e, Focused: i == focusIndex}
	}
	return h.tmpl.ExecuteTemplate(w, "list", struct {
		Items          []htmlItem
		Message        string
		MessageVisible bool
	}{items, l.Message, l.MessageVisible})
}
