// Package render turns search outcomes into display lists.
package render

import (
	"docsearch/internal/domain"
	"docsearch/internal/search"
)

// ZeroResultsMessage is shown when nothing matched
const ZeroResultsMessage = "0 results found."

// Entry is one displayable result: a link whose label is the title split
// around the highlighted span.
type Entry struct {
	URL         string
	Title       string
	Before      string
	Match       string
	After       string
	Highlighted bool
	Page        domain.CorpusPage
}

// Label returns the unstyled title
func (e Entry) Label() string {
	return e.Before + e.Match + e.After
}

// List is the display state for one search session
type List struct {
	Query          string
	Entries        []Entry
	Total          int
	Message        string
	MessageVisible bool
}

// Empty reports whether the list shows nothing at all
func (l List) Empty() bool {
	return len(l.Entries) == 0 && !l.MessageVisible
}

// Build creates a fresh list for an outcome
func Build(out search.Outcome) List {
	l := List{
		Query: out.Query,
		Total: out.Total,
	}
	if out.Total == 0 {
		l.Message = ZeroResultsMessage
		l.MessageVisible = true
		return l
	}

	l.Entries = make([]Entry, 0, len(out.Results))
	for _, r := range out.Results {
		l.Entries = append(l.Entries, NewEntry(r))
	}
	return l
}

// NewEntry splits a result title around its highlight
func NewEntry(r domain.SearchResult) Entry {
	title := r.Page.Title
	e := Entry{
		URL:    r.Page.URL,
		Title:  title,
		Before: title,
		Page:   r.Page,
	}

	h := r.Highlight
	if h == nil || h.Index < 0 || h.Index+h.Length > len(title) {
		return e
	}
	e.Before = title[:h.Index]
	e.Match = title[h.Index : h.Index+h.Length]
	e.After = title[h.Index+h.Length:]
	e.Highlighted = true
	return e
}

// Template renders a single entry. Implementations own presentation;
// focused marks the entry that holds keyboard focus.
type Template interface {
	Render(e Entry, focused bool) string
}
