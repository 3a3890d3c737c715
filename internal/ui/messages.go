package ui

import (
	"time"

	"docsearch/internal/render"
	"docsearch/internal/search"
)

// searchDoneMsg carries the outcome of one widget search
type searchDoneMsg struct {
	widgetID string
	seq      int
	query    string
	outcome  search.Outcome
	err      error
	took     time.Duration
}

// corpusReadyMsg reports the result of the initial corpus load
type corpusReadyMsg struct {
	pages int
	err   error
}

// openPageMsg asks the host to show a result's page
type openPageMsg struct {
	entry render.Entry
}

// pagerDoneMsg is sent when the pager exits
type pagerDoneMsg struct {
	err error
}
