package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"docsearch/internal/corpus"
	"docsearch/internal/render"
	"docsearch/internal/search"
	"docsearch/internal/ui/views"
)

type queryResult struct {
	URL       string  `json:"url"`
	Title     string  `json:"title"`
	Highlight *[2]int `json:"highlight,omitempty"` // [index, length] in the title
}

type queryOutput struct {
	Query     string        `json:"query"`
	Total     int           `json:"total"`
	Truncated bool          `json:"truncated"`
	Results   []queryResult `json:"results"`
}

// Run executes the query command.
func (c *QueryCmd) Run(deps *Dependencies) error {
	if strings.TrimSpace(c.Query) == "" {
		return errors.New("query must not be blank")
	}

	location := deps.Config.CorpusURL
	if c.Corpus != "" {
		location = c.Corpus
	}
	pages, err := corpus.NewShared(corpus.NewSource(location), deps.Logger).Pages(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: could not load corpus from %s\n", location)
		return err
	}

	outcome := search.Search(c.Query, pages)
	deps.Logger.Debug("query", "query", outcome.Query, "total", outcome.Total)
	list := render.Build(outcome)

	switch c.Format {
	case "html":
		if err := render.NewHTMLTemplate().RenderList(deps.Stdout, list, -1); err != nil {
			return err
		}
		fmt.Fprintln(deps.Stdout)
		return nil

	case "json":
		out := queryOutput{
			Query:     outcome.Query,
			Total:     outcome.Total,
			Truncated: outcome.Truncated(),
			Results:   make([]queryResult, 0, len(outcome.Results)),
		}
		for _, r := range outcome.Results {
			qr := queryResult{URL: r.Page.URL, Title: r.Page.Title}
			if r.Highlight != nil {
				qr.Highlight = &[2]int{r.Highlight.Index, r.Highlight.Length}
			}
			out.Results = append(out.Results, qr)
		}
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)

	default:
		tmpl := views.NewResultTemplate(views.NewStyles(), true)
		for _, e := range list.Entries {
			fmt.Fprintln(deps.Stdout, tmpl.Render(e, false))
		}
		if outcome.Truncated() {
			fmt.Fprintf(deps.Stdout, "showing first %d results\n", len(list.Entries))
		}
		if list.MessageVisible {
			fmt.Fprintln(deps.Stdout, list.Message)
		}
		return nil
	}
}
