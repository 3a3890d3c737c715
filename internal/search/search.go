// Package search matches queries against the in-memory corpus.
package search

import (
	"regexp"
	"strings"

	"docsearch/internal/domain"
)

// MaxResults is the most results surfaced for one query.
const MaxResults = 30

// Outcome is the result of one search.
type Outcome struct {
	Query   string // normalized query
	Results []domain.SearchResult
	// Total counts the matches seen before the scan stopped. The scan stops
	// once MaxResults+1 matches are seen, so Total > len(Results) means
	// there were more matches than shown.
	Total int
}

// Truncated reports whether more pages matched than were surfaced.
func (o Outcome) Truncated() bool {
	return o.Total > len(o.Results)
}

// Normalize trims and case-folds a raw query.
func Normalize(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// Search scans pages in order and returns the pages whose content contains
// the query, at most MaxResults of them, in corpus order.
func Search(query string, pages []domain.CorpusPage) Outcome {
	q := Normalize(query)
	out := Outcome{Query: q}
	if q == "" {
		return out
	}

	// Compiled once per search; QuoteMeta keeps the query literal
	re := highlighter(q)

	for _, page := range pages {
		if !strings.Contains(strings.ToLower(page.Content), q) {
			continue
		}
		out.Total++
		if out.Total > MaxResults {
			break
		}
		out.Results = append(out.Results, domain.SearchResult{
			Page:      page,
			Highlight: locate(re, page.Title),
		})
	}
	return out
}

// Highlight returns the span of the first case-insensitive occurrence of
// query in title, or nil when the query does not occur there.
func Highlight(title, query string) *domain.Highlight {
	q := Normalize(query)
	if q == "" {
		return nil
	}
	return locate(highlighter(q), title)
}

func highlighter(q string) *regexp.Regexp {
	return regexp.MustCompile("(?i)" + regexp.QuoteMeta(q))
}

func locate(re *regexp.Regexp, title string) *domain.Highlight {
	loc := re.FindStringIndex(title)
	if loc == nil {
		return nil
	}
	return &domain.Highlight{Index: loc[0], Length: loc[1] - loc[0]}
}
