package domain

// CorpusPage represents one searchable page of the generated site
type CorpusPage struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Content string `json:"content"` // normalized page text, searched case-insensitively
}

// Highlight is a span of a page title to emphasize
type Highlight struct {
	Index  int // byte offset into the title
	Length int // byte length of the matched text
}

// SearchResult represents a page that matched a query
type SearchResult struct {
	Page      CorpusPage
	Highlight *Highlight // nil when the query does not occur in the title
}

// MatchIndex returns the highlight offset, or -1 when there is none
func (r SearchResult) MatchIndex() int {
	if r.Highlight == nil {
		return -1
	}
	return r.Highlight.Index
}

// MatchLength returns the highlight length, or 0 when there is none
func (r SearchResult) MatchLength() int {
	if r.Highlight == nil {
		return 0
	}
	return r.Highlight.Length
}
