// Package corpus loads the searchable page collection of a generated site.
//
// Sources fetch the raw collection; Shared memoizes one load so every search
// in the process reads the same immutable snapshot.
package corpus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"docsearch/internal/domain"
)

var (
	// ErrCorpusLoad wraps every failure to fetch or decode the corpus.
	ErrCorpusLoad = errors.New("corpus load failed")

	// ErrInvalidPage marks a record or page without a url or title.
	ErrInvalidPage = errors.New("invalid corpus page")
)

// Provider returns the ordered corpus.
// The returned slice is shared and must not be modified.
type Provider interface {
	Pages(ctx context.Context) ([]domain.CorpusPage, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context) ([]domain.CorpusPage, error)

// Pages calls f.
func (f ProviderFunc) Pages(ctx context.Context) ([]domain.CorpusPage, error) {
	return f(ctx)
}

// Static is a Provider over an in-memory collection.
type Static []domain.CorpusPage

// Pages returns the collection unchanged.
func (s Static) Pages(context.Context) ([]domain.CorpusPage, error) {
	return s, nil
}

// Decode reads a JSON array of {url, title, content} records.
// Records are returned as found; see Valid.
func Decode(r io.Reader) ([]domain.CorpusPage, error) {
	var pages []domain.CorpusPage
	if err := json.NewDecoder(r).Decode(&pages); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrCorpusLoad, err)
	}
	return pages, nil
}

// Valid returns the pages that have both a url and a title, in order, and
// the number of records dropped. pages is returned as is when all are valid.
func Valid(pages []domain.CorpusPage) ([]domain.CorpusPage, int) {
	var out []domain.CorpusPage
	for i, p := range pages {
		if p.URL != "" && p.Title != "" {
			if out != nil {
				out = append(out, p)
			}
			continue
		}
		if out == nil {
			out = make([]domain.CorpusPage, i, len(pages))
			copy(out, pages[:i])
		}
	}
	if out == nil {
		return pages, 0
	}
	return out, len(pages) - len(out)
}

// Encode writes pages as the JSON array Decode reads.
func Encode(w io.Writer, pages []domain.CorpusPage) error {
	if pages == nil {
		pages = []domain.CorpusPage{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(pages)
}
