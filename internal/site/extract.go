package site

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"docsearch/internal/corpus"
	"docsearch/internal/domain"
)

// ExtractPage turns a rendered page into a corpus record.
// The title is the first <h1>; the content is the lower-cased text of <main>
// with whitespace collapsed.
func ExtractPage(url string, r io.Reader) (domain.CorpusPage, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return domain.CorpusPage{}, fmt.Errorf("failed to parse %s: %w", url, err)
	}

	title := normalizeSpace(doc.Find("h1").First().Text())
	if title == "" {
		return domain.CorpusPage{}, fmt.Errorf("%w: %s has no <h1>", corpus.ErrInvalidPage, url)
	}

	main := doc.Find("main").First()
	if main.Length() == 0 {
		main = doc.Find("body")
	}
	// widgets rendered inside the page carry no content
	main.Find("[data-search-widget]").Remove()

	return domain.CorpusPage{
		URL:     url,
		Title:   title,
		Content: strings.ToLower(normalizeSpace(main.Text())),
	}, nil
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
