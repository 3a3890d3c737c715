package corpus

import (
	"context"
	"fmt"
	"os"
	"strings"

	"docsearch/internal/domain"
)

// FileSource reads the corpus document from disk.
type FileSource struct {
	Path string
}

// Pages opens and decodes the file.
func (s FileSource) Pages(ctx context.Context) ([]domain.CorpusPage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorpusLoad, err)
	}
	defer f.Close()
	return Decode(f)
}

// NewSource picks an HTTP source for http(s) locations and a file source otherwise.
func NewSource(location string, opts ...Option) Provider {
	if isURL(location) {
		return NewHTTPSource(location, opts...)
	}
	return FileSource{Path: location}
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
