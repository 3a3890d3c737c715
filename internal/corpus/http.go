package corpus

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"docsearch/internal/domain"
)

// DefaultFetchTimeout is the default timeout for the corpus request.
const DefaultFetchTimeout = 10 * time.Second

// Ensure HTTPSource implements Provider at compile time.
var _ Provider = (*HTTPSource)(nil)

// HTTPSource fetches the corpus with a single GET of a JSON document.
type HTTPSource struct {
	url     string
	client  *http.Client
	timeout time.Duration
}

// Option configures an HTTPSource.
type Option func(*HTTPSource)

// WithTimeout sets the timeout for the request.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(s *HTTPSource) {
		s.timeout = d
	}
}

// WithClient replaces the HTTP client. The timeout option is ignored.
func WithClient(c *http.Client) Option {
	return func(s *HTTPSource) {
		s.client = c
	}
}

// NewHTTPSource creates a source for the corpus document at url.
func NewHTTPSource(url string, opts ...Option) *HTTPSource {
	s := &HTTPSource{
		url:     url,
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.client == nil {
		s.client = &http.Client{Timeout: s.timeout}
	}
	return s
}

// Pages fetches and decodes the corpus.
func (s *HTTPSource) Pages(ctx context.Context) ([]domain.CorpusPage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorpusLoad, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorpusLoad, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: HTTP %d for %s", ErrCorpusLoad, resp.StatusCode, s.url)
	}

	return Decode(resp.Body)
}
