// Package server hosts a built site and its search corpus.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Options configures the site server
type Options struct {
	Addr       string
	Dir        string
	CorpusFile string // allData.json when empty
	Logger     *slog.Logger
}

// Run serves until ctx is cancelled
func Run(ctx context.Context, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	srv := &http.Server{
		Addr:              opts.Addr,
		Handler:           NewRouter(opts),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server started", "addr", opts.Addr, "dir", opts.Dir)
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("listen and serve: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown server: %w", err)
		}
		logger.Info("server stopped")
		return nil
	case err := <-errCh:
		return err
	}
}

// NewRouter builds the handler tree: the corpus with validators, then the
// static site.
func NewRouter(opts Options) http.Handler {
	name := opts.CorpusFile
	if name == "" {
		name = "allData.json"
	}
	corpus := &corpusHandler{path: filepath.Join(opts.Dir, name)}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.CleanPath)

	r.Get("/healthz", healthzHandler)
	r.Get("/"+name, corpus.ServeHTTP)
	r.Head("/"+name, corpus.ServeHTTP)
	r.Handle("/*", http.FileServer(http.Dir(opts.Dir)))

	return r
}

func healthzHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok\n")
}

// corpusHandler serves the corpus with an ETag so widgets re-fetching it get 304s.
// The file is re-read only when its modification time or size changes.
type corpusHandler struct {
	path string

	mu      sync.Mutex
	modTime time.Time
	size    int64
	body    []byte
	etag    string
}

func (h *corpusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, etag, err := h.load()
	if errors.Is(err, os.ErrNotExist) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, "corpus unavailable", http.StatusInternalServerError)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")
	if match := r.Header.Get("If-None-Match"); match != "" && match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", fmt.Sprint(len(body)))
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(body)
}

func (h *corpusHandler) load() ([]byte, string, error) {
	info, err := os.Stat(h.path)
	if err != nil {
		return nil, "", err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.body != nil && info.ModTime().Equal(h.modTime) && info.Size() == h.size {
		return h.body, h.etag, nil
	}

	body, err := os.ReadFile(h.path)
	if err != nil {
		return nil, "", err
	}
	h.body = body
	h.modTime = info.ModTime()
	h.size = info.Size()
	h.etag = fmt.Sprintf(`"%x"`, xxhash.Sum64(body))
	return h.body, h.etag, nil
}
