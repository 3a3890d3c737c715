package site

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"

	"docsearch/internal/corpus"
	"docsearch/internal/domain"
)

// Output file names
const (
	DefaultCorpusFile = "allData.json"
	ManifestFile      = "manifest.json"
)

// PageData is what every page template receives
type PageData struct {
	About    About
	Players  []Player
	Features []Feature
	Feature  Feature
	Related  []Feature
}

// ManifestEntry records one written file
type ManifestEntry struct {
	Path string `json:"path"`
	Hash string `json:"hash"`
	Size int    `json:"size"`
}

// Manifest lists everything a build wrote
type Manifest struct {
	Generated time.Time       `json:"generated"`
	Pages     []ManifestEntry `json:"pages"`
	Corpus    ManifestEntry   `json:"corpus"`
}

// Builder renders a static site and its search corpus
type Builder struct {
	Registry    *Registry
	OutDir      string
	CorpusFile  string // DefaultCorpusFile when empty
	Concurrency int    // GOMAXPROCS when zero
	Now         func() time.Time
	Logger      *slog.Logger
}

type renderJob struct {
	path     string
	template string
	data     PageData
	feature  bool
}

// Build renders every page, extracts the corpus from the feature pages and
// writes both plus a manifest to OutDir.
func (b *Builder) Build(ctx context.Context, data *Data) (*Manifest, error) {
	logger := b.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	now := b.Now
	if now == nil {
		now = time.Now
	}
	concurrency := b.Concurrency
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}
	corpusFile := b.CorpusFile
	if corpusFile == "" {
		corpusFile = DefaultCorpusFile
	}

	if err := os.MkdirAll(b.OutDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	jobs := b.jobs(data)
	rendered := make([][]byte, len(jobs))
	entries := make([]ManifestEntry, len(jobs))

	begin := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, job := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := b.Registry.Execute(&buf, job.template, job.data); err != nil {
				return err
			}
			out, err := b.write(job.path, buf.Bytes())
			if err != nil {
				return err
			}
			rendered[i] = buf.Bytes()
			entries[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	logger.Info("rendered pages", "count", len(jobs), "duration", time.Since(begin))

	var pages []domain.CorpusPage
	for i, job := range jobs {
		if !job.feature {
			continue
		}
		page, err := ExtractPage(job.path, bytes.NewReader(rendered[i]))
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}

	var corpusBuf bytes.Buffer
	if err := corpus.Encode(&corpusBuf, pages); err != nil {
		return nil, err
	}
	corpusEntry, err := b.write(corpusFile, corpusBuf.Bytes())
	if err != nil {
		return nil, err
	}
	logger.Info("wrote corpus", "path", corpusFile, "pages", len(pages))

	manifest := &Manifest{Generated: now().UTC(), Pages: entries, Corpus: corpusEntry}
	raw, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode manifest: %w", err)
	}
	if _, err := b.write(ManifestFile, raw); err != nil {
		return nil, err
	}
	return manifest, nil
}

func (b *Builder) jobs(data *Data) []renderJob {
	base := PageData{About: data.About, Players: data.Players, Features: data.Features}
	jobs := []renderJob{
		{path: PageIndex, template: PageIndex, data: base},
		{path: PageAbout, template: PageAbout, data: base},
		{path: PageFeatures, template: PageFeatures, data: base},
	}
	for _, f := range data.Features {
		pd := base
		pd.Feature = f
		pd.Related = data.related(f)
		jobs = append(jobs, renderJob{path: f.ID + ".html", template: PageFeature, data: pd, feature: true})
	}
	return jobs
}

func (b *Builder) write(name string, content []byte) (ManifestEntry, error) {
	if err := os.WriteFile(filepath.Join(b.OutDir, name), content, 0644); err != nil {
		return ManifestEntry{}, fmt.Errorf("failed to write %s: %w", name, err)
	}
	return ManifestEntry{Path: name, Hash: ContentHash(content), Size: len(content)}, nil
}

// ContentHash returns the xxhash of content as hex
func ContentHash(content []byte) string {
	return fmt.Sprintf("%x", xxhash.Sum64(content))
}
