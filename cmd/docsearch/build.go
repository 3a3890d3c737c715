package main

import (
	"errors"
	"fmt"
	"time"

	"docsearch/internal/site"
)

// Run executes the build command.
func (c *BuildCmd) Run(deps *Dependencies) error {
	cfg := deps.Config.Site
	dataFile := cfg.DataFile
	if c.Data != "" {
		dataFile = c.Data
	}
	if dataFile == "" {
		return errors.New("no feature data: pass --data or set site.data_file")
	}
	outDir := cfg.OutDir
	if c.Out != "" {
		outDir = c.Out
	}

	data, err := site.LoadData(dataFile)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}

	reg, err := site.NewRegistry(time.Now)
	if err != nil {
		return err
	}

	b := &site.Builder{
		Registry:    reg,
		OutDir:      outDir,
		CorpusFile:  cfg.CorpusFile,
		Concurrency: c.Concurrency,
		Logger:      deps.Logger,
	}
	manifest, err := b.Build(deps.Ctx, data)
	if err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Built %d pages into %s\n", len(manifest.Pages), outDir)
	fmt.Fprintf(deps.Stdout, "Corpus: %s (%d features, hash %s)\n", manifest.Corpus.Path, len(data.Features), manifest.Corpus.Hash)
	return nil
}
