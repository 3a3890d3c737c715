package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"docsearch/internal/corpus"
	"docsearch/internal/eventbus"
	"docsearch/internal/ui"
)

// Run executes the tui command.
func (c *TuiCmd) Run(deps *Dependencies) error {
	cfg := deps.Config
	if c.Corpus != "" {
		cfg.CorpusURL = c.Corpus
	}
	if c.Small {
		cfg.UISettings.Small = true
	}
	logger := deps.Logger

	// One shared load for every widget; a failure stays cached for the session
	provider := corpus.NewShared(corpus.NewSource(cfg.CorpusURL), logger)

	bus := eventbus.New(logger)
	model := ui.NewModel(ui.Options{
		Config:   cfg,
		Provider: provider,
		Bus:      bus,
		Logger:   logger,
		Context:  deps.Ctx,
	})
	defer model.Shutdown()

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(deps.Ctx),
	)

	if os.Getenv("DOCSEARCH_E2E_TEST") == "1" {
		fmt.Fprintln(deps.Stdout, "__READY__")
	}

	logger.Info("starting UI", "corpus", cfg.CorpusURL)
	if _, err := p.Run(); err != nil {
		logger.Error("error running program", "error", err)
		return fmt.Errorf("error running program: %w", err)
	}
	logger.Info("UI exited normally")
	return nil
}
