package main

import (
	"fmt"

	"docsearch/internal/server"
)

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	cfg := deps.Config
	opts := server.Options{
		Addr:       cfg.Server.Addr,
		Dir:        cfg.Server.Dir,
		CorpusFile: cfg.Site.CorpusFile,
		Logger:     deps.Logger,
	}
	if c.Addr != "" {
		opts.Addr = c.Addr
	}
	if c.Dir != "" {
		opts.Dir = c.Dir
	}

	fmt.Fprintf(deps.Stdout, "Serving %s on %s\n", opts.Dir, opts.Addr)
	return server.Run(deps.Ctx, opts)
}
