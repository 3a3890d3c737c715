package main

import (
	"context"
	"io"
	"log/slog"

	"docsearch/internal/config"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Config *config.Config
	Logger *slog.Logger
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config string `short:"c" type:"path" help:"Config file (defaults to the user config directory)"`

	Tui   TuiCmd   `cmd:"" default:"1" help:"Interactive search (default)"`
	Query QueryCmd `cmd:"" help:"Run one search and print the results"`
	Build BuildCmd `cmd:"" help:"Render the site and its search corpus"`
	Serve ServeCmd `cmd:"" help:"Serve a built site"`
}

// TuiCmd is the "tui" subcommand.
type TuiCmd struct {
	Corpus string `help:"Corpus URL or path (overrides corpus_url)"`
	Small  bool   `help:"Compact layout"`
}

// QueryCmd is the "query" subcommand.
type QueryCmd struct {
	Query  string `arg:"" help:"Search text"`
	Corpus string `help:"Corpus URL or path (overrides corpus_url)"`
	Format string `short:"f" enum:"text,html,json" default:"text" help:"Output format (text, html, json)"`
}

// BuildCmd is the "build" subcommand.
type BuildCmd struct {
	Data        string `short:"d" type:"path" help:"Feature data YAML (overrides site.data_file)"`
	Out         string `short:"o" type:"path" help:"Output directory (overrides site.out_dir)"`
	Concurrency int    `help:"Concurrent page renders (0 for one per CPU)"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Dir  string `type:"path" help:"Site directory (overrides server.dir)"`
	Addr string `help:"Listen address (overrides server.addr)"`
}
