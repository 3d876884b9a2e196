// Package main is the entry point for the mathdown editor.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/dshills/mathdown/internal/config"
	"github.com/dshills/mathdown/internal/store"
	"github.com/dshills/mathdown/internal/tui"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath  string
		docKey      string
		importPath  string
		exportPath  string
		showVersion bool
	)
	flag.StringVar(&configPath, "config", "", "Path to configuration file")
	flag.StringVar(&configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&docKey, "doc", "", "Document key to open")
	flag.StringVar(&importPath, "import", "", "Replace the document with this file's content")
	flag.StringVar(&exportPath, "export", "", "Markdown file the export shortcut writes to")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Mathdown - markdown editor with live math widgets\n\n")
		fmt.Fprintf(os.Stderr, "Usage: mathdown [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  mathdown                       Open the default document\n")
		fmt.Fprintf(os.Stderr, "  mathdown -doc thesis           Open a named document\n")
		fmt.Fprintf(os.Stderr, "  mathdown -import notes.docx    Import a file first\n")
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("Mathdown %s (%s)\n", version, commit)
		return 0
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if docKey != "" {
		cfg.Document.Key = docKey
	}
	configureLogging(cfg.Logging)

	st, err := openStore(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer st.Close()

	app, err := tui.New(tui.Options{
		Config:     cfg,
		Store:      st,
		ConfigPath: configPath,
		ImportPath: importPath,
		ExportPath: exportPath,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	if err := app.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func openStore(cfg config.Config) (store.Store, error) {
	path := cfg.Store.Path
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			dir = "."
		}
		base := filepath.Join(dir, "mathdown")
		if err := os.MkdirAll(base, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		if cfg.Store.Backend == config.BackendSQLite {
			path = filepath.Join(base, "documents.db")
		} else {
			path = filepath.Join(base, "documents.json")
		}
	}

	switch cfg.Store.Backend {
	case config.BackendSQLite:
		return store.NewSQLiteStore(path)
	default:
		return store.NewJSONStore(path), nil
	}
}

func configureLogging(lc config.LoggingConfig) {
	verbosity := 0
	switch lc.Level {
	case "debug":
		verbosity = 2
	case "info":
		verbosity = 1
	}
	var path *string
	if lc.Path != "" {
		path = &lc.Path
	}
	commonlog.Configure(verbosity, path)
}
