// Package main is the yoyak CLI entry point.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/pinchlab/yoyak/internal/cli"
	"github.com/pinchlab/yoyak/internal/config"
	"github.com/pinchlab/yoyak/internal/diff"
	"github.com/pinchlab/yoyak/internal/docstore"
	"github.com/pinchlab/yoyak/internal/extract"
	"github.com/pinchlab/yoyak/internal/levels"
	"github.com/pinchlab/yoyak/internal/models"
	"github.com/pinchlab/yoyak/internal/priority"
	"github.com/pinchlab/yoyak/internal/server"
	"github.com/pinchlab/yoyak/internal/textstruct"
	"github.com/pinchlab/yoyak/internal/tfidf"
	"github.com/pinchlab/yoyak/internal/watcher"
	"github.com/pinchlab/yoyak/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/yoyak/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists
// it is used, so that "yoyak server" from the project dir uses the project's
// config. Returns the config and the path that was actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// buildProvider assembles the level provider chain for the configured mode.
// The local reducer always terminates the chain so a level request can
// succeed without external services.
func buildProvider(cfg *config.Config) levels.Provider {
	reducer := levels.NewReducerProvider(textstruct.NewStructurer(), tfidf.NewEngine())
	switch cfg.Provider.Mode {
	case "files":
		return levels.NewFallbackProvider(levels.NewFileProvider(cfg.Provider.Dir), reducer)
	case "http":
		timeout := time.Duration(cfg.Provider.TimeoutSeconds) * time.Second
		return levels.NewFallbackProvider(levels.NewHTTPProvider(cfg.Provider.URL, timeout), reducer)
	default:
		return reducer
	}
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "structure":
		runStructure()
	case "diff":
		runDiff()
	case "reduce":
		runReduce()
	case "levels":
		runLevels()
	case "version", "--version", "-v":
		fmt.Printf("yoyak version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (directory changes, level fetches, etc.)")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.String("provider_mode", cfg.Provider.Mode),
		zap.Bool("debug", debugMode),
	)

	provider := buildProvider(cfg)
	store := docstore.New(provider, levels.NewCache(), logger)

	var watchSvc *watcher.Watcher
	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	if len(cfg.Documents.Directories) > 0 {
		watchOpts := []watcher.Option{}
		if debugMode {
			watchOpts = append(watchOpts, watcher.WithLogger(logger))
		}
		watchSvc = watcher.New(
			cfg.Documents.Directories,
			cfg.Documents.Extensions,
			cfg.Documents.RecursiveOrDefault(),
			func(path string) {
				if _, err := store.AddFile(path); err != nil {
					logger.Warn("ingest failed", zap.String("path", path), zap.Error(err))
				}
			},
			func(path string) {
				if err := store.RemovePath(path); err != nil {
					logger.Warn("remove by path failed", zap.String("path", path), zap.Error(err))
				}
			},
			watchOpts...,
		)
		if err := watchSvc.Start(watchCtx); err != nil {
			logger.Fatal("Failed to start watcher", zap.Error(err))
		}
		watchSvc.SyncExistingFiles()
	}

	srv := server.NewServer(store, provider, watchSvc, cfg, resolvedConfigPath, logger)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	watchCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

// readText reads the text for an offline command: "-" means stdin, anything
// else is a document file whose text is extracted by format.
func readText(arg string) (string, error) {
	if arg == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	return extract.NewExtractor().Extract(arg)
}

func runStructure() {
	fs := flag.NewFlagSet("structure", flag.ExitOnError)
	outputFormat := fs.String("output", "text", "output format: text or json")
	keywords := fs.Int("keywords", 10, "number of keywords to print")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: yoyak structure [flags] <file|->")
		os.Exit(1)
	}
	text, err := readText(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Read failed: %v\n", err)
		os.Exit(1)
	}

	format, err := cli.ParseOutputFormat(*outputFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	st := textstruct.NewStructurer().Structure(text)
	scores := tfidf.NewEngine().Score(st)
	scores.Annotate(st.Words)
	priority.NewCalculator().Score(st.Words)

	if format == cli.OutputJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(map[string]interface{}{
			"words":           st.Words,
			"paragraph_count": st.ParagraphCount,
			"sentence_count":  st.SentenceCount,
			"keywords":        scores.TopN(*keywords),
		}); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Printf("words:      %d\n", len(st.Words))
	fmt.Printf("sentences:  %d\n", st.SentenceCount)
	fmt.Printf("paragraphs: %d\n", st.ParagraphCount)
	fmt.Println("keywords:")
	for _, kw := range scores.TopN(*keywords) {
		fmt.Printf("  %-20s %.4f\n", kw.Term, kw.Score)
	}
}

func runDiff() {
	fs := flag.NewFlagSet("diff", flag.ExitOnError)
	detailed := fs.Bool("detailed", false, "detect morphed word pairs (slower)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 2 {
		fmt.Println("Usage: yoyak diff [flags] <from-file> <to-file>")
		os.Exit(1)
	}
	fromText, err := readText(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Read failed: %v\n", err)
		os.Exit(1)
	}
	toText, err := readText(fs.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Read failed: %v\n", err)
		os.Exit(1)
	}

	format, err := cli.ParseOutputFormat(*outputFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	engine := diff.NewEngine()
	var d *models.TransitionDiff
	if *detailed {
		d = engine.DiffDetailed(fromText, toText)
	} else {
		d = engine.Diff(fromText, toText)
	}
	projected := diff.ProjectDiff(d, diff.Tokenize(fromText), diff.Tokenize(toText))
	if err := cli.WriteDiff(os.Stdout, d, projected, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func runReduce() {
	fs := flag.NewFlagSet("reduce", flag.ExitOnError)
	rate := fs.Float64("rate", 0.5, "word retention rate in (0,1]")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: yoyak reduce [flags] <file|->")
		os.Exit(1)
	}
	if *rate <= 0 || *rate > 1 {
		fmt.Fprintln(os.Stderr, "rate must be in (0,1]")
		os.Exit(1)
	}
	text, err := readText(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Read failed: %v\n", err)
		os.Exit(1)
	}
	reducer := levels.NewReducerProvider(textstruct.NewStructurer(), tfidf.NewEngine())
	fmt.Println(reducer.Reduce(text, *rate))
}

func runLevels() {
	fs := flag.NewFlagSet("levels", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	level := fs.Int("level", -1, "detail level 0-3 (default: all levels)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: yoyak levels [flags] <file|->")
		os.Exit(1)
	}
	if *level >= 0 && !models.ValidLevel(*level) {
		fmt.Fprintf(os.Stderr, "level must be between %d and %d\n", models.MinLevel, models.MaxLevel)
		os.Exit(1)
	}
	text, err := readText(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Read failed: %v\n", err)
		os.Exit(1)
	}

	format, err := cli.ParseOutputFormat(*outputFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	provider := buildProvider(cfg)

	want := []int{models.MinLevel, 1, 2, models.MaxLevel}
	if *level >= 0 {
		want = []int{*level}
	}
	ctx := context.Background()
	lvs := make([]*models.TextLevel, 0, len(want))
	for _, l := range want {
		lv, err := provider.Fetch(ctx, l, text)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Level %d failed: %v\n", l, err)
			os.Exit(1)
		}
		lvs = append(lvs, lv)
	}
	if err := cli.WriteLevels(os.Stdout, lvs, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`yoyak - progressive text summarization with pinch-to-zoom levels

Usage:
  yoyak server [flags]                 Start the HTTP server
  yoyak structure [flags] <file|->     Score a text (structure, TF-IDF, priority)
  yoyak diff [flags] <from> <to>       Word-level transition diff between two texts
  yoyak reduce [flags] <file|->        Drop low-priority words to a retention rate
  yoyak levels [flags] <file|->        Produce the detail variants of a text
  yoyak version                        Show version
  yoyak help                           Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/yoyak/config.yaml)
  --debug            Enable debug logging (directory changes, level fetches, etc.)

Structure Flags:
  --output string    Output format: text or json (default: text)
  --keywords int     Number of keywords to print (default: 10)

Diff Flags:
  --detailed         Detect morphed word pairs (slower)
  --output string    Output format: text or json (default: text)

Reduce Flags:
  --rate float       Word retention rate in (0,1] (default: 0.5)

Levels Flags:
  --config string    Config file path (provider mode is taken from it)
  --level int        Single detail level 0-3 (default: all four)
  --output string    Output format: text or json (default: text)

Examples:
  yoyak server
  yoyak structure essay.txt
  yoyak structure --output json essay.txt
  yoyak diff original.txt summary.txt
  yoyak reduce --rate 0.4 essay.txt
  yoyak levels --level 2 essay.txt
  cat essay.txt | yoyak levels -`)
}
