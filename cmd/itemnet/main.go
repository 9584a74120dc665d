// SPDX-License-Identifier: MIT

// Command itemnet runs the content-validity pipeline on one item file and
// writes the reports.
//
// Usage:
//
//	itemnet -input items.yaml [-config itemnet.yaml] [-exclude 3,7] [flags]
//
// Settings come from the config file, .env, ITEMNET_* variables and flags,
// in increasing precedence.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/katalvlaran/itemnet/config"
	"github.com/katalvlaran/itemnet/internal/logger"
	"github.com/katalvlaran/itemnet/internal/tracing"
	"github.com/katalvlaran/itemnet/pipeline"
	"github.com/katalvlaran/itemnet/report"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// Exit codes.
const (
	exitOK     = 0
	exitRun    = 1
	exitConfig = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := parse(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintf(stderr, "itemnet: %v\n", err)
		return exitConfig
	}

	log, err := logger.New(cfg.Log.Mode, cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(stderr, "itemnet: %v\n", err)
		return exitConfig
	}
	defer func() { _ = log.Sync() }()
	log.Info("starting",
		zap.String("version", version),
		zap.String("input", cfg.Input),
		zap.String("provider", cfg.Embedding.Provider),
		logger.Secret("api_key", cfg.Embedding.APIKey),
		zap.String("cache", cfg.Cache.Kind),
	)

	shutdown, err := tracing.Setup(cfg.Trace.File, version, log)
	if err != nil {
		fail(stderr, err)
		return exitConfig
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(sctx); err != nil {
			log.Warn("tracing shutdown failed", zap.Error(err))
		}
	}()

	provider, closeProvider, err := cfg.OpenProvider(ctx, log)
	if err != nil {
		fail(stderr, pipeline.NewStageError(pipeline.StageEmbed, pipeline.ErrEmbedding, err))
		return exitRun
	}
	defer func() {
		if err := closeProvider(); err != nil {
			log.Warn("closing embedding provider", zap.Error(err))
		}
	}()

	res, err := cfg.Runner(provider, log).RunFile(ctx, cfg.Input, cfg.Exclude)
	if err != nil {
		fail(stderr, err)
		return exitRun
	}

	if err = emit(cfg.Report.Text, stdout, func(w io.Writer) error { return report.WriteText(w, res) }); err != nil {
		fail(stderr, fmt.Errorf("text report: %w", err))
		return exitRun
	}
	if err = emit(cfg.Report.YAML, stdout, func(w io.Writer) error { return report.WriteYAML(w, res) }); err != nil {
		fail(stderr, fmt.Errorf("yaml report: %w", err))
		return exitRun
	}
	if res.Centrality == nil && cfg.Report.Plot != "" {
		log.Warn("centrality plot skipped", zap.String("reason", res.CentralitySkipped))
	} else if err = emit(cfg.Report.Plot, stdout, func(w io.Writer) error { return report.PlotCentrality(w, res) }); err != nil {
		fail(stderr, fmt.Errorf("centrality plot: %w", err))
		return exitRun
	}
	return exitOK
}

// parse loads the configuration and applies the flags that were given.
func parse(args []string, stderr io.Writer) (*config.Config, error) {
	fs := flag.NewFlagSet("itemnet", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		cfgPath   = fs.String("config", "", "YAML configuration file")
		envFile   = fs.String("env", ".env", "dotenv file; missing files are ignored")
		input     = fs.String("input", "", "item file (YAML or JSON)")
		exclude   = fs.String("exclude", "", "comma-separated 0-based item positions to drop")
		threshold = fs.Float64("threshold", 0, "minimum stability score of a kept item")
		resamples = fs.Int("resamples", 0, "bootstrap resamples per stability assessment")
		maxIter   = fs.Int("max-iterations", 0, "iteration cap")
		seed      = fs.Uint64("seed", 0, "random seed")
		workers   = fs.Int("workers", 0, "bootstrap workers (0 = one per CPU)")
		provider  = fs.String("provider", "", "embedding provider: openai, command or hashing")
		model     = fs.String("model", "", "embedding model")
		textOut   = fs.String("text", "", `text report path ("-" = stdout)`)
		yamlOut   = fs.String("yaml", "", `YAML report path ("-" = stdout)`)
		plotOut   = fs.String("plot", "", "centrality plot PNG path")
		logMode   = fs.String("log", "", "log mode: dev, prod or quiet")
		traceFile = fs.String("trace", "", "write spans to this file")
	)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg, err := config.Load(*cfgPath, *envFile)
	if err != nil {
		return nil, err
	}
	var ferr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			cfg.Input = *input
		case "exclude":
			if cfg.Exclude, err = config.ParseIntList(*exclude); err != nil {
				ferr = fmt.Errorf("-exclude: %w", err)
			}
		case "threshold":
			cfg.Threshold = *threshold
		case "resamples":
			cfg.Resamples = *resamples
		case "max-iterations":
			cfg.MaxIterations = *maxIter
		case "seed":
			cfg.Seed = *seed
		case "workers":
			cfg.Workers = *workers
		case "provider":
			cfg.Embedding.Provider = *provider
		case "model":
			cfg.Embedding.Model = *model
		case "text":
			cfg.Report.Text = *textOut
		case "yaml":
			cfg.Report.YAML = *yamlOut
		case "plot":
			cfg.Report.Plot = *plotOut
		case "log":
			cfg.Log.Mode = *logMode
		case "trace":
			cfg.Trace.File = *traceFile
		}
	})
	if ferr != nil {
		return nil, ferr
	}
	if cfg.Input == "" {
		return nil, errors.New("no input file (-input or input:)")
	}
	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// fail prints a fatal error, naming the pipeline stage when there is one.
func fail(stderr io.Writer, err error) {
	var se *pipeline.StageError
	if errors.As(err, &se) {
		fmt.Fprintf(stderr, "itemnet: %s stage failed: %v\n", se.Stage, se.Err)
		return
	}
	fmt.Fprintf(stderr, "itemnet: %v\n", err)
}

// emit writes to stdout for "-", to a new file for a path, and nowhere for "".
func emit(path string, stdout io.Writer, write func(io.Writer) error) error {
	switch path {
	case "":
		return nil
	case "-":
		return write(stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
