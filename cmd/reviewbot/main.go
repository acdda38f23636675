package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/Graylog2/reviewbot/internal/adapter/actions"
	"github.com/Graylog2/reviewbot/internal/adapter/cli"
	"github.com/Graylog2/reviewbot/internal/adapter/eslint"
	"github.com/Graylog2/reviewbot/internal/adapter/git"
	"github.com/Graylog2/reviewbot/internal/adapter/store/sqlite"
	"github.com/Graylog2/reviewbot/internal/adapter/webhook"
	"github.com/Graylog2/reviewbot/internal/config"
	"github.com/Graylog2/reviewbot/internal/usecase/annotate"
	"github.com/Graylog2/reviewbot/internal/usecase/lint"
	"github.com/Graylog2/reviewbot/internal/version"
)

func main() {
	if err := run(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

func run() error {
	// Cancellable context with signal handling for graceful shutdown.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(config.LoaderOptions{
		ConfigPaths: defaultConfigPaths(),
		FileName:    "reviewbot",
		EnvPrefix:   "REVIEWBOT",
	})
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	engine := git.NewEngine(cfg.WorkingDirectory)
	runner := eslint.NewRunner(cfg.ESLint.Binary, filepath.Join(cfg.WorkingDirectory, cfg.Prefix), cfg.LintTimeout())

	summary, err := actions.NewSummaryWriter(cfg.SummaryPath())
	if err != nil {
		return err
	}
	reporter := actions.NewReporter(actions.DetectAnnotator(os.Stdout), summary)

	opts := []lint.Option{lint.WithStyle(annotate.Style(cfg.Annotations.Style))}
	var history cli.HistoryLister
	if cfg.Store.Enabled {
		if err := os.MkdirAll(filepath.Dir(cfg.Store.Path), 0o755); err != nil {
			log.Printf("warning: failed to create store directory: %v", err)
		} else if store, err := sqlite.NewStore(cfg.Store.Path); err != nil {
			log.Printf("warning: failed to initialize run store: %v", err)
		} else {
			defer store.Close()
			opts = append(opts, lint.WithRecorder(store))
			history = store
		}
	}

	pipeline := lint.NewPipeline(engine, runner, reporter, opts...)

	serve := func(ctx context.Context, addr string) error {
		handler := webhook.NewHandler(pipeline, cfg.Prefix, cfg.WorkingDirectory)
		return webhook.ListenAndServe(ctx, addr, handler)
	}

	root := cli.NewRootCommand(cli.Dependencies{
		Runner:                  pipeline,
		History:                 history,
		Serve:                   serve,
		DefaultPrefix:           cfg.Prefix,
		DefaultWorkingDirectory: cfg.WorkingDirectory,
		DefaultServerAddr:       cfg.Server.Addr,
		Version:                 version.Version(),
	})

	if err := root.ExecuteContext(ctx); err != nil {
		if errors.Is(err, cli.ErrVersionRequested) {
			return nil
		}
		return err
	}
	return nil
}

func defaultConfigPaths() []string {
	paths := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "reviewbot"))
	}
	return paths
}
