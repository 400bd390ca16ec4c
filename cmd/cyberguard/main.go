package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/cyberguard-ng/cyberguard/internal/audit"
	"github.com/cyberguard-ng/cyberguard/internal/config"
	"github.com/cyberguard-ng/cyberguard/internal/report"
	"github.com/cyberguard-ng/cyberguard/internal/ruledb"
	"github.com/cyberguard-ng/cyberguard/internal/server"
)

func main() {
	// A local .env is optional; real env vars win.
	_ = godotenv.Load()

	addrFlag := flag.String("addr", "", "HTTP listen address (overrides config)")
	configPath := flag.String("config", "cyberguard.yaml", "path to config file")
	rulesFlag := flag.String("rules", "", "path to ruleset JSON (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "path", *configPath, "error", err)
		os.Exit(1)
	}
	if *addrFlag != "" {
		cfg.Server.Addr = *addrFlag
	}
	if *rulesFlag != "" {
		cfg.Rules.Path = *rulesFlag
	}
	if v := os.Getenv("CYBERGUARD_RULES"); v != "" && *rulesFlag == "" {
		cfg.Rules.Path = v
	}
	if err := config.Validate(cfg); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	log := newLogger(cfg.Logging.Level)
	slog.SetDefault(log)

	db, rulesPath, err := loadRules(cfg.Rules.Path)
	if err != nil {
		log.Error("failed to load ruleset", "path", cfg.Rules.Path, "error", err)
		os.Exit(1)
	}
	store := ruledb.NewStore(rulesPath, db)
	log.Info("ruleset loaded",
		"version", db.Version,
		"source", sourceLabel(rulesPath),
	)

	sinks, err := buildSinks(cfg.Audit.Sinks)
	if err != nil {
		log.Error("failed to build audit sinks", "error", err)
		os.Exit(1)
	}
	emitter := audit.NewEmitter(audit.EmitterConfig{
		QueueSize: cfg.Audit.QueueSize,
		Workers:   cfg.Audit.Workers,
	}, sinks, log)

	srv := server.New(server.Options{
		Log:        log,
		Rules:      store,
		Reports:    report.NewStore(),
		Emitter:    emitter,
		PreviewLen: cfg.Logging.PreviewLen,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Rules.Watch && rulesPath != "" {
		watcher, err := ruledb.NewWatcher(store, time.Duration(cfg.Rules.DebounceMS)*time.Millisecond)
		if err != nil {
			log.Error("failed to start ruleset watcher", "error", err)
			os.Exit(1)
		}
		go watcher.Run(ctx)
		log.Info("watching ruleset file", "path", rulesPath)
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start(cfg.Server.Addr) }()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown error", "error", err)
		}
		emitter.Close(shutdownCtx)
	}
}

// loadRules reads the configured ruleset, or falls back to the embedded
// bundle when no path is configured.
func loadRules(path string) (*ruledb.Database, string, error) {
	if strings.TrimSpace(path) == "" {
		db, err := ruledb.Default()
		return db, "", err
	}
	db, err := ruledb.Load(path)
	return db, path, err
}

func sourceLabel(path string) string {
	if path == "" {
		return "embedded"
	}
	return path
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func buildSinks(cfgs []config.SinkConfig) ([]audit.Sink, error) {
	sinks := make([]audit.Sink, 0, len(cfgs))
	for _, c := range cfgs {
		switch strings.ToLower(strings.TrimSpace(c.Type)) {
		case "stdout":
			sinks = append(sinks, audit.NewStdoutSink(nil))
		case "file_jsonl":
			s, err := audit.NewFileSink(c.Path)
			if err != nil {
				return nil, err
			}
			sinks = append(sinks, s)
		}
	}
	return sinks, nil
}
