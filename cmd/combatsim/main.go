package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/combatclasses/internal/config"
	"github.com/udisondev/combatclasses/internal/db"
	"github.com/udisondev/combatclasses/internal/events"
	"github.com/udisondev/combatclasses/internal/game/combatclass"
	"github.com/udisondev/combatclasses/internal/scenario"
	"github.com/udisondev/combatclasses/internal/tick"
)

const AppConfigPath = "config/combatclasses.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := AppConfigPath
	if p := os.Getenv("COMBATCLASSES_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadApp(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := config.ApplyEnv(&cfg); err != nil {
		return fmt.Errorf("applying env overrides: %w", err)
	}

	logLevel := parseLogLevel(cfg.LogLevel)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))
	tick.EnableDebugLogging(logLevel == slog.LevelDebug)

	slog.Info("combat classes starting",
		"log_level", cfg.LogLevel,
		"settings", cfg.SettingsPath,
		"scenario", cfg.ScenarioPath)

	sc, err := scenario.Load(cfg.ScenarioPath)
	if err != nil {
		return fmt.Errorf("loading scenario: %w", err)
	}
	w, refs, err := sc.Build()
	if err != nil {
		return fmt.Errorf("building world: %w", err)
	}
	slog.Info("world built", "actors", w.ActorCount())

	store := config.NewStore(cfg.SettingsPath, w)
	if err := store.Load(); err != nil {
		return fmt.Errorf("loading settings %s: %w", store.Path(), err)
	}

	runCtx, stop := context.WithCancel(ctx)
	defer stop()
	g, gctx := errgroup.WithContext(runCtx)

	opts := []combatclass.Option{}
	var writer *db.JournalWriter
	if cfg.Journal.Enabled() {
		database, err := db.New(ctx, cfg.Journal.DSN)
		if err != nil {
			return fmt.Errorf("connecting to journal database: %w", err)
		}
		defer database.Close()

		version, err := db.RunMigrations(ctx, cfg.Journal.DSN)
		if err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		slog.Info("journal database ready", "schema_version", version)

		writer = db.NewJournalWriter(db.NewJournalRepository(database.Pool()),
			cfg.Journal.BufferSize, cfg.Journal.FlushInterval)
		opts = append(opts, combatclass.WithRecorder(writer))

		g.Go(func() error {
			return writer.Run(gctx)
		})
	}

	manager := combatclass.NewManager(w, store, opts...)
	adapter := events.NewAdapter(w, manager, store, nil)
	tickMgr := tick.NewTickManager(cfg.TickInterval, adapter.TickFunc)
	adapter.SetScheduler(tickMgr)
	slog.Info("tick manager ready", "interval", tickMgr.Interval())

	evCh := make(chan events.Event, 64)

	g.Go(func() error {
		if err := tickMgr.Start(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("tick manager: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		if err := adapter.Run(gctx, evCh); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("event adapter: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		emit := func(ev events.Event) {
			select {
			case evCh <- ev:
			case <-gctx.Done():
			}
		}
		player := scenario.NewPlayer(sc, w, refs, emit, scenario.RealtimeWait)
		err := player.Play(gctx)
		stop()
		if err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("scenario: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	slog.Info("combat classes stopped",
		"tracked", manager.TrackedCount(),
		"notifications", len(w.Notifications()),
		"knockbacks", len(w.Knockbacks()))
	if writer != nil && writer.Dropped() > 0 {
		slog.Warn("journal entries dropped", "count", writer.Dropped())
	}
	return nil
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
