// Package cli holds the wiring shared by the run-producing commands:
// load config, resolve the runtime mode once, open the archive, build
// the runner, stream events to the terminal, and write the report.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"scout/internal/agent"
	"scout/internal/config"
	"scout/internal/db"
	"scout/internal/history"
	"scout/internal/llm"
	"scout/internal/profile"
	"scout/internal/trace"

	"github.com/google/uuid"
)

// Env wires the pieces every command needs.
type Env struct {
	Cfg   *config.Config
	Mode  profile.Mode
	Store *history.Store

	closers []func()
}

// Setup loads config, parses SCOUT_MODE once, initializes tracing when
// enabled, and opens the run archive.
func Setup(ctx context.Context) (*Env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	mode, err := profile.ParseMode(os.Getenv("SCOUT_MODE"))
	if err != nil {
		return nil, err
	}
	if mode == profile.ModeDevelopment {
		slog.Info("development mode: runs are downgraded to the cheapest profile")
	}

	env := &Env{Cfg: cfg, Mode: mode}

	if cfg.Trace.Enabled {
		shutdown, err := trace.Init(ctx, trace.Config{
			Endpoint: cfg.Trace.Endpoint,
			URLPath:  cfg.Trace.URLPath,
			APIKey:   cfg.Trace.APIKey,
		})
		if err != nil {
			return nil, fmt.Errorf("initializing tracing: %w", err)
		}
		env.closers = append(env.closers, func() {
			if err := shutdown(context.Background()); err != nil {
				slog.Warn("trace shutdown failed", "error", err)
			}
		})
	}

	database, err := db.Open(cfg.DB.Path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := database.Migrate(); err != nil {
		database.Close()
		return nil, fmt.Errorf("migrating database: %w", err)
	}
	env.closers = append(env.closers, func() { database.Close() })
	env.Store = history.NewStore(database)

	return env, nil
}

func (e *Env) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		e.closers[i]()
	}
}

// RunAndRender executes one run, streaming progress to stderr and the
// report to stdout (or outPath when given).
func RunAndRender(ctx context.Context, env *Env, req agent.Request, outPath string) error {
	runner, err := agent.FromConfig(env.Cfg, env.Mode, env.Store)
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	run, err := runner.Run(ctx, runID, req, func(ev llm.Event) {
		switch ev.Type {
		case llm.EventInit:
			slog.Info("run accepted", "run_id", runID)
		case llm.EventToolUse:
			fmt.Fprintf(os.Stderr, "· %v\n", ev.Data)
		case llm.EventText:
			if s, ok := ev.Data.(string); ok {
				fmt.Fprint(os.Stderr, s)
			}
		case llm.EventResult:
			fmt.Fprintln(os.Stderr)
		}
	})
	if err != nil {
		return err
	}

	if outPath != "" {
		if err := os.WriteFile(outPath, []byte(run.Report), 0o644); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		fmt.Printf("report written to %s (run %s)\n", outPath, run.ID)
		return nil
	}

	fmt.Println(run.Report)
	return nil
}
