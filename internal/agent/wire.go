package agent

import (
	"log/slog"

	"scout/internal/config"
	"scout/internal/history"
	"scout/internal/llm"
	"scout/internal/profile"
	"scout/internal/search"
)

// FromConfig wires a runner from the loaded config. The store is
// optional; passing nil disables archiving.
func FromConfig(cfg *config.Config, mode profile.Mode, store *history.Store) (Runner, error) {
	engine, err := llm.FromConfig(cfg)
	if err != nil {
		return nil, err
	}
	engine = llm.WithTrace(engine)

	resolver := profile.NewResolver(profile.Models{
		Cheapest: cfg.Models.Cheapest,
		Fast:     cfg.Models.Fast,
		Balanced: cfg.Models.Balanced,
		Deepest:  cfg.Models.Deepest,
	})

	opts := []RunnerOption{WithRoles(RolesFromConfig(cfg))}
	if store != nil {
		opts = append(opts, WithStore(store))
	}
	if key := cfg.Services.Brave.APIKey; key != "" {
		seeder, err := search.New(key)
		if err != nil {
			slog.Warn("brave search disabled", "error", err)
		} else {
			opts = append(opts, WithSeeder(seeder))
		}
	}

	return NewRunner(engine, resolver, mode, opts...), nil
}
