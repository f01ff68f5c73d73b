package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"scout/internal/history"
	"scout/internal/llm"
	"scout/internal/profile"
	"scout/internal/report"
	"scout/internal/search"
	"scout/internal/trace"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// Seed source counts per depth.
var seedCounts = map[profile.Depth]int{
	profile.DepthQuick:         3,
	profile.DepthStandard:      5,
	profile.DepthComprehensive: 8,
}

// Seeder finds candidate starting sources for a topic before the
// vendor run. *search.Client is the production implementation.
type Seeder interface {
	Seed(ctx context.Context, topic string, count int) ([]search.Source, error)
}

type RunnerOption func(*ResearchRunner)

// WithStore enables archiving finished runs.
func WithStore(s *history.Store) RunnerOption {
	return func(r *ResearchRunner) { r.store = s }
}

// WithSeeder enables pre-flight source seeding.
func WithSeeder(s Seeder) RunnerOption {
	return func(r *ResearchRunner) { r.seeder = s }
}

// WithRoles replaces the built-in role set.
func WithRoles(roles map[string]*Role) RunnerOption {
	return func(r *ResearchRunner) { r.roles = roles }
}

// ResearchRunner runs one research task end to end: resolve the
// execution profile, build the prompt, hand the invocation to the
// vendor engine, drain its stream, and render and archive the report.
// All of the actual agent work happens inside the engine.
type ResearchRunner struct {
	engine   llm.Engine
	resolver *profile.Resolver
	mode     profile.Mode
	roles    map[string]*Role
	store    *history.Store
	seeder   Seeder
}

func NewRunner(engine llm.Engine, resolver *profile.Resolver, mode profile.Mode, opts ...RunnerOption) *ResearchRunner {
	r := &ResearchRunner{
		engine:   engine,
		resolver: resolver,
		mode:     mode,
		roles:    BuiltinRoles(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *ResearchRunner) Run(ctx context.Context, runID string, req Request, emit func(llm.Event)) (*history.Run, error) {
	roleName := req.Role
	if roleName == "" {
		roleName = "research"
	}
	role, ok := r.roles[roleName]
	if !ok {
		return nil, fmt.Errorf("unknown role: %s", roleName)
	}

	// Empty depth/format mean "not requested": fill from the role
	// default before resolving. Non-empty unknown values still fail
	// closed inside Resolve.
	preq := profile.Request{Depth: req.Depth, Format: req.Format}
	if preq.Depth == "" {
		preq.Depth = role.Depth
	}
	if preq.Format == "" {
		preq.Format = profile.FormatDetailed
	}

	prof, err := r.resolver.Resolve(preq, r.mode)
	if err != nil {
		return nil, err
	}

	ctx, span := trace.Tracer().Start(ctx, "agent.run",
		oteltrace.WithAttributes(
			attribute.String("run.id", runID),
			attribute.String("run.role", roleName),
			attribute.String("run.topic", truncateAttr(req.Topic)),
			attribute.String("run.depth", string(prof.Depth)),
			attribute.String("run.mode", string(r.mode)),
			attribute.String("run.model", prof.Model),
		),
	)
	defer span.End()

	slog.Info("run started", "run_id", runID, "role", roleName,
		"depth", prof.Depth, "model", prof.Model, "max_turns", prof.MaxTurns)

	var sources []search.Source
	if r.seeder != nil {
		sources, err = r.seeder.Seed(ctx, req.Topic, seedCounts[prof.Depth])
		if err != nil {
			// Seeding is best effort; the loop searches on its own.
			slog.Warn("source seeding failed", "run_id", runID, "error", err)
			sources = nil
		}
	}

	inv := llm.Invocation{
		Prompt:       buildPrompt(req.Topic, prof, sources),
		SystemPrompt: role.SystemPrompt,
		Model:        prof.Model,
		MaxTurns:     prof.MaxTurns,
		AllowedTools: role.Tools,
	}

	// Accumulate assistant text as a fallback for engines whose result
	// omits the final text.
	var collected strings.Builder
	res, err := r.engine.Run(ctx, inv, func(ev llm.Event) {
		if ev.Type == llm.EventText {
			if s, ok := ev.Data.(string); ok {
				collected.WriteString(s)
			}
		}
		emit(ev)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		emit(llm.Event{Type: llm.EventError, Data: err.Error()})
		return nil, err
	}

	text := res.Text
	if text == "" {
		text = collected.String()
	}

	run := &history.Run{
		ID:        runID,
		Role:      roleName,
		Topic:     req.Topic,
		Depth:     string(prof.Depth),
		Format:    string(prof.Format),
		Model:     prof.Model,
		MaxTurns:  prof.MaxTurns,
		Status:    res.Subtype,
		NumTurns:  res.NumTurns,
		CostUSD:   res.CostUSD,
		CreatedAt: time.Now().UTC(),
	}

	if res.IsError {
		run.Error = res.Subtype
		r.persist(ctx, run)
		span.SetStatus(codes.Error, res.Subtype)
		emit(llm.Event{Type: llm.EventError, Data: res.Subtype})
		return run, fmt.Errorf("agent run failed: %s", res.Subtype)
	}

	run.Report = report.Render(report.Input{
		RunID:       runID,
		Topic:       req.Topic,
		Role:        roleName,
		Profile:     prof,
		Sources:     sources,
		Text:        text,
		NumTurns:    res.NumTurns,
		CostUSD:     res.CostUSD,
		GeneratedAt: run.CreatedAt,
	})
	r.persist(ctx, run)

	slog.Info("run finished", "run_id", runID, "turns", res.NumTurns, "cost_usd", res.CostUSD)
	emit(llm.Event{Type: llm.EventDone})
	return run, nil
}

func (r *ResearchRunner) persist(ctx context.Context, run *history.Run) {
	if r.store == nil {
		return
	}
	if err := r.store.SaveRun(ctx, run); err != nil {
		slog.Warn("failed to archive run", "run_id", run.ID, "error", err)
	}
}

func truncateAttr(s string) string {
	if len(s) > 200 {
		return s[:200]
	}
	return s
}
