package agent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"scout/internal/llm"
	"scout/internal/profile"
	"scout/internal/search"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEngine records the invocation and plays back a scripted result.
type fakeEngine struct {
	gotInv llm.Invocation
	called bool
	result *llm.Result
	err    error
}

func (f *fakeEngine) Run(ctx context.Context, inv llm.Invocation, emit func(llm.Event)) (*llm.Result, error) {
	f.called = true
	f.gotInv = inv
	if f.err != nil {
		return nil, f.err
	}
	emit(llm.Event{Type: llm.EventInit, Data: map[string]string{"session_id": "s1"}})
	emit(llm.Event{Type: llm.EventText, Data: f.result.Text})
	emit(llm.Event{Type: llm.EventResult, Data: f.result})
	return f.result, nil
}

func successResult(text string) *llm.Result {
	return &llm.Result{Subtype: "success", NumTurns: 3, CostUSD: 0.01, Text: text}
}

func TestRunProductionPassesProfileThrough(t *testing.T) {
	engine := &fakeEngine{result: successResult("findings")}
	r := NewRunner(engine, profile.NewResolver(profile.Models{}), profile.ModeProduction)

	run, err := r.Run(context.Background(), "run-1", Request{
		Topic: "acme anvils",
		Depth: profile.DepthComprehensive,
	}, func(llm.Event) {})
	require.NoError(t, err)

	assert.Equal(t, profile.DefaultModels().Deepest, engine.gotInv.Model)
	assert.Equal(t, 40, engine.gotInv.MaxTurns)
	assert.Equal(t, []string{"WebSearch", "WebFetch"}, engine.gotInv.AllowedTools)
	assert.Contains(t, engine.gotInv.Prompt, "acme anvils")
	assert.NotEmpty(t, engine.gotInv.SystemPrompt)

	assert.Equal(t, "success", run.Status)
	assert.Contains(t, run.Report, "findings")
	assert.Equal(t, "comprehensive", run.Depth)
}

func TestRunDevelopmentModeDowngrades(t *testing.T) {
	engine := &fakeEngine{result: successResult("quick findings")}
	r := NewRunner(engine, profile.NewResolver(profile.Models{}), profile.ModeDevelopment)

	run, err := r.Run(context.Background(), "run-2", Request{
		Topic:  "acme anvils",
		Depth:  profile.DepthComprehensive,
		Format: profile.FormatExecutive,
	}, func(llm.Event) {})
	require.NoError(t, err)

	assert.Equal(t, profile.DefaultModels().Cheapest, engine.gotInv.Model)
	assert.Equal(t, 5, engine.gotInv.MaxTurns)
	assert.Equal(t, "quick", run.Depth)
	assert.Equal(t, "summary", run.Format)
}

func TestRunRejectsUnknownDepthBeforeEngine(t *testing.T) {
	engine := &fakeEngine{result: successResult("x")}
	r := NewRunner(engine, profile.NewResolver(profile.Models{}), profile.ModeProduction)

	_, err := r.Run(context.Background(), "run-3", Request{
		Topic: "acme",
		Depth: "extreme",
	}, func(llm.Event) {})
	require.Error(t, err)
	assert.ErrorIs(t, err, profile.ErrInvalidRequest)
	assert.False(t, engine.called, "no vendor call on invalid request")
}

func TestRunUnknownRole(t *testing.T) {
	engine := &fakeEngine{result: successResult("x")}
	r := NewRunner(engine, profile.NewResolver(profile.Models{}), profile.ModeProduction)

	_, err := r.Run(context.Background(), "run-4", Request{Topic: "acme", Role: "wizard"}, func(llm.Event) {})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown role")
	assert.False(t, engine.called)
}

func TestRunEngineErrorResultPassesThrough(t *testing.T) {
	engine := &fakeEngine{result: &llm.Result{Subtype: "error_max_turns", IsError: true, NumTurns: 10}}
	r := NewRunner(engine, profile.NewResolver(profile.Models{}), profile.ModeProduction)

	var errEvents int
	run, err := r.Run(context.Background(), "run-5", Request{Topic: "acme"}, func(ev llm.Event) {
		if ev.Type == llm.EventError {
			errEvents++
		}
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error_max_turns")
	require.NotNil(t, run)
	assert.Equal(t, "error_max_turns", run.Status)
	assert.Empty(t, run.Report)
	assert.Equal(t, 1, errEvents)
}

func TestRunEngineFailure(t *testing.T) {
	engine := &fakeEngine{err: errors.New("binary not found")}
	r := NewRunner(engine, profile.NewResolver(profile.Models{}), profile.ModeProduction)

	_, err := r.Run(context.Background(), "run-6", Request{Topic: "acme"}, func(llm.Event) {})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "binary not found")
}

func TestRunFallsBackToCollectedText(t *testing.T) {
	// Engines without a final result text (e.g. the openai engine when
	// only deltas streamed) still produce a report from collected text.
	r := NewRunner(&textOnlyEngine{}, profile.NewResolver(profile.Models{}), profile.ModeProduction)

	run, err := r.Run(context.Background(), "run-7", Request{Topic: "acme"}, func(llm.Event) {})
	require.NoError(t, err)
	assert.Contains(t, run.Report, "streamed body")
}

type textOnlyEngine struct{}

func (e *textOnlyEngine) Run(ctx context.Context, inv llm.Invocation, emit func(llm.Event)) (*llm.Result, error) {
	emit(llm.Event{Type: llm.EventText, Data: "streamed "})
	emit(llm.Event{Type: llm.EventText, Data: "body"})
	return &llm.Result{Subtype: "success", NumTurns: 1}, nil
}

type failingSeeder struct{}

func (failingSeeder) Seed(ctx context.Context, topic string, count int) ([]search.Source, error) {
	return nil, errors.New("brave search: 429 rate limited")
}

type fixedSeeder struct {
	sources []search.Source
}

func (s *fixedSeeder) Seed(ctx context.Context, topic string, count int) ([]search.Source, error) {
	return s.sources, nil
}

func TestRunSeederFailureDegradesToUnseededPrompt(t *testing.T) {
	engine := &fakeEngine{result: successResult("findings")}
	r := NewRunner(engine, profile.NewResolver(profile.Models{}), profile.ModeProduction,
		WithSeeder(failingSeeder{}))

	run, err := r.Run(context.Background(), "run-8", Request{Topic: "acme"}, func(llm.Event) {})
	require.NoError(t, err, "seeding failure must not abort the run")

	assert.NotContains(t, engine.gotInv.Prompt, "Candidate starting sources")
	assert.Equal(t, "success", run.Status)
	assert.NotContains(t, run.Report, "## Seed sources")
}

func TestRunSeededSourcesReachPromptAndReport(t *testing.T) {
	engine := &fakeEngine{result: successResult("findings")}
	seeder := &fixedSeeder{sources: []search.Source{
		{Title: "Acme homepage", URL: "https://acme.example"},
	}}
	r := NewRunner(engine, profile.NewResolver(profile.Models{}), profile.ModeProduction,
		WithSeeder(seeder))

	run, err := r.Run(context.Background(), "run-9", Request{Topic: "acme"}, func(llm.Event) {})
	require.NoError(t, err)

	assert.Contains(t, engine.gotInv.Prompt, "https://acme.example")
	assert.Contains(t, run.Report, "[Acme homepage](https://acme.example)")
}

func TestBuildPrompt(t *testing.T) {
	prof := profile.Profile{Depth: profile.DepthStandard, Format: profile.FormatDetailed}
	prompt := buildPrompt("acme", prof, nil)
	assert.True(t, strings.Contains(prompt, "Research task: acme"))
	assert.NotContains(t, prompt, "Candidate starting sources")

	prompt = buildPrompt("acme", prof, []search.Source{
		{Title: "Acme homepage", URL: "https://acme.example"},
	})
	assert.Contains(t, prompt, "Candidate starting sources")
	assert.Contains(t, prompt, "https://acme.example")
}
