package llm

import (
	"context"
	"fmt"

	"scout/internal/config"
)

// EventType identifies events surfaced while draining an engine run.
type EventType string

const (
	EventInit    EventType = "init"     // run accepted, session/model known
	EventText    EventType = "text"     // assistant text (delta or block)
	EventToolUse EventType = "tool_use" // the hosted loop invoked a tool
	EventResult  EventType = "result"   // terminal summary
	EventError   EventType = "error"
	EventDone    EventType = "done"
)

type Event struct {
	Type EventType `json:"type"`
	Data any       `json:"data"`
}

// Result is the terminal event payload of a run. Subtype is "success"
// or an error kind reported by the vendor loop (e.g. "error_max_turns",
// "error_during_execution").
type Result struct {
	Subtype    string  `json:"subtype"`
	IsError    bool    `json:"is_error"`
	SessionID  string  `json:"session_id"`
	Model      string  `json:"model"`
	NumTurns   int     `json:"num_turns"`
	CostUSD    float64 `json:"cost_usd"`
	DurationMs int64   `json:"duration_ms"`
	Text       string  `json:"text"`
}

// Invocation is everything handed to the vendor-hosted execution loop.
// The loop owns tool dispatch, retries, and inference; this side only
// drains the event stream it returns.
type Invocation struct {
	Prompt       string
	SystemPrompt string
	Model        string
	MaxTurns     int
	AllowedTools []string
}

// Engine is the boundary to one vendor agent backend. Run blocks until
// the stream is drained, emitting events along the way, and returns the
// terminal result. Cancelling ctx propagates to the vendor call.
type Engine interface {
	Run(ctx context.Context, inv Invocation, emit func(Event)) (*Result, error)
}

// FromConfig builds the configured default engine.
func FromConfig(cfg *config.Config) (Engine, error) {
	ec, ok := cfg.Engines[cfg.DefaultEngine]
	if !ok {
		return nil, fmt.Errorf("default engine %q not found in config", cfg.DefaultEngine)
	}
	switch ec.Type {
	case "claude", "":
		return NewClaude(ec.Binary), nil
	case "openai":
		return NewOpenAI(ec.BaseURL, ec.APIKey), nil
	}
	return nil, fmt.Errorf("unknown engine type %q", ec.Type)
}
