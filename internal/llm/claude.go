package llm

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
)

// ClaudeEngine drives the Claude agent CLI as a subprocess in
// stream-json mode. The three-beat loop, tool execution, and retries
// all happen inside the CLI; this side builds the argument list and
// decodes the newline-delimited event stream from stdout.
type ClaudeEngine struct {
	binary string
}

func NewClaude(binary string) *ClaudeEngine {
	if binary == "" {
		binary = "claude"
	}
	return &ClaudeEngine{binary: binary}
}

func (e *ClaudeEngine) Run(ctx context.Context, inv Invocation, emit func(Event)) (*Result, error) {
	args := buildArgs(inv)
	slog.Debug("claude: starting run", "binary", e.binary, "model", inv.Model, "max_turns", inv.MaxTurns)

	cmd := exec.CommandContext(ctx, e.binary, args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("claude: stdout pipe: %w", err)
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("claude: starting %s: %w", e.binary, err)
	}

	var result *Result
	dec := &streamDecoder{}
	scanner := bufio.NewScanner(stdout)
	// Assistant messages can carry large tool results.
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		res, err := dec.decode(line, emit)
		if err != nil {
			slog.Warn("claude: skipping undecodable line", "error", err)
			continue
		}
		if res != nil {
			result = res
		}
	}
	scanErr := scanner.Err()

	if err := cmd.Wait(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("claude: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	if scanErr != nil {
		return nil, fmt.Errorf("claude: reading stream: %w", scanErr)
	}
	if result == nil {
		return nil, fmt.Errorf("claude: stream ended without a result event")
	}
	return result, nil
}

func buildArgs(inv Invocation) []string {
	args := []string{
		"-p", inv.Prompt,
		"--output-format", "stream-json",
		"--verbose",
	}
	if inv.Model != "" {
		args = append(args, "--model", inv.Model)
	}
	if inv.MaxTurns > 0 {
		args = append(args, "--max-turns", strconv.Itoa(inv.MaxTurns))
	}
	if inv.SystemPrompt != "" {
		args = append(args, "--system-prompt", inv.SystemPrompt)
	}
	if len(inv.AllowedTools) > 0 {
		args = append(args, "--allowed-tools", strings.Join(inv.AllowedTools, ","))
	}
	return args
}

// streamLine is the wire shape of one stream-json line. Only the
// fields this side cares about are decoded.
type streamLine struct {
	Type      string  `json:"type"`
	Subtype   string  `json:"subtype"`
	SessionID string  `json:"session_id"`
	Model     string  `json:"model"`
	Message   *struct {
		Content []contentBlock `json:"content"`
	} `json:"message"`
	Result       string  `json:"result"`
	IsError      bool    `json:"is_error"`
	NumTurns     int     `json:"num_turns"`
	TotalCostUSD float64 `json:"total_cost_usd"`
	DurationMs   int64   `json:"duration_ms"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
	Name string `json:"name"`
}

// streamDecoder turns stream-json lines into emitted events. It holds
// the session/model announced by the init line so the terminal result
// carries them even though the result line itself omits the model.
type streamDecoder struct {
	sessionID string
	model     string
}

// decode handles one line, returning the terminal result when the line
// carries one.
func (d *streamDecoder) decode(line []byte, emit func(Event)) (*Result, error) {
	var sl streamLine
	if err := json.Unmarshal(line, &sl); err != nil {
		return nil, err
	}

	switch sl.Type {
	case "system":
		if sl.Subtype == "init" {
			d.sessionID = sl.SessionID
			d.model = sl.Model
			emit(Event{Type: EventInit, Data: map[string]string{
				"session_id": sl.SessionID,
				"model":      sl.Model,
			}})
		}
	case "assistant":
		if sl.Message == nil {
			break
		}
		for _, block := range sl.Message.Content {
			switch block.Type {
			case "text":
				if block.Text != "" {
					emit(Event{Type: EventText, Data: block.Text})
				}
			case "tool_use":
				emit(Event{Type: EventToolUse, Data: block.Name})
			}
		}
	case "result":
		res := &Result{
			Subtype:    sl.Subtype,
			IsError:    sl.IsError,
			SessionID:  sl.SessionID,
			Model:      d.model,
			NumTurns:   sl.NumTurns,
			CostUSD:    sl.TotalCostUSD,
			DurationMs: sl.DurationMs,
			Text:       sl.Result,
		}
		if res.SessionID == "" {
			res.SessionID = d.sessionID
		}
		emit(Event{Type: EventResult, Data: res})
		return res, nil
	default:
		slog.Debug("claude: ignoring event", "type", sl.Type)
	}
	return nil, nil
}
