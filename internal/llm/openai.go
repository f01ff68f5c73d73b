package llm

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/responses"
	"github.com/openai/openai-go/v3/shared"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// OpenAIEngine runs the prompt as a single hosted exchange against the
// responses API. It has no agent loop of its own, so the turn budget
// and tool allowlist are ignored (logged at debug). The claude engine
// is the default; this one exists for cheap drafting against
// OpenAI-compatible endpoints.
type OpenAIEngine struct {
	client *openai.Client
}

func NewOpenAI(baseURL, apiKey string) *OpenAIEngine {
	var opts []option.RequestOption
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	opts = append(opts, option.WithHTTPClient(&http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}))
	client := openai.NewClient(opts...)
	return &OpenAIEngine{client: &client}
}

func (o *OpenAIEngine) Run(ctx context.Context, inv Invocation, emit func(Event)) (*Result, error) {
	if inv.MaxTurns > 0 || len(inv.AllowedTools) > 0 {
		slog.Debug("openai: single-exchange engine ignores turn budget and tool allowlist",
			"max_turns", inv.MaxTurns, "allowed_tools", inv.AllowedTools)
	}

	input := []responses.ResponseInputItemUnionParam{
		responses.ResponseInputItemParamOfMessage(inv.SystemPrompt, "developer"),
		responses.ResponseInputItemParamOfMessage(inv.Prompt, "user"),
	}

	params := responses.ResponseNewParams{
		Model: shared.ResponsesModel(inv.Model),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: input,
		},
	}

	stream := o.client.Responses.NewStreaming(ctx, params)

	var completed *responses.Response
	var text strings.Builder

	for stream.Next() {
		event := stream.Current()

		switch event.Type {
		case "response.created":
			emit(Event{Type: EventInit, Data: map[string]string{
				"session_id": event.Response.ID,
				"model":      inv.Model,
			}})
		case "response.output_text.delta":
			if event.Delta != "" {
				text.WriteString(event.Delta)
				emit(Event{Type: EventText, Data: event.Delta})
			}
		case "response.completed":
			completed = &event.Response
		case "response.failed":
			return nil, fmt.Errorf("openai: response failed: %s", event.Response.Error.Message)
		}
	}

	if err := stream.Err(); err != nil {
		return nil, err
	}
	if completed == nil {
		return nil, fmt.Errorf("openai: stream ended without completion")
	}

	res := &Result{
		Subtype:   "success",
		SessionID: completed.ID,
		Model:     string(completed.Model),
		NumTurns:  1,
		Text:      text.String(),
	}
	emit(Event{Type: EventResult, Data: res})
	return res, nil
}
