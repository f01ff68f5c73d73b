package llm

import (
	"context"
	"log/slog"

	"scout/internal/trace"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
)

type tracedEngine struct {
	Engine
}

// WithTrace wraps an engine so every run gets its own span.
func WithTrace(e Engine) Engine {
	return &tracedEngine{Engine: e}
}

func (t *tracedEngine) Run(ctx context.Context, inv Invocation, emit func(Event)) (*Result, error) {
	ctx, span := trace.Tracer().Start(ctx, "llm.run",
		oteltrace.WithAttributes(
			attribute.String("gen_ai.request.model", inv.Model),
			attribute.Int("gen_ai.request.max_turns", inv.MaxTurns),
			attribute.StringSlice("gen_ai.request.allowed_tools", inv.AllowedTools),
		),
	)
	defer span.End()

	sc := span.SpanContext()
	slog.Debug("llm.run span started", "trace_id", sc.TraceID(), "span_id", sc.SpanID())

	res, err := t.Engine.Run(ctx, inv, emit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return res, err
	}

	span.SetAttributes(
		attribute.String("gen_ai.response.subtype", res.Subtype),
		attribute.Int("gen_ai.response.num_turns", res.NumTurns),
		attribute.Float64("gen_ai.response.cost_usd", res.CostUSD),
	)
	if res.IsError {
		span.SetStatus(codes.Error, res.Subtype)
	}
	return res, nil
}
