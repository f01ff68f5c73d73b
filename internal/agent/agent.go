package agent

import (
	"context"

	"scout/internal/history"
	"scout/internal/llm"
	"scout/internal/profile"
)

// Request is the inbound surface from the CLI or gateway. Depth and
// Format are optional; empty means "not requested" and picks up the
// role default. Anything non-empty that the resolver does not
// recognize fails the run before the vendor call.
type Request struct {
	Topic  string
	Depth  profile.Depth
	Format profile.Format
	Role   string
}

// Runner executes one research run end to end and returns the archived
// run record.
type Runner interface {
	Run(ctx context.Context, runID string, req Request, emit func(llm.Event)) (*history.Run, error)
}
