package profile

import (
	"errors"
	"fmt"
)

// Depth is the requested thoroughness tier for a research task.
type Depth string

const (
	DepthQuick         Depth = "quick"
	DepthStandard      Depth = "standard"
	DepthComprehensive Depth = "comprehensive"
)

// Format selects how much of the run output ends up in the report.
type Format string

const (
	FormatSummary   Format = "summary"
	FormatDetailed  Format = "detailed"
	FormatExecutive Format = "executive"
)

// Mode is the process-wide runtime mode. It is parsed once at startup
// (see ParseMode) and passed by parameter; the resolver never reads it
// from the environment itself.
type Mode string

const (
	ModeDevelopment Mode = "development"
	ModeProduction  Mode = "production"
)

// Request is what the caller asked for.
type Request struct {
	Depth  Depth
	Format Format
}

// Profile is the resolved execution budget for one run. Immutable once
// resolved, never persisted.
type Profile struct {
	Depth    Depth
	Format   Format
	Model    string
	MaxTurns int
}

// ErrInvalidRequest is matched by errors.Is for any rejected request.
var ErrInvalidRequest = errors.New("invalid profile request")

// InvalidRequestError reports an unrecognized depth, format, or mode.
// Unknown values fail closed; nothing silently falls back to a default.
type InvalidRequestError struct {
	Field string
	Value string
}

func (e *InvalidRequestError) Error() string {
	return fmt.Sprintf("invalid profile request: unknown %s %q", e.Field, e.Value)
}

func (e *InvalidRequestError) Unwrap() error { return ErrInvalidRequest }

// ParseDepth validates a depth string from the CLI or gateway.
func ParseDepth(s string) (Depth, error) {
	switch Depth(s) {
	case DepthQuick, DepthStandard, DepthComprehensive:
		return Depth(s), nil
	}
	return "", &InvalidRequestError{Field: "depth", Value: s}
}

// ParseFormat validates an output format string.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatSummary, FormatDetailed, FormatExecutive:
		return Format(s), nil
	}
	return "", &InvalidRequestError{Field: "format", Value: s}
}

// ParseMode resolves the runtime mode from its environment value.
// Empty means production; "dev" is accepted as a shorthand.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", string(ModeProduction):
		return ModeProduction, nil
	case "dev", string(ModeDevelopment):
		return ModeDevelopment, nil
	}
	return "", &InvalidRequestError{Field: "mode", Value: s}
}

// Models binds the four cost tiers to concrete model IDs. The tier
// structure is fixed; only the IDs are configurable.
type Models struct {
	Cheapest string
	Fast     string
	Balanced string
	Deepest  string
}

// DefaultModels returns the stock tier bindings.
func DefaultModels() Models {
	return Models{
		Cheapest: "claude-3-5-haiku-latest",
		Fast:     "claude-haiku-4-5",
		Balanced: "claude-sonnet-4-5",
		Deepest:  "claude-opus-4-1",
	}
}

// Turn budgets per depth in production mode. Development mode always
// uses devMaxTurns.
var productionTurns = map[Depth]int{
	DepthQuick:         10,
	DepthStandard:      20,
	DepthComprehensive: 40,
}

const devMaxTurns = 5

// Resolver maps a request plus the runtime mode to an execution
// profile. Pure: no I/O, no randomness, safe for concurrent use.
type Resolver struct {
	models Models
}

// NewResolver builds a resolver over the given tier bindings. Tiers
// left empty fall back to the defaults.
func NewResolver(models Models) *Resolver {
	def := DefaultModels()
	if models.Cheapest == "" {
		models.Cheapest = def.Cheapest
	}
	if models.Fast == "" {
		models.Fast = def.Fast
	}
	if models.Balanced == "" {
		models.Balanced = def.Balanced
	}
	if models.Deepest == "" {
		models.Deepest = def.Deepest
	}
	return &Resolver{models: models}
}

// Resolve computes the effective profile for a request.
//
// In development mode the request is downgraded to the cheapest
// configuration regardless of what was asked for. In production mode
// depth and format pass through and the budget comes from the fixed
// per-depth table.
func (r *Resolver) Resolve(req Request, mode Mode) (Profile, error) {
	if _, err := ParseDepth(string(req.Depth)); err != nil {
		return Profile{}, err
	}
	if _, err := ParseFormat(string(req.Format)); err != nil {
		return Profile{}, err
	}

	switch mode {
	case ModeDevelopment:
		return Profile{
			Depth:    DepthQuick,
			Format:   FormatSummary,
			Model:    r.models.Cheapest,
			MaxTurns: devMaxTurns,
		}, nil
	case ModeProduction:
		p := Profile{
			Depth:    req.Depth,
			Format:   req.Format,
			MaxTurns: productionTurns[req.Depth],
		}
		switch req.Depth {
		case DepthQuick:
			p.Model = r.models.Fast
		case DepthStandard:
			p.Model = r.models.Balanced
		case DepthComprehensive:
			p.Model = r.models.Deepest
		}
		return p, nil
	}
	return Profile{}, &InvalidRequestError{Field: "mode", Value: string(mode)}
}
