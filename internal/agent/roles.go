package agent

import (
	"scout/internal/config"
	"scout/internal/profile"
)

// Role is a named agent configuration. The system prompt and allowed
// tool names are handed to the vendor loop unmodified; Depth is only a
// default applied when the caller did not request one.
type Role struct {
	Name         string
	SystemPrompt string
	Tools        []string
	Depth        profile.Depth
}

// defaultTools are the remote tool names every built-in role allows.
// These are executed inside the vendor loop, never locally.
var defaultTools = []string{"WebSearch", "WebFetch"}

const researchPrompt = `You are a research analyst. Investigate the given topic thoroughly:
search for primary sources, cross-check claims across at least two
sources, and prefer recent material. Structure your answer as findings
with the supporting sources inline. Flag anything you could not verify.`

const prospectPrompt = `You are a pre-sales researcher preparing an account brief. For the
given company, cover: what they do and for whom, size and funding,
recent news and strategic moves, their likely technical stack and
pain points, and named decision makers where public. Keep claims
sourced and separate facts from inference.`

const competePrompt = `You are a competitive analyst. Map the competitive landscape around
the given company or product: closest alternatives, how they position
against each other, pricing signals where public, and where the
subject is strong or exposed. Back comparisons with sources.`

// BuiltinRoles returns the stock role set.
func BuiltinRoles() map[string]*Role {
	return map[string]*Role{
		"research": {
			Name:         "research",
			SystemPrompt: researchPrompt,
			Tools:        defaultTools,
			Depth:        profile.DepthStandard,
		},
		"prospect": {
			Name:         "prospect",
			SystemPrompt: prospectPrompt,
			Tools:        defaultTools,
			Depth:        profile.DepthStandard,
		},
		"compete": {
			Name:         "compete",
			SystemPrompt: competePrompt,
			Tools:        defaultTools,
			Depth:        profile.DepthComprehensive,
		},
	}
}

// RolesFromConfig overlays configured roles on the built-in set.
// A configured role with the same name replaces the built-in one;
// unset fields fall back to the research defaults.
func RolesFromConfig(cfg *config.Config) map[string]*Role {
	roles := BuiltinRoles()
	for name, rc := range cfg.Roles {
		role := &Role{
			Name:         name,
			SystemPrompt: rc.SystemPrompt,
			Tools:        rc.Tools,
			Depth:        profile.Depth(rc.Depth),
		}
		if role.SystemPrompt == "" {
			role.SystemPrompt = researchPrompt
		}
		if len(role.Tools) == 0 {
			role.Tools = defaultTools
		}
		if role.Depth == "" {
			role.Depth = profile.DepthStandard
		}
		roles[name] = role
	}
	return roles
}
