package profile

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDevelopmentAlwaysDowngrades(t *testing.T) {
	r := NewResolver(Models{})

	for _, depth := range []Depth{DepthQuick, DepthStandard, DepthComprehensive} {
		for _, format := range []Format{FormatSummary, FormatDetailed, FormatExecutive} {
			p, err := r.Resolve(Request{Depth: depth, Format: format}, ModeDevelopment)
			require.NoError(t, err)
			assert.Equal(t, DepthQuick, p.Depth)
			assert.Equal(t, FormatSummary, p.Format)
			assert.Equal(t, 5, p.MaxTurns)
			assert.Equal(t, DefaultModels().Cheapest, p.Model)
		}
	}
}

func TestResolveProductionTable(t *testing.T) {
	r := NewResolver(Models{})
	def := DefaultModels()

	tests := []struct {
		depth Depth
		model string
		turns int
	}{
		{DepthQuick, def.Fast, 10},
		{DepthStandard, def.Balanced, 20},
		{DepthComprehensive, def.Deepest, 40},
	}

	for _, tt := range tests {
		t.Run(string(tt.depth), func(t *testing.T) {
			p, err := r.Resolve(Request{Depth: tt.depth, Format: FormatExecutive}, ModeProduction)
			require.NoError(t, err)
			assert.Equal(t, tt.depth, p.Depth)
			assert.Equal(t, FormatExecutive, p.Format, "format passes through unchanged")
			assert.Equal(t, tt.model, p.Model)
			assert.Equal(t, tt.turns, p.MaxTurns)
		})
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	r := NewResolver(Models{})
	req := Request{Depth: DepthStandard, Format: FormatDetailed}

	first, err := r.Resolve(req, ModeProduction)
	require.NoError(t, err)
	second, err := r.Resolve(req, ModeProduction)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestResolveRejectsUnknownValues(t *testing.T) {
	r := NewResolver(Models{})

	_, err := r.Resolve(Request{Depth: "extreme", Format: FormatSummary}, ModeProduction)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRequest)

	var ire *InvalidRequestError
	require.True(t, errors.As(err, &ire))
	assert.Equal(t, "depth", ire.Field)
	assert.Equal(t, "extreme", ire.Value)

	_, err = r.Resolve(Request{Depth: DepthQuick, Format: "haiku"}, ModeProduction)
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = r.Resolve(Request{Depth: DepthQuick, Format: FormatSummary}, "staging")
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestResolveModelOverrides(t *testing.T) {
	r := NewResolver(Models{Balanced: "sonnet-pinned", Cheapest: "haiku-pinned"})

	p, err := r.Resolve(Request{Depth: DepthStandard, Format: FormatSummary}, ModeProduction)
	require.NoError(t, err)
	assert.Equal(t, "sonnet-pinned", p.Model)

	p, err = r.Resolve(Request{Depth: DepthComprehensive, Format: FormatSummary}, ModeDevelopment)
	require.NoError(t, err)
	assert.Equal(t, "haiku-pinned", p.Model)

	// Unset tiers keep their defaults.
	p, err = r.Resolve(Request{Depth: DepthQuick, Format: FormatSummary}, ModeProduction)
	require.NoError(t, err)
	assert.Equal(t, DefaultModels().Fast, p.Model)
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{
		"":            ModeProduction,
		"production":  ModeProduction,
		"dev":         ModeDevelopment,
		"development": ModeDevelopment,
	} {
		got, err := ParseMode(in)
		require.NoError(t, err, "input %q", in)
		assert.Equal(t, want, got)
	}

	_, err := ParseMode("staging")
	assert.ErrorIs(t, err, ErrInvalidRequest)
}
