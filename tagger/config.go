package tagger

import (
	"github.com/cyp0633/libtimex/rules"
)

// Config holds configuration options for the tagger
type Config struct {
	// Stages
	ResolveFunctions    bool
	SynthesizeIntervals bool
	MatchPairs          bool
	ExtractTemponyms    bool

	// Rules is the interval-pair rule table, evaluated in order. Nil uses
	// rules.Default().
	Rules []rules.Rule
}

// DefaultConfig runs every stage with the built-in rule table
var DefaultConfig = Config{
	ResolveFunctions:    true,
	SynthesizeIntervals: true,
	MatchPairs:          true,
	ExtractTemponyms:    true,
}

// SingleAnchorConfig only produces single-anchor intervals; no pairs are merged
var SingleAnchorConfig = Config{
	ResolveFunctions:    true,
	SynthesizeIntervals: true,
	MatchPairs:          false,
	ExtractTemponyms:    true,
}

// ResolveOnlyConfig only rewrites calendar function calls
var ResolveOnlyConfig = Config{
	ResolveFunctions: true,
}
