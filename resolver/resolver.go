// Package resolver rewrites TIMEX values that still embed a calendar function
// call, such as "2024 funcDateCalc(EasterSunday(YEAR, -2))", into the
// concrete date the call denotes.
package resolver

import (
	"fmt"
	"log/slog"
	"regexp"

	"github.com/samber/mo"

	"github.com/cyp0633/libtimex/annotation"
)

// Sentinel replaces values whose function call cannot be evaluated.
const Sentinel = "XXXX-XX-XX"

var (
	callValuePattern = regexp.MustCompile(`^((\d{4})(?:-(\d{2})(?:-(\d{2}))?)?)\s+(\S.*)$`)
	keywordPattern   = regexp.MustCompile(`\b(DATE|YEAR|MONTH|DAY)\b`)
)

// Stats counts what a Resolve pass did.
type Stats struct {
	Examined int
	Resolved int
	Failed   int
}

// Resolver evaluates embedded calendar function calls.
type Resolver struct {
	logger *slog.Logger
}

// New creates a resolver. A nil logger uses slog.Default().
func New(logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{logger: logger}
}

// HasCall reports whether value is a base date followed by a function call.
func HasCall(value string) bool {
	return callValuePattern.MatchString(value)
}

// Resolve rewrites every DATE and TIME timex in store whose value carries a
// function call. Values that fail to evaluate become Sentinel; the timex is
// kept either way.
func (r *Resolver) Resolve(store annotation.Store) Stats {
	var stats Stats
	for _, t := range store.Timexes(annotation.KindDate, annotation.KindTime) {
		if !HasCall(t.Value) {
			continue
		}
		stats.Examined++

		value, err := r.ResolveValue(t.Value).Get()
		if err != nil {
			r.logger.Warn("failed to resolve calendar function",
				"timex_id", t.ID,
				"value", t.Value,
				"error", err)
			store.UpdateValue(t, Sentinel)
			stats.Failed++
			continue
		}

		r.logger.Debug("resolved calendar function",
			"timex_id", t.ID,
			"from", t.Value,
			"to", value)
		store.UpdateValue(t, value)
		stats.Resolved++
	}
	return stats
}

// ResolveValue evaluates the function call embedded in value. Values without a
// call are returned unchanged.
func (r *Resolver) ResolveValue(value string) mo.Result[string] {
	m := callValuePattern.FindStringSubmatch(value)
	if m == nil {
		return mo.Ok(value)
	}

	env := &callEnv{date: m[1], year: m[2], month: m[3], day: m[4]}
	call, err := parseCall(env.substitute(m[5]))
	if err != nil {
		return mo.Err[string](fmt.Errorf("parse %q: %w", m[5], err))
	}
	return env.eval(call)
}

// substitute replaces the DATE, YEAR, MONTH and DAY keywords with the base
// date's fields. Keywords for fields the base lacks are left as they are.
func (e *callEnv) substitute(call string) string {
	return keywordPattern.ReplaceAllStringFunc(call, func(kw string) string {
		var field string
		switch kw {
		case "DATE":
			field = e.date
		case "YEAR":
			field = e.year
		case "MONTH":
			field = e.month
		case "DAY":
			field = e.day
		}
		if field == "" {
			return kw
		}
		return field
	})
}
