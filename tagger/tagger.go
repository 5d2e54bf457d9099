// Package tagger runs the interval normalization stages over one document:
// calendar function resolution, interval synthesis, pair matching and
// temponym extraction, in that order.
package tagger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/cyp0633/libtimex/annotation"
	"github.com/cyp0633/libtimex/internal/logging"
	"github.com/cyp0633/libtimex/interval"
	"github.com/cyp0633/libtimex/pairing"
	"github.com/cyp0633/libtimex/resolver"
	"github.com/cyp0633/libtimex/rules"
	"github.com/cyp0633/libtimex/temponym"
)

// Report summarizes one Process call.
type Report struct {
	RunID     string
	Resolver  resolver.Stats
	Intervals int
	Pairing   pairing.Result
	Temponyms temponym.Result
}

// Tagger processes documents one at a time. It holds no per-document state
// and may be reused.
type Tagger struct {
	config Config
	logger *slog.Logger
}

// New creates a tagger. The rule table is validated up front; a broken table
// is reported here rather than per document. A nil logger uses slog.Default().
func New(config Config, logger *slog.Logger) (*Tagger, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if config.Rules == nil {
		config.Rules = rules.Default()
	}
	if config.MatchPairs {
		if _, err := pairing.New(config.Rules, logger); err != nil {
			return nil, fmt.Errorf("invalid rule table: %w", err)
		}
	}
	return &Tagger{config: config, logger: logger}, nil
}

// Process runs the enabled stages over store. Data problems never fail the
// call; they end up as sentinel values or missing intervals and are logged.
// An error means the run was cancelled or the store rejected a change.
//
// The run id is taken from ctx (see logging.WithRunID) or generated.
func (t *Tagger) Process(ctx context.Context, store annotation.Store) (Report, error) {
	runID := logging.RunID(ctx)
	if runID == "" {
		runID = uuid.NewString()
	}
	logger := t.logger.With("run_id", runID)
	report := Report{RunID: runID}

	if t.config.ResolveFunctions {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Resolver = resolver.New(logger).Resolve(store)
	}

	if t.config.SynthesizeIntervals {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Intervals = interval.NewSynthesizer(logger).Synthesize(store)
	}

	if t.config.MatchPairs {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		m, err := pairing.New(t.config.Rules, logger)
		if err != nil {
			return report, fmt.Errorf("invalid rule table: %w", err)
		}
		report.Pairing, err = m.Match(store)
		if err != nil {
			logger.Error("pair matching failed", "error", err)
			return report, fmt.Errorf("match interval pairs: %w", err)
		}
	}

	if t.config.ExtractTemponyms {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Temponyms = temponym.New(logger).Extract(store)
	}

	logger.Info("document processed",
		"functions_resolved", report.Resolver.Resolved,
		"functions_failed", report.Resolver.Failed,
		"intervals", report.Intervals,
		"composites", report.Pairing.Created,
		"anchors_removed", report.Pairing.Removed,
		"temponyms", report.Temponyms.Extracted)
	return report, nil
}
