// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package watch runs the intake pipeline: it observes one directory for new
// report files and pushes each candidate through gate, normalization,
// transformation, and publication. Per-file failures are logged and
// swallowed; the loop itself only stops on interrupt.
package watch

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/srwatch/internal/gate"
	"github.com/pdiddy/srwatch/internal/normalize"
	"github.com/pdiddy/srwatch/internal/publish"
	"github.com/pdiddy/srwatch/internal/transform"
	"github.com/pdiddy/srwatch/pkg/types"
)

// Recorder accepts run records. *journal.Store implements it; tests use a
// fake.
type Recorder interface {
	Record(types.RunRecord) error
}

// Pipeline processes one candidate file at a time. Files are independent:
// no state is shared across candidates except the read-only config, the
// logger, and the recorder.
type Pipeline struct {
	cfg        types.Config
	gate       *gate.Gate
	normalizer *normalize.Normalizer
	recorder   Recorder // may be nil
	log        zerolog.Logger
	now        func() time.Time

	mu    sync.Mutex
	paths map[string]*sync.Mutex
}

// NewPipeline builds a pipeline from the run configuration. recorder may be
// nil when no journal is wanted.
func NewPipeline(cfg types.Config, n *normalize.Normalizer, rec Recorder, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		cfg: cfg,
		gate: &gate.Gate{
			Pattern:   cfg.NamePattern,
			MaxAge:    cfg.MaxFileAge(),
			Stability: cfg.StabilityWindow(),
		},
		normalizer: n,
		recorder:   rec,
		log:        log,
		now:        time.Now,
		paths:      map[string]*sync.Mutex{},
	}
}

// Matches reports whether path names a candidate worth gating.
func (p *Pipeline) Matches(path string) bool {
	return p.gate.Matches(path)
}

// Handle runs the full pipeline for one detected file. Every failure is
// classified, logged with the source path and stage, and swallowed; Handle
// never panics the loop or returns an error.
func (p *Pipeline) Handle(path string) {
	// Undefined in the original design: the same file re-modified while a
	// previous run is still in flight. Serialize per path so the runs
	// cannot interleave; the separator idempotence guard makes the second
	// run a no-op.
	lock := p.pathLock(path)
	lock.Lock()
	defer lock.Unlock()

	rec := p.run(path)
	if rec.Outcome == "" {
		return // not a candidate, nothing to record
	}
	if p.recorder != nil {
		if err := p.recorder.Record(rec); err != nil {
			p.log.Error().Err(err).Str("source", path).Msg("journal write failed")
		}
	}
}

func (p *Pipeline) run(path string) types.RunRecord {
	rec := types.RunRecord{StartedAt: p.now(), Source: path}

	switch err := p.gate.Check(path); {
	case err == nil:
	case errors.Is(err, gate.ErrNotCandidate):
		return types.RunRecord{}
	case errors.Is(err, gate.ErrStale):
		p.log.Info().Str("source", path).Int("max_age_hours", p.cfg.MaxFileAgeHours).Msg("skipping old file")
		rec.Outcome = types.OutcomeStale
		return rec
	default:
		p.log.Warn().Str("source", path).Msg("file not stable, skipping")
		rec.Outcome = types.OutcomeUnstable
		return rec
	}

	p.log.Info().Str("source", path).Msg("detected candidate")

	normalized, err := p.normalizer.Normalize(path)
	if err != nil {
		p.log.Error().Err(err).Str("source", path).Str("stage", "normalize").Msg("pipeline failed")
		rec.Outcome = types.OutcomeNormalizeFailed
		rec.Error = err.Error()
		return rec
	}
	if normalized != path {
		p.log.Info().Str("source", path).Str("converted", normalized).Msg("converted to target format")
	}

	changed, err := transform.Apply(normalized, p.cfg.StartRow, p.cfg.TargetColumn, p.cfg.Separator)
	if err != nil {
		p.log.Error().Err(err).Str("source", path).Str("stage", "transform").Msg("pipeline failed")
		rec.Outcome = types.OutcomeTransformFailed
		rec.Error = err.Error()
		return rec
	}
	rec.RowsChanged = changed
	p.log.Info().Str("source", path).Int("rows_changed", changed).Msg("transform complete")

	artifact, err := publish.StampArtifact(normalized, p.now())
	if err == nil {
		rec.Artifact = artifact
		rec.Published, err = publish.Publish(artifact, p.cfg.PublishFolder)
	}
	if err != nil {
		p.log.Error().Err(err).Str("source", path).Str("stage", "publish").Msg("pipeline failed")
		rec.Outcome = types.OutcomePublishFailed
		rec.Error = err.Error()
		return rec
	}

	p.log.Info().Str("source", path).Str("published", rec.Published).Msg("copied to publish folder")
	rec.Outcome = types.OutcomePublished
	return rec
}

func (p *Pipeline) pathLock(path string) *sync.Mutex {
	p.mu.Lock()
	defer p.mu.Unlock()
	lock, ok := p.paths[path]
	if !ok {
		lock = &sync.Mutex{}
		p.paths[path] = lock
	}
	return lock
}
