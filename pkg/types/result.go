// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the configuration and result types shared across
// the srwatch pipeline stages.
package types

import "time"

// Outcome classifies what happened to one candidate file.
type Outcome string

const (
	// OutcomePublished means the file went through the full pipeline.
	OutcomePublished Outcome = "published"

	// OutcomeStale means the file was older than the freshness threshold.
	// Informational, not an error.
	OutcomeStale Outcome = "stale"

	// OutcomeUnstable means the file's size kept changing through the
	// stability window, or the file vanished mid-poll.
	OutcomeUnstable Outcome = "unstable"

	// OutcomeNormalizeFailed means format conversion failed: no automation
	// surface was reachable, or the converted file was not in the target
	// format.
	OutcomeNormalizeFailed Outcome = "normalize_failed"

	// OutcomeTransformFailed means the workbook rewrite failed.
	OutcomeTransformFailed Outcome = "transform_failed"

	// OutcomePublishFailed means the copy into the publish folder failed.
	OutcomePublishFailed Outcome = "publish_failed"
)

// Terminal reports whether the outcome represents a completed pipeline run
// rather than a skip.
func (o Outcome) Terminal() bool {
	return o != OutcomeStale && o != OutcomeUnstable
}

// RunRecord is the journal entry for one pipeline attempt. Observability
// only; the pipeline never reads records back.
type RunRecord struct {
	StartedAt   time.Time
	Source      string
	Artifact    string
	Published   string
	RowsChanged int
	Outcome     Outcome
	Error       string
}
