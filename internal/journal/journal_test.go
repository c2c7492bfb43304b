// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package journal

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/srwatch/pkg/types"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndRecent(t *testing.T) {
	s := openStore(t)

	rec := types.RunRecord{
		StartedAt:   time.Date(2026, 8, 31, 14, 5, 9, 0, time.UTC),
		Source:      "/downloads/ETSA-TSA-0042.xls",
		Artifact:    "/downloads/Processed_20260831_140509.xlsx",
		Published:   "/synced/Processed_20260831_140509.xlsx",
		RowsChanged: 7,
		Outcome:     types.OutcomePublished,
	}
	require.NoError(t, s.Record(rec))

	got, err := s.Recent(10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, rec.Source, got[0].Source)
	assert.Equal(t, rec.Artifact, got[0].Artifact)
	assert.Equal(t, rec.Published, got[0].Published)
	assert.Equal(t, rec.RowsChanged, got[0].RowsChanged)
	assert.Equal(t, types.OutcomePublished, got[0].Outcome)
	assert.True(t, rec.StartedAt.Equal(got[0].StartedAt))
}

func TestRecent_NewestFirst(t *testing.T) {
	s := openStore(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, s.Record(types.RunRecord{
			StartedAt: time.Now(),
			Source:    fmt.Sprintf("/downloads/ETSA-TSA-%04d.xls", i),
			Outcome:   types.OutcomeStale,
		}))
	}

	got, err := s.Recent(3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "/downloads/ETSA-TSA-0004.xls", got[0].Source)
	assert.Equal(t, "/downloads/ETSA-TSA-0002.xls", got[2].Source)
}

func TestRecent_Empty(t *testing.T) {
	s := openStore(t)

	got, err := s.Recent(10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRecordFailureOutcome(t *testing.T) {
	s := openStore(t)

	require.NoError(t, s.Record(types.RunRecord{
		StartedAt: time.Now(),
		Source:    "/downloads/ETSA-TSA-0042.xls",
		Outcome:   types.OutcomeTransformFailed,
		Error:     "opening workbook: zip: not a valid zip file",
	}))

	got, err := s.Recent(1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, types.OutcomeTransformFailed, got[0].Outcome)
	assert.Contains(t, got[0].Error, "not a valid zip file")
}

func TestOpen_ReusesExistingDatabase(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, s.Record(types.RunRecord{
		StartedAt: time.Now(),
		Source:    "/downloads/ETSA-TSA-0001.xls",
		Outcome:   types.OutcomePublished,
	}))
	require.NoError(t, s.Close())

	s, err = Open(dir)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Recent(10)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
