package sqlite

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clipedit/internal/domain"
)

func openJournal(t *testing.T) *Journal {
	t.Helper()
	j := NewJournal()
	require.NoError(t, j.Open(filepath.Join(t.TempDir(), "nested", "sessions.db")))
	t.Cleanup(func() { _ = j.Close() })
	return j
}

func session(id string, start time.Time, outcome domain.Outcome) *domain.EditSession {
	return &domain.EditSession{
		ID:             id,
		TargetFile:     "/tmp/" + domain.TempFileName(start),
		InitialContent: "hello",
		StartedAt:      start,
		FinishedAt:     start.Add(2 * time.Second),
		Editor:         "/usr/bin/nvim",
		Backend:        "iterm",
		BytesAfter:     11,
		Outcome:        outcome,
	}
}

func TestJournal_RecordAndRecent(t *testing.T) {
	j := openJournal(t)
	base := time.UnixMilli(1718000000000)

	require.NoError(t, j.Record(session("a", base, domain.OutcomeUpdated)))
	require.NoError(t, j.Record(session("b", base.Add(time.Minute), domain.OutcomeCancelled)))
	require.NoError(t, j.Record(session("c", base.Add(2*time.Minute), domain.OutcomeUpdated)))

	got, err := j.Recent(2)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "c", got[0].ID)
	assert.Equal(t, "b", got[1].ID)
	assert.Equal(t, domain.OutcomeCancelled, got[1].Outcome)
	assert.Equal(t, 5, got[0].BytesBefore())
	assert.Equal(t, 11, got[0].BytesAfter)
	assert.Equal(t, 2*time.Second, got[0].Duration())
	assert.Empty(t, got[0].InitialContent, "clipboard content must not be persisted")
}

func TestJournal_RecordReplacesSameID(t *testing.T) {
	j := openJournal(t)
	base := time.UnixMilli(1718000000000)

	s := session("same", base, domain.OutcomeLaunchFailed)
	s.Error = "launch iterm: boom"
	require.NoError(t, j.Record(s))

	s.Outcome = domain.OutcomeUpdated
	s.Error = ""
	require.NoError(t, j.Record(s))

	got, err := j.Recent(10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, domain.OutcomeUpdated, got[0].Outcome)
	assert.Empty(t, got[0].Error)
}

func TestJournal_UnfinishedSession(t *testing.T) {
	j := openJournal(t)
	s := session("open", time.UnixMilli(1718000000000), domain.OutcomeCancelled)
	s.FinishedAt = time.Time{}
	require.NoError(t, j.Record(s))

	got, err := j.Recent(0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].FinishedAt.IsZero())
	assert.Zero(t, got[0].Duration())
}

func TestJournal_ReopenKeepsHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.db")

	j := NewJournal()
	require.NoError(t, j.Open(path))
	require.NoError(t, j.Record(session("kept", time.UnixMilli(1718000000000), domain.OutcomeUpdated)))
	require.NoError(t, j.Close())

	j2 := NewJournal()
	require.NoError(t, j2.Open(path))
	defer j2.Close()

	got, err := j2.Recent(5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "kept", got[0].ID)
	assert.Equal(t, path, j2.Path())
}

func TestJournal_NotOpen(t *testing.T) {
	j := NewJournal()
	assert.Error(t, j.Record(&domain.EditSession{ID: "x"}))
	_, err := j.Recent(1)
	assert.Error(t, err)
	assert.NoError(t, j.Close())
}

func TestNewJournal_Driver(t *testing.T) {
	assert.Equal(t, "sqlite", NewJournal().driver)
	assert.Equal(t, "sqlite3", NewJournal(WithDriver("sqlite3")).driver)
	assert.Equal(t, "sqlite", NewJournal(WithDriver("")).driver)
}

func TestJournal_WriteAheadLog(t *testing.T) {
	j := openJournal(t)

	var mode string
	require.NoError(t, j.db.QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)
}
