package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"
)

func openTestDB(t *testing.T) (*Storage, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "journal.db")

	db, err := Open(dbPath)
	require.NoError(t, err, "open database")
	if err := db.Initialize(); err != nil {
		db.Close()
		require.NoError(t, err, "initialize")
	}
	return db, dbPath
}

func TestOpenAndInitialize(t *testing.T) {
	db, _ := openTestDB(t)
	defer db.Close()

	initialized, err := db.IsInitialized()
	require.NoError(t, err)
	assert.True(t, initialized)

	// Initialize is idempotent
	require.NoError(t, db.Initialize())
}

func TestOpenCreatesDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "journal.db")

	db, err := Open(dbPath)
	require.NoError(t, err)
	defer db.Close()

	_, err = os.Stat(dbPath)
	assert.NoError(t, err, "journal file should exist")
}

func TestAppendAndListRuns(t *testing.T) {
	db, _ := openTestDB(t)
	defer db.Close()

	first := &Run{Mode: "dictionary", LockType: "password", Candidates: 5, Attempts: 4, Succeeded: true, MatchIndex: 3, Elapsed: 2 * time.Second}
	second := &Run{Mode: "dictionary", LockType: "password", Candidates: 3, Attempts: 3, MatchIndex: -1, Elapsed: time.Second}

	for _, run := range []*Run{first, second} {
		require.NoError(t, db.AppendRun(run))
		assert.NotEmpty(t, run.ID, "AppendRun should assign an ID")
		assert.False(t, run.Started.IsZero(), "AppendRun should set Started")
	}

	runs, err := db.Runs()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, first.ID, runs[0].ID, "insertion order")
	assert.Equal(t, second.ID, runs[1].ID, "insertion order")
	assert.True(t, runs[0].Succeeded)
	assert.Equal(t, 3, runs[0].MatchIndex)
	assert.Equal(t, 2*time.Second, runs[0].Elapsed)
}

func TestAppendKeepsGivenID(t *testing.T) {
	db, _ := openTestDB(t)
	defer db.Close()

	run := &Run{ID: "fixed-id", MatchIndex: -1}
	require.NoError(t, db.AppendRun(run))
	assert.Equal(t, "fixed-id", run.ID)
}

func TestGetRun(t *testing.T) {
	db, _ := openTestDB(t)
	defer db.Close()

	run := &Run{LockType: "password", Attempts: 7, MatchIndex: -1}
	require.NoError(t, db.AppendRun(run))

	got, err := db.GetRun(run.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, got.Attempts)

	_, err = db.GetRun("missing")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestClearAndCompact(t *testing.T) {
	db, _ := openTestDB(t)
	defer db.Close()

	for i := 0; i < 10; i++ {
		require.NoError(t, db.AppendRun(&Run{Attempts: i, MatchIndex: -1}))
	}

	require.NoError(t, db.Clear())
	require.NoError(t, db.Compact())

	runs, err := db.Runs()
	require.NoError(t, err)
	assert.Empty(t, runs)

	// Journal still usable after compaction
	assert.NoError(t, db.AppendRun(&Run{MatchIndex: -1}))
}

func TestCompactReopenFailureKeepsCloseSafe(t *testing.T) {
	db, dbPath := openTestDB(t)
	require.NoError(t, db.AppendRun(&Run{Attempts: 2, MatchIndex: -1}))

	orig := reopen
	reopen = func(string) (*bolt.DB, error) { return nil, errors.New("disk gone") }
	defer func() { reopen = orig }()

	err := db.Compact()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to reopen database")
	require.NotNil(t, db.db, "handle must survive a failed reopen")

	assert.NotPanics(t, func() { _ = db.Close() })
	assert.NoError(t, db.Close(), "second close is a no-op")

	// The compacted file replaced the original
	again, err := Open(dbPath)
	require.NoError(t, err)
	defer again.Close()
	runs, err := again.Runs()
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestCloseZeroValue(t *testing.T) {
	assert.NotPanics(t, func() {
		assert.NoError(t, (&Storage{}).Close())
	})
}

func TestUninitializedJournal(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "raw.db"))
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Runs()
	assert.ErrorIs(t, err, ErrNotInitialized)
	assert.ErrorIs(t, db.AppendRun(&Run{}), ErrNotInitialized)
}

func TestPersistence(t *testing.T) {
	db, dbPath := openTestDB(t)

	require.NoError(t, db.AppendRun(&Run{LockType: "password", Attempts: 3, MatchIndex: -1}))
	before, err := db.GetModified()
	require.NoError(t, err)
	db.Close()

	// Reopen and verify
	db2, err := Open(dbPath)
	require.NoError(t, err)
	defer db2.Close()

	runs, err := db2.Runs()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 3, runs[0].Attempts)

	after, err := db2.GetModified()
	require.NoError(t, err)
	assert.True(t, after.Equal(before), "modified time changed on reopen: %v != %v", after, before)
}

func TestJournalHoldsNoSecrets(t *testing.T) {
	db, dbPath := openTestDB(t)

	run := &Run{Mode: "dictionary", LockType: "password", Candidates: 2, Attempts: 2, Succeeded: true, MatchIndex: 1}
	require.NoError(t, db.AppendRun(run))
	db.Close()

	raw, err := os.ReadFile(dbPath)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "matched\"", "journal must not carry a matched candidate field")
}

func TestRunRate(t *testing.T) {
	run := Run{Attempts: 10, Elapsed: 2 * time.Second}
	assert.Equal(t, 5.0, run.Rate())
	assert.Equal(t, 0.0, (&Run{Attempts: 3}).Rate(), "rate without elapsed")
}
