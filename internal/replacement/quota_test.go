package replacement

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuotaAllowsFreshDay(t *testing.T) {
	q := NewQuotaTracker(filepath.Join(t.TempDir(), "state.json"))
	assert.True(t, q.Allowed("2026-08-29"), "missing state file allows a run")
}

func TestQuotaConsumeBlocksSameDay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	q := NewQuotaTracker(path)

	require.NoError(t, q.Consume("2026-08-29"))
	assert.False(t, q.Allowed("2026-08-29"))

	// A new date resets the allowance.
	assert.True(t, q.Allowed("2026-08-30"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2026-08-29","count":5}`, string(data))
}

func TestQuotaCorruptStateFailsOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	q := NewQuotaTracker(path)
	assert.True(t, q.Allowed("2026-08-29"))
}

func TestQuotaPartialStateRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"date":"2026-08-29"}`), 0o644))

	q := NewQuotaTracker(path)
	assert.True(t, q.Allowed("2026-08-29"), "count below the limit allows a run")
}
