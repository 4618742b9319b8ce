package state_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuvrajpandey77/ShopifyMigration/internal/state"
)

func TestLedgerMarkAndSeen(t *testing.T) {
	l := state.NewLedger(filepath.Join(t.TempDir(), "ledger.json"))

	assert.False(t, l.Seen("name:classic tee"))
	l.Mark("name:classic tee", "classic-tee")
	assert.True(t, l.Seen("name:classic tee"))
	assert.Equal(t, 1, l.Count())
}

func TestLedgerPersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")

	l := state.NewLedger(path)
	require.NoError(t, l.Load())
	l.Mark("name:classic tee", "classic-tee")
	l.Mark("sku:MUG-1", "ceramic-mug")
	require.NoError(t, l.Save())

	reloaded := state.NewLedger(path)
	require.NoError(t, reloaded.Load())
	assert.True(t, reloaded.Seen("name:classic tee"))
	assert.True(t, reloaded.Seen("sku:MUG-1"))
	assert.False(t, reloaded.Seen("name:other"))
	assert.Equal(t, 2, reloaded.Count())
}

func TestLedgerMissingFileStartsEmpty(t *testing.T) {
	l := state.NewLedger(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, l.Load())
	assert.Equal(t, 0, l.Count())
}

func TestLedgerCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	l := state.NewLedger(path)
	assert.Error(t, l.Load())
}

func TestLedgerRunID(t *testing.T) {
	a := state.NewLedger(filepath.Join(t.TempDir(), "a.json"))
	b := state.NewLedger(filepath.Join(t.TempDir(), "b.json"))
	assert.NotEmpty(t, a.RunID())
	assert.NotEqual(t, a.RunID(), b.RunID())
}
