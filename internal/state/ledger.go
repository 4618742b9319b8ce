// Package state persists the idempotency ledger: the set of product group
// IDs already migrated across batch runs. Drivers pass the ledger into the
// engine instead of recomputing "already migrated" sets per script.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	LedgerVersion     = "1.0"
	DefaultLedgerFile = ".shopmig-ledger.json"
)

// Entry records one migrated product group.
type Entry struct {
	Handle     string    `json:"handle,omitempty"`
	RunID      string    `json:"run_id"`
	MigratedAt time.Time `json:"migrated_at"`
}

type ledgerFile struct {
	Version     string           `json:"version"`
	Groups      map[string]Entry `json:"groups"`
	LastUpdated time.Time        `json:"last_updated"`
}

// Ledger manages ledger persistence.
type Ledger struct {
	mu    sync.RWMutex
	path  string
	runID string
	state ledgerFile
}

// NewLedger creates a ledger backed by the given file path.
func NewLedger(path string) *Ledger {
	if path == "" {
		path = filepath.Join("output", DefaultLedgerFile)
	}
	return &Ledger{
		path:  path,
		runID: uuid.NewString(),
		state: ledgerFile{
			Version: LedgerVersion,
			Groups:  make(map[string]Entry),
		},
	}
}

// Load reads the ledger from disk. A missing file starts an empty ledger.
func (l *Ledger) Load() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read ledger: %w", err)
	}
	var state ledgerFile
	if err := json.Unmarshal(data, &state); err != nil {
		return fmt.Errorf("failed to parse ledger: %w", err)
	}
	if state.Groups == nil {
		state.Groups = make(map[string]Entry)
	}
	state.Version = LedgerVersion
	l.state = state
	return nil
}

// Save writes the ledger to disk.
func (l *Ledger) Save() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.state.LastUpdated = time.Now()
	data, err := json.MarshalIndent(l.state, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("failed to create ledger directory: %w", err)
	}
	return os.WriteFile(l.path, data, 0644)
}

// Seen reports whether a product group was already migrated.
func (l *Ledger) Seen(groupID string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.state.Groups[groupID]
	return ok
}

// Mark records a product group as migrated under the current run.
func (l *Ledger) Mark(groupID, handle string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state.Groups[groupID] = Entry{
		Handle:     handle,
		RunID:      l.runID,
		MigratedAt: time.Now(),
	}
}

// Count returns the number of migrated groups on record.
func (l *Ledger) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.state.Groups)
}

// RunID returns the identifier of the current run.
func (l *Ledger) RunID() string {
	return l.runID
}
