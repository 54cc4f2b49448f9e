// Package history keeps a process-local record of the actions a reviewer has
// taken during the current session. It is a display convenience only: the
// durable audit record is the persisted review event log, and restarting the
// service discards everything held here.
package history

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Theijiii/plms-sys-sub004/internal/domain"
)

// ActionRecord is one reviewer action on one application.
type ActionRecord struct {
	Action string        `json:"action"`
	Status domain.Status `json:"status"`
	Notes  string        `json:"notes"`
	By     string        `json:"by"`
	At     time.Time     `json:"at"`
}

// Tracker is a mutex-guarded per-application action list. It enforces no
// size bound; callers cap for display.
type Tracker struct {
	mu      sync.RWMutex
	records map[uuid.UUID][]ActionRecord
}

// NewTracker creates an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{records: make(map[uuid.UUID][]ActionRecord)}
}

// Record appends one action to the application's session history.
func (t *Tracker) Record(appID uuid.UUID, rec ActionRecord) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.records[appID] = append(t.records[appID], rec)
}

// List returns the application's actions oldest-first. Display layers
// reverse as needed.
func (t *Tracker) List(appID uuid.UUID) []ActionRecord {
	t.mu.RLock()
	defer t.mu.RUnlock()
	recs := t.records[appID]
	out := make([]ActionRecord, len(recs))
	copy(out, recs)
	return out
}

// Clear drops the history for one application.
func (t *Tracker) Clear(appID uuid.UUID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.records, appID)
}
