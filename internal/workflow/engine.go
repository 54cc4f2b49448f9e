// Package workflow applies reviewer actions to permit applications.
package workflow

import (
	"strings"
	"time"

	"github.com/Theijiii/plms-sys-sub004/internal/domain"
	"github.com/Theijiii/plms-sys-sub004/internal/ledger"
	"github.com/Theijiii/plms-sys-sub004/internal/status"
)

// Result carries the next status and comment log produced by one action.
// The caller persists both externally and must replace, not merge, any
// local copy with the store's authoritative post-update values.
type Result struct {
	Status     domain.Status
	CommentLog string
}

// Engine applies one reviewer action to one application. It is free of side
// effects: all persistence and notification happens in the caller.
type Engine struct {
	registries status.Set
	allowed    map[domain.Status][]domain.Status
	now        func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the engine's clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine builds an Engine over the given per-domain registries.
//
// The transition table is explicit: every non-terminal status may move to
// every other status (manual override is intentional), and Rejected is
// terminal with no outgoing transitions.
func NewEngine(registries status.Set, opts ...Option) *Engine {
	e := &Engine{
		registries: registries,
		allowed:    make(map[domain.Status][]domain.Status, len(domain.AllStatuses)),
		now:        time.Now,
	}
	for _, from := range domain.AllStatuses {
		if from == domain.StatusRejected {
			e.allowed[from] = nil
			continue
		}
		for _, to := range domain.AllStatuses {
			if to == from {
				continue
			}
			e.allowed[from] = append(e.allowed[from], to)
		}
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Transitions returns the statuses reachable from current. A Rejected
// application has none; the action menu is hidden for it.
func (e *Engine) Transitions(current domain.Status) []domain.Status {
	out := make([]domain.Status, len(e.allowed[current]))
	copy(out, e.allowed[current])
	return out
}

// ApplyAction validates and applies one reviewer action, returning the next
// status and the comment log with the remark appended. In order:
//
//  1. an application already in the terminal Rejected state is refused;
//  2. a rejection requires a non-empty comment, checked before anything is
//     encoded;
//  3. targetCode must convert to a status in the domain's vocabulary;
//  4. the comment, when present, is timestamped and appended to the log.
func (e *Engine) ApplyAction(app *domain.PermitApplication, targetCode, comment string) (*Result, error) {
	reg := e.registries.For(app.Domain)
	if reg == nil {
		return nil, domain.ErrUnknownDomain
	}

	current := reg.FromWire(string(app.Status))
	if current == domain.StatusRejected {
		return nil, domain.ErrTerminalState
	}

	target, ok := reg.Lookup(targetCode)
	if !ok {
		return nil, domain.ErrUnknownStatus
	}

	comment = strings.TrimSpace(comment)
	if target == domain.StatusRejected && comment == "" {
		return nil, domain.ErrValidation
	}

	if !e.canMove(current, target) {
		return nil, domain.ErrUnknownStatus
	}

	log := app.CommentLog
	if comment != "" {
		log = ledger.Append(log, domain.LedgerEntry{At: e.now().UTC(), Text: comment})
	}

	return &Result{Status: target, CommentLog: log}, nil
}

func (e *Engine) canMove(from, to domain.Status) bool {
	if from == to {
		// Re-selecting the current stage just appends the remark.
		return true
	}
	for _, t := range e.allowed[from] {
		if t == to {
			return true
		}
	}
	return false
}
