package labelsync

import (
	"sync"

	"github.com/agentstation/labelsync/pkg/labels"
	"github.com/agentstation/labelsync/pkg/reconciler"
)

// Hook function types for run events
type (
	// EntryHook is called for each calculated diff entry
	EntryHook func(entry labels.Entry)

	// OutcomeHook is called for each applied action
	OutcomeHook func(outcome reconciler.Outcome)
)

// hooks manages event callbacks for a run
type hooks struct {
	mu        sync.RWMutex
	onEntry   []EntryHook
	onOutcome []OutcomeHook
}

func newHooks() *hooks {
	return &hooks{}
}

// OnEntry registers a callback for diff entries
func (h *hooks) OnEntry(fn EntryHook) {
	if fn == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onEntry = append(h.onEntry, fn)
}

// OnOutcome registers a callback for action outcomes
func (h *hooks) OnOutcome(fn OutcomeHook) {
	if fn == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onOutcome = append(h.onOutcome, fn)
}

func (h *hooks) triggerEntries(diff []labels.Entry) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, entry := range diff {
		for _, hook := range h.onEntry {
			hook(entry)
		}
	}
}

func (h *hooks) triggerOutcomes(result *reconciler.Result) {
	if result == nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, outcome := range result.Outcomes {
		for _, hook := range h.onOutcome {
			hook(outcome)
		}
	}
}
