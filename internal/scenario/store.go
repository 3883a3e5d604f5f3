// Package scenario keeps the per-user scenario lists. Lists are ordered and
// append-only except for an explicit Clear; they live in process memory only.
package scenario

import (
	"fmt"
	"net/http"
	"sync"

	"Atex/internal/auth"
	"Atex/internal/calc/zone"
)

type List struct {
	mu    sync.Mutex
	items []zone.Scenario
}

// Append adds sc to the end of the list. A blank name becomes "Scenario N",
// N being the scenario's position. It returns the stored scenario.
func (l *List) Append(sc zone.Scenario) zone.Scenario {
	l.mu.Lock()
	defer l.mu.Unlock()

	if sc.Name == "" {
		sc.Name = fmt.Sprintf("Scenario %d", len(l.items)+1)
	}
	l.items = append(l.items, sc)
	return sc
}

// Snapshot returns a copy of the scenarios in insertion order.
func (l *List) Snapshot() []zone.Scenario {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]zone.Scenario, len(l.items))
	copy(out, l.items)
	return out
}

func (l *List) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

func (l *List) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = nil
}

// Workspaces holds one List per user. It is created by the caller and passed
// to every handler that needs scenario state.
type Workspaces struct {
	mu    sync.Mutex
	lists map[int]*List
}

func NewWorkspaces() *Workspaces {
	return &Workspaces{lists: make(map[int]*List)}
}

// Get returns the list for userID, creating an empty one on first use.
func (w *Workspaces) Get(userID int) *List {
	w.mu.Lock()
	defer w.mu.Unlock()

	l, ok := w.lists[userID]
	if !ok {
		l = &List{}
		w.lists[userID] = l
	}
	return l
}

// ForRequest returns the list of the user authenticated on r.
func (w *Workspaces) ForRequest(r *http.Request) (*List, bool) {
	id, ok := auth.UserID(r.Context())
	if !ok {
		return nil, false
	}
	return w.Get(id), true
}
