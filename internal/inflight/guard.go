// Package inflight rejects re-triggering an action while its previous
// invocation is still waiting on the network.
package inflight

import (
	"sync"

	apperrors "github.com/spec-kit/ticket-console/pkg/util"
)

// Guard tracks which named actions are running.
type Guard struct {
	mu      sync.Mutex
	running map[string]bool
}

// Begin marks action as running. It fails with ACTION_IN_FLIGHT when the
// action is already running; otherwise the returned release must be called
// once the action resolves.
func (g *Guard) Begin(action string) (release func(), err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.running == nil {
		g.running = make(map[string]bool)
	}
	if g.running[action] {
		return nil, apperrors.NewActionInFlight(action)
	}
	g.running[action] = true

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.running, action)
			g.mu.Unlock()
		})
	}, nil
}

// Busy reports whether action is running.
func (g *Guard) Busy(action string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.running[action]
}
