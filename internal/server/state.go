package server

import (
	"net/http"
	"sync"

	"github.com/anvilworks/forgeledger/internal/logger"
	"github.com/anvilworks/forgeledger/internal/snapshot"
)

// stateGuard serializes access to the in-memory shop state. Reads share
// the lock; mutating requests take it exclusively and persist a snapshot
// on the way out, so every successful mutation survives a restart.
type stateGuard struct {
	mu     sync.RWMutex
	stores snapshot.Stores
	path   string
}

func newStateGuard(stores snapshot.Stores, path string) *stateGuard {
	return &stateGuard{stores: stores, path: path}
}

func mutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	default:
		return false
	}
}

// Middleware wraps handlers with the state lock and snapshot autosave.
func (g *stateGuard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !mutating(r.Method) {
			g.mu.RLock()
			defer g.mu.RUnlock()
			next.ServeHTTP(w, r)
			return
		}

		g.mu.Lock()
		defer g.mu.Unlock()

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		if rw.statusCode < 400 {
			if err := snapshot.Save(g.path, snapshot.Capture(g.stores)); err != nil {
				// The mutation already succeeded; losing the autosave is
				// recoverable via the explicit save endpoint.
				logger.FromContext(r.Context()).Error("Snapshot autosave failed", "error", err)
			}
		}
	})
}
