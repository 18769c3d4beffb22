// Package middleware provides composable wrappers around a RecordStore:
// structured logging and Prometheus instrumentation of every store call.
package middleware

import "github.com/askdeskhq/askdesk/pkg/ports"

// Middleware allows wrapping a RecordStore to add behavior.
type Middleware func(ports.RecordStore) ports.RecordStore

// Chain applies middlewares so that the first one listed observes the call
// outermost.
func Chain(store ports.RecordStore, mws ...Middleware) ports.RecordStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}
