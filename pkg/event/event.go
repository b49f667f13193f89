// Package event provides an in-process event dispatcher. Services fire
// domain events; listeners registered at boot react to them (cache
// invalidation, audit logging).
package event

import (
	"context"
	"sync"

	"github.com/bilemo/api/pkg/workerpool"
)

// Handler receives an event payload.
type Handler func(ctx context.Context, payload any)

var (
	mu       sync.RWMutex
	handlers = map[string][]Handler{}
	pool     *workerpool.Pool
)

// Listen registers a handler for the given event name.
func Listen(event string, handler Handler) {
	mu.Lock()
	defer mu.Unlock()
	handlers[event] = append(handlers[event], handler)
}

// UsePool runs asynchronous listeners on p. Without a pool each listener
// gets its own goroutine.
func UsePool(p *workerpool.Pool) {
	mu.Lock()
	defer mu.Unlock()
	pool = p
}

func listeners(event string) ([]Handler, *workerpool.Pool) {
	mu.RLock()
	defer mu.RUnlock()
	hs := make([]Handler, len(handlers[event]))
	copy(hs, handlers[event])
	return hs, pool
}

// Fire dispatches an event synchronously to all registered listeners.
func Fire(ctx context.Context, event string, payload any) {
	hs, _ := listeners(event)
	for _, h := range hs {
		h(ctx, payload)
	}
}

// FireAsync dispatches the event in the background and returns immediately.
// Listeners get a context that outlives the request. When the pool is full
// or closed the listener runs inline.
func FireAsync(ctx context.Context, event string, payload any) {
	detached := context.WithoutCancel(ctx)
	hs, p := listeners(event)
	for _, h := range hs {
		task := func() { h(detached, payload) }
		if p == nil {
			go task()
			continue
		}
		if err := p.Submit(task); err != nil {
			task()
		}
	}
}

// Flush removes all listeners and detaches the pool (useful in tests).
func Flush() {
	mu.Lock()
	defer mu.Unlock()
	handlers = map[string][]Handler{}
	pool = nil
}
