// Package event is a small in-process dispatcher for domain events.
//
//	d := event.New()
//	d.Listen(services.EventOrderPlaced, func(ctx context.Context, p any) {
//	    order := p.(models.Order)
//	    ...
//	})
//	d.Fire(ctx, services.EventOrderPlaced, order)
package event

import (
	"context"
	"fmt"
	"sync"

	"github.com/shashiranjanraj/plantnet/pkg/logger"
)

// Handler receives an event payload.
type Handler func(ctx context.Context, payload any)

// Dispatcher fans events out to registered listeners.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

// New returns an empty Dispatcher.
func New() *Dispatcher {
	return &Dispatcher{handlers: map[string][]Handler{}}
}

// Listen registers a handler for the named event.
func (d *Dispatcher) Listen(name string, h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[name] = append(d.handlers[name], h)
}

func (d *Dispatcher) snapshot(name string) []Handler {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]Handler(nil), d.handlers[name]...)
}

// Fire runs every listener in registration order on the caller's
// goroutine. A panicking listener is logged and does not stop the rest.
// A nil Dispatcher drops the event.
func (d *Dispatcher) Fire(ctx context.Context, name string, payload any) {
	if d == nil {
		return
	}
	for _, h := range d.snapshot(name) {
		call(ctx, name, h, payload)
	}
}

// Flush removes all listeners.
func (d *Dispatcher) Flush() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers = map[string][]Handler{}
}

func call(ctx context.Context, name string, h Handler, payload any) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.WithCtx(ctx).Error("event: listener panicked", "event", name, "error", fmt.Sprintf("%v", rec))
		}
	}()
	h(ctx, payload)
}

