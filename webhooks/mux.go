package webhooks

import "context"

// HandlerFunc handles one dispatched event.
type HandlerFunc func(ctx context.Context, ev Event) error

// Mux routes typed events to registered handlers. It is ergonomic sugar
// over a type switch for callers wiring per-event business logic; the
// authoritative dispatch contract is ParsePayload. Register everything
// before dispatching: Mux is not safe for concurrent mutation.
type Mux struct {
	handlers map[EventType]HandlerFunc
	fallback HandlerFunc
}

func NewMux() *Mux {
	return &Mux{handlers: make(map[EventType]HandlerFunc)}
}

// Handle registers fn for the given event types.
func (m *Mux) Handle(fn HandlerFunc, types ...EventType) {
	for _, t := range types {
		m.handlers[t] = fn
	}
}

// Fallback registers fn for event types with no dedicated handler.
func (m *Mux) Fallback(fn HandlerFunc) {
	m.fallback = fn
}

// Dispatch routes ev to its handler, or the fallback, or drops it.
func (m *Mux) Dispatch(ctx context.Context, ev Event) error {
	if fn, ok := m.handlers[ev.EventType()]; ok {
		return fn(ctx, ev)
	}
	if m.fallback != nil {
		return m.fallback(ctx, ev)
	}
	return nil
}
