package pipeline

import "github.com/sarchlab/akita/v4/sim"

// HookPosCycleEnd is the hook position invoked after each fully applied
// cycle. The hook context carries the engine as the domain and the cycle's
// CycleRecord as the item. Hooks run synchronously in registration order.
var HookPosCycleEnd = &sim.HookPos{Name: "CycleEnd"}

// ObserverFunc is a callback observing the engine after each fully applied
// cycle. The callback pulls fresh state through the engine's accessors.
type ObserverFunc func(e *Engine)

// observerHook wraps an ObserverFunc in a comparable value. Hook
// registration rejects duplicates with ==, which a bare func type cannot
// support; each wrapper is a distinct pointer, so any number of observers
// can subscribe.
type observerHook struct {
	fn ObserverFunc
}

// Func implements sim.Hook.
func (h *observerHook) Func(ctx sim.HookCtx) {
	h.fn(ctx.Domain.(*Engine))
}

// Observe subscribes a callback notified after each fully applied cycle, in
// registration order.
func (e *Engine) Observe(fn ObserverFunc) {
	e.AcceptHook(&observerHook{fn: fn})
}

// WithObserver registers callbacks at construction time. Observers can also
// be added later via Observe.
func WithObserver(fns ...ObserverFunc) EngineOption {
	return func(e *Engine) {
		for _, fn := range fns {
			e.Observe(fn)
		}
	}
}
