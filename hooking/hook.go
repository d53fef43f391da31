// Package hooking lets observers attach to a simulator and watch every access
// it replays.
package hooking

// HookPos names a point in a replay where hooks fire.
type HookPos struct {
	Name string
}

// HookCtx describes one hook invocation: which object fired it, at which
// position, and the event observed there.
type HookCtx struct {
	Domain Hookable
	Pos    *HookPos
	Item   interface{}
}

// Hookable is implemented by anything observers can attach to.
type Hookable interface {
	AcceptHook(hook Hook)
	NumHooks() int
}

// Hook observes the events of a Hookable.
type Hook interface {
	Func(ctx HookCtx)
}

// HookFunc adapts a plain function to the Hook interface.
type HookFunc func(ctx HookCtx)

// Func calls f(ctx).
func (f HookFunc) Func(ctx HookCtx) {
	f(ctx)
}

// HookableBase keeps the registered hooks of an embedding type and invokes
// them in registration order.
type HookableBase struct {
	hooks []Hook
}

// NumHooks returns how many hooks are attached.
func (h *HookableBase) NumHooks() int {
	return len(h.hooks)
}

// AcceptHook attaches a hook. Attaching the same hook value twice panics;
// function hooks are exempt since they cannot be compared.
func (h *HookableBase) AcceptHook(hook Hook) {
	if _, isFunc := hook.(HookFunc); !isFunc {
		for _, attached := range h.hooks {
			if attached == hook {
				panic("hook already attached")
			}
		}
	}

	h.hooks = append(h.hooks, hook)
}

// InvokeHook passes ctx to every attached hook.
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.hooks {
		hook.Func(ctx)
	}
}
