package paging

import (
	"log"

	"github.com/sarchlab/pagesim/hooking"
)

// LogHookBase provides the common logic for all hooks that write to a logger.
type LogHookBase struct {
	*log.Logger
}

// AccessLogger is a hook that prints one line for every access.
type AccessLogger struct {
	LogHookBase
}

// NewAccessLogger returns a new AccessLogger that writes into the logger.
func NewAccessLogger(logger *log.Logger) *AccessLogger {
	h := new(AccessLogger)
	h.Logger = logger

	return h
}

// Func writes the access into the logger.
func (h *AccessLogger) Func(ctx hooking.HookCtx) {
	access, ok := ctx.Item.(Access)
	if !ok {
		return
	}

	switch {
	case access.Hit:
		h.Printf("%s, %d, page %d, hit, %v",
			access.Simulator, access.Time, access.Page, access.Resident)
	case access.Evicted:
		h.Printf("%s, %d, page %d, fault, evict %d, %v",
			access.Simulator, access.Time, access.Page, access.Victim,
			access.Resident)
	default:
		h.Printf("%s, %d, page %d, fault, %v",
			access.Simulator, access.Time, access.Page, access.Resident)
	}
}
