package paging

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownPolicy is returned when a policy name is not recognized.
var ErrUnknownPolicy = errors.New("unknown replacement policy")

// Policy names a page replacement policy.
type Policy string

// The supported policies.
const (
	FIFO    Policy = "fifo"
	LRU     Policy = "lru"
	Optimal Policy = "optimal"
)

// AllPolicies returns every supported policy, in reporting order.
func AllPolicies() []Policy {
	return []Policy{FIFO, LRU, Optimal}
}

// ParsePolicy converts a policy name, ignoring case, into a Policy.
func ParsePolicy(name string) (Policy, error) {
	p := Policy(strings.ToLower(strings.TrimSpace(name)))

	switch p {
	case FIFO, LRU, Optimal:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
	}
}

// NewVictimFinder returns the eviction strategy of the policy.
func (p Policy) NewVictimFinder() VictimFinder {
	switch p {
	case FIFO:
		return NewFIFOVictimFinder()
	case LRU:
		return NewLRUVictimFinder()
	case Optimal:
		return NewOptimalVictimFinder()
	default:
		panic(fmt.Sprintf("%s: %q", ErrUnknownPolicy, string(p)))
	}
}

// Simulate replays the reference string under one policy.
func Simulate(p Policy, reference []int, frames int) (Result, error) {
	return MakeBuilder().WithPolicy(p).Build().Run(reference, frames)
}

// SimulateFIFO replays the reference string with first-in-first-out
// replacement.
func SimulateFIFO(reference []int, frames int) (Result, error) {
	return Simulate(FIFO, reference, frames)
}

// SimulateLRU replays the reference string with least-recently-used
// replacement.
func SimulateLRU(reference []int, frames int) (Result, error) {
	return Simulate(LRU, reference, frames)
}

// SimulateOptimal replays the reference string with Belady's optimal
// replacement.
func SimulateOptimal(reference []int, frames int) (Result, error) {
	return Simulate(Optimal, reference, frames)
}
