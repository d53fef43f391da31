package paging

import "github.com/sarchlab/pagesim/hooking"

// Builder can build simulators.
type Builder struct {
	name   string
	finder VictimFinder
	hooks  []hooking.Hook
}

// MakeBuilder creates a new builder.
func MakeBuilder() Builder {
	return Builder{
		name: "Simulator",
	}
}

// WithName sets the name of the simulator to build.
func (b Builder) WithName(name string) Builder {
	b.name = name
	return b
}

// WithVictimFinder sets the eviction strategy.
func (b Builder) WithVictimFinder(finder VictimFinder) Builder {
	b.finder = finder
	return b
}

// WithPolicy sets both the eviction strategy and the name from a policy.
func (b Builder) WithPolicy(p Policy) Builder {
	b.finder = p.NewVictimFinder()
	b.name = string(p)

	return b
}

// WithHook registers a hook to the simulator to build.
func (b Builder) WithHook(hook hooking.Hook) Builder {
	b.hooks = append(b.hooks[:len(b.hooks):len(b.hooks)], hook)
	return b
}

// Build creates a simulator.
func (b Builder) Build() *Simulator {
	if b.finder == nil {
		panic("victim finder is not set")
	}

	s := &Simulator{
		name:   b.name,
		finder: b.finder,
	}

	for _, h := range b.hooks {
		s.AcceptHook(h)
	}

	return s
}
