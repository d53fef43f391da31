package paging

import (
	"fmt"
	"sync"

	"github.com/sarchlab/pagesim/hooking"
)

// Compare replays the reference string under every policy in parallel. The
// hooks are attached to every simulator, so they must be safe for concurrent
// use.
func Compare(
	reference []int,
	frames int,
	hooks ...hooking.Hook,
) (Comparison, error) {
	if frames < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeFrames, frames)
	}

	policies := AllPolicies()
	results := make([]Result, len(policies))
	errs := make([]error, len(policies))

	var wg sync.WaitGroup

	for i, p := range policies {
		b := MakeBuilder().WithPolicy(p)
		for _, h := range hooks {
			b = b.WithHook(h)
		}

		sim := b.Build()

		wg.Add(1)

		go func() {
			defer wg.Done()
			results[i], errs[i] = sim.Run(reference, frames)
		}()
	}

	wg.Wait()

	report := make(Comparison, len(policies))

	for i, p := range policies {
		if errs[i] != nil {
			return nil, fmt.Errorf("%s: %w", p, errs[i])
		}

		report[p] = results[i]
	}

	return report, nil
}
