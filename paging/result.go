package paging

// Result counts the outcome of replaying a reference string. Faults plus Hits
// always equals the length of the reference string.
type Result struct {
	Faults int `json:"faults"`
	Hits   int `json:"hits"`
}

// Accesses returns the number of references that were replayed.
func (r Result) Accesses() int {
	return r.Faults + r.Hits
}

// FaultRate returns the fraction of accesses that faulted. An empty run has a
// fault rate of 0.
func (r Result) FaultRate() float64 {
	if r.Accesses() == 0 {
		return 0
	}

	return float64(r.Faults) / float64(r.Accesses())
}

// Comparison holds the result of every policy on the same reference string.
type Comparison map[Policy]Result
