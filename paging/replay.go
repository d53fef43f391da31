package paging

import "math"

// Never is the next-use distance of a page that is not referenced again.
const Never = math.MaxInt

// Replay describes the reference string being replayed and the position of the
// access that is being served.
type Replay struct {
	reference []int
	now       int
	nextUse   []int
}

func newReplay(reference []int) *Replay {
	return &Replay{reference: reference}
}

// Now returns the index of the current access.
func (r *Replay) Now() int {
	return r.now
}

// Reference returns the whole reference string. It must not be modified.
func (r *Replay) Reference() []int {
	return r.reference
}

// Remaining returns the references after the current access.
func (r *Replay) Remaining() []int {
	return r.reference[r.now+1:]
}

// NextUseAfter returns the index of the first reference to the same page as
// reference[i] that comes after i, or Never.
func (r *Replay) NextUseAfter(i int) int {
	if r.nextUse == nil {
		r.buildNextUse()
	}

	return r.nextUse[i]
}

func (r *Replay) buildNextUse() {
	r.nextUse = make([]int, len(r.reference))
	seen := make(map[int]int)

	for i := len(r.reference) - 1; i >= 0; i-- {
		page := r.reference[i]

		next, ok := seen[page]
		if !ok {
			next = Never
		}

		r.nextUse[i] = next
		seen[page] = i
	}
}
