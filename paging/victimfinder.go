package paging

// A VictimFinder decides which resident page should be evicted. It is only
// asked when the resident set is full and not empty, and it must return one of
// the resident pages. Victim finders keep no state of their own, so one finder
// can serve many runs at the same time.
type VictimFinder interface {
	FindVictim(set *ResidentSet, replay *Replay) int
}

// FIFOVictimFinder evicts the page that was loaded first.
type FIFOVictimFinder struct {
}

// NewFIFOVictimFinder returns a newly constructed FIFO evictor.
func NewFIFOVictimFinder() *FIFOVictimFinder {
	return new(FIFOVictimFinder)
}

// FindVictim returns the oldest loaded page.
func (e *FIFOVictimFinder) FindVictim(set *ResidentSet, _ *Replay) int {
	return set.Pages()[0]
}

// LRUVictimFinder evicts the least recently used page.
type LRUVictimFinder struct {
}

// NewLRUVictimFinder returns a newly constructed LRU evictor.
func NewLRUVictimFinder() *LRUVictimFinder {
	return new(LRUVictimFinder)
}

// FindVictim returns the page with the oldest last access. On a tie, the page
// loaded first wins.
func (e *LRUVictimFinder) FindVictim(set *ResidentSet, _ *Replay) int {
	pages := set.Pages()

	victim := pages[0]
	oldest := set.LastAccess(victim)

	for _, page := range pages[1:] {
		if t := set.LastAccess(page); t < oldest {
			victim, oldest = page, t
		}
	}

	return victim
}

// OptimalVictimFinder implements Belady's algorithm. It evicts the page whose
// next use is the furthest in the future. Pages that are never used again are
// the furthest of all.
type OptimalVictimFinder struct {
}

// NewOptimalVictimFinder returns a newly constructed optimal evictor.
func NewOptimalVictimFinder() *OptimalVictimFinder {
	return new(OptimalVictimFinder)
}

// FindVictim returns the page used furthest in the future. On a tie, which can
// only happen between pages that are never used again, the page loaded first
// wins.
func (e *OptimalVictimFinder) FindVictim(set *ResidentSet, replay *Replay) int {
	pages := set.Pages()

	victim := pages[0]
	furthest := e.nextUse(set, replay, victim)

	for _, page := range pages[1:] {
		if furthest == Never {
			break
		}

		if next := e.nextUse(set, replay, page); next > furthest {
			victim, furthest = page, next
		}
	}

	return victim
}

// nextUse relies on the last access being the latest reference to the page
// before the current one, so the next reference after it is the next use.
func (e *OptimalVictimFinder) nextUse(
	set *ResidentSet,
	replay *Replay,
	page int,
) int {
	return replay.NextUseAfter(set.LastAccess(page))
}
