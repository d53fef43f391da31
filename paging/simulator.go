// Package paging replays page reference strings against a fixed number of
// frames and counts page faults and hits under different replacement policies.
package paging

import (
	"errors"
	"fmt"
	"slices"

	"github.com/sarchlab/pagesim/hooking"
)

// ErrNegativeFrames is returned when a run is asked to use fewer than zero
// frames.
var ErrNegativeFrames = errors.New("frame count must not be negative")

// HookPosPageHit marks an access to a resident page.
var HookPosPageHit = &hooking.HookPos{Name: "PageHit"}

// HookPosPageFault marks an access to a page that had to be loaded.
var HookPosPageFault = &hooking.HookPos{Name: "PageFault"}

// Access is the item passed to hooks, one per reference.
type Access struct {
	Simulator string
	Time      int
	Page      int
	Hit       bool
	Victim    int
	Evicted   bool
	Resident  []int
}

// Simulator replays reference strings with one victim finder.
type Simulator struct {
	hooking.HookableBase

	name   string
	finder VictimFinder
}

// Name returns the name of the simulator.
func (s *Simulator) Name() string {
	return s.name
}

// Run replays the reference string on a set of frames that starts empty.
func (s *Simulator) Run(reference []int, frames int) (Result, error) {
	if frames < 0 {
		return Result{}, fmt.Errorf("%w: %d", ErrNegativeFrames, frames)
	}

	set := NewResidentSet(frames)
	replay := newReplay(reference)
	result := Result{}

	for now, page := range reference {
		replay.now = now

		if set.Contains(page) {
			result.Hits++
			set.touch(page, now)
			s.invokeHook(HookPosPageHit, set, Access{
				Time: now,
				Page: page,
				Hit:  true,
			})

			continue
		}

		result.Faults++
		access := Access{Time: now, Page: page}

		if frames == 0 {
			s.invokeHook(HookPosPageFault, set, access)
			continue
		}

		if set.IsFull() {
			access.Victim = s.evict(set, replay)
			access.Evicted = true
		}

		set.load(page, now)
		s.invokeHook(HookPosPageFault, set, access)
	}

	return result, nil
}

func (s *Simulator) evict(set *ResidentSet, replay *Replay) int {
	victim := s.finder.FindVictim(set, replay)
	if !set.Contains(victim) {
		panic(fmt.Sprintf("%s: victim %d is not resident", s.name, victim))
	}

	set.evict(victim)

	return victim
}

func (s *Simulator) invokeHook(
	pos *hooking.HookPos,
	set *ResidentSet,
	access Access,
) {
	if s.NumHooks() == 0 {
		return
	}

	access.Simulator = s.name
	access.Resident = slices.Clone(set.Pages())

	s.InvokeHook(hooking.HookCtx{
		Domain: s,
		Pos:    pos,
		Item:   access,
	})
}
