package paging

import (
	"fmt"
	"slices"
)

// ResidentSet is the set of pages held by the simulated frames. Pages are kept
// in the order they were loaded, and each one remembers when it was last
// accessed.
type ResidentSet struct {
	capacity   int
	pages      []int
	lastAccess map[int]int
}

// NewResidentSet creates an empty resident set that can hold capacity pages.
func NewResidentSet(capacity int) *ResidentSet {
	return &ResidentSet{
		capacity:   capacity,
		pages:      []int{},
		lastAccess: map[int]int{},
	}
}

// Capacity returns the number of frames.
func (s *ResidentSet) Capacity() int {
	return s.capacity
}

// Len returns the number of resident pages.
func (s *ResidentSet) Len() int {
	return len(s.pages)
}

// IsFull tells if loading another page requires an eviction.
func (s *ResidentSet) IsFull() bool {
	return len(s.pages) >= s.capacity
}

// Contains tells if the page is resident.
func (s *ResidentSet) Contains(page int) bool {
	_, ok := s.lastAccess[page]
	return ok
}

// Pages returns the resident pages, oldest load first. The returned slice is
// owned by the set and must not be modified.
func (s *ResidentSet) Pages() []int {
	return s.pages
}

// LastAccess returns the index of the most recent access to a resident page.
func (s *ResidentSet) LastAccess(page int) int {
	t, ok := s.lastAccess[page]
	if !ok {
		panic(fmt.Sprintf("page %d is not resident", page))
	}

	return t
}

func (s *ResidentSet) load(page, now int) {
	if s.IsFull() {
		panic("loading into a full resident set")
	}

	s.pages = append(s.pages, page)
	s.lastAccess[page] = now
}

func (s *ResidentSet) touch(page, now int) {
	s.lastAccess[page] = now
}

func (s *ResidentSet) evict(page int) {
	i := slices.Index(s.pages, page)
	if i < 0 {
		panic(fmt.Sprintf("evicting page %d which is not resident", page))
	}

	s.pages = slices.Delete(s.pages, i, i+1)
	delete(s.lastAccess, page)
}
