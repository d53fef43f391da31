package paging

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Replay", func() {
	It("should find the next use of each reference", func() {
		replay := newReplay([]int{1, 2, 1, 3, 2, 1})

		Expect(replay.NextUseAfter(0)).To(Equal(2))
		Expect(replay.NextUseAfter(1)).To(Equal(4))
		Expect(replay.NextUseAfter(2)).To(Equal(5))
		Expect(replay.NextUseAfter(3)).To(Equal(Never))
		Expect(replay.NextUseAfter(4)).To(Equal(Never))
		Expect(replay.NextUseAfter(5)).To(Equal(Never))
	})

	It("should expose the remaining references", func() {
		replay := newReplay([]int{1, 2, 3, 4})
		replay.now = 1

		Expect(replay.Now()).To(Equal(1))
		Expect(replay.Remaining()).To(Equal([]int{3, 4}))
		Expect(replay.Reference()).To(HaveLen(4))
	})
})

var _ = Describe("ResidentSet", func() {
	It("should keep pages in load order", func() {
		set := NewResidentSet(3)
		set.load(5, 0)
		set.load(6, 1)
		set.load(7, 2)
		set.evict(6)
		set.load(8, 3)

		Expect(set.Pages()).To(Equal([]int{5, 7, 8}))
		Expect(set.Len()).To(Equal(set.Capacity()))
		Expect(set.Contains(6)).To(BeFalse())
		Expect(set.IsFull()).To(BeTrue())
	})

	It("should refresh the last access", func() {
		set := NewResidentSet(1)
		set.load(5, 0)
		set.touch(5, 4)

		Expect(set.LastAccess(5)).To(Equal(4))
	})

	It("should panic when loading into a full set", func() {
		set := NewResidentSet(0)

		Expect(set.IsFull()).To(BeTrue())
		Expect(func() { set.load(1, 0) }).To(Panic())
	})

	It("should panic when evicting a page that is not resident", func() {
		set := NewResidentSet(1)

		Expect(func() { set.evict(1) }).To(Panic())
	})
})
