package hooking

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = Describe("HookableBase", func() {
	var (
		mockCtrl *gomock.Controller
		base     *HookableBase
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		base = &HookableBase{}
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should register hooks", func() {
		hook := NewMockHook(mockCtrl)

		ctx := HookCtx{Domain: base, Item: 7}
		hook.EXPECT().Func(ctx)

		base.AcceptHook(hook)
		base.InvokeHook(ctx)

		Expect(base.NumHooks()).To(Equal(1))
	})

	It("should panic on duplicated hooks", func() {
		hook := NewMockHook(mockCtrl)
		base.AcceptHook(hook)

		Expect(func() { base.AcceptHook(hook) }).To(Panic())
	})

	It("should invoke hooks in registration order", func() {
		pos := &HookPos{Name: "Test"}
		ctx := HookCtx{Domain: base, Pos: pos, Item: 1}

		first := NewMockHook(mockCtrl)
		second := NewMockHook(mockCtrl)
		gomock.InOrder(
			first.EXPECT().Func(ctx),
			second.EXPECT().Func(ctx),
		)

		base.AcceptHook(first)
		base.AcceptHook(second)
		base.InvokeHook(ctx)
	})

	It("should accept several function hooks", func() {
		count := 0
		f := HookFunc(func(HookCtx) { count++ })

		base.AcceptHook(f)
		base.AcceptHook(f)
		base.InvokeHook(HookCtx{})

		Expect(count).To(Equal(2))
	})
})
