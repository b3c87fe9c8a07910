package frame_test

import (
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/sourcespace/internal/frame"
)

var _ = Describe("Driver", func() {
	var (
		src   *frame.Manual
		calls []string
		d     *frame.Driver
	)

	BeforeEach(func() {
		src = frame.NewManual(time.Unix(0, 0), time.Second/60)
		calls = nil
		d = frame.NewDriver(src,
			func() { calls = append(calls, "step") },
			func() { calls = append(calls, "draw") },
		)
	})

	It("starts idle and does nothing until started", func() {
		Expect(d.State()).To(Equal(frame.Idle))
		Expect(src.Fire()).To(Equal(0))
		Expect(calls).To(BeEmpty())
	})

	It("runs step then draw once per frame", func() {
		Expect(d.Start()).To(BeTrue())
		Expect(d.State()).To(Equal(frame.Running))
		Expect(src.Pending()).To(Equal(1))

		src.Advance(3)
		Expect(calls).To(Equal([]string{"step", "draw", "step", "draw", "step", "draw"}))
		Expect(d.Frames()).To(BeEquivalentTo(3))
		Expect(d.LastFrame()).To(Equal(src.Now()))
		Expect(src.Pending()).To(Equal(1))
	})

	It("refuses a second start", func() {
		Expect(d.Start()).To(BeTrue())
		Expect(d.Start()).To(BeFalse())
		Expect(src.Pending()).To(Equal(1))
	})

	It("runs nothing after cancel even if the source fires again", func() {
		d.Start()
		src.Fire()
		d.Cancel()

		Expect(d.State()).To(Equal(frame.Cancelled))
		Expect(src.Pending()).To(Equal(0))
		Expect(src.Fire()).To(Equal(0))
		Expect(calls).To(HaveLen(2))
		Expect(d.Frames()).To(BeEquivalentTo(1))
	})

	It("treats repeated cancels as no-ops", func() {
		d.Start()
		d.Cancel()
		d.Cancel()
		Expect(d.State()).To(Equal(frame.Cancelled))
	})

	It("can be cancelled before it starts", func() {
		d.Cancel()
		Expect(d.State()).To(Equal(frame.Cancelled))
		Expect(d.Start()).To(BeFalse())
		Expect(src.Pending()).To(Equal(0))
	})

	It("lets an in-flight frame finish before cancel returns", func() {
		entered := make(chan struct{})
		release := make(chan struct{})
		var steps atomic.Int32
		blocking := frame.NewDriver(src, func() {
			steps.Add(1)
			close(entered)
			<-release
		}, nil)
		blocking.Start()

		fired := make(chan struct{})
		go func() {
			defer close(fired)
			src.Fire()
		}()
		Eventually(entered).Should(BeClosed())

		cancelled := make(chan struct{})
		go func() {
			defer close(cancelled)
			blocking.Cancel()
		}()
		Consistently(cancelled, 50*time.Millisecond).ShouldNot(BeClosed())

		close(release)
		Eventually(cancelled).Should(BeClosed())
		Eventually(fired).Should(BeClosed())

		Expect(src.Fire()).To(Equal(0))
		Expect(steps.Load()).To(BeEquivalentTo(1))
		Expect(blocking.Frames()).To(BeEquivalentTo(1))
	})
})

var _ = Describe("State", func() {
	It("has readable names", func() {
		Expect(frame.Idle.String()).To(Equal("idle"))
		Expect(frame.Running.String()).To(Equal("running"))
		Expect(frame.Cancelled.String()).To(Equal("cancelled"))
	})
})

var _ = Describe("Timer source", func() {
	It("drives frames until cancelled", func() {
		var steps atomic.Int64
		d := frame.NewDriver(frame.NewTimer(500), func() { steps.Add(1) }, nil)
		d.Start()

		Eventually(steps.Load).Should(BeNumerically(">=", 3))
		d.Cancel()
		n := steps.Load()
		Consistently(steps.Load, 50*time.Millisecond).Should(Equal(n))
		Expect(d.Frames()).To(BeEquivalentTo(n))
	})
})

var _ = Describe("TeaSource", func() {
	It("delivers frames as tick messages", func() {
		src := frame.NewTeaSource(1000)
		steps := 0
		d := frame.NewDriver(src, func() { steps++ }, nil)
		d.Start()

		cmd := src.Cmd()
		Expect(cmd).NotTo(BeNil())
		Expect(src.Cmd()).To(BeNil())

		msg, ok := cmd().(frame.FrameMsg)
		Expect(ok).To(BeTrue())
		Expect(src.Deliver(msg)).To(BeTrue())
		Expect(steps).To(Equal(1))

		next := src.Cmd()
		Expect(next).NotTo(BeNil())
		stale := next().(frame.FrameMsg)

		d.Cancel()
		Expect(src.Pending()).To(Equal(0))
		Expect(src.Cmd()).To(BeNil())
		Expect(src.Deliver(stale)).To(BeFalse())
		Expect(steps).To(Equal(1))
	})

	It("drops messages that were already delivered", func() {
		src := frame.NewTeaSource(1000)
		runs := 0
		src.Request(func(time.Time) { runs++ })

		msg := src.Cmd()().(frame.FrameMsg)
		Expect(src.Deliver(msg)).To(BeTrue())
		Expect(src.Deliver(msg)).To(BeFalse())
		Expect(runs).To(Equal(1))
	})
})
