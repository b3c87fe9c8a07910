package backdrop_test

import (
	"io"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/sourcespace/internal/backdrop"
	"github.com/san-kum/sourcespace/internal/field"
	"github.com/san-kum/sourcespace/internal/frame"
)

var _ = Describe("Scene on a wall-clock source", func() {
	var (
		drawn atomic.Uint64
		scene *backdrop.Scene
	)

	BeforeEach(func() {
		drawn.Store(0)
		scene = backdrop.New(backdrop.Options{
			Field:    field.DefaultConfig(),
			Stars:    30,
			FPS:      1000,
			Source:   frame.NewTimer(1000),
			Viewport: func() (int, int) { return 40, 10 },
			OnFrame:  func(_ *field.Field, _ uint64) { drawn.Add(1) },
			Logger:   log.New(io.Discard),
		})
	})

	AfterEach(func() {
		scene.Unmount()
	})

	It("keeps drawing while the viewport is resized", func() {
		Expect(scene.Mount("novaverse")).To(Succeed())
		Eventually(drawn.Load).Should(BeNumerically(">", 0))

		deadline := time.Now().Add(300 * time.Millisecond)
		for i := 0; time.Now().Before(deadline); i++ {
			scene.Resize(40+i%50, 10+i%20)
			_ = scene.Stars().Stars()
		}

		start := drawn.Load()
		Eventually(drawn.Load).Should(BeNumerically(">", start))
		Expect(scene.Field().Snapshot()).To(HaveLen(field.DefaultCount))
		Expect(scene.Canvas()).NotTo(BeNil())
	})

	It("survives theme changes and resizes interleaved with frames", func() {
		Expect(scene.Mount("novaverse")).To(Succeed())
		themes := []string{"echoverse", "logiverse", "novaverse"}

		for i := 0; i < 60; i++ {
			Expect(scene.SetTheme(themes[i%len(themes)])).To(Succeed())
			scene.Resize(30+i%40, 8+i%12)
			time.Sleep(time.Millisecond)
		}

		Expect(scene.Driver().State()).To(Equal(frame.Running))
		start := drawn.Load()
		Eventually(drawn.Load).Should(BeNumerically(">", start))
	})

	It("runs no frame once Unmount returns", func() {
		s := scene
		Expect(s.Mount("echoverse")).To(Succeed())
		resized := make(chan struct{})
		go func() {
			defer close(resized)
			for i := 0; i < 200; i++ {
				s.Resize(20+i%30, 5+i%10)
			}
		}()
		Eventually(drawn.Load).Should(BeNumerically(">", 5))

		d := s.Driver()
		s.Unmount()
		Expect(d.State()).To(Equal(frame.Cancelled))
		Eventually(resized).Should(BeClosed())

		stopped := drawn.Load()
		Consistently(drawn.Load, 50*time.Millisecond, 5*time.Millisecond).Should(Equal(stopped))
	})
})
