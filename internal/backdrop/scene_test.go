package backdrop_test

import (
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/sourcespace/internal/backdrop"
	"github.com/san-kum/sourcespace/internal/field"
	"github.com/san-kum/sourcespace/internal/frame"
	"github.com/san-kum/sourcespace/internal/palette"
)

var _ = Describe("Scene", func() {
	var (
		src        *frame.Manual
		cols, rows int
		frames     []uint64
		scene      *backdrop.Scene
	)

	BeforeEach(func() {
		src = frame.NewManual(time.Unix(0, 0), time.Second/60)
		cols, rows = 80, 24
		frames = nil
		scene = backdrop.New(backdrop.Options{
			Field:    field.DefaultConfig(),
			Stars:    20,
			FPS:      60,
			Source:   src,
			Viewport: func() (int, int) { return cols, rows },
			NewRand:  func(n int) *rand.Rand { return field.NewRand(uint64(n) + 100) },
			OnFrame:  func(_ *field.Field, n uint64) { frames = append(frames, n) },
			Logger:   log.New(io.Discard),
		})
	})

	AfterEach(func() {
		scene.Unmount()
	})

	It("starts uninitialized with nothing running", func() {
		Expect(scene.Phase()).To(Equal(backdrop.Uninitialized))
		Expect(scene.Field()).To(BeNil())
		Expect(scene.Driver()).To(BeNil())
		Expect(src.Pending()).To(Equal(0))
	})

	Describe("Mount", func() {
		It("builds and starts one loop sized to the viewport", func() {
			Expect(scene.Mount("echoverse")).To(Succeed())

			Expect(scene.Phase()).To(Equal(backdrop.Active))
			Expect(scene.Theme().Key).To(Equal("echoverse"))
			Expect(scene.Driver().State()).To(Equal(frame.Running))
			Expect(src.Pending()).To(Equal(1))
			Expect(scene.Field().Len()).To(Equal(field.DefaultCount))
			Expect(scene.Stars().Stars()).To(HaveLen(20))

			w, h := scene.Controller().Size()
			Expect(w).To(BeNumerically("==", 160))
			Expect(h).To(BeNumerically("==", 96))
			for _, p := range scene.Field().Snapshot() {
				Expect(p.InBounds(w, h)).To(BeTrue())
				Expect(palette.Resolve("echoverse")).To(ContainElement(p.Color))
			}
		})

		It("refuses to mount twice", func() {
			Expect(scene.Mount("novaverse")).To(Succeed())
			Expect(scene.Mount("novaverse")).To(MatchError(backdrop.ErrAlreadyMounted))
			Expect(src.Pending()).To(Equal(1))
		})

		It("resolves unknown themes to the default palette", func() {
			Expect(scene.Mount("unknown-theme")).To(Succeed())
			Expect(scene.Theme().Key).To(Equal(palette.DefaultKey))
		})

		It("degrades to a no-op surface when the viewport is empty", func() {
			cols, rows = 0, 0
			Expect(scene.Mount("logiverse")).To(Succeed())
			Expect(scene.Controller().Degraded()).To(BeTrue())
			Expect(scene.Canvas()).To(BeNil())
			Expect(src.Advance(3)).To(Equal(3))
			Expect(frames).To(Equal([]uint64{1, 2, 3}))
		})
	})

	Describe("frames", func() {
		It("steps the field and paints the canvas", func() {
			Expect(scene.Mount("novaverse")).To(Succeed())
			before := scene.Field().Snapshot()

			src.Fire()
			after := scene.Field().Snapshot()
			Expect(after).NotTo(Equal(before))
			Expect(frames).To(Equal([]uint64{1}))

			canvas := scene.Canvas()
			Expect(canvas).NotTo(BeNil())
			p := after[0]
			Expect(canvas.Lit(int(p.X), int(p.Y))).To(BeTrue())
		})
	})

	Describe("Resize", func() {
		It("updates dimensions without touching particles", func() {
			Expect(scene.Mount("novaverse")).To(Succeed())
			before := scene.Field().Snapshot()

			Expect(scene.Resize(100, 30)).To(BeTrue())
			Expect(scene.Field().Snapshot()).To(Equal(before))
			w, h := scene.Controller().Size()
			Expect(w).To(BeNumerically("==", 200))
			Expect(h).To(BeNumerically("==", 120))

			Expect(scene.Resize(100, 30)).To(BeFalse())
		})

		It("ignores resizes while unmounted", func() {
			Expect(scene.Resize(100, 30)).To(BeFalse())

			Expect(scene.Mount("novaverse")).To(Succeed())
			ctrl := scene.Controller()
			scene.Unmount()

			Expect(scene.Resize(120, 40)).To(BeFalse())
			c, r := ctrl.Cells()
			Expect(c).To(Equal(80))
			Expect(r).To(Equal(24))
		})
	})

	Describe("SetTheme", func() {
		It("requires a mounted scene", func() {
			Expect(scene.SetTheme("echoverse")).To(MatchError(backdrop.ErrNotMounted))
		})

		It("tears down the old loop before starting a new one", func() {
			Expect(scene.Mount("novaverse")).To(Succeed())
			oldDriver, oldCtrl, oldField := scene.Driver(), scene.Controller(), scene.Field()
			oldStars := scene.Stars().Stars()
			src.Fire()

			Expect(scene.SetTheme("logiverse")).To(Succeed())

			Expect(oldDriver.State()).To(Equal(frame.Cancelled))
			Expect(oldCtrl.Released()).To(BeTrue())
			Expect(scene.Field()).NotTo(BeIdenticalTo(oldField))
			Expect(scene.Driver().State()).To(Equal(frame.Running))
			Expect(src.Pending()).To(Equal(1))
			Expect(scene.Stars().Stars()).NotTo(Equal(oldStars))
			Expect(scene.Stars().Theme()).To(Equal("logiverse"))

			for _, p := range scene.Field().Snapshot() {
				Expect(palette.Resolve("logiverse")).To(ContainElement(p.Color))
			}

			src.Advance(2)
			Expect(oldDriver.Frames()).To(BeEquivalentTo(1))
			Expect(scene.Driver().Frames()).To(BeEquivalentTo(2))
		})

		It("keeps the loop when the theme is unchanged", func() {
			Expect(scene.Mount("echoverse")).To(Succeed())
			d := scene.Driver()
			Expect(scene.SetTheme("EchoVerse")).To(Succeed())
			Expect(scene.Driver()).To(BeIdenticalTo(d))
		})
	})

	Describe("Unmount", func() {
		It("cancels the loop and is idempotent", func() {
			Expect(scene.Mount("novaverse")).To(Succeed())
			d := scene.Driver()
			src.Fire()

			scene.Unmount()
			scene.Unmount()

			Expect(scene.Phase()).To(Equal(backdrop.Uninitialized))
			Expect(d.State()).To(Equal(frame.Cancelled))
			Expect(src.Pending()).To(Equal(0))
			Expect(src.Fire()).To(Equal(0))
			Expect(frames).To(HaveLen(1))
		})

		It("allows mounting again with fresh state", func() {
			Expect(scene.Mount("novaverse")).To(Succeed())
			first := scene.Field().Snapshot()
			scene.Unmount()

			Expect(scene.Mount("novaverse")).To(Succeed())
			Expect(scene.Field().Snapshot()).NotTo(Equal(first))
			Expect(src.Pending()).To(Equal(1))
		})
	})
})
