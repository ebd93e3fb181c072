package engine_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"
	"path/filepath"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/wordgif/internal/anim"
	"github.com/san-kum/wordgif/internal/engine"
	"github.com/san-kum/wordgif/internal/raster"
	"github.com/san-kum/wordgif/internal/style"
	"github.com/san-kum/wordgif/internal/words"
)

type memFile struct {
	bytes.Buffer
	closed bool
}

func (m *memFile) Close() error {
	m.closed = true
	return nil
}

type brokenFile struct{}

func (brokenFile) Write([]byte) (int, error) { return 0, errors.New("disk full") }
func (brokenFile) Close() error              { return nil }

type memFS struct {
	mu     sync.Mutex
	files  map[string]*memFile
	broken map[string]bool
}

func newMemFS() *memFS {
	return &memFS{files: make(map[string]*memFile), broken: make(map[string]bool)}
}

func (fs *memFS) create(path string) (io.WriteCloser, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if fs.broken[path] {
		return brokenFile{}, nil
	}
	f := &memFile{}
	fs.files[path] = f
	return f, nil
}

func (fs *memFS) decode(path string) *gif.GIF {
	f, ok := fs.files[path]
	Expect(ok).To(BeTrue(), "no file at %s", path)
	g, err := gif.DecodeAll(bytes.NewReader(f.Bytes()))
	Expect(err).NotTo(HaveOccurred())
	return g
}

// fakeRasterizer paints the background and records every caption.
type fakeRasterizer struct {
	mu     sync.Mutex
	seen   []string
	failOn string
	delay  func(text string) time.Duration
}

func (f *fakeRasterizer) Render(ctx context.Context, c raster.Caption) (image.Image, error) {
	if f.delay != nil {
		select {
		case <-time.After(f.delay(c.Text)):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	f.mu.Lock()
	f.seen = append(f.seen, c.Text)
	f.mu.Unlock()

	if c.Text == f.failOn {
		return nil, errors.New("glyph missing")
	}
	img := image.NewRGBA(image.Rect(0, 0, c.Size.X, c.Size.Y))
	draw.Draw(img, img.Bounds(), image.NewUniform(c.Background), image.Point{}, draw.Src)
	return img, nil
}

func (f *fakeRasterizer) rendered() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.seen...)
}

var _ = Describe("Engine", func() {
	var (
		fs  *memFS
		rz  *fakeRasterizer
		eng *engine.Engine
		cfg engine.Config
		out engine.Output
		ctx context.Context
	)

	BeforeEach(func() {
		fs = newMemFS()
		rz = &fakeRasterizer{}
		eng = engine.New(rz, words.NewSeededSelector(7))
		cfg = engine.DefaultConfig()
		out = engine.Output{Base: "out/word", Create: fs.create}
		ctx = context.Background()
	})

	Describe("Run", func() {
		It("writes one animation with a frame per word", func() {
			res, err := eng.Run(ctx, words.Tokenize("a bb ccc"), cfg, out)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Paths).To(Equal([]string{"out/word0-0.gif"}))
			Expect(res.Frames).To(Equal(3))
			Expect(res.Dropped).To(BeZero())

			g := fs.decode("out/word0-0.gif")
			Expect(g.Image).To(HaveLen(3))
			Expect(g.Delay).To(Equal([]int{25, 25, 25}))
			Expect(g.LoopCount).To(Equal(0))
			Expect(g.Image[0].Bounds().Size()).To(Equal(image.Pt(33, 33)))
			Expect(fs.files["out/word0-0.gif"].closed).To(BeTrue())
		})

		It("renders each word once however many cells there are", func() {
			cfg.Grid.Rows, cfg.Grid.Columns = 2, 3

			res, err := eng.Run(ctx, []string{"one", "two"}, cfg, out)
			Expect(err).NotTo(HaveOccurred())
			Expect(rz.rendered()).To(Equal([]string{"one", "two"}))
			Expect(res.Paths).To(HaveLen(6))
			Expect(res.Paths[0]).To(Equal("out/word0-0.gif"))
			Expect(res.Paths[1]).To(Equal("out/word1-0.gif"))
			Expect(res.Paths[3]).To(Equal("out/word0-1.gif"))

			for _, p := range res.Paths {
				Expect(fs.decode(p).Image).To(HaveLen(2), p)
			}
		})

		It("speeds up toward the middle with the speed ramp", func() {
			cfg.Timing.SpeedRamp = true
			tokens := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k"}

			res, err := eng.Run(ctx, tokens, cfg, out)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Delays()).To(Equal([]int{250, 62, 62, 62, 62, 62, 62, 62, 62, 62, 62}))
			Expect(fs.decode("out/word0-0.gif").Delay[1]).To(Equal(6))
		})

		It("fails on empty input before creating any output", func() {
			_, err := eng.Run(ctx, words.Tokenize(" \n\t "), cfg, out)
			Expect(err).To(MatchError(engine.ErrEmptyInput))
			Expect(fs.files).To(BeEmpty())
		})

		It("rejects an invalid config", func() {
			cfg.Grid.Rows = 0
			_, err := eng.Run(ctx, []string{"a"}, cfg, out)
			Expect(err).To(HaveOccurred())
			Expect(fs.files).To(BeEmpty())
		})

		It("aborts every animation when a word cannot be rendered", func() {
			cfg.Grid.Columns = 2
			rz.failOn = "bad"

			res, err := eng.Run(ctx, []string{"good", "bad", "never"}, cfg, out)
			Expect(res).To(BeNil())

			var rerr *engine.RasterizationError
			Expect(errors.As(err, &rerr)).To(BeTrue())
			Expect(rerr.Index).To(Equal(1))
			Expect(rerr.Token).To(Equal("bad"))
			Expect(rz.rendered()).NotTo(ContainElement("never"))

			Expect(fs.files).To(HaveLen(2))
			for _, f := range fs.files {
				Expect(f.closed).To(BeTrue())
				Expect(f.Len()).To(BeZero())
			}
		})

		It("stops when the context is cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()

			_, err := eng.Run(cctx, []string{"a", "b"}, cfg, out)
			Expect(err).To(MatchError(context.Canceled))
			Expect(rz.rendered()).To(BeEmpty())
		})

		It("finishes the other animations when one cannot be written", func() {
			cfg.Grid.Columns = 2
			fs.broken["out/word1-0.gif"] = true

			res, err := eng.Run(ctx, []string{"a", "b"}, cfg, out)
			Expect(err).To(HaveOccurred())
			Expect(res).NotTo(BeNil())
			Expect(res.Frames).To(Equal(2))

			var eerr *anim.EncodingError
			Expect(errors.As(err, &eerr)).To(BeTrue())
			Expect(eerr.Path).To(Equal("out/word1-0.gif"))
			Expect(fs.decode("out/word0-0.gif").Image).To(HaveLen(2))
		})

		It("appends frames in word order with several workers", func() {
			cfg.Workers = 4
			tokens := []string{"a", "bb", "ccc", "dddd", "eeeee", "ffffff", "g"}
			rz.delay = func(text string) time.Duration {
				return time.Duration(8-len(text)) * time.Millisecond
			}

			var order []string
			eng.AddObserver(engine.ObserverFunc(func(s engine.Step, total int) {
				Expect(total).To(Equal(len(tokens)))
				order = append(order, s.Token)
			}))

			res, err := eng.Run(ctx, tokens, cfg, out)
			Expect(err).NotTo(HaveOccurred())
			Expect(order).To(Equal(tokens))
			Expect(res.Frames).To(Equal(len(tokens)))
			Expect(rz.rendered()).To(ConsistOf(tokens))
		})

		It("alternates colors by frame", func() {
			cfg.Style.Fill = color.White
			cfg.Style.Background = color.Black
			cfg.Style.Mode = style.Frame

			res, err := eng.Run(ctx, []string{"a", "b", "c"}, cfg, out)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Steps[0].Background).To(Equal(color.Black))
			Expect(res.Steps[1].Background).To(Equal(color.White))
			Expect(res.Steps[2].Background).To(Equal(color.Black))
		})
	})

	Describe("Plan", func() {
		It("keeps every word when trimming is off", func() {
			steps := eng.Plan([]string{"--", "a", "b"}, cfg)
			Expect(steps).To(HaveLen(3))
			Expect(steps[0].Token).To(Equal("--"))
		})

		It("drops punctuation-only words when trimming", func() {
			cfg.Trim = true
			tokens := []string{"one", "--", "two", "...", "three", "four", "five"}

			steps := eng.Plan(tokens, cfg)
			Expect(len(steps)).To(BeNumerically("<=", 5))
			for i, s := range steps {
				Expect(s.Index).To(Equal(i))
				Expect(s.Token).NotTo(BeElementOf("--", "..."))
			}
		})
	})

	Describe("RunFile", func() {
		It("reports an unreadable input without creating output", func() {
			_, err := eng.RunFile(ctx, filepath.Join(GinkgoT().TempDir(), "missing"), cfg, out)
			Expect(err).To(MatchError(engine.ErrInputRead))
			Expect(fs.files).To(BeEmpty())
		})
	})
})
