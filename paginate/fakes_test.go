package paginate

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"tprint/common"
	"tprint/content"
	"tprint/metrics"
)

// letter-like paper used through the tests: content height is 1034 and rows
// are 344.67, 482.53 and 206.8 high
var testGeometry = Geometry{PageWidth: 850, PageHeight: 1100, ImageableWidth: 800, ImageableHeight: 1050}

// fakeSurface treats every content block as one line of fixed height. Each
// region takes as many lines as fit, but at least one.
type fakeSurface struct {
	lineHeight float64
	images     map[int]int // page number -> number of images placed there
	skipLayout bool
	failAdd    bool
	block      chan struct{} // if set UpdateLayout waits on it once
	onLayout   func()        // called after every layout pass

	lines   int
	placed  int
	chain   *Chain
	pending []RegionID
	after   map[RegionID]int // lines left after region was laid out
	resets  int
	layouts int
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{lineHeight: 100, images: map[int]int{}}
}

func (f *fakeSurface) Reset(src *content.Source, _ common.DisplayContent) {
	f.lines = len(src.Blocks)
	f.placed = 0
	f.chain = nil
	f.pending = nil
	f.after = map[RegionID]int{}
	f.resets++
}

func (f *fakeSurface) AddPage(page *Page, chain *Chain) (Renderable, error) {
	if f.failAdd {
		return nil, fmt.Errorf("no room for page %d", page.Number)
	}
	f.chain = chain
	f.pending = append(f.pending, page.Regions...)
	return &fakeVisual{number: page.Number, w: page.Geometry.PageWidth, h: page.Geometry.PageHeight}, nil
}

func (f *fakeSurface) InvalidateMeasure() {}

func (f *fakeSurface) UpdateLayout() error {
	if f.block != nil {
		<-f.block
		f.block = nil
	}
	f.layouts++
	if f.skipLayout {
		return nil
	}
	for _, id := range f.pending {
		r, _ := f.chain.Region(id)
		capacity := max(1, int(r.Bounds.Height/f.lineHeight))
		f.placed += min(capacity, f.lines-f.placed)
		f.after[id] = f.lines - f.placed
	}
	f.pending = nil
	if f.onLayout != nil {
		f.onLayout()
	}
	return nil
}

func (f *fakeSurface) HasOverflow(id RegionID) (bool, error) {
	left, ok := f.after[id]
	if !ok {
		return false, ErrLayoutStale
	}
	return left > 0, nil
}

func (f *fakeSurface) Resources(page *Page) []*content.Image {
	var images []*content.Image
	for i := range f.images[page.Number] {
		images = append(images, &content.Image{ID: fmt.Sprintf("p%d-%d", page.Number, i), Src: "pic.png"})
	}
	return images
}

type fakeVisual struct {
	number int
	w, h   float64
}

func (v *fakeVisual) PageNumber() int { return v.number }
func (v *fakeVisual) Size() (float64, float64) { return v.w, v.h }

type fakePrinter struct {
	mu        sync.Mutex
	counts    []int
	kinds     []common.PageCountType
	previews  []int
	added     []int
	completed int
	previewed chan int
}

func newFakePrinter() *fakePrinter {
	return &fakePrinter{previewed: make(chan int, 16)}
}

func (p *fakePrinter) SetPreviewPageCount(count int, kind common.PageCountType) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.counts = append(p.counts, count)
	p.kinds = append(p.kinds, kind)
}

func (p *fakePrinter) SetPreviewPage(n int, v Renderable) error {
	if v.PageNumber() != n {
		return fmt.Errorf("visual of page %d offered as page %d", v.PageNumber(), n)
	}
	p.mu.Lock()
	p.previews = append(p.previews, n)
	p.mu.Unlock()
	p.previewed <- n
	return nil
}

func (p *fakePrinter) AddPage(v Renderable) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.added = append(p.added, v.PageNumber())
	return nil
}

func (p *fakePrinter) AddPagesComplete() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.completed++
	return nil
}

func (p *fakePrinter) previewLog() []int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]int(nil), p.previews...)
}

// inlineDispatcher runs everything on the calling goroutine.
type inlineDispatcher struct{}

func (inlineDispatcher) Post(fn func()) { fn() }

func (inlineDispatcher) Do(_ context.Context, fn func() error) error { return fn() }

// lateDispatcher lets fn finish and then gives up waiting on it, as render
// thread does when context ends while result is being delivered.
type lateDispatcher struct {
	cancel context.CancelFunc
}

func (lateDispatcher) Post(fn func()) { fn() }

func (l lateDispatcher) Do(ctx context.Context, fn func() error) error {
	if err := fn(); err != nil {
		return err
	}
	l.cancel()
	return ctx.Err()
}

// manualLoader keeps pages until test completes their resources.
type manualLoader struct {
	mu    sync.Mutex
	pages map[int]*Page
	count map[int]int
}

func newManualLoader() *manualLoader {
	return &manualLoader{pages: map[int]*Page{}, count: map[int]int{}}
}

func (l *manualLoader) Load(page *Page, images []*content.Image) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pages[page.Number] = page
	l.count[page.Number] += len(images)
}

func (l *manualLoader) complete(t *testing.T, number int) {
	t.Helper()
	l.mu.Lock()
	page := l.pages[number]
	l.mu.Unlock()
	if page == nil {
		t.Fatalf("no resources were loaded for page %d", number)
	}
	if !page.Tracker.ResourceCompleted() {
		t.Fatalf("page %d had nothing pending", number)
	}
}

func textSource(lines int) *content.Source {
	src := &content.Source{Name: "test"}
	for i := range lines {
		src.Blocks = append(src.Blocks, content.Block{Kind: content.BlockParagraph, Text: fmt.Sprintf("line %d", i)})
	}
	return src
}

func lateUpdates(t *testing.T, result string) float64 {
	t.Helper()
	families, err := metrics.Registry.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != "tprint_late_updates_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "result" && l.GetValue() == result {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(time.Millisecond)
	}
}
