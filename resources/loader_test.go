package resources

import (
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap/zaptest"

	"tprint/config"
	"tprint/content"
	"tprint/metrics"
	"tprint/paginate"
)

const testSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 50"><rect width="100" height="50"/></svg>`

type visual struct {
	mu       sync.Mutex
	attached map[string]image.Image
}

func (v *visual) PageNumber() int { return 1 }

func (v *visual) Size() (float64, float64) { return 850, 1100 }

func (v *visual) AttachImage(id string, img image.Image) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.attached[id] = img
}

func (v *visual) get(id string) image.Image {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.attached[id]
}

// queue records posted functions so the test can run them as render thread.
type queue struct {
	mu    sync.Mutex
	tasks []func()
}

func (q *queue) Post(fn func()) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tasks = append(q.tasks, fn)
}

func (q *queue) drain() int {
	q.mu.Lock()
	tasks := q.tasks
	q.tasks = nil
	q.mu.Unlock()
	for _, fn := range tasks {
		fn()
	}
	return len(tasks)
}

func resourceCount(t *testing.T, source string) float64 {
	t.Helper()
	families, err := metrics.Registry.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != "tprint_resources_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "source" && l.GetValue() == source {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func fixtures(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := imaging.Save(imaging.New(30, 20, color.NRGBA{0, 0, 0xff, 0xff}), filepath.Join(dir, "blue.png")); err != nil {
		t.Fatal(err)
	}
	if err := imaging.Save(imaging.New(10, 10, color.NRGBA{0, 0xff, 0, 0xff}), filepath.Join(dir, "green.jpg")); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "pics"), 0o755); err != nil {
		t.Fatal(err)
	}
	for name, data := range map[string]string{
		"pics/shape.svg": testSVG,
		"notes.txt":      "plain text is not a picture",
	} {
		if err := os.WriteFile(filepath.Join(dir, filepath.FromSlash(name)), []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func resourcesConfig(useBroken bool) *config.ResourcesConfig {
	return &config.ResourcesConfig{Workers: 1, CacheTTL: time.Minute, UseBroken: useBroken, SVGSize: 64}
}

func newPage(images []*content.Image) (*paginate.Page, *visual) {
	v := &visual{attached: make(map[string]image.Image)}
	page := &paginate.Page{Number: 1, Tracker: paginate.NewTracker(), Visual: v}
	for range images {
		page.Tracker.AddPendingResource()
	}
	return page, v
}

func TestLoad(t *testing.T) {
	metrics.Register()
	metrics.Reset()

	dir := fixtures(t)
	q := &queue{}
	l := NewLoader(context.Background(), resourcesConfig(false), nil, dir, q, zaptest.NewLogger(t))

	images := []*content.Image{
		{ID: "image-1", Src: "blue.png"},
		{ID: "image-2", Src: "green.jpg"},
		{ID: "image-3", Src: "pics/shape.svg"},
		{ID: "image-4", Src: "missing.png"},
		{ID: "image-5", Src: "notes.txt"},
		{ID: "image-6", Src: filepath.Join(dir, "blue.png")},
	}
	page, v := newPage(images)
	l.Load(page, images)
	l.Close()

	if v.get("image-1") != nil {
		t.Fatal("picture attached outside of render thread")
	}
	if page.Tracker.IsReady() {
		t.Fatal("page is ready before pictures were attached")
	}
	if n := q.drain(); n != len(images) {
		t.Fatalf("posted %d updates, want %d", n, len(images))
	}
	if !page.Tracker.IsReady() {
		t.Fatalf("tracker still has %d pending resources", page.Tracker.Pending())
	}

	sizes := map[string]image.Point{}
	for _, im := range images {
		img := v.get(im.ID)
		if img == nil {
			t.Fatalf("%s is not attached", im.ID)
		}
		sizes[im.ID] = img.Bounds().Size()
	}
	want := map[string]image.Point{
		"image-1": {30, 20},
		"image-2": {10, 10},
		"image-3": {64, 32},
		"image-4": {brokenSize, brokenSize},
		"image-5": {brokenSize, brokenSize},
		"image-6": {30, 20},
	}
	if diff := cmp.Diff(want, sizes); diff != "" {
		t.Errorf("attached pictures mismatch (-want +got):\n%s", diff)
	}
	if v.get("image-4") != Broken() {
		t.Error("missing picture is not replaced with placeholder")
	}

	for source, n := range map[string]float64{
		metrics.ResourceLoaded: 3,
		metrics.ResourceCached: 1,
		metrics.ResourceBroken: 2,
	} {
		if got := resourceCount(t, source); got != n {
			t.Errorf("%s resources = %v, want %v", source, got, n)
		}
	}
}

func TestLoadUseBroken(t *testing.T) {
	metrics.Register()
	metrics.Reset()

	q := &queue{}
	l := NewLoader(context.Background(), resourcesConfig(true), nil, fixtures(t), q, zaptest.NewLogger(t))
	images := []*content.Image{{ID: "image-1", Src: "missing.png"}, {ID: "image-2", Src: ""}}
	page, v := newPage(images)
	l.Load(page, images)
	l.Close()

	if !page.Tracker.IsReady() {
		t.Fatalf("tracker still has %d pending resources", page.Tracker.Pending())
	}
	if n := q.drain(); n != 0 {
		t.Errorf("posted %d updates for broken pictures", n)
	}
	if v.get("image-1") != nil {
		t.Error("broken picture attached")
	}
	if got := resourceCount(t, metrics.ResourceBroken); got != 2 {
		t.Errorf("broken resources = %v, want 2", got)
	}
}

func TestLoadCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	q := &queue{}
	l := NewLoader(ctx, resourcesConfig(true), nil, fixtures(t), q, zaptest.NewLogger(t))
	images := []*content.Image{{ID: "image-1", Src: "blue.png"}}
	page, _ := newPage(images)
	l.Load(page, images)
	l.Close()

	if !page.Tracker.IsReady() {
		t.Error("canceled load did not complete the resource")
	}
	if l.CacheLen() != 0 {
		t.Errorf("cache holds %d pictures after canceled load", l.CacheLen())
	}
}

func TestLoadFromFS(t *testing.T) {
	metrics.Register()
	metrics.Reset()

	q := &queue{}
	l := NewLoader(context.Background(), resourcesConfig(false), os.DirFS(fixtures(t)), "pics", q, zaptest.NewLogger(t))
	images := []*content.Image{
		{ID: "image-1", Src: "shape.svg"},
		{ID: "image-2", Src: "../../blue.png"},
	}
	page, v := newPage(images)
	l.Load(page, images)
	l.Close()
	q.drain()

	if img := v.get("image-1"); img == nil || img.Bounds().Size() != image.Pt(64, 32) {
		t.Errorf("svg from file system = %v", img)
	}
	// paths leaving file system root are not valid
	if v.get("image-2") != Broken() {
		t.Error("picture outside of file system root was loaded")
	}
	if l.CacheLen() != 1 {
		t.Errorf("CacheLen() = %d, want 1", l.CacheLen())
	}
}

func TestRasterizeSVG(t *testing.T) {
	tests := []struct {
		name string
		w, h int
		want image.Point
	}{
		{"intrinsic", 0, 0, image.Pt(100, 50)},
		{"scale by width", 200, 0, image.Pt(200, 100)},
		{"scale by height", 0, 200, image.Pt(400, 200)},
		{"fit box", 150, 150, image.Pt(150, 75)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := RasterizeSVG([]byte(testSVG), tt.w, tt.h, 1024)
			if err != nil {
				t.Fatalf("RasterizeSVG() error = %v", err)
			}
			if got := img.Bounds().Size(); got != tt.want {
				t.Errorf("RasterizeSVG() size = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("clamped", func(t *testing.T) {
		saved := maxRasterDim
		maxRasterDim = 100
		t.Cleanup(func() { maxRasterDim = saved })

		huge := []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100000 50000"></svg>`)
		img, err := RasterizeSVG(huge, 0, 0, 1024)
		if err != nil {
			t.Fatalf("RasterizeSVG() error = %v", err)
		}
		if got := img.Bounds().Size(); got != image.Pt(maxRasterDim, maxRasterDim/2) {
			t.Errorf("RasterizeSVG() size = %v", got)
		}
	})
}
