// Package output is the print document: it saves preview and print pages as
// PNG files.
package output

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"text/template"

	"github.com/disintegration/imaging"
	sprig "github.com/go-task/slim-sprig/v3"
	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"tprint/common"
	"tprint/config"
	"tprint/layout"
	"tprint/paginate"
	"tprint/render"
)

const (
	KindPreview = "preview"
	KindPrint   = "print"

	PreviewDir = "preview"
)

// Values are available for name template expansion.
type Values struct {
	Name  string
	Page  int
	Total int
	Kind  string
}

// Writer implements paginate.PrintDocument. Pages are drawn on the calling
// (render) goroutine.
type Writer struct {
	log       *zap.Logger
	dir       string
	name      string
	cfg       *config.OutputConfig
	overwrite bool
	scale     float64
	tmpl      *template.Template
	rpt       *config.Report

	mu       sync.Mutex
	count    int
	kind     common.PageCountType
	previews map[int]string
	saves    map[int]int
	updated  chan struct{} // closed and replaced on every preview save
	printed  []string
	done     bool
}

// New prepares writer saving pages of document name into dir. Report may be
// nil.
func New(dir, name string, cfg *config.OutputConfig, overwrite bool, scale float64, rpt *config.Report, log *zap.Logger) (*Writer, error) {
	text := cfg.NameTemplate
	if len(strings.TrimSpace(text)) == 0 {
		text = `{{ .Name }}-{{ printf "%03d" .Page }}`
	}
	tmpl, err := template.New("name_template").Funcs(sprig.FuncMap()).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("unable to parse output name template: %w", err)
	}
	return &Writer{
		log:       log.Named("output"),
		dir:       dir,
		name:      name,
		cfg:       cfg,
		overwrite: overwrite,
		scale:     scale,
		tmpl:      tmpl,
		rpt:       rpt,
		previews:  make(map[int]string),
		saves:     make(map[int]int),
		updated:   make(chan struct{}),
	}, nil
}

func (w *Writer) SetPreviewPageCount(count int, kind common.PageCountType) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.count, w.kind = count, kind
	w.log.Debug("Preview page count", zap.Int("count", count), zap.Stringer("kind", kind))
}

func (w *Writer) SetPreviewPage(pageNumber int, visual paginate.Renderable) error {
	path, err := w.fileName(pageNumber, KindPreview)
	if err != nil {
		return err
	}
	path = filepath.Join(w.dir, PreviewDir, path)
	// previews are refreshed in place by late updates
	if err := w.save(visual, path, true); err != nil {
		return err
	}

	w.mu.Lock()
	w.previews[pageNumber] = path
	w.saves[pageNumber]++
	close(w.updated)
	w.updated = make(chan struct{})
	w.mu.Unlock()
	w.log.Debug("Preview page saved", zap.Int("page", pageNumber), zap.String("file", path))
	return nil
}

func (w *Writer) AddPage(visual paginate.Renderable) error {
	path, err := w.fileName(visual.PageNumber(), KindPrint)
	if err != nil {
		return err
	}
	path = filepath.Join(w.dir, path)
	if err := w.save(visual, path, w.overwrite); err != nil {
		return err
	}

	w.mu.Lock()
	w.printed = append(w.printed, path)
	w.mu.Unlock()
	return nil
}

func (w *Writer) AddPagesComplete() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.done {
		return errors.New("print job is already complete")
	}
	w.done = true
	w.log.Info("Print job complete", zap.String("name", w.name), zap.Int("pages", len(w.printed)), zap.String("to", w.dir))
	return nil
}

// Previews returns files of previewed pages by page number.
func (w *Writer) Previews() map[int]string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return maps.Clone(w.previews)
}

// Saves returns how many times preview of the page was saved.
func (w *Writer) Saves(page int) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.saves[page]
}

// WaitPreview blocks until preview of the page was saved at least count
// times.
func (w *Writer) WaitPreview(ctx context.Context, page, count int) error {
	for {
		w.mu.Lock()
		n, updated := w.saves[page], w.updated
		w.mu.Unlock()
		if n >= count {
			return nil
		}
		select {
		case <-updated:
		case <-ctx.Done():
			return fmt.Errorf("preview of page %d was saved %d times: %w", page, n, ctx.Err())
		}
	}
}

// Printed returns files of printed pages in print order.
func (w *Writer) Printed() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.printed...)
}

// PageCount returns last reported preview page count.
func (w *Writer) PageCount() (int, common.PageCountType) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.count, w.kind
}

// fileName expands name template, cleans it up and optionally transliterates
// it.
func (w *Writer) fileName(page int, kind string) (string, error) {
	w.mu.Lock()
	total := w.count
	w.mu.Unlock()

	buf := new(bytes.Buffer)
	if err := w.tmpl.Execute(buf, Values{Name: w.name, Page: page, Total: total, Kind: kind}); err != nil {
		return "", fmt.Errorf("unable to expand output name template: %w", err)
	}
	name := strings.TrimSpace(buf.String())
	if w.cfg.Transliterate {
		name = slug.Make(name)
	}
	return config.CleanFileName(name) + ".png", nil
}

func (w *Writer) save(visual paginate.Renderable, path string, overwrite bool) error {
	v, ok := visual.(*layout.Visual)
	if !ok {
		return fmt.Errorf("unsupported page visual %T", visual)
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("output file already exists: %s", path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}

	img := render.Page(v, w.scale)
	if err := imaging.Save(img, path, imaging.PNGCompressionLevel(png.BestSpeed)); err != nil {
		return fmt.Errorf("unable to save page %d: %w", v.PageNumber(), err)
	}
	if w.rpt != nil {
		if data, err := os.ReadFile(path); err == nil {
			w.rpt.StoreData(filepath.ToSlash(filepath.Join("pages", filepath.Base(filepath.Dir(path)), filepath.Base(path))), data)
		}
	}
	return nil
}
