// Package paginate splits flowing content into printable pages and serves
// them to print preview and printer.
//
// Pagination happens on the render thread: pages are appended one at a time,
// each continuing the overflow of the previous one, until content fits.
// Images load in background; a page is served immediately and refreshed once
// when all its resources arrive, provided preview still shows it.
package paginate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"tprint/common"
	"tprint/content"
	"tprint/metrics"
)

const DefaultMaxPages = 10000

// Options describe print document. Loader is optional, without it images are
// left as placeholders.
type Options struct {
	Name       string
	Content    *content.Source
	Surface    RenderSurface
	Geometry   GeometrySource
	Printer    PrintDocument
	Dispatcher Dispatcher
	Loader     ResourceLoader

	MarginLeft float64
	MarginTop  float64
	MaxPages   int
	Policy     common.AllPagesPolicy
	// Display is consulted at the start of every pagination.
	Display func() common.DisplayContent
}

// Document owns the current pagination session. All methods could be called
// from any goroutine but the render thread itself.
type Document struct {
	opts Options
	log  *zap.Logger

	mu      sync.Mutex // serializes pagination runs
	gen     atomic.Uint32
	cursor  Cursor
	current atomic.Pointer[PreviewServer]
}

// NewDocument checks preconditions and reports all violations at once.
func NewDocument(opts Options, log *zap.Logger) (*Document, error) {
	var errs error
	if opts.Surface == nil {
		errs = multierr.Append(errs, errors.New("render surface is not set"))
	}
	if opts.Content == nil {
		errs = multierr.Append(errs, errors.New("content source is not set"))
	}
	if len(strings.TrimSpace(opts.Name)) == 0 {
		errs = multierr.Append(errs, errors.New("output name is blank"))
	}
	if opts.Printer == nil {
		errs = multierr.Append(errs, errors.New("print document is not set"))
	}
	if opts.Dispatcher == nil {
		errs = multierr.Append(errs, errors.New("render thread dispatcher is not set"))
	}
	if opts.Geometry == nil {
		errs = multierr.Append(errs, errors.New("page geometry is not set"))
	}
	if opts.MarginLeft < 0 || opts.MarginLeft >= 0.5 || opts.MarginTop < 0 || opts.MarginTop >= 0.5 {
		errs = multierr.Append(errs, fmt.Errorf("margins %v/%v out of range [0, 0.5)", opts.MarginLeft, opts.MarginTop))
	}
	if opts.MaxPages < 0 {
		errs = multierr.Append(errs, fmt.Errorf("page limit %d is negative", opts.MaxPages))
	}
	if errs != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfiguration, errs)
	}

	if opts.MaxPages == 0 {
		opts.MaxPages = DefaultMaxPages
	}
	if opts.Display == nil {
		opts.Display = func() common.DisplayContent { return common.DisplayContentTextAndImages }
	}
	return &Document{opts: opts, log: log.Named("paginate")}, nil
}

func (d *Document) Name() string { return d.opts.Name }

// Session returns the last complete session or nil.
func (d *Document) Session() *Session {
	if srv := d.current.Load(); srv != nil {
		return srv.session
	}
	return nil
}

// Paginate builds new page sequence and returns its length. Calling it again
// supersedes the run in progress (if any) and discards previous pages.
func (d *Document) Paginate(ctx context.Context) (int, error) {
	gen := d.gen.Add(1)
	d.cursor.Reset(gen)
	d.current.Store(nil)

	d.mu.Lock()
	defer d.mu.Unlock()

	start := time.Now()
	if d.gen.Load() != gen {
		metrics.RecordSession(metrics.SessionSuperseded, 0, 0)
		return 0, ErrSuperseded
	}

	mode := d.opts.Display()
	if !mode.IsValid() {
		return 0, fmt.Errorf("%w: bad display mode %d", ErrInvalidConfiguration, mode)
	}

	s := newSession(gen, d.opts.Content, d.opts.Geometry, mode)
	c := &Controller{
		session:    s,
		builder:    NewBuilder(s.chain, d.opts.MarginLeft, d.opts.MarginTop),
		surface:    d.opts.Surface,
		loader:     d.opts.Loader,
		maxPages:   d.opts.MaxPages,
		superseded: func() bool { return d.gen.Load() != gen },
		log:        d.log,
	}

	// Do may stop waiting while closure still runs. Results are published only
	// if Paginate is going to report success.
	var (
		pub       sync.Mutex
		abandoned bool
		published *PreviewServer
	)

	d.log.Debug("Pagination started", zap.Uint32("generation", gen), zap.Stringer("display", mode))
	err := d.opts.Dispatcher.Do(ctx, func() error {
		if err := c.Run(ctx); err != nil {
			return err
		}
		if d.gen.Load() != gen {
			s.setState(StateSuperseded)
			return ErrSuperseded
		}

		pub.Lock()
		defer pub.Unlock()
		if err := ctx.Err(); err != nil || abandoned {
			s.setState(StateFailed)
			if err == nil {
				err = context.Canceled
			}
			return err
		}
		d.opts.Printer.SetPreviewPageCount(s.Len(), common.PageCountTypeIntermediate)
		d.cursor.Reset(gen)
		published = &PreviewServer{
			session:    s,
			cursor:     &d.cursor,
			doc:        d.opts.Printer,
			dispatcher: d.opts.Dispatcher,
			log:        d.log,
		}
		d.current.Store(published)
		return nil
	})
	if err != nil {
		pub.Lock()
		abandoned = true
		if published != nil && d.current.CompareAndSwap(published, nil) {
			s.setState(StateFailed)
		}
		pub.Unlock()
		switch {
		case errors.Is(err, ErrSuperseded):
			metrics.RecordSession(metrics.SessionSuperseded, 0, 0)
		case errors.Is(err, ErrRunaway):
			metrics.RecordSession(metrics.SessionRunaway, 0, 0)
		default:
			metrics.RecordSession(metrics.SessionFailed, 0, 0)
		}
		d.log.Debug("Pagination aborted", zap.Uint32("generation", gen), zap.Error(err))
		return 0, err
	}

	elapsed := time.Since(start)
	metrics.RecordSession(metrics.SessionComplete, s.Len(), elapsed)
	d.log.Info("Pagination complete",
		zap.String("name", d.opts.Name),
		zap.Int("pages", s.Len()),
		zap.Int("regions", s.chain.Len()),
		zap.Duration("elapsed", elapsed))
	return s.Len(), nil
}

// GetPreviewPage makes page current in preview and returns its visual.
func (d *Document) GetPreviewPage(ctx context.Context, number int) (Renderable, error) {
	visual, _, err := d.PreviewPage(ctx, number)
	return visual, err
}

// PreviewPage is GetPreviewPage which also reports whether page was served
// with resources still loading, in which case print document will receive
// the same page again unless preview moves elsewhere first.
func (d *Document) PreviewPage(ctx context.Context, number int) (Renderable, bool, error) {
	srv := d.current.Load()
	if srv == nil {
		return nil, false, ErrNotPaginated
	}
	var (
		visual Renderable
		late   bool
	)
	err := d.opts.Dispatcher.Do(ctx, func() error {
		if d.current.Load() != srv {
			return ErrNotPaginated
		}
		var err error
		visual, late, err = srv.GetPage(number)
		return err
	})
	return visual, late, err
}

// GetAllPages hands every page to printer. Depending on policy it either
// proceeds at once or first waits for all page resources.
func (d *Document) GetAllPages(ctx context.Context) ([]Renderable, error) {
	srv := d.current.Load()
	if srv == nil {
		return nil, ErrNotPaginated
	}
	if d.opts.Policy == common.AllPagesPolicyWait {
		if err := srv.WaitReady(ctx); err != nil {
			return nil, err
		}
	}
	var visuals []Renderable
	err := d.opts.Dispatcher.Do(ctx, func() error {
		if d.current.Load() != srv {
			return ErrNotPaginated
		}
		var err error
		visuals, err = srv.GetAllPages()
		return err
	})
	return visuals, err
}
