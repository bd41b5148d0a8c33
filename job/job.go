// Package job runs print requests: it opens content, paginates it on the
// render thread and hands pages to preview or printer.
package job

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"tprint/content"
	"tprint/dispatch"
	"tprint/layout"
	"tprint/output"
	"tprint/paginate"
	"tprint/resources"
	"tprint/state"
)

// Job is a single print document with everything it needs. It must be closed.
type Job struct {
	env  *state.LocalEnv
	log  *zap.Logger
	src  *source
	name string

	render  *dispatch.Dispatcher
	stop    context.CancelFunc
	running chan error

	loader  *resources.Loader
	surface *layout.Surface
	writer  *output.Writer
	doc     *paginate.Document
}

// Open prepares print document for src (see openSource), pages are written
// to dst. Scale is applied to page size in output images.
func Open(ctx context.Context, env *state.LocalEnv, src, dst string, scale float64) (*Job, error) {
	log := env.Log.Named("job")

	format, err := content.NewFormat(&env.Cfg.Layout)
	if err != nil {
		return nil, fmt.Errorf("bad layout configuration: %w", err)
	}
	s, err := openSource(ctx, src, env.DemoText, format, log)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(env.JobName)
	if len(name) == 0 {
		name = s.content.Name
	}
	if len(name) == 0 {
		id, err := uuid.NewV7()
		if err != nil {
			return nil, multierr.Append(fmt.Errorf("unable to name print job: %w", err), s.Close())
		}
		name = "demo-" + id.String()[24:]
	}

	w, err := output.New(dst, name, &env.Cfg.Output, env.Overwrite, scale, env.Rpt, log)
	if err != nil {
		return nil, multierr.Append(err, s.Close())
	}

	runCtx, stop := context.WithCancel(ctx)
	j := &Job{
		env:     env,
		log:     log,
		src:     s,
		name:    name,
		render:  dispatch.New(log),
		stop:    stop,
		running: make(chan error, 1),
		surface: layout.NewSurface(log),
		writer:  w,
	}
	go func() {
		j.running <- j.render.Run(runCtx)
	}()
	j.loader = resources.NewLoader(runCtx, &env.Cfg.Resources, s.fsys, s.dir, j.render, log)

	cfg := env.Cfg.Print
	j.doc, err = paginate.NewDocument(paginate.Options{
		Name:    name,
		Content: s.content,
		Surface: j.surface,
		Geometry: paginate.StaticGeometry{
			PageWidth:       cfg.Page.Width,
			PageHeight:      cfg.Page.Height,
			ImageableWidth:  cfg.Page.ImageableWidth,
			ImageableHeight: cfg.Page.ImageableHeight,
		},
		Printer:    w,
		Dispatcher: j.render,
		Loader:     j.loader,
		MarginLeft: cfg.MarginLeft,
		MarginTop:  cfg.MarginTop,
		MaxPages:   cfg.MaxPages,
		Policy:     cfg.AllPagesPolicy,
		Display:    env.DisplayMode,
	}, log)
	if err != nil {
		return nil, multierr.Append(err, j.Close())
	}

	log.Info("Print job opened", zap.String("name", name), zap.String("source", s.origin), zap.String("destination", dst))
	return j, nil
}

func (j *Job) Name() string { return j.name }

func (j *Job) Document() *paginate.Document { return j.doc }

func (j *Job) Writer() *output.Writer { return j.writer }

// Paginate builds pages using display mode current at the moment of the call.
func (j *Job) Paginate(ctx context.Context) (int, error) {
	n, err := j.doc.Paginate(ctx)
	if err != nil {
		return 0, fmt.Errorf("unable to paginate %s: %w", j.name, err)
	}
	return n, nil
}

// Preview shows page and returns file it was saved to. With wait page is
// shown only after its pictures arrived, otherwise it is shown at once and,
// when pictures were still loading, Preview returns after the page was
// refreshed.
func (j *Job) Preview(ctx context.Context, number int, wait bool) (string, error) {
	if wait {
		if err := j.waitPage(ctx, number); err != nil {
			return "", err
		}
	}

	saves := j.writer.Saves(number)
	_, late, err := j.doc.PreviewPage(ctx, number)
	if err != nil {
		return "", fmt.Errorf("unable to preview page %d: %w", number, err)
	}
	if late {
		j.log.Info("Page shown before its pictures arrived, waiting for update", zap.Int("page", number))
		if err := j.writer.WaitPreview(ctx, number, saves+2); err != nil {
			return "", err
		}
	}
	return j.writer.Previews()[number], nil
}

func (j *Job) waitPage(ctx context.Context, number int) error {
	s := j.doc.Session()
	if s == nil {
		return paginate.ErrNotPaginated
	}
	page, err := s.Page(number)
	if err != nil {
		return err
	}
	if err := page.Tracker.Wait(ctx); err != nil {
		return fmt.Errorf("pictures of page %d did not arrive: %w", number, err)
	}
	return nil
}

// Print hands all pages to printer and returns produced files in page order.
func (j *Job) Print(ctx context.Context) ([]string, error) {
	if _, err := j.doc.GetAllPages(ctx); err != nil {
		return nil, fmt.Errorf("unable to print %s: %w", j.name, err)
	}
	return j.writer.Printed(), nil
}

// Close waits for background loads, lets render thread drain updates they
// posted and stops it.
func (j *Job) Close() (err error) {
	if j.loader != nil {
		j.loader.Close()
	}
	if er := j.render.Do(context.Background(), func() error { return nil }); er != nil && !errors.Is(er, dispatch.ErrStopped) {
		err = multierr.Append(err, er)
	}
	j.stop()
	if er := <-j.running; er != nil && !errors.Is(er, context.Canceled) {
		err = multierr.Append(err, fmt.Errorf("render thread: %w", er))
	}
	err = multierr.Append(err, j.src.Close())
	j.log.Debug("Print job closed", zap.String("name", j.name), zap.Int("pending", j.render.Pending()))
	return err
}
