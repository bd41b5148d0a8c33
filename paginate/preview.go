package paginate

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"tprint/metrics"
)

// PreviewServer answers page requests of a complete session.
type PreviewServer struct {
	session    *Session
	cursor     *Cursor
	doc        PrintDocument
	dispatcher Dispatcher
	log        *zap.Logger
}

// GetPage hands page to preview immediately, whatever its readiness. When the
// page still has pending resources a single deferred update is armed (late is
// true), it is delivered only if page is still the current one by then.
// Called on the render thread.
func (p *PreviewServer) GetPage(number int) (visual Renderable, late bool, err error) {
	s := p.session
	if s.State() != StateComplete {
		return nil, false, ErrNotPaginated
	}
	page, err := s.Page(number)
	if err != nil {
		return nil, false, err
	}

	index := number - 1
	p.cursor.Exchange(s.gen, index)

	guard := func() bool {
		if p.cursor.Is(s.gen, index) {
			return true
		}
		p.log.Debug("Page is no longer current, dropping update", zap.Int("page", number))
		metrics.RecordLateUpdate(false)
		return false
	}
	late = !page.Tracker.NotifyWhenReady(guard, func() { p.deliverLate(page) })
	if late {
		p.log.Debug("Serving page before its resources are ready",
			zap.Int("page", number), zap.Int("pending", page.Tracker.Pending()))
	}

	if err := p.doc.SetPreviewPage(number, page.Visual); err != nil {
		return nil, late, fmt.Errorf("unable to set preview page %d: %w", number, err)
	}
	return page.Visual, late, nil
}

func (p *PreviewServer) deliverLate(page *Page) {
	p.dispatcher.Post(func() {
		// cursor could have moved while update was queued
		if !p.cursor.Is(p.session.gen, page.Number-1) {
			metrics.RecordLateUpdate(false)
			return
		}
		if err := p.doc.SetPreviewPage(page.Number, page.Visual); err != nil {
			p.log.Warn("Unable to update preview page", zap.Int("page", page.Number), zap.Error(err))
			return
		}
		metrics.RecordLateUpdate(true)
		p.log.Debug("Page updated after resources loaded", zap.Int("page", page.Number))
	})
}

// WaitReady blocks until every page has no pending resources. It must not be
// called on the render thread.
func (p *PreviewServer) WaitReady(ctx context.Context) error {
	for _, page := range p.session.pages {
		if err := page.Tracker.Wait(ctx); err != nil {
			return fmt.Errorf("page %d is not ready: %w", page.Number, err)
		}
	}
	return nil
}

// GetAllPages hands every page to print document in order and signals
// completion. Called on the render thread.
func (p *PreviewServer) GetAllPages() ([]Renderable, error) {
	s := p.session
	if s.State() != StateComplete {
		return nil, ErrNotPaginated
	}
	visuals := make([]Renderable, 0, len(s.pages))
	for _, page := range s.pages {
		if !page.Tracker.IsReady() {
			p.log.Debug("Adding page with pending resources", zap.Int("page", page.Number), zap.Int("pending", page.Tracker.Pending()))
		}
		if err := p.doc.AddPage(page.Visual); err != nil {
			return nil, fmt.Errorf("unable to add page %d: %w", page.Number, err)
		}
		visuals = append(visuals, page.Visual)
	}
	if err := p.doc.AddPagesComplete(); err != nil {
		return nil, fmt.Errorf("unable to complete page list: %w", err)
	}
	return visuals, nil
}
