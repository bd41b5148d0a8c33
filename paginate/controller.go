package paginate

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Controller builds pages of a session one at a time until content stops
// overflowing. It runs on the render thread.
type Controller struct {
	session    *Session
	builder    *Builder
	surface    RenderSurface
	loader     ResourceLoader
	maxPages   int
	superseded func() bool
	log        *zap.Logger
}

func (c *Controller) Run(ctx context.Context) error {
	s := c.session
	s.setState(StateBuilding)

	c.surface.Reset(s.source, s.mode)

	trailing := NoRegion
	for {
		if err := ctx.Err(); err != nil {
			s.setState(StateFailed)
			return err
		}
		if c.superseded() {
			s.setState(StateSuperseded)
			return ErrSuperseded
		}
		if len(s.pages) >= c.maxPages {
			s.setState(StateFailed)
			return fmt.Errorf("%w: content still overflows after %d pages", ErrRunaway, c.maxPages)
		}

		number := len(s.pages) + 1
		page, next, err := c.builder.BuildPage(trailing, number, s.geometry.PageDescription(number), s.mode)
		if err != nil {
			s.setState(StateFailed)
			return err
		}
		visual, err := c.surface.AddPage(page, s.chain)
		if err != nil {
			s.setState(StateFailed)
			return fmt.Errorf("unable to add page %d: %w", number, err)
		}
		page.Visual = visual

		c.surface.InvalidateMeasure()
		if err := c.surface.UpdateLayout(); err != nil {
			s.setState(StateFailed)
			return fmt.Errorf("unable to lay out page %d: %w", number, err)
		}
		s.pages = append(s.pages, page)
		c.enlist(page)

		more, err := c.surface.HasOverflow(next)
		if err != nil {
			s.setState(StateFailed)
			return fmt.Errorf("unable to check overflow of page %d: %w", number, err)
		}
		c.log.Debug("Page built",
			zap.Int("page", number),
			zap.Int("regions", len(page.Regions)),
			zap.Int("pending", page.Tracker.Pending()),
			zap.Bool("overflow", more))
		if !more {
			break
		}
		trailing = next
	}

	if err := s.chain.Validate(); err != nil {
		s.setState(StateFailed)
		return err
	}
	s.setState(StateComplete)
	return nil
}

// enlist registers resources of the page with its tracker before handing them
// to the loader, so readiness never gets reported before loading starts.
func (c *Controller) enlist(page *Page) {
	images := c.surface.Resources(page)
	if len(images) == 0 {
		return
	}
	if c.loader == nil {
		c.log.Debug("No resource loader, images stay as placeholders", zap.Int("page", page.Number), zap.Int("images", len(images)))
		return
	}
	for range images {
		page.Tracker.AddPendingResource()
	}
	c.loader.Load(page, images)
}
