package paginate

import (
	"context"

	"tprint/common"
	"tprint/content"
)

// Renderable is the visual of a single page as handed to print document.
type Renderable interface {
	PageNumber() int
	Size() (width, height float64)
}

// RenderSurface lays out content into flow regions. All calls are made from
// the render thread.
type RenderSurface interface {
	// Reset drops previous layout and attaches new content to the surface.
	Reset(src *content.Source, mode common.DisplayContent)
	// AddPage creates visual for the page. Page regions are already part of
	// the chain.
	AddPage(page *Page, chain *Chain) (Renderable, error)
	InvalidateMeasure()
	// UpdateLayout synchronously flows content through every region added so
	// far.
	UpdateLayout() error
	// HasOverflow reports whether content did not fit into region and its
	// predecessors. Must be called after UpdateLayout.
	HasOverflow(id RegionID) (bool, error)
	// Resources lists asynchronous resources placed on the page by last
	// layout pass.
	Resources(page *Page) []*content.Image
}

// PrintDocument is the consumer of pages (print preview and printer).
type PrintDocument interface {
	SetPreviewPageCount(count int, kind common.PageCountType)
	SetPreviewPage(pageNumber int, visual Renderable) error
	AddPage(visual Renderable) error
	AddPagesComplete() error
}

// ResourceLoader loads page resources in background. For every image it must
// call page.Tracker.ResourceCompleted exactly once, failures included. When
// visual is updated, completion has to follow the update on the render
// thread.
type ResourceLoader interface {
	Load(page *Page, images []*content.Image)
}

// Dispatcher runs functions on the render thread. Post never blocks, Do
// waits for the function result.
type Dispatcher interface {
	Post(fn func())
	Do(ctx context.Context, fn func() error) error
}
