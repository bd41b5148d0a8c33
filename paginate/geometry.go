package paginate

import "fmt"

// Geometry is a page description reported by printer. All units are device
// independent pixels.
type Geometry struct {
	PageWidth       float64
	PageHeight      float64
	ImageableWidth  float64
	ImageableHeight float64
}

func (g Geometry) Validate() error {
	if g.PageWidth <= 0 || g.PageHeight <= 0 {
		return fmt.Errorf("page size %vx%v must be positive", g.PageWidth, g.PageHeight)
	}
	if g.ImageableWidth <= 0 || g.ImageableHeight <= 0 || g.ImageableWidth > g.PageWidth || g.ImageableHeight > g.PageHeight {
		return fmt.Errorf("imageable area %vx%v does not fit page %vx%v", g.ImageableWidth, g.ImageableHeight, g.PageWidth, g.PageHeight)
	}
	return nil
}

// GeometrySource reports page description for a given 1-based page number.
type GeometrySource interface {
	PageDescription(pageNumber int) Geometry
}

// StaticGeometry describes the same paper for every page.
type StaticGeometry Geometry

func (g StaticGeometry) PageDescription(int) Geometry { return Geometry(g) }

type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Margins are total horizontal and vertical margins, split evenly between
// opposite sides.
type Margins struct {
	Horizontal float64
	Vertical   float64
}

// ComputeMargins keeps content inside imageable area and at least the given
// fraction of page size (per side) away from paper edges.
func ComputeMargins(g Geometry, left, top float64) Margins {
	return Margins{
		Horizontal: max(g.PageWidth-g.ImageableWidth, g.PageWidth*left*2),
		Vertical:   max(g.PageHeight-g.ImageableHeight, g.PageHeight*top*2),
	}
}

func (m Margins) Left() float64 { return m.Horizontal / 2 }
func (m Margins) Top() float64 { return m.Vertical / 2 }

// Content returns page area available for flow regions.
func (m Margins) Content(g Geometry) Rect {
	return Rect{
		X:      m.Left(),
		Y:      m.Top(),
		Width:  max(0, g.PageWidth-m.Horizontal),
		Height: max(0, g.PageHeight-m.Vertical),
	}
}

// proportional row heights of page content grid
var rowWeights = [...]float64{2.5, 3.5, 1.5}

func rowBounds(content Rect) [len(rowWeights)]Rect {
	var total float64
	for _, w := range rowWeights {
		total += w
	}
	var rows [len(rowWeights)]Rect
	y := content.Y
	for i, w := range rowWeights {
		h := content.Height * w / total
		rows[i] = Rect{X: content.X, Y: y, Width: content.Width, Height: h}
		y += h
	}
	return rows
}
