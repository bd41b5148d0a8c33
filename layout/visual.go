package layout

import (
	"image"
	"strings"

	"tprint/content"
	"tprint/paginate"
)

type PlacementKind int

const (
	PlacedLine PlacementKind = iota
	PlacedImage
)

// Placement is a laid out line or image. Bounds are absolute page
// coordinates, Box is the region row it was placed in.
type Placement struct {
	Kind   PlacementKind
	Region paginate.RegionID
	Bounds paginate.Rect
	Box    paginate.Rect
	// lines
	Text      string
	TextWidth float64
	Last      bool
	// images
	Image *content.Image
}

// Visual is a laid out page. It is created and changed on the render thread
// only.
type Visual struct {
	number   int
	geometry paginate.Geometry
	format   content.Format
	metrics  Metrics
	items    []Placement
	images   map[string]image.Image
}

func newVisual(page *paginate.Page, format content.Format, m Metrics) *Visual {
	return &Visual{
		number:   page.Number,
		geometry: page.Geometry,
		format:   format,
		metrics:  m,
		images:   make(map[string]image.Image),
	}
}

func (v *Visual) PageNumber() int { return v.number }

func (v *Visual) Size() (float64, float64) {
	return v.geometry.PageWidth, v.geometry.PageHeight
}

func (v *Visual) Format() content.Format { return v.format }

func (v *Visual) Metrics() Metrics { return v.metrics }

func (v *Visual) Items() []Placement { return v.items }

// Images lists images placed on the page.
func (v *Visual) Images() []*content.Image {
	var images []*content.Image
	for _, it := range v.items {
		if it.Kind == PlacedImage {
			images = append(images, it.Image)
		}
	}
	return images
}

// AttachImage supplies decoded picture for the placed image.
func (v *Visual) AttachImage(id string, img image.Image) {
	v.images[id] = img
}

// Picture returns decoded picture if it was attached already.
func (v *Visual) Picture(id string) (image.Image, bool) {
	img, ok := v.images[id]
	return img, ok
}

// Text returns text of all lines on the page, one per line.
func (v *Visual) Text() string {
	var lines []string
	for _, it := range v.items {
		if it.Kind == PlacedLine {
			lines = append(lines, it.Text)
		}
	}
	return strings.Join(lines, "\n")
}
