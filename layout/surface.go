// Package layout flows content through chained regions of paginated pages.
//
// Text is set in a single fixed pitch bitmap face scaled to the font size.
// Layout is incremental: every pass only fills regions added since the
// previous pass, continuing where content stopped.
package layout

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"tprint/common"
	"tprint/content"
	"tprint/paginate"
)

// position in content: block index and rune offset inside paragraph
type position struct {
	block  int
	offset int
}

type regionState struct {
	start, end position
}

// Surface implements paginate.RenderSurface.
type Surface struct {
	log *zap.Logger

	src     *content.Source
	text    [][]rune // paragraph runes by block index
	mode    common.DisplayContent
	metrics Metrics

	chain   *paginate.Chain
	visuals map[int]*Visual
	pending []paginate.RegionID
	laid    map[paginate.RegionID]regionState
	pos     position
	valid   bool
}

func NewSurface(log *zap.Logger) *Surface {
	return &Surface{log: log.Named("layout")}
}

func (s *Surface) Reset(src *content.Source, mode common.DisplayContent) {
	s.src = src
	s.mode = mode
	s.metrics = NewMetrics(src.Format)
	s.text = make([][]rune, len(src.Blocks))
	for i, b := range src.Blocks {
		if b.Kind == content.BlockParagraph {
			s.text[i] = []rune(b.Text)
		}
	}
	s.chain = nil
	s.visuals = make(map[int]*Visual)
	s.pending = nil
	s.laid = make(map[paginate.RegionID]regionState)
	s.pos = position{}
	s.valid = false
}

func (s *Surface) AddPage(page *paginate.Page, chain *paginate.Chain) (paginate.Renderable, error) {
	if s.src == nil {
		return nil, fmt.Errorf("surface has no content attached")
	}
	if _, ok := s.visuals[page.Number]; ok {
		return nil, fmt.Errorf("page %d already added", page.Number)
	}
	s.chain = chain
	v := newVisual(page, s.src.Format, s.metrics)
	s.visuals[page.Number] = v
	s.pending = append(s.pending, page.Regions...)
	return v, nil
}

func (s *Surface) InvalidateMeasure() {
	s.valid = false
}

func (s *Surface) UpdateLayout() error {
	for _, id := range s.pending {
		r, ok := s.chain.Region(id)
		if !ok {
			return fmt.Errorf("%w: unknown region %d", paginate.ErrBrokenChain, id)
		}
		if r.Incoming != paginate.NoRegion {
			if _, ok := s.laid[r.Incoming]; !ok {
				return fmt.Errorf("%w: region %d laid out before its predecessor %d", paginate.ErrBrokenChain, id, r.Incoming)
			}
		}
		v := s.visuals[r.Page]
		if v == nil {
			return fmt.Errorf("region %d belongs to unknown page %d", id, r.Page)
		}
		start := s.pos
		s.flow(r, v)
		s.laid[id] = regionState{start: start, end: s.pos}
	}
	s.pending = s.pending[:0]
	s.valid = true
	return nil
}

func (s *Surface) HasOverflow(id paginate.RegionID) (bool, error) {
	st, ok := s.laid[id]
	if !ok || !s.valid {
		return false, fmt.Errorf("%w: region %d", paginate.ErrLayoutStale, id)
	}
	return !s.atEnd(st.end), nil
}

func (s *Surface) Resources(page *paginate.Page) []*content.Image {
	v := s.visuals[page.Number]
	if v == nil {
		return nil
	}
	return v.Images()
}

// Span returns content range region received, end is exclusive.
func (s *Surface) Span(id paginate.RegionID) (startBlock, startOffset, endBlock, endOffset int, ok bool) {
	st, ok := s.laid[id]
	return st.start.block, st.start.offset, st.end.block, st.end.offset, ok
}

func (s *Surface) atEnd(p position) bool {
	return p.block >= len(s.src.Blocks)
}

// flow fills region r with content starting at current position. Empty region
// always takes at least one item so that flow never stalls.
func (s *Surface) flow(r paginate.FlowRegion, v *Visual) {
	box := r.Bounds
	y, left := box.Y, box.Height
	empty := true

	for !s.atEnd(s.pos) {
		b := s.src.Blocks[s.pos.block]

		if b.Kind == content.BlockImage {
			if !s.mode.HasImages() || b.Image == nil {
				s.next()
				continue
			}
			w, h := s.imageBox(b.Image, box.Width, box.Height)
			if h > left && !empty {
				return
			}
			v.items = append(v.items, Placement{
				Kind:   PlacedImage,
				Region: r.ID,
				Bounds: paginate.Rect{X: box.X, Y: y, Width: w, Height: h},
				Box:    box,
				Image:  b.Image,
			})
			y, left, empty = y+h, left-h, false
			s.next()
			continue
		}

		lh := s.metrics.LineHeight
		for _, line := range BreakLines(s.text[s.pos.block][s.pos.offset:], box.Width, s.metrics) {
			if s.pos.offset > 0 && line.Consumed > 0 && len(line.Text) == 0 {
				// only spaces left of a paragraph split between regions
				s.pos.offset += line.Consumed
				continue
			}
			if lh > left && !empty {
				return
			}
			v.items = append(v.items, Placement{
				Kind:      PlacedLine,
				Region:    r.ID,
				Bounds:    paginate.Rect{X: box.X, Y: y, Width: box.Width, Height: lh},
				Box:       box,
				Text:      line.Text,
				TextWidth: line.Width,
				Last:      line.Last,
			})
			y, left, empty = y+lh, left-lh, false
			s.pos.offset += line.Consumed
		}
		s.next()
	}
}

func (s *Surface) next() {
	s.pos.block++
	s.pos.offset = 0
}

// imageBox scales declared (or default) image size down to fit region.
func (s *Surface) imageBox(img *content.Image, maxW, maxH float64) (float64, float64) {
	f := s.src.Format
	w, h := finite(img.Width), finite(img.Height)
	switch {
	case w > 0 && h > 0:
	case w > 0 && f.ImageWidth > 0:
		h = w * f.ImageHeight / f.ImageWidth
	case h > 0 && f.ImageHeight > 0:
		w = h * f.ImageWidth / f.ImageHeight
	default:
		w, h = f.ImageWidth, f.ImageHeight
	}
	if w, h = finite(w), finite(h); w <= 0 || h <= 0 {
		w, h = maxW, maxH/2
	}
	if w > maxW {
		h, w = h*(maxW/w), maxW
	}
	if h > maxH {
		w, h = w*(maxH/h), maxH
	}
	return w, h
}

// finite maps declared sizes which cannot be used for layout to "unknown".
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
