package layout

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"tprint/paginate"
)

type treeWriter struct {
	w   io.Writer
	err error
}

func (tw *treeWriter) line(depth int, format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.w, strings.Repeat("  ", depth)+format+"\n", args...)
}

func (tw *treeWriter) text(depth int, label, value string) {
	if len(value) > 0 {
		value = strconv.Quote(value)
	}
	tw.line(depth, "%s: %s", label, value)
}

func rect(r paginate.Rect) string {
	return fmt.Sprintf("[%.1f %.1f %.1f %.1f]", r.X, r.Y, r.Width, r.Height)
}

// Describe writes laid out pages as indented tree: page, regions it hosts and
// lines and images placed into every region. Called on the render thread.
func Describe(w io.Writer, pages []*paginate.Page, chain *paginate.Chain) error {
	tw := &treeWriter{w: w}
	for _, page := range pages {
		tw.line(0, "page %d %.0fx%.0f pending=%d", page.Number, page.Geometry.PageWidth, page.Geometry.PageHeight, page.Tracker.Pending())
		v, ok := page.Visual.(*Visual)
		if !ok {
			tw.line(1, "no layout")
			continue
		}
		for _, id := range page.Regions {
			r, ok := chain.Region(id)
			if !ok {
				tw.line(1, "region %d unknown", id)
				continue
			}
			tw.line(1, "region %d %s row=%d %s -> %d", r.ID, r.Kind, r.Row, rect(r.Bounds), r.Target)
			for _, it := range v.items {
				if it.Region != id {
					continue
				}
				switch it.Kind {
				case PlacedLine:
					label := "line"
					if it.Last {
						label = "last"
					}
					tw.text(2, label, it.Text)
				case PlacedImage:
					state := "loading"
					if _, ok := v.images[it.Image.ID]; ok {
						state = "attached"
					}
					tw.line(2, "image %s %s %s %s", it.Image.ID, strconv.Quote(it.Image.Src), rect(it.Bounds), state)
				}
			}
		}
	}
	return tw.err
}
