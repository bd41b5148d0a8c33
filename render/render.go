// Package render rasterizes laid out pages.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"unicode"

	"github.com/disintegration/imaging"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"tprint/common"
	"tprint/layout"
)

var (
	Background  = color.NRGBA{0xff, 0xff, 0xff, 0xff}
	Placeholder = color.NRGBA{0xe8, 0xe8, 0xe8, 0xff}
	Frame       = color.NRGBA{0xa0, 0xa0, 0xa0, 0xff}
	defaultInk  = color.NRGBA{A: 0xff}
)

// Page draws visual into a new image. Scale is number of pixels per layout
// unit, non positive scale means 1.
func Page(v *layout.Visual, scale float64) *image.NRGBA {
	if scale <= 0 {
		scale = 1
	}
	w, h := v.Size()
	dst := imaging.New(px(w, scale), px(h, scale), Background)

	ink := v.Format().Foreground
	if ink == (color.NRGBA{}) {
		ink = defaultInk
	}
	m := v.Metrics()
	for _, it := range v.Items() {
		switch it.Kind {
		case layout.PlacedLine:
			drawLine(dst, it, v.Format().Alignment, m, ink, scale)
		case layout.PlacedImage:
			pic, _ := v.Picture(it.Image.ID)
			drawImage(dst, it, pic, scale)
		}
	}
	return dst
}

func px(v, scale float64) int {
	return max(int(math.Round(v*scale)), 1)
}

func rect(r image.Rectangle, x, y, w, h, scale float64) image.Rectangle {
	x0, y0 := int(math.Round(x*scale)), int(math.Round(y*scale))
	return image.Rect(x0, y0, x0+px(w, scale), y0+px(h, scale)).Intersect(r)
}

// Offsets returns horizontal position of every rune of the line relative to
// the region left edge.
func Offsets(it layout.Placement, align common.TextAlignment, m layout.Metrics) []float64 {
	runes := []rune(it.Text)
	free := max(it.Box.Width-it.TextWidth, 0)

	var start, gap float64
	switch align {
	case common.TextAlignmentCenter:
		start = free / 2
	case common.TextAlignmentRight:
		start = free
	case common.TextAlignmentJustify:
		if it.Last {
			break
		}
		spaces := 0
		for _, r := range runes {
			if unicode.IsSpace(r) {
				spaces++
			}
		}
		if spaces > 0 {
			gap = free / float64(spaces)
		}
	}

	xs := make([]float64, len(runes))
	x := start
	for i, r := range runes {
		xs[i] = x
		x += m.RuneWidth(r)
		if unicode.IsSpace(r) {
			x += gap
		}
	}
	return xs
}

// drawLine sets glyphs at native face size and scales the strip onto the
// page.
func drawLine(dst *image.NRGBA, it layout.Placement, align common.TextAlignment, m layout.Metrics, ink color.NRGBA, scale float64) {
	if len(it.Text) == 0 {
		return
	}
	face := layout.Face
	native := image.NewNRGBA(image.Rect(0, 0, int(math.Ceil(it.Box.Width/m.Scale))+face.Advance, face.Height))
	d := font.Drawer{Dst: native, Src: image.NewUniform(ink), Face: face}

	xs := Offsets(it, align, m)
	for i, r := range []rune(it.Text) {
		if unicode.IsSpace(r) || layout.Cells(r) == 0 {
			continue
		}
		d.Dot = fixed.Point26_6{X: fixed.Int26_6(math.Round(xs[i] / m.Scale * 64)), Y: fixed.I(face.Ascent)}
		d.DrawString(string(r))
	}

	size := float64(face.Height) * m.Scale
	y := it.Bounds.Y + max(it.Bounds.Height-size, 0)/2
	width := float64(native.Bounds().Dx()) * m.Scale
	target := rect(dst.Bounds(), it.Box.X, y, width, size, scale)
	if target.Empty() {
		return
	}
	xdraw.ApproxBiLinear.Scale(dst, target, native, native.Bounds(), xdraw.Over, nil)
}

// drawImage fits picture into its box keeping aspect ratio, images which are
// not loaded yet are drawn as framed placeholders.
func drawImage(dst *image.NRGBA, it layout.Placement, pic image.Image, scale float64) {
	b := it.Bounds
	target := rect(dst.Bounds(), b.X, b.Y, b.Width, b.Height, scale)
	if target.Empty() {
		return
	}
	if pic == nil || pic.Bounds().Empty() {
		draw.Draw(dst, target, image.NewUniform(Frame), image.Point{}, draw.Src)
		if inner := target.Inset(1); !inner.Empty() {
			draw.Draw(dst, inner, image.NewUniform(Placeholder), image.Point{}, draw.Src)
		}
		return
	}
	fitted := imaging.Fit(pic, target.Dx(), target.Dy(), imaging.Lanczos)
	fb := fitted.Bounds()
	at := image.Pt(target.Min.X+(target.Dx()-fb.Dx())/2, target.Min.Y+(target.Dy()-fb.Dy())/2)
	draw.Draw(dst, fb.Sub(fb.Min).Add(at), fitted, fb.Min, draw.Over)
}
