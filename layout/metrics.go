package layout

import (
	"unicode"

	"golang.org/x/image/font/basicfont"
	"golang.org/x/text/width"

	"tprint/content"
)

// Face is the only glyph source, every font family maps onto it.
var Face = basicfont.Face7x13

// Metrics measures text set in fixed pitch face scaled to font size.
type Metrics struct {
	Scale      float64 // font size to native face height ratio
	Advance    float64 // regular cell width
	Spacing    float64 // extra space after every glyph
	LineHeight float64
	Ascent     float64
}

func NewMetrics(f content.Format) Metrics {
	size := f.FontSize
	if size <= 0 {
		size = float64(Face.Height)
	}
	spacing := f.LineSpacing
	if spacing < 1 {
		spacing = 1
	}
	scale := size / float64(Face.Height)
	return Metrics{
		Scale:      scale,
		Advance:    float64(Face.Advance) * scale,
		Spacing:    size * float64(f.CharacterSpacing) / 1000,
		LineHeight: size * spacing,
		Ascent:     float64(Face.Ascent) * scale,
	}
}

// Cells returns number of face cells the rune occupies: wide east asian
// characters take two, combining marks and controls none.
func Cells(r rune) int {
	switch {
	case unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Me, r) || unicode.IsControl(r):
		return 0
	}
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	}
	return 1
}

func (m Metrics) RuneWidth(r rune) float64 {
	cells := Cells(r)
	if cells == 0 {
		return 0
	}
	return float64(cells)*m.Advance + m.Spacing
}

func (m Metrics) StringWidth(s string) float64 {
	var w float64
	for _, r := range s {
		w += m.RuneWidth(r)
	}
	return w
}
