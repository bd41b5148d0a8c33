package content

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/text/language"

	"tprint/common"
	"tprint/config"
)

// Format is applied uniformly to the whole source.
type Format struct {
	FontFamily string
	FontSize   float64
	// CharacterSpacing is in 1/1000 of em, could be negative.
	CharacterSpacing int
	LineSpacing      float64
	Alignment        common.TextAlignment
	Foreground       color.NRGBA
	Language         language.Tag
	// Declared image box size used when image has no size of its own.
	ImageWidth  float64
	ImageHeight float64
}

// NewFormat builds default format from layout configuration.
func NewFormat(cfg *config.LayoutConfig) (Format, error) {
	f := Format{
		FontFamily:       cfg.FontFamily,
		FontSize:         cfg.FontSize,
		CharacterSpacing: cfg.CharacterSpacing,
		LineSpacing:      cfg.LineSpacing,
		Alignment:        cfg.Alignment,
		Foreground:       color.NRGBA{A: 0xff},
		Language:         language.AmericanEnglish,
		ImageWidth:       cfg.ImageWidth,
		ImageHeight:      cfg.ImageHeight,
	}
	if len(cfg.Foreground) > 0 {
		c, err := ParseColor(cfg.Foreground)
		if err != nil {
			return Format{}, err
		}
		f.Foreground = c
	}
	if len(cfg.Language) > 0 {
		tag, err := language.Parse(cfg.Language)
		if err != nil {
			return Format{}, fmt.Errorf("bad language tag %q: %w", cfg.Language, err)
		}
		f.Language = tag
	}
	return f, nil
}

var namedColors = map[string]color.NRGBA{
	"black":   {0, 0, 0, 0xff},
	"white":   {255, 255, 255, 0xff},
	"red":     {255, 0, 0, 0xff},
	"green":   {0, 128, 0, 0xff},
	"blue":    {0, 0, 255, 0xff},
	"gray":    {128, 128, 128, 0xff},
	"grey":    {128, 128, 128, 0xff},
	"silver":  {192, 192, 192, 0xff},
	"maroon":  {128, 0, 0, 0xff},
	"navy":    {0, 0, 128, 0xff},
	"teal":    {0, 128, 128, 0xff},
	"olive":   {128, 128, 0, 0xff},
	"purple":  {128, 0, 128, 0xff},
	"orange":  {255, 165, 0, 0xff},
	"brown":   {165, 42, 42, 0xff},
	"magenta": {255, 0, 255, 0xff},
	"cyan":    {0, 255, 255, 0xff},
}

// ParseColor understands #RGB, #RRGGBB, rgb(r,g,b) and a handful of named
// colors.
func ParseColor(s string) (color.NRGBA, error) {
	raw := strings.ToLower(strings.TrimSpace(s))

	if hex, ok := strings.CutPrefix(raw, "#"); ok {
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		if len(hex) == 6 {
			v, err := strconv.ParseUint(hex, 16, 32)
			if err != nil {
				return color.NRGBA{}, fmt.Errorf("bad color %q: %w", s, err)
			}
			return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
		}
		return color.NRGBA{}, fmt.Errorf("bad color %q", s)
	}

	if inner, ok := strings.CutPrefix(raw, "rgb("); ok {
		parts := strings.Split(strings.TrimSuffix(inner, ")"), ",")
		if len(parts) != 3 {
			return color.NRGBA{}, fmt.Errorf("bad color %q", s)
		}
		var rgb [3]uint8
		for i, p := range parts {
			v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
			if err != nil {
				return color.NRGBA{}, fmt.Errorf("bad color %q: %w", s, err)
			}
			rgb[i] = uint8(v)
		}
		return color.NRGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 0xff}, nil
	}

	if c, ok := namedColors[raw]; ok {
		return c, nil
	}
	return color.NRGBA{}, fmt.Errorf("unknown color %q", s)
}
