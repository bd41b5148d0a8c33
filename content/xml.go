package content

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/language"
)

// ParseXML reads structured source:
//
//	<document lang="en-US" style="font-size: 14px; color: #202020">
//	  <p>Some text <image src="picture.png" width="120" height="80"/> more text</p>
//	  <image src="diagram.svg"/>
//	</document>
//
// Inline images split paragraph in two.
func ParseXML(r io.Reader, name string, format Format, log *zap.Logger) (*Source, error) {
	doc := etree.NewDocument()
	doc.ReadSettings = etree.ReadSettings{
		CharsetReader: charset.NewReaderLabel,
		Permissive:    true,
	}
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("unable to parse %q: %w", name, err)
	}

	root := doc.Root()
	if root == nil || root.Tag != "document" {
		return nil, fmt.Errorf("unable to parse %q: root element <document> not found", name)
	}

	if lang := root.SelectAttrValue("lang", ""); len(lang) > 0 {
		if tag, err := language.Parse(lang); err != nil {
			log.Warn("Ignoring bad language tag", zap.String("lang", lang), zap.Error(err))
		} else {
			format.Language = tag
		}
	}
	if style := root.SelectAttrValue("style", ""); len(style) > 0 {
		format = applyStyle(style, format, log)
	}

	p := &xmlParser{src: &Source{Name: name, Format: format}, log: log}
	for _, tok := range root.Child {
		switch v := tok.(type) {
		case *etree.Element:
			p.block(v)
		case *etree.CharData:
			if text := strings.TrimSpace(v.Data); len(text) > 0 {
				p.src.Blocks = append(p.src.Blocks, Block{Kind: BlockParagraph, Text: collapse(text)})
			}
		}
	}
	return p.src, nil
}

type xmlParser struct {
	src    *Source
	log    *zap.Logger
	images int
}

func (p *xmlParser) block(el *etree.Element) {
	switch el.Tag {
	case "p":
		p.paragraph(el)
	case "image", "img":
		p.image(el)
	case "br", "empty-line":
		p.src.Blocks = append(p.src.Blocks, Block{Kind: BlockParagraph})
	default:
		p.log.Debug("Unexpected element treated as paragraph", zap.String("tag", el.Tag))
		p.paragraph(el)
	}
}

func (p *xmlParser) paragraph(el *etree.Element) {
	if len(el.SelectAttrValue("style", "")) > 0 {
		p.log.Debug("Paragraph style is ignored, formatting applies to the whole document")
	}

	var sb strings.Builder
	emitted := false
	flush := func(force bool) {
		text := collapse(sb.String())
		sb.Reset()
		if len(text) > 0 || force {
			p.src.Blocks = append(p.src.Blocks, Block{Kind: BlockParagraph, Text: text})
			emitted = true
		}
	}

	var walk func(e *etree.Element)
	walk = func(e *etree.Element) {
		for _, tok := range e.Child {
			switch v := tok.(type) {
			case *etree.CharData:
				sb.WriteString(v.Data)
			case *etree.Element:
				switch v.Tag {
				case "image", "img":
					flush(false)
					p.image(v)
					emitted = true
				case "br":
					flush(true)
				default:
					walk(v)
				}
			}
		}
	}
	walk(el)
	flush(!emitted)
}

func (p *xmlParser) image(el *etree.Element) {
	src := el.SelectAttrValue("src", el.SelectAttrValue("href", ""))
	if len(src) == 0 {
		p.log.Warn("Image without source reference, skipping")
		return
	}
	p.images++
	img := &Image{
		ID:     fmt.Sprintf("image-%d", p.images),
		Src:    src,
		Alt:    el.SelectAttrValue("alt", ""),
		Width:  p.dimension(el, "width"),
		Height: p.dimension(el, "height"),
	}
	p.src.Blocks = append(p.src.Blocks, Block{Kind: BlockImage, Image: img})
}

func (p *xmlParser) dimension(el *etree.Element, attr string) float64 {
	val := el.SelectAttrValue(attr, "")
	if len(val) == 0 {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(val, "px"), 64)
	if err != nil || v < 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		p.log.Warn("Ignoring bad image dimension", zap.String("attr", attr), zap.String("value", val))
		return 0
	}
	return v
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
