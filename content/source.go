// Package content holds the flowing source that gets paginated: paragraphs of
// text with optional inline images and the formatting applied to all of them.
package content

import (
	"strings"
)

type BlockKind int

const (
	BlockParagraph BlockKind = iota
	BlockImage
)

func (k BlockKind) String() string {
	switch k {
	case BlockParagraph:
		return "paragraph"
	case BlockImage:
		return "image"
	}
	return "unknown"
}

// Image is a reference to an external picture placed in the flow. Width and
// Height are declared sizes, zero when the source did not specify them.
type Image struct {
	ID     string
	Src    string
	Alt    string
	Width  float64
	Height float64
}

type Block struct {
	Kind  BlockKind
	Text  string
	Image *Image
}

// Source is a single flowing document. Blocks are immutable once the source
// is handed over for pagination.
type Source struct {
	Name   string
	Dir    string // base for relative image references
	Format Format
	Blocks []Block
}

// NewSource creates source from the plain text: every line becomes separate
// paragraph, empty lines are kept as blank paragraphs. A single final line
// break terminates the last line and does not start a new paragraph.
func NewSource(name, text string, format Format) *Source {
	src := &Source{Name: name, Format: format}
	src.appendText(text)
	return src
}

func (s *Source) appendText(text string) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSuffix(text, "\n")
	for line := range strings.SplitSeq(text, "\n") {
		s.Blocks = append(s.Blocks, Block{Kind: BlockParagraph, Text: line})
	}
}

// Images lists all image references in flow order.
func (s *Source) Images() []*Image {
	var images []*Image
	for _, b := range s.Blocks {
		if b.Kind == BlockImage && b.Image != nil {
			images = append(images, b.Image)
		}
	}
	return images
}

// Text returns all paragraph text joined by new lines, images are skipped.
func (s *Source) Text() string {
	var sb strings.Builder
	first := true
	for _, b := range s.Blocks {
		if b.Kind != BlockParagraph {
			continue
		}
		if !first {
			sb.WriteByte('\n')
		}
		sb.WriteString(b.Text)
		first = false
	}
	return sb.String()
}

// Empty reports whether source has nothing to lay out.
func (s *Source) Empty() bool {
	for _, b := range s.Blocks {
		if b.Kind == BlockImage || len(strings.TrimSpace(b.Text)) > 0 {
			return false
		}
	}
	return true
}
