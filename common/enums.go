// Package common keeps enumerations shared by configuration and pagination
// engine, so the engine does not need to depend on configuration.
package common

//go:generate go tool go-enum --marshal --names --values

// What is placed on the printed page. Value is a bitmask: text channel adds
// overflow regions to every page, images channel lays out and loads pictures.
// ENUM(text=1, images, textAndImages)
type DisplayContent int

// HasText reports whether text channel is requested.
func (d DisplayContent) HasText() bool {
	return d&DisplayContentText == DisplayContentText
}

// HasImages reports whether images channel is requested.
func (d DisplayContent) HasImages() bool {
	return d&DisplayContentImages == DisplayContentImages
}

// Horizontal alignment of text lines inside flow region.
// ENUM(left, center, right, justify)
type TextAlignment int

// Kind of page count reported to print document.
// ENUM(intermediate, final)
type PageCountType int

// How final print treats pages with resources still loading.
// ENUM(immediate, wait)
type AllPagesPolicy int
