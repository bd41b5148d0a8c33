package resources

import (
	"image"
	"image/color"
	"sync"

	"github.com/disintegration/imaging"
)

const brokenSize = 64

var (
	brokenOnce  sync.Once
	brokenImage image.Image
)

// Broken returns picture substituted for resources which could not be
// loaded: crossed out frame.
func Broken() image.Image {
	brokenOnce.Do(func() {
		img := imaging.New(brokenSize, brokenSize, color.NRGBA{0xf4, 0xf4, 0xf4, 0xff})
		frame := color.NRGBA{0x80, 0x80, 0x80, 0xff}
		cross := color.NRGBA{0xd0, 0x20, 0x20, 0xff}
		for i := range brokenSize {
			img.SetNRGBA(i, 0, frame)
			img.SetNRGBA(i, brokenSize-1, frame)
			img.SetNRGBA(0, i, frame)
			img.SetNRGBA(brokenSize-1, i, frame)
			if i > 8 && i < brokenSize-8 {
				img.SetNRGBA(i, i, cross)
				img.SetNRGBA(brokenSize-1-i, i, cross)
			}
		}
		brokenImage = img
	})
	return brokenImage
}
