package text

import (
	"image"
	"sync/atomic"
)

// Image is a displayable glyph image created by an ImageFactory.
type Image interface {
	// Size returns the image dimensions in pixels.
	Size() (width, height int)

	// Dispose releases the image. It is called exactly once by the GlyphCache.
	Dispose()
}

// ImageFactory creates images from 8-bit, 4-channel pixel data.
// pix holds width*height*4 bytes; the factory may keep it.
type ImageFactory interface {
	NewImage(width, height int, pix []byte) (Image, error)
}

// expandIntensity converts an intensity mask to 4-channel pixels by
// replicating every value into all channels.
func expandIntensity(mask *image.Alpha) []byte {
	w, h := mask.Rect.Dx(), mask.Rect.Dy()
	pix := make([]byte, 0, w*h*4)
	for y := 0; y < h; y++ {
		row := mask.Pix[y*mask.Stride : y*mask.Stride+w]
		for _, v := range row {
			pix = append(pix, v, v, v, v)
		}
	}
	return pix
}

// RGBAImageFactory keeps glyph images in CPU memory as *image.RGBA.
type RGBAImageFactory struct{}

// NewImage implements ImageFactory.
func (RGBAImageFactory) NewImage(width, height int, pix []byte) (Image, error) {
	return &RGBAImage{
		RGBA: &image.RGBA{
			Pix:    pix,
			Stride: width * 4,
			Rect:   image.Rect(0, 0, width, height),
		},
	}, nil
}

// RGBAImage is an Image backed by an *image.RGBA. The pixel data is
// released on Dispose.
type RGBAImage struct {
	*image.RGBA
	disposed atomic.Bool
}

// Size implements Image.
func (i *RGBAImage) Size() (width, height int) {
	return i.Rect.Dx(), i.Rect.Dy()
}

// Dispose implements Image.
func (i *RGBAImage) Dispose() {
	if i.disposed.Swap(true) {
		return
	}
	i.Pix = nil
}

// Disposed reports whether Dispose was called.
func (i *RGBAImage) Disposed() bool {
	return i.disposed.Load()
}
