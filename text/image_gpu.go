// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package text

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// textureDestroyer matches the Destroy method of gogpu textures.
type textureDestroyer interface {
	Destroy()
}

// GPUImageFactory uploads glyph images as GPU textures through a
// gpucontext.TextureCreator, such as the one returned by
// gogpu.Context.AsTextureDrawer().TextureCreator().
//
// Glyph pixels carry the same value in every channel, so RGBA and BGRA
// surfaces receive identical data.
type GPUImageFactory struct {
	format     gputypes.TextureFormat
	newTexture func(width, height int, pix []byte) (any, error)
}

// NewGPUImageFactory creates a factory uploading through creator.
// format must be gputypes.TextureFormatRGBA8Unorm or TextureFormatBGRA8Unorm.
func NewGPUImageFactory(creator gpucontext.TextureCreator, format gputypes.TextureFormat) (*GPUImageFactory, error) {
	if creator == nil {
		return nil, ErrNilFactory
	}
	if err := checkTextureFormat(format); err != nil {
		return nil, err
	}
	return &GPUImageFactory{
		format: format,
		newTexture: func(width, height int, pix []byte) (any, error) {
			return creator.NewTextureFromRGBA(width, height, pix)
		},
	}, nil
}

// checkTextureFormat accepts the 8-bit four-channel formats.
func checkTextureFormat(format gputypes.TextureFormat) error {
	switch format {
	case gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatBGRA8Unorm:
		return nil
	default:
		return fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}
}

// Format returns the texture format the factory was created for.
func (f *GPUImageFactory) Format() gputypes.TextureFormat {
	return f.format
}

// NewImage implements ImageFactory.
func (f *GPUImageFactory) NewImage(width, height int, pix []byte) (Image, error) {
	tex, err := f.newTexture(width, height, pix)
	if err != nil {
		return nil, fmt.Errorf("text: upload %dx%d glyph texture: %w", width, height, err)
	}
	return &GPUImage{Texture: tex, width: width, height: height}, nil
}

// GPUImage is a glyph texture. Texture is the value returned by the
// TextureCreator and can be drawn with gpucontext.TextureDrawer.
type GPUImage struct {
	Texture any

	width, height int
}

// Size implements Image.
func (i *GPUImage) Size() (width, height int) {
	return i.width, i.height
}

// Dispose implements Image.
func (i *GPUImage) Dispose() {
	if d, ok := i.Texture.(textureDestroyer); ok {
		d.Destroy()
	}
	i.Texture = nil
}
