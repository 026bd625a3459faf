package ggtext

import (
	"errors"
	"fmt"
	"image"
	"iter"
	"math"

	"github.com/gogpu/ggtext/text"
	xdraw "golang.org/x/image/draw"
)

// ErrUnsupportedImage is returned by Renderer for draw commands whose image
// was not created by text.RGBAImageFactory.
var ErrUnsupportedImage = errors.New("ggtext: draw command image is not a *text.RGBAImage")

// Renderer composites draw commands into a CPU image.
//
// Glyph images are used as coverage masks for the command color, so the
// same cached glyph can be drawn in any color.
type Renderer struct {
	dst xdraw.Image

	// Scale multiplies positions and glyph sizes. Values other than 1 are
	// resampled with Catmull-Rom. Default is 1.
	Scale float64
}

// NewRenderer creates a renderer drawing into dst.
func NewRenderer(dst xdraw.Image) *Renderer {
	return &Renderer{dst: dst, Scale: 1}
}

// NewEngine creates a text.Engine keeping glyphs in CPU memory and logging
// through Logger. Later options override the logger.
func NewEngine(opts ...text.EngineOption) (*text.Engine, error) {
	all := make([]text.EngineOption, 0, len(opts)+1)
	all = append(all, text.WithLogger(Logger()))
	all = append(all, opts...)
	return text.NewEngine(text.RGBAImageFactory{}, all...)
}

// Draw composites one command.
func (r *Renderer) Draw(cmd text.DrawCommand) error {
	img, ok := cmd.Image.(*text.RGBAImage)
	if !ok {
		return fmt.Errorf("%w: %T", ErrUnsupportedImage, cmd.Image)
	}
	if img.Pix == nil {
		return nil
	}

	src := image.NewUniform(cmd.Color)
	scale := r.Scale
	if scale <= 0 {
		scale = 1
	}

	if scale == 1 {
		x, y := int(math.Round(cmd.X)), int(math.Round(cmd.Y))
		rect := image.Rect(x, y, x+img.Rect.Dx(), y+img.Rect.Dy())
		xdraw.DrawMask(r.dst, rect, src, image.Point{}, img, img.Rect.Min, xdraw.Over)
		return nil
	}

	// Colorize at native size, then resample into place.
	colored := image.NewRGBA(img.Rect)
	xdraw.DrawMask(colored, colored.Rect, src, image.Point{}, img, img.Rect.Min, xdraw.Src)

	x, y := int(math.Round(cmd.X*scale)), int(math.Round(cmd.Y*scale))
	w := int(math.Round(float64(img.Rect.Dx()) * scale))
	h := int(math.Round(float64(img.Rect.Dy()) * scale))
	if w <= 0 || h <= 0 {
		return nil
	}
	xdraw.CatmullRom.Scale(r.dst, image.Rect(x, y, x+w, y+h), colored, colored.Rect, xdraw.Over, nil)
	return nil
}

// DrawAll composites every command of seq and returns how many were drawn.
// It stops at the first error.
func (r *Renderer) DrawAll(seq iter.Seq2[text.DrawCommand, error]) (int, error) {
	n := 0
	for cmd, err := range seq {
		if err != nil {
			return n, err
		}
		if err := r.Draw(cmd); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
