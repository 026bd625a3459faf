package text

import (
	"image/color"
	"iter"
	"log/slog"

	"github.com/gogpu/ggtext/internal/cache"
)

// DrawCommand places one glyph image.
type DrawCommand struct {
	// Image is owned by the glyph cache and must not be disposed.
	Image Image

	// X, Y is the top-left corner of the image in destination coordinates.
	X, Y float64

	Color color.RGBA
}

// Engine lays out styled runs into draw commands.
//
// An Engine owns its glyph cache and shaping memo. It is safe for
// concurrent use as long as its faces and shaper are.
type Engine struct {
	cache  *GlyphCache
	shaper *lineShaper
	rules  *WordBreakRules
	log    *slog.Logger
}

// NewEngine creates an engine uploading glyph images through factory.
func NewEngine(factory ImageFactory, opts ...EngineOption) (*Engine, error) {
	cfg := defaultEngineConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	gc := cfg.cache
	if gc == nil {
		var err error
		if gc, err = NewGlyphCache(factory); err != nil {
			return nil, err
		}
	}

	e := &Engine{
		cache: gc,
		rules: cfg.rules,
		log:   loggerOrNop(cfg.logger),
	}
	if cfg.shaper != nil {
		e.shaper = &lineShaper{shaper: cfg.shaper, log: e.log}
		if cfg.shapeCacheSize > 0 {
			e.shaper.memo = cache.New[shapeKey, []ShapedGlyph](cfg.shapeCacheSize)
		}
	}
	return e, nil
}

// Cache returns the engine's glyph cache.
func (e *Engine) Cache() *GlyphCache {
	return e.cache
}

// Purge empties the glyph cache. Images handed out by running layouts stay
// valid until those layouts finish.
func (e *Engine) Purge() {
	e.cache.Purge()
}

// Lines measures runs and breaks them into lines for box.Width.
func (e *Engine) Lines(runs []Run, box Box, mode WrapMode) ([]*Line, error) {
	glyphs, err := Measure(runs, e.log)
	if err != nil {
		return nil, err
	}
	return BreakLines(glyphs, box.Width, mode, e.rules, e.log), nil
}

// Layout returns the draw commands for runs laid out in box.
//
// The sequence is lazy: measuring and line breaking happen when iteration
// starts, each line is shaped when it is reached and each glyph is
// rasterized when it is reached. Stopping early skips the remaining work.
// Blank glyphs advance the pen without producing a command.
//
// On failure the sequence yields one zero DrawCommand with the error and
// ends. Images are guaranteed to survive a concurrent Purge only until the
// iteration ends.
func (e *Engine) Layout(runs []Run, box Box, mode WrapMode) iter.Seq2[DrawCommand, error] {
	return func(yield func(DrawCommand, error) bool) {
		lines, err := e.Lines(runs, box, mode)
		if err != nil {
			yield(DrawCommand{}, err)
			return
		}

		pass := e.cache.BeginPass()
		defer pass.End()

		var penY float64
		for _, line := range lines {
			if !e.layoutLine(line, box, penY, pass, yield) {
				return
			}
			penY += line.Baseline()
		}
	}
}

// layoutLine yields the commands of one line whose top is at penY.
// It returns false when iteration must stop.
func (e *Engine) layoutLine(line *Line, box Box, penY float64, pass *Pass, yield func(DrawCommand, error) bool) bool {
	baseline := line.Baseline()

	var shaped shapedLine
	if e.shaper != nil {
		shaped = e.shaper.shapeLine(line)
	}

	var penX float64
	for i, g := range line.Glyphs {
		key := GlyphKey{
			Kind:  KeyRune,
			ID:    uint32(g.Rune), //nolint:gosec // valid codepoints are non-negative
			Face:  g.Face,
			Size:  g.Size,
			Color: g.Color,
		}
		advance := g.Metrics.Advance
		var sg *ShapedGlyph
		if shaped.shaped != nil && shaped.shaped[i] {
			sg = &shaped.glyphs[i]
			key.Kind = KeyGlyph
			key.ID = uint32(sg.GID)
			advance = sg.XAdvance
		}

		if g.Kind == GlyphFace && g.Metrics.Width > 0 {
			cg, err := pass.GetOrRasterize(key)
			if err != nil {
				yield(DrawCommand{}, err)
				return false
			}
			if cg.Image != nil {
				cmd := DrawCommand{
					Image: cg.Image,
					X:     box.X + penX + float64(cg.Left),
					Y:     box.Y + penY + baseline - g.Metrics.BearingY,
					Color: g.Color,
				}
				if sg != nil {
					cmd.X += sg.XOffset
					cmd.Y = box.Y + penY + baseline - float64(cg.Top) - sg.YOffset
				}
				if !yield(cmd, nil) {
					return false
				}
			}
		}
		penX += advance
	}
	return true
}
