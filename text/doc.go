// Package text lays out styled, multi-run text inside a box and turns the
// result into positioned glyph images.
//
// The pipeline runs in one direction:
//
//   - Measure resolves every rune of every Run to the first Face of its Style
//     that covers it and reads the raw glyph metrics.
//   - BreakLines splits the measured glyphs into Lines under a WrapMode.
//   - An optional Shaper re-derives glyph ids and advances per Line, grouped
//     by face and size.
//   - Engine.Layout walks the Lines, positions every glyph and asks the
//     GlyphCache for its image, rasterizing each distinct glyph only once.
//
// # Example usage
//
//	face, err := text.NewSfntFace(goregular.TTF)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	style := &text.Style{Faces: []text.Face{face}, Size: 24, LineHeight: 30, Color: color.RGBA{A: 255}}
//
//	engine, err := text.NewEngine(text.RGBAImageFactory{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	box := text.Box{X: 10, Y: 10, Width: 300, Height: 200}
//	for cmd, err := range engine.Layout([]text.Run{{Text: "Hello, GoGPU!", Style: style}}, box, text.WrapBreakWord) {
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    draw(cmd.Image, cmd.X, cmd.Y, cmd.Color)
//	}
//
// # Cache lifetime
//
// Glyph images belong to the Engine's GlyphCache and live until Purge.
// Purge may be called at any time: images still pinned by a running Layout
// iteration are disposed when that iteration ends.
package text
