// Package ggtext lays out styled text and caches rasterized glyphs for
// drawing on the CPU or through GoGPU textures.
//
// # Overview
//
// The layout engine lives in the text sub-package. It resolves every
// character to a face from a fallback list, measures it, breaks the
// result into lines for a box width, optionally shapes each line and
// rasterizes each glyph once into a shared cache. The output is a lazy
// sequence of draw commands, each placing one cached glyph image.
//
// This package adds the package-wide logger and a Renderer compositing
// draw commands into an image.
//
// # Quick Start
//
//	face, err := text.NewSfntFace(goregular.TTF)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	engine, err := ggtext.NewEngine(text.WithShaper(text.NewGoTextShaper()))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	style := &text.Style{Faces: []text.Face{face}, Size: 24, Color: color.RGBA{A: 0xFF}}
//	runs := []text.Run{{Text: "Hello, World", Style: style}}
//
//	dst := image.NewRGBA(image.Rect(0, 0, 400, 100))
//	_, err = ggtext.NewRenderer(dst).DrawAll(
//	    engine.Layout(runs, text.Box{Width: 400}, text.WrapBreakWord))
//
// # GPU upload
//
// text.NewGPUImageFactory uploads glyphs through a gpucontext.TextureCreator.
// Draw the returned text.GPUImage textures with gpucontext.TextureDrawer.
//
// # Logging
//
// By default nothing is logged. Use SetLogger before creating engines to
// receive warnings about characters without a face, unimplemented control
// characters and shaping fallbacks.
package ggtext
