// Command ggtextdemo renders text with the ggtext layout engine.
package main

import (
	"flag"
	"image"
	"image/color"
	"image/png"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/ggtext"
	"github.com/gogpu/ggtext/text"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

func main() {
	var (
		input   = flag.String("text", "The quick brown fox jumps over the lazy dog.\nПривет, мир!", "text to render")
		size    = flag.Int("size", 24, "font size in pixels")
		width   = flag.Int("width", 400, "image width")
		height  = flag.Int("height", 300, "image height")
		wrap    = flag.String("wrap", "word", "wrap mode: none, char or word")
		shape   = flag.Bool("shape", false, "shape lines with HarfBuzz")
		rules   = flag.String("rules", "", "YAML word-break rules file")
		output  = flag.String("out", "ggtext.png", "output file")
		verbose = flag.Bool("v", false, "log layout warnings")
	)
	flag.Parse()

	if *verbose {
		ggtext.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	}

	mode, err := text.ParseWrapMode(*wrap)
	if err != nil {
		log.Fatal(err)
	}

	regular, err := text.NewSfntFace(goregular.TTF)
	if err != nil {
		log.Fatalf("Failed to load font: %v", err)
	}
	mono, err := text.NewSfntFace(gomono.TTF)
	if err != nil {
		log.Fatalf("Failed to load font: %v", err)
	}

	var opts []text.EngineOption
	if *shape {
		opts = append(opts, text.WithShaper(text.NewGoTextShaper()))
	}
	if *rules != "" {
		r, err := text.LoadWordBreakRulesFile(*rules)
		if err != nil {
			log.Fatal(err)
		}
		opts = append(opts, text.WithWordBreakRules(r))
	}

	engine, err := ggtext.NewEngine(opts...)
	if err != nil {
		log.Fatal(err)
	}

	dst := image.NewRGBA(image.Rect(0, 0, *width, *height))
	fill(dst, color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF})

	style := &text.Style{
		Faces: []text.Face{regular, mono},
		Size:  *size,
		Color: color.RGBA{R: 0x20, G: 0x20, B: 0x40, A: 0xFF},
	}
	box := text.Box{X: 10, Y: 10, Width: float64(*width - 20), Height: float64(*height - 20)}

	n, err := ggtext.NewRenderer(dst).DrawAll(engine.Layout([]text.Run{{Text: *input, Style: style}}, box, mode))
	if err != nil {
		log.Fatalf("Failed to render: %v", err)
	}

	if err := savePNG(*output, dst); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	stats := engine.Cache().Stats()
	log.Printf("Rendered %d glyphs to %s (%dx%d, %d rasterized)\n", n, *output, *width, *height, stats.Rasterizations)
}

func fill(dst *image.RGBA, c color.RGBA) {
	for i := 0; i < len(dst.Pix); i += 4 {
		dst.Pix[i], dst.Pix[i+1], dst.Pix[i+2], dst.Pix[i+3] = c.R, c.G, c.B, c.A
	}
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path) //nolint:gosec // output path is provided by the user
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
