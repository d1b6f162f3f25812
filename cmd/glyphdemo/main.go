// Command glyphdemo packs a few strings into a glyph atlas and saves it as PNG.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/glyphcache"
	"github.com/gogpu/glyphcache/source/bitmap"
	"github.com/gogpu/glyphcache/source/gotext"
	"github.com/gogpu/glyphcache/source/ximage"
	"github.com/gogpu/glyphcache/texture"
)

var lines = []struct {
	text string
	size float32
}{
	{"Hello, world!", 24},
	{"こんにちは世界！", 16},
	{"Привет, мир!", 16},
}

func main() {
	var (
		width    = flag.Int("width", 200, "atlas width")
		height   = flag.Int("height", 200, "atlas height")
		output   = flag.String("output", "result.png", "output file")
		backend  = flag.String("backend", "ximage", "font backend: ximage, gotext or bitmap")
		fontFile = flag.String("font", "", "TTF/OTF file (default: Go Regular)")
		verbose  = flag.Bool("v", false, "log cache activity")
	)
	flag.Parse()

	if *verbose {
		glyphcache.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	src, err := loadSource(*backend, *fontFile)
	if err != nil {
		log.Fatalf("Failed to load font: %v", err)
	}

	atlas := texture.NewImage(*width, *height)
	cache := glyphcache.New(src, atlas, glyphcache.WithNFC())

	for _, line := range lines {
		for _, err := range cache.RenderString(line.text, line.size).All() {
			if err != nil {
				log.Printf("%q @ %g: %v", line.text, line.size, err)
			}
		}
	}

	if err := atlas.SavePNG(*output); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	stats := cache.Cache().Stats()
	log.Printf("Atlas saved to %s (%dx%d): %d glyphs, %.0f%% used\n",
		*output, *width, *height, stats.Placed, cache.Cache().Utilization()*100)
}

func loadSource(backend, path string) (glyphcache.FontSource, error) {
	data := goregular.TTF
	if path != "" {
		var err error
		data, err = os.ReadFile(path) //nolint:gosec // path is user-provided intentionally
		if err != nil {
			return nil, err
		}
	}

	switch backend {
	case "ximage":
		return ximage.New(data)
	case "gotext":
		return gotext.New(data)
	case "bitmap":
		return bitmap.New(nil), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", backend)
	}
}
