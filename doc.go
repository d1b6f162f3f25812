// Package glyphcache provides a glyph-atlas cache for GPU text rendering.
//
// # Overview
//
// glyphcache sits between font rasterization and text rendering. A string is
// turned into glyph ids by a [FontSource]; every glyph is looked up in a packed
// texture and, on a miss, rasterized, allocated, uploaded to a [TextureSink]
// and remembered for later lookups.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/glyphcache"
//	    "github.com/gogpu/glyphcache/source/ximage"
//	    "github.com/gogpu/glyphcache/texture"
//	)
//
//	src, err := ximage.New(ttfData)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	cache := glyphcache.New(src, texture.NewImage(512, 512), glyphcache.WithNFC())
//	glyphs := cache.RenderString("Hello, world!", 24)
//	for glyphs.Next() {
//	    rect, err := glyphs.Result()
//	    if err != nil {
//	        continue
//	    }
//	    _ = rect // sample the atlas at rect
//	}
//
//	_ = cache.Texture().SavePNG("atlas.png")
//
// # Packing
//
// Glyphs are placed with a shelf packer: left to right in rows, a new row
// starting below the tallest glyph of the current one. Placements live until
// [GlyphCache.Clear] which forgets them all and rewinds the cursor. There is no
// eviction. Clear does not wipe the texture, stale pixels stay visible until a
// later glyph overwrites them.
//
// # Backends
//
// Font sources:
//   - source/ximage: TTF/OTF via golang.org/x/image/font/sfnt
//   - source/gotext: TTF/OTF via github.com/go-text/typesetting
//   - source/bitmap: fixed-size bitmap faces (golang.org/x/image/font/basicfont)
//
// Texture sinks:
//   - texture: CPU buffers (RGBA image, alpha mask)
//   - gpu: gogpu/wgpu HAL texture
//   - ebitensink: Ebitengine image
//
// # Thread Safety
//
// [PackingCache] and [GlyphCache] are NOT safe for concurrent use. Wrap a
// cache with [NewLocked] to share it between goroutines.
package glyphcache
