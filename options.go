package glyphcache

import "golang.org/x/text/unicode/norm"

// Normalizer rewrites text before it is turned into glyphs.
// norm.Form values from golang.org/x/text/unicode/norm satisfy it.
type Normalizer interface {
	String(s string) string
}

// Option configures a GlyphCache during creation.
//
// Example:
//
//	// No normalization
//	cache := glyphcache.New(src, tex)
//
//	// Canonical composition before glyph lookup
//	cache := glyphcache.New(src, tex, glyphcache.WithNFC())
type Option func(*options)

// options holds optional configuration for GlyphCache creation.
type options struct {
	normalizer Normalizer
}

// defaultOptions returns the default cache options.
func defaultOptions() options {
	return options{
		normalizer: nil, // text is used as given
	}
}

// WithNormalizer runs every string through n before glyph expansion.
// A nil n disables normalization.
func WithNormalizer(n Normalizer) Option {
	return func(o *options) {
		o.normalizer = n
	}
}

// WithNFC normalizes text to Unicode canonical composition (NFC) so that
// "e" followed by a combining acute accent maps to the single glyph for "é".
func WithNFC() Option {
	return WithNormalizer(norm.NFC)
}
