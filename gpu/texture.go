//go:build !nogpu

// Package gpu provides a glyphcache.TextureSink that uploads glyphs straight
// into a wgpu texture.
//
// The texture is RGBA8Unorm with TextureBinding and CopyDst usage, ready to be
// bound by a text pipeline. Every placed glyph becomes one Queue.WriteTexture
// call covering exactly its rectangle; alpha and RGB glyphs are expanded to
// RGBA first.
//
// Build with -tags nogpu to exclude this package.
package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/glyphcache"
)

var (
	// ErrDestroyed is returned by WriteRect after Destroy.
	ErrDestroyed = errors.New("gpu: texture destroyed")

	// ErrNilProvider is returned by NewFromProvider for a nil provider.
	ErrNilProvider = errors.New("gpu: nil device provider")
)

// Texture is a GPU glyph atlas. It does not own the device or queue.
type Texture struct {
	device hal.Device
	queue  hal.Queue

	texture hal.Texture
	view    hal.TextureView

	width, height uint32
	uploads       uint64
}

var _ glyphcache.TextureSink = (*Texture)(nil)

// New creates a width×height atlas texture on device. Uploads go through queue.
func New(device hal.Device, queue hal.Queue, width, height uint32) (*Texture, error) {
	if device == nil || queue == nil {
		return nil, fmt.Errorf("gpu: device and queue are required")
	}
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("gpu: invalid atlas size %dx%d", width, height)
	}

	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "glyph_atlas",
		Size:          hal.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: failed to create atlas texture: %w", err)
	}

	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         "glyph_atlas_view",
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		device.DestroyTexture(tex)
		return nil, fmt.Errorf("gpu: failed to create atlas texture view: %w", err)
	}

	glyphcache.Logger().Debug("gpu: atlas created", "width", width, "height", height)

	return &Texture{
		device:  device,
		queue:   queue,
		texture: tex,
		view:    view,
		width:   width,
		height:  height,
	}, nil
}

// NewFromProvider creates the atlas on a device shared with a host
// application (e.g., gogpu). The provider must implement HalDevice() any and
// HalQueue() any returning hal.Device and hal.Queue.
func NewFromProvider(provider gpucontext.DeviceProvider, width, height uint32) (*Texture, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, fmt.Errorf("gpu: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("gpu: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("gpu: provider HalQueue is not hal.Queue")
	}
	return New(device, queue, width, height)
}

// Width implements glyphcache.TextureSink.
func (t *Texture) Width() uint32 { return t.width }

// Height implements glyphcache.TextureSink.
func (t *Texture) Height() uint32 { return t.height }

// WriteRect implements glyphcache.TextureSink.
func (t *Texture) WriteRect(format glyphcache.PixelFormat, data []byte, rect glyphcache.PlacedRect) error {
	if t.texture == nil {
		return ErrDestroyed
	}

	rgba := data
	if format != glyphcache.PixelFormatRGBA {
		rgba = glyphcache.ExpandRGBA(format, data, int(rect.Width), int(rect.Height))
	}

	err := t.queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  t.texture,
			MipLevel: 0,
			Origin:   hal.Origin3D{X: rect.X, Y: rect.Y, Z: 0},
			Aspect:   gputypes.TextureAspectAll,
		},
		rgba,
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  rect.Width * 4,
			RowsPerImage: rect.Height,
		},
		&hal.Extent3D{Width: rect.Width, Height: rect.Height, DepthOrArrayLayers: 1},
	)
	if err != nil {
		return fmt.Errorf("gpu: failed to upload glyph at (%d,%d): %w", rect.X, rect.Y, err)
	}
	t.uploads++
	return nil
}

// Texture returns the HAL texture, or nil after Destroy.
func (t *Texture) Texture() hal.Texture { return t.texture }

// View returns the texture view for binding, or nil after Destroy.
func (t *Texture) View() hal.TextureView { return t.view }

// Uploads returns the number of successful WriteTexture calls.
func (t *Texture) Uploads() uint64 { return t.uploads }

// Destroy releases the texture and its view. It is safe to call more than once.
func (t *Texture) Destroy() {
	if t.view != nil {
		t.device.DestroyTextureView(t.view)
		t.view = nil
	}
	if t.texture != nil {
		t.device.DestroyTexture(t.texture)
		t.texture = nil
	}
}
