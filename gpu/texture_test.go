//go:build !nogpu

package gpu

import (
	"bytes"
	"errors"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/glyphcache"
)

// openNoopDevice opens a device on the noop backend.
func openNoopDevice(t *testing.T) hal.OpenDevice {
	t.Helper()

	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		t.Fatal("no noop adapters")
	}
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() {
		openDev.Device.Destroy()
		instance.Destroy()
	})
	return openDev
}

// textureWrite is one recorded WriteTexture call.
type textureWrite struct {
	dst    hal.ImageCopyTexture
	data   []byte
	layout hal.ImageDataLayout
	size   hal.Extent3D
}

// recordingQueue records WriteTexture calls and forwards everything else.
type recordingQueue struct {
	hal.Queue
	writes []textureWrite
	err    error
}

func (q *recordingQueue) WriteTexture(dst *hal.ImageCopyTexture, data []byte, layout *hal.ImageDataLayout, size *hal.Extent3D) error {
	if q.err != nil {
		return q.err
	}
	q.writes = append(q.writes, textureWrite{
		dst:    *dst,
		data:   bytes.Clone(data),
		layout: *layout,
		size:   *size,
	})
	return q.Queue.WriteTexture(dst, data, layout, size)
}

// failingDevice fails texture creation.
type failingDevice struct {
	hal.Device
}

var errNoMemory = errors.New("out of device memory")

func (failingDevice) CreateTexture(*hal.TextureDescriptor) (hal.Texture, error) {
	return nil, errNoMemory
}

// mockDevice implements gpucontext.Device.
type mockDevice struct{}

func (mockDevice) Poll(bool) {}
func (mockDevice) Destroy()  {}

// mockQueue implements gpucontext.Queue.
type mockQueue struct{}

// mockAdapter implements gpucontext.Adapter.
type mockAdapter struct{}

// mockProvider implements gpucontext.DeviceProvider without HAL access.
type mockProvider struct{}

func (mockProvider) Device() gpucontext.Device             { return mockDevice{} }
func (mockProvider) Queue() gpucontext.Queue               { return mockQueue{} }
func (mockProvider) Adapter() gpucontext.Adapter           { return mockAdapter{} }
func (mockProvider) SurfaceFormat() gputypes.TextureFormat { return gputypes.TextureFormatBGRA8Unorm }

// halMockProvider also exposes HAL types, like a gogpu app does.
type halMockProvider struct {
	mockProvider
	device any
	queue  any
}

func (p halMockProvider) HalDevice() any { return p.device }
func (p halMockProvider) HalQueue() any  { return p.queue }

func TestNew(t *testing.T) {
	dev := openNoopDevice(t)

	tex, err := New(dev.Device, dev.Queue, 256, 128)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer tex.Destroy()

	if tex.Width() != 256 || tex.Height() != 128 {
		t.Errorf("size = %dx%d, want 256x128", tex.Width(), tex.Height())
	}
	if tex.Texture() == nil || tex.View() == nil {
		t.Error("Texture() or View() is nil")
	}
}

func TestNewErrors(t *testing.T) {
	dev := openNoopDevice(t)

	tests := []struct {
		name   string
		device hal.Device
		queue  hal.Queue
		w, h   uint32
	}{
		{"nil device", nil, dev.Queue, 8, 8},
		{"nil queue", dev.Device, nil, 8, 8},
		{"zero width", dev.Device, dev.Queue, 0, 8},
		{"zero height", dev.Device, dev.Queue, 8, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.device, tt.queue, tt.w, tt.h); err == nil {
				t.Error("New() succeeded, want error")
			}
		})
	}

	_, err := New(failingDevice{dev.Device}, dev.Queue, 8, 8)
	if !errors.Is(err, errNoMemory) {
		t.Errorf("New() with failing device error = %v, want %v", err, errNoMemory)
	}
}

func TestNewFromProvider(t *testing.T) {
	dev := openNoopDevice(t)
	queue := &recordingQueue{Queue: dev.Queue}

	tex, err := NewFromProvider(halMockProvider{device: dev.Device, queue: queue}, 32, 16)
	if err != nil {
		t.Fatalf("NewFromProvider() error = %v", err)
	}
	defer tex.Destroy()

	if tex.Width() != 32 || tex.Height() != 16 {
		t.Errorf("size = %dx%d, want 32x16", tex.Width(), tex.Height())
	}
	if err := tex.WriteRect(glyphcache.PixelFormatAlpha, []byte{1}, glyphcache.PlacedRect{Width: 1, Height: 1}); err != nil {
		t.Fatalf("WriteRect() error = %v", err)
	}
	if len(queue.writes) != 1 {
		t.Errorf("WriteTexture calls on shared queue = %d, want 1", len(queue.writes))
	}
}

func TestNewFromProviderErrors(t *testing.T) {
	dev := openNoopDevice(t)

	if _, err := NewFromProvider(nil, 8, 8); !errors.Is(err, ErrNilProvider) {
		t.Errorf("NewFromProvider(nil) error = %v, want ErrNilProvider", err)
	}

	tests := []struct {
		name     string
		provider gpucontext.DeviceProvider
	}{
		{"no HAL access", mockProvider{}},
		{"wrong device type", halMockProvider{device: "device", queue: dev.Queue}},
		{"nil device", halMockProvider{queue: dev.Queue}},
		{"wrong queue type", halMockProvider{device: dev.Device, queue: 42}},
		{"nil queue", halMockProvider{device: dev.Device}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewFromProvider(tt.provider, 8, 8); err == nil {
				t.Error("NewFromProvider() succeeded, want error")
			}
		})
	}
}

func TestWriteRectUploadsRegion(t *testing.T) {
	dev := openNoopDevice(t)
	queue := &recordingQueue{Queue: dev.Queue}

	tex, err := New(dev.Device, queue, 64, 64)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer tex.Destroy()

	rect := glyphcache.PlacedRect{X: 5, Y: 7, Width: 2, Height: 1}
	if err := tex.WriteRect(glyphcache.PixelFormatAlpha, []byte{10, 20}, rect); err != nil {
		t.Fatalf("WriteRect() error = %v", err)
	}

	if len(queue.writes) != 1 {
		t.Fatalf("WriteTexture calls = %d, want 1", len(queue.writes))
	}
	w := queue.writes[0]
	if w.dst.Texture != tex.Texture() {
		t.Error("WriteTexture targeted another texture")
	}
	if w.dst.Origin != (hal.Origin3D{X: 5, Y: 7}) {
		t.Errorf("Origin = %+v, want {5 7 0}", w.dst.Origin)
	}
	if w.layout.BytesPerRow != 8 || w.layout.RowsPerImage != 1 {
		t.Errorf("layout = %+v, want BytesPerRow 8, RowsPerImage 1", w.layout)
	}
	if w.size != (hal.Extent3D{Width: 2, Height: 1, DepthOrArrayLayers: 1}) {
		t.Errorf("size = %+v, want 2x1x1", w.size)
	}
	if want := []byte{255, 255, 255, 10, 255, 255, 255, 20}; !bytes.Equal(w.data, want) {
		t.Errorf("data = %v, want %v", w.data, want)
	}
	if tex.Uploads() != 1 {
		t.Errorf("Uploads() = %d, want 1", tex.Uploads())
	}
}

func TestWriteRectRGBAPassesThrough(t *testing.T) {
	dev := openNoopDevice(t)
	queue := &recordingQueue{Queue: dev.Queue}

	tex, err := New(dev.Device, queue, 8, 8)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer tex.Destroy()

	data := []byte{1, 2, 3, 4}
	if err := tex.WriteRect(glyphcache.PixelFormatRGBA, data, glyphcache.PlacedRect{Width: 1, Height: 1}); err != nil {
		t.Fatalf("WriteRect() error = %v", err)
	}
	if !bytes.Equal(queue.writes[0].data, data) {
		t.Errorf("data = %v, want %v", queue.writes[0].data, data)
	}
}

func TestWriteRectError(t *testing.T) {
	dev := openNoopDevice(t)
	queue := &recordingQueue{Queue: dev.Queue, err: errNoMemory}

	tex, err := New(dev.Device, queue, 32, 32)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer tex.Destroy()

	c := glyphcache.NewPackingCache(solidFont{}, tex)
	_, err = c.Resolve(glyphcache.NewGlyphKey(1, 12))
	if !errors.Is(err, errNoMemory) {
		t.Fatalf("Resolve() error = %v, want %v", err, errNoMemory)
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}

	queue.err = nil
	rect, err := c.Resolve(glyphcache.NewGlyphKey(1, 12))
	if err != nil {
		t.Fatalf("Resolve() retry error = %v", err)
	}
	if rect.X != 0 || rect.Y != 0 {
		t.Errorf("retry placed at (%d,%d), want (0,0)", rect.X, rect.Y)
	}
}

func TestDestroy(t *testing.T) {
	dev := openNoopDevice(t)

	tex, err := New(dev.Device, dev.Queue, 8, 8)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	tex.Destroy()
	tex.Destroy()

	if tex.Texture() != nil || tex.View() != nil {
		t.Error("Destroy() left resources")
	}
	err = tex.WriteRect(glyphcache.PixelFormatAlpha, []byte{1}, glyphcache.PlacedRect{Width: 1, Height: 1})
	if !errors.Is(err, ErrDestroyed) {
		t.Errorf("WriteRect() after Destroy error = %v, want ErrDestroyed", err)
	}
}

// solidFont emits opaque 4x4 glyphs.
type solidFont struct{}

func (solidFont) SupportsVertical() bool              { return false }
func (solidFont) PixelFormat() glyphcache.PixelFormat { return glyphcache.PixelFormatAlpha }
func (solidFont) LineWidth(float32) float32           { return 0 }
func (solidFont) LineHeight(size float32) float32     { return size }

func (solidFont) AppendGlyphs(dst []glyphcache.Glyph, text string) []glyphcache.Glyph {
	for _, r := range text {
		dst = append(dst, glyphcache.Glyph(r))
	}
	return dst
}

func (solidFont) Metrics(glyphcache.GlyphKey) glyphcache.Metrics {
	return glyphcache.Metrics{Width: 4, Height: 4}
}

func (solidFont) Rasterize(glyphcache.GlyphKey) []byte {
	return bytes.Repeat([]byte{0xff}, 16)
}
