package wgpu

import (
	"fmt"
	"sync"

	"github.com/gogpu/wgpu/hal"
	types "github.com/gogpu/gputypes"

	"github.com/gogpu/vram"
)

// object tracks one live texture with the metadata uploads need.
type object struct {
	texture hal.Texture
	sampler hal.Sampler
	layout  vram.Layout
	format  vram.Format
	label   string
}

// Backend implements vram.Backend on top of gogpu/wgpu/hal.
//
// Thread safety: Backend is safe for concurrent use. Stores serialize
// their own calls, but several stores may share one backend, so all
// resource operations are protected by a mutex.
type Backend struct {
	mu sync.Mutex

	instance       hal.Instance
	device         hal.Device
	queue          hal.Queue
	externalDevice bool

	nextHandle uint64
	objects    map[vram.Handle]*object
	bound      map[vram.Slot]vram.Handle
}

var _ vram.Backend = (*Backend)(nil)
var _ vram.ParameterApplier = (*Backend)(nil)

// CreateObject allocates a texture covering every mip level of the
// layout.
func (b *Backend) CreateObject(layout vram.Layout, format vram.Format) (vram.Handle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.device == nil {
		return vram.NilHandle, fmt.Errorf("wgpu: backend not initialized")
	}
	wf, err := textureFormat(format)
	if err != nil {
		return vram.NilHandle, fmt.Errorf("%w: %v", err, format)
	}

	b.nextHandle++
	h := vram.Handle(b.nextHandle)
	label := fmt.Sprintf("vram_%d", h)

	tex, err := b.device.CreateTexture(textureDescriptor(label, layout, wf))
	if err != nil {
		return vram.NilHandle, fmt.Errorf("wgpu: create texture: %w", err)
	}

	b.objects[h] = &object{
		texture: tex,
		layout:  layout,
		format:  format,
		label:   label,
	}
	return h, nil
}

// DeleteObject destroys the texture and sampler behind a handle.
// Unknown handles are ignored.
func (b *Backend) DeleteObject(h vram.Handle) {
	b.mu.Lock()
	defer b.mu.Unlock()

	o, ok := b.objects[h]
	if !ok {
		return
	}
	for slot, bh := range b.bound {
		if bh == h {
			delete(b.bound, slot)
		}
	}
	b.destroyObject(o)
	delete(b.objects, h)
}

func (b *Backend) destroyObject(o *object) {
	if b.device == nil {
		return
	}
	if o.sampler != nil {
		b.device.DestroySampler(o.sampler)
		o.sampler = nil
	}
	if o.texture != nil {
		b.device.DestroyTexture(o.texture)
		o.texture = nil
	}
}

// Upload writes one region of one mip level through the queue. The
// store has already validated the write against the object's layout.
func (b *Backend) Upload(h vram.Handle, w vram.Write) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	o, ok := b.objects[h]
	if !ok {
		return fmt.Errorf("wgpu: upload to unknown handle %d", h)
	}

	reg := w.Region
	if reg.Depth == 0 {
		reg.Depth = 1
	}

	dst := &hal.ImageCopyTexture{
		Texture:  o.texture,
		MipLevel: uint32(w.Level),
		Origin:   hal.Origin3D{X: uint32(reg.X), Y: uint32(reg.Y), Z: uint32(reg.Z)},
		Aspect:   types.TextureAspectAll,
	}
	size := &hal.Extent3D{
		Width:              uint32(reg.Width),
		Height:             uint32(reg.Height),
		DepthOrArrayLayers: uint32(reg.Depth),
	}
	b.queue.WriteTexture(dst, w.Data, dataLayout(o.format, reg), size)

	if w.GenerateMips {
		// TODO: mip regeneration needs a blit pass; the HAL has no
		// helper for it yet.
		slogger().Debug("wgpu: mip generation requested but not available", "object", o.label)
	}
	return nil
}

// Bind records a handle as occupying a slot. The HAL reads textures
// through bind groups, so this is bookkeeping for BoundHandle.
func (b *Backend) Bind(h vram.Handle, slot vram.Slot) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.bound[slot] = h
}

// Unbind clears a slot.
func (b *Backend) Unbind(slot vram.Slot) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.bound, slot)
}

// BoundHandle returns the handle a slot currently holds.
func (b *Backend) BoundHandle(slot vram.Slot) (vram.Handle, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	h, ok := b.bound[slot]
	return h, ok
}

// ApplyParameters rebuilds the object's sampler from its parameters.
func (b *Backend) ApplyParameters(h vram.Handle, params []vram.Parameter) {
	b.mu.Lock()
	defer b.mu.Unlock()

	o, ok := b.objects[h]
	if !ok || b.device == nil {
		return
	}
	if o.sampler != nil {
		b.device.DestroySampler(o.sampler)
		o.sampler = nil
	}
	sampler, err := b.device.CreateSampler(samplerDescriptor(o.label+"_sampler", params))
	if err != nil {
		slogger().Warn("wgpu: create sampler failed", "object", o.label, "error", err)
		return
	}
	o.sampler = sampler
}

// Texture returns the HAL texture behind a handle, for renderers that
// assemble bind groups around store-managed resources.
func (b *Backend) Texture(h vram.Handle) (hal.Texture, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	o, ok := b.objects[h]
	if !ok {
		return nil, false
	}
	return o.texture, true
}

// Sampler returns the HAL sampler behind a handle, if parameters have
// been applied.
func (b *Backend) Sampler(h vram.Handle) (hal.Sampler, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	o, ok := b.objects[h]
	if !ok || o.sampler == nil {
		return nil, false
	}
	return o.sampler, true
}
