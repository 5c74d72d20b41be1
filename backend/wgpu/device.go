package wgpu

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"

	"github.com/gogpu/vram"
)

// New returns an uninitialized backend. Call Init to create a
// standalone device before handing it to a vram.Store.
func New() *Backend {
	return &Backend{
		objects: make(map[vram.Handle]*object),
		bound:   make(map[vram.Slot]vram.Handle),
	}
}

// NewFromDevice returns a backend that uploads through an externally
// owned device and queue. Close leaves both alone.
func NewFromDevice(device hal.Device, queue hal.Queue) *Backend {
	b := New()
	b.device = device
	b.queue = queue
	b.externalDevice = true
	return b
}

// NewFromProvider returns a backend borrowing the device of a
// gpucontext.DeviceProvider. The provider must expose its HAL types
// through HalDevice() any and HalQueue() any, as gogpu applications do.
func NewFromProvider(provider gpucontext.DeviceProvider) (*Backend, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, fmt.Errorf("wgpu: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("wgpu: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("wgpu: provider HalQueue is not hal.Queue")
	}
	return NewFromDevice(device, queue), nil
}

// Init creates a standalone Vulkan device for a backend built with
// New. Backends built around an external device do not need it.
func (b *Backend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.device != nil {
		return nil
	}

	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return fmt.Errorf("wgpu: vulkan backend not available")
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return fmt.Errorf("wgpu: create instance: %w", err)
	}

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return fmt.Errorf("wgpu: no GPU adapters found")
	}
	selected := selectAdapter(adapters)

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return fmt.Errorf("wgpu: open device: %w", err)
	}

	b.instance = instance
	b.device = openDev.Device
	b.queue = openDev.Queue

	slogger().Info("wgpu: device initialized", "adapter", selected.Info.Name)
	return nil
}

// selectAdapter prefers a real GPU over software rasterizers.
func selectAdapter(adapters []hal.ExposedAdapter) *hal.ExposedAdapter {
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			return &adapters[i]
		}
	}
	return &adapters[0]
}

// Close destroys every remaining object and, for backends that own
// their device, the device and instance.
func (b *Backend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for h, o := range b.objects {
		b.destroyObject(o)
		delete(b.objects, h)
	}
	clear(b.bound)

	if !b.externalDevice {
		if b.device != nil {
			b.device.Destroy()
		}
		if b.instance != nil {
			b.instance.Destroy()
		}
	}
	b.device = nil
	b.instance = nil
	b.queue = nil
}
