// Package wgpu implements vram.Backend over the gogpu/wgpu pure Go
// WebGPU HAL.
//
// The backend can own its GPU bring-up (New followed by Init, which
// creates a HAL instance, picks an adapter and opens a device) or
// borrow an externally owned device, either directly through
// NewFromDevice or from a gpucontext.DeviceProvider that exposes its
// HAL types (NewFromProvider), the way windowed gogpu applications
// hand their device around.
//
// Bind and Unbind only record slot occupancy: the HAL binds textures
// through bind groups built at draw time, so the recorded handles are
// what a renderer reads back when it assembles its groups.
package wgpu
