// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render connects texture objects to a GPU.
//
// The package defines the graphics device seen by tex2d and provides
// implementations for the common hosts.
//
// # Key Principle
//
// tex2d RECEIVES a GPU device from the host application, it does NOT create
// its own. A Device only allocates handles, uploads texel buffers and frees
// them again.
//
// # Device Implementations
//
//   - HALDevice: a wgpu hal.Device and hal.Queue, one hal.Texture per handle
//   - ProviderDevice: a gpucontext.TextureCreator, for hosts such as gogpu
//   - NullDevice: accepts every upload, for headless and CPU-only use
//
// Devices that accept fewer formats than pixel.Format describes widen the
// buffer with pixel.Expand before uploading.
//
// # Capabilities
//
// StaticCapabilities implements pixel.Capabilities. It can be filled from
// gputypes limits and features or straight from a hal.ExposedAdapter:
//
//	adapters := instance.EnumerateAdapters(nil)
//	caps := render.CapabilitiesFromAdapter(adapters[0])
//
// # Sampling
//
// TexParams describes the filter and wrap modes of a texture and converts
// to a gputypes.SamplerDescriptor.
package render
