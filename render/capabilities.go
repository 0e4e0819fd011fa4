// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/tex2d/pixel"
)

// StaticCapabilities is a fixed set of device capabilities.
type StaticCapabilities struct {
	// NonPowerOfTwo indicates textures may have any dimensions.
	NonPowerOfTwo bool

	// CompressedFormats indicates BC, ETC2 or ASTC textures can be sampled.
	CompressedFormats bool

	// MaxTextureSize is the maximum texture dimension supported.
	MaxTextureSize int
}

// SupportsNonPowerOfTwo implements pixel.Capabilities.
func (c StaticCapabilities) SupportsNonPowerOfTwo() bool { return c.NonPowerOfTwo }

// SupportsCompressedFormat implements pixel.Capabilities.
func (c StaticCapabilities) SupportsCompressedFormat() bool { return c.CompressedFormats }

// MaxTextureDimension implements pixel.Capabilities.
func (c StaticCapabilities) MaxTextureDimension() int { return c.MaxTextureSize }

// DefaultCapabilities returns conservative capabilities for an unknown
// device: power-of-two textures only, no compressed formats and the
// downlevel 2D texture limit.
func DefaultCapabilities() StaticCapabilities {
	return StaticCapabilities{
		MaxTextureSize: int(gputypes.DownlevelLimits().MaxTextureDimension2D),
	}
}

// CapabilitiesFromLimits derives capabilities from device limits and
// features. NPOT support is not part of the WebGPU limits, so the caller
// passes it in.
func CapabilitiesFromLimits(limits gputypes.Limits, features gputypes.Features, npot bool) StaticCapabilities {
	return StaticCapabilities{
		NonPowerOfTwo: npot,
		CompressedFormats: features.Contains(gputypes.FeatureTextureCompressionBC) ||
			features.Contains(gputypes.FeatureTextureCompressionETC2) ||
			features.Contains(gputypes.FeatureTextureCompressionASTC),
		MaxTextureSize: int(limits.MaxTextureDimension2D),
	}
}

// CapabilitiesFromAdapter derives capabilities from an enumerated HAL
// adapter. Every WebGPU adapter samples NPOT textures.
func CapabilitiesFromAdapter(a hal.ExposedAdapter) StaticCapabilities {
	caps := CapabilitiesFromLimits(a.Capabilities.Limits, a.Features, true)
	slogger().Debug("render: adapter capabilities",
		"adapter", a.Info.Name,
		"backend", a.Info.Backend,
		"maxTextureSize", caps.MaxTextureSize,
		"compressed", caps.CompressedFormats)
	return caps
}

var _ pixel.Capabilities = StaticCapabilities{}
