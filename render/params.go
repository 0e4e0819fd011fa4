// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// TexParams holds the sampling parameters of a texture.
type TexParams struct {
	MinFilter gputypes.FilterMode
	MagFilter gputypes.FilterMode
	WrapS     gputypes.AddressMode
	WrapT     gputypes.AddressMode
}

// AliasTexParams returns nearest filtering with clamped edges.
func AliasTexParams() TexParams {
	return TexParams{
		MinFilter: gputypes.FilterModeNearest,
		MagFilter: gputypes.FilterModeNearest,
		WrapS:     gputypes.AddressModeClampToEdge,
		WrapT:     gputypes.AddressModeClampToEdge,
	}
}

// AntiAliasTexParams returns linear filtering with clamped edges.
func AntiAliasTexParams() TexParams {
	return TexParams{
		MinFilter: gputypes.FilterModeLinear,
		MagFilter: gputypes.FilterModeLinear,
		WrapS:     gputypes.AddressModeClampToEdge,
		WrapT:     gputypes.AddressModeClampToEdge,
	}
}

// RequiresPOT reports whether the wrap modes only work on power-of-two
// textures, that is any mode other than clamp-to-edge.
func (p TexParams) RequiresPOT() bool {
	return p.WrapS != gputypes.AddressModeClampToEdge || p.WrapT != gputypes.AddressModeClampToEdge
}

// SamplerDescriptor converts p into a sampler descriptor. When mipmapped
// is false the sampler is limited to the base level.
func (p TexParams) SamplerDescriptor(mipmapped bool) gputypes.SamplerDescriptor {
	desc := gputypes.DefaultSamplerDescriptor()
	desc.AddressModeU = p.WrapS
	desc.AddressModeV = p.WrapT
	desc.MinFilter = p.MinFilter
	desc.MagFilter = p.MagFilter
	if !mipmapped {
		desc.LodMaxClamp = 0
		return desc
	}
	if p.MinFilter == gputypes.FilterModeLinear {
		desc.MipmapFilter = gputypes.MipmapFilterModeLinear
	}
	return desc
}

// String returns a short description such as "Linear/Linear ClampToEdge/Repeat".
func (p TexParams) String() string {
	return fmt.Sprintf("%s/%s %s/%s", p.MinFilter, p.MagFilter, p.WrapS, p.WrapT)
}
