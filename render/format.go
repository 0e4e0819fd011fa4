// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/tex2d/pixel"
)

// GPUFormat returns the WebGPU texture format that stores format without
// conversion. WebGPU has no 16-bit packed color formats and no 24-bit RGB,
// so for RGB888, RGBA4444, RGB5A1 and RGB565 it returns RGBA8Unorm and
// false: those buffers must be widened with pixel.Expand first.
func GPUFormat(format pixel.Format) (gputypes.TextureFormat, bool) {
	switch format {
	case pixel.RGBA8888:
		return gputypes.TextureFormatRGBA8Unorm, true
	case pixel.A8:
		return gputypes.TextureFormatR8Unorm, true
	case pixel.RGB888, pixel.RGBA4444, pixel.RGB5A1, pixel.RGB565:
		return gputypes.TextureFormatRGBA8Unorm, false
	default:
		return gputypes.TextureFormatUndefined, false
	}
}

// uploadPayload converts data to the layout of the GPU format chosen by
// GPUFormat. It returns the GPU format, the bytes per texel of that format
// and the buffer to upload.
func uploadPayload(format pixel.Format, width, height int, data []byte) (gputypes.TextureFormat, int, []byte, error) {
	if err := checkPayload(format, width, height, data); err != nil {
		return gputypes.TextureFormatUndefined, 0, nil, err
	}
	gpuFormat, native := GPUFormat(format)
	if native {
		return gpuFormat, format.BytesPerTexel(), data[:format.ImageBytes(width, height)], nil
	}
	wide, err := pixel.Expand(data, width, height, format)
	if err != nil {
		return gputypes.TextureFormatUndefined, 0, nil, err
	}
	return gpuFormat, pixel.RGBA8888.BytesPerTexel(), wide, nil
}
