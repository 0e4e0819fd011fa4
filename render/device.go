// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/gogpu/tex2d/pixel"
)

// Handle identifies a texture on a Device. The zero Handle is invalid.
type Handle uint64

// InvalidHandle is the zero Handle.
const InvalidHandle Handle = 0

// IsValid reports whether h is not InvalidHandle.
func (h Handle) IsValid() bool {
	return h != InvalidHandle
}

// Device is the graphics device a texture is uploaded to.
//
// Implementations must keep a handle valid across repeated uploads so a
// texture can be filled again after the graphics context was lost.
type Device interface {
	// GenerateHandle allocates a new texture handle.
	GenerateHandle() Handle

	// UploadTexture replaces the contents of the texture h with data.
	// Data is in the final layout of format (see pixel.Repack).
	UploadTexture(h Handle, format pixel.Format, width, height int, data []byte) error

	// DestroyHandle releases the texture h. Unknown handles are ignored.
	DestroyHandle(h Handle)
}

// MipmapGenerator is implemented by devices that can build the mip chain
// of an uploaded texture. A later upload to the handle drops the chain.
type MipmapGenerator interface {
	GenerateMipmaps(h Handle) error
}

// Errors reported by devices.
var (
	// ErrUploadFailed matches every *UploadError with errors.Is.
	ErrUploadFailed = errors.New("render: texture upload failed")

	// ErrInvalidHandle is returned for uploads to InvalidHandle.
	ErrInvalidHandle = errors.New("render: invalid texture handle")

	// ErrDeviceClosed is returned for uploads after Close.
	ErrDeviceClosed = errors.New("render: device closed")
)

// UploadError describes a failed texture upload.
type UploadError struct {
	Handle Handle
	Format pixel.Format
	Err    error
}

// Error implements error.
func (e *UploadError) Error() string {
	return fmt.Sprintf("render: upload texture %d (%s): %v", e.Handle, e.Format, e.Err)
}

// Unwrap returns the underlying device error.
func (e *UploadError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrUploadFailed.
func (e *UploadError) Is(target error) bool {
	return target == ErrUploadFailed
}

func uploadError(h Handle, format pixel.Format, err error) error {
	return &UploadError{Handle: h, Format: format, Err: err}
}

// handleSource hands out increasing non-zero handles.
type handleSource struct {
	last atomic.Uint64
}

func (s *handleSource) next() Handle {
	return Handle(s.last.Add(1))
}

// NullDevice accepts every upload and stores nothing.
// Used for CPU-only and headless use where no GPU is available.
type NullDevice struct {
	handles handleSource
}

// NewNullDevice creates a NullDevice.
func NewNullDevice() *NullDevice {
	return &NullDevice{}
}

// GenerateHandle returns a new handle.
func (d *NullDevice) GenerateHandle() Handle {
	return d.handles.next()
}

// UploadTexture validates the arguments and discards the data.
func (d *NullDevice) UploadTexture(h Handle, format pixel.Format, width, height int, data []byte) error {
	if !h.IsValid() {
		return uploadError(h, format, ErrInvalidHandle)
	}
	if err := checkPayload(format, width, height, data); err != nil {
		return uploadError(h, format, err)
	}
	return nil
}

// DestroyHandle does nothing.
func (d *NullDevice) DestroyHandle(Handle) {}

// checkPayload verifies that data holds a width x height buffer of format.
func checkPayload(format pixel.Format, width, height int, data []byte) error {
	if !format.IsValid() {
		return fmt.Errorf("%w: %s", pixel.ErrUnsupportedPixelFormat, format)
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: width=%d, height=%d", pixel.ErrInvalidDimensions, width, height)
	}
	if need := format.ImageBytes(width, height); len(data) < need {
		return fmt.Errorf("%w: have %d bytes, need %d", pixel.ErrDataTooSmall, len(data), need)
	}
	return nil
}

// Ensure the devices implement Device.
var (
	_ Device = (*NullDevice)(nil)
	_ Device = (*HALDevice)(nil)
	_ Device = (*ProviderDevice)(nil)
)
