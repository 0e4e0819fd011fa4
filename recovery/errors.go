package recovery

import "errors"

var (
	// ErrReloading is returned by RecoverAll while a recovery is running.
	ErrReloading = errors.New("recovery: already reloading")

	// ErrInvalidHandle is returned for a record without a texture handle.
	ErrInvalidHandle = errors.New("recovery: invalid texture handle")

	// ErrSizeMismatch is returned when a record's data length does not
	// match its format and dimensions.
	ErrSizeMismatch = errors.New("recovery: data size does not match format and dimensions")

	// ErrNilUpload is returned when RecoverAll is called without an upload function.
	ErrNilUpload = errors.New("recovery: upload function is nil")
)
