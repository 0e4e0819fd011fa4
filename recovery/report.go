package recovery

import (
	"errors"
	"fmt"

	"github.com/gogpu/tex2d/render"
)

// Failure is one entry that could not be uploaded during recovery.
type Failure struct {
	Handle render.Handle
	Err    error
}

// Error implements error.
func (f Failure) Error() string {
	return fmt.Sprintf("texture %d: %v", f.Handle, f.Err)
}

// Unwrap returns the upload error.
func (f Failure) Unwrap() error {
	return f.Err
}

// Report summarises a RecoverAll run.
type Report struct {
	// Attempted is the number of entries replayed.
	Attempted int

	// Recovered is the number of entries uploaded without error.
	Recovered int

	// Failures lists the entries whose upload failed, in replay order.
	Failures []Failure
}

// Err joins all failures into one error, or returns nil if every entry
// was recovered.
func (r Report) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	errs := make([]error, len(r.Failures))
	for i, f := range r.Failures {
		errs[i] = f
	}
	return errors.Join(errs...)
}
