package compress

import (
	"fmt"

	"github.com/arloliu/planar/errs"
)

// corruptErr tags a backend decode failure as corrupt input.
func corruptErr(backend string, err error) error {
	return fmt.Errorf("%w: %s: %w", errs.ErrCorruptData, backend, err)
}

// backendErr tags any other backend failure.
func backendErr(backend string, err error) error {
	return fmt.Errorf("%w: %s: %w", errs.ErrBackend, backend, err)
}

func tooSmallErr(backend string, need, have int) error {
	return fmt.Errorf("%w: %s: need %d bytes, have %d", errs.ErrBufferTooSmall, backend, need, have)
}

func sizeMismatchErr(backend string, want, got int) error {
	return fmt.Errorf("%w: %s: expected %d bytes, got %d", errs.ErrSizeMismatch, backend, want, got)
}
