package compiler

import (
	"github.com/wippyai/nvvm/bindings"
	"github.com/wippyai/nvvm/errors"
)

// retrieve drives the native two-call size-then-fill buffer protocol.
// sizeFn reports the required byte count including a trailing NUL
// sentinel; fillFn populates a buffer of exactly that size. A reported
// size of at most one byte means there is nothing to report: an empty
// buffer is returned without calling fillFn. Otherwise the returned
// buffer is exactly size bytes, sentinel included, and is owned by the
// caller.
func retrieve(phase errors.Phase, sizeFn func(*uintptr) bindings.Status, fillFn func(*byte) bindings.Status) ([]byte, error) {
	var size uintptr
	if err := errors.FromStatus(phase, sizeFn(&size)); err != nil {
		return nil, err
	}
	if size <= 1 {
		return nil, nil
	}
	buf := make([]byte, size)
	if err := errors.FromStatus(phase, fillFn(&buf[0])); err != nil {
		return nil, err
	}
	return buf, nil
}
