// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vertex

import (
	"errors"
	"fmt"
)

// ErrTexGenCount is returned for a texgen count outside 0..8.
var ErrTexGenCount = errors.New("vertex: texgen count out of range")

// ErrorKind categorizes generation errors.
type ErrorKind uint8

const (
	// ErrInvalidUid indicates a uid that violates its field ranges.
	ErrInvalidUid ErrorKind = iota

	// ErrInvalidHost indicates a host configuration that cannot be emitted for.
	ErrInvalidHost
)

// String returns a human-readable error kind name.
func (k ErrorKind) String() string {
	switch k {
	case ErrInvalidUid:
		return "InvalidUid"
	case ErrInvalidHost:
		return "InvalidHost"
	default:
		return "Unknown"
	}
}

// Error is returned by Generate when its inputs break the generation contract.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("vertex %s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}
