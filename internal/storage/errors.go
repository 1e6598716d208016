// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a lookup matches no record.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateKey marks errors caused by a unique constraint violation.
	// Match with errors.Is.
	ErrDuplicateKey = errors.New("duplicate key")
)

type duplicateKeyError struct {
	msg string
	err error
}

func (e *duplicateKeyError) Error() string {
	return fmt.Sprintf("%s: %v", e.msg, e.err)
}

func (e *duplicateKeyError) Unwrap() error {
	return e.err
}

func (e *duplicateKeyError) Is(target error) bool {
	return target == ErrDuplicateKey
}

// WrapDuplicateKeyError wraps a unique violation so callers can match it with
// errors.Is(err, ErrDuplicateKey) while keeping the driver error available.
func WrapDuplicateKeyError(err error, msg string) error {
	return &duplicateKeyError{msg: msg, err: err}
}
