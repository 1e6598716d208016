// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package migrator

import (
	"fmt"
	"strings"
)

// Error codes for migration errors
const (
	ErrCodeConfigMissing    = "CONFIG_MISSING"
	ErrCodeConnectionFailed = "CONNECTION_FAILED"
	ErrCodeQueryFailed      = "QUERY_FAILED"
	ErrCodeValidationFailed = "VALIDATION_FAILED"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

// MigrationError represents a domain-specific error for migration operations
type MigrationError struct {
	Code       string            // Machine-readable error code
	Message    string            // Human-readable error message
	Op         string            // Operation that failed (e.g., "Run", "runMigrate")
	Metadata   map[string]string // Additional context about the error
	Underlying error             // The underlying error if any
}

// Error implements the error interface
func (e *MigrationError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return e.Message
}

// Is implements error matching for errors.Is, comparing codes
func (e *MigrationError) Is(target error) bool {
	t, ok := target.(*MigrationError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

func (e *MigrationError) Unwrap() error {
	return e.Underlying
}

// Constructor functions for common errors

func NewConfigMissingError(variable string, op string) *MigrationError {
	return &MigrationError{
		Code:    ErrCodeConfigMissing,
		Message: fmt.Sprintf("required configuration %s is not set", variable),
		Op:      op,
		Metadata: map[string]string{
			"variable": variable,
		},
	}
}

func NewConnectionError(store string, op string, err error) *MigrationError {
	return &MigrationError{
		Code:    ErrCodeConnectionFailed,
		Message: fmt.Sprintf("failed to connect to the %s database", store),
		Op:      op,
		Metadata: map[string]string{
			"store": store,
		},
		Underlying: err,
	}
}

func NewQueryError(store string, op string, err error) *MigrationError {
	return &MigrationError{
		Code:    ErrCodeQueryFailed,
		Message: fmt.Sprintf("failed to query the %s database", store),
		Op:      op,
		Metadata: map[string]string{
			"store": store,
		},
		Underlying: err,
	}
}

func NewValidationError(email string, fields []string, op string) *MigrationError {
	return &MigrationError{
		Code:    ErrCodeValidationFailed,
		Message: fmt.Sprintf("invalid fields: %s", strings.Join(fields, ", ")),
		Op:      op,
		Metadata: map[string]string{
			"email":  email,
			"fields": strings.Join(fields, ","),
		},
	}
}
