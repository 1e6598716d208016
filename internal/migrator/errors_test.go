// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package migrator

import (
	"errors"
	"fmt"
	"testing"
)

func TestMigrationErrorIs(t *testing.T) {
	connErr := NewConnectionError("legacy", "runMigrate", errors.New("dial timeout"))

	if !errors.Is(connErr, &MigrationError{Code: ErrCodeConnectionFailed}) {
		t.Error("expected connection error to match its code")
	}
	if errors.Is(connErr, &MigrationError{Code: ErrCodeConfigMissing}) {
		t.Error("expected connection error not to match a different code")
	}

	wrapped := fmt.Errorf("starting up: %w", connErr)
	if !errors.Is(wrapped, &MigrationError{Code: ErrCodeConnectionFailed}) {
		t.Error("expected wrapped connection error to match its code")
	}
}

func TestMigrationErrorUnwrap(t *testing.T) {
	underlying := errors.New("dial timeout")
	connErr := NewConnectionError("legacy", "runMigrate", underlying)

	if !errors.Is(connErr, underlying) {
		t.Error("expected the underlying error to be reachable via errors.Is")
	}
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("a@example.com", []string{"Email (required)"}, "migrateOne")

	if !errors.Is(err, &MigrationError{Code: ErrCodeValidationFailed}) {
		t.Error("expected validation error to match its code")
	}
	if err.Message != "invalid fields: Email (required)" {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Metadata["email"] != "a@example.com" {
		t.Errorf("Metadata[email] = %q", err.Metadata["email"])
	}
	if err.Metadata["fields"] != "Email (required)" {
		t.Errorf("Metadata[fields] = %q", err.Metadata["fields"])
	}
}

func TestMigrationErrorMessage(t *testing.T) {
	err := NewConfigMissingError("LEGACY_DATABASE_URL", "runMigrate")

	want := "runMigrate: required configuration LEGACY_DATABASE_URL is not set"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if err.Metadata["variable"] != "LEGACY_DATABASE_URL" {
		t.Errorf("Metadata[variable] = %q", err.Metadata["variable"])
	}

	bare := &MigrationError{Code: ErrCodeInternalError, Message: "boom"}
	if bare.Error() != "boom" {
		t.Errorf("Error() without op = %q, want %q", bare.Error(), "boom")
	}
}
