// Copyright 2025 Canonical Ltd
// SPDX-License-Identifier: AGPL-3.0

package types

import "time"

// LegacyUser is a row from the legacy users table. It is read-only: rows are
// fetched, mapped and discarded, never written back.
type LegacyUser struct {
	// ID is the legacy row identifier. It is never copied to the target
	// store, which assigns its own identifiers.
	ID         string `json:"id,omitempty"`
	Email      string `json:"email"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
}

// EmployeeAttributes is the set of fields this tool is allowed to populate on
// a new employee record.
type EmployeeAttributes struct {
	Email      string `json:"email" validate:"required"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
}

// Employee represents a row in the target employees table.
type Employee struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	GivenName  string    `json:"given_name"`
	FamilyName string    `json:"family_name"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
