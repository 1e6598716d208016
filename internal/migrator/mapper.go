// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package migrator

import "github.com/canonical/employee-migrator/internal/types"

// MapLegacyUser translates a legacy user row into the attribute set allowed
// on a new employee. Legacy-only fields, the row identifier in particular,
// are dropped: the target store owns its own identifiers.
func MapLegacyUser(user types.LegacyUser) types.EmployeeAttributes {
	return types.EmployeeAttributes{
		Email:      user.Email,
		GivenName:  user.GivenName,
		FamilyName: user.FamilyName,
	}
}
