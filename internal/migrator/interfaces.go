// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package migrator

import (
	"context"

	"github.com/canonical/employee-migrator/internal/types"
)

// SourceInterface defines the contract for legacy data sources that provide
// user records for migration into the target database.
type SourceInterface interface {
	FetchAllUsers(ctx context.Context) ([]types.LegacyUser, error)
}
