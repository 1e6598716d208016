// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"

	"github.com/canonical/employee-migrator/internal/types"
)

type StorageInterface interface {
	GetEmployeeByEmail(ctx context.Context, email string) (*types.Employee, error)
	CreateEmployee(ctx context.Context, attrs *types.EmployeeAttributes) (*types.Employee, error)
	ListEmployees(ctx context.Context) ([]*types.Employee, error)
}
