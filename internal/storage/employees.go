// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/canonical/employee-migrator/internal/db"
	"github.com/canonical/employee-migrator/internal/types"
)

// GetEmployeeByEmail retrieves a single employee by email. Returns
// ErrNotFound when no employee with that email exists.
func (s *Storage) GetEmployeeByEmail(ctx context.Context, email string) (*types.Employee, error) {
	ctx, span := s.tracer.Start(ctx, "storage.Storage.GetEmployeeByEmail")
	defer span.End()

	row := s.db.Statement(ctx).
		Select("id", "email", "given_name", "family_name", "created_at", "updated_at").
		From("employees").
		Where(sq.Eq{"email": email}).
		QueryRowContext(ctx)

	employee, err := scanEmployee(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query employee: %v", err)
	}

	return employee, nil
}

// CreateEmployee inserts a new employee into the target database. The id and
// timestamps are assigned by the database, never by the caller.
func (s *Storage) CreateEmployee(ctx context.Context, attrs *types.EmployeeAttributes) (*types.Employee, error) {
	ctx, span := s.tracer.Start(ctx, "storage.Storage.CreateEmployee")
	defer span.End()

	now := time.Now().UTC()
	var id int64
	var createdAt, updatedAt time.Time

	err := s.db.Statement(ctx).
		Insert("employees").
		Columns("email", "given_name", "family_name", "created_at", "updated_at").
		Values(attrs.Email, attrs.GivenName, attrs.FamilyName, now, now).
		Suffix("RETURNING id, created_at, updated_at").
		QueryRowContext(ctx).
		Scan(&id, &createdAt, &updatedAt)
	if err != nil {
		if db.IsDuplicateKeyError(err) {
			return nil, WrapDuplicateKeyError(err, "employee email already exists")
		}
		return nil, fmt.Errorf("failed to insert employee: %v", err)
	}

	return &types.Employee{
		ID:         fmt.Sprintf("%d", id),
		Email:      attrs.Email,
		GivenName:  attrs.GivenName,
		FamilyName: attrs.FamilyName,
		CreatedAt:  createdAt,
		UpdatedAt:  updatedAt,
	}, nil
}

// ListEmployees retrieves all employees from the target database.
func (s *Storage) ListEmployees(ctx context.Context) ([]*types.Employee, error) {
	ctx, span := s.tracer.Start(ctx, "storage.Storage.ListEmployees")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select("id", "email", "given_name", "family_name", "created_at", "updated_at").
		From("employees").
		OrderBy("email ASC").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %v", err)
	}
	defer rows.Close()

	employees := make([]*types.Employee, 0)
	for rows.Next() {
		employee, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %v", err)
		}
		employees = append(employees, employee)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating employees: %v", err)
	}

	return employees, nil
}

// scanEmployee scans a database row into an Employee struct.
func scanEmployee(row interface{ Scan(...interface{}) error }) (*types.Employee, error) {
	employee := &types.Employee{}
	var givenName, familyName sql.NullString
	err := row.Scan(
		&employee.ID,
		&employee.Email,
		&givenName,
		&familyName,
		&employee.CreatedAt,
		&employee.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	employee.GivenName = givenName.String
	employee.FamilyName = familyName.String

	return employee, nil
}
