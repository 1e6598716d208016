// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package legacy

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/canonical/employee-migrator/internal/db"
	"github.com/canonical/employee-migrator/internal/logging"
	"github.com/canonical/employee-migrator/internal/migrator"
	"github.com/canonical/employee-migrator/internal/monitoring"
	"github.com/canonical/employee-migrator/internal/tracing"
	"github.com/canonical/employee-migrator/internal/types"
)

const fetchPageSize int64 = 500

var _ migrator.SourceInterface = (*Store)(nil)

// Store reads user records from the legacy database. The DB client it wraps
// must be opened with db.Config.ReadOnly so the legacy store cannot be
// written to, not even by mistake.
type Store struct {
	db db.DBClientInterface

	logger  logging.LoggerInterface
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
}

func NewStore(c db.DBClientInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Store {
	s := new(Store)

	s.db = c

	s.logger = logger
	s.tracer = tracer
	s.monitor = monitor

	return s
}

// FetchAllUsers retrieves every row from the legacy users table, paging
// through the table to keep individual result sets bounded.
func (s *Store) FetchAllUsers(ctx context.Context) ([]types.LegacyUser, error) {
	ctx, span := s.tracer.Start(ctx, "legacy.Store.FetchAllUsers")
	defer span.End()

	size := db.PageSize(fetchPageSize)

	users := make([]types.LegacyUser, 0)
	for page := int64(1); ; page++ {
		batch, err := s.fetchPage(ctx, db.Offset(page, size), size)
		if err != nil {
			return nil, err
		}
		users = append(users, batch...)
		if uint64(len(batch)) < size {
			break
		}
	}

	return users, nil
}

func (s *Store) fetchPage(ctx context.Context, offset, limit uint64) ([]types.LegacyUser, error) {
	rows, err := s.db.Statement(ctx).
		Select("id", "email", "given_name", "family_name").
		From("users").
		OrderBy("id ASC").
		Offset(offset).
		Limit(limit).
		QueryContext(ctx)
	if err != nil {
		if db.IsUndefinedColumnError(err) || db.IsUndefinedTableError(err) {
			return nil, migrator.NewQueryError("legacy", "fetchPage",
				fmt.Errorf("users table does not match the expected schema: %v", err))
		}
		return nil, migrator.NewQueryError("legacy", "fetchPage", err)
	}
	defer rows.Close()

	users := make([]types.LegacyUser, 0, limit)
	for rows.Next() {
		user, err := scanLegacyUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan legacy user: %v", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating legacy users: %v", err)
	}

	return users, nil
}

// scanLegacyUser scans a legacy row, tolerating NULLs in every column but id.
func scanLegacyUser(row interface{ Scan(...interface{}) error }) (types.LegacyUser, error) {
	var user types.LegacyUser
	var email, givenName, familyName sql.NullString

	if err := row.Scan(&user.ID, &email, &givenName, &familyName); err != nil {
		return types.LegacyUser{}, err
	}

	user.Email = email.String
	user.GivenName = givenName.String
	user.FamilyName = familyName.String

	return user, nil
}
