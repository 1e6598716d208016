// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package migrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/canonical/employee-migrator/internal/logging"
	"github.com/canonical/employee-migrator/internal/storage"
	"github.com/canonical/employee-migrator/internal/types"
)

// StorageInterface defines the target-store operations required by the Migrator.
type StorageInterface interface {
	GetEmployeeByEmail(ctx context.Context, email string) (*types.Employee, error)
	CreateEmployee(ctx context.Context, attrs *types.EmployeeAttributes) (*types.Employee, error)
}

// Stats summarizes a migration run.
type Stats struct {
	Fetched  int
	Inserted int
	Skipped  int
	Failed   int
}

type outcome int

const (
	outcomeInserted outcome = iota
	outcomeSkipped
	outcomeFailed
)

// Migrator copies legacy user records into the target employees table. Each
// record is its own unit of work: the batch holds no transaction, nothing is
// retried, and a failed record does not stop the run. Re-running over the
// same source is safe because existing emails are skipped.
type Migrator struct {
	source   SourceInterface
	storage  StorageInterface
	validate *validator.Validate
	logger   logging.LoggerInterface

	dryRun bool
}

// NewMigrator creates a new Migrator with the given source, target storage,
// and logger.
func NewMigrator(source SourceInterface, storage StorageInterface, logger logging.LoggerInterface) *Migrator {
	return &Migrator{
		source:   source,
		storage:  storage,
		validate: validator.New(),
		logger:   logger,
	}
}

// SetDryRun makes Run report what would change without writing anything.
func (m *Migrator) SetDryRun(dryRun bool) {
	m.dryRun = dryRun
}

// Run executes the migration:
//  1. Fetches all user rows from the legacy source.
//  2. Maps each row to employee attributes, dropping legacy-only fields.
//  3. Checks whether an employee with that email already exists, then
//     validates and inserts the missing ones, one record at a time.
//
// Per-record validation and insert failures are logged and skipped; only a
// source fetch failure aborts the run.
func (m *Migrator) Run(ctx context.Context) (*Stats, error) {
	runID := uuid.NewString()

	users, err := m.source.FetchAllUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch legacy users: %w", err)
	}

	m.logger.Infof("run %s: fetched %d legacy users", runID, len(users))

	stats := &Stats{Fetched: len(users)}
	for _, user := range users {
		attrs := MapLegacyUser(user)

		switch m.migrateOne(ctx, &attrs) {
		case outcomeInserted:
			stats.Inserted++
		case outcomeSkipped:
			stats.Skipped++
		case outcomeFailed:
			stats.Failed++
		}
	}

	m.logger.Infof("run %s: migration complete: %d inserted, %d skipped, %d failed", runID, stats.Inserted, stats.Skipped, stats.Failed)
	return stats, nil
}

func (m *Migrator) migrateOne(ctx context.Context, attrs *types.EmployeeAttributes) outcome {
	_, err := m.storage.GetEmployeeByEmail(ctx, attrs.Email)
	if err == nil {
		m.logger.Infof("%s already exists, skipping", attrs.Email)
		return outcomeSkipped
	}
	if !errors.Is(err, storage.ErrNotFound) {
		m.logger.Errorf("failed to migrate: %s: %v", attrs.Email, err)
		return outcomeFailed
	}

	if err := m.validate.Struct(attrs); err != nil {
		// Report the email from the original attributes; the validation
		// failure may well be about the email itself being empty.
		vErr := NewValidationError(attrs.Email, validationFields(err), "migrateOne")
		m.logger.Errorf("failed to migrate: %s: %s", attrs.Email, vErr.Message)
		return outcomeFailed
	}

	if m.dryRun {
		m.logger.Infof("would migrate: %s", attrs.Email)
		return outcomeInserted
	}

	employee, err := m.storage.CreateEmployee(ctx, attrs)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			// Lost a race between the existence check and the insert. The
			// record is there, which is all a re-run needs.
			m.logger.Infof("%s already exists, skipping", attrs.Email)
			return outcomeSkipped
		}
		m.logger.Errorf("failed to migrate: %s: %v", attrs.Email, err)
		return outcomeFailed
	}

	m.logger.Infof("migrated: %s", employee.Email)
	return outcomeInserted
}

// validationFields lists the failing fields of a validator error, each
// rendered as "Field (tag)", e.g. "Email (required)".
func validationFields(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}
	return fields
}
