// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package migrator_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	trace "go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/canonical/employee-migrator/internal/db"
	"github.com/canonical/employee-migrator/internal/legacy"
	"github.com/canonical/employee-migrator/internal/migrator"
	"github.com/canonical/employee-migrator/internal/storage"
	"github.com/canonical/employee-migrator/internal/types"
	"github.com/canonical/employee-migrator/migrations"
)

//go:generate mockgen -build_flags=--mod=mod -package migrator -destination ./mock_migrator.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package migrator -destination ./mock_storage.go -source=./migrator.go
//go:generate mockgen -build_flags=--mod=mod -package migrator -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package migrator -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package migrator -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go

func TestMigratorRun(t *testing.T) {
	existing := &types.Employee{ID: "1", Email: "a@example.com", GivenName: "A", FamilyName: "B"}

	tests := []struct {
		name       string
		dryRun     bool
		setupMocks func(*migrator.MockSourceInterface, *migrator.MockStorageInterface, *migrator.MockLoggerInterface)
		want       migrator.Stats
		expectErr  bool
	}{
		{
			name: "successful migration",
			setupMocks: func(source *migrator.MockSourceInterface, st *migrator.MockStorageInterface, logger *migrator.MockLoggerInterface) {
				source.EXPECT().FetchAllUsers(gomock.Any()).Return([]types.LegacyUser{
					{ID: "1", Email: "a@example.com", GivenName: "A", FamilyName: "B"},
					{ID: "2", Email: "bob@example.com", GivenName: "Bob", FamilyName: "Jones"},
				}, nil)

				logger.EXPECT().Infof(gomock.Any(), gomock.Any()).AnyTimes()

				st.EXPECT().GetEmployeeByEmail(gomock.Any(), gomock.Any()).Return(nil, storage.ErrNotFound).Times(2)
				st.EXPECT().CreateEmployee(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, attrs *types.EmployeeAttributes) (*types.Employee, error) {
						return &types.Employee{ID: attrs.Email, Email: attrs.Email, GivenName: attrs.GivenName, FamilyName: attrs.FamilyName}, nil
					},
				).Times(2)
			},
			want: migrator.Stats{Fetched: 2, Inserted: 2},
		},
		{
			name: "source error propagates",
			setupMocks: func(source *migrator.MockSourceInterface, st *migrator.MockStorageInterface, logger *migrator.MockLoggerInterface) {
				source.EXPECT().FetchAllUsers(gomock.Any()).Return(nil, errors.New("legacy store unreachable"))
			},
			expectErr: true,
		},
		{
			name: "existing record is skipped",
			setupMocks: func(source *migrator.MockSourceInterface, st *migrator.MockStorageInterface, logger *migrator.MockLoggerInterface) {
				source.EXPECT().FetchAllUsers(gomock.Any()).Return([]types.LegacyUser{
					{ID: "1", Email: "a@example.com", GivenName: "A", FamilyName: "B"},
				}, nil)

				logger.EXPECT().Infof(gomock.Any(), gomock.Any()).AnyTimes()

				st.EXPECT().GetEmployeeByEmail(gomock.Any(), "a@example.com").Return(existing, nil)
			},
			want: migrator.Stats{Fetched: 1, Skipped: 1},
		},
		{
			name: "validation failure is non-fatal",
			setupMocks: func(source *migrator.MockSourceInterface, st *migrator.MockStorageInterface, logger *migrator.MockLoggerInterface) {
				source.EXPECT().FetchAllUsers(gomock.Any()).Return([]types.LegacyUser{
					{ID: "3", Email: "", GivenName: "Nameless", FamilyName: "Row"},
					{ID: "4", Email: "ok@example.com", GivenName: "Still", FamilyName: "Works"},
				}, nil)

				logger.EXPECT().Infof(gomock.Any(), gomock.Any()).AnyTimes()
				logger.EXPECT().Errorf(gomock.Any(), gomock.Any()).Do(
					func(template string, args ...interface{}) {
						line := fmt.Sprintf(template, args...)
						want := "failed to migrate: : invalid fields: Email (required)"
						if line != want {
							t.Errorf("error log = %q, want %q", line, want)
						}
					},
				)

				st.EXPECT().GetEmployeeByEmail(gomock.Any(), gomock.Any()).Return(nil, storage.ErrNotFound).Times(2)
				// Only the valid record reaches the insert.
				st.EXPECT().CreateEmployee(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, attrs *types.EmployeeAttributes) (*types.Employee, error) {
						if attrs.Email == "" {
							t.Error("CreateEmployee called with empty email")
						}
						return &types.Employee{ID: "5", Email: attrs.Email}, nil
					},
				)
			},
			want: migrator.Stats{Fetched: 2, Inserted: 1, Failed: 1},
		},
		{
			name: "duplicate on insert counts as skip",
			setupMocks: func(source *migrator.MockSourceInterface, st *migrator.MockStorageInterface, logger *migrator.MockLoggerInterface) {
				source.EXPECT().FetchAllUsers(gomock.Any()).Return([]types.LegacyUser{
					{ID: "1", Email: "a@example.com", GivenName: "A", FamilyName: "B"},
				}, nil)

				logger.EXPECT().Infof(gomock.Any(), gomock.Any()).AnyTimes()

				st.EXPECT().GetEmployeeByEmail(gomock.Any(), "a@example.com").Return(nil, storage.ErrNotFound)
				st.EXPECT().CreateEmployee(gomock.Any(), gomock.Any()).Return(
					nil, storage.WrapDuplicateKeyError(errors.New("23505"), "employee email already exists"))
			},
			want: migrator.Stats{Fetched: 1, Skipped: 1},
		},
		{
			name: "insert error is non-fatal",
			setupMocks: func(source *migrator.MockSourceInterface, st *migrator.MockStorageInterface, logger *migrator.MockLoggerInterface) {
				source.EXPECT().FetchAllUsers(gomock.Any()).Return([]types.LegacyUser{
					{ID: "1", Email: "a@example.com", GivenName: "A", FamilyName: "B"},
					{ID: "2", Email: "bob@example.com", GivenName: "Bob", FamilyName: "Jones"},
				}, nil)

				logger.EXPECT().Infof(gomock.Any(), gomock.Any()).AnyTimes()
				logger.EXPECT().Errorf(gomock.Any(), gomock.Any()).AnyTimes()

				st.EXPECT().GetEmployeeByEmail(gomock.Any(), gomock.Any()).Return(nil, storage.ErrNotFound).Times(2)
				st.EXPECT().CreateEmployee(gomock.Any(), gomock.Any()).Return(nil, errors.New("insert failed"))
				st.EXPECT().CreateEmployee(gomock.Any(), gomock.Any()).Return(&types.Employee{ID: "2", Email: "bob@example.com"}, nil)
			},
			want: migrator.Stats{Fetched: 2, Inserted: 1, Failed: 1},
		},
		{
			name:   "dry run does not insert",
			dryRun: true,
			setupMocks: func(source *migrator.MockSourceInterface, st *migrator.MockStorageInterface, logger *migrator.MockLoggerInterface) {
				source.EXPECT().FetchAllUsers(gomock.Any()).Return([]types.LegacyUser{
					{ID: "1", Email: "a@example.com", GivenName: "A", FamilyName: "B"},
				}, nil)

				logger.EXPECT().Infof(gomock.Any(), gomock.Any()).AnyTimes()

				st.EXPECT().GetEmployeeByEmail(gomock.Any(), "a@example.com").Return(nil, storage.ErrNotFound)
				// No CreateEmployee expectation: an insert would fail the test.
			},
			want: migrator.Stats{Fetched: 1, Inserted: 1},
		},
		{
			name: "empty source",
			setupMocks: func(source *migrator.MockSourceInterface, st *migrator.MockStorageInterface, logger *migrator.MockLoggerInterface) {
				source.EXPECT().FetchAllUsers(gomock.Any()).Return([]types.LegacyUser{}, nil)
				logger.EXPECT().Infof(gomock.Any(), gomock.Any()).AnyTimes()
			},
			want: migrator.Stats{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockSource := migrator.NewMockSourceInterface(ctrl)
			mockStorage := migrator.NewMockStorageInterface(ctrl)
			mockLogger := migrator.NewMockLoggerInterface(ctrl)

			tt.setupMocks(mockSource, mockStorage, mockLogger)

			m := migrator.NewMigrator(mockSource, mockStorage, mockLogger)
			m.SetDryRun(tt.dryRun)

			stats, err := m.Run(context.Background())

			if tt.expectErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if *stats != tt.want {
				t.Fatalf("stats = %+v, want %+v", *stats, tt.want)
			}
		})
	}
}

// sanitizeName converts test names to valid container names.
func sanitizeName(name string) string {
	name = strings.ReplaceAll(name, "/", "-")
	name = strings.ReplaceAll(name, " ", "-")
	name = strings.ToLower(name)
	return name
}

func setupTestPostgres(t *testing.T, role string) (string, *postgres.PostgresContainer) {
	t.Helper()
	ctx := context.Background()

	containerName := fmt.Sprintf("employee-migrator-%s-%s", role, sanitizeName(t.Name()))

	var pgContainer *postgres.PostgresContainer
	func() {
		defer func() {
			if r := recover(); r != nil {
				t.Skipf("Skipping: Docker not available (%v)", r)
			}
		}()
		var err error
		pgContainer, err = postgres.Run(ctx,
			"postgres:16-alpine",
			postgres.WithDatabase("testdb"),
			postgres.WithUsername("testuser"),
			postgres.WithPassword("testpass"),
			testcontainers.CustomizeRequest(testcontainers.GenericContainerRequest{
				ContainerRequest: testcontainers.ContainerRequest{
					Name: containerName,
				},
			}),
		)
		if err != nil {
			t.Fatalf("Failed to start PostgreSQL container: %v", err)
		}
	}()

	if pgContainer == nil {
		return "", nil
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("Failed to get connection string: %v", err)
	}

	// Wait for PostgreSQL to be ready
	maxRetries := 10
	for i := 0; i < maxRetries; i++ {
		config, err := pgx.ParseConfig(connStr)
		if err != nil {
			t.Fatalf("Failed to parse config: %v", err)
		}
		sqlDB := stdlib.OpenDB(*config)
		if err := sqlDB.Ping(); err == nil {
			sqlDB.Close()
			break
		}
		sqlDB.Close()
		if i < maxRetries-1 {
			time.Sleep(time.Second)
		}
	}

	return connStr, pgContainer
}

func openTestDB(t *testing.T, connStr string) *sql.DB {
	t.Helper()
	config, err := pgx.ParseConfig(connStr)
	if err != nil {
		t.Fatalf("Failed to parse DSN: %v", err)
	}
	return stdlib.OpenDB(*config)
}

func runTargetMigrations(t *testing.T, connStr string) {
	t.Helper()
	sqlDB := openTestDB(t, connStr)
	defer sqlDB.Close()

	goose.SetBaseFS(migrations.EmbedMigrations)
	if err := goose.SetDialect("postgres"); err != nil {
		t.Fatalf("Failed to set dialect: %v", err)
	}

	if err := goose.Up(sqlDB, "."); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
}

// seedLegacyUsers creates the legacy schema and a few rows: two migratable
// users (one with a NULL family name) and one with an empty email that must
// fail validation. The raw_password column stands in for legacy-only data
// that must never reach the target.
func seedLegacyUsers(t *testing.T, connStr string) {
	t.Helper()
	sqlDB := openTestDB(t, connStr)
	defer sqlDB.Close()

	statements := []string{
		`CREATE TABLE users (
			id SERIAL PRIMARY KEY,
			email TEXT,
			given_name TEXT,
			family_name TEXT,
			raw_password TEXT
		)`,
		`INSERT INTO users (email, given_name, family_name, raw_password)
			VALUES ('a@example.com', 'A', 'B', 'hunter2')`,
		`INSERT INTO users (email, given_name, family_name, raw_password)
			VALUES ('bob@example.com', 'Bob', NULL, 'swordfish')`,
		`INSERT INTO users (email, given_name, family_name, raw_password)
			VALUES ('', 'Nameless', 'Row', '')`,
	}
	for _, stmt := range statements {
		if _, err := sqlDB.Exec(stmt); err != nil {
			t.Fatalf("Failed to seed legacy users: %v", err)
		}
	}
}

func TestMigratorIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	t.Parallel()

	legacyConn, legacyContainer := setupTestPostgres(t, "legacy")
	if legacyContainer == nil {
		return // skipped due to Docker unavailability
	}
	defer func() {
		if err := legacyContainer.Terminate(context.Background()); err != nil {
			t.Logf("Failed to terminate legacy container: %v", err)
		}
	}()

	targetConn, targetContainer := setupTestPostgres(t, "target")
	if targetContainer == nil {
		return
	}
	defer func() {
		if err := targetContainer.Terminate(context.Background()); err != nil {
			t.Logf("Failed to terminate target container: %v", err)
		}
	}()

	seedLegacyUsers(t, legacyConn)
	runTargetMigrations(t, targetConn)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTracer := migrator.NewMockTracingInterface(ctrl)
	mockMonitor := migrator.NewMockMonitorInterface(ctrl)
	mockLogger := migrator.NewMockLoggerInterface(ctrl)

	// Allow any logging/tracing calls
	mockLogger.EXPECT().Infof(gomock.Any(), gomock.Any()).Do(func(f string, v ...interface{}) { t.Logf("INFO: "+f, v...) }).AnyTimes()
	mockLogger.EXPECT().Errorf(gomock.Any(), gomock.Any()).Do(func(f string, v ...interface{}) { t.Logf("ERROR: "+f, v...) }).AnyTimes()
	mockLogger.EXPECT().Debugf(gomock.Any(), gomock.Any()).Do(func(f string, v ...interface{}) { t.Logf("DEBUG: "+f, v...) }).AnyTimes()
	mockLogger.EXPECT().Warnf(gomock.Any(), gomock.Any()).Do(func(f string, v ...interface{}) { t.Logf("WARN: "+f, v...) }).AnyTimes()
	mockLogger.EXPECT().Fatalf(gomock.Any(), gomock.Any()).Do(func(f string, v ...interface{}) { t.Logf("FATAL: "+f, v...) }).AnyTimes()
	mockTracer.EXPECT().Start(gomock.Any(), gomock.Any()).Return(context.Background(), trace.SpanFromContext(context.Background())).AnyTimes()

	legacyClient, err := db.NewDBClient(
		db.Config{DSN: legacyConn, ReadOnly: true},
		mockTracer,
		mockMonitor,
		mockLogger,
	)
	if err != nil {
		t.Fatalf("Failed to create legacy DB client: %v", err)
	}
	defer legacyClient.Close()

	targetClient, err := db.NewDBClient(
		db.Config{DSN: targetConn, MinConns: 2, MaxConns: 5},
		mockTracer,
		mockMonitor,
		mockLogger,
	)
	if err != nil {
		t.Fatalf("Failed to create target DB client: %v", err)
	}
	defer targetClient.Close()

	ctx := context.Background()
	source := legacy.NewStore(legacyClient, mockTracer, mockMonitor, mockLogger)
	s := storage.NewStorage(targetClient, mockTracer, mockMonitor, mockLogger)

	m := migrator.NewMigrator(source, s, mockLogger)

	stats, err := m.Run(ctx)
	if err != nil {
		t.Fatalf("Migration failed: %v", err)
	}
	if want := (migrator.Stats{Fetched: 3, Inserted: 2, Failed: 1}); *stats != want {
		t.Fatalf("stats = %+v, want %+v", *stats, want)
	}

	employees, err := s.ListEmployees(ctx)
	if err != nil {
		t.Fatalf("Failed to list employees: %v", err)
	}
	if len(employees) != 2 {
		t.Fatalf("Expected 2 employees, got %d", len(employees))
	}
	if employees[0].Email != "a@example.com" || employees[0].GivenName != "A" || employees[0].FamilyName != "B" {
		t.Fatalf("Unexpected first employee: %+v", employees[0])
	}
	if employees[1].Email != "bob@example.com" || employees[1].FamilyName != "" {
		t.Fatalf("Unexpected second employee: %+v", employees[1])
	}

	// Run again: existing emails must be skipped and the target state must
	// not change (idempotence).
	stats, err = m.Run(ctx)
	if err != nil {
		t.Fatalf("Second migration failed: %v", err)
	}
	if want := (migrator.Stats{Fetched: 3, Skipped: 2, Failed: 1}); *stats != want {
		t.Fatalf("second run stats = %+v, want %+v", *stats, want)
	}

	employeesAfterSecondRun, err := s.ListEmployees(ctx)
	if err != nil {
		t.Fatalf("Failed to list employees after second run: %v", err)
	}
	if len(employeesAfterSecondRun) != len(employees) {
		t.Fatalf("Expected employee count to remain %d, got %d", len(employees), len(employeesAfterSecondRun))
	}

	// The legacy connection must reject writes at the server.
	_, err = legacyClient.Statement(ctx).
		Insert("users").
		Columns("email", "given_name", "family_name").
		Values("intruder@example.com", "In", "Truder").
		ExecContext(ctx)
	if err == nil {
		t.Fatal("Expected write on read-only legacy connection to fail")
	}
	if !db.IsReadOnlyError(err) {
		t.Fatalf("Expected read-only transaction error, got: %v", err)
	}
}
