// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/exaring/otelpgx"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/canonical/employee-migrator/internal/logging"
	"github.com/canonical/employee-migrator/internal/monitoring"
	"github.com/canonical/employee-migrator/internal/tracing"
)

const defaultPageSize uint64 = 100

type Config struct {
	DSN             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	TracingEnabled  bool
	// ReadOnly makes every connection reject write statements at the server.
	ReadOnly bool
}

var _ DBClientInterface = (*DBClient)(nil)

type DBClient struct {
	pool *pgxpool.Pool
	db   *sql.DB

	logger  logging.LoggerInterface
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
}

// Statement returns a squirrel statement builder bound to the pool, using
// PostgreSQL placeholders.
func (c *DBClient) Statement(ctx context.Context) sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar).RunWith(c.db)
}

// Ping checks database reachability and records it as a dependency
// availability metric.
func (c *DBClient) Ping(ctx context.Context) error {
	ctx, span := c.tracer.Start(ctx, "db.DBClient.Ping")
	defer span.End()

	err := c.pool.Ping(ctx)

	availability := 1.0
	if err != nil {
		availability = 0.0
	}
	if mErr := c.monitor.SetDependencyAvailability(map[string]string{"component": "postgres"}, availability); mErr != nil {
		c.logger.Warnf("failed to set availability metric: %v", mErr)
	}

	return err
}

func (c *DBClient) Close() {
	if c.db != nil {
		_ = c.db.Close()
	}
	if c.pool != nil {
		c.pool.Close()
	}
}

func parsePoolConfig(config Config) (*pgxpool.Config, error) {
	poolConfig, err := pgxpool.ParseConfig(config.DSN)
	if err != nil {
		return nil, err
	}

	if config.MaxConns > 0 {
		poolConfig.MaxConns = config.MaxConns
	}
	if config.MinConns > 0 {
		poolConfig.MinConns = config.MinConns
	}
	if config.MaxConnLifetime > 0 {
		poolConfig.MaxConnLifetime = config.MaxConnLifetime
	}
	if config.MaxConnIdleTime > 0 {
		poolConfig.MaxConnIdleTime = config.MaxConnIdleTime
	}

	if config.ReadOnly {
		// Capability restriction, not an application flag: the server rejects
		// writes on every transaction opened by this pool.
		poolConfig.ConnConfig.RuntimeParams["default_transaction_read_only"] = "on"
	}

	if config.TracingEnabled {
		poolConfig.ConnConfig.Tracer = otelpgx.NewTracer()
	}

	return poolConfig, nil
}

func NewDBClient(config Config, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) (*DBClient, error) {
	c := new(DBClient)

	c.logger = logger
	c.tracer = tracer
	c.monitor = monitor

	poolConfig, err := parsePoolConfig(config)
	if err != nil {
		logger.Fatalf("invalid DSN: %v", err)
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %v", err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to reach database: %v", err)
	}

	c.pool = pool
	c.db = stdlib.OpenDBFromPool(pool)

	return c, nil
}

// Offset converts a 1-based page number into a row offset.
func Offset(page int64, size uint64) uint64 {
	if page < 1 {
		page = 1
	}
	return uint64(page-1) * size
}

// PageSize clamps a requested page size to a sane positive value.
func PageSize(size int64) uint64 {
	if size <= 0 {
		return defaultPageSize
	}
	return uint64(size)
}
