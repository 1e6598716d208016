// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package config

import "time"

// EnvSpec is the basic environment configuration setup needed for the app to start
type EnvSpec struct {
	// LegacyDatabaseURL is the connection URL of the legacy database the
	// migration reads from. The connection is opened read-only.
	LegacyDatabaseURL string `envconfig:"legacy_database_url"`

	// DSN is the target database connection string. The --dsn flag takes
	// precedence when set.
	DSN string `envconfig:"DSN" default:""`

	LogLevel string `envconfig:"log_level" default:"error"`
	Debug    bool   `envconfig:"debug" default:"false"`

	TracingEnabled   bool   `envconfig:"tracing_enabled" default:"false"`
	OtelGRPCEndpoint string `envconfig:"otel_grpc_endpoint"`
	OtelHTTPEndpoint string `envconfig:"otel_http_endpoint"`

	DBMaxConns        int32         `envconfig:"db_max_conns" default:"5"`
	DBMinConns        int32         `envconfig:"db_min_conns" default:"1"`
	DBMaxConnLifetime time.Duration `envconfig:"db_max_conn_lifetime" default:"30m"`
	DBMaxConnIdleTime time.Duration `envconfig:"db_max_conn_idle_time" default:"5m"`
}
