// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"github.com/canonical/employee-migrator/internal/db"
	"github.com/canonical/employee-migrator/internal/logging"
	"github.com/canonical/employee-migrator/internal/monitoring"
	"github.com/canonical/employee-migrator/internal/tracing"
)

var _ StorageInterface = (*Storage)(nil)

// Storage writes migrated records to the target database.
type Storage struct {
	db db.DBClientInterface

	logger  logging.LoggerInterface
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
}

func NewStorage(c db.DBClientInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Storage {
	s := new(Storage)

	s.db = c

	s.logger = logger
	s.tracer = tracer
	s.monitor = monitor

	return s
}
