// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package db

import (
	"context"

	sq "github.com/Masterminds/squirrel"
)

type DBClientInterface interface {
	Statement(ctx context.Context) sq.StatementBuilderType
	Ping(ctx context.Context) error
	Close()
}
