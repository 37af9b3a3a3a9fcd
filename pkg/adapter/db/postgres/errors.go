// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package postgres provides a PostgreSQL adapter, exposing the
// connection pool, connection, and transaction concepts of the core
// repo package on top of the GORM framework. The repository packages,
// which are named like lotsrp, depend on this package in order to run
// their queries under a borrowed connection or transaction.
package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the PostgreSQL error code for breaking a unique
// constraint or unique index.
const uniqueViolation = "23505"

// IsUniqueViolation detects if the given error, as reported by the
// DBMS driver, indicates a unique constraint violation. Repository
// packages use it in order to classify name and number collisions as
// duplication errors instead of opaque storage errors.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.SQLState() == uniqueViolation
}
